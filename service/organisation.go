/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package service

import (
	"context"

	"github.com/tomoncle/dodgeball/errs"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
)

type OrganisationService struct {
	*baseServiceImpl[models.Organisation, *models.Organisation]
}

func NewOrganisationService(db *bun.DB) *OrganisationService {
	return &OrganisationService{newBaseService[models.Organisation](db, "Organisation", organisationRules)}
}

func organisationRules(ctx context.Context, db bun.IDB, o, previous *models.Organisation) error {
	if previous != nil && previous.Name == o.Name {
		return nil
	}
	return unique[models.Organisation](ctx, db, o.ID,
		errs.Conflict("Organisation with name '%s' already exists", o.Name),
		types.Eq("name", o.Name))
}

type CompetitionService struct {
	*baseServiceImpl[models.Competition, *models.Competition]
}

func NewCompetitionService(db *bun.DB) *CompetitionService {
	return &CompetitionService{newBaseService[models.Competition](db, "Competition", competitionRules)}
}

// ListByOrganisation returns the competitions run by an organisation.
func (s *CompetitionService) ListByOrganisation(ctx context.Context, organisationID int64) ([]*models.Competition, error) {
	if err := mustExist[models.Organisation](ctx, s.db, "Organisation", organisationID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("organisation_id", organisationID))
}

func competitionRules(ctx context.Context, db bun.IDB, c, previous *models.Competition) error {
	orgChanged := previous == nil || previous.OrganisationID != c.OrganisationID
	if orgChanged {
		if err := mustExist[models.Organisation](ctx, db, "Organisation", c.OrganisationID); err != nil {
			return err
		}
	}
	if !orgChanged && previous.Name == c.Name {
		return nil
	}
	return unique[models.Competition](ctx, db, c.ID,
		errs.Conflict("Competition with name '%s' already exists for this organisation", c.Name),
		types.Eq("name", c.Name),
		types.Eq("organisation_id", c.OrganisationID))
}
