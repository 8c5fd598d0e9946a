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

type TeamService struct {
	*baseServiceImpl[models.Team, *models.Team]
}

func NewTeamService(db *bun.DB) *TeamService {
	return &TeamService{newBaseService[models.Team](db, "Team", teamRules)}
}

func teamRules(ctx context.Context, db bun.IDB, t, previous *models.Team) error {
	if previous != nil && previous.Name == t.Name {
		return nil
	}
	return unique[models.Team](ctx, db, t.ID,
		errs.Conflict("Team with name '%s' already exists", t.Name),
		types.Eq("name", t.Name))
}

// PlayerService has no cross-entity rules; field validation covers players.
type PlayerService struct {
	*baseServiceImpl[models.Player, *models.Player]
}

func NewPlayerService(db *bun.DB) *PlayerService {
	return &PlayerService{newBaseService[models.Player](db, "Player", nil)}
}
