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

package models

import (
	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
)

// Competition belongs to one organisation; its name is unique within that organisation.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:comp" json:"-"`
	Base

	Name              string            `bun:"name,type:varchar(120),notnull,nullzero,unique:uq_competition_name_org" json:"name" validate:"required,max=120"`
	CompetitionFormat CompetitionFormat `bun:"competition_format,type:varchar(16),notnull,nullzero" json:"competition_format" validate:"required,enum"`
	OrganisationID    int64             `bun:"organisation_id,notnull,unique:uq_competition_name_org" json:"organisation_id" validate:"required,gt=0"`
	AgeCategory       AgeCategory       `bun:"age_category,type:varchar(16),notnull,nullzero" json:"age_category" validate:"required,enum"`
	CourtSize         CourtSize         `bun:"court_size,type:varchar(16),notnull,nullzero" json:"court_size" validate:"required,enum"`
}

type CompetitionPatch struct {
	Name              types.Optional[string]            `json:"name"`
	CompetitionFormat types.Optional[CompetitionFormat] `json:"competition_format"`
	OrganisationID    types.Optional[int64]             `json:"organisation_id"`
	AgeCategory       types.Optional[AgeCategory]       `json:"age_category"`
	CourtSize         types.Optional[CourtSize]         `json:"court_size"`
}

func (p *CompetitionPatch) Apply(c *Competition) []string {
	var cols []string
	types.Assign(&cols, "name", &c.Name, p.Name)
	types.Assign(&cols, "competition_format", &c.CompetitionFormat, p.CompetitionFormat)
	types.Assign(&cols, "organisation_id", &c.OrganisationID, p.OrganisationID)
	types.Assign(&cols, "age_category", &c.AgeCategory, p.AgeCategory)
	types.Assign(&cols, "court_size", &c.CourtSize, p.CourtSize)
	return cols
}
