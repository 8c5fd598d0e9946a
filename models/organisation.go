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

// Organisation is a league or tournament organiser.
type Organisation struct {
	bun.BaseModel `bun:"table:organisations,alias:org" json:"-"`
	Base

	Name        string      `bun:"name,type:varchar(120),notnull,nullzero,unique" json:"name" validate:"required,max=120"`
	CountryCode CountryCode `bun:"country_code,type:varchar(8),notnull,nullzero" json:"country_code" validate:"required,enum"`
	Region      *string     `bun:"region,type:varchar(100)" json:"region" validate:"omitempty,max=100"`
	Website     *string     `bun:"website,type:varchar(2048)" json:"website" validate:"omitempty,url,max=2048"`
	LogoURL     *string     `bun:"logo_url,type:varchar(2048)" json:"logo_url" validate:"omitempty,url,max=2048"`
}

type OrganisationPatch struct {
	Name        types.Optional[string]      `json:"name"`
	CountryCode types.Optional[CountryCode] `json:"country_code"`
	Region      types.Optional[*string]     `json:"region"`
	Website     types.Optional[*string]     `json:"website"`
	LogoURL     types.Optional[*string]     `json:"logo_url"`
}

func (p *OrganisationPatch) Apply(o *Organisation) []string {
	var cols []string
	types.Assign(&cols, "name", &o.Name, p.Name)
	types.Assign(&cols, "country_code", &o.CountryCode, p.CountryCode)
	types.Assign(&cols, "region", &o.Region, p.Region)
	types.Assign(&cols, "website", &o.Website, p.Website)
	types.Assign(&cols, "logo_url", &o.LogoURL, p.LogoURL)
	return cols
}
