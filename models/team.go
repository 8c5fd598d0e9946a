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

type Team struct {
	bun.BaseModel `bun:"table:teams,alias:team" json:"-"`
	Base

	Name    string  `bun:"name,type:varchar(120),notnull,nullzero,unique" json:"name" validate:"required,max=120"`
	LogoURL *string `bun:"logo_url,type:varchar(2048)" json:"logo_url" validate:"omitempty,url,max=2048"`
}

type TeamPatch struct {
	Name    types.Optional[string]  `json:"name"`
	LogoURL types.Optional[*string] `json:"logo_url"`
}

func (p *TeamPatch) Apply(t *Team) []string {
	var cols []string
	types.Assign(&cols, "name", &t.Name, p.Name)
	types.Assign(&cols, "logo_url", &t.LogoURL, p.LogoURL)
	return cols
}

type Player struct {
	bun.BaseModel `bun:"table:players,alias:player" json:"-"`
	Base

	FirstName   string       `bun:"first_name,type:varchar(50),notnull,nullzero" json:"first_name" validate:"required,max=50"`
	LastName    string       `bun:"last_name,type:varchar(50),notnull,nullzero" json:"last_name" validate:"required,max=50"`
	Nationality *CountryCode `bun:"nationality,type:varchar(8)" json:"nationality" validate:"omitempty,enum"`
}

type PlayerPatch struct {
	FirstName   types.Optional[string]       `json:"first_name"`
	LastName    types.Optional[string]       `json:"last_name"`
	Nationality types.Optional[*CountryCode] `json:"nationality"`
}

func (p *PlayerPatch) Apply(pl *Player) []string {
	var cols []string
	types.Assign(&cols, "first_name", &pl.FirstName, p.FirstName)
	types.Assign(&cols, "last_name", &pl.LastName, p.LastName)
	types.Assign(&cols, "nationality", &pl.Nationality, p.Nationality)
	return cols
}
