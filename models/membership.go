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
	"time"

	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
)

// TeamCompetition enrols a team in a competition and carries its standing.
type TeamCompetition struct {
	bun.BaseModel `bun:"table:team_competitions,alias:tc" json:"-"`
	Base

	TeamID        int64     `bun:"team_id,notnull,unique:uq_team_competition" json:"team_id" validate:"required,gt=0"`
	CompetitionID int64     `bun:"competition_id,notnull,unique:uq_team_competition" json:"competition_id" validate:"required,gt=0"`
	JoinedDate    time.Time `bun:"joined_date,notnull" json:"joined_date"`
	Points        int       `bun:"points,notnull" json:"points" validate:"min=0"`
	Wins          int       `bun:"wins,notnull" json:"wins" validate:"min=0"`
	Losses        int       `bun:"losses,notnull" json:"losses" validate:"min=0"`
	Draws         int       `bun:"draws,notnull" json:"draws" validate:"min=0"`
}

type TeamCompetitionPatch struct {
	TeamID        types.Optional[int64]     `json:"team_id"`
	CompetitionID types.Optional[int64]     `json:"competition_id"`
	JoinedDate    types.Optional[time.Time] `json:"joined_date"`
	Points        types.Optional[int]       `json:"points"`
	Wins          types.Optional[int]       `json:"wins"`
	Losses        types.Optional[int]       `json:"losses"`
	Draws         types.Optional[int]       `json:"draws"`
}

func (p *TeamCompetitionPatch) Apply(tc *TeamCompetition) []string {
	var cols []string
	types.Assign(&cols, "team_id", &tc.TeamID, p.TeamID)
	types.Assign(&cols, "competition_id", &tc.CompetitionID, p.CompetitionID)
	types.Assign(&cols, "joined_date", &tc.JoinedDate, p.JoinedDate)
	types.Assign(&cols, "points", &tc.Points, p.Points)
	types.Assign(&cols, "wins", &tc.Wins, p.Wins)
	types.Assign(&cols, "losses", &tc.Losses, p.Losses)
	types.Assign(&cols, "draws", &tc.Draws, p.Draws)
	return cols
}

// PlayerTeamHistory records a spell of a player at a team. LeftAt is nil while
// the player is still at the team.
type PlayerTeamHistory struct {
	bun.BaseModel `bun:"table:player_team_history,alias:pth" json:"-"`
	Base

	PlayerID int64      `bun:"player_id,notnull" json:"player_id" validate:"required,gt=0"`
	TeamID   int64      `bun:"team_id,notnull" json:"team_id" validate:"required,gt=0"`
	JoinedAt time.Time  `bun:"joined_at,notnull" json:"joined_at" validate:"required"`
	LeftAt   *time.Time `bun:"left_at" json:"left_at"`
}

type PlayerTeamHistoryPatch struct {
	PlayerID types.Optional[int64]      `json:"player_id"`
	TeamID   types.Optional[int64]      `json:"team_id"`
	JoinedAt types.Optional[time.Time]  `json:"joined_at"`
	LeftAt   types.Optional[*time.Time] `json:"left_at"`
}

func (p *PlayerTeamHistoryPatch) Apply(h *PlayerTeamHistory) []string {
	var cols []string
	types.Assign(&cols, "player_id", &h.PlayerID, p.PlayerID)
	types.Assign(&cols, "team_id", &h.TeamID, p.TeamID)
	types.Assign(&cols, "joined_at", &h.JoinedAt, p.JoinedAt)
	types.Assign(&cols, "left_at", &h.LeftAt, p.LeftAt)
	return cols
}
