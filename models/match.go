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

// Match is played between two distinct teams within a competition.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m" json:"-"`
	Base

	CompetitionID int64       `bun:"competition_id,notnull" json:"competition_id" validate:"required,gt=0"`
	Team1ID       int64       `bun:"team1_id,notnull" json:"team1_id" validate:"required,gt=0"`
	Team2ID       int64       `bun:"team2_id,notnull" json:"team2_id" validate:"required,gt=0"`
	MatchDate     time.Time   `bun:"match_date,notnull" json:"match_date" validate:"required"`
	Status        MatchStatus `bun:"status,type:varchar(16),notnull,nullzero" json:"status" validate:"required,enum"`
}

// NewMatch returns a match with its defaults applied.
func NewMatch() *Match {
	return &Match{Status: MatchScheduled}
}

type MatchPatch struct {
	CompetitionID types.Optional[int64]       `json:"competition_id"`
	Team1ID       types.Optional[int64]       `json:"team1_id"`
	Team2ID       types.Optional[int64]       `json:"team2_id"`
	MatchDate     types.Optional[time.Time]   `json:"match_date"`
	Status        types.Optional[MatchStatus] `json:"status"`
}

func (p *MatchPatch) Apply(m *Match) []string {
	var cols []string
	types.Assign(&cols, "competition_id", &m.CompetitionID, p.CompetitionID)
	types.Assign(&cols, "team1_id", &m.Team1ID, p.Team1ID)
	types.Assign(&cols, "team2_id", &m.Team2ID, p.Team2ID)
	types.Assign(&cols, "match_date", &m.MatchDate, p.MatchDate)
	types.Assign(&cols, "status", &m.Status, p.Status)
	return cols
}

// Set is one game within a match. SetNumber is unique per match.
type Set struct {
	bun.BaseModel `bun:"table:sets,alias:s" json:"-"`
	Base

	MatchID       int64      `bun:"match_id,notnull,unique:uq_set_match_number" json:"match_id" validate:"required,gt=0"`
	SetNumber     int        `bun:"set_number,notnull,unique:uq_set_match_number" json:"set_number" validate:"required,min=1"`
	StartTime     time.Time  `bun:"start_time,notnull" json:"start_time" validate:"required"`
	EndTime       *time.Time `bun:"end_time" json:"end_time"`
	WinningTeamID *int64     `bun:"winning_team_id" json:"winning_team_id" validate:"omitempty,gt=0"`
}

type SetPatch struct {
	MatchID       types.Optional[int64]      `json:"match_id"`
	SetNumber     types.Optional[int]        `json:"set_number"`
	StartTime     types.Optional[time.Time]  `json:"start_time"`
	EndTime       types.Optional[*time.Time] `json:"end_time"`
	WinningTeamID types.Optional[*int64]     `json:"winning_team_id"`
}

func (p *SetPatch) Apply(s *Set) []string {
	var cols []string
	types.Assign(&cols, "match_id", &s.MatchID, p.MatchID)
	types.Assign(&cols, "set_number", &s.SetNumber, p.SetNumber)
	types.Assign(&cols, "start_time", &s.StartTime, p.StartTime)
	types.Assign(&cols, "end_time", &s.EndTime, p.EndTime)
	types.Assign(&cols, "winning_team_id", &s.WinningTeamID, p.WinningTeamID)
	return cols
}
