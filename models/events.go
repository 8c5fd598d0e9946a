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

type ThrowEvent struct {
	bun.BaseModel `bun:"table:throw_events,alias:te" json:"-"`
	Base

	SetID           int64     `bun:"set_id,notnull" json:"set_id" validate:"required,gt=0"`
	PlayerID        int64     `bun:"player_id,notnull" json:"player_id" validate:"required,gt=0"`
	Timestamp       time.Time `bun:"timestamp,notnull" json:"timestamp" validate:"required"`
	TargetPlayerID  *int64    `bun:"target_player_id" json:"target_player_id" validate:"omitempty,gt=0"`
	LocationX       *float64  `bun:"location_x" json:"location_x"`
	LocationY       *float64  `bun:"location_y" json:"location_y"`
	TargetLocationX *float64  `bun:"target_location_x" json:"target_location_x"`
	TargetLocationY *float64  `bun:"target_location_y" json:"target_location_y"`
	ValidAttempt    bool      `bun:"valid_attempt,notnull" json:"valid_attempt"`
	TargetHadBall   bool      `bun:"target_had_ball,notnull" json:"target_had_ball"`
	WasBlocked      bool      `bun:"was_blocked,notnull" json:"was_blocked"`
}

// NewThrowEvent returns a throw with valid_attempt and was_blocked defaulted to true.
func NewThrowEvent() *ThrowEvent {
	return &ThrowEvent{ValidAttempt: true, WasBlocked: true}
}

type ThrowEventPatch struct {
	SetID           types.Optional[int64]     `json:"set_id"`
	PlayerID        types.Optional[int64]     `json:"player_id"`
	Timestamp       types.Optional[time.Time] `json:"timestamp"`
	TargetPlayerID  types.Optional[*int64]    `json:"target_player_id"`
	LocationX       types.Optional[*float64]  `json:"location_x"`
	LocationY       types.Optional[*float64]  `json:"location_y"`
	TargetLocationX types.Optional[*float64]  `json:"target_location_x"`
	TargetLocationY types.Optional[*float64]  `json:"target_location_y"`
	ValidAttempt    types.Optional[bool]      `json:"valid_attempt"`
	TargetHadBall   types.Optional[bool]      `json:"target_had_ball"`
	WasBlocked      types.Optional[bool]      `json:"was_blocked"`
}

func (p *ThrowEventPatch) Apply(e *ThrowEvent) []string {
	var cols []string
	types.Assign(&cols, "set_id", &e.SetID, p.SetID)
	types.Assign(&cols, "player_id", &e.PlayerID, p.PlayerID)
	types.Assign(&cols, "timestamp", &e.Timestamp, p.Timestamp)
	types.Assign(&cols, "target_player_id", &e.TargetPlayerID, p.TargetPlayerID)
	types.Assign(&cols, "location_x", &e.LocationX, p.LocationX)
	types.Assign(&cols, "location_y", &e.LocationY, p.LocationY)
	types.Assign(&cols, "target_location_x", &e.TargetLocationX, p.TargetLocationX)
	types.Assign(&cols, "target_location_y", &e.TargetLocationY, p.TargetLocationY)
	types.Assign(&cols, "valid_attempt", &e.ValidAttempt, p.ValidAttempt)
	types.Assign(&cols, "target_had_ball", &e.TargetHadBall, p.TargetHadBall)
	types.Assign(&cols, "was_blocked", &e.WasBlocked, p.WasBlocked)
	return cols
}

type CatchEvent struct {
	bun.BaseModel `bun:"table:catch_events,alias:ce" json:"-"`
	Base

	SetID        int64     `bun:"set_id,notnull" json:"set_id" validate:"required,gt=0"`
	PlayerID     int64     `bun:"player_id,notnull" json:"player_id" validate:"required,gt=0"`
	Timestamp    time.Time `bun:"timestamp,notnull" json:"timestamp" validate:"required"`
	ThrowEventID int64     `bun:"throw_event_id,notnull" json:"throw_event_id" validate:"required,gt=0"`
	LocationX    *float64  `bun:"location_x" json:"location_x"`
	LocationY    *float64  `bun:"location_y" json:"location_y"`
	ReboundCatch bool      `bun:"rebound_catch,notnull" json:"rebound_catch"`
}

type CatchEventPatch struct {
	SetID        types.Optional[int64]     `json:"set_id"`
	PlayerID     types.Optional[int64]     `json:"player_id"`
	Timestamp    types.Optional[time.Time] `json:"timestamp"`
	ThrowEventID types.Optional[int64]     `json:"throw_event_id"`
	LocationX    types.Optional[*float64]  `json:"location_x"`
	LocationY    types.Optional[*float64]  `json:"location_y"`
	ReboundCatch types.Optional[bool]      `json:"rebound_catch"`
}

func (p *CatchEventPatch) Apply(e *CatchEvent) []string {
	var cols []string
	types.Assign(&cols, "set_id", &e.SetID, p.SetID)
	types.Assign(&cols, "player_id", &e.PlayerID, p.PlayerID)
	types.Assign(&cols, "timestamp", &e.Timestamp, p.Timestamp)
	types.Assign(&cols, "throw_event_id", &e.ThrowEventID, p.ThrowEventID)
	types.Assign(&cols, "location_x", &e.LocationX, p.LocationX)
	types.Assign(&cols, "location_y", &e.LocationY, p.LocationY)
	types.Assign(&cols, "rebound_catch", &e.ReboundCatch, p.ReboundCatch)
	return cols
}

// EliminationEvent records a player leaving the court. A player is eliminated
// at most once per set.
type EliminationEvent struct {
	bun.BaseModel `bun:"table:eliminations,alias:el" json:"-"`
	Base

	SetID                int64            `bun:"set_id,notnull,unique:uq_elimination_set_player" json:"set_id" validate:"required,gt=0"`
	EliminatedPlayerID   int64            `bun:"eliminated_player_id,notnull,unique:uq_elimination_set_player" json:"eliminated_player_id" validate:"required,gt=0"`
	Timestamp            time.Time        `bun:"timestamp,notnull" json:"timestamp" validate:"required"`
	Cause                EliminationCause `bun:"cause,type:varchar(32),notnull,nullzero" json:"cause" validate:"required,enum"`
	ThrowEventID         *int64           `bun:"throw_event_id" json:"throw_event_id" validate:"omitempty,gt=0"`
	CatchEventID         *int64           `bun:"catch_event_id" json:"catch_event_id" validate:"omitempty,gt=0"`
	EliminationLocationX *float64         `bun:"elimination_location_x" json:"elimination_location_x"`
	EliminationLocationY *float64         `bun:"elimination_location_y" json:"elimination_location_y"`
}

type EliminationEventPatch struct {
	SetID                types.Optional[int64]            `json:"set_id"`
	EliminatedPlayerID   types.Optional[int64]            `json:"eliminated_player_id"`
	Timestamp            types.Optional[time.Time]        `json:"timestamp"`
	Cause                types.Optional[EliminationCause] `json:"cause"`
	ThrowEventID         types.Optional[*int64]           `json:"throw_event_id"`
	CatchEventID         types.Optional[*int64]           `json:"catch_event_id"`
	EliminationLocationX types.Optional[*float64]         `json:"elimination_location_x"`
	EliminationLocationY types.Optional[*float64]         `json:"elimination_location_y"`
}

func (p *EliminationEventPatch) Apply(e *EliminationEvent) []string {
	var cols []string
	types.Assign(&cols, "set_id", &e.SetID, p.SetID)
	types.Assign(&cols, "eliminated_player_id", &e.EliminatedPlayerID, p.EliminatedPlayerID)
	types.Assign(&cols, "timestamp", &e.Timestamp, p.Timestamp)
	types.Assign(&cols, "cause", &e.Cause, p.Cause)
	types.Assign(&cols, "throw_event_id", &e.ThrowEventID, p.ThrowEventID)
	types.Assign(&cols, "catch_event_id", &e.CatchEventID, p.CatchEventID)
	types.Assign(&cols, "elimination_location_x", &e.EliminationLocationX, p.EliminationLocationX)
	types.Assign(&cols, "elimination_location_y", &e.EliminationLocationY, p.EliminationLocationY)
	return cols
}
