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

// Package service applies the business rules of each entity on top of the
// generic repository. Every mutation runs in its own transaction.
package service

import "github.com/uptrace/bun"

// Services groups one service per entity.
type Services struct {
	Organisations     *OrganisationService
	Competitions      *CompetitionService
	Teams             *TeamService
	Players           *PlayerService
	Matches           *MatchService
	Sets              *SetService
	ThrowEvents       *ThrowEventService
	CatchEvents       *CatchEventService
	EliminationEvents *EliminationEventService
	TeamCompetitions  *TeamCompetitionService
	PlayerTeamHistory *PlayerTeamHistoryService
}

func NewServices(db *bun.DB) *Services {
	return &Services{
		Organisations:     NewOrganisationService(db),
		Competitions:      NewCompetitionService(db),
		Teams:             NewTeamService(db),
		Players:           NewPlayerService(db),
		Matches:           NewMatchService(db),
		Sets:              NewSetService(db),
		ThrowEvents:       NewThrowEventService(db),
		CatchEvents:       NewCatchEventService(db),
		EliminationEvents: NewEliminationEventService(db),
		TeamCompetitions:  NewTeamCompetitionService(db),
		PlayerTeamHistory: NewPlayerTeamHistoryService(db),
	}
}
