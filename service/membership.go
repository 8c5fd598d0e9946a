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
	"time"

	"github.com/tomoncle/dodgeball/errs"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
)

type TeamCompetitionService struct {
	*baseServiceImpl[models.TeamCompetition, *models.TeamCompetition]
}

func NewTeamCompetitionService(db *bun.DB) *TeamCompetitionService {
	base := newBaseService[models.TeamCompetition](db, "Team competition", teamCompetitionRules)
	base.defaults = func(tc *models.TeamCompetition) {
		if tc.JoinedDate.IsZero() {
			tc.JoinedDate = time.Now().UTC()
		}
	}
	return &TeamCompetitionService{base}
}

func (s *TeamCompetitionService) ListByCompetition(ctx context.Context, competitionID int64) ([]*models.TeamCompetition, error) {
	if err := mustExist[models.Competition](ctx, s.db, "Competition", competitionID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("competition_id", competitionID))
}

func (s *TeamCompetitionService) ListByTeam(ctx context.Context, teamID int64) ([]*models.TeamCompetition, error) {
	if err := mustExist[models.Team](ctx, s.db, "Team", teamID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("team_id", teamID))
}

func teamCompetitionRules(ctx context.Context, db bun.IDB, tc, previous *models.TeamCompetition) error {
	teamChanged := previous == nil || previous.TeamID != tc.TeamID
	competitionChanged := previous == nil || previous.CompetitionID != tc.CompetitionID
	if teamChanged {
		if err := mustExist[models.Team](ctx, db, "Team", tc.TeamID); err != nil {
			return err
		}
	}
	if competitionChanged {
		if err := mustExist[models.Competition](ctx, db, "Competition", tc.CompetitionID); err != nil {
			return err
		}
	}
	if !teamChanged && !competitionChanged {
		return nil
	}
	return unique[models.TeamCompetition](ctx, db, tc.ID,
		errs.Conflict("Team %d is already registered in competition %d", tc.TeamID, tc.CompetitionID),
		types.Eq("team_id", tc.TeamID),
		types.Eq("competition_id", tc.CompetitionID))
}

type PlayerTeamHistoryService struct {
	*baseServiceImpl[models.PlayerTeamHistory, *models.PlayerTeamHistory]
}

func NewPlayerTeamHistoryService(db *bun.DB) *PlayerTeamHistoryService {
	return &PlayerTeamHistoryService{newBaseService[models.PlayerTeamHistory](db, "Player team history", playerTeamHistoryRules)}
}

func (s *PlayerTeamHistoryService) ListByPlayer(ctx context.Context, playerID int64) ([]*models.PlayerTeamHistory, error) {
	if err := mustExist[models.Player](ctx, s.db, "Player", playerID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("player_id", playerID))
}

func playerTeamHistoryRules(ctx context.Context, db bun.IDB, h, previous *models.PlayerTeamHistory) error {
	if h.LeftAt != nil && h.LeftAt.Before(h.JoinedAt) {
		return errs.Invalid("left_at cannot be before joined_at")
	}
	if previous == nil || previous.PlayerID != h.PlayerID {
		if err := mustExist[models.Player](ctx, db, "Player", h.PlayerID); err != nil {
			return err
		}
	}
	if previous == nil || previous.TeamID != h.TeamID {
		if err := mustExist[models.Team](ctx, db, "Team", h.TeamID); err != nil {
			return err
		}
	}
	return nil
}
