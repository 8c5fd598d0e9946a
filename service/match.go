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

type MatchService struct {
	*baseServiceImpl[models.Match, *models.Match]
}

func NewMatchService(db *bun.DB) *MatchService {
	return &MatchService{newBaseService[models.Match](db, "Match", matchRules)}
}

// ListByCompetition returns the matches of a competition.
func (s *MatchService) ListByCompetition(ctx context.Context, competitionID int64) ([]*models.Match, error) {
	if err := mustExist[models.Competition](ctx, s.db, "Competition", competitionID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("competition_id", competitionID))
}

// ListByTeam returns every match the team plays in, as team1 or team2,
// each match once.
func (s *MatchService) ListByTeam(ctx context.Context, teamID int64) ([]*models.Match, error) {
	if err := mustExist[models.Team](ctx, s.db, "Team", teamID); err != nil {
		return nil, err
	}
	home, err := s.List(ctx, types.Eq("team1_id", teamID))
	if err != nil {
		return nil, err
	}
	away, err := s.List(ctx, types.Eq("team2_id", teamID))
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(home)+len(away))
	matches := make([]*models.Match, 0, len(home)+len(away))
	for _, m := range append(home, away...) {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		matches = append(matches, m)
	}
	return matches, nil
}

func matchRules(ctx context.Context, db bun.IDB, m, previous *models.Match) error {
	if m.Team1ID == m.Team2ID {
		return errs.Invalid("A team cannot play against itself")
	}
	if previous == nil || previous.CompetitionID != m.CompetitionID {
		if err := mustExist[models.Competition](ctx, db, "Competition", m.CompetitionID); err != nil {
			return err
		}
	}
	if previous == nil || previous.Team1ID != m.Team1ID {
		if err := mustExist[models.Team](ctx, db, "Team", m.Team1ID); err != nil {
			return err
		}
	}
	if previous == nil || previous.Team2ID != m.Team2ID {
		if err := mustExist[models.Team](ctx, db, "Team", m.Team2ID); err != nil {
			return err
		}
	}
	return nil
}

type SetService struct {
	*baseServiceImpl[models.Set, *models.Set]
}

func NewSetService(db *bun.DB) *SetService {
	return &SetService{newBaseService[models.Set](db, "Set", setRules)}
}

// ListByMatch returns the sets of a match.
func (s *SetService) ListByMatch(ctx context.Context, matchID int64) ([]*models.Set, error) {
	if err := mustExist[models.Match](ctx, s.db, "Match", matchID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("match_id", matchID))
}

func setRules(ctx context.Context, db bun.IDB, set, previous *models.Set) error {
	if set.EndTime != nil && set.EndTime.Before(set.StartTime) {
		return errs.Invalid("Set end_time cannot be before start_time")
	}
	matchChanged := previous == nil || previous.MatchID != set.MatchID
	if matchChanged {
		if err := mustExist[models.Match](ctx, db, "Match", set.MatchID); err != nil {
			return err
		}
	}
	if previous == nil || !samePtr(previous.WinningTeamID, set.WinningTeamID) {
		if err := mustExistOptional[models.Team](ctx, db, "Team", set.WinningTeamID); err != nil {
			return err
		}
	}
	if !matchChanged && previous.SetNumber == set.SetNumber {
		return nil
	}
	return unique[models.Set](ctx, db, set.ID,
		errs.Conflict("Set number %d already exists for match %d", set.SetNumber, set.MatchID),
		types.Eq("match_id", set.MatchID),
		types.Eq("set_number", set.SetNumber))
}
