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

type ThrowEventService struct {
	*baseServiceImpl[models.ThrowEvent, *models.ThrowEvent]
}

func NewThrowEventService(db *bun.DB) *ThrowEventService {
	return &ThrowEventService{newBaseService[models.ThrowEvent](db, "Throw event", throwEventRules)}
}

func (s *ThrowEventService) ListBySet(ctx context.Context, setID int64) ([]*models.ThrowEvent, error) {
	return listBySet(ctx, s.baseServiceImpl, setID)
}

func throwEventRules(ctx context.Context, db bun.IDB, e, previous *models.ThrowEvent) error {
	if previous == nil || previous.SetID != e.SetID {
		if err := mustExist[models.Set](ctx, db, "Set", e.SetID); err != nil {
			return err
		}
	}
	if previous == nil || previous.PlayerID != e.PlayerID {
		if err := mustExist[models.Player](ctx, db, "Player", e.PlayerID); err != nil {
			return err
		}
	}
	if previous == nil || !samePtr(previous.TargetPlayerID, e.TargetPlayerID) {
		if err := mustExistOptional[models.Player](ctx, db, "Player", e.TargetPlayerID); err != nil {
			return err
		}
	}
	return nil
}

type CatchEventService struct {
	*baseServiceImpl[models.CatchEvent, *models.CatchEvent]
}

func NewCatchEventService(db *bun.DB) *CatchEventService {
	return &CatchEventService{newBaseService[models.CatchEvent](db, "Catch event", catchEventRules)}
}

func (s *CatchEventService) ListBySet(ctx context.Context, setID int64) ([]*models.CatchEvent, error) {
	return listBySet(ctx, s.baseServiceImpl, setID)
}

func catchEventRules(ctx context.Context, db bun.IDB, e, previous *models.CatchEvent) error {
	if previous == nil || previous.SetID != e.SetID {
		if err := mustExist[models.Set](ctx, db, "Set", e.SetID); err != nil {
			return err
		}
	}
	if previous == nil || previous.PlayerID != e.PlayerID {
		if err := mustExist[models.Player](ctx, db, "Player", e.PlayerID); err != nil {
			return err
		}
	}
	if previous == nil || previous.ThrowEventID != e.ThrowEventID {
		if err := mustExist[models.ThrowEvent](ctx, db, "Throw event", e.ThrowEventID); err != nil {
			return err
		}
	}
	return nil
}

type EliminationEventService struct {
	*baseServiceImpl[models.EliminationEvent, *models.EliminationEvent]
}

func NewEliminationEventService(db *bun.DB) *EliminationEventService {
	return &EliminationEventService{newBaseService[models.EliminationEvent](db, "Elimination event", eliminationRules)}
}

func (s *EliminationEventService) ListBySet(ctx context.Context, setID int64) ([]*models.EliminationEvent, error) {
	return listBySet(ctx, s.baseServiceImpl, setID)
}

func eliminationRules(ctx context.Context, db bun.IDB, e, previous *models.EliminationEvent) error {
	setChanged := previous == nil || previous.SetID != e.SetID
	playerChanged := previous == nil || previous.EliminatedPlayerID != e.EliminatedPlayerID
	if setChanged {
		if err := mustExist[models.Set](ctx, db, "Set", e.SetID); err != nil {
			return err
		}
	}
	if playerChanged {
		if err := mustExist[models.Player](ctx, db, "Player", e.EliminatedPlayerID); err != nil {
			return err
		}
	}
	if previous == nil || !samePtr(previous.ThrowEventID, e.ThrowEventID) {
		if err := mustExistOptional[models.ThrowEvent](ctx, db, "Throw event", e.ThrowEventID); err != nil {
			return err
		}
	}
	if previous == nil || !samePtr(previous.CatchEventID, e.CatchEventID) {
		if err := mustExistOptional[models.CatchEvent](ctx, db, "Catch event", e.CatchEventID); err != nil {
			return err
		}
	}
	if !setChanged && !playerChanged {
		return nil
	}
	return unique[models.EliminationEvent](ctx, db, e.ID,
		errs.Conflict("Player %d is already eliminated in set %d", e.EliminatedPlayerID, e.SetID),
		types.Eq("set_id", e.SetID),
		types.Eq("eliminated_player_id", e.EliminatedPlayerID))
}

func listBySet[T any, PT entityPtr[T]](ctx context.Context, s *baseServiceImpl[T, PT], setID int64) ([]*T, error) {
	if err := mustExist[models.Set](ctx, s.db, "Set", setID); err != nil {
		return nil, err
	}
	return s.List(ctx, types.Eq("set_id", setID))
}
