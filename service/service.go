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
	"errors"
	"strings"

	"github.com/tomoncle/dodgeball/database"
	"github.com/tomoncle/dodgeball/errs"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/repository"
	"github.com/tomoncle/dodgeball/types"
	"github.com/tomoncle/dodgeball/utils"
	"github.com/tomoncle/dodgeball/validation"
	"github.com/uptrace/bun"
)

var log = utils.NewLogger("SERVICE")

type Service[T any] interface {
	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id int64) (*T, error)

	// List returns entities that match every filter.
	List(ctx context.Context, filters ...*types.QueryFilter) ([]*T, error)

	// Create validates and inserts a new entity.
	Create(ctx context.Context, entity *T) (*T, error)

	// Update applies the fields present in patch to an existing entity.
	Update(ctx context.Context, id int64, patch models.Patch[T]) (*T, error)

	// Delete removes an entity and returns it as it was.
	Delete(ctx context.Context, id int64) (*T, error)
}

type entityPtr[T any] interface {
	*T
	models.Entity
}

// ruleFunc checks entity against the rest of the store before it is written.
// previous is nil on create and holds the stored state on update.
type ruleFunc[T any] func(ctx context.Context, db bun.IDB, entity, previous *T) error

type baseServiceImpl[T any, PT entityPtr[T]] struct {
	db       *bun.DB
	name     string
	rules    ruleFunc[T]
	defaults func(entity *T)
}

func newBaseService[T any, PT entityPtr[T]](db *bun.DB, name string, rules ruleFunc[T]) *baseServiceImpl[T, PT] {
	return &baseServiceImpl[T, PT]{db: db, name: name, rules: rules}
}

func (s *baseServiceImpl[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	return s.load(ctx, s.db, id)
}

func (s *baseServiceImpl[T, PT]) List(ctx context.Context, filters ...*types.QueryFilter) ([]*T, error) {
	entities, err := repository.NewRepository[T](s.db).GetAll(ctx, filters...)
	if err != nil {
		return nil, errs.Internal("Failed to list %ss", s.label()).Wrap(err)
	}
	return entities, nil
}

func (s *baseServiceImpl[T, PT]) Create(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, errs.Invalid("%s payload is required", s.name)
	}
	PT(entity).ResetIdentity()
	if s.defaults != nil {
		s.defaults(entity)
	}
	if err := validation.Struct(entity); err != nil {
		return nil, err
	}

	var created *T
	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := s.check(ctx, tx, entity, nil); err != nil {
			return err
		}
		var err error
		created, err = repository.NewRepository[T](tx).Create(ctx, entity)
		return s.classify(err, "create")
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *baseServiceImpl[T, PT]) Update(ctx context.Context, id int64, patch models.Patch[T]) (*T, error) {
	if patch == nil {
		return s.Get(ctx, id)
	}

	var updated *T
	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		previous := *current
		columns := patch.Apply(current)
		if err := validation.Struct(current); err != nil {
			return err
		}
		if err := s.check(ctx, tx, current, &previous); err != nil {
			return err
		}
		updated, err = repository.NewRepository[T](tx).Update(ctx, current, columns...)
		return s.classify(err, "update")
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *baseServiceImpl[T, PT]) Delete(ctx context.Context, id int64) (*T, error) {
	var deleted *T
	err := s.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		deleted, err = repository.NewRepository[T](tx).Delete(ctx, current)
		if _, kind := database.IsSqlError(err); kind == database.ForeignKeyViolationErr {
			return errs.Conflict("%s with ID %d is still referenced by other records", s.name, id).Wrap(err)
		}
		return s.classify(err, "delete")
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *baseServiceImpl[T, PT]) load(ctx context.Context, db bun.IDB, id int64) (*T, error) {
	entity, err := repository.NewRepository[T](db).GetOne(ctx, types.ID(id))
	if repository.IsNotFound(err) {
		return nil, errs.EntityNotFound(s.name, id)
	}
	if err != nil {
		return nil, errs.Internal("Failed to load %s", s.label()).Wrap(err)
	}
	return entity, nil
}

func (s *baseServiceImpl[T, PT]) check(ctx context.Context, db bun.IDB, entity, previous *T) error {
	if s.rules == nil {
		return nil
	}
	return s.rules(ctx, db, entity, previous)
}

// inTx runs fn as one unit of work: it commits when fn returns nil and
// rolls back otherwise.
func (s *baseServiceImpl[T, PT]) inTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return s.db.RunInTx(ctx, nil, fn)
}

// classify maps a repository failure onto the error kinds clients see.
// Constraint violations that slipped past the rule checks land here.
func (s *baseServiceImpl[T, PT]) classify(err error, op string) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	if repository.IsNotFound(err) {
		return errs.Internal("Failed to %s %s", op, s.label()).Wrap(err)
	}
	_, kind := database.IsSqlError(err)
	switch kind {
	case database.DuplicateKeyErr:
		return errs.Conflict("%s conflicts with an existing record", s.name).Wrap(err)
	case database.ForeignKeyViolationErr:
		return errs.NotFound("%s references a record that does not exist", s.name).Wrap(err)
	case database.NotNullViolationErr, database.CheckConstraintViolationErr, database.DataTruncatedErr:
		return errs.Invalid("%s has missing or invalid fields", s.name).Wrap(err)
	}
	log.WithError(err).WithField("entity", s.name).Errorf("failed to %s", op)
	return errs.Internal("Failed to %s %s", op, s.label()).Wrap(err)
}

func (s *baseServiceImpl[T, PT]) label() string {
	return strings.ToLower(s.name)
}
