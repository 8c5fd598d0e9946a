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

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type timestamped interface {
	Touch(now time.Time)
}

type baseRepositoryImpl[T any] struct {
	db bun.IDB
}

// NewRepository returns a generic repository backed by db, which may be a
// *bun.DB or a bun.Tx.
func NewRepository[T any](db bun.IDB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, fmt.Errorf("entity cannot be nil")
	}
	touch(entity)
	if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return nil, err
	}
	return r.refresh(ctx, entity)
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, filters ...*types.QueryFilter) (*T, error) {
	entity := new(T)
	err := applyFilters(r.db.NewSelect().Model(entity), filters).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context, filters ...*types.QueryFilter) ([]*T, error) {
	entities := make([]*T, 0)
	err := applyFilters(r.db.NewSelect().Model(&entities), filters).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Exists(ctx context.Context, filters ...*types.QueryFilter) (bool, error) {
	return applyFilters(r.db.NewSelect().Model((*T)(nil)), filters).Exists(ctx)
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T, columns ...string) (*T, error) {
	if entity == nil {
		return nil, ErrNotFound
	}
	if len(columns) > 0 {
		if touch(entity) {
			columns = append(columns[:len(columns):len(columns)], "updated_at")
		}
		_, err := r.db.NewUpdate().
			Model(entity).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, err
		}
	}
	return r.refresh(ctx, entity)
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, ErrNotFound
	}
	prior := *entity
	if err := r.db.NewSelect().Model(&prior).WherePK().Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	if _, err := r.db.NewDelete().Model(&prior).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return &prior, nil
}

func (r *baseRepositoryImpl[T]) refresh(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.NewSelect().Model(entity).WherePK().Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return entity, nil
}

func applyFilters(q *bun.SelectQuery, filters []*types.QueryFilter) *bun.SelectQuery {
	for _, f := range filters {
		if f != nil {
			q = q.Where(f.Schema, f.Args...)
		}
	}
	return q
}

func touch(entity any) bool {
	t, ok := entity.(timestamped)
	if ok {
		t.Touch(time.Now().UTC())
	}
	return ok
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
