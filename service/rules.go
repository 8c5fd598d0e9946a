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
	"github.com/tomoncle/dodgeball/repository"
	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
)

// mustExist fails with NotFound naming id when no T row has that id.
func mustExist[T any](ctx context.Context, db bun.IDB, name string, id int64) error {
	ok, err := repository.NewRepository[T](db).Exists(ctx, types.ID(id))
	if err != nil {
		return errs.Internal("Failed to look up %s", name).Wrap(err)
	}
	if !ok {
		return errs.EntityNotFound(name, id)
	}
	return nil
}

// mustExistOptional is mustExist for nullable references.
func mustExistOptional[T any](ctx context.Context, db bun.IDB, name string, id *int64) error {
	if id == nil {
		return nil
	}
	return mustExist[T](ctx, db, name, *id)
}

// unique returns conflict when a T row other than selfID matches every filter.
func unique[T any](ctx context.Context, db bun.IDB, selfID int64, conflict *errs.Error, filters ...*types.QueryFilter) error {
	if selfID != 0 {
		filters = append(filters, types.Ne("id", selfID))
	}
	dup, err := repository.NewRepository[T](db).Exists(ctx, filters...)
	if err != nil {
		return errs.Internal("Failed to check uniqueness").Wrap(err)
	}
	if dup {
		return conflict
	}
	return nil
}

func samePtr[V comparable](a, b *V) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
