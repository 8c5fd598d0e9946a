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

	"github.com/tomoncle/dodgeball/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
type CrudRepository[T any] interface {
	// Create inserts entity and returns the stored row, generated columns included.
	Create(ctx context.Context, entity *T) (*T, error)

	// GetOne returns the first row matching every filter, or ErrNotFound.
	GetOne(ctx context.Context, filters ...*types.QueryFilter) (*T, error)

	// GetAll returns every row matching all filters.
	GetAll(ctx context.Context, filters ...*types.QueryFilter) ([]*T, error)

	Exists(ctx context.Context, filters ...*types.QueryFilter) (bool, error)

	// Update writes only the named columns and returns the refreshed row.
	Update(ctx context.Context, entity *T, columns ...string) (*T, error)

	// Delete removes the row and returns it as it was before deletion.
	Delete(ctx context.Context, entity *T) (*T, error)
}

// Repository combines CRUD operations and exposes Bun query builders for
// advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
