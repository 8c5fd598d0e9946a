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

package types

import (
	"reflect"

	"github.com/uptrace/bun"
)

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// Eq matches rows whose column equals value. A nil value (or nil pointer)
// matches NULL columns.
func Eq(column string, value interface{}) *QueryFilter {
	if isNil(value) {
		return NewQueryFilter("? IS NULL", bun.Ident(column))
	}
	return NewQueryFilter("? = ?", bun.Ident(column), value)
}

// Ne matches rows whose column differs from value.
func Ne(column string, value interface{}) *QueryFilter {
	if isNil(value) {
		return NewQueryFilter("? IS NOT NULL", bun.Ident(column))
	}
	return NewQueryFilter("? <> ?", bun.Ident(column), value)
}

// ID is shorthand for Eq("id", id).
func ID(id int64) *QueryFilter {
	return Eq("id", id)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
