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

import "time"

// Base holds the columns every table shares.
type Base struct {
	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

func (b *Base) GetID() int64 { return b.ID }

// Touch stamps UpdatedAt, and CreatedAt when it has not been set yet.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// ResetIdentity clears the generated columns so a decoded payload can be inserted as a new row.
func (b *Base) ResetIdentity() {
	b.ID = 0
	b.CreatedAt = time.Time{}
	b.UpdatedAt = time.Time{}
}

// Entity is implemented by pointers to every model in this package.
type Entity interface {
	GetID() int64
	Touch(now time.Time)
	ResetIdentity()
}

// Patch applies the fields present in an update payload to an entity and
// returns the columns it changed.
type Patch[T any] interface {
	Apply(entity *T) []string
}
