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

package database

import (
	"sort"
	"sync"
)

var defaultRegistry = newModelRegistry()

// SQLModel represents a database model used for automatic migration.
// Instance should return a struct pointer compatible with Bun, and Priority
// controls table creation order (lower values first), so referenced tables
// must have a lower priority than the tables pointing at them.
type SQLModel interface {
	Instance() interface{}
	Priority() int
}

// ModelRegistry stores SQL models and foreign keys and exposes them in a
// deterministic order.
type ModelRegistry interface {
	Register(model SQLModel)
	Models() []SQLModel
	RegisterForeignKeys(fks ...ForeignKeyConstraint)
	ForeignKeys() []ForeignKeyConstraint
}

type modelRegistry struct {
	models      []SQLModel
	foreignKeys []ForeignKeyConstraint
	mutex       sync.RWMutex
}

func newModelRegistry() ModelRegistry {
	return &modelRegistry{
		models: make([]SQLModel, 0),
	}
}

func (r *modelRegistry) Register(model SQLModel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models = append(r.models, model)
}

func (r *modelRegistry) Models() []SQLModel {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]SQLModel, len(r.models))
	copy(result, r.models)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

func (r *modelRegistry) RegisterForeignKeys(fks ...ForeignKeyConstraint) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.foreignKeys = append(r.foreignKeys, fks...)
}

func (r *modelRegistry) ForeignKeys() []ForeignKeyConstraint {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make([]ForeignKeyConstraint, len(r.foreignKeys))
	copy(result, r.foreignKeys)
	return result
}

type ModelAdapter struct {
	instance interface{}
	priority int
}

// NewModelAdapter wraps a struct instance and priority into an SQLModel.
func NewModelAdapter(instance interface{}, priority int) SQLModel {
	return &ModelAdapter{
		instance: instance,
		priority: priority,
	}
}

func (a *ModelAdapter) Instance() interface{} {
	return a.instance
}

func (a *ModelAdapter) Priority() int {
	return a.priority
}

// GetRegisteredModels returns all models registered in the default registry
// sorted by ascending priority.
func GetRegisteredModels() []SQLModel {
	return defaultRegistry.Models()
}

// RegisteredModel adds a model to the default registry.
func RegisteredModel(model SQLModel) {
	defaultRegistry.Register(model)
}

func RegisteredModelInstances() []interface{} {
	models := GetRegisteredModels()
	modelInstances := make([]interface{}, len(models))
	for i, model := range models {
		modelInstances[i] = model.Instance()
	}
	return modelInstances
}

// RegisteredForeignKeys adds foreign keys to the default registry.
func RegisteredForeignKeys(fks ...ForeignKeyConstraint) {
	defaultRegistry.RegisterForeignKeys(fks...)
}

// GetRegisteredForeignKeys returns the foreign keys of the default registry.
func GetRegisteredForeignKeys() []ForeignKeyConstraint {
	return defaultRegistry.ForeignKeys()
}
