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

// Package testutil opens throwaway SQLite databases with the full schema.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dodgeball/database"
	_ "github.com/tomoncle/dodgeball/models"
	"github.com/uptrace/bun"
)

// NewTestDB returns a migrated SQLite database in t.TempDir with foreign
// keys enforced. It is closed when the test finishes.
func NewTestDB(t testing.TB) *bun.DB {
	t.Helper()
	manager := NewTestManager(t)
	return manager.GetDB()
}

// NewTestManager is NewTestDB returning the manager itself.
func NewTestManager(t testing.TB) database.AbstractDatabaseManager {
	t.Helper()

	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.DBName = filepath.Join(t.TempDir(), "test")
	cfg.ConnectionConfig.HealthCheckInterval = 0
	cfg.ConnectionConfig.EnableReconnect = false
	cfg.ConnectionConfig.SlowQueryTime = time.Minute

	manager := database.NewDatabaseManager(cfg)
	manager.SetLogger(database.GetLogger())

	ctx := context.Background()
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })
	require.NoError(t, manager.RunMigrations(ctx))
	return manager
}
