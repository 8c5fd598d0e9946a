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

package database_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dodgeball/database"
	_ "github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/testutil"
)

func TestIsSqlError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		is   bool
		kind database.SQLError
	}{
		{"nil", nil, false, database.UnknownErr},
		{"plain", errors.New("boom"), false, database.UnknownErr},
		{"pq unique", &pq.Error{Code: "23505"}, true, database.DuplicateKeyErr},
		{"pq foreign key", fmt.Errorf("insert: %w", &pq.Error{Code: "23503"}), true, database.ForeignKeyViolationErr},
		{"pq not null", &pq.Error{Code: "23502"}, true, database.NotNullViolationErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true, database.DuplicateKeyErr},
		{"mysql restrict", &mysql.MySQLError{Number: 1451}, true, database.ForeignKeyViolationErr},
		{"mysql no default", &mysql.MySQLError{Number: 1364}, true, database.NotNullViolationErr},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: teams.name (2067)"), true, database.DuplicateKeyErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: organisations.name"), true, database.NotNullViolationErr},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), true, database.ForeignKeyViolationErr},
		{"sqlite no table", errors.New("no such table: teams"), true, database.NoTableErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is, kind := database.IsSqlError(tc.err)
			assert.Equal(t, tc.is, is)
			assert.Equal(t, tc.kind, kind, kind.String())
		})
	}
	assert.True(t, database.DuplicateKeyErr.IsConstraintViolation())
	assert.False(t, database.NoTableErr.IsConstraintViolation())
}

func TestRegisteredModelsOrderedByPriority(t *testing.T) {
	models := database.GetRegisteredModels()
	require.NotEmpty(t, models)
	for i := 1; i < len(models); i++ {
		assert.LessOrEqual(t, models[i-1].Priority(), models[i].Priority())
	}
}

func TestForeignKeyValidation(t *testing.T) {
	fkm := database.NewForeignKeyManager(nil)
	assert.Empty(t, fkm.ValidateConstraints())
	assert.NotEmpty(t, fkm.GetConstraintsByTable("matches"))

	fk := database.ForeignKeyConstraint{Table: "sets", Column: "match_id", ReferenceTable: "matches"}
	assert.Equal(t, "fk_sets_match_id", fk.GenerateConstraintName())
}

func TestForeignKeyConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fk", "foreign_keys.yaml")
	fkm := database.NewForeignKeyManager(nil)
	require.NoError(t, fkm.ExportToConfig(path))

	loaded, err := database.LoadForeignKeyConfig(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, fkm.ListAllConstraints(), loaded)

	// A file with a custom set replaces the registered constraints.
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte(`
foreign_keys:
  - table: sets
    column: match_id
    reference_table: matches
    on_delete: cascade
`), 0o600))
	configured := database.NewConfigurableForeignKeyManager(nil, custom)
	require.Len(t, configured.ListAllConstraints(), 1)
	assert.Empty(t, configured.ValidateConstraints())

	// A missing file falls back to the registered set.
	fallback := database.NewConfigurableForeignKeyManager(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Len(t, fallback.ListAllConstraints(), len(fkm.ListAllConstraints()))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	manager := testutil.NewTestManager(t)

	require.NoError(t, manager.RunMigrations(ctx))

	mm := database.NewMigrationManager(manager.GetDB(), nil, database.DataMigrateConfig{EnableForeignKey: true})
	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "001", applied[0].Version)

	var fkOn int
	require.NoError(t, manager.GetDB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fkOn))
	assert.Equal(t, 1, fkOn)

	status := manager.HealthCheck(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.MaxOpenConns)
}

func TestGlobalDatabase(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, database.RunMigrations(ctx))
	assert.False(t, database.GetHealthStatus(ctx).Healthy)

	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.DBName = filepath.Join(t.TempDir(), "global")
	cfg.ConnectionConfig.HealthCheckInterval = 0

	db, err := database.InitDB(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB() })

	assert.Same(t, db, database.GetDB())
	require.NoError(t, database.RunMigrations(ctx))
	assert.True(t, database.GetHealthStatus(ctx).Healthy)
	assert.Equal(t, 1, database.GetDatabaseStats().MaxOpenConns)

	_, err = database.InitDB(ctx, nil)
	assert.Error(t, err)

	bad := database.DefaultConfig()
	bad.ConnectionConfig.Type = "oracle"
	_, err = database.InitDB(ctx, bad)
	assert.ErrorContains(t, err, "unsupported database type")
}
