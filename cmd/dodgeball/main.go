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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tomoncle/dodgeball/api"
	"github.com/tomoncle/dodgeball/config"
	"github.com/tomoncle/dodgeball/database"
	_ "github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/service"
	"github.com/tomoncle/dodgeball/utils"
)

var log = utils.NewLogger("MAIN")

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dodgeball",
		Short:         "Dodgeball competition API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg.ApplyLogging()
		return cfg, nil
	}

	root.AddCommand(serveCommand(load), migrateCommand(load))
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	cobra.OnFinalize(func() {
		if err := database.CloseDB(); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	})
	root.RunE = func(cmd *cobra.Command, args []string) error { return cmd.Help() }
	return withErrorLog(root)
}

func serveCommand(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to the database, migrate it and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.InitDB(ctx, &cfg.Database)
			if err != nil {
				return err
			}
			e, err := api.NewRouter(api.Options{
				Services: service.NewServices(db),
				Health:   database.GetDatabaseManager(),
			})
			if err != nil {
				return err
			}
			e.Server.ReadTimeout = cfg.Server.ReadTimeout
			e.Server.WriteTimeout = cfg.Server.WriteTimeout

			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", cfg.Server.Addr).Info("HTTP server listening")
				if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down HTTP server: %w", err)
			}
			return <-errCh
		},
	}
}

func migrateCommand(load func() (*config.Config, error)) *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			db, err := database.InitDatabaseWithOptions(cmd.Context(), &cfg.Database, true)
			if err != nil {
				return err
			}

			mm := database.NewMigrationManager(db, database.GetLogger(), cfg.Database.DataMigrateConfig)
			applied, err := mm.GetAppliedMigrations(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list applied migrations: %w", err)
			}
			for _, m := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s %s\n", m.Version, m.Name, m.AppliedAt.Format("2006-01-02 15:04:05"))
			}

			if exportPath != "" {
				if err := mm.ForeignKeys().ExportToConfig(exportPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "foreign keys written to %s\n", exportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportPath, "export-foreign-keys", "", "write the foreign key constraints to a YAML file")
	return cmd
}

// withErrorLog logs the error a subcommand fails with before cobra returns it.
func withErrorLog(root *cobra.Command) *cobra.Command {
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				log.WithError(err).Errorf("%s failed", cmd.Name())
			}
			return err
		}
	}
	return root
}
