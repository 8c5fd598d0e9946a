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

// Package api exposes the services over HTTP with echo.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tomoncle/dodgeball/database"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/service"
	"github.com/tomoncle/dodgeball/utils"
)

var log = utils.NewLogger("API")

// HealthChecker reports the state of the store behind the services.
type HealthChecker interface {
	HealthCheck(ctx context.Context) *database.HealthStatus
}

// Options configures NewRouter. Registry defaults to a fresh registry with
// the Go and process collectors.
type Options struct {
	Services *service.Services
	Health   HealthChecker
	Registry *prometheus.Registry
}

// NewRouter builds the echo instance with every route mounted.
func NewRouter(opts Options) (*echo.Echo, error) {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics, err := NewHTTPMetrics(registry)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(AccessLog())
	e.Use(metrics.Middleware())

	e.GET("/health", healthHandler(opts.Health))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	registerRoutes(e.Group("/api/v1"), opts.Services)
	return e, nil
}

func registerRoutes(v1 *echo.Group, s *service.Services) {
	register[models.Organisation, models.OrganisationPatch](v1, "organisations", s.Organisations, nil)
	competitions := register[models.Competition, models.CompetitionPatch](v1, "competitions", s.Competitions, nil)
	competitions.GET("/organisation/:id", listBy(s.Competitions.ListByOrganisation))
	register[models.Team, models.TeamPatch](v1, "teams", s.Teams, nil)
	register[models.Player, models.PlayerPatch](v1, "players", s.Players, nil)

	matches := register[models.Match, models.MatchPatch](v1, "matches", s.Matches, models.NewMatch)
	matches.GET("/competition/:id", listBy(s.Matches.ListByCompetition))
	matches.GET("/team/:id", listBy(s.Matches.ListByTeam))

	sets := register[models.Set, models.SetPatch](v1, "sets", s.Sets, nil)
	sets.GET("/match/:id", listBy(s.Sets.ListByMatch))

	throws := register[models.ThrowEvent, models.ThrowEventPatch](v1, "throw-events", s.ThrowEvents, models.NewThrowEvent)
	throws.GET("/set/:id", listBy(s.ThrowEvents.ListBySet))
	catches := register[models.CatchEvent, models.CatchEventPatch](v1, "catch-events", s.CatchEvents, nil)
	catches.GET("/set/:id", listBy(s.CatchEvents.ListBySet))
	eliminations := register[models.EliminationEvent, models.EliminationEventPatch](v1, "elimination-events", s.EliminationEvents, nil)
	eliminations.GET("/set/:id", listBy(s.EliminationEvents.ListBySet))

	memberships := register[models.TeamCompetition, models.TeamCompetitionPatch](v1, "team-competitions", s.TeamCompetitions, nil)
	memberships.GET("/competition/:id", listBy(s.TeamCompetitions.ListByCompetition))
	memberships.GET("/team/:id", listBy(s.TeamCompetitions.ListByTeam))
	history := register[models.PlayerTeamHistory, models.PlayerTeamHistoryPatch](v1, "player-team-history", s.PlayerTeamHistory, nil)
	history.GET("/player/:id", listBy(s.PlayerTeamHistory.ListByPlayer))
}

func healthHandler(health HealthChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if health == nil {
			return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		status := health.HealthCheck(ctx)
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, status)
	}
}
