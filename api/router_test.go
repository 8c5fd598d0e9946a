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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/service"
	"github.com/tomoncle/dodgeball/testutil"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	manager := testutil.NewTestManager(t)
	e, err := NewRouter(Options{
		Services: service.NewServices(manager.GetDB()),
		Health:   manager,
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestOrganisationLifecycle(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/api/v1/organisations",
		`{"name":"British Dodgeball","country_code":"ENG","region":"North West"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	org := decode[models.Organisation](t, rec)
	require.NotZero(t, org.ID)
	path := "/api/v1/organisations/" + strconv.FormatInt(org.ID, 10)

	rec = do(t, e, http.MethodPost, "/api/v1/organisations", `{"name":"British Dodgeball","country_code":"SCO"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	errBody := decode[ErrorResponse](t, rec)
	assert.Equal(t, http.StatusConflict, errBody.Code)
	assert.Equal(t, "Organisation with name 'British Dodgeball' already exists", errBody.Message)

	// Only the keys sent are written: region is cleared, name is kept.
	rec = do(t, e, http.MethodPut, path, `{"region":null,"website":"https://britishdodgeball.org"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Organisation](t, rec)
	assert.Equal(t, "British Dodgeball", updated.Name)
	assert.Nil(t, updated.Region)
	require.NotNil(t, updated.Website)
	assert.Equal(t, "https://britishdodgeball.org", *updated.Website)

	rec = do(t, e, http.MethodGet, "/api/v1/organisations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Organisation](t, rec), 1)

	rec = do(t, e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Organisation with ID "+strconv.FormatInt(org.ID, 10)+" not found", decode[ErrorResponse](t, rec).Message)
}

func TestValidationErrorBody(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/api/v1/organisations", `{"country_code":"XX"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Validation failed", body.Message)
	fields := map[string]string{}
	for _, f := range body.Fields {
		fields[f.Field] = f.Error
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Contains(t, fields, "country_code")

	rec = do(t, e, http.MethodGet, "/api/v1/teams/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID 'abc'", decode[ErrorResponse](t, rec).Message)

	rec = do(t, e, http.MethodPost, "/api/v1/teams", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchRoutes(t *testing.T) {
	e := newTestRouter(t)

	org := decode[models.Organisation](t, do(t, e, http.MethodPost, "/api/v1/organisations", `{"name":"BD","country_code":"ENG"}`))
	comp := decode[models.Competition](t, do(t, e, http.MethodPost, "/api/v1/competitions",
		`{"name":"Premier","competition_format":"league","organisation_id":`+strconv.FormatInt(org.ID, 10)+
			`,"age_category":"adult","court_size":"bd"}`))
	reds := decode[models.Team](t, do(t, e, http.MethodPost, "/api/v1/teams", `{"name":"Reds"}`))
	blues := decode[models.Team](t, do(t, e, http.MethodPost, "/api/v1/teams", `{"name":"Blues"}`))
	require.NotZero(t, comp.ID)

	payload := func(t1, t2 int64) string {
		return `{"competition_id":` + strconv.FormatInt(comp.ID, 10) +
			`,"team1_id":` + strconv.FormatInt(t1, 10) +
			`,"team2_id":` + strconv.FormatInt(t2, 10) +
			`,"match_date":"2025-06-01T10:00:00Z"}`
	}

	rec := do(t, e, http.MethodPost, "/api/v1/matches", payload(reds.ID, reds.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A team cannot play against itself", decode[ErrorResponse](t, rec).Message)

	rec = do(t, e, http.MethodPost, "/api/v1/matches", payload(reds.ID, blues.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	m := decode[models.Match](t, rec)
	assert.Equal(t, models.MatchScheduled, m.Status)

	rec = do(t, e, http.MethodGet, "/api/v1/matches/team/"+strconv.FormatInt(blues.ID, 10), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Match](t, rec), 1)

	rec = do(t, e, http.MethodGet, "/api/v1/matches/team/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPut, "/api/v1/matches/"+strconv.FormatInt(m.ID, 10), `{"status":"finished"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Teams still playing matches cannot be deleted.
	rec = do(t, e, http.MethodDelete, "/api/v1/teams/"+strconv.FormatInt(reds.ID, 10), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[map[string]any](t, rec)["healthy"].(bool))

	do(t, e, http.MethodGet, "/api/v1/teams", "")
	rec = do(t, e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dodgeball_http_requests_total{method="GET",route="/api/v1/teams",status="200"} 1`)

	rec = do(t, e, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	e := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
