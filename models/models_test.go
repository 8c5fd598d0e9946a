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

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dodgeball/types"
)

func TestEnums(t *testing.T) {
	assert.True(t, FormatTournament.IsValid())
	assert.Equal(t, 1, FormatTournament.Number())
	assert.Equal(t, "TOURNAMENT", FormatTournament.Name())

	bogus := MatchStatus("paused")
	assert.False(t, bogus.IsValid())
	assert.Equal(t, types.IllegalValue, bogus.Number())
	assert.Equal(t, types.IllegalName, bogus.Name())
	assert.Equal(t, types.IllegalDesc, bogus.Desc())

	assert.True(t, CountryCode("WLD").IsValid())
	assert.Equal(t, "Scotland", CountryCode("SCO").Desc())
	assert.False(t, CountryCode("gb").IsValid())
	assert.Len(t, eliminationCauses.values, 7)
}

func TestPatchApplyReportsPresentColumns(t *testing.T) {
	var patch MatchPatch
	require.NoError(t, json.Unmarshal([]byte(`{"team2_id": 9, "status": "live"}`), &patch))

	m := &Match{CompetitionID: 1, Team1ID: 2, Team2ID: 3, Status: MatchScheduled}
	cols := patch.Apply(m)

	assert.Equal(t, []string{"team2_id", "status"}, cols)
	assert.Equal(t, int64(2), m.Team1ID)
	assert.Equal(t, int64(9), m.Team2ID)
	assert.Equal(t, MatchLive, m.Status)
}

func TestPatchNullClearsOptionalField(t *testing.T) {
	end := time.Now()
	winner := int64(4)
	s := &Set{MatchID: 1, SetNumber: 2, EndTime: &end, WinningTeamID: &winner}

	var patch SetPatch
	require.NoError(t, json.Unmarshal([]byte(`{"winning_team_id": null}`), &patch))
	cols := patch.Apply(s)

	assert.Equal(t, []string{"winning_team_id"}, cols)
	assert.Nil(t, s.WinningTeamID)
	assert.NotNil(t, s.EndTime)
	assert.Equal(t, 2, s.SetNumber)
}

func TestEmptyPatchChangesNothing(t *testing.T) {
	o := &Organisation{Name: "BD", CountryCode: "ENG"}
	assert.Empty(t, (&OrganisationPatch{}).Apply(o))
	assert.Equal(t, "BD", o.Name)
}

func TestBaseTouchAndReset(t *testing.T) {
	var b Base
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b.Touch(first)
	assert.Equal(t, first, b.CreatedAt)

	later := first.Add(time.Hour)
	b.Touch(later)
	assert.Equal(t, first, b.CreatedAt)
	assert.Equal(t, later, b.UpdatedAt)

	b.ID = 7
	b.ResetIdentity()
	assert.Zero(t, b)
}

func TestDefaultsOfConstructors(t *testing.T) {
	assert.Equal(t, MatchScheduled, NewMatch().Status)
	te := NewThrowEvent()
	assert.True(t, te.ValidAttempt)
	assert.True(t, te.WasBlocked)
	assert.False(t, te.TargetHadBall)
}
