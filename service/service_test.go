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

package service_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dodgeball/errs"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/service"
	"github.com/tomoncle/dodgeball/testutil"
	"github.com/tomoncle/dodgeball/types"
)

type fixture struct {
	t   *testing.T
	ctx context.Context
	svc *service.Services
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, ctx: context.Background(), svc: service.NewServices(testutil.NewTestDB(t))}
}

func (f *fixture) organisation(name string) *models.Organisation {
	o, err := f.svc.Organisations.Create(f.ctx, &models.Organisation{Name: name, CountryCode: "ENG"})
	require.NoError(f.t, err)
	return o
}

func (f *fixture) competition(name string, orgID int64) *models.Competition {
	c, err := f.svc.Competitions.Create(f.ctx, newCompetition(name, orgID))
	require.NoError(f.t, err)
	return c
}

func (f *fixture) team(name string) *models.Team {
	tm, err := f.svc.Teams.Create(f.ctx, &models.Team{Name: name})
	require.NoError(f.t, err)
	return tm
}

func (f *fixture) player(first, last string) *models.Player {
	p, err := f.svc.Players.Create(f.ctx, &models.Player{FirstName: first, LastName: last})
	require.NoError(f.t, err)
	return p
}

func (f *fixture) match(competitionID, team1, team2 int64) *models.Match {
	m, err := f.svc.Matches.Create(f.ctx, newMatch(competitionID, team1, team2))
	require.NoError(f.t, err)
	return m
}

func (f *fixture) set(matchID int64, number int) *models.Set {
	s, err := f.svc.Sets.Create(f.ctx, &models.Set{MatchID: matchID, SetNumber: number, StartTime: time.Now()})
	require.NoError(f.t, err)
	return s
}

func newCompetition(name string, orgID int64) *models.Competition {
	return &models.Competition{
		Name:              name,
		CompetitionFormat: models.FormatLeague,
		OrganisationID:    orgID,
		AgeCategory:       "adult",
		CourtSize:         "bd",
	}
}

func newMatch(competitionID, team1, team2 int64) *models.Match {
	m := models.NewMatch()
	m.CompetitionID = competitionID
	m.Team1ID = team1
	m.Team2ID = team2
	m.MatchDate = time.Now()
	return m
}

func requireKind(t *testing.T, err error, kind errs.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, kind, e.Kind)
	if message != "" {
		assert.Equal(t, message, e.Message)
	}
}

func TestOrganisationRules(t *testing.T) {
	f := newFixture(t)
	f.organisation("British Dodgeball")

	_, err := f.svc.Organisations.Create(f.ctx, &models.Organisation{Name: "British Dodgeball", CountryCode: "SCO"})
	requireKind(t, err, errs.KindConflict, "Organisation with name 'British Dodgeball' already exists")

	_, err = f.svc.Organisations.Create(f.ctx, &models.Organisation{CountryCode: "SCO"})
	requireKind(t, err, errs.KindInvalidArgument, "Validation failed")

	_, err = f.svc.Organisations.Create(f.ctx, &models.Organisation{Name: "No Country"})
	requireKind(t, err, errs.KindInvalidArgument, "Validation failed")
}

func TestOrganisationUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("Dodgeball Wales")
	other := f.organisation("Dodgeball Scotland")

	// Same name as itself is not a conflict.
	updated, err := f.svc.Organisations.Update(f.ctx, org.ID, &models.OrganisationPatch{
		Name:   types.Some("Dodgeball Wales"),
		Region: types.Some[*string](nil),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dodgeball Wales", updated.Name)

	_, err = f.svc.Organisations.Update(f.ctx, org.ID, &models.OrganisationPatch{Name: types.Some(other.Name)})
	requireKind(t, err, errs.KindConflict, "Organisation with name 'Dodgeball Scotland' already exists")

	_, err = f.svc.Organisations.Update(f.ctx, 999, &models.OrganisationPatch{Name: types.Some("x")})
	requireKind(t, err, errs.KindNotFound, "Organisation with ID 999 not found")

	// An organisation that still owns competitions cannot be removed.
	f.competition("Premier", org.ID)
	_, err = f.svc.Organisations.Delete(f.ctx, org.ID)
	requireKind(t, err, errs.KindConflict, "")

	deleted, err := f.svc.Organisations.Delete(f.ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.Name, deleted.Name)

	_, err = f.svc.Organisations.Get(f.ctx, other.ID)
	requireKind(t, err, errs.KindNotFound, "Organisation with ID "+itoa(other.ID)+" not found")
}

func TestCompetitionRules(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	otherOrg := f.organisation("Dodgeball Wales")

	_, err := f.svc.Competitions.Create(f.ctx, newCompetition("Premier", 777))
	requireKind(t, err, errs.KindNotFound, "Organisation with ID 777 not found")

	f.competition("Premier", org.ID)

	_, err = f.svc.Competitions.Create(f.ctx, newCompetition("Premier", org.ID))
	requireKind(t, err, errs.KindConflict, "Competition with name 'Premier' already exists for this organisation")

	// The same name under another organisation is fine.
	c := f.competition("Premier", otherOrg.ID)

	// Moving it back into the first organisation collides.
	_, err = f.svc.Competitions.Update(f.ctx, c.ID, &models.CompetitionPatch{OrganisationID: types.Some(org.ID)})
	requireKind(t, err, errs.KindConflict, "Competition with name 'Premier' already exists for this organisation")

	_, err = f.svc.Competitions.Update(f.ctx, c.ID, &models.CompetitionPatch{OrganisationID: types.Some(int64(555))})
	requireKind(t, err, errs.KindNotFound, "Organisation with ID 555 not found")

	_, err = f.svc.Competitions.Update(f.ctx, c.ID, &models.CompetitionPatch{CourtSize: types.Some(models.CourtSize("huge"))})
	requireKind(t, err, errs.KindInvalidArgument, "Validation failed")

	list, err := f.svc.Competitions.ListByOrganisation(f.ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMatchSelfReference(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	comp := f.competition("Premier", org.ID)
	reds, blues := f.team("Reds"), f.team("Blues")

	_, err := f.svc.Matches.Create(f.ctx, newMatch(comp.ID, reds.ID, reds.ID))
	requireKind(t, err, errs.KindInvalidArgument, "A team cannot play against itself")

	m := f.match(comp.ID, reds.ID, blues.ID)
	assert.Equal(t, models.MatchScheduled, m.Status)

	_, err = f.svc.Matches.Update(f.ctx, m.ID, &models.MatchPatch{Team2ID: types.Some(reds.ID)})
	requireKind(t, err, errs.KindInvalidArgument, "A team cannot play against itself")

	_, err = f.svc.Matches.Update(f.ctx, m.ID, &models.MatchPatch{Team1ID: types.Some(blues.ID)})
	requireKind(t, err, errs.KindInvalidArgument, "A team cannot play against itself")

	// Swapping both sides in one update is valid.
	swapped, err := f.svc.Matches.Update(f.ctx, m.ID, &models.MatchPatch{
		Team1ID: types.Some(blues.ID),
		Team2ID: types.Some(reds.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, blues.ID, swapped.Team1ID)
	assert.Equal(t, reds.ID, swapped.Team2ID)

	_, err = f.svc.Matches.Create(f.ctx, newMatch(comp.ID, reds.ID, 404))
	requireKind(t, err, errs.KindNotFound, "Team with ID 404 not found")

	_, err = f.svc.Matches.Create(f.ctx, newMatch(404, reds.ID, blues.ID))
	requireKind(t, err, errs.KindNotFound, "Competition with ID 404 not found")
}

func TestMatchUpdateChangesOnlyPatchedFields(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	comp := f.competition("Premier", org.ID)
	reds, blues := f.team("Reds"), f.team("Blues")
	m := f.match(comp.ID, reds.ID, blues.ID)

	updated, err := f.svc.Matches.Update(f.ctx, m.ID, &models.MatchPatch{Status: types.Some(models.MatchLive)})
	require.NoError(t, err)
	assert.Equal(t, models.MatchLive, updated.Status)
	assert.Equal(t, m.CompetitionID, updated.CompetitionID)
	assert.Equal(t, m.Team1ID, updated.Team1ID)
	assert.Equal(t, m.Team2ID, updated.Team2ID)
	assert.True(t, m.MatchDate.Equal(updated.MatchDate))
}

func TestMatchesForTeam(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	comp := f.competition("Premier", org.ID)
	reds, blues, greens := f.team("Reds"), f.team("Blues"), f.team("Greens")

	m1 := f.match(comp.ID, reds.ID, blues.ID)
	m2 := f.match(comp.ID, greens.ID, reds.ID)
	m3 := f.match(comp.ID, reds.ID, greens.ID)
	f.match(comp.ID, blues.ID, greens.ID)

	matches, err := f.svc.Matches.ListByTeam(f.ctx, reds.ID)
	require.NoError(t, err)

	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []int64{m1.ID, m2.ID, m3.ID}, ids)

	_, err = f.svc.Matches.ListByTeam(f.ctx, 404)
	requireKind(t, err, errs.KindNotFound, "Team with ID 404 not found")

	all, err := f.svc.Matches.ListByCompetition(f.ctx, comp.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSetNumberScopedToMatch(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	comp := f.competition("Premier", org.ID)
	reds, blues := f.team("Reds"), f.team("Blues")
	m1 := f.match(comp.ID, reds.ID, blues.ID)
	m2 := f.match(comp.ID, blues.ID, reds.ID)

	s1 := f.set(m1.ID, 1)
	s2 := f.set(m1.ID, 2)
	f.set(m2.ID, 1)

	_, err := f.svc.Sets.Create(f.ctx, &models.Set{MatchID: m1.ID, SetNumber: 1, StartTime: time.Now()})
	requireKind(t, err, errs.KindConflict, "Set number 1 already exists for match "+itoa(m1.ID))

	_, err = f.svc.Sets.Update(f.ctx, s2.ID, &models.SetPatch{SetNumber: types.Some(1)})
	requireKind(t, err, errs.KindConflict, "Set number 1 already exists for match "+itoa(m1.ID))

	same, err := f.svc.Sets.Update(f.ctx, s1.ID, &models.SetPatch{SetNumber: types.Some(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, same.SetNumber)

	winner := reds.ID
	won, err := f.svc.Sets.Update(f.ctx, s1.ID, &models.SetPatch{WinningTeamID: types.Some(&winner)})
	require.NoError(t, err)
	require.NotNil(t, won.WinningTeamID)
	assert.Equal(t, reds.ID, *won.WinningTeamID)

	missing := int64(404)
	_, err = f.svc.Sets.Update(f.ctx, s1.ID, &models.SetPatch{WinningTeamID: types.Some(&missing)})
	requireKind(t, err, errs.KindNotFound, "Team with ID 404 not found")

	sets, err := f.svc.Sets.ListByMatch(f.ctx, m1.ID)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestEventRules(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	comp := f.competition("Premier", org.ID)
	reds, blues := f.team("Reds"), f.team("Blues")
	m := f.match(comp.ID, reds.ID, blues.ID)
	set := f.set(m.ID, 1)
	thrower, target := f.player("Ada", "Hill"), f.player("Bo", "Lane")

	throw := models.NewThrowEvent()
	throw.SetID = set.ID
	throw.PlayerID = thrower.ID
	throw.TargetPlayerID = &target.ID
	throw.Timestamp = time.Now()
	throw, err := f.svc.ThrowEvents.Create(f.ctx, throw)
	require.NoError(t, err)
	assert.True(t, throw.ValidAttempt)
	assert.True(t, throw.WasBlocked)
	assert.False(t, throw.TargetHadBall)

	_, err = f.svc.CatchEvents.Create(f.ctx, &models.CatchEvent{
		SetID: set.ID, PlayerID: target.ID, ThrowEventID: 404, Timestamp: time.Now(),
	})
	requireKind(t, err, errs.KindNotFound, "Throw event with ID 404 not found")

	catch, err := f.svc.CatchEvents.Create(f.ctx, &models.CatchEvent{
		SetID: set.ID, PlayerID: target.ID, ThrowEventID: throw.ID, Timestamp: time.Now(),
	})
	require.NoError(t, err)

	elim := &models.EliminationEvent{
		SetID:              set.ID,
		EliminatedPlayerID: thrower.ID,
		Timestamp:          time.Now(),
		Cause:              models.CauseThrowCaught,
		ThrowEventID:       &throw.ID,
		CatchEventID:       &catch.ID,
	}
	first, err := f.svc.EliminationEvents.Create(f.ctx, elim)
	require.NoError(t, err)

	_, err = f.svc.EliminationEvents.Create(f.ctx, &models.EliminationEvent{
		SetID: set.ID, EliminatedPlayerID: thrower.ID, Timestamp: time.Now(), Cause: models.CauseLineFault,
	})
	requireKind(t, err, errs.KindConflict,
		"Player "+itoa(thrower.ID)+" is already eliminated in set "+itoa(set.ID))

	second, err := f.svc.EliminationEvents.Create(f.ctx, &models.EliminationEvent{
		SetID: set.ID, EliminatedPlayerID: target.ID, Timestamp: time.Now(), Cause: models.CauseDirectHit,
	})
	require.NoError(t, err)

	_, err = f.svc.EliminationEvents.Update(f.ctx, second.ID, &models.EliminationEventPatch{
		EliminatedPlayerID: types.Some(thrower.ID),
	})
	requireKind(t, err, errs.KindConflict, "")

	_, err = f.svc.EliminationEvents.Update(f.ctx, first.ID, &models.EliminationEventPatch{
		Cause: types.Some(models.CausePenalty),
	})
	require.NoError(t, err)

	_, err = f.svc.EliminationEvents.Create(f.ctx, &models.EliminationEvent{
		SetID: set.ID, EliminatedPlayerID: target.ID, Timestamp: time.Now(), Cause: "dodged",
	})
	requireKind(t, err, errs.KindInvalidArgument, "Validation failed")

	throws, err := f.svc.ThrowEvents.ListBySet(f.ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, throws, 1)

	// Deleting the set removes its play-by-play.
	_, err = f.svc.Sets.Delete(f.ctx, set.ID)
	require.NoError(t, err)
	_, err = f.svc.ThrowEvents.Get(f.ctx, throw.ID)
	requireKind(t, err, errs.KindNotFound, "Throw event with ID "+itoa(throw.ID)+" not found")
	_, err = f.svc.EliminationEvents.ListBySet(f.ctx, set.ID)
	requireKind(t, err, errs.KindNotFound, "Set with ID "+itoa(set.ID)+" not found")
}

func TestMembershipRules(t *testing.T) {
	f := newFixture(t)
	org := f.organisation("British Dodgeball")
	comp := f.competition("Premier", org.ID)
	reds := f.team("Reds")
	ada := f.player("Ada", "Hill")

	tc, err := f.svc.TeamCompetitions.Create(f.ctx, &models.TeamCompetition{TeamID: reds.ID, CompetitionID: comp.ID})
	require.NoError(t, err)
	assert.False(t, tc.JoinedDate.IsZero())

	_, err = f.svc.TeamCompetitions.Create(f.ctx, &models.TeamCompetition{TeamID: reds.ID, CompetitionID: comp.ID})
	requireKind(t, err, errs.KindConflict, "")

	standing, err := f.svc.TeamCompetitions.Update(f.ctx, tc.ID, &models.TeamCompetitionPatch{
		Points: types.Some(3), Wins: types.Some(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, standing.Points)
	assert.Equal(t, 0, standing.Losses)

	joined := time.Now().Add(-48 * time.Hour)
	h, err := f.svc.PlayerTeamHistory.Create(f.ctx, &models.PlayerTeamHistory{PlayerID: ada.ID, TeamID: reds.ID, JoinedAt: joined})
	require.NoError(t, err)

	early := joined.Add(-time.Hour)
	_, err = f.svc.PlayerTeamHistory.Update(f.ctx, h.ID, &models.PlayerTeamHistoryPatch{LeftAt: types.Some(&early)})
	requireKind(t, err, errs.KindInvalidArgument, "left_at cannot be before joined_at")

	history, err := f.svc.PlayerTeamHistory.ListByPlayer(f.ctx, ada.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	// Removing the team cascades to its memberships.
	_, err = f.svc.Teams.Delete(f.ctx, reds.ID)
	require.NoError(t, err)
	byComp, err := f.svc.TeamCompetitions.ListByCompetition(f.ctx, comp.ID)
	require.NoError(t, err)
	assert.Empty(t, byComp)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
