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

import "github.com/tomoncle/dodgeball/database"

const (
	restrict = "RESTRICT"
	cascade  = "CASCADE"
	setNull  = "SET NULL"
)

// Tables are created in ascending priority, parents before children.
func init() {
	for _, m := range []database.SQLModel{
		database.NewModelAdapter((*Organisation)(nil), 10),
		database.NewModelAdapter((*Team)(nil), 10),
		database.NewModelAdapter((*Player)(nil), 10),
		database.NewModelAdapter((*Competition)(nil), 20),
		database.NewModelAdapter((*Match)(nil), 30),
		database.NewModelAdapter((*TeamCompetition)(nil), 30),
		database.NewModelAdapter((*PlayerTeamHistory)(nil), 30),
		database.NewModelAdapter((*Set)(nil), 40),
		database.NewModelAdapter((*ThrowEvent)(nil), 50),
		database.NewModelAdapter((*CatchEvent)(nil), 60),
		database.NewModelAdapter((*EliminationEvent)(nil), 70),
	} {
		database.RegisteredModel(m)
	}

	database.RegisteredForeignKeys(
		fk("competitions", "organisation_id", "organisations", restrict),
		fk("matches", "competition_id", "competitions", cascade),
		fk("matches", "team1_id", "teams", restrict),
		fk("matches", "team2_id", "teams", restrict),
		fk("sets", "match_id", "matches", cascade),
		fk("sets", "winning_team_id", "teams", setNull),
		fk("throw_events", "set_id", "sets", cascade),
		fk("throw_events", "player_id", "players", restrict),
		fk("throw_events", "target_player_id", "players", setNull),
		fk("catch_events", "set_id", "sets", cascade),
		fk("catch_events", "player_id", "players", restrict),
		fk("catch_events", "throw_event_id", "throw_events", cascade),
		fk("eliminations", "set_id", "sets", cascade),
		fk("eliminations", "eliminated_player_id", "players", restrict),
		fk("eliminations", "throw_event_id", "throw_events", setNull),
		fk("eliminations", "catch_event_id", "catch_events", setNull),
		fk("team_competitions", "team_id", "teams", cascade),
		fk("team_competitions", "competition_id", "competitions", cascade),
		fk("player_team_history", "player_id", "players", cascade),
		fk("player_team_history", "team_id", "teams", cascade),
	)
}

func fk(table, column, refTable, onDelete string) database.ForeignKeyConstraint {
	return database.ForeignKeyConstraint{
		Table:          table,
		Column:         column,
		ReferenceTable: refTable,
		OnDelete:       onDelete,
	}
}
