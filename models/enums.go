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
	"strings"

	"github.com/tomoncle/dodgeball/types"
)

// enumSpec backs the types.BaseEnum methods of the string enums below.
type enumSpec[E ~string] struct {
	values []E
	desc   map[E]string
}

func (s enumSpec[E]) number(e E) int {
	for i, v := range s.values {
		if v == e {
			return i
		}
	}
	return types.IllegalValue
}

func (s enumSpec[E]) name(e E) string {
	if s.number(e) == types.IllegalValue {
		return types.IllegalName
	}
	return strings.ToUpper(string(e))
}

func (s enumSpec[E]) description(e E) string {
	if d, ok := s.desc[e]; ok {
		return d
	}
	return types.IllegalDesc
}

type CompetitionFormat string

const (
	FormatLeague     CompetitionFormat = "league"
	FormatTournament CompetitionFormat = "tournament"
)

var competitionFormats = enumSpec[CompetitionFormat]{
	values: []CompetitionFormat{FormatLeague, FormatTournament},
	desc: map[CompetitionFormat]string{
		FormatLeague:     "League",
		FormatTournament: "Tournament",
	},
}

func (f CompetitionFormat) IsValid() bool  { return competitionFormats.number(f) >= 0 }
func (f CompetitionFormat) Number() int    { return competitionFormats.number(f) }
func (f CompetitionFormat) String() string { return string(f) }
func (f CompetitionFormat) Name() string   { return competitionFormats.name(f) }
func (f CompetitionFormat) Desc() string   { return competitionFormats.description(f) }

type AgeCategory string

const (
	AgeU11   AgeCategory = "u11"
	AgeU13   AgeCategory = "u13"
	AgeU15   AgeCategory = "u15"
	AgeU17   AgeCategory = "u17"
	AgeAdult AgeCategory = "adult"
)

var ageCategories = enumSpec[AgeCategory]{
	values: []AgeCategory{AgeU11, AgeU13, AgeU15, AgeU17, AgeAdult},
	desc: map[AgeCategory]string{
		AgeU11:   "Under 11",
		AgeU13:   "Under 13",
		AgeU15:   "Under 15",
		AgeU17:   "Under 17",
		AgeAdult: "Adult",
	},
}

func (a AgeCategory) IsValid() bool  { return ageCategories.number(a) >= 0 }
func (a AgeCategory) Number() int    { return ageCategories.number(a) }
func (a AgeCategory) String() string { return string(a) }
func (a AgeCategory) Name() string   { return ageCategories.name(a) }
func (a AgeCategory) Desc() string   { return ageCategories.description(a) }

type CourtSize string

const (
	CourtBD            CourtSize = "bd"
	CourtEDF           CourtSize = "edf"
	CourtNoNeutralZone CourtSize = "no_neutral_zone"
)

var courtSizes = enumSpec[CourtSize]{
	values: []CourtSize{CourtBD, CourtEDF, CourtNoNeutralZone},
	desc: map[CourtSize]string{
		CourtBD:            "British Dodgeball court",
		CourtEDF:           "European Dodgeball Federation court",
		CourtNoNeutralZone: "Court without a neutral zone",
	},
}

func (c CourtSize) IsValid() bool  { return courtSizes.number(c) >= 0 }
func (c CourtSize) Number() int    { return courtSizes.number(c) }
func (c CourtSize) String() string { return string(c) }
func (c CourtSize) Name() string   { return courtSizes.name(c) }
func (c CourtSize) Desc() string   { return courtSizes.description(c) }

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

var matchStatuses = enumSpec[MatchStatus]{
	values: []MatchStatus{MatchScheduled, MatchLive, MatchCompleted, MatchCancelled},
	desc: map[MatchStatus]string{
		MatchScheduled: "Scheduled",
		MatchLive:      "In progress",
		MatchCompleted: "Completed",
		MatchCancelled: "Cancelled",
	},
}

func (s MatchStatus) IsValid() bool  { return matchStatuses.number(s) >= 0 }
func (s MatchStatus) Number() int    { return matchStatuses.number(s) }
func (s MatchStatus) String() string { return string(s) }
func (s MatchStatus) Name() string   { return matchStatuses.name(s) }
func (s MatchStatus) Desc() string   { return matchStatuses.description(s) }

type EliminationCause string

const (
	CauseDirectHit      EliminationCause = "direct_hit"
	CauseDeflectionHit  EliminationCause = "deflection_hit"
	CauseThrowCaught    EliminationCause = "throw_caught"
	CauseLineFault      EliminationCause = "line_fault"
	CauseInvalidAttempt EliminationCause = "invalid_attempt"
	CausePenalty        EliminationCause = "penalty"
	CauseLossOfControl  EliminationCause = "loss_of_control"
)

var eliminationCauses = enumSpec[EliminationCause]{
	values: []EliminationCause{
		CauseDirectHit, CauseDeflectionHit, CauseThrowCaught, CauseLineFault,
		CauseInvalidAttempt, CausePenalty, CauseLossOfControl,
	},
	desc: map[EliminationCause]string{
		CauseDirectHit:      "Hit directly by a live ball",
		CauseDeflectionHit:  "Hit by a ball deflected off another player",
		CauseThrowCaught:    "Throw was caught by an opponent",
		CauseLineFault:      "Stepped over the line",
		CauseInvalidAttempt: "Throw was not a valid attempt",
		CausePenalty:        "Penalised by the referee",
		CauseLossOfControl:  "Lost control of a held ball",
	},
}

func (c EliminationCause) IsValid() bool  { return eliminationCauses.number(c) >= 0 }
func (c EliminationCause) Number() int    { return eliminationCauses.number(c) }
func (c EliminationCause) String() string { return string(c) }
func (c EliminationCause) Name() string   { return eliminationCauses.name(c) }
func (c EliminationCause) Desc() string   { return eliminationCauses.description(c) }

// CountryCode is an ISO 3166-1 alpha-2 code extended with the home nations
// and WLD for international organisers.
type CountryCode string

var countryCodes = enumSpec[CountryCode]{
	values: []CountryCode{
		"WLD", "ENG", "SCO", "WAL", "NIR", "IRL",
		"GB", "IN", "CN", "US", "ID", "PK", "NG", "BR", "BD", "RU",
		"ET", "MX", "JP", "EG", "PH", "CD", "VN", "IR", "TR", "DE",
		"TH", "TZ", "FR", "ZA", "IT", "KE", "MM", "CO", "KR", "SD",
		"UG", "ES", "DZ", "IQ", "AR", "AF", "YE", "CA", "AO", "UA",
		"MA", "PL", "UZ", "MY", "MZ", "GH", "PE", "SA", "MG", "CI",
	},
	desc: map[CountryCode]string{
		"WLD": "World",
		"ENG": "England",
		"SCO": "Scotland",
		"WAL": "Wales",
		"NIR": "Northern Ireland",
		"IRL": "Ireland",
	},
}

func (c CountryCode) IsValid() bool  { return countryCodes.number(c) >= 0 }
func (c CountryCode) Number() int    { return countryCodes.number(c) }
func (c CountryCode) String() string { return string(c) }
func (c CountryCode) Name() string   { return countryCodes.name(c) }

func (c CountryCode) Desc() string {
	if d, ok := countryCodes.desc[c]; ok {
		return d
	}
	if c.IsValid() {
		return string(c)
	}
	return types.IllegalDesc
}

var (
	_ types.BaseEnum = CompetitionFormat("")
	_ types.BaseEnum = AgeCategory("")
	_ types.BaseEnum = CourtSize("")
	_ types.BaseEnum = MatchStatus("")
	_ types.BaseEnum = EliminationCause("")
	_ types.BaseEnum = CountryCode("")
)
