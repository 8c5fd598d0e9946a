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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/dodgeball/errs"
	"github.com/tomoncle/dodgeball/models"
)

func TestStructValid(t *testing.T) {
	org := &models.Organisation{Name: "British Dodgeball", CountryCode: "ENG"}
	assert.NoError(t, Struct(org))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	website := "not a url"
	org := &models.Organisation{CountryCode: "XX", Website: &website}

	err := Struct(org)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindInvalidArgument, e.Kind)

	got := map[string]string{}
	for _, f := range e.Fields {
		got[f.Field] = f.Error
	}
	assert.Equal(t, "is required", got["name"])
	assert.Equal(t, "'XX' is not an accepted value", got["country_code"])
	assert.Equal(t, "must be a valid URL", got["website"])
}

func TestEnumOnOptionalPointer(t *testing.T) {
	bad := models.CountryCode("ZZ")
	p := &models.Player{FirstName: "Ada", LastName: "Hill", Nationality: &bad}
	require.Error(t, Struct(p))

	good := models.CountryCode("WAL")
	p.Nationality = &good
	assert.NoError(t, Struct(p))

	p.Nationality = nil
	assert.NoError(t, Struct(p))
}

func TestMinOnNumbers(t *testing.T) {
	s := &models.Set{MatchID: 1, SetNumber: -2}
	err := Struct(s)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Contains(t, e.Fields, errs.FieldError{Field: "set_number", Error: "must be at least 1"})
	assert.Contains(t, e.Fields, errs.FieldError{Field: "start_time", Error: "is required"})
}
