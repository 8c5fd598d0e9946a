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

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, KindInvalidArgument.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestEntityNotFoundMessage(t *testing.T) {
	err := EntityNotFound("Organisation", 42)
	assert.Equal(t, "Organisation with ID 42 not found", err.Error())
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestWrapKeepsKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	base := Internal("Failed to create %s", "Team")
	err := fmt.Errorf("handler: %w", base.Wrap(cause))

	require.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Nil(t, base.Err, "Wrap must not mutate the receiver")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Failed to create Team", e.Message)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(errors.New("boom"), KindConflict))
	assert.True(t, Is(Conflict("Team with name '%s' already exists", "Reds"), KindConflict))
}
