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

package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewLoggerIsRegisteredOnce(t *testing.T) {
	a := NewLogger("REGISTRY_TEST")
	b := NewLogger("REGISTRY_TEST")
	assert.Same(t, a, b)
	assert.True(t, SetLoggerLevel("REGISTRY_TEST", "error"))
	assert.Equal(t, logrus.ErrorLevel, a.GetLevel())
	assert.False(t, SetLoggerLevel("MISSING_LOGGER", "error"))
}

func TestLoggerWritesThroughConsoleHook(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	l := NewLogger("HOOK_TEST")
	l.SetLevel(logrus.InfoLevel)
	l.WithField("team", "Vipers").Info("created team")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "created team")
	assert.Contains(t, out, "team=Vipers")
	assert.Contains(t, out, "HOOK_TEST")
	assert.NotContains(t, out, "hidden")
}

func TestJSONLogFormatterPromotesAccessFields(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "API"}
	entry := &logrus.Entry{
		Time:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "request",
		Data: logrus.Fields{
			"request_id":  "abc",
			"req_method":  "POST",
			"req_uri":     "/api/v1/teams",
			"status_code": 201,
			"other":       42,
		},
	}

	b, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "API", rec["model"])
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "abc", rec["request_id"])
	assert.Equal(t, "POST", rec["method"])
	assert.Equal(t, "/api/v1/teams", rec["path"])
	assert.EqualValues(t, 201, rec["status_code"])
	assert.Equal(t, map[string]interface{}{"other": float64(42)}, rec["fields"])
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("DODGEBALL_TEST_STR", "value")
	t.Setenv("DODGEBALL_TEST_BOOL", "true")
	t.Setenv("DODGEBALL_TEST_DUR", "250ms")

	assert.Equal(t, "value", EnvDefaultString("DODGEBALL_TEST_STR", "def"))
	assert.Equal(t, "def", EnvDefaultString("DODGEBALL_TEST_UNSET", "def"))
	assert.True(t, EnvDefaultBool("DODGEBALL_TEST_BOOL", false))
	assert.False(t, EnvDefaultBool("DODGEBALL_TEST_UNSET", false))
	assert.Equal(t, 250*time.Millisecond, EnvDefaultDuration("DODGEBALL_TEST_DUR", time.Second))
}
