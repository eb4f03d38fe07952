// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelNone, "none"},
		{LevelUnknown, "unknown"},
		{LevelLog, "log"},
		{LevelDebug, "debug"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{OtherLevel("audit"), "audit"},
		{Level{}, "none"},
	}
	for _, _case := range cases {
		require.Equal(t, _case.want, _case.level.String())
	}
}

func TestOtherLevelNormalize(t *testing.T) {
	require.Equal(t, LevelNone, OtherLevel("none"))
	require.Equal(t, LevelNone, Level{})
}

func TestLevelJSON(t *testing.T) {
	data, err := json.Marshal(LevelWarn)
	require.NoError(t, err)
	require.Equal(t, `"warn"`, string(data))

	var level Level
	require.NoError(t, json.Unmarshal([]byte(`"audit"`), &level))
	require.Equal(t, OtherLevel("audit"), level)
	require.NoError(t, json.Unmarshal([]byte(`"none"`), &level))
	require.Equal(t, LevelNone, level)
	require.Error(t, json.Unmarshal([]byte(`7`), &level))
}
