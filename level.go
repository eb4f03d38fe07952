// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import "encoding/json"

// Level classifies the severity of an Error record. Besides the predefined
// levels, OtherLevel wraps a free-form severity name, so the set is open.
// The zero value is LevelNone.
type Level struct {
	name string
}

var (
	LevelNone    = Level{}
	LevelUnknown = Level{"unknown"}
	LevelLog     = Level{"log"}
	LevelDebug   = Level{"debug"}
	LevelWarn    = Level{"warn"}
	LevelError   = Level{"error"}
)

// OtherLevel returns a severity outside the predefined set.
// OtherLevel("none") and the like normalize to the predefined level.
func OtherLevel(name string) Level {
	if name == "none" {
		return LevelNone
	}
	return Level{name}
}

// String follows the fmt.Stringer interface.
func (l Level) String() string {
	if l.name == "" {
		return "none"
	}
	return l.name
}

// MarshalJSON encodes the level as its plain name string.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level name; unrecognized names become OtherLevel.
func (l *Level) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*l = OtherLevel(name)
	return nil
}
