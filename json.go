// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"encoding/json"
	"time"
)

// errorJSON mirrors the Error fields one to one; the parent nests
// recursively and context fields of never-dispatched links stay null. The
// same shape is used by the fallback files and by Unmarshal-side consumers.
type errorJSON struct {
	Message     string            `json:"message"`
	File        string            `json:"file"`
	Line        int               `json:"line"`
	Parent      *Error            `json:"parent"`
	TimeCreated time.Time         `json:"time_created"`
	ExtraData   []json.RawMessage `json:"extra_data"`
	Project     *string           `json:"project"`
	Computer    *string           `json:"computer"`
	User        *string           `json:"user"`
	Level       Level             `json:"level"`
	IsParent    bool              `json:"is_parent"`
	IsHandled   bool              `json:"is_handled"`
	IsDefault   bool              `json:"is_default"`
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorJSON{
		Message:     e.message,
		File:        e.file,
		Line:        e.line,
		Parent:      e.parent,
		TimeCreated: e.createdAt,
		ExtraData:   e.extra,
		Project:     e.project,
		Computer:    e.computer,
		User:        e.user,
		Level:       e.level,
		IsParent:    e.isParent,
		IsHandled:   e.isHandled,
		IsDefault:   e.isDefault,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Reloaded records keep their
// persisted flags, so a record that was dispatched before serialization stays
// exempt from dispatch after reloading.
func (e *Error) UnmarshalJSON(data []byte) error {
	var wire errorJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Error{
		message:   wire.Message,
		file:      wire.File,
		line:      wire.Line,
		parent:    wire.Parent,
		createdAt: wire.TimeCreated,
		extra:     wire.ExtraData,
		project:   wire.Project,
		computer:  wire.Computer,
		user:      wire.User,
		level:     wire.Level,
		isParent:  wire.IsParent,
		isHandled: wire.IsHandled,
		isDefault: wire.IsDefault,
	}
	return nil
}
