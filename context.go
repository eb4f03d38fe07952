// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"fmt"
	"os"
)

// Environment variables read by WithContext.
const (
	ProjectEnv  = "TRACEBACK_PROJECT"
	ComputerEnv = "COMPUTERNAME"
	UserEnv     = "USERNAME"
)

// WithContext populates the record's project, host and user fields from the
// environment. A missing variable yields a fixed diagnostic naming it, never
// a silent empty string. Most records are parents that nobody inspects, so
// Dispatch calls this lazily on the one record it actually reports rather
// than paying the lookups at construction.
func (e *Error) WithContext() *Error {
	project := envOr(ProjectEnv)
	computer := envOr(ComputerEnv)
	user := envOr(UserEnv)
	e.isDefault = false
	e.project = &project
	e.computer = &computer
	e.user = &user
	return e
}

func envOr(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fmt.Sprintf("unknown, reason: %s missing", key)
}
