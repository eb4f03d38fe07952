// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"io"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// keep stray fallback writes out of the working tree and quiet
	dir, err := os.MkdirTemp("", "traceback-test-*")
	if err != nil {
		panic(err)
	}
	SetErrorDir(dir)
	SetOutput(io.Discard)
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
