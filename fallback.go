// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var (
	// errorDir is where the fallback callback persists records, created on
	// demand. SetErrorDir changes it.
	errorDir = "errors"

	// output receives the fallback path's diagnostics, defaulting to
	// os.Stdout. SetOutput changes it.
	output io.Writer = os.Stdout

	// for testing, we override the default functions used by the package.
	osMkdirAll        = os.MkdirAll
	osWriteFile       = os.WriteFile
	jsonMarshalIndent = json.MarshalIndent
)

// SetErrorDir sets the directory the fallback callback writes reports to.
func SetErrorDir(dir string) {
	errorDir = dir
}

// SetOutput sets the writer for the fallback path's diagnostics.
func SetOutput(writer io.Writer) {
	output = writer
}

// defaultCallback serializes the record to JSON and writes it to a
// timestamped file under the errors directory. It runs during teardown with
// no caller left to receive a further error, so every filesystem failure is
// reported to the output writer and swallowed.
func defaultCallback(record *Error) {
	now := time.Now().UTC()
	stamp := fmt.Sprintf("%s.%d", now.Format("2006-01-02.15-04-05"), now.UnixNano())
	if err := osMkdirAll(errorDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(output, "error when creating directory: %s\n", err)
		return
	}
	filename := filepath.Join(errorDir, stamp+".json")
	_, _ = fmt.Fprintf(output, "writing error to file: %s\n", filename)
	data, err := jsonMarshalIndent(record, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(output, "error when serializing error: %s\n", err)
		return
	}
	if err = osWriteFile(filename, data, 0o644); err != nil {
		_, _ = fmt.Fprintf(output, "error when writing to file: %s\n", err)
	}
}
