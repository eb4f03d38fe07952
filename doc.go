// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

// Package traceback provides a chainable error record that carries file/line
// provenance and is reported exactly once through a pluggable callback.
//
// A call site constructs an Error with New or Newf, optionally attaches a
// causing Error with WithParent and freeform data with WithExtra, and returns
// it as an ordinary error value. The outermost holder finalizes the chain by
// deferring Dispatch; the registered callback (or a built-in fallback that
// writes a JSON file under the errors directory) then receives the full chain
// with timestamps, severity and environment context. Records that became a
// parent of another record, records that were already dispatched, and the
// Empty placeholder never dispatch.
//
// Callbacks are held in a single process-wide slot, last writer wins. An
// asynchronous callback returns a Future that Dispatch drives to completion
// with a minimal busy-spin poller before returning.

package traceback
