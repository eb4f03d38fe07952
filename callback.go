// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import "sync"

// Callback is the synchronous handler contract: it receives the dispatched
// record and owns it from then on.
type Callback interface {
	Call(err *Error)
}

// AsyncCallback is the asynchronous handler contract: it receives the
// dispatched record and returns a Future that Dispatch drives to completion
// before returning.
type AsyncCallback interface {
	Call(err *Error) Future
}

// CallbackFunc adapts a plain function to the Callback interface.
type CallbackFunc func(err *Error)

// Call invokes f.
func (f CallbackFunc) Call(err *Error) { f(err) }

// AsyncCallbackFunc adapts a plain function to the AsyncCallback interface.
type AsyncCallbackFunc func(err *Error) Future

// Call invokes f.
func (f AsyncCallbackFunc) Call(err *Error) Future { return f(err) }

// The process-wide callback slot. It holds at most one callback, synchronous
// or asynchronous; the last writer wins and there is no fan-out.
var (
	callbackMu    sync.Mutex
	syncCallback  Callback
	asyncCallback AsyncCallback
)

// SetCallback installs cb as the process-wide callback, replacing whatever
// was registered before.
func SetCallback(cb Callback) {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	syncCallback, asyncCallback = cb, nil
}

// SetAsyncCallback installs cb as the process-wide callback, replacing
// whatever was registered before.
func SetAsyncCallback(cb AsyncCallback) {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	syncCallback, asyncCallback = nil, cb
}

// ResetCallback empties the slot; Dispatch falls back to writing JSON files
// under the errors directory.
func ResetCallback() {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	syncCallback, asyncCallback = nil, nil
}

// Dispatch finalizes the record: the outermost holder of a chain defers it
// so every exit path reports the chain exactly once. Records that are a
// parent, already handled, or the Empty placeholder are skipped.
//
// Dispatch takes the record's contents, leaving an inert Empty placeholder
// behind, captures the environment context on the taken value and marks it
// handled before the callback runs, so no sequence of later evaluations can
// report it twice. An asynchronous callback's Future is driven to completion
// with blockOn before Dispatch returns.
func (e *Error) Dispatch() {
	if e == nil || e.isParent || e.isHandled || e.isDefault {
		return
	}
	taken := *e
	*e = *Empty()
	record := &taken
	record.WithContext()
	record.isHandled = true

	callbackMu.Lock()
	cb, acb := syncCallback, asyncCallback
	callbackMu.Unlock()
	switch {
	case acb != nil:
		blockOn(acb.Call(record))
	case cb != nil:
		cb.Call(record)
	default:
		defaultCallback(record)
	}
}

// Report is a terminal sink for main-function boundaries: it adopts err if
// it is not already a record and dispatches it immediately. A nil err is a
// no-op.
func Report(err error) {
	if err == nil {
		return
	}
	if tb, ok := err.(tracebacker); ok {
		tb.Traceback().Dispatch()
		return
	}
	capture(err, "", false).Dispatch()
}
