// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"encoding/json"
	stderr "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchOnce(t *testing.T) {
	var messages []string
	SetCallback(CallbackFunc(func(err *Error) {
		messages = append(messages, err.Message())
	}))
	defer ResetCallback()

	e := New("leaf failed")
	e.Dispatch()
	e.Dispatch()
	e.Dispatch()
	require.Equal(t, []string{"leaf failed"}, messages)
}

func TestDispatchLeavesPlaceholder(t *testing.T) {
	SetCallback(CallbackFunc(func(err *Error) {}))
	defer ResetCallback()

	e := New("taken")
	e.Dispatch()
	require.True(t, e.isDefault)
	require.Equal(t, "", e.Message())
	require.Nil(t, e.Parent())
}

func TestDispatchMarksHandled(t *testing.T) {
	var calls int
	var got *Error
	SetCallback(CallbackFunc(func(err *Error) {
		calls++
		got = err
	}))
	defer ResetCallback()

	New("inspect me").Dispatch()
	require.Equal(t, 1, calls)
	require.NotNil(t, got)
	require.True(t, got.IsHandled())
	// context was attached before the callback ran
	require.NotEmpty(t, got.Project())
	require.NotEmpty(t, got.Computer())
	require.NotEmpty(t, got.User())
	// even if the callback's record reaches Dispatch again, it is exempt
	got.Dispatch()
	require.Equal(t, 1, calls)
}

func TestDispatchChain(t *testing.T) {
	var calls int
	var got *Error
	SetCallback(CallbackFunc(func(err *Error) {
		calls++
		got = err
	}))
	defer ResetCallback()

	a := New("leaf failed")
	b := New("wrapper failed").WithParent(a)
	// a's own end of life is a no-op once it became a parent
	a.Dispatch()
	require.Equal(t, 0, calls)
	b.Dispatch()
	require.Equal(t, 1, calls)
	require.Equal(t, "wrapper failed", got.Message())
	require.NotNil(t, got.Parent())
	require.Equal(t, "leaf failed", got.Parent().Message())
}

func TestDispatchExempt(t *testing.T) {
	var calls int
	SetCallback(CallbackFunc(func(err *Error) { calls++ }))
	defer ResetCallback()

	Empty().Dispatch()
	var nilRecord *Error
	nilRecord.Dispatch()
	handled := New("done")
	handled.isHandled = true
	handled.Dispatch()
	require.Equal(t, 0, calls)
}

func TestLastWriterWins(t *testing.T) {
	defer ResetCallback()
	var syncCalls, asyncCalls int

	SetCallback(CallbackFunc(func(err *Error) { syncCalls++ }))
	SetAsyncCallback(AsyncCallbackFunc(func(err *Error) Future {
		return FutureFunc(func(waker Waker) bool {
			asyncCalls++
			return true
		})
	}))
	New("first").Dispatch()
	require.Equal(t, 0, syncCalls)
	require.Equal(t, 1, asyncCalls)

	SetCallback(CallbackFunc(func(err *Error) { syncCalls++ }))
	New("second").Dispatch()
	require.Equal(t, 1, syncCalls)
	require.Equal(t, 1, asyncCalls)
}

func TestAsyncCallback(t *testing.T) {
	var polls int
	var handled []string
	SetAsyncCallback(AsyncCallbackFunc(func(err *Error) Future {
		return FutureFunc(func(waker Waker) bool {
			// the waker is inert; progress must come from the poll itself
			waker.Wake()
			polls++
			if polls < 2 {
				return false
			}
			handled = append(handled, err.Message())
			return true
		})
	}))
	defer ResetCallback()

	New("async failed").Dispatch()
	// the side effect landed before Dispatch returned
	require.Equal(t, 2, polls)
	require.Equal(t, []string{"async failed"}, handled)
}

func TestDispatchFallback(t *testing.T) {
	ResetCallback()
	dir := t.TempDir()
	prev := errorDir
	SetErrorDir(dir)
	defer SetErrorDir(prev)

	New("fallback failed").Dispatch()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	loaded := &Error{}
	require.NoError(t, json.Unmarshal(data, loaded))
	require.Equal(t, "fallback failed", loaded.Message())
	require.True(t, loaded.IsHandled())
}

func TestReport(t *testing.T) {
	var messages []string
	var extras int
	SetCallback(CallbackFunc(func(err *Error) {
		messages = append(messages, err.Message())
		extras += len(err.Extra())
	}))
	defer ResetCallback()

	Report(nil)
	require.Empty(t, messages)

	Report(New("ours failed"))
	require.Equal(t, []string{"ours failed"}, messages)

	Report(stderr.New("foreign failed"))
	require.Equal(t, []string{"ours failed", ""}, messages)
	require.Equal(t, 1, extras)
}
