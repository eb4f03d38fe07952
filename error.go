// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Error is a failure record with file/line provenance and an optional causal
// parent, forming a singly linked, strictly acyclic chain. It is built with
// New/Newf/Capture and the With* operations and finalized with Dispatch.
//
// Three lifecycle flags govern dispatch, none of them business data: a record
// installed as another record's parent, a record that has already been
// dispatched, and the Empty placeholder are all permanently exempt. Equal
// ignores the handled state entirely.
type Error struct {
	message   string
	file      string
	line      int
	parent    *Error
	createdAt time.Time
	extra     []json.RawMessage
	project   *string
	computer  *string
	user      *string
	level     Level

	// lifecycle flags, see Dispatch.
	isParent  bool
	isHandled bool
	isDefault bool
}

var _ error = (*Error)(nil)

// newError creates a fresh record whose origin is the stack frame `skip`
// levels above this call.
func newError(message string, level Level, skip int) *Error {
	file, line := "unknown", 0
	if _, f, l, ok := runtime.Caller(skip); ok {
		file, line = f, l
	}
	return &Error{
		message:   message,
		file:      file,
		line:      line,
		createdAt: time.Now().UTC(),
		level:     level,
	}
}

// New returns a fresh Error with the given message, capturing the caller's
// file and line. The severity starts as LevelUnknown; adjust it with
// WithLevel.
func New(message string) *Error {
	return newError(message, LevelUnknown, 2)
}

// Newf is the formatted variant of New.
func Newf(format string, args ...any) *Error {
	return newError(fmt.Sprintf(format, args...), LevelUnknown, 2)
}

// NewWithLevel is like New with an explicit severity.
func NewWithLevel(message string, level Level) *Error {
	return newError(message, level, 2)
}

// Empty returns the placeholder record: it carries no failure, its timestamp
// is the fixed Unix epoch sentinel rather than the current time, and it never
// dispatches. Dispatch leaves one behind after taking a record's contents, so
// the original location stays populated and inert.
func Empty() *Error {
	e := newError("", LevelLog, 2)
	e.createdAt = time.Unix(0, 0).UTC()
	e.isDefault = true
	return e
}

// tracebacker is the capability a foreign error value exposes to identify
// itself as one of ours. Capture checks it instead of a concrete type switch
// so wrappers can forward the capability.
type tracebacker interface {
	Traceback() *Error
}

// Traceback exposes the record itself, satisfying the adoption capability.
func (e *Error) Traceback() *Error { return e }

// Capture adopts an arbitrary error. If err exposes the Traceback capability
// the underlying record is marked handled and becomes the parent of a fresh
// record that reuses its message; the chain stays intact. Otherwise the
// foreign error's text is flattened into the new record's extra data, since
// its internal structure cannot be recovered.
func Capture(err error) *Error {
	return capture(err, "", false)
}

// Capturef adopts an arbitrary error like Capture but gives the new record a
// fresh formatted message.
func Capturef(err error, format string, args ...any) *Error {
	return capture(err, fmt.Sprintf(format, args...), true)
}

func capture(err error, message string, hasMessage bool) *Error {
	if tb, ok := err.(tracebacker); ok {
		if record := tb.Traceback(); record != nil {
			record.isHandled = true
			if !hasMessage {
				message = record.message
			}
			return newError(message, LevelUnknown, 3).WithParent(record)
		}
	}
	e := newError(message, LevelUnknown, 3)
	if err != nil {
		e = e.WithExtra(map[string]string{"error": err.Error()})
	}
	return e
}

// WithExtra appends one schema-less value to the record's extra data. The
// append order is kept and is meaningful: the most recent context comes last.
// A value that cannot be serialized is stored as its plain text rendering.
func (e *Error) WithExtra(value any) *Error {
	data, err := json.Marshal(value)
	if err != nil {
		data, _ = json.Marshal(fmt.Sprint(value))
	}
	e.isDefault = false
	e.extra = append(e.extra, data)
	return e
}

// WithLevel sets the record's severity.
func (e *Error) WithLevel(level Level) *Error {
	e.isDefault = false
	e.level = level
	return e
}

// WithParent installs parent as the record's cause. The parent is permanently
// marked so its own Dispatch becomes a no-op; only the outermost record of a
// chain ever reaches a callback.
func (e *Error) WithParent(parent *Error) *Error {
	e.isDefault = false
	if parent == nil {
		return e
	}
	parent.isParent = true
	parent.isDefault = false
	e.parent = parent
	return e
}

// Message returns the record's own failure message.
func (e *Error) Message() string { return e.message }

// Origin returns the file and line captured when the record was constructed.
func (e *Error) Origin() (file string, line int) { return e.file, e.line }

// Parent returns the causal parent record, or nil.
func (e *Error) Parent() *Error { return e.parent }

// CreatedAt returns the construction timestamp.
func (e *Error) CreatedAt() time.Time { return e.createdAt }

// Extra returns the attached extra data in append order.
func (e *Error) Extra() []json.RawMessage { return e.extra }

// Level returns the record's severity.
func (e *Error) Level() Level { return e.level }

// Project returns the project context, or "" before context capture.
func (e *Error) Project() string { return deref(e.project) }

// Computer returns the host context, or "" before context capture.
func (e *Error) Computer() string { return deref(e.computer) }

// User returns the user context, or "" before context capture.
func (e *Error) User() string { return deref(e.user) }

// IsParent reports whether the record has been installed as another record's
// cause.
func (e *Error) IsParent() bool { return e.isParent }

// IsHandled reports whether the record has already been dispatched.
func (e *Error) IsHandled() bool { return e.isHandled }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Error renders the chain outermost cause first: the deepest ancestor at zero
// indent, every later link one tab deeper, one "file:line: message" line per
// record, the record itself last, no trailing newline.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var chain []*Error
	for record := e; record != nil; record = record.parent {
		chain = append(chain, record)
	}
	var sb strings.Builder
	for i := len(chain) - 1; i >= 0; i-- {
		if i != len(chain)-1 {
			sb.WriteByte('\n')
		}
		for tabs := len(chain) - 1 - i; tabs > 0; tabs-- {
			sb.WriteByte('\t')
		}
		record := chain[i]
		fmt.Fprintf(&sb, "%s:%d: %s", record.file, record.line, record.message)
	}
	return sb.String()
}

// Equal reports whether two records describe the same failure chain. The
// handled state, the placeholder sentinel, the severity and the timestamps
// are ignored; message, origin, extra data, context fields, parent marking
// and the parent chain (recursively) must all match.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.message != other.message ||
		e.file != other.file ||
		e.line != other.line ||
		e.isParent != other.isParent {
		return false
	}
	if deref(e.project) != deref(other.project) ||
		deref(e.computer) != deref(other.computer) ||
		deref(e.user) != deref(other.user) {
		return false
	}
	if len(e.extra) != len(other.extra) {
		return false
	}
	for i := range e.extra {
		if !bytes.Equal(e.extra[i], other.extra[i]) {
			return false
		}
	}
	if e.parent == nil && other.parent == nil {
		return true
	}
	return e.parent.Equal(other.parent)
}
