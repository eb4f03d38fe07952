// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import "runtime"

// Waker is the wake signal handed to a Future on every poll. It is
// deliberately inert: Wake does nothing and Clone yields an equally inert
// copy. blockOn repolls unconditionally, so a future must make progress on
// its own polls and may not depend on being woken.
type Waker struct{}

// Wake is a no-op.
func (Waker) Wake() {}

// Clone returns another inert Waker.
func (Waker) Clone() Waker { return Waker{} }

// Future is a single unit-producing computation that an asynchronous
// callback returns. Poll advances it and reports true once it is complete;
// until then blockOn polls it again immediately.
type Future interface {
	Poll(waker Waker) bool
}

// FutureFunc adapts a plain function to the Future interface.
type FutureFunc func(waker Waker) bool

// Poll calls f.
func (f FutureFunc) Poll(waker Waker) bool { return f(waker) }

// blockOn drives exactly one Future to completion on the calling goroutine.
// It exists so Dispatch, which runs in a synchronous teardown path, can run
// an asynchronous callback to completion before returning. There is no
// scheduler and no external wake source: a pending result is repolled in a
// busy spin. A future that only completes via a genuine wake-up will spin
// forever; callers of the asynchronous path must guarantee their computation
// becomes ready on a later poll of its own volition.
func blockOn(future Future) {
	waker := Waker{}
	for !future.Poll(waker) {
		runtime.Gosched()
	}
}
