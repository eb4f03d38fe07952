// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package traceback

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockOn(t *testing.T) {
	var polls int
	blockOn(FutureFunc(func(waker Waker) bool {
		polls++
		return polls == 3
	}))
	require.Equal(t, 3, polls)
}

func TestBlockOnImmediate(t *testing.T) {
	var polls int
	blockOn(FutureFunc(func(waker Waker) bool {
		polls++
		return true
	}))
	require.Equal(t, 1, polls)
}

func TestWakerInert(t *testing.T) {
	waker := Waker{}
	// waking is a no-op and cloning yields another inert waker
	waker.Wake()
	clone := waker.Clone()
	clone.Wake()
	require.Equal(t, waker, clone)
}
