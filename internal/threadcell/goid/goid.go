// Copyright 2025 The threadcell Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goid resolves the identity of the calling goroutine.
//
// Cell ownership is keyed by goroutine ID: a positive int64 assigned by the
// Go runtime, unique for the lifetime of the process and never reused. The
// package exposes two paths:
//
//   - Get: the production path, backed by github.com/petermattis/goid, which
//     reads the goid field straight off the runtime g struct (assembly on
//     supported platforms, library-internal fallback elsewhere). ~1-2ns.
//   - getSlow: parses the first line of runtime.Stack output. ~1500ns, but
//     independent of runtime struct layout. Kept so tests can cross-check
//     the fast path on every platform.
//
// If the two paths ever disagree, ownership checks would misattribute
// goroutines; the test suite treats a mismatch as fatal.
package goid

import lib "github.com/petermattis/goid"

// Get returns the current goroutine's ID.
//
// The result is always positive; 0 and negative values are reserved by the
// ownership word for the disowned and destroyed states.
func Get() int64 {
	return lib.Get()
}
