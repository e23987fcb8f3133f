// Copyright 2025 The threadcell Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Slow-path goroutine ID extraction via runtime.Stack parsing.
//
// This path does not depend on the runtime.g struct layout and therefore
// works on every Go version and architecture. It exists to validate the
// fast path, not to serve production calls.

package goid

import "runtime"

// getSlow extracts the goroutine ID by parsing runtime.Stack output.
//
// Stack trace format: "goroutine 123 [running]:\n..."
// Returns 0 if the format is not recognized.
func getSlow() int64 {
	// Only the first line is needed; 64 bytes always covers
	// "goroutine <id> [state]:".
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the numeric goroutine ID from stack trace bytes.
//
// Expected format: "goroutine 123 [running]:...". Direct byte parsing,
// no regex, no string allocation beyond the prefix check.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "

	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var gid int64
	for i := len(prefix); i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			// Non-digit terminates the ID (the space before "[running]").
			break
		}
		gid = gid*10 + int64(c-'0')
	}
	return gid
}
