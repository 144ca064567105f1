// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

import (
	"syscall"
	"time"
)

// entry holds the last known metadata for one filename plus the throttling
// state. An entry is created on the first stat of an unknown filename and is
// mutated in place on every subsequent one. It never escapes the owning
// Cache; callers only ever receive value copies.
type entry struct {
	name  string
	info  FileInfo
	ok    bool
	errno syscall.Errno

	// lastChecked is the time of the most recent real stat attempt,
	// successful or not. Zero until the first attempt.
	lastChecked time.Time
}

// expired reports whether a real stat is due at the time now. It is due when
// no stat has ever been attempted, when throttle is zero, or when at least
// throttle has elapsed since the last attempt. If the clock went backwards
// since the last attempt, the stored result is reused until the clock catches
// up.
func (e *entry) expired(now time.Time, throttle time.Duration) bool {
	if e.lastChecked.IsZero() || throttle == 0 {
		return true
	}
	if now.Before(e.lastChecked) {
		return false
	}
	return now.Sub(e.lastChecked) >= throttle
}

// refresh performs a real stat through the given primitive and overwrites the
// stored metadata, outcome, error code and timestamp with the new result,
// also when the stat failed. The throttling decision is the caller's, via
// expired.
func (e *entry) refresh(stat StatFunc, now time.Time) {
	info, err := stat(e.name)
	e.info = info
	e.ok = err == nil
	e.errno = 0
	if err != nil {
		e.errno = errnoOf(err)
	}
	e.lastChecked = now
}

// result returns a value copy of the entry's current state.
func (e *entry) result() Result {
	return Result{OK: e.ok, Errno: e.errno, Info: e.info}
}
