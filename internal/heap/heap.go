// Package heap accounts for memory handed to callers outside of any arena.
//
// Every value the bridge returns (result text, error records and their
// strings) is copied with a Tracker, and released through the same
// Tracker. Live counts return to their previous values once a result is
// freed.
package heap

import (
	"strings"
	"sync/atomic"
)

// Tracker counts live owned objects and bytes. Safe for concurrent use.
type Tracker struct {
	objects atomic.Int64
	bytes   atomic.Int64
}

// Stats is a point-in-time snapshot of a Tracker.
type Stats struct {
	Objects int64
	Bytes   int64
}

// Clone copies s into fresh heap memory and records the allocation.
// The empty string is not an allocation.
func (t *Tracker) Clone(s string) string {
	if s == "" {
		return ""
	}
	t.objects.Add(1)
	t.bytes.Add(int64(len(s)))
	return strings.Clone(s)
}

// Release records that a string returned by Clone is no longer owned.
func (t *Tracker) Release(s string) {
	if s == "" {
		return
	}
	t.objects.Add(-1)
	t.bytes.Add(-int64(len(s)))
}

// Acquire records a fixed-size object allocation.
func (t *Tracker) Acquire(size int) {
	t.objects.Add(1)
	t.bytes.Add(int64(size))
}

// Drop records the release of an object recorded with Acquire.
func (t *Tracker) Drop(size int) {
	t.objects.Add(-1)
	t.bytes.Add(-int64(size))
}

// Stats returns the current counts.
func (t *Tracker) Stats() Stats {
	return Stats{Objects: t.objects.Load(), Bytes: t.bytes.Load()}
}
