// Package arena provides call-scoped, bulk-released memory for deparse calls.
//
// An Arena is a chunked bump allocator. Every byte of string data decoded
// from a payload, every render buffer and every message formatted while a
// call runs is carved out of the arena that was entered for that call.
// Nothing is freed individually; Pool.Exit releases the whole arena at once
// and returns its chunks to the pool for the next call.
//
//	┌──────────┐  Enter   ┌─────────────────────────┐  Exit   ┌──────────┐
//	│   Pool   │ ───────▶ │ Arena (handle, chunks,  │ ──────▶ │   Pool   │
//	│ free LIFO│          │ diagnostic channel)     │         │ free LIFO│
//	└──────────┘          └─────────────────────────┘         └──────────┘
//
// # Lifetime
//
// Strings returned by String, CloneString, Sprintf and Buffer.String are
// views over arena memory. They are valid until the arena is exited and
// must be copied (strings.Clone) before they escape the call. With
// Config.Poison set, released chunks are overwritten so that violations
// show up as garbage rather than plausible data.
//
// # Budget
//
// Config.MaxBytes bounds the chunk memory one arena may reserve. An
// allocation that would exceed it raises an allocation fault through the
// arena's diagnostic channel, so arenas must only be used inside
// trap.Attempt.
//
// # Concurrency
//
// A Pool is safe for concurrent use. An Arena belongs to exactly one call
// and must not be shared.
package arena
