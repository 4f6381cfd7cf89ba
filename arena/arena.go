package arena

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/trap"
	"github.com/wippyai/deparse/resource"
)

// Arena is a per-call bump allocator. The zero value is not usable; obtain
// arenas from Pool.Enter.
type Arena struct {
	pool     *Pool
	chunks   [][]byte
	cur      []byte
	diag     trap.Channel
	handle   resource.Handle
	off      int
	reserved int
	used     int
	allocs   int
	released bool
}

// Stats describes the memory held by one arena.
type Stats struct {
	Allocs   int
	Used     int
	Reserved int
	Chunks   int
}

// Handle returns the handle the arena was registered under.
func (a *Arena) Handle() resource.Handle {
	return a.handle
}

// Diag returns the per-call diagnostic channel.
func (a *Arena) Diag() *trap.Channel {
	return &a.diag
}

// Released reports whether the arena has been exited.
func (a *Arena) Released() bool {
	return a.released
}

// Drop releases the arena's chunks to its pool. The scope table calls it
// when the arena's handle is removed or the pool is closed.
func (a *Arena) Drop() {
	if a.released {
		return
	}
	a.released = true
	a.diag.Flush()
	a.pool.recycle(a.chunks)
	clear(a.chunks)
	a.chunks = nil
	a.cur = nil
	a.off = 0
}

// Alloc returns n bytes of arena memory. The slice is capped at n so that
// appends never spill into neighbouring allocations.
func (a *Arena) Alloc(n int) []byte {
	if a.released {
		panic("arena: allocation from released arena")
	}
	if n <= 0 {
		return nil
	}
	if a.off+n > len(a.cur) {
		a.grow(n)
	}
	b := a.cur[a.off : a.off+n : a.off+n]
	a.off += n
	a.used += n
	a.allocs++
	return b
}

func (a *Arena) grow(n int) {
	size := a.pool.cfg.ChunkSize
	if n > size {
		size = n
	}
	if limit := a.pool.cfg.MaxBytes; limit > 0 && a.reserved+size > limit {
		err := errors.AllocationFailed(n, limit)
		err.File, err.Func, err.Line = errors.Locate(0)
		trap.Raise(&a.diag, err)
	}
	chunk := a.pool.acquire(size)
	a.chunks = append(a.chunks, chunk)
	a.cur = chunk
	a.off = 0
	a.reserved += len(chunk)
}

// String copies b into the arena and returns a view of the copy.
func (a *Arena) String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	dst := a.Alloc(len(b))
	copy(dst, b)
	return unsafe.String(&dst[0], len(dst))
}

// CloneString copies s into the arena.
func (a *Arena) CloneString(s string) string {
	if s == "" {
		return ""
	}
	dst := a.Alloc(len(s))
	copy(dst, s)
	return unsafe.String(&dst[0], len(dst))
}

// Sprintf formats into arena memory.
func (a *Arena) Sprintf(format string, args ...any) string {
	return a.CloneString(fmt.Sprintf(format, args...))
}

// Stats returns the arena's current usage.
func (a *Arena) Stats() Stats {
	return Stats{
		Allocs:   a.allocs,
		Used:     a.used,
		Reserved: a.reserved,
		Chunks:   len(a.chunks),
	}
}
