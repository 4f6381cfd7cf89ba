package arena

import (
	"sync"
	"sync/atomic"

	"github.com/wippyai/deparse/resource"
)

const (
	DefaultChunkSize     = 8 << 10
	DefaultMaxBytes      = 64 << 20
	DefaultMaxIdleChunks = 64

	// PoisonByte overwrites released chunks when Config.Poison is set.
	PoisonByte = 0x7f
)

// Config bounds arena memory.
type Config struct {
	// ChunkSize is the size of pooled chunks. Larger requests get a
	// dedicated chunk that is not pooled.
	ChunkSize int `yaml:"chunk_size"`
	// MaxBytes caps the chunk memory one arena may reserve; 0 disables the cap.
	MaxBytes int `yaml:"max_bytes"`
	// MaxIdleChunks caps the pool's free list.
	MaxIdleChunks int `yaml:"max_idle_chunks"`
	// Poison overwrites chunks with PoisonByte when they are released.
	Poison bool `yaml:"poison"`
}

// DefaultConfig returns the default arena configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     DefaultChunkSize,
		MaxBytes:      DefaultMaxBytes,
		MaxIdleChunks: DefaultMaxIdleChunks,
	}
}

// Pool hands out arenas and recycles their chunks. The free list is LIFO,
// so a call entered right after another one reuses the same memory.
type Pool struct {
	cfg    Config
	scopes *resource.Table[*Arena]
	free   [][]byte
	mu     sync.Mutex

	entered   atomic.Int64
	allocated atomic.Int64
	reused    atomic.Int64
}

// PoolStats is a point-in-time snapshot of a Pool.
type PoolStats struct {
	Live            int
	IdleChunks      int
	Entered         int64
	ChunksAllocated int64
	ChunksReused    int64
}

// NewPool creates a pool. Zero fields of cfg take their defaults.
func NewPool(cfg Config) *Pool {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.MaxIdleChunks < 0 {
		cfg.MaxIdleChunks = 0
	}
	return &Pool{
		cfg:    cfg,
		scopes: resource.NewTable[*Arena](),
	}
}

// Config returns the pool's effective configuration.
func (p *Pool) Config() Config {
	return p.cfg
}

// Enter opens a new arena scope.
func (p *Pool) Enter() *Arena {
	a := &Arena{pool: p}
	a.handle = p.scopes.Insert(a)
	p.entered.Add(1)
	return a
}

// Exit releases every allocation of a and closes its scope. Exiting an
// arena twice, or exiting one that was dropped directly, is safe.
func (p *Pool) Exit(a *Arena) {
	if a == nil {
		return
	}
	if cur, ok := p.scopes.Get(a.handle); ok && cur == a {
		p.scopes.Remove(a.handle)
		return
	}
	// untracked: entered after Close, or the handle was already removed
	a.Drop()
}

// Close releases every open scope and discards the idle chunks. It must
// not run concurrently with calls on arenas from this pool.
func (p *Pool) Close() error {
	err := p.scopes.Close()
	p.mu.Lock()
	clear(p.free)
	p.free = nil
	p.mu.Unlock()
	return err
}

// recycle returns chunks to the free list, last chunk first, so the next
// Enter pops the first chunk first.
func (p *Pool) recycle(chunks [][]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(chunks) - 1; i >= 0; i-- {
		chunk := chunks[i]
		if p.cfg.Poison {
			poison(chunk)
		}
		if len(chunk) != p.cfg.ChunkSize || len(p.free) >= p.cfg.MaxIdleChunks {
			continue // reject oversized
		}
		p.free = append(p.free, chunk)
	}
}

// Lookup returns the live arena registered under h.
func (p *Pool) Lookup(h resource.Handle) (*Arena, bool) {
	return p.scopes.Get(h)
}

// Live returns the number of open scopes.
func (p *Pool) Live() int {
	return p.scopes.Len()
}

// Subscribe registers an observer for scope enter and exit events.
func (p *Pool) Subscribe(o resource.Observer[*Arena]) {
	p.scopes.Subscribe(o)
}

// Stats returns pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	idle := len(p.free)
	p.mu.Unlock()
	return PoolStats{
		Live:            p.scopes.Len(),
		IdleChunks:      idle,
		Entered:         p.entered.Load(),
		ChunksAllocated: p.allocated.Load(),
		ChunksReused:    p.reused.Load(),
	}
}

func (p *Pool) acquire(size int) []byte {
	if size == p.cfg.ChunkSize {
		p.mu.Lock()
		if n := len(p.free); n > 0 {
			chunk := p.free[n-1]
			p.free[n-1] = nil
			p.free = p.free[:n-1]
			p.mu.Unlock()
			p.reused.Add(1)
			return chunk
		}
		p.mu.Unlock()
	}
	p.allocated.Add(1)
	return make([]byte, size)
}

func poison(b []byte) {
	for i := range b {
		b[i] = PoisonByte
	}
}
