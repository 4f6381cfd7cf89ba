package deparse

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/deparse/arena"
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/codec"
	"github.com/wippyai/deparse/internal/heap"
	"github.com/wippyai/deparse/metrics"
	"github.com/wippyai/deparse/render"
)

// Codec decodes wire payloads into syntax trees allocated in a.
type Codec interface {
	DecodeParseResult(a *arena.Arena, payload []byte) (*ast.ParseResult, error)
	DecodeNode(a *arena.Arena, payload []byte) (ast.Node, error)
	DecodeTypeName(a *arena.Arena, payload []byte) (*ast.TypeName, error)
	DecodeOptionList(a *arena.Arena, payload []byte) (*ast.List, error)
	DecodeOperatorName(a *arena.Arena, payload []byte) (*ast.List, error)
	DecodeIndexElem(a *arena.Arena, payload []byte) (*ast.IndexElem, error)
}

// Renderer writes SQL text for syntax trees into out. Renderers abort
// through the arena's diagnostic channel and never return errors.
type Renderer interface {
	RawStmt(a *arena.Arena, out *arena.Buffer, s *ast.RawStmt)
	Expr(a *arena.Arena, out *arena.Buffer, n ast.Node)
	TypeName(a *arena.Arena, out *arena.Buffer, t *ast.TypeName)
	RelOptions(a *arena.Arena, out *arena.Buffer, l *ast.List)
	ParenthesizedSeqOptions(a *arena.Arena, out *arena.Buffer, l *ast.List)
	AnyOperator(a *arena.Arena, out *arena.Buffer, l *ast.List)
	IndexElem(a *arena.Arena, out *arena.Buffer, e *ast.IndexElem)
}

// Option customizes a Deparser.
type Option func(*Deparser)

// WithCodec replaces the protobuf decoder.
func WithCodec(c Codec) Option {
	return func(d *Deparser) { d.codec = c }
}

// WithRenderer replaces the SQL renderer.
func WithRenderer(r Renderer) Option {
	return func(d *Deparser) { d.render = r }
}

// Deparser converts wire-encoded syntax trees to SQL text. It is safe for
// concurrent use; every call runs in its own arena scope.
type Deparser struct {
	pool    *arena.Pool
	codec   Codec
	render  Renderer
	metrics *metrics.Recorder
	log     *zap.Logger
	heap    heap.Tracker
}

// Stats reports the owned memory handed out to callers and the state of
// the arena pool.
type Stats struct {
	Heap  heap.Stats
	Arena arena.PoolStats
}

// New creates a Deparser from cfg.
func New(cfg Config, opts ...Option) (*Deparser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rec, err := metrics.New(cfg.Registerer)
	if err != nil {
		return nil, err
	}
	d := &Deparser{
		pool:    arena.NewPool(cfg.Arena),
		codec:   codec.NewDecoder(cfg.Codec),
		render:  render.New(),
		metrics: rec,
		log:     cfg.Logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Deparser) logger() *zap.Logger {
	if d.log != nil {
		return d.log
	}
	return Logger()
}

// Stats returns a snapshot of the Deparser's counters.
func (d *Deparser) Stats() Stats {
	return Stats{Heap: d.heap.Stats(), Arena: d.pool.Stats()}
}

// Pool returns the arena pool calls run in.
func (d *Deparser) Pool() *arena.Pool {
	return d.pool
}

// Close releases the pooled arena memory. Calls made after Close still
// work but run in untracked arenas whose chunks are not pooled.
func (d *Deparser) Close() error {
	return d.pool.Close()
}

// Metrics returns the Deparser's metrics recorder.
func (d *Deparser) Metrics() *metrics.Recorder {
	return d.metrics
}

// Deparse renders a parse result as its statements joined by "; ".
func (d *Deparser) Deparse(payload []byte) *Result {
	return run(d, OpStatements, payload, d.codec.DecodeParseResult, d.statements)
}

// DeparseExpr renders a single expression.
func (d *Deparser) DeparseExpr(payload []byte) *Result {
	return run(d, OpExpr, payload, d.codec.DecodeNode, d.render.Expr)
}

// DeparseTypeName renders a type name.
func (d *Deparser) DeparseTypeName(payload []byte) *Result {
	return run(d, OpTypeName, payload, d.codec.DecodeTypeName, d.render.TypeName)
}

// DeparseRelOptions renders a relation option list.
func (d *Deparser) DeparseRelOptions(payload []byte) *Result {
	return run(d, OpRelOptions, payload, d.codec.DecodeOptionList, d.render.RelOptions)
}

// DeparseSeqOptions renders a sequence option list in parentheses.
func (d *Deparser) DeparseSeqOptions(payload []byte) *Result {
	return run(d, OpSeqOptions, payload, d.codec.DecodeOptionList, d.render.ParenthesizedSeqOptions)
}

// DeparseAnyOperator renders a possibly qualified operator name.
func (d *Deparser) DeparseAnyOperator(payload []byte) *Result {
	return run(d, OpAnyOperator, payload, d.codec.DecodeOperatorName, d.render.AnyOperator)
}

// DeparseIndexElem renders one index element.
func (d *Deparser) DeparseIndexElem(payload []byte) *Result {
	return run(d, OpIndexElem, payload, d.codec.DecodeIndexElem, d.render.IndexElem)
}

var (
	defaultOnce     sync.Once
	defaultDeparser *Deparser
)

// Default returns the Deparser used by the package-level functions. It is
// built from DefaultConfig on first use.
func Default() *Deparser {
	defaultOnce.Do(func() {
		d, err := New(DefaultConfig())
		if err != nil {
			panic(err)
		}
		defaultDeparser = d
	})
	return defaultDeparser
}

// Deparse calls Default().Deparse.
func Deparse(payload []byte) *Result { return Default().Deparse(payload) }

// DeparseExpr calls Default().DeparseExpr.
func DeparseExpr(payload []byte) *Result { return Default().DeparseExpr(payload) }

// DeparseTypeName calls Default().DeparseTypeName.
func DeparseTypeName(payload []byte) *Result { return Default().DeparseTypeName(payload) }

// DeparseRelOptions calls Default().DeparseRelOptions.
func DeparseRelOptions(payload []byte) *Result { return Default().DeparseRelOptions(payload) }

// DeparseSeqOptions calls Default().DeparseSeqOptions.
func DeparseSeqOptions(payload []byte) *Result { return Default().DeparseSeqOptions(payload) }

// DeparseAnyOperator calls Default().DeparseAnyOperator.
func DeparseAnyOperator(payload []byte) *Result { return Default().DeparseAnyOperator(payload) }

// DeparseIndexElem calls Default().DeparseIndexElem.
func DeparseIndexElem(payload []byte) *Result { return Default().DeparseIndexElem(payload) }
