package deparse

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/deparse/arena"
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/trap"
	"github.com/wippyai/deparse/metrics"
)

// Entry point names used in logs and metrics.
const (
	OpStatements  = "statements"
	OpExpr        = "expr"
	OpTypeName    = "type_name"
	OpRelOptions  = "rel_options"
	OpSeqOptions  = "seq_options"
	OpAnyOperator = "any_operator"
	OpIndexElem   = "index_elem"
)

const (
	statementSep   = "; "
	statementFrame = "statement %d"

	// initialOutput caps the first output reservation; the buffer grows
	// as the renderer writes.
	initialOutput = 256
)

// run executes one call inside its own arena scope. Decode and render
// faults come back as an owned error record; the record is taken before
// the scope is released. Panics that are not faults propagate after the
// scope is released.
func run[T any](
	d *Deparser,
	op string,
	payload []byte,
	decode func(*arena.Arena, []byte) (T, error),
	render func(*arena.Arena, *arena.Buffer, T),
) *Result {
	start := time.Now()
	a := d.pool.Enter()
	defer d.pool.Exit(a)

	text, fault := trap.Attempt(func() string {
		v, err := decode(a, payload)
		if err != nil {
			trap.Fail(a.Diag(), errors.PhaseDecode, err)
		}
		out := a.NewBuffer(min(len(payload), initialOutput))
		render(a, out, v)
		return out.String()
	})

	res := &Result{owner: &d.heap}
	if fault != nil {
		res.Error = snapshot(&d.heap, fault)
		a.Diag().Flush()
	} else {
		res.Text = d.heap.Clone(text)
	}

	used := a.Stats().Used
	elapsed := time.Since(start)
	d.metrics.Observe(op, fault == nil, used, elapsed)
	d.logCall(op, len(payload), res, used, elapsed)
	return res
}

func (d *Deparser) logCall(op string, size int, res *Result, used int, elapsed time.Duration) {
	ce := d.logger().Check(zapcore.DebugLevel, "deparse call")
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("call_id", uuid.NewString()),
		zap.String("op", op),
		zap.Int("payload_bytes", size),
		zap.Int("arena_bytes", used),
		zap.Duration("elapsed", elapsed),
	}
	if e := res.Error; e != nil {
		fields = append(fields,
			zap.String("outcome", metrics.OutcomeError),
			zap.String("phase", string(e.Phase)),
			zap.String("kind", string(e.Kind)),
			zap.String("message", e.Message),
		)
	} else {
		fields = append(fields, zap.String("outcome", metrics.OutcomeOK), zap.Int("text_bytes", len(res.Text)))
	}
	ce.Write(fields...)
}

// statements renders every statement of r in order, separated by "; ".
func (d *Deparser) statements(a *arena.Arena, out *arena.Buffer, r *ast.ParseResult) {
	if r == nil {
		return
	}
	ch := a.Diag()
	for i, s := range r.Stmts {
		if i > 0 {
			_, _ = out.WriteString(statementSep)
		}
		ch.Push(a.Sprintf(statementFrame, i+1))
		d.render.RawStmt(a, out, s)
		ch.Pop()
	}
}
