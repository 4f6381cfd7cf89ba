package deparse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wippyai/deparse/arena"
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/codec"
	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/trap"
	"github.com/wippyai/deparse/metrics"
	"github.com/wippyai/deparse/parse"
)

var ignoreLocations = cmp.Options{
	cmpopts.IgnoreFields(ast.RawStmt{}, "StmtLocation", "StmtLen"),
	cmpopts.IgnoreFields(ast.ResTarget{}, "Location"),
	cmpopts.IgnoreFields(ast.RangeVar{}, "Location"),
	cmpopts.IgnoreFields(ast.ColumnRef{}, "Location"),
	cmpopts.IgnoreFields(ast.AConst{}, "Location"),
	cmpopts.IgnoreFields(ast.AExpr{}, "Location"),
	cmpopts.IgnoreFields(ast.BoolExpr{}, "Location"),
	cmpopts.IgnoreFields(ast.FuncCall{}, "Location"),
	cmpopts.IgnoreFields(ast.TypeCast{}, "Location"),
	cmpopts.IgnoreFields(ast.NullTest{}, "Location"),
	cmpopts.IgnoreFields(ast.ParamRef{}, "Location"),
	cmpopts.IgnoreFields(ast.TypeName{}, "Location"),
	cmpopts.IgnoreFields(ast.SortBy{}, "Location"),
	cmpopts.IgnoreFields(ast.DefElem{}, "Location"),
}

// entry pairs an entry point with the parser and encoder that produce its
// payloads.
type entry struct {
	op     string
	call   func(*Deparser, []byte) *Result
	encode func(t testing.TB, sql string) (any, []byte)
}

var entries = map[string]entry{
	OpStatements: {OpStatements, (*Deparser).Deparse, func(t testing.TB, sql string) (any, []byte) {
		r, err := parse.Parse(sql)
		require.NoError(t, err)
		return r, codec.EncodeParseResult(r)
	}},
	OpExpr: {OpExpr, (*Deparser).DeparseExpr, func(t testing.TB, sql string) (any, []byte) {
		n, err := parse.ParseExpr(sql)
		require.NoError(t, err)
		return n, codec.EncodeNode(n)
	}},
	OpTypeName: {OpTypeName, (*Deparser).DeparseTypeName, func(t testing.TB, sql string) (any, []byte) {
		tn, err := parse.ParseTypeName(sql)
		require.NoError(t, err)
		return tn, codec.EncodeTypeName(tn)
	}},
	OpRelOptions: {OpRelOptions, (*Deparser).DeparseRelOptions, func(t testing.TB, sql string) (any, []byte) {
		l, err := parse.ParseRelOptions(sql)
		require.NoError(t, err)
		return l, codec.EncodeList(l)
	}},
	OpSeqOptions: {OpSeqOptions, (*Deparser).DeparseSeqOptions, func(t testing.TB, sql string) (any, []byte) {
		l, err := parse.ParseSeqOptions(sql)
		require.NoError(t, err)
		return l, codec.EncodeList(l)
	}},
	OpAnyOperator: {OpAnyOperator, (*Deparser).DeparseAnyOperator, func(t testing.TB, sql string) (any, []byte) {
		l, err := parse.ParseAnyOperator(sql)
		require.NoError(t, err)
		return l, codec.EncodeList(l)
	}},
	OpIndexElem: {OpIndexElem, (*Deparser).DeparseIndexElem, func(t testing.TB, sql string) (any, []byte) {
		e, err := parse.ParseIndexElem(sql)
		require.NoError(t, err)
		return e, codec.EncodeNode(e)
	}},
}

func newDeparser(t testing.TB, mutate ...func(*Config)) *Deparser {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	d, err := New(cfg)
	require.NoError(t, err)
	return d
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		op   string
		sql  string
		want string
	}{
		{OpStatements, "SELECT 1", "SELECT 1"},
		{OpStatements, "select * from t where a > 0", "SELECT * FROM t WHERE a > 0"},
		{OpStatements, "INSERT INTO t (a, b) VALUES (1, $1) RETURNING a", "INSERT INTO t (a, b) VALUES (1, $1) RETURNING a"},
		{OpStatements, "UPDATE t SET a = 1, b = 'it''s' WHERE c IS NULL", "UPDATE t SET a = 1, b = 'it''s' WHERE c IS NULL"},
		{OpStatements, "DELETE FROM t WHERE id = 3", "DELETE FROM t WHERE id = 3"},
		{OpStatements, "CREATE SEQUENCE IF NOT EXISTS s INCREMENT BY 2 NO MAXVALUE CYCLE", "CREATE SEQUENCE IF NOT EXISTS s INCREMENT BY 2 NO MAXVALUE CYCLE"},
		{OpStatements, "CREATE INDEX ON t ((a + b))", "CREATE INDEX ON t ((a + b))"},
		{OpStatements, "SELECT 1; SELECT 2", "SELECT 1; SELECT 2"},
		{OpExpr, "a IS DISTINCT FROM b", "a IS DISTINCT FROM b"},
		{OpExpr, "a BETWEEN 1 AND 2", "a BETWEEN 1 AND 2"},
		{OpExpr, "'1'::integer", "'1'::int"},
		{OpExpr, "a IN (1, 2)", "a IN (1, 2)"},
		{OpExpr, "$12", "$12"},
		{OpTypeName, "SETOF double precision[3]", "SETOF double precision[3]"},
		{OpTypeName, "varchar(20)", "varchar(20)"},
		{OpRelOptions, "(fillfactor = 70, label = 'x y', flag)", "(fillfactor = 70, label = 'x y', flag)"},
		{OpSeqOptions, "(AS bigint START WITH 10 CACHE 5 NO CYCLE)", "(AS bigint START WITH 10 CACHE 5 NO CYCLE)"},
		{OpSeqOptions, "()", ""},
		{OpAnyOperator, "pg_catalog.+", "pg_catalog.+"},
		{OpIndexElem, `a COLLATE "C" DESC`, `a COLLATE "C" DESC`},
	}

	d := newDeparser(t)
	for _, tt := range tests {
		t.Run(tt.op+"/"+tt.sql, func(t *testing.T) {
			e := entries[tt.op]
			tree, payload := e.encode(t, tt.sql)

			res := e.call(d, payload)
			defer res.Free()
			require.NoError(t, res.Err())
			require.Equal(t, tt.want, res.Text)

			if tt.want == "" {
				return
			}
			again, payload := e.encode(t, res.Text)
			require.Empty(t, cmp.Diff(tree, again, ignoreLocations))

			res2 := e.call(d, payload)
			defer res2.Free()
			require.NoError(t, res2.Err())
			require.Equal(t, res.Text, res2.Text)
		})
	}
}

func TestSeparatorLaw(t *testing.T) {
	d := newDeparser(t)

	for n := 0; n <= 5; n++ {
		r := &ast.ParseResult{}
		for i := 1; i <= n; i++ {
			r.Stmts = append(r.Stmts, &ast.RawStmt{Stmt: &ast.SelectStmt{
				TargetList: []ast.Node{&ast.ResTarget{Val: ast.MakeIntConst(int32(i), -1), Location: -1}},
			}})
		}
		res := d.Deparse(codec.EncodeParseResult(r))
		require.NoError(t, res.Err())
		require.Equal(t, max(n-1, 0), strings.Count(res.Text, statementSep), "n=%d", n)
		for i := 1; i <= n; i++ {
			require.Contains(t, res.Text, fmt.Sprintf("SELECT %d", i))
		}
		res.Free()
	}
}

func TestSingleStatement(t *testing.T) {
	d := newDeparser(t)
	_, payload := entries[OpStatements].encode(t, "SELECT a FROM t")

	res := d.Deparse(payload)
	defer res.Free()
	require.True(t, res.Ok())
	require.Equal(t, "SELECT a FROM t", res.Text)
	require.NotContains(t, res.Text, ";")
}

func TestEmptyPayload(t *testing.T) {
	d := newDeparser(t)

	res := d.Deparse(nil)
	require.True(t, res.Ok())
	require.Equal(t, "", res.Text)
	res.Free()

	res = d.DeparseExpr(nil)
	require.False(t, res.Ok())
	require.Equal(t, errors.PhaseDecode, res.Error.Phase)
	res.Free()
}

func TestDecodeFault(t *testing.T) {
	d := newDeparser(t)

	res := d.DeparseExpr([]byte{0x0a})
	defer res.Free()
	require.False(t, res.Ok())
	require.Empty(t, res.Text)

	rec := res.Error
	require.Equal(t, errors.PhaseDecode, rec.Phase)
	require.Equal(t, errors.KindInvalidData, rec.Kind)
	require.Equal(t, "decoder.go", rec.SourceFile)
	require.NotEmpty(t, rec.SourceFunction)
	require.NotZero(t, rec.LineNumber)
	require.Positive(t, rec.CursorPosition)
	require.Empty(t, rec.Context)
	require.ErrorIs(t, res.Err(), errors.New(errors.PhaseDecode, errors.KindInvalidData).Build())
}

func TestRenderFault(t *testing.T) {
	d := newDeparser(t)
	tree := &ast.ParseResult{Stmts: []*ast.RawStmt{
		{Stmt: &ast.SelectStmt{TargetList: []ast.Node{&ast.ResTarget{Val: ast.MakeIntConst(1, 7), Location: 7}}}},
		{Stmt: &ast.SelectStmt{TargetList: []ast.Node{&ast.ResTarget{
			Val:      &ast.AExpr{Name: ast.MakeName("+"), Lexpr: ast.MakeColumnRef(17, "a"), Rexpr: ast.MakeColumnRef(21, "b"), Location: 19},
			Location: 17,
		}}}},
	}}

	res := d.Deparse(codec.EncodeParseResult(tree))
	defer res.Free()
	require.False(t, res.Ok())
	require.Empty(t, res.Text, "a failed call returns no partial text")

	rec := res.Error
	require.Equal(t, errors.PhaseRender, rec.Phase)
	require.Equal(t, errors.KindInvalidEnum, rec.Kind)
	require.Equal(t, "unrecognized A_Expr kind: 0", rec.Message)
	require.Equal(t, "expr.go", rec.SourceFile)
	require.Contains(t, rec.SourceFunction, "aExpr")
	require.Equal(t, 20, rec.CursorPosition)
	require.Equal(t, "SELECT\nstatement 2", rec.Context)
	require.Equal(t, "unrecognized A_Expr kind: 0 (position 20)", rec.Error())
}

func TestErrorIndependentOfArena(t *testing.T) {
	d := newDeparser(t, func(c *Config) {
		c.Arena.ChunkSize = 256
		c.Arena.Poison = true
	})

	bad := codec.EncodeNode(&ast.FuncCall{Args: []ast.Node{ast.MakeColumnRef(-1, "a")}})
	res := d.DeparseExpr(bad)
	defer res.Free()
	require.False(t, res.Ok())
	message, context := strings.Clone(res.Error.Message), strings.Clone(res.Error.Context)
	require.NotEmpty(t, message)

	reused := d.Stats().Arena.ChunksReused
	_, good := entries[OpStatements].encode(t, "SELECT aaaaaaaaaaaaaaaa, bbbbbbbbbbbbbbbbbbb FROM cccccccccccccccccc")
	for range 8 {
		other := d.Deparse(good)
		require.True(t, other.Ok())
		other.Free()
	}
	require.Greater(t, d.Stats().Arena.ChunksReused, reused, "later calls must reuse the faulting call's chunks")

	require.Equal(t, message, res.Error.Message)
	require.Equal(t, context, res.Error.Context)
	require.NotContains(t, res.Error.Message, string(rune(arena.PoisonByte)))
}

func TestClose(t *testing.T) {
	d := newDeparser(t)
	_, payload := entries[OpExpr].encode(t, "a IS DISTINCT FROM b")

	res := d.DeparseExpr(payload)
	require.Equal(t, "a IS DISTINCT FROM b", res.Text)
	require.NotZero(t, d.Stats().Arena.IdleChunks)

	require.NoError(t, d.Close())
	require.Zero(t, d.Stats().Arena.IdleChunks)

	// results outlive the pool
	require.Equal(t, "a IS DISTINCT FROM b", res.Text)
	res.Free()

	after := d.DeparseExpr(payload)
	defer after.Free()
	require.Equal(t, "a IS DISTINCT FROM b", after.Text)
	require.Zero(t, d.Pool().Live())
}

func TestFreeRestoresBaseline(t *testing.T) {
	d := newDeparser(t)
	base := d.Stats().Heap
	require.Zero(t, base.Objects)

	_, good := entries[OpExpr].encode(t, "a + 1")
	ok := d.DeparseExpr(good)
	bad := d.DeparseExpr([]byte{0xff})
	require.True(t, ok.Ok())
	require.False(t, bad.Ok())
	require.Greater(t, d.Stats().Heap.Objects, base.Objects)

	ok.Free()
	FreeResult(bad)
	require.Equal(t, base, d.Stats().Heap)
	require.Zero(t, d.Stats().Arena.Live)

	// second free is a no-op
	ok.Free()
	bad.Free()
	require.Equal(t, base, d.Stats().Heap)
	require.Nil(t, bad.Error)
	require.Empty(t, ok.Text)

	FreeResult(nil)
}

func TestAllocationExhaustion(t *testing.T) {
	d := newDeparser(t, func(c *Config) {
		c.Arena.ChunkSize = 64
		c.Arena.MaxBytes = 128
	})

	cols := make([]string, 40)
	for i := range cols {
		cols[i] = fmt.Sprintf("column_with_a_long_name_%d", i)
	}
	_, payload := entries[OpStatements].encode(t, "SELECT "+strings.Join(cols, ", ")+" FROM t")

	res := d.Deparse(payload)
	defer res.Free()
	require.False(t, res.Ok())
	require.Equal(t, errors.PhaseAlloc, res.Error.Phase)
	require.Equal(t, errors.KindAllocation, res.Error.Kind)
	require.Contains(t, res.Error.Message, "arena budget of 128 bytes")
	require.Zero(t, d.Pool().Live())

	// the deparser keeps working after exhaustion
	_, small := entries[OpExpr].encode(t, "1")
	next := d.DeparseExpr(small)
	defer next.Free()
	require.NoError(t, next.Err())
	require.Equal(t, "1", next.Text)
}

type panickingRenderer struct {
	Renderer
}

func (panickingRenderer) Expr(*arena.Arena, *arena.Buffer, ast.Node) {
	panic("renderer bug")
}

func TestOutputBufferIndependentOfPayloadSize(t *testing.T) {
	d := newDeparser(t, func(c *Config) {
		c.Arena.ChunkSize = 64
		c.Arena.MaxBytes = 1024
	})

	// unknown fields are skipped by the decoder but still count toward
	// the payload length
	_, payload := entries[OpStatements].encode(t, "SELECT 1")
	payload = protowire.AppendTag(payload, 15, protowire.BytesType)
	payload = protowire.AppendBytes(payload, make([]byte, 4096))

	res := d.Deparse(payload)
	defer res.Free()
	require.True(t, res.Ok(), "%v", res.Error)
	require.Equal(t, "SELECT 1", res.Text)
}

func TestForeignPanicPropagates(t *testing.T) {
	base := newDeparser(t)
	d := newDeparser(t)
	WithRenderer(panickingRenderer{Renderer: base.render})(d)

	_, payload := entries[OpExpr].encode(t, "a")
	require.PanicsWithValue(t, "renderer bug", func() {
		d.DeparseExpr(payload)
	})
	require.Zero(t, d.Pool().Live(), "scope must be released while the panic unwinds")
	require.Zero(t, d.Stats().Heap.Objects)

	// other entry points are unaffected
	res := d.DeparseTypeName(codec.EncodeTypeName(ast.MakeTypeName("text")))
	defer res.Free()
	require.Equal(t, "text", res.Text)
}

type nilRaisingRenderer struct {
	Renderer
}

func (nilRaisingRenderer) Expr(a *arena.Arena, _ *arena.Buffer, _ ast.Node) {
	trap.Raise(a.Diag(), nil)
}

func TestNilRaiseIsReported(t *testing.T) {
	base := newDeparser(t)
	d := newDeparser(t)
	WithRenderer(nilRaisingRenderer{Renderer: base.render})(d)

	_, payload := entries[OpExpr].encode(t, "a")
	res := d.DeparseExpr(payload)
	defer res.Free()
	require.False(t, res.Ok())
	require.Empty(t, res.Text)
	require.Equal(t, errors.PhaseRender, res.Error.Phase)
	require.Equal(t, errors.KindInternal, res.Error.Kind)
	require.Zero(t, d.Pool().Live())
}

type failingCodec struct {
	Codec
}

func (failingCodec) DecodeNode(*arena.Arena, []byte) (ast.Node, error) {
	return nil, fmt.Errorf("backend unavailable")
}

func TestForeignDecodeError(t *testing.T) {
	d, err := New(DefaultConfig(), WithCodec(failingCodec{Codec: codec.NewDecoder(codec.DefaultConfig())}))
	require.NoError(t, err)

	res := d.DeparseExpr(nil)
	defer res.Free()
	require.Equal(t, errors.PhaseDecode, res.Error.Phase)
	require.Equal(t, errors.KindInternal, res.Error.Kind)
	require.Contains(t, res.Error.Message, "backend unavailable")
}

func TestConcurrentIsolation(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newDeparser(t, func(c *Config) {
		c.Arena.ChunkSize = 128
		c.Arena.Poison = true
	})

	type job struct {
		call    func(*Deparser, []byte) *Result
		payload []byte
	}
	var jobs []job
	for _, sql := range []string{"SELECT a FROM t", "SELECT 1; SELECT 2", "DELETE FROM t WHERE id = 3"} {
		_, p := entries[OpStatements].encode(t, sql)
		jobs = append(jobs, job{(*Deparser).Deparse, p})
	}
	_, p := entries[OpExpr].encode(t, "a BETWEEN 1 AND 2")
	jobs = append(jobs,
		job{(*Deparser).DeparseExpr, p},
		job{(*Deparser).DeparseExpr, codec.EncodeNode(&ast.ParamRef{Number: -1, Location: 3})},
		job{(*Deparser).DeparseExpr, []byte{0x0a, 0x05}},
		job{(*Deparser).DeparseIndexElem, codec.EncodeNode(ast.MakeColumnRef(-1, "a"))},
	)

	type outcome struct {
		Text    string
		Message string
		Context string
		Cursor  int
	}
	observe := func(r *Result) outcome {
		defer r.Free()
		if r.Error != nil {
			return outcome{Message: r.Error.Message, Context: r.Error.Context, Cursor: r.Error.CursorPosition}
		}
		return outcome{Text: r.Text}
	}

	want := make([]outcome, len(jobs))
	for i, j := range jobs {
		want[i] = observe(j.call(d, j.payload))
	}

	const workers, rounds = 16, 50
	got := make([][]outcome, workers)
	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for r := range rounds {
				i := (w + r) % len(jobs)
				o := observe(jobs[i].call(d, jobs[i].payload))
				if o != want[i] {
					got[w] = append(got[w], o)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for w := range workers {
		require.Empty(t, got[w], "worker %d saw results differing from sequential runs", w)
	}
	require.Zero(t, d.Pool().Live())
	require.Zero(t, d.Stats().Heap.Objects)
}

func TestMalformedPayloadsNeverPanic(t *testing.T) {
	d := newDeparser(t)
	_, payload := entries[OpStatements].encode(t, "SELECT DISTINCT a, count(*) AS n FROM s.t AS x WHERE a > 0 GROUP BY a ORDER BY a DESC LIMIT 10")

	check := func(r *Result) {
		t.Helper()
		if r.Error != nil {
			require.Empty(t, r.Text)
			require.NotEmpty(t, r.Error.Message)
		}
		r.Free()
	}
	for n := range len(payload) {
		prefix := payload[:n]
		for _, e := range entries {
			check(e.call(d, prefix))
		}
		flipped := append([]byte(nil), payload...)
		flipped[n] ^= 0xa5
		check(d.Deparse(flipped))
	}
	require.Zero(t, d.Pool().Live())
	require.Zero(t, d.Stats().Heap.Objects)
}

func TestPackageLevelFunctions(t *testing.T) {
	_, payload := entries[OpAnyOperator].encode(t, "pg_catalog.<=")
	res := DeparseAnyOperator(payload)
	defer FreeResult(res)
	require.Equal(t, "pg_catalog.<=", res.Text)
	require.Same(t, Default(), Default())

	for _, fn := range []func([]byte) *Result{Deparse, DeparseExpr, DeparseTypeName, DeparseRelOptions, DeparseSeqOptions, DeparseIndexElem} {
		fn([]byte{0xff}).Free()
	}
}

func TestMetricsAndLogging(t *testing.T) {
	reg := prometheus.NewRegistry()
	core, logs := observer.New(zapcore.DebugLevel)
	d := newDeparser(t, func(c *Config) {
		c.Registerer = reg
		c.Logger = zap.New(core)
	})

	_, payload := entries[OpTypeName].encode(t, "int4")
	d.DeparseTypeName(payload).Free()
	d.DeparseTypeName([]byte{0xff}).Free()

	calls := d.Metrics().Calls()
	require.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(OpTypeName, metrics.OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(OpTypeName, metrics.OutcomeError)))

	entries := logs.FilterMessage("deparse call").AllUntimed()
	require.Len(t, entries, 2)
	first := entries[0].ContextMap()
	require.Equal(t, OpTypeName, first["op"])
	require.Equal(t, metrics.OutcomeOK, first["outcome"])
	require.NotEmpty(t, first["call_id"])
	second := entries[1].ContextMap()
	require.Equal(t, metrics.OutcomeError, second["outcome"])
	require.Equal(t, string(errors.PhaseDecode), second["phase"])
}

func TestPackageLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	d := newDeparser(t)
	d.DeparseExpr([]byte{0xff}).Free()
	require.Equal(t, 1, logs.FilterField(zap.String("op", OpExpr)).Len())

	SetLogger(nil)
	require.Same(t, nop, Logger())
}

func FuzzDeparse(f *testing.F) {
	seed := func(sql string) {
		r, err := parse.Parse(sql)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(codec.EncodeParseResult(r))
	}
	seed("SELECT a, b FROM t JOIN u ON t.id = u.id WHERE a IN (1, 2)")
	seed("INSERT INTO t (a) VALUES ('x') RETURNING a")
	seed("CREATE INDEX i ON t USING gin (a) WITH (fillfactor = 70)")
	f.Add([]byte{})
	f.Add([]byte{0x12, 0x02, 0x0a, 0x00})

	d, err := New(DefaultConfig())
	if err != nil {
		f.Fatal(err)
	}
	calls := []func(*Deparser, []byte) *Result{
		(*Deparser).Deparse,
		(*Deparser).DeparseExpr,
		(*Deparser).DeparseTypeName,
		(*Deparser).DeparseRelOptions,
		(*Deparser).DeparseSeqOptions,
		(*Deparser).DeparseAnyOperator,
		(*Deparser).DeparseIndexElem,
	}
	f.Fuzz(func(t *testing.T, payload []byte) {
		for _, call := range calls {
			r := call(d, payload)
			if r.Error != nil && r.Text != "" {
				t.Fatalf("result has both text and error: %q / %v", r.Text, r.Error)
			}
			r.Free()
		}
		if live := d.Pool().Live(); live != 0 {
			t.Fatalf("%d scopes left open", live)
		}
	})
}
