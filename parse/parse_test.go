package parse

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
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

func col(parts ...string) *ast.ColumnRef { return ast.MakeColumnRef(0, parts...) }
func num(v int32) *ast.AConst           { return ast.MakeIntConst(v, 0) }
func op(o string, l, r ast.Node) *ast.AExpr {
	return ast.MakeOpExpr(o, l, r, 0)
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		in   string
		want ast.Node
	}{
		{"1 + 2 * 3", op("+", num(1), op("*", num(2), num(3)))},
		{"(1 + 2) * 3", op("*", op("+", num(1), num(2)), num(3))},
		{"a - b - c", op("-", op("-", col("a"), col("b")), col("c"))},
		{"-1", num(-1)},
		{"- 1.5", &ast.AConst{Val: &ast.Float{Fval: "-1.5"}}},
		{"-1::text", op("-", nil, &ast.TypeCast{Arg: num(1), TypeName: ast.MakeTypeName("text")})},
		{"-a", op("-", nil, col("a"))},
		{"a=-1", op("=", col("a"), num(-1))},
		{"a != b", op("<>", col("a"), col("b"))},
		{"2147483648", &ast.AConst{Val: &ast.Float{Fval: "2147483648"}}},
		{"'it''s'", ast.MakeStringConst("it's", 0)},
		{`E'a\nb'`, ast.MakeStringConst("a\nb", 0)},
		{`"Quoted"."Col"`, col("Quoted", "Col")},
		{"T.Col", col("t", "col")},
		{"t.*", &ast.ColumnRef{Fields: []ast.Node{ast.MakeString("t"), &ast.AStar{}}}},
		{"$3", &ast.ParamRef{Number: 3}},
		{"NULL", &ast.AConst{Isnull: true}},
		{"true", &ast.AConst{Val: &ast.Boolean{Boolval: true}}},
		{"a || b", op("||", col("a"), col("b"))},
		{"a OPERATOR(pg_catalog.+) b", &ast.AExpr{Kind: ast.AExprOp, Name: ast.MakeName("pg_catalog", "+"), Lexpr: col("a"), Rexpr: col("b")}},
		{"a AND b OR c AND d", &ast.BoolExpr{Boolop: ast.OrExpr, Args: []ast.Node{
			&ast.BoolExpr{Boolop: ast.AndExpr, Args: []ast.Node{col("a"), col("b")}},
			&ast.BoolExpr{Boolop: ast.AndExpr, Args: []ast.Node{col("c"), col("d")}},
		}}},
		{"a OR b OR c", &ast.BoolExpr{Boolop: ast.OrExpr, Args: []ast.Node{col("a"), col("b"), col("c")}}},
		{"NOT a = 1", &ast.BoolExpr{Boolop: ast.NotExpr, Args: []ast.Node{op("=", col("a"), num(1))}}},
		{"a IS NOT NULL", &ast.NullTest{Arg: col("a"), Nulltesttype: ast.IsNotNull}},
		{"a IS DISTINCT FROM b", &ast.AExpr{Kind: ast.AExprDistinct, Name: ast.MakeName("="), Lexpr: col("a"), Rexpr: col("b")}},
		{"a NOT IN (1, 2)", &ast.AExpr{Kind: ast.AExprIn, Name: ast.MakeName("<>"), Lexpr: col("a"), Rexpr: &ast.List{Items: []ast.Node{num(1), num(2)}}}},
		{"a LIKE 'x%'", &ast.AExpr{Kind: ast.AExprLike, Name: ast.MakeName("~~"), Lexpr: col("a"), Rexpr: ast.MakeStringConst("x%", 0)}},
		{"a NOT ILIKE 'x'", &ast.AExpr{Kind: ast.AExprILike, Name: ast.MakeName("!~~*"), Lexpr: col("a"), Rexpr: ast.MakeStringConst("x", 0)}},
		{"a BETWEEN 1 AND 2 AND b", &ast.BoolExpr{Boolop: ast.AndExpr, Args: []ast.Node{
			&ast.AExpr{Kind: ast.AExprBetween, Name: ast.MakeName("BETWEEN"), Lexpr: col("a"), Rexpr: &ast.List{Items: []ast.Node{num(1), num(2)}}},
			col("b"),
		}}},
		{"count(*)", &ast.FuncCall{Funcname: ast.MakeName("count"), AggStar: true}},
		{"pg_catalog.sum(DISTINCT a)", &ast.FuncCall{Funcname: ast.MakeName("pg_catalog", "sum"), AggDistinct: true, Args: []ast.Node{col("a")}}},
		{"now()", &ast.FuncCall{Funcname: ast.MakeName("now")}},
		{"CAST(a AS integer)", &ast.TypeCast{Arg: col("a"), TypeName: ast.MakeTypeName("pg_catalog", "int4")}},
		{"a::varchar(10)[]", &ast.TypeCast{Arg: col("a"), TypeName: &ast.TypeName{
			Names:       ast.MakeName("pg_catalog", "varchar"),
			Typmods:     []ast.Node{num(10)},
			ArrayBounds: []ast.Node{&ast.Integer{Ival: -1}},
		}}},
		{"a /* note */ + -- trailing\n b", op("+", col("a"), col("b"))},
		{"name", col("name")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExpr(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, ignoreLocations); diff != "" {
				t.Fatalf("ParseExpr(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	r, err := Parse("SELECT a AS x, b y FROM s.t AS u LEFT JOIN v ON u.id = v.id WHERE a > 1 ORDER BY a DESC NULLS LAST LIMIT 5; ; DELETE FROM ONLY t")
	require.NoError(t, err)
	require.Len(t, r.Stmts, 2)

	want := &ast.SelectStmt{
		TargetList: []ast.Node{
			&ast.ResTarget{Name: "x", Val: col("a")},
			&ast.ResTarget{Name: "y", Val: col("b")},
		},
		FromClause: []ast.Node{&ast.JoinExpr{
			Jointype: ast.JoinLeft,
			Larg:     &ast.RangeVar{Schemaname: "s", Relname: "t", Inh: true, Alias: &ast.Alias{Aliasname: "u"}},
			Rarg:     &ast.RangeVar{Relname: "v", Inh: true},
			Quals:    op("=", col("u", "id"), col("v", "id")),
		}},
		WhereClause: op(">", col("a"), num(1)),
		SortClause:  []ast.Node{&ast.SortBy{Node: col("a"), SortbyDir: ast.SortByDirDesc, SortbyNulls: ast.SortByNullsLast}},
		LimitCount:  num(5),
	}
	require.Empty(t, cmp.Diff(ast.Node(want), r.Stmts[0].Stmt, ignoreLocations))
	require.Equal(t, int32(0), r.Stmts[0].StmtLocation)
	require.NotZero(t, r.Stmts[0].StmtLen)

	del := r.Stmts[1].Stmt.(*ast.DeleteStmt)
	require.False(t, del.Relation.Inh)
	require.Zero(t, r.Stmts[1].StmtLen, "last statement extends to end of input")
}

func TestParseStatementForms(t *testing.T) {
	tests := []struct {
		in   string
		want ast.Node
	}{
		{
			"INSERT INTO t (a, b) VALUES (1, 2), (3, DEFAULT_VALUE) RETURNING a",
			&ast.InsertStmt{
				Relation: &ast.RangeVar{Relname: "t", Inh: true},
				Cols:     []ast.Node{&ast.ResTarget{Name: "a"}, &ast.ResTarget{Name: "b"}},
				SelectStmt: &ast.SelectStmt{ValuesLists: []ast.Node{
					&ast.List{Items: []ast.Node{num(1), num(2)}},
					&ast.List{Items: []ast.Node{num(3), col("default_value")}},
				}},
				ReturningList: []ast.Node{&ast.ResTarget{Val: col("a")}},
			},
		},
		{
			"insert into t default values",
			&ast.InsertStmt{Relation: &ast.RangeVar{Relname: "t", Inh: true}},
		},
		{
			"UPDATE t SET a = 1, b = $1 WHERE id IS NULL",
			&ast.UpdateStmt{
				Relation:    &ast.RangeVar{Relname: "t", Inh: true},
				TargetList:  []ast.Node{&ast.ResTarget{Name: "a", Val: num(1)}, &ast.ResTarget{Name: "b", Val: &ast.ParamRef{Number: 1}}},
				WhereClause: &ast.NullTest{Arg: col("id"), Nulltesttype: ast.IsNull},
			},
		},
		{
			"CREATE SEQUENCE IF NOT EXISTS s INCREMENT BY 2 NO CYCLE START 5 OWNED BY NONE",
			&ast.CreateSeqStmt{
				Sequence:    &ast.RangeVar{Relname: "s", Inh: true},
				IfNotExists: true,
				Options: []ast.Node{
					ast.MakeDefElem("increment", &ast.Integer{Ival: 2}, 0),
					ast.MakeDefElem("cycle", &ast.Boolean{}, 0),
					ast.MakeDefElem("start", &ast.Integer{Ival: 5}, 0),
					ast.MakeDefElem("owned_by", &ast.List{Items: ast.MakeName("none")}, 0),
				},
			},
		},
		{
			"CREATE UNIQUE INDEX CONCURRENTLY IF NOT EXISTS i ON t USING gin (lower(a), (b + 1) DESC, c text_ops NULLS FIRST) WITH (fillfactor = 70) WHERE c",
			&ast.IndexStmt{
				Idxname:      "i",
				Relation:     &ast.RangeVar{Relname: "t", Inh: true},
				AccessMethod: "gin",
				IndexParams: []ast.Node{
					&ast.IndexElem{Expr: &ast.FuncCall{Funcname: ast.MakeName("lower"), Args: []ast.Node{col("a")}}, Ordering: ast.SortByDirDefault, NullsOrdering: ast.SortByNullsDefault},
					&ast.IndexElem{Expr: op("+", col("b"), num(1)), Ordering: ast.SortByDirDesc, NullsOrdering: ast.SortByNullsDefault},
					&ast.IndexElem{Name: "c", Opclass: ast.MakeName("text_ops"), Ordering: ast.SortByDirDefault, NullsOrdering: ast.SortByNullsFirst},
				},
				Options:     []ast.Node{ast.MakeDefElem("fillfactor", &ast.Integer{Ival: 70}, 0)},
				WhereClause: col("c"),
				Unique:      true,
				Concurrent:  true,
				IfNotExists: true,
			},
		},
		{
			"SELECT 1 FROM a CROSS JOIN b JOIN (c FULL OUTER JOIN d ON true) ON true",
			&ast.SelectStmt{
				TargetList: []ast.Node{&ast.ResTarget{Val: num(1)}},
				FromClause: []ast.Node{&ast.JoinExpr{
					Jointype: ast.JoinInner,
					Larg: &ast.JoinExpr{
						Jointype: ast.JoinInner,
						Larg:     &ast.RangeVar{Relname: "a", Inh: true},
						Rarg:     &ast.RangeVar{Relname: "b", Inh: true},
					},
					Rarg: &ast.JoinExpr{
						Jointype: ast.JoinFull,
						Larg:     &ast.RangeVar{Relname: "c", Inh: true},
						Rarg:     &ast.RangeVar{Relname: "d", Inh: true},
						Quals:    &ast.AConst{Val: &ast.Boolean{Boolval: true}},
					},
					Quals: &ast.AConst{Val: &ast.Boolean{Boolval: true}},
				}},
			},
		},
		{
			"SELECT",
			&ast.SelectStmt{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			require.NoError(t, err)
			require.Len(t, r.Stmts, 1)
			if diff := cmp.Diff(tt.want, r.Stmts[0].Stmt, ignoreLocations); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseFragments(t *testing.T) {
	tn, err := ParseTypeName("SETOF double precision[3]")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(&ast.TypeName{
		Names:       ast.MakeName("pg_catalog", "float8"),
		Setof:       true,
		ArrayBounds: []ast.Node{&ast.Integer{Ival: 3}},
	}, tn, ignoreLocations))

	opts, err := ParseRelOptions("(fillfactor = 70, toast.enabled = off, label = 'x y', flag)")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(&ast.List{Items: []ast.Node{
		ast.MakeDefElem("fillfactor", &ast.Integer{Ival: 70}, 0),
		&ast.DefElem{Defnamespace: "toast", Defname: "enabled", Arg: ast.MakeString("off")},
		ast.MakeDefElem("label", ast.MakeString("x y"), 0),
		ast.MakeDefElem("flag", nil, 0),
	}}, opts, ignoreLocations))

	seq, err := ParseSeqOptions("(AS bigint MINVALUE -10 NO MAXVALUE RESTART WITH 3 SEQUENCE NAME s.q)")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(&ast.List{Items: []ast.Node{
		ast.MakeDefElem("as", ast.MakeTypeName("pg_catalog", "int8"), 0),
		ast.MakeDefElem("minvalue", &ast.Integer{Ival: -10}, 0),
		ast.MakeDefElem("maxvalue", nil, 0),
		ast.MakeDefElem("restart", &ast.Integer{Ival: 3}, 0),
		ast.MakeDefElem("sequence_name", &ast.List{Items: ast.MakeName("s", "q")}, 0),
	}}, seq, ignoreLocations))

	empty, err := ParseSeqOptions("()")
	require.NoError(t, err)
	require.Empty(t, empty.Items)

	oper, err := ParseAnyOperator("pg_catalog.<=")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(&ast.List{Items: ast.MakeName("pg_catalog", "<=")}, oper))

	elem, err := ParseIndexElem(`a COLLATE "C" DESC`)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(&ast.IndexElem{
		Name:          "a",
		Collation:     ast.MakeName("C"),
		Ordering:      ast.SortByDirDesc,
		NullsOrdering: ast.SortByNullsDefault,
	}, elem))
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		in     string
		cursor int
		detail string
	}{
		{"SELECT FROM WHERE", 13, `syntax error at or near "WHERE"`},
		{"SELECT 1 +", 11, "syntax error at end of input"},
		{"SELECT 'abc", 8, "unterminated quoted string"},
		{"SELECT a = b = c", 14, `syntax error at or near "="`},
		{"DROP TABLE t", 1, `syntax error at or near "DROP"`},
		{"SELECT 1 2", 10, `syntax error at or near "2"`},
		{"SELECT select", 8, `syntax error at or near "select"`},
		{"SELECT \"\"", 8, "zero-length delimited identifier"},
		{"SELECT 1abc", 8, `trailing junk after numeric literal at or near "1a"`},
		{"UPDATE t SET a = 1 WHERE", 25, "syntax error at end of input"},
		{"SELECT /* open", 8, "unterminated /* comment"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			var e *errors.Error
			require.True(t, stderrors.As(err, &e))
			require.Equal(t, errors.PhaseParse, e.Phase)
			require.Equal(t, errors.KindSyntax, e.Kind)
			require.Equal(t, tt.cursor, e.Cursor)
			require.Equal(t, tt.detail, e.Detail)
		})
	}
}

func TestExprMustConsumeInput(t *testing.T) {
	_, err := ParseExpr("a; b")
	require.ErrorContains(t, err, `at or near ";"`)
}
