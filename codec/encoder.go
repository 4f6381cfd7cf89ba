package codec

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/wippyai/deparse/ast"
)

// EncodeParseResult encodes a statement sequence.
func EncodeParseResult(r *ast.ParseResult) []byte {
	if r == nil {
		return nil
	}
	var b []byte
	b = appendInt32(b, 1, r.Version)
	for _, s := range r.Stmts {
		b = appendMessage(b, 2, rawStmt(s))
	}
	return b
}

// EncodeNode encodes a single Node message.
func EncodeNode(n ast.Node) []byte {
	return node(n)
}

// EncodeTypeName encodes a bare TypeName message.
func EncodeTypeName(t *ast.TypeName) []byte {
	return typeName(t)
}

// EncodeList encodes a bare List message.
func EncodeList(l *ast.List) []byte {
	if l == nil {
		return nil
	}
	return appendNodes(nil, 1, l.Items)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendMessage writes an embedded message. Empty messages are still
// written so that presence survives.
func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendNode(b []byte, num protowire.Number, n ast.Node) []byte {
	if n == nil {
		return b
	}
	return appendMessage(b, num, node(n))
}

// appendNodes writes a repeated Node field. A nil element is written as an
// empty Node message.
func appendNodes(b []byte, num protowire.Number, nodes []ast.Node) []byte {
	for _, n := range nodes {
		b = appendMessage(b, num, node(n))
	}
	return b
}

func rawStmt(s *ast.RawStmt) []byte {
	if s == nil {
		return nil
	}
	var b []byte
	b = appendNode(b, 1, s.Stmt)
	b = appendInt32(b, 2, s.StmtLocation)
	return appendInt32(b, 3, s.StmtLen)
}

func node(n ast.Node) []byte {
	var num protowire.Number
	var body []byte
	switch v := n.(type) {
	case nil:
		return nil
	case *ast.SelectStmt:
		num, body = nodeSelectStmt, selectStmt(v)
	case *ast.InsertStmt:
		num, body = nodeInsertStmt, insertStmt(v)
	case *ast.UpdateStmt:
		num, body = nodeUpdateStmt, updateStmt(v)
	case *ast.DeleteStmt:
		num, body = nodeDeleteStmt, deleteStmt(v)
	case *ast.CreateSeqStmt:
		num, body = nodeCreateSeqStmt, createSeqStmt(v)
	case *ast.IndexStmt:
		num, body = nodeIndexStmt, indexStmt(v)
	case *ast.ResTarget:
		num, body = nodeResTarget, resTarget(v)
	case *ast.RangeVar:
		num, body = nodeRangeVar, rangeVar(v)
	case *ast.JoinExpr:
		num, body = nodeJoinExpr, joinExpr(v)
	case *ast.Alias:
		num, body = nodeAlias, alias(v)
	case *ast.ColumnRef:
		num, body = nodeColumnRef, columnRef(v)
	case *ast.AConst:
		num, body = nodeAConst, aConst(v)
	case *ast.AExpr:
		num, body = nodeAExpr, aExpr(v)
	case *ast.BoolExpr:
		num, body = nodeBoolExpr, boolExpr(v)
	case *ast.FuncCall:
		num, body = nodeFuncCall, funcCall(v)
	case *ast.TypeCast:
		num, body = nodeTypeCast, typeCast(v)
	case *ast.NullTest:
		num, body = nodeNullTest, nullTest(v)
	case *ast.ParamRef:
		num, body = nodeParamRef, paramRef(v)
	case *ast.AStar:
		num = nodeAStar
	case *ast.TypeName:
		num, body = nodeTypeName, typeName(v)
	case *ast.SortBy:
		num, body = nodeSortBy, sortBy(v)
	case *ast.DefElem:
		num, body = nodeDefElem, defElem(v)
	case *ast.IndexElem:
		num, body = nodeIndexElem, indexElem(v)
	case *ast.List:
		num, body = nodeList, EncodeList(v)
	case *ast.String:
		num, body = nodeString, appendString(nil, 1, v.Sval)
	case *ast.Integer:
		num, body = nodeInteger, appendInt32(nil, 1, v.Ival)
	case *ast.Float:
		num, body = nodeFloat, appendString(nil, 1, v.Fval)
	case *ast.Boolean:
		num, body = nodeBoolean, appendBool(nil, 1, v.Boolval)
	default:
		// RawStmt and unknown nodes have no Node variant.
		return nil
	}
	return appendMessage(nil, num, body)
}

func selectStmt(s *ast.SelectStmt) []byte {
	var b []byte
	b = appendBool(b, 1, s.Distinct)
	b = appendNodes(b, 2, s.TargetList)
	b = appendNodes(b, 3, s.FromClause)
	b = appendNode(b, 4, s.WhereClause)
	b = appendNodes(b, 5, s.GroupClause)
	b = appendNode(b, 6, s.HavingClause)
	b = appendNodes(b, 7, s.SortClause)
	b = appendNode(b, 8, s.LimitCount)
	b = appendNode(b, 9, s.LimitOffset)
	return appendNodes(b, 10, s.ValuesLists)
}

func insertStmt(s *ast.InsertStmt) []byte {
	var b []byte
	if s.Relation != nil {
		b = appendMessage(b, 1, rangeVar(s.Relation))
	}
	b = appendNodes(b, 2, s.Cols)
	b = appendNode(b, 3, s.SelectStmt)
	return appendNodes(b, 4, s.ReturningList)
}

func updateStmt(s *ast.UpdateStmt) []byte {
	var b []byte
	if s.Relation != nil {
		b = appendMessage(b, 1, rangeVar(s.Relation))
	}
	b = appendNodes(b, 2, s.TargetList)
	b = appendNode(b, 3, s.WhereClause)
	b = appendNodes(b, 4, s.FromClause)
	return appendNodes(b, 5, s.ReturningList)
}

func deleteStmt(s *ast.DeleteStmt) []byte {
	var b []byte
	if s.Relation != nil {
		b = appendMessage(b, 1, rangeVar(s.Relation))
	}
	b = appendNode(b, 2, s.WhereClause)
	return appendNodes(b, 3, s.ReturningList)
}

func createSeqStmt(s *ast.CreateSeqStmt) []byte {
	var b []byte
	if s.Sequence != nil {
		b = appendMessage(b, 1, rangeVar(s.Sequence))
	}
	b = appendNodes(b, 2, s.Options)
	return appendBool(b, 3, s.IfNotExists)
}

func indexStmt(s *ast.IndexStmt) []byte {
	var b []byte
	b = appendString(b, 1, s.Idxname)
	if s.Relation != nil {
		b = appendMessage(b, 2, rangeVar(s.Relation))
	}
	b = appendString(b, 3, s.AccessMethod)
	b = appendNodes(b, 4, s.IndexParams)
	b = appendNodes(b, 5, s.Options)
	b = appendNode(b, 6, s.WhereClause)
	b = appendBool(b, 7, s.Unique)
	b = appendBool(b, 8, s.Concurrent)
	return appendBool(b, 9, s.IfNotExists)
}

func resTarget(r *ast.ResTarget) []byte {
	var b []byte
	b = appendString(b, 1, r.Name)
	b = appendNode(b, 2, r.Val)
	return appendInt32(b, 3, r.Location)
}

func alias(a *ast.Alias) []byte {
	var b []byte
	b = appendString(b, 1, a.Aliasname)
	return appendNodes(b, 2, a.Colnames)
}

func rangeVar(r *ast.RangeVar) []byte {
	var b []byte
	b = appendString(b, 1, r.Schemaname)
	b = appendString(b, 2, r.Relname)
	b = appendBool(b, 3, r.Inh)
	if r.Alias != nil {
		b = appendMessage(b, 4, alias(r.Alias))
	}
	return appendInt32(b, 5, r.Location)
}

func joinExpr(j *ast.JoinExpr) []byte {
	var b []byte
	b = appendInt32(b, 1, int32(j.Jointype))
	b = appendNode(b, 2, j.Larg)
	b = appendNode(b, 3, j.Rarg)
	return appendNode(b, 4, j.Quals)
}

func columnRef(c *ast.ColumnRef) []byte {
	b := appendNodes(nil, 1, c.Fields)
	return appendInt32(b, 2, c.Location)
}

func aConst(c *ast.AConst) []byte {
	var b []byte
	switch v := c.Val.(type) {
	case *ast.Integer:
		b = appendMessage(b, constIval, appendInt32(nil, 1, v.Ival))
	case *ast.Float:
		b = appendMessage(b, constFval, appendString(nil, 1, v.Fval))
	case *ast.Boolean:
		b = appendMessage(b, constBoolval, appendBool(nil, 1, v.Boolval))
	case *ast.String:
		b = appendMessage(b, constSval, appendString(nil, 1, v.Sval))
	}
	b = appendBool(b, constIsnull, c.Isnull)
	return appendInt32(b, constLoc, c.Location)
}

func aExpr(e *ast.AExpr) []byte {
	var b []byte
	b = appendInt32(b, 1, int32(e.Kind))
	b = appendNodes(b, 2, e.Name)
	b = appendNode(b, 3, e.Lexpr)
	b = appendNode(b, 4, e.Rexpr)
	return appendInt32(b, 5, e.Location)
}

func boolExpr(e *ast.BoolExpr) []byte {
	var b []byte
	b = appendInt32(b, 1, int32(e.Boolop))
	b = appendNodes(b, 2, e.Args)
	return appendInt32(b, 3, e.Location)
}

func funcCall(f *ast.FuncCall) []byte {
	var b []byte
	b = appendNodes(b, 1, f.Funcname)
	b = appendNodes(b, 2, f.Args)
	b = appendBool(b, 3, f.AggStar)
	b = appendBool(b, 4, f.AggDistinct)
	return appendInt32(b, 5, f.Location)
}

func typeCast(c *ast.TypeCast) []byte {
	var b []byte
	b = appendNode(b, 1, c.Arg)
	if c.TypeName != nil {
		b = appendMessage(b, 2, typeName(c.TypeName))
	}
	return appendInt32(b, 3, c.Location)
}

func nullTest(n *ast.NullTest) []byte {
	var b []byte
	b = appendNode(b, 1, n.Arg)
	b = appendInt32(b, 2, int32(n.Nulltesttype))
	return appendInt32(b, 3, n.Location)
}

func paramRef(p *ast.ParamRef) []byte {
	b := appendInt32(nil, 1, p.Number)
	return appendInt32(b, 2, p.Location)
}

func typeName(t *ast.TypeName) []byte {
	if t == nil {
		return nil
	}
	var b []byte
	b = appendNodes(b, 1, t.Names)
	b = appendBool(b, 2, t.Setof)
	b = appendNodes(b, 3, t.Typmods)
	b = appendNodes(b, 4, t.ArrayBounds)
	return appendInt32(b, 5, t.Location)
}

func sortBy(s *ast.SortBy) []byte {
	var b []byte
	b = appendNode(b, 1, s.Node)
	b = appendInt32(b, 2, int32(s.SortbyDir))
	b = appendInt32(b, 3, int32(s.SortbyNulls))
	return appendInt32(b, 4, s.Location)
}

func defElem(d *ast.DefElem) []byte {
	var b []byte
	b = appendString(b, 1, d.Defnamespace)
	b = appendString(b, 2, d.Defname)
	b = appendNode(b, 3, d.Arg)
	return appendInt32(b, 4, d.Location)
}

func indexElem(e *ast.IndexElem) []byte {
	var b []byte
	b = appendString(b, 1, e.Name)
	b = appendNode(b, 2, e.Expr)
	b = appendString(b, 3, e.Indexcolname)
	b = appendNodes(b, 4, e.Collation)
	b = appendNodes(b, 5, e.Opclass)
	b = appendInt32(b, 6, int32(e.Ordering))
	return appendInt32(b, 7, int32(e.NullsOrdering))
}
