package codec

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/wippyai/deparse/arena"
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
)

// DefaultMaxDepth bounds message nesting, matching the stack depth the
// renderer can walk comfortably.
const DefaultMaxDepth = 1000

// Config controls decoding limits.
type Config struct {
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns the default decoder configuration.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// Decoder decodes wire payloads into arena-backed syntax trees. A Decoder
// holds no per-call state and is safe for concurrent use.
type Decoder struct {
	maxDepth int
}

// NewDecoder creates a decoder. A non-positive MaxDepth takes the default.
func NewDecoder(cfg Config) *Decoder {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Decoder{maxDepth: cfg.MaxDepth}
}

// DecodeParseResult decodes a ParseResult message.
func (d *Decoder) DecodeParseResult(a *arena.Arena, payload []byte) (*ast.ParseResult, error) {
	s := d.newState(a)
	r := &ast.ParseResult{}
	err := s.each(payload, 0, func(f field) (err error) {
		switch f.num {
		case 1:
			r.Version, err = s.int32(f)
		case 2:
			var st *ast.RawStmt
			if err = decodeInto(s, f, indexed("stmts", len(r.Stmts)), s.rawStmt, &st); err == nil {
				r.Stmts = append(r.Stmts, st)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeNode decodes a Node message.
func (d *Decoder) DecodeNode(a *arena.Arena, payload []byte) (ast.Node, error) {
	return d.newState(a).node(payload, 0)
}

// DecodeTypeName decodes a bare TypeName message.
func (d *Decoder) DecodeTypeName(a *arena.Arena, payload []byte) (*ast.TypeName, error) {
	return d.newState(a).typeName(payload, 0)
}

// DecodeOptionList decodes a List message whose items must all be DefElem.
func (d *Decoder) DecodeOptionList(a *arena.Arena, payload []byte) (*ast.List, error) {
	return d.newState(a).typedList(payload, 0, "DefElem")
}

// DecodeOperatorName decodes a List message whose items must all be String.
func (d *Decoder) DecodeOperatorName(a *arena.Arena, payload []byte) (*ast.List, error) {
	return d.newState(a).typedList(payload, 0, "String")
}

// DecodeIndexElem decodes a Node message that must hold an IndexElem.
func (d *Decoder) DecodeIndexElem(a *arena.Arena, payload []byte) (*ast.IndexElem, error) {
	s := d.newState(a)
	n, err := s.node(payload, 0)
	if err != nil {
		return nil, err
	}
	elem, ok := n.(*ast.IndexElem)
	if !ok {
		return nil, s.at(0, errors.InvalidVariant(errors.PhaseDecode, s.where(), "expected IndexElem, got "+n.Tag()))
	}
	return elem, nil
}

type state struct {
	a        *arena.Arena
	path     []string
	maxDepth int
	depth    int
}

func (d *Decoder) newState(a *arena.Arena) *state {
	return &state{a: a, maxDepth: d.maxDepth}
}

// field is one decoded tag and its raw value. Offsets are absolute within
// the payload.
type field struct {
	data    []byte
	val     uint64
	off     int
	dataOff int
	num     protowire.Number
	typ     protowire.Type
}

func indexed(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}

// where returns a copy of the current field path.
func (s *state) where() []string {
	return slices.Clone(s.path)
}

// at anchors e at payload offset off and at the caller.
func (s *state) at(off int, e *errors.Error) *errors.Error {
	e.Cursor = off + 1
	e.File, e.Func, e.Line = errors.Locate(1)
	return e
}

func (s *state) malformed(off int, err error) *errors.Error {
	e := errors.InvalidData(errors.PhaseDecode, s.where(), "malformed protobuf payload")
	e.Cause = err
	return s.at(off, e)
}

func (s *state) wrongType(f field) *errors.Error {
	return s.at(f.off, errors.InvalidData(errors.PhaseDecode, s.where(),
		fmt.Sprintf("field %d: unexpected wire type %d", f.num, f.typ)))
}

// each walks the fields of one message. Fields the callback does not
// recognise are skipped.
func (s *state) each(b []byte, base int, fn func(field) error) error {
	for pos := 0; pos < len(b); {
		num, typ, n := protowire.ConsumeTag(b[pos:])
		if n < 0 {
			return s.malformed(base+pos, protowire.ParseError(n))
		}
		f := field{num: num, typ: typ, off: base + pos}
		pos += n

		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(b[pos:])
			if m < 0 {
				return s.malformed(base+pos, protowire.ParseError(m))
			}
			f.val = v
			pos += m
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(b[pos:])
			if m < 0 {
				return s.malformed(base+pos, protowire.ParseError(m))
			}
			f.data = v
			f.dataOff = base + pos + m - len(v)
			pos += m
		default:
			m := protowire.ConsumeFieldValue(num, typ, b[pos:])
			if m < 0 {
				return s.malformed(base+pos, protowire.ParseError(m))
			}
			pos += m
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) int32(f field) (int32, error) {
	if f.typ != protowire.VarintType {
		return 0, s.wrongType(f)
	}
	v := int64(f.val)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, s.at(f.off, errors.Overflow(errors.PhaseDecode, s.where(), v, "int32"))
	}
	return int32(v), nil
}

func (s *state) bool(f field) (bool, error) {
	if f.typ != protowire.VarintType {
		return false, s.wrongType(f)
	}
	return f.val != 0, nil
}

func (s *state) enum(f field, maxValue int32, name string) (int32, error) {
	v, err := s.int32(f)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > maxValue {
		return 0, s.at(f.off, errors.InvalidEnum(errors.PhaseDecode, s.where(), v, name))
	}
	return v, nil
}

func (s *state) string(f field) (string, error) {
	if f.typ != protowire.BytesType {
		return "", s.wrongType(f)
	}
	if !utf8.Valid(f.data) {
		return "", s.at(f.off, errors.InvalidUTF8(errors.PhaseDecode, s.where(), f.data))
	}
	return s.a.String(f.data), nil
}

// nested descends into an embedded message.
func (s *state) nested(f field, name string, fn func(b []byte, base int) error) error {
	if f.typ != protowire.BytesType {
		return s.wrongType(f)
	}
	if s.depth >= s.maxDepth {
		return s.at(f.off, errors.NestingDepth(errors.PhaseDecode, s.where(), s.maxDepth))
	}
	s.depth++
	s.path = append(s.path, name)
	err := fn(f.data, f.dataOff)
	s.path = s.path[:len(s.path)-1]
	s.depth--
	return err
}

func decodeInto[T any](s *state, f field, name string, dec func([]byte, int) (T, error), dst *T) error {
	return s.nested(f, name, func(b []byte, base int) error {
		v, err := dec(b, base)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}

func asNode[T ast.Node](dec func([]byte, int) (T, error)) func([]byte, int) (ast.Node, error) {
	return func(b []byte, base int) (ast.Node, error) {
		v, err := dec(b, base)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func (s *state) child(f field, name string, dst *ast.Node) error {
	return decodeInto(s, f, name, s.node, dst)
}

func (s *state) children(f field, name string, dst *[]ast.Node) error {
	var n ast.Node
	if err := decodeInto(s, f, indexed(name, len(*dst)), s.node, &n); err != nil {
		return err
	}
	*dst = append(*dst, n)
	return nil
}

func (s *state) node(b []byte, base int) (ast.Node, error) {
	var out ast.Node
	err := s.each(b, base, func(f field) error {
		var name string
		var dec func([]byte, int) (ast.Node, error)
		switch f.num {
		case nodeSelectStmt:
			name, dec = "select_stmt", asNode(s.selectStmt)
		case nodeInsertStmt:
			name, dec = "insert_stmt", asNode(s.insertStmt)
		case nodeUpdateStmt:
			name, dec = "update_stmt", asNode(s.updateStmt)
		case nodeDeleteStmt:
			name, dec = "delete_stmt", asNode(s.deleteStmt)
		case nodeCreateSeqStmt:
			name, dec = "create_seq_stmt", asNode(s.createSeqStmt)
		case nodeIndexStmt:
			name, dec = "index_stmt", asNode(s.indexStmt)
		case nodeResTarget:
			name, dec = "res_target", asNode(s.resTarget)
		case nodeRangeVar:
			name, dec = "range_var", asNode(s.rangeVar)
		case nodeJoinExpr:
			name, dec = "join_expr", asNode(s.joinExpr)
		case nodeAlias:
			name, dec = "alias", asNode(s.alias)
		case nodeColumnRef:
			name, dec = "column_ref", asNode(s.columnRef)
		case nodeAConst:
			name, dec = "a_const", asNode(s.aConst)
		case nodeAExpr:
			name, dec = "a_expr", asNode(s.aExpr)
		case nodeBoolExpr:
			name, dec = "bool_expr", asNode(s.boolExpr)
		case nodeFuncCall:
			name, dec = "func_call", asNode(s.funcCall)
		case nodeTypeCast:
			name, dec = "type_cast", asNode(s.typeCast)
		case nodeNullTest:
			name, dec = "null_test", asNode(s.nullTest)
		case nodeParamRef:
			name, dec = "param_ref", asNode(s.paramRef)
		case nodeAStar:
			name, dec = "a_star", func([]byte, int) (ast.Node, error) { return &ast.AStar{}, nil }
		case nodeTypeName:
			name, dec = "type_name", asNode(s.typeName)
		case nodeSortBy:
			name, dec = "sort_by", asNode(s.sortBy)
		case nodeDefElem:
			name, dec = "def_elem", asNode(s.defElem)
		case nodeIndexElem:
			name, dec = "index_elem", asNode(s.indexElem)
		case nodeList:
			name, dec = "list", asNode(s.list)
		case nodeString:
			name, dec = "string", asNode(s.str)
		case nodeInteger:
			name, dec = "integer", asNode(s.integer)
		case nodeFloat:
			name, dec = "float", asNode(s.float)
		case nodeBoolean:
			name, dec = "boolean", asNode(s.boolean)
		default:
			return s.at(f.off, errors.InvalidVariant(errors.PhaseDecode, s.where(), fmt.Sprintf("unsupported node type (field %d)", f.num)))
		}
		return decodeInto(s, f, name, dec, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, s.at(base, errors.InvalidVariant(errors.PhaseDecode, s.where(), "node has no value"))
	}
	return out, nil
}

func (s *state) typedList(b []byte, base int, want string) (*ast.List, error) {
	l := &ast.List{}
	err := s.each(b, base, func(f field) error {
		if f.num != 1 {
			return nil
		}
		var n ast.Node
		name := indexed("items", len(l.Items))
		if err := decodeInto(s, f, name, s.node, &n); err != nil {
			return err
		}
		if n.Tag() != want {
			return s.at(f.off, errors.InvalidVariant(errors.PhaseDecode, s.where(), fmt.Sprintf("%s: expected %s, got %s", name, want, n.Tag())))
		}
		l.Items = append(l.Items, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *state) rawStmt(b []byte, base int) (*ast.RawStmt, error) {
	n := &ast.RawStmt{}
	err := s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = s.child(f, "stmt", &n.Stmt)
		case 2:
			n.StmtLocation, err = s.int32(f)
		case 3:
			n.StmtLen, err = s.int32(f)
		}
		return err
	})
	if err == nil && n.Stmt == nil {
		err = s.at(base, errors.FieldMissing(errors.PhaseDecode, s.where(), "stmt"))
	}
	return n, err
}

func (s *state) selectStmt(b []byte, base int) (*ast.SelectStmt, error) {
	n := &ast.SelectStmt{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Distinct, err = s.bool(f)
		case 2:
			err = s.children(f, "target_list", &n.TargetList)
		case 3:
			err = s.children(f, "from_clause", &n.FromClause)
		case 4:
			err = s.child(f, "where_clause", &n.WhereClause)
		case 5:
			err = s.children(f, "group_clause", &n.GroupClause)
		case 6:
			err = s.child(f, "having_clause", &n.HavingClause)
		case 7:
			err = s.children(f, "sort_clause", &n.SortClause)
		case 8:
			err = s.child(f, "limit_count", &n.LimitCount)
		case 9:
			err = s.child(f, "limit_offset", &n.LimitOffset)
		case 10:
			err = s.children(f, "values_lists", &n.ValuesLists)
		}
		return err
	})
}

func (s *state) insertStmt(b []byte, base int) (*ast.InsertStmt, error) {
	n := &ast.InsertStmt{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = decodeInto(s, f, "relation", s.rangeVar, &n.Relation)
		case 2:
			err = s.children(f, "cols", &n.Cols)
		case 3:
			err = s.child(f, "select_stmt", &n.SelectStmt)
		case 4:
			err = s.children(f, "returning_list", &n.ReturningList)
		}
		return err
	})
}

func (s *state) updateStmt(b []byte, base int) (*ast.UpdateStmt, error) {
	n := &ast.UpdateStmt{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = decodeInto(s, f, "relation", s.rangeVar, &n.Relation)
		case 2:
			err = s.children(f, "target_list", &n.TargetList)
		case 3:
			err = s.child(f, "where_clause", &n.WhereClause)
		case 4:
			err = s.children(f, "from_clause", &n.FromClause)
		case 5:
			err = s.children(f, "returning_list", &n.ReturningList)
		}
		return err
	})
}

func (s *state) deleteStmt(b []byte, base int) (*ast.DeleteStmt, error) {
	n := &ast.DeleteStmt{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = decodeInto(s, f, "relation", s.rangeVar, &n.Relation)
		case 2:
			err = s.child(f, "where_clause", &n.WhereClause)
		case 3:
			err = s.children(f, "returning_list", &n.ReturningList)
		}
		return err
	})
}

func (s *state) createSeqStmt(b []byte, base int) (*ast.CreateSeqStmt, error) {
	n := &ast.CreateSeqStmt{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = decodeInto(s, f, "sequence", s.rangeVar, &n.Sequence)
		case 2:
			err = s.children(f, "options", &n.Options)
		case 3:
			n.IfNotExists, err = s.bool(f)
		}
		return err
	})
}

func (s *state) indexStmt(b []byte, base int) (*ast.IndexStmt, error) {
	n := &ast.IndexStmt{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Idxname, err = s.string(f)
		case 2:
			err = decodeInto(s, f, "relation", s.rangeVar, &n.Relation)
		case 3:
			n.AccessMethod, err = s.string(f)
		case 4:
			err = s.children(f, "index_params", &n.IndexParams)
		case 5:
			err = s.children(f, "options", &n.Options)
		case 6:
			err = s.child(f, "where_clause", &n.WhereClause)
		case 7:
			n.Unique, err = s.bool(f)
		case 8:
			n.Concurrent, err = s.bool(f)
		case 9:
			n.IfNotExists, err = s.bool(f)
		}
		return err
	})
}

func (s *state) resTarget(b []byte, base int) (*ast.ResTarget, error) {
	n := &ast.ResTarget{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Name, err = s.string(f)
		case 2:
			err = s.child(f, "val", &n.Val)
		case 3:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) alias(b []byte, base int) (*ast.Alias, error) {
	n := &ast.Alias{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Aliasname, err = s.string(f)
		case 2:
			err = s.children(f, "colnames", &n.Colnames)
		}
		return err
	})
}

func (s *state) rangeVar(b []byte, base int) (*ast.RangeVar, error) {
	n := &ast.RangeVar{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Schemaname, err = s.string(f)
		case 2:
			n.Relname, err = s.string(f)
		case 3:
			n.Inh, err = s.bool(f)
		case 4:
			err = decodeInto(s, f, "alias", s.alias, &n.Alias)
		case 5:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) joinExpr(b []byte, base int) (*ast.JoinExpr, error) {
	n := &ast.JoinExpr{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			var v int32
			v, err = s.enum(f, int32(ast.MaxJoinType), "JoinType")
			n.Jointype = ast.JoinType(v)
		case 2:
			err = s.child(f, "larg", &n.Larg)
		case 3:
			err = s.child(f, "rarg", &n.Rarg)
		case 4:
			err = s.child(f, "quals", &n.Quals)
		}
		return err
	})
}

func (s *state) columnRef(b []byte, base int) (*ast.ColumnRef, error) {
	n := &ast.ColumnRef{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = s.children(f, "fields", &n.Fields)
		case 2:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) aConst(b []byte, base int) (*ast.AConst, error) {
	n := &ast.AConst{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case constIval:
			err = decodeInto(s, f, "ival", asNode(s.integer), &n.Val)
		case constFval:
			err = decodeInto(s, f, "fval", asNode(s.float), &n.Val)
		case constBoolval:
			err = decodeInto(s, f, "boolval", asNode(s.boolean), &n.Val)
		case constSval:
			err = decodeInto(s, f, "sval", asNode(s.str), &n.Val)
		case constIsnull:
			n.Isnull, err = s.bool(f)
		case constLoc:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) aExpr(b []byte, base int) (*ast.AExpr, error) {
	n := &ast.AExpr{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			var v int32
			v, err = s.enum(f, int32(ast.MaxAExprKind), "A_Expr_Kind")
			n.Kind = ast.AExprKind(v)
		case 2:
			err = s.children(f, "name", &n.Name)
		case 3:
			err = s.child(f, "lexpr", &n.Lexpr)
		case 4:
			err = s.child(f, "rexpr", &n.Rexpr)
		case 5:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) boolExpr(b []byte, base int) (*ast.BoolExpr, error) {
	n := &ast.BoolExpr{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			var v int32
			v, err = s.enum(f, int32(ast.MaxBoolExprType), "BoolExprType")
			n.Boolop = ast.BoolExprType(v)
		case 2:
			err = s.children(f, "args", &n.Args)
		case 3:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) funcCall(b []byte, base int) (*ast.FuncCall, error) {
	n := &ast.FuncCall{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = s.children(f, "funcname", &n.Funcname)
		case 2:
			err = s.children(f, "args", &n.Args)
		case 3:
			n.AggStar, err = s.bool(f)
		case 4:
			n.AggDistinct, err = s.bool(f)
		case 5:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) typeCast(b []byte, base int) (*ast.TypeCast, error) {
	n := &ast.TypeCast{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = s.child(f, "arg", &n.Arg)
		case 2:
			err = decodeInto(s, f, "type_name", s.typeName, &n.TypeName)
		case 3:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) nullTest(b []byte, base int) (*ast.NullTest, error) {
	n := &ast.NullTest{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = s.child(f, "arg", &n.Arg)
		case 2:
			var v int32
			v, err = s.enum(f, int32(ast.MaxNullTestType), "NullTestType")
			n.Nulltesttype = ast.NullTestType(v)
		case 3:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) paramRef(b []byte, base int) (*ast.ParamRef, error) {
	n := &ast.ParamRef{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Number, err = s.int32(f)
		case 2:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) typeName(b []byte, base int) (*ast.TypeName, error) {
	n := &ast.TypeName{}
	err := s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			err = s.children(f, "names", &n.Names)
		case 2:
			n.Setof, err = s.bool(f)
		case 3:
			err = s.children(f, "typmods", &n.Typmods)
		case 4:
			err = s.children(f, "array_bounds", &n.ArrayBounds)
		case 5:
			n.Location, err = s.int32(f)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *state) sortBy(b []byte, base int) (*ast.SortBy, error) {
	n := &ast.SortBy{}
	return n, s.each(b, base, func(f field) (err error) {
		var v int32
		switch f.num {
		case 1:
			err = s.child(f, "node", &n.Node)
		case 2:
			v, err = s.enum(f, int32(ast.MaxSortByDir), "SortByDir")
			n.SortbyDir = ast.SortByDir(v)
		case 3:
			v, err = s.enum(f, int32(ast.MaxSortByNulls), "SortByNulls")
			n.SortbyNulls = ast.SortByNulls(v)
		case 4:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) defElem(b []byte, base int) (*ast.DefElem, error) {
	n := &ast.DefElem{}
	return n, s.each(b, base, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Defnamespace, err = s.string(f)
		case 2:
			n.Defname, err = s.string(f)
		case 3:
			err = s.child(f, "arg", &n.Arg)
		case 4:
			n.Location, err = s.int32(f)
		}
		return err
	})
}

func (s *state) indexElem(b []byte, base int) (*ast.IndexElem, error) {
	n := &ast.IndexElem{}
	return n, s.each(b, base, func(f field) (err error) {
		var v int32
		switch f.num {
		case 1:
			n.Name, err = s.string(f)
		case 2:
			err = s.child(f, "expr", &n.Expr)
		case 3:
			n.Indexcolname, err = s.string(f)
		case 4:
			err = s.children(f, "collation", &n.Collation)
		case 5:
			err = s.children(f, "opclass", &n.Opclass)
		case 6:
			v, err = s.enum(f, int32(ast.MaxSortByDir), "SortByDir")
			n.Ordering = ast.SortByDir(v)
		case 7:
			v, err = s.enum(f, int32(ast.MaxSortByNulls), "SortByNulls")
			n.NullsOrdering = ast.SortByNulls(v)
		}
		return err
	})
}

func (s *state) list(b []byte, base int) (*ast.List, error) {
	n := &ast.List{}
	return n, s.each(b, base, func(f field) error {
		if f.num == 1 {
			return s.children(f, "items", &n.Items)
		}
		return nil
	})
}

func (s *state) str(b []byte, base int) (*ast.String, error) {
	n := &ast.String{}
	return n, s.each(b, base, func(f field) (err error) {
		if f.num == 1 {
			n.Sval, err = s.string(f)
		}
		return err
	})
}

func (s *state) integer(b []byte, base int) (*ast.Integer, error) {
	n := &ast.Integer{}
	return n, s.each(b, base, func(f field) (err error) {
		if f.num == 1 {
			n.Ival, err = s.int32(f)
		}
		return err
	})
}

func (s *state) float(b []byte, base int) (*ast.Float, error) {
	n := &ast.Float{}
	return n, s.each(b, base, func(f field) (err error) {
		if f.num == 1 {
			n.Fval, err = s.string(f)
		}
		return err
	})
}

func (s *state) boolean(b []byte, base int) (*ast.Boolean, error) {
	n := &ast.Boolean{}
	return n, s.each(b, base, func(f field) (err error) {
		if f.num == 1 {
			n.Boolval, err = s.bool(f)
		}
		return err
	})
}
