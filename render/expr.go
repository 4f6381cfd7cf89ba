package render

import (
	"strconv"

	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
)

func (w *walker) expr(n ast.Node) {
	switch e := n.(type) {
	case nil:
		w.fail(nil, errors.KindFieldMissing, "expression is missing")
	case *ast.ColumnRef:
		w.columnRef(e)
	case *ast.AConst:
		w.aConst(e)
	case *ast.ParamRef:
		if e.Number <= 0 {
			w.fail(e, errors.KindInvalidData, "invalid parameter number %d", e.Number)
		}
		w.byte('$')
		w.str(strconv.Itoa(int(e.Number)))
	case *ast.AExpr:
		w.aExpr(e)
	case *ast.BoolExpr:
		w.boolExpr(e)
	case *ast.FuncCall:
		w.funcCall(e)
	case *ast.TypeCast:
		w.typeCast(e)
	case *ast.NullTest:
		w.nullTest(e)
	default:
		w.fail(n, errors.KindUnsupported, "unsupported expression node: %s", n.Tag())
	}
}

func (w *walker) exprList(list []ast.Node) {
	for i, n := range list {
		if i > 0 {
			w.str(", ")
		}
		w.expr(n)
	}
}

// operand writes an operator argument, parenthesizing compound expressions
// and negative numbers. Under a prefix operator every numeric constant is
// parenthesized so the sign is never folded back into the literal.
func (w *walker) operand(n ast.Node, prefix bool) {
	if needsParens(n, prefix) {
		w.byte('(')
		w.expr(n)
		w.byte(')')
		return
	}
	w.expr(n)
}

func needsParens(n ast.Node, prefix bool) bool {
	switch v := n.(type) {
	case *ast.AExpr, *ast.BoolExpr, *ast.NullTest:
		return true
	case *ast.AConst:
		switch c := v.Val.(type) {
		case *ast.Integer:
			return prefix || c.Ival < 0
		case *ast.Float:
			return prefix || (c.Fval != "" && c.Fval[0] == '-')
		}
	}
	return false
}

func (w *walker) columnRef(c *ast.ColumnRef) {
	if len(c.Fields) == 0 {
		w.fail(c, errors.KindFieldMissing, "column reference has no fields")
	}
	for i, f := range c.Fields {
		if i > 0 {
			w.byte('.')
		}
		switch v := f.(type) {
		case *ast.String:
			w.ident(v.Sval)
		case *ast.AStar:
			if i != len(c.Fields)-1 {
				w.fail(c, errors.KindInvalidData, "* must be the last part of a column reference")
			}
			w.byte('*')
		default:
			w.fail(c, errors.KindInvalidVariant, "column reference part must be String or A_Star, got %s", tagOf(f))
		}
	}
}

func (w *walker) aConst(c *ast.AConst) {
	if c.Isnull {
		w.str("NULL")
		return
	}
	switch v := c.Val.(type) {
	case nil:
		w.fail(c, errors.KindFieldMissing, "constant has no value")
	case *ast.Integer:
		w.str(strconv.Itoa(int(v.Ival)))
	case *ast.Float:
		if v.Fval == "" {
			w.fail(c, errors.KindInvalidData, "empty numeric constant")
		}
		w.str(v.Fval)
	case *ast.Boolean:
		if v.Boolval {
			w.str("true")
		} else {
			w.str("false")
		}
	case *ast.String:
		w.literal(v.Sval)
	default:
		w.fail(c, errors.KindInvalidVariant, "unsupported constant value: %s", v.Tag())
	}
}

// operatorName returns the operator of an A_Expr with its optional schema.
func (w *walker) operatorName(e *ast.AExpr) (schema, op string) {
	parts := make([]string, 0, 2)
	for _, n := range e.Name {
		s, ok := n.(*ast.String)
		if !ok {
			w.fail(e, errors.KindInvalidVariant, "operator name part must be String, got %s", tagOf(n))
		}
		parts = append(parts, s.Sval)
	}
	switch len(parts) {
	case 1:
		op = parts[0]
	case 2:
		schema, op = parts[0], parts[1]
	default:
		w.fail(e, errors.KindInvalidData, "operator name must have one or two parts, got %d", len(parts))
	}
	if !isOperator(op) {
		w.fail(e, errors.KindInvalidData, "invalid operator name %q", op)
	}
	return schema, op
}

func (w *walker) writeOperator(schema, op string) {
	if schema == "" {
		w.str(op)
		return
	}
	w.str("OPERATOR(")
	w.ident(schema)
	w.byte('.')
	w.str(op)
	w.byte(')')
}

func (w *walker) aExpr(e *ast.AExpr) {
	switch e.Kind {
	case ast.AExprOp:
		schema, op := w.operatorName(e)
		if e.Rexpr == nil {
			w.fail(e, errors.KindFieldMissing, "operator %s has no right operand", op)
		}
		if e.Lexpr == nil {
			w.writeOperator(schema, op)
			if schema != "" {
				w.byte(' ')
			}
			w.operand(e.Rexpr, true)
			return
		}
		w.operand(e.Lexpr, false)
		w.byte(' ')
		w.writeOperator(schema, op)
		w.byte(' ')
		w.operand(e.Rexpr, false)
	case ast.AExprDistinct, ast.AExprNotDistinct:
		w.binaryOperands(e)
		w.operand(e.Lexpr, false)
		if e.Kind == ast.AExprDistinct {
			w.str(" IS DISTINCT FROM ")
		} else {
			w.str(" IS NOT DISTINCT FROM ")
		}
		w.operand(e.Rexpr, false)
	case ast.AExprIn:
		w.binaryOperands(e)
		_, op := w.operatorName(e)
		var kw string
		switch op {
		case "=":
			kw = " IN ("
		case "<>":
			kw = " NOT IN ("
		default:
			w.fail(e, errors.KindInvalidData, "unrecognized IN operator %q", op)
		}
		l, ok := e.Rexpr.(*ast.List)
		if !ok {
			w.fail(e, errors.KindInvalidVariant, "IN right operand must be List, got %s", tagOf(e.Rexpr))
		}
		if len(l.Items) == 0 {
			w.fail(e, errors.KindInvalidData, "IN list is empty")
		}
		w.operand(e.Lexpr, false)
		w.str(kw)
		w.exprList(l.Items)
		w.byte(')')
	case ast.AExprLike, ast.AExprILike:
		w.binaryOperands(e)
		_, op := w.operatorName(e)
		var kw string
		switch {
		case e.Kind == ast.AExprLike && op == "~~":
			kw = " LIKE "
		case e.Kind == ast.AExprLike && op == "!~~":
			kw = " NOT LIKE "
		case e.Kind == ast.AExprILike && op == "~~*":
			kw = " ILIKE "
		case e.Kind == ast.AExprILike && op == "!~~*":
			kw = " NOT ILIKE "
		default:
			w.fail(e, errors.KindInvalidData, "unrecognized pattern operator %q", op)
		}
		w.operand(e.Lexpr, false)
		w.str(kw)
		w.operand(e.Rexpr, false)
	case ast.AExprBetween, ast.AExprNotBetween:
		w.binaryOperands(e)
		l, ok := e.Rexpr.(*ast.List)
		if !ok || len(l.Items) != 2 {
			w.fail(e, errors.KindInvalidData, "BETWEEN requires a list of two bounds")
		}
		w.operand(e.Lexpr, false)
		if e.Kind == ast.AExprBetween {
			w.str(" BETWEEN ")
		} else {
			w.str(" NOT BETWEEN ")
		}
		w.operand(l.Items[0], false)
		w.str(" AND ")
		w.operand(l.Items[1], false)
	default:
		w.fail(e, errors.KindInvalidEnum, "unrecognized A_Expr kind: %d", e.Kind)
	}
}

func (w *walker) binaryOperands(e *ast.AExpr) {
	if e.Lexpr == nil || e.Rexpr == nil {
		w.fail(e, errors.KindFieldMissing, "expression requires two operands")
	}
}

func (w *walker) boolExpr(b *ast.BoolExpr) {
	switch b.Boolop {
	case ast.AndExpr, ast.OrExpr:
		if len(b.Args) < 2 {
			w.fail(b, errors.KindInvalidData, "boolean expression requires at least two arguments, got %d", len(b.Args))
		}
		sep := " AND "
		if b.Boolop == ast.OrExpr {
			sep = " OR "
		}
		for i, arg := range b.Args {
			if i > 0 {
				w.str(sep)
			}
			w.boolArg(arg)
		}
	case ast.NotExpr:
		if len(b.Args) != 1 {
			w.fail(b, errors.KindInvalidData, "NOT requires exactly one argument, got %d", len(b.Args))
		}
		w.str("NOT ")
		w.boolArg(b.Args[0])
	default:
		w.fail(b, errors.KindInvalidEnum, "unrecognized boolean operator: %d", b.Boolop)
	}
}

// boolArg writes a boolean operand. Only nested boolean expressions need
// parentheses; every other expression binds tighter than AND, OR and NOT.
func (w *walker) boolArg(n ast.Node) {
	switch n.(type) {
	case *ast.BoolExpr:
		w.byte('(')
		w.expr(n)
		w.byte(')')
	default:
		w.expr(n)
	}
}

func (w *walker) funcCall(f *ast.FuncCall) {
	w.qualifiedName(f.Funcname, "function")
	w.byte('(')
	switch {
	case f.AggStar:
		if len(f.Args) > 0 {
			w.fail(f, errors.KindInvalidData, "function call with * cannot have arguments")
		}
		w.byte('*')
	default:
		if f.AggDistinct {
			if len(f.Args) == 0 {
				w.fail(f, errors.KindInvalidData, "DISTINCT requires at least one argument")
			}
			w.str("DISTINCT ")
		}
		w.exprList(f.Args)
	}
	w.byte(')')
}

func (w *walker) typeCast(t *ast.TypeCast) {
	if t.Arg == nil {
		w.fail(t, errors.KindFieldMissing, "type cast has no argument")
	}
	if t.TypeName == nil {
		w.fail(t, errors.KindFieldMissing, "type cast has no target type")
	}
	switch t.Arg.(type) {
	case *ast.ColumnRef, *ast.ParamRef, *ast.FuncCall, *ast.TypeCast:
		w.expr(t.Arg)
	case *ast.AConst:
		w.operand(t.Arg, false)
	default:
		w.byte('(')
		w.expr(t.Arg)
		w.byte(')')
	}
	w.str("::")
	w.typeName(t.TypeName)
}

func (w *walker) nullTest(t *ast.NullTest) {
	if t.Arg == nil {
		w.fail(t, errors.KindFieldMissing, "null test has no argument")
	}
	w.operand(t.Arg, false)
	switch t.Nulltesttype {
	case ast.IsNull:
		w.str(" IS NULL")
	case ast.IsNotNull:
		w.str(" IS NOT NULL")
	default:
		w.fail(t, errors.KindInvalidEnum, "unrecognized null test type: %d", t.Nulltesttype)
	}
}

func (w *walker) sortList(list []ast.Node) {
	for i, n := range list {
		s, ok := n.(*ast.SortBy)
		if !ok {
			w.fail(n, errors.KindInvalidVariant, "sort clause entry must be SortBy, got %s", tagOf(n))
		}
		if i > 0 {
			w.str(", ")
		}
		w.expr(s.Node)
		w.ordering(s.SortbyDir, s.SortbyNulls)
	}
}

// ordering writes the direction and NULLS placement of a sort key.
// Undefined values are written as the default.
func (w *walker) ordering(dir ast.SortByDir, nulls ast.SortByNulls) {
	switch dir {
	case ast.SortByDirAsc:
		w.str(" ASC")
	case ast.SortByDirDesc:
		w.str(" DESC")
	}
	switch nulls {
	case ast.SortByNullsFirst:
		w.str(" NULLS FIRST")
	case ast.SortByNullsLast:
		w.str(" NULLS LAST")
	}
}
