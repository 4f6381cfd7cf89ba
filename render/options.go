package render

import (
	"strconv"

	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
)

// relOptions writes "(name = value, ...)".
func (w *walker) relOptions(opts []ast.Node) {
	w.push("WITH options")
	w.byte('(')
	for i, n := range opts {
		d := w.defElem(n)
		if i > 0 {
			w.str(", ")
		}
		if d.Defnamespace != "" {
			w.ident(d.Defnamespace)
			w.byte('.')
		}
		w.ident(d.Defname)
		if d.Arg != nil {
			w.str(" = ")
			w.defArg(d)
		}
	}
	w.byte(')')
	w.pop()
}

func (w *walker) defElem(n ast.Node) *ast.DefElem {
	d, ok := n.(*ast.DefElem)
	if !ok {
		w.fail(n, errors.KindInvalidVariant, "option must be DefElem, got %s", tagOf(n))
	}
	if d.Defname == "" {
		w.fail(d, errors.KindFieldMissing, "option has no name")
	}
	return d
}

// defArg writes an option value: numbers as written, bare words when they
// need no quoting, anything else as a string literal.
func (w *walker) defArg(d *ast.DefElem) {
	switch v := d.Arg.(type) {
	case *ast.Integer:
		w.str(strconv.Itoa(int(v.Ival)))
	case *ast.Float:
		w.str(v.Fval)
	case *ast.String:
		if safeIdent(v.Sval) {
			w.str(v.Sval)
		} else {
			w.literal(v.Sval)
		}
	case *ast.TypeName:
		w.typeName(v)
	default:
		w.fail(d, errors.KindUnsupported, "unsupported value for option %q: %s", d.Defname, tagOf(d.Arg))
	}
}

// seqOptions writes space-separated sequence options.
func (w *walker) seqOptions(opts []ast.Node) {
	w.push("sequence options")
	for i, n := range opts {
		if i > 0 {
			w.byte(' ')
		}
		w.seqOption(w.defElem(n))
	}
	w.pop()
}

func (w *walker) seqOption(d *ast.DefElem) {
	switch d.Defname {
	case "as":
		t, ok := d.Arg.(*ast.TypeName)
		if !ok {
			w.fail(d, errors.KindInvalidVariant, "AS requires a type name, got %s", tagOf(d.Arg))
		}
		w.str("AS ")
		w.typeName(t)
	case "cache":
		w.str("CACHE ")
		w.numeric(d)
	case "cycle":
		b, ok := d.Arg.(*ast.Boolean)
		if !ok {
			w.fail(d, errors.KindInvalidVariant, "CYCLE requires a boolean, got %s", tagOf(d.Arg))
		}
		if b.Boolval {
			w.str("CYCLE")
		} else {
			w.str("NO CYCLE")
		}
	case "increment":
		w.str("INCREMENT BY ")
		w.numeric(d)
	case "maxvalue", "minvalue":
		kw := "MAXVALUE"
		if d.Defname == "minvalue" {
			kw = "MINVALUE"
		}
		if d.Arg == nil {
			w.str("NO ")
			w.str(kw)
			return
		}
		w.str(kw)
		w.byte(' ')
		w.numeric(d)
	case "owned_by":
		l, ok := d.Arg.(*ast.List)
		if !ok || len(l.Items) == 0 {
			w.fail(d, errors.KindInvalidData, "OWNED BY requires a column name")
		}
		w.str("OWNED BY ")
		if len(l.Items) == 1 {
			if s, ok := l.Items[0].(*ast.String); ok && s.Sval == "none" {
				w.str("NONE")
				return
			}
		}
		w.qualifiedName(l.Items, "OWNED BY column")
	case "sequence_name":
		l, ok := d.Arg.(*ast.List)
		if !ok {
			w.fail(d, errors.KindInvalidVariant, "SEQUENCE NAME requires a name list, got %s", tagOf(d.Arg))
		}
		w.str("SEQUENCE NAME ")
		w.qualifiedName(l.Items, "sequence")
	case "start":
		w.str("START WITH ")
		w.numeric(d)
	case "restart":
		if d.Arg == nil {
			w.str("RESTART")
			return
		}
		w.str("RESTART WITH ")
		w.numeric(d)
	default:
		w.fail(d, errors.KindUnsupported, "unrecognized sequence option %q", d.Defname)
	}
}

func (w *walker) numeric(d *ast.DefElem) {
	switch v := d.Arg.(type) {
	case *ast.Integer:
		w.str(strconv.Itoa(int(v.Ival)))
	case *ast.Float:
		if v.Fval == "" {
			w.fail(d, errors.KindInvalidData, "empty numeric value for %q", d.Defname)
		}
		w.str(v.Fval)
	default:
		w.fail(d, errors.KindInvalidVariant, "option %q requires a numeric value, got %s", d.Defname, tagOf(d.Arg))
	}
}

// anyOperator writes an operator name, qualified when it has a schema.
func (w *walker) anyOperator(names []ast.Node) {
	switch len(names) {
	case 1:
	case 2:
		schema, ok := names[0].(*ast.String)
		if !ok {
			w.fail(names[0], errors.KindInvalidVariant, "operator schema must be String, got %s", tagOf(names[0]))
		}
		w.ident(schema.Sval)
		w.byte('.')
	default:
		w.fail(nil, errors.KindInvalidData, "operator name must have one or two parts, got %d", len(names))
	}
	op, ok := names[len(names)-1].(*ast.String)
	if !ok {
		w.fail(names[len(names)-1], errors.KindInvalidVariant, "operator must be String, got %s", tagOf(names[len(names)-1]))
	}
	if !isOperator(op.Sval) {
		w.fail(nil, errors.KindInvalidData, "invalid operator name %q", op.Sval)
	}
	w.str(op.Sval)
}

func (w *walker) indexElem(e *ast.IndexElem) {
	if e == nil {
		w.fail(nil, errors.KindFieldMissing, "index element is missing")
	}
	switch {
	case e.Name != "":
		w.ident(e.Name)
	case e.Expr != nil:
		if _, ok := e.Expr.(*ast.FuncCall); ok {
			w.expr(e.Expr)
		} else {
			w.byte('(')
			w.expr(e.Expr)
			w.byte(')')
		}
	default:
		w.fail(nil, errors.KindFieldMissing, "index element has neither a column nor an expression")
	}
	if len(e.Collation) > 0 {
		w.str(" COLLATE ")
		w.qualifiedName(e.Collation, "collation")
	}
	if len(e.Opclass) > 0 {
		w.byte(' ')
		w.qualifiedName(e.Opclass, "operator class")
	}
	w.ordering(e.Ordering, e.NullsOrdering)
}
