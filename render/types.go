package render

import (
	"strconv"

	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
)

// builtinTypes maps pg_catalog type names to their SQL spelling.
var builtinTypes = map[string]string{
	"int2":      "smallint",
	"int4":      "int",
	"int8":      "bigint",
	"float4":    "real",
	"float8":    "double precision",
	"numeric":   "numeric",
	"bool":      "boolean",
	"varchar":   "varchar",
	"bpchar":    "char",
	"timestamp": "timestamp",
}

func (w *walker) typeName(t *ast.TypeName) {
	if t == nil {
		w.fail(nil, errors.KindFieldMissing, "type name is missing")
	}
	if len(t.Names) == 0 {
		w.fail(t, errors.KindFieldMissing, "type name has no name")
	}
	if t.Setof {
		w.str("SETOF ")
	}
	if !w.builtinType(t.Names) {
		w.qualifiedName(t.Names, "type")
	}
	if len(t.Typmods) > 0 {
		w.byte('(')
		w.exprList(t.Typmods)
		w.byte(')')
	}
	for _, b := range t.ArrayBounds {
		n, ok := b.(*ast.Integer)
		if !ok {
			w.fail(t, errors.KindInvalidVariant, "array bound must be Integer, got %s", tagOf(b))
		}
		if n.Ival < 0 {
			w.str("[]")
			continue
		}
		w.byte('[')
		w.str(strconv.Itoa(int(n.Ival)))
		w.byte(']')
	}
}

func (w *walker) builtinType(names []ast.Node) bool {
	if len(names) != 2 {
		return false
	}
	schema, ok1 := names[0].(*ast.String)
	name, ok2 := names[1].(*ast.String)
	if !ok1 || !ok2 || schema.Sval != "pg_catalog" {
		return false
	}
	spelled, ok := builtinTypes[name.Sval]
	if !ok {
		return false
	}
	w.str(spelled)
	return true
}
