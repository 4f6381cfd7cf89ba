package main

import (
	"fmt"
	"strings"

	"github.com/wippyai/deparse"
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/codec"
	"github.com/wippyai/deparse/parse"
)

// operation binds an entry point to the parser that produces its input.
type operation struct {
	name    string
	example string
	encode  func(sql string) ([]byte, error)
	call    func(*deparse.Deparser, []byte) *deparse.Result
}

var operations = []operation{
	{
		name:    deparse.OpStatements,
		example: "SELECT a, b FROM t WHERE a > 0; DELETE FROM t",
		encode: func(sql string) ([]byte, error) {
			r, err := parse.Parse(sql)
			if err != nil {
				return nil, err
			}
			return codec.EncodeParseResult(r), nil
		},
		call: (*deparse.Deparser).Deparse,
	},
	{
		name:    deparse.OpExpr,
		example: "a BETWEEN 1 AND 10 OR b IS NULL",
		encode: func(sql string) ([]byte, error) {
			n, err := parse.ParseExpr(sql)
			if err != nil {
				return nil, err
			}
			return codec.EncodeNode(n), nil
		},
		call: (*deparse.Deparser).DeparseExpr,
	},
	{
		name:    deparse.OpTypeName,
		example: "varchar(20)[]",
		encode: func(sql string) ([]byte, error) {
			t, err := parse.ParseTypeName(sql)
			if err != nil {
				return nil, err
			}
			return codec.EncodeTypeName(t), nil
		},
		call: (*deparse.Deparser).DeparseTypeName,
	},
	{
		name:    deparse.OpRelOptions,
		example: "(fillfactor = 70, autovacuum_enabled = off)",
		encode:  listEncoder(parse.ParseRelOptions),
		call:    (*deparse.Deparser).DeparseRelOptions,
	},
	{
		name:    deparse.OpSeqOptions,
		example: "(AS bigint START WITH 10 NO CYCLE)",
		encode:  listEncoder(parse.ParseSeqOptions),
		call:    (*deparse.Deparser).DeparseSeqOptions,
	},
	{
		name:    deparse.OpAnyOperator,
		example: "pg_catalog.+",
		encode:  listEncoder(parse.ParseAnyOperator),
		call:    (*deparse.Deparser).DeparseAnyOperator,
	},
	{
		name:    deparse.OpIndexElem,
		example: `lower(title) COLLATE "C" DESC`,
		encode: func(sql string) ([]byte, error) {
			e, err := parse.ParseIndexElem(sql)
			if err != nil {
				return nil, err
			}
			return codec.EncodeNode(e), nil
		},
		call: (*deparse.Deparser).DeparseIndexElem,
	},
}

func listEncoder(fn func(string) (*ast.List, error)) func(string) ([]byte, error) {
	return func(sql string) ([]byte, error) {
		l, err := fn(sql)
		if err != nil {
			return nil, err
		}
		return codec.EncodeList(l), nil
	}
}

func lookup(name string) (operation, error) {
	for _, op := range operations {
		if op.name == name {
			return op, nil
		}
	}
	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = op.name
	}
	return operation{}, fmt.Errorf("unknown op %q (want one of %s)", name, strings.Join(names, ", "))
}
