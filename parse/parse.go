// Package parse reads SQL text into syntax trees.
//
// It understands the statement and expression subset the renderer can
// write back, so that parsing, encoding, deparsing and parsing again yields
// the same tree. Errors are *errors.Error values with PhaseParse and a
// 1-based cursor into the input.
package parse

import "github.com/wippyai/deparse/ast"

// Parse reads a semicolon-separated list of statements.
func Parse(sql string) (*ast.ParseResult, error) {
	return run(sql, (*parser).stmtList)
}

// ParseExpr reads a single expression.
func ParseExpr(sql string) (ast.Node, error) {
	return run(sql, (*parser).expr)
}

// ParseTypeName reads a type name, optionally prefixed by SETOF.
func ParseTypeName(sql string) (*ast.TypeName, error) {
	return run(sql, func(p *parser) *ast.TypeName { return p.typeName(true) })
}

// ParseRelOptions reads a parenthesized "name = value" option list.
func ParseRelOptions(sql string) (*ast.List, error) {
	return run(sql, func(p *parser) *ast.List { return &ast.List{Items: p.relOptions()} })
}

// ParseSeqOptions reads a parenthesized sequence option list.
// "()" yields an empty list.
func ParseSeqOptions(sql string) (*ast.List, error) {
	return run(sql, func(p *parser) *ast.List {
		l := &ast.List{}
		p.expectPunct("(")
		for !p.acceptPunct(")") {
			l.Items = append(l.Items, p.seqOption())
		}
		return l
	})
}

// ParseAnyOperator reads an operator name, optionally schema-qualified as
// in "pg_catalog.+".
func ParseAnyOperator(sql string) (*ast.List, error) {
	return run(sql, func(p *parser) *ast.List {
		l := &ast.List{}
		if p.peek().kind != tokOp {
			schema, _ := p.colID()
			l.Items = append(l.Items, ast.MakeString(schema))
			p.expectPunct(".")
		}
		t := p.peek()
		if t.kind != tokOp {
			p.unexpected()
		}
		p.next()
		l.Items = append(l.Items, ast.MakeString(t.text))
		return l
	})
}

// ParseIndexElem reads one index column or expression with its collation,
// operator class and ordering.
func ParseIndexElem(sql string) (*ast.IndexElem, error) {
	return run(sql, (*parser).indexElem)
}
