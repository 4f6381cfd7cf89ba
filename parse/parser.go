package parse

import (
	"fmt"

	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/keywords"
	"github.com/wippyai/deparse/internal/trap"
)

type parser struct {
	src  string
	toks []token
	pos  int
}

// run lexes src and applies fn, which must consume all input.
func run[T any](src string, fn func(p *parser) T) (T, error) {
	var zero T
	toks, err := lex(src)
	if err != nil {
		return zero, err
	}
	p := &parser{src: src, toks: toks}
	out, fault := trap.Attempt(func() T {
		v := fn(p)
		if p.peek().kind != tokEOF {
			p.unexpected()
		}
		return v
	})
	if fault != nil {
		return zero, fault
	}
	return out, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isKeyword(word string) bool {
	return p.peek().is(tokKeyword, word)
}

func (p *parser) acceptKeyword(word string) bool {
	if p.isKeyword(word) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectKeyword(word string) token {
	if !p.isKeyword(word) {
		p.unexpected()
	}
	return p.next()
}

func (p *parser) isPunct(s string) bool {
	return p.peek().is(tokPunct, s)
}

func (p *parser) acceptPunct(s string) bool {
	if p.isPunct(s) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectPunct(s string) token {
	if !p.isPunct(s) {
		p.unexpected()
	}
	return p.next()
}

func (p *parser) isOp(s string) bool {
	return p.peek().is(tokOp, s)
}

// unexpected aborts at the current token.
func (p *parser) unexpected() {
	t := p.peek()
	if t.kind == tokEOF {
		p.failAt(t.pos, "syntax error at end of input")
	}
	p.failAt(t.pos, fmt.Sprintf("syntax error at or near %q", p.tokenText(t)))
}

func (p *parser) tokenText(t token) string {
	end := len(p.src)
	if n := p.pos + 1; n < len(p.toks) {
		end = p.toks[n].pos
	}
	text := p.src[t.pos:end]
	for len(text) > 0 && (text[len(text)-1] == ' ' || text[len(text)-1] == '\n' || text[len(text)-1] == '\t') {
		text = text[:len(text)-1]
	}
	return text
}

func (p *parser) failAt(pos int, detail string) {
	err := errors.Syntax(pos+1, detail)
	err.File, err.Func, err.Line = errors.Locate(1)
	trap.Raise(nil, err)
}

// colID reads an identifier usable as a column or table name: a plain or
// quoted identifier, or an unreserved keyword.
func (p *parser) colID() (string, int) {
	t := p.peek()
	switch {
	case t.kind == tokIdent:
	case t.kind == tokKeyword && keywords.Lookup(t.text) == keywords.Unreserved:
	default:
		p.unexpected()
	}
	p.pos++
	return t.text, t.pos
}

// colLabel reads any identifier or keyword, as allowed after AS and dots.
func (p *parser) colLabel() string {
	t := p.peek()
	if t.kind != tokIdent && t.kind != tokKeyword {
		p.unexpected()
	}
	p.pos++
	return t.text
}

// anyName reads a dotted name as a list of String nodes.
func (p *parser) anyName() []ast.Node {
	name, _ := p.colID()
	parts := []ast.Node{ast.MakeString(name)}
	for p.acceptPunct(".") {
		parts = append(parts, ast.MakeString(p.colLabel()))
	}
	return parts
}

func loc(pos int) int32 {
	return int32(pos)
}

// Statements

func (p *parser) stmtList() *ast.ParseResult {
	r := &ast.ParseResult{}
	for {
		for p.acceptPunct(";") {
		}
		if p.peek().kind == tokEOF {
			return r
		}
		start := p.peek().pos
		raw := &ast.RawStmt{Stmt: p.stmt(), StmtLocation: loc(start)}
		switch {
		case p.isPunct(";"):
			raw.StmtLen = loc(p.peek().pos - start)
		case p.peek().kind != tokEOF:
			p.unexpected()
		}
		r.Stmts = append(r.Stmts, raw)
	}
}

func (p *parser) stmt() ast.Node {
	t := p.peek()
	switch {
	case t.is(tokKeyword, "select"), t.is(tokKeyword, "values"):
		return p.selectStmt()
	case t.is(tokKeyword, "insert"):
		return p.insertStmt()
	case t.is(tokKeyword, "update"):
		return p.updateStmt()
	case t.is(tokKeyword, "delete"):
		return p.deleteStmt()
	case t.is(tokKeyword, "create"):
		next := p.peekAt(1)
		if next.is(tokKeyword, "sequence") {
			return p.createSeqStmt()
		}
		return p.indexStmt()
	}
	p.unexpected()
	return nil
}

// clauseStart reports whether the current token ends a target list.
func (p *parser) clauseStart() bool {
	t := p.peek()
	switch t.kind {
	case tokEOF:
		return true
	case tokPunct:
		return t.text == ";" || t.text == ")"
	case tokKeyword:
		switch t.text {
		case "from", "where", "group", "having", "order", "limit", "offset", "returning":
			return true
		}
	}
	return false
}

func (p *parser) selectStmt() *ast.SelectStmt {
	s := &ast.SelectStmt{}
	if p.acceptKeyword("values") {
		for {
			p.expectPunct("(")
			s.ValuesLists = append(s.ValuesLists, &ast.List{Items: p.exprList()})
			p.expectPunct(")")
			if !p.acceptPunct(",") {
				break
			}
		}
	} else {
		p.expectKeyword("select")
		s.Distinct = p.acceptKeyword("distinct")
		if !p.clauseStart() {
			s.TargetList = p.targetList()
		}
		if p.acceptKeyword("from") {
			s.FromClause = p.fromList()
		}
		if p.acceptKeyword("where") {
			s.WhereClause = p.expr()
		}
		if p.acceptKeyword("group") {
			p.expectKeyword("by")
			s.GroupClause = p.exprList()
		}
		if p.acceptKeyword("having") {
			s.HavingClause = p.expr()
		}
	}
	if p.acceptKeyword("order") {
		p.expectKeyword("by")
		for {
			s.SortClause = append(s.SortClause, p.sortBy())
			if !p.acceptPunct(",") {
				break
			}
		}
	}
	if p.acceptKeyword("limit") {
		s.LimitCount = p.expr()
	}
	if p.acceptKeyword("offset") {
		s.LimitOffset = p.expr()
	}
	return s
}

func (p *parser) sortBy() *ast.SortBy {
	s := &ast.SortBy{Node: p.expr(), Location: -1}
	s.SortbyDir, s.SortbyNulls = p.ordering()
	return s
}

func (p *parser) ordering() (ast.SortByDir, ast.SortByNulls) {
	dir, nulls := ast.SortByDirDefault, ast.SortByNullsDefault
	switch {
	case p.acceptKeyword("asc"):
		dir = ast.SortByDirAsc
	case p.acceptKeyword("desc"):
		dir = ast.SortByDirDesc
	}
	if p.acceptKeyword("nulls") {
		switch {
		case p.acceptKeyword("first"):
			nulls = ast.SortByNullsFirst
		case p.acceptKeyword("last"):
			nulls = ast.SortByNullsLast
		default:
			p.unexpected()
		}
	}
	return dir, nulls
}

func (p *parser) targetList() []ast.Node {
	var out []ast.Node
	for {
		out = append(out, p.target())
		if !p.acceptPunct(",") {
			return out
		}
	}
}

func (p *parser) target() *ast.ResTarget {
	start := p.peek().pos
	rt := &ast.ResTarget{Location: loc(start)}
	if p.isOp("*") {
		p.next()
		rt.Val = &ast.ColumnRef{Fields: []ast.Node{&ast.AStar{}}, Location: loc(start)}
		return rt
	}
	rt.Val = p.expr()
	switch {
	case p.acceptKeyword("as"):
		rt.Name = p.colLabel()
	case p.peek().kind == tokIdent:
		rt.Name = p.next().text
	}
	return rt
}

func (p *parser) fromList() []ast.Node {
	var out []ast.Node
	for {
		out = append(out, p.fromItem())
		if !p.acceptPunct(",") {
			return out
		}
	}
}

func (p *parser) fromItem() ast.Node {
	left := p.tablePrimary()
	for {
		j := &ast.JoinExpr{Larg: left}
		switch {
		case p.acceptKeyword("cross"):
			p.expectKeyword("join")
			j.Jointype = ast.JoinInner
			j.Rarg = p.tablePrimary()
			left = j
			continue
		case p.acceptKeyword("join"):
			j.Jointype = ast.JoinInner
		case p.acceptKeyword("inner"):
			p.expectKeyword("join")
			j.Jointype = ast.JoinInner
		case p.isKeyword("left"), p.isKeyword("right"), p.isKeyword("full"):
			switch p.next().text {
			case "left":
				j.Jointype = ast.JoinLeft
			case "right":
				j.Jointype = ast.JoinRight
			default:
				j.Jointype = ast.JoinFull
			}
			p.acceptKeyword("outer")
			p.expectKeyword("join")
		default:
			return left
		}
		j.Rarg = p.tablePrimary()
		p.expectKeyword("on")
		j.Quals = p.expr()
		left = j
	}
}

func (p *parser) tablePrimary() ast.Node {
	if p.acceptPunct("(") {
		n := p.fromItem()
		p.expectPunct(")")
		return n
	}
	return p.rangeVar(true, true)
}

func (p *parser) rangeVar(allowOnly, allowAlias bool) *ast.RangeVar {
	r := &ast.RangeVar{Inh: true, Location: loc(p.peek().pos)}
	if allowOnly && p.acceptKeyword("only") {
		r.Inh = false
	}
	name, _ := p.colID()
	if p.acceptPunct(".") {
		r.Schemaname = name
		name, _ = p.colID()
	}
	r.Relname = name
	if !allowAlias {
		return r
	}
	switch {
	case p.acceptKeyword("as"):
		r.Alias = &ast.Alias{Aliasname: p.colLabel()}
	case p.peek().kind == tokIdent:
		r.Alias = &ast.Alias{Aliasname: p.next().text}
	default:
		return r
	}
	if p.acceptPunct("(") {
		for {
			name, _ := p.colID()
			r.Alias.Colnames = append(r.Alias.Colnames, ast.MakeString(name))
			if !p.acceptPunct(",") {
				break
			}
		}
		p.expectPunct(")")
	}
	return r
}

func (p *parser) returning() []ast.Node {
	if p.acceptKeyword("returning") {
		return p.targetList()
	}
	return nil
}

func (p *parser) insertStmt() *ast.InsertStmt {
	p.expectKeyword("insert")
	p.expectKeyword("into")
	s := &ast.InsertStmt{Relation: p.rangeVar(false, false)}
	if p.acceptPunct("(") {
		for {
			name, pos := p.colID()
			s.Cols = append(s.Cols, &ast.ResTarget{Name: name, Location: loc(pos)})
			if !p.acceptPunct(",") {
				break
			}
		}
		p.expectPunct(")")
	}
	if p.acceptKeyword("default") {
		p.expectKeyword("values")
	} else {
		s.SelectStmt = p.selectStmt()
	}
	s.ReturningList = p.returning()
	return s
}

func (p *parser) updateStmt() *ast.UpdateStmt {
	p.expectKeyword("update")
	s := &ast.UpdateStmt{Relation: p.rangeVar(true, true)}
	p.expectKeyword("set")
	for {
		name, pos := p.colID()
		if !p.isOp("=") {
			p.unexpected()
		}
		p.next()
		s.TargetList = append(s.TargetList, &ast.ResTarget{Name: name, Val: p.expr(), Location: loc(pos)})
		if !p.acceptPunct(",") {
			break
		}
	}
	if p.acceptKeyword("from") {
		s.FromClause = p.fromList()
	}
	if p.acceptKeyword("where") {
		s.WhereClause = p.expr()
	}
	s.ReturningList = p.returning()
	return s
}

func (p *parser) deleteStmt() *ast.DeleteStmt {
	p.expectKeyword("delete")
	p.expectKeyword("from")
	s := &ast.DeleteStmt{Relation: p.rangeVar(true, true)}
	if p.acceptKeyword("where") {
		s.WhereClause = p.expr()
	}
	s.ReturningList = p.returning()
	return s
}

func (p *parser) ifNotExists() bool {
	if !p.acceptKeyword("if") {
		return false
	}
	p.expectKeyword("not")
	p.expectKeyword("exists")
	return true
}

func (p *parser) createSeqStmt() *ast.CreateSeqStmt {
	p.expectKeyword("create")
	p.expectKeyword("sequence")
	s := &ast.CreateSeqStmt{IfNotExists: p.ifNotExists()}
	s.Sequence = p.rangeVar(false, false)
	for p.peek().kind == tokKeyword {
		s.Options = append(s.Options, p.seqOption())
	}
	return s
}

func (p *parser) indexStmt() *ast.IndexStmt {
	p.expectKeyword("create")
	s := &ast.IndexStmt{AccessMethod: "btree"}
	s.Unique = p.acceptKeyword("unique")
	p.expectKeyword("index")
	s.Concurrent = p.acceptKeyword("concurrently")
	s.IfNotExists = p.ifNotExists()
	if s.IfNotExists || !p.isKeyword("on") {
		s.Idxname, _ = p.colID()
	}
	p.expectKeyword("on")
	s.Relation = p.rangeVar(true, false)
	if p.acceptKeyword("using") {
		s.AccessMethod, _ = p.colID()
	}
	p.expectPunct("(")
	for {
		s.IndexParams = append(s.IndexParams, p.indexElem())
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	if p.acceptKeyword("with") {
		s.Options = p.relOptions()
	}
	if p.acceptKeyword("where") {
		s.WhereClause = p.expr()
	}
	return s
}

func (p *parser) indexElem() *ast.IndexElem {
	e := &ast.IndexElem{}
	switch {
	case p.acceptPunct("("):
		e.Expr = p.expr()
		p.expectPunct(")")
	default:
		n := p.columnOrFunc()
		switch v := n.(type) {
		case *ast.FuncCall:
			e.Expr = v
		case *ast.ColumnRef:
			s, ok := v.Fields[0].(*ast.String)
			if len(v.Fields) != 1 || !ok {
				p.failAt(int(v.Location), "index column must be a simple name")
			}
			e.Name = s.Sval
		}
	}
	if p.acceptKeyword("collate") {
		e.Collation = p.anyName()
	}
	if p.peek().kind == tokIdent {
		e.Opclass = p.anyName()
	}
	e.Ordering, e.NullsOrdering = p.ordering()
	return e
}

// Options

func (p *parser) relOptions() []ast.Node {
	p.expectPunct("(")
	var out []ast.Node
	for {
		start := p.peek().pos
		d := &ast.DefElem{Defname: p.colLabel(), Location: loc(start)}
		if p.acceptPunct(".") {
			d.Defnamespace = d.Defname
			d.Defname = p.colLabel()
		}
		if p.isOp("=") {
			p.next()
			d.Arg = p.defArg()
		}
		out = append(out, d)
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	return out
}

func (p *parser) defArg() ast.Node {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.next()
		return ast.MakeString(t.text)
	case tokIdent, tokKeyword:
		p.next()
		return ast.MakeString(t.text)
	}
	return p.numericOnly()
}

// numericOnly reads an optionally signed number.
func (p *parser) numericOnly() ast.Node {
	neg := false
	switch {
	case p.isOp("-"):
		p.next()
		neg = true
	case p.isOp("+"):
		p.next()
	}
	t := p.peek()
	switch t.kind {
	case tokInteger:
		p.next()
		if neg {
			return &ast.Integer{Ival: -t.ival}
		}
		return &ast.Integer{Ival: t.ival}
	case tokFloat:
		p.next()
		if neg {
			return &ast.Float{Fval: "-" + t.text}
		}
		return &ast.Float{Fval: t.text}
	}
	p.unexpected()
	return nil
}

func (p *parser) atNumber() bool {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		t = p.peekAt(1)
	}
	return t.kind == tokInteger || t.kind == tokFloat
}

func (p *parser) seqOption() *ast.DefElem {
	start := p.peek().pos
	d := &ast.DefElem{Location: loc(start)}
	switch word := p.colLabel(); word {
	case "as":
		d.Defname, d.Arg = "as", p.typeName(false)
	case "cache":
		d.Defname, d.Arg = "cache", p.numericOnly()
	case "cycle":
		d.Defname, d.Arg = "cycle", &ast.Boolean{Boolval: true}
	case "no":
		switch {
		case p.acceptKeyword("cycle"):
			d.Defname, d.Arg = "cycle", &ast.Boolean{Boolval: false}
		case p.acceptKeyword("maxvalue"):
			d.Defname = "maxvalue"
		case p.acceptKeyword("minvalue"):
			d.Defname = "minvalue"
		default:
			p.unexpected()
		}
	case "increment":
		p.acceptKeyword("by")
		d.Defname, d.Arg = "increment", p.numericOnly()
	case "maxvalue", "minvalue":
		d.Defname, d.Arg = word, p.numericOnly()
	case "owned":
		p.expectKeyword("by")
		d.Defname = "owned_by"
		if p.acceptKeyword("none") {
			d.Arg = &ast.List{Items: ast.MakeName("none")}
		} else {
			d.Arg = &ast.List{Items: p.anyName()}
		}
	case "sequence":
		p.expectKeyword("name")
		d.Defname, d.Arg = "sequence_name", &ast.List{Items: p.anyName()}
	case "start":
		p.acceptKeyword("with")
		d.Defname, d.Arg = "start", p.numericOnly()
	case "restart":
		d.Defname = "restart"
		if p.acceptKeyword("with") || p.atNumber() {
			d.Arg = p.numericOnly()
		}
	default:
		p.failAt(start, fmt.Sprintf("syntax error at or near %q", word))
	}
	return d
}

// Types

var builtinTypes = map[string]string{
	"int":       "int4",
	"integer":   "int4",
	"smallint":  "int2",
	"bigint":    "int8",
	"real":      "float4",
	"float":     "float8",
	"numeric":   "numeric",
	"decimal":   "numeric",
	"boolean":   "bool",
	"varchar":   "varchar",
	"char":      "bpchar",
	"character": "bpchar",
	"timestamp": "timestamp",
}

func (p *parser) typeName(allowSetof bool) *ast.TypeName {
	start := p.peek().pos
	t := &ast.TypeName{Location: loc(start)}
	if allowSetof && p.acceptKeyword("setof") {
		t.Setof = true
	}
	tok := p.peek()
	switch {
	case tok.is(tokKeyword, "double"):
		p.next()
		p.expectKeyword("precision")
		t.Names = ast.MakeName("pg_catalog", "float8")
	case tok.kind == tokKeyword && builtinTypes[tok.text] != "":
		p.next()
		name := builtinTypes[tok.text]
		if (tok.text == "char" || tok.text == "character") && p.acceptKeyword("varying") {
			name = "varchar"
		}
		t.Names = ast.MakeName("pg_catalog", name)
	default:
		t.Names = p.anyName()
	}
	if p.acceptPunct("(") {
		t.Typmods = p.exprList()
		p.expectPunct(")")
	}
	for p.acceptPunct("[") {
		bound := &ast.Integer{Ival: -1}
		if tok := p.peek(); tok.kind == tokInteger {
			p.next()
			bound.Ival = tok.ival
		}
		t.ArrayBounds = append(t.ArrayBounds, bound)
		p.expectPunct("]")
	}
	return t
}

// Expressions

func (p *parser) exprList() []ast.Node {
	var out []ast.Node
	for {
		out = append(out, p.expr())
		if !p.acceptPunct(",") {
			return out
		}
	}
}

func (p *parser) expr() ast.Node {
	return p.orExpr()
}

func (p *parser) orExpr() ast.Node {
	first := p.andExpr()
	if !p.isKeyword("or") {
		return first
	}
	b := &ast.BoolExpr{Boolop: ast.OrExpr, Args: []ast.Node{first}, Location: loc(p.peek().pos)}
	for p.acceptKeyword("or") {
		b.Args = append(b.Args, p.andExpr())
	}
	return b
}

func (p *parser) andExpr() ast.Node {
	first := p.notExpr()
	if !p.isKeyword("and") {
		return first
	}
	b := &ast.BoolExpr{Boolop: ast.AndExpr, Args: []ast.Node{first}, Location: loc(p.peek().pos)}
	for p.acceptKeyword("and") {
		b.Args = append(b.Args, p.notExpr())
	}
	return b
}

func (p *parser) notExpr() ast.Node {
	if p.isKeyword("not") {
		pos := p.next().pos
		return &ast.BoolExpr{Boolop: ast.NotExpr, Args: []ast.Node{p.notExpr()}, Location: loc(pos)}
	}
	return p.isExpr()
}

func (p *parser) isExpr() ast.Node {
	left := p.cmpExpr()
	for p.isKeyword("is") {
		pos := p.next().pos
		not := p.acceptKeyword("not")
		switch {
		case p.acceptKeyword("null"):
			nt := ast.IsNull
			if not {
				nt = ast.IsNotNull
			}
			left = &ast.NullTest{Arg: left, Nulltesttype: nt, Location: loc(pos)}
		case p.acceptKeyword("distinct"):
			p.expectKeyword("from")
			kind := ast.AExprDistinct
			if not {
				kind = ast.AExprNotDistinct
			}
			left = &ast.AExpr{Kind: kind, Name: ast.MakeName("="), Lexpr: left, Rexpr: p.cmpExpr(), Location: loc(pos)}
		default:
			p.unexpected()
		}
	}
	return left
}

// comparison operators are non-associative.
func isComparison(op string) bool {
	switch op {
	case "=", "<", ">", "<=", ">=", "<>":
		return true
	}
	return false
}

func (p *parser) cmpExpr() ast.Node {
	left := p.patternExpr()
	if t := p.peek(); t.kind == tokOp && isComparison(t.text) {
		p.next()
		left = ast.MakeOpExpr(t.text, left, p.patternExpr(), loc(t.pos))
		if t := p.peek(); t.kind == tokOp && isComparison(t.text) {
			p.unexpected()
		}
	}
	return left
}

func (p *parser) patternExpr() ast.Node {
	left := p.otherExpr()
	for {
		pos := p.peek().pos
		not := false
		if p.isKeyword("not") {
			switch next := p.peekAt(1); {
			case next.is(tokKeyword, "in"), next.is(tokKeyword, "like"),
				next.is(tokKeyword, "ilike"), next.is(tokKeyword, "between"):
				p.next()
				not = true
			default:
				return left
			}
		}
		switch {
		case p.acceptKeyword("in"):
			op := "="
			if not {
				op = "<>"
			}
			p.expectPunct("(")
			list := &ast.List{Items: p.exprList()}
			p.expectPunct(")")
			left = &ast.AExpr{Kind: ast.AExprIn, Name: ast.MakeName(op), Lexpr: left, Rexpr: list, Location: loc(pos)}
		case p.acceptKeyword("like"):
			op := "~~"
			if not {
				op = "!~~"
			}
			left = &ast.AExpr{Kind: ast.AExprLike, Name: ast.MakeName(op), Lexpr: left, Rexpr: p.otherExpr(), Location: loc(pos)}
		case p.acceptKeyword("ilike"):
			op := "~~*"
			if not {
				op = "!~~*"
			}
			left = &ast.AExpr{Kind: ast.AExprILike, Name: ast.MakeName(op), Lexpr: left, Rexpr: p.otherExpr(), Location: loc(pos)}
		case p.acceptKeyword("between"):
			kind, name := ast.AExprBetween, "BETWEEN"
			if not {
				kind, name = ast.AExprNotBetween, "NOT BETWEEN"
			}
			lo := p.otherExpr()
			p.expectKeyword("and")
			hi := p.otherExpr()
			left = &ast.AExpr{Kind: kind, Name: ast.MakeName(name), Lexpr: left, Rexpr: &ast.List{Items: []ast.Node{lo, hi}}, Location: loc(pos)}
		default:
			return left
		}
	}
}

// isArithmetic reports whether op has its own precedence level.
func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%", "^":
		return true
	}
	return false
}

// qualifiedOperator reads OPERATOR(schema.op) after the OPERATOR keyword.
func (p *parser) qualifiedOperator() []ast.Node {
	p.expectPunct("(")
	schema, _ := p.colID()
	p.expectPunct(".")
	t := p.peek()
	if t.kind != tokOp {
		p.unexpected()
	}
	p.next()
	p.expectPunct(")")
	return ast.MakeName(schema, t.text)
}

func (p *parser) otherExpr() ast.Node {
	left := p.addExpr()
	for {
		t := p.peek()
		var name []ast.Node
		switch {
		case t.kind == tokOp && !isComparison(t.text) && !isArithmetic(t.text):
			p.next()
			name = ast.MakeName(t.text)
		case t.is(tokKeyword, "operator"):
			p.next()
			name = p.qualifiedOperator()
		default:
			return left
		}
		left = &ast.AExpr{Kind: ast.AExprOp, Name: name, Lexpr: left, Rexpr: p.addExpr(), Location: loc(t.pos)}
	}
}

func (p *parser) addExpr() ast.Node {
	left := p.mulExpr()
	for p.isOp("+") || p.isOp("-") {
		t := p.next()
		left = ast.MakeOpExpr(t.text, left, p.mulExpr(), loc(t.pos))
	}
	return left
}

func (p *parser) mulExpr() ast.Node {
	left := p.powExpr()
	for p.isOp("*") || p.isOp("/") || p.isOp("%") {
		t := p.next()
		left = ast.MakeOpExpr(t.text, left, p.powExpr(), loc(t.pos))
	}
	return left
}

func (p *parser) powExpr() ast.Node {
	left := p.unary()
	for p.isOp("^") {
		t := p.next()
		left = ast.MakeOpExpr(t.text, left, p.unary(), loc(t.pos))
	}
	return left
}

func (p *parser) unary() ast.Node {
	t := p.peek()
	switch {
	case t.is(tokOp, "-"):
		if n := p.peekAt(1); n.kind == tokInteger || n.kind == tokFloat {
			if after := p.peekAt(2); !after.is(tokPunct, "::") && !after.is(tokPunct, "[") {
				p.next()
				p.next()
				return p.negate(n, t.pos)
			}
		}
		p.next()
		return ast.MakeOpExpr("-", nil, p.unary(), loc(t.pos))
	case t.kind == tokOp:
		p.next()
		return ast.MakeOpExpr(t.text, nil, p.unary(), loc(t.pos))
	case t.is(tokKeyword, "operator"):
		p.next()
		name := p.qualifiedOperator()
		return &ast.AExpr{Kind: ast.AExprOp, Name: name, Rexpr: p.unary(), Location: loc(t.pos)}
	}
	return p.postfix()
}

func (p *parser) negate(n token, pos int) *ast.AConst {
	if n.kind == tokInteger {
		return ast.MakeIntConst(-n.ival, loc(pos))
	}
	return &ast.AConst{Val: &ast.Float{Fval: "-" + n.text}, Location: loc(pos)}
}

func (p *parser) postfix() ast.Node {
	n := p.primary()
	for p.isPunct("::") {
		pos := p.next().pos
		n = &ast.TypeCast{Arg: n, TypeName: p.typeName(false), Location: loc(pos)}
	}
	return n
}

func (p *parser) primary() ast.Node {
	t := p.peek()
	switch t.kind {
	case tokInteger:
		p.next()
		return ast.MakeIntConst(t.ival, loc(t.pos))
	case tokFloat:
		p.next()
		return &ast.AConst{Val: &ast.Float{Fval: t.text}, Location: loc(t.pos)}
	case tokString:
		p.next()
		return ast.MakeStringConst(t.text, loc(t.pos))
	case tokParam:
		p.next()
		return &ast.ParamRef{Number: t.ival, Location: loc(t.pos)}
	case tokPunct:
		if t.text == "(" {
			p.next()
			n := p.expr()
			p.expectPunct(")")
			return n
		}
	case tokKeyword:
		switch t.text {
		case "null":
			p.next()
			return &ast.AConst{Isnull: true, Location: loc(t.pos)}
		case "true", "false":
			p.next()
			return &ast.AConst{Val: &ast.Boolean{Boolval: t.text == "true"}, Location: loc(t.pos)}
		case "cast":
			p.next()
			p.expectPunct("(")
			arg := p.expr()
			p.expectKeyword("as")
			tn := p.typeName(false)
			p.expectPunct(")")
			return &ast.TypeCast{Arg: arg, TypeName: tn, Location: loc(t.pos)}
		}
		if keywords.Lookup(t.text) == keywords.Unreserved {
			return p.columnOrFunc()
		}
	case tokIdent:
		return p.columnOrFunc()
	}
	p.unexpected()
	return nil
}

// columnOrFunc reads a dotted name, followed by an argument list when it
// names a function.
func (p *parser) columnOrFunc() ast.Node {
	first, pos := p.colID()
	fields := []ast.Node{ast.MakeString(first)}
	for p.acceptPunct(".") {
		if p.isOp("*") {
			p.next()
			return &ast.ColumnRef{Fields: append(fields, &ast.AStar{}), Location: loc(pos)}
		}
		fields = append(fields, ast.MakeString(p.colLabel()))
	}
	if !p.acceptPunct("(") {
		return &ast.ColumnRef{Fields: fields, Location: loc(pos)}
	}
	f := &ast.FuncCall{Funcname: fields, Location: loc(pos)}
	switch {
	case p.isOp("*"):
		p.next()
		f.AggStar = true
	case p.isPunct(")"):
	default:
		f.AggDistinct = p.acceptKeyword("distinct")
		f.Args = p.exprList()
	}
	p.expectPunct(")")
	return f
}
