package render

import (
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
)

func (w *walker) stmt(n ast.Node) {
	switch s := n.(type) {
	case nil:
		w.fail(nil, errors.KindFieldMissing, "statement is empty")
	case *ast.SelectStmt:
		w.selectStmt(s)
	case *ast.InsertStmt:
		w.insertStmt(s)
	case *ast.UpdateStmt:
		w.updateStmt(s)
	case *ast.DeleteStmt:
		w.deleteStmt(s)
	case *ast.CreateSeqStmt:
		w.createSeqStmt(s)
	case *ast.IndexStmt:
		w.indexStmt(s)
	default:
		w.fail(n, errors.KindUnsupported, "unsupported statement type: %s", n.Tag())
	}
}

func (w *walker) selectStmt(s *ast.SelectStmt) {
	w.push("SELECT")
	if len(s.ValuesLists) > 0 {
		w.valuesLists(s)
	} else {
		w.str("SELECT")
		if s.Distinct {
			w.str(" DISTINCT")
		}
		if len(s.TargetList) > 0 {
			w.byte(' ')
			w.targetList(s.TargetList)
		}
		if len(s.FromClause) > 0 {
			w.str(" FROM ")
			w.fromList(s.FromClause)
		}
		if s.WhereClause != nil {
			w.str(" WHERE ")
			w.expr(s.WhereClause)
		}
		if len(s.GroupClause) > 0 {
			w.str(" GROUP BY ")
			w.exprList(s.GroupClause)
		}
		if s.HavingClause != nil {
			w.str(" HAVING ")
			w.expr(s.HavingClause)
		}
	}
	if len(s.SortClause) > 0 {
		w.str(" ORDER BY ")
		w.sortList(s.SortClause)
	}
	if s.LimitCount != nil {
		w.str(" LIMIT ")
		w.expr(s.LimitCount)
	}
	if s.LimitOffset != nil {
		w.str(" OFFSET ")
		w.expr(s.LimitOffset)
	}
	w.pop()
}

func (w *walker) valuesLists(s *ast.SelectStmt) {
	if s.Distinct || len(s.TargetList) > 0 || len(s.FromClause) > 0 ||
		s.WhereClause != nil || len(s.GroupClause) > 0 || s.HavingClause != nil {
		w.fail(nil, errors.KindInvalidData, "VALUES cannot be combined with a target list or FROM, WHERE, GROUP BY or HAVING clauses")
	}
	w.str("VALUES ")
	for i, row := range s.ValuesLists {
		l, ok := row.(*ast.List)
		if !ok {
			w.fail(row, errors.KindInvalidVariant, "VALUES row must be List, got %s", tagOf(row))
		}
		if len(l.Items) == 0 {
			w.fail(nil, errors.KindInvalidData, "VALUES row %d is empty", i+1)
		}
		if i > 0 {
			w.str(", ")
		}
		w.byte('(')
		w.exprList(l.Items)
		w.byte(')')
	}
}

func (w *walker) targetList(targets []ast.Node) {
	for i, n := range targets {
		rt, ok := n.(*ast.ResTarget)
		if !ok {
			w.fail(n, errors.KindInvalidVariant, "target list entry must be ResTarget, got %s", tagOf(n))
		}
		if rt.Val == nil {
			w.fail(rt, errors.KindFieldMissing, "target list entry has no value")
		}
		if i > 0 {
			w.str(", ")
		}
		w.expr(rt.Val)
		if rt.Name != "" {
			w.str(" AS ")
			w.ident(rt.Name)
		}
	}
}

func (w *walker) fromList(items []ast.Node) {
	for i, n := range items {
		if i > 0 {
			w.str(", ")
		}
		w.fromItem(n)
	}
}

func (w *walker) fromItem(n ast.Node) {
	switch v := n.(type) {
	case *ast.RangeVar:
		w.rangeVar(v, true)
	case *ast.JoinExpr:
		w.joinExpr(v)
	default:
		w.fail(n, errors.KindUnsupported, "unsupported node %s in FROM clause", tagOf(n))
	}
}

func (w *walker) joinExpr(j *ast.JoinExpr) {
	if j.Larg == nil || j.Rarg == nil {
		w.fail(nil, errors.KindFieldMissing, "JOIN requires both sides")
	}
	w.fromItem(j.Larg)
	switch j.Jointype {
	case ast.JoinInner:
		if j.Quals == nil {
			w.str(" CROSS JOIN ")
		} else {
			w.str(" JOIN ")
		}
	case ast.JoinLeft:
		w.str(" LEFT JOIN ")
	case ast.JoinRight:
		w.str(" RIGHT JOIN ")
	case ast.JoinFull:
		w.str(" FULL JOIN ")
	default:
		w.fail(nil, errors.KindUnsupported, "unrecognized join type: %d", j.Jointype)
	}
	if j.Jointype != ast.JoinInner && j.Quals == nil {
		w.fail(nil, errors.KindFieldMissing, "outer join requires a join condition")
	}
	if r, nested := j.Rarg.(*ast.JoinExpr); nested {
		w.byte('(')
		w.joinExpr(r)
		w.byte(')')
	} else {
		w.fromItem(j.Rarg)
	}
	if j.Quals != nil {
		w.str(" ON ")
		w.expr(j.Quals)
	}
}

// rangeVar writes a relation reference. ONLY is written for non-inheriting
// references where the statement allows it.
func (w *walker) rangeVar(r *ast.RangeVar, allowOnly bool) {
	if r == nil {
		w.fail(nil, errors.KindFieldMissing, "relation is missing")
	}
	if r.Relname == "" {
		w.fail(r, errors.KindFieldMissing, "relation has no name")
	}
	if allowOnly && !r.Inh {
		w.str("ONLY ")
	}
	if r.Schemaname != "" {
		w.ident(r.Schemaname)
		w.byte('.')
	}
	w.ident(r.Relname)
	if r.Alias != nil {
		w.alias(r.Alias)
	}
}

func (w *walker) alias(a *ast.Alias) {
	w.str(" AS ")
	w.ident(a.Aliasname)
	if len(a.Colnames) > 0 {
		w.byte('(')
		w.nameList(a.Colnames, "column alias")
		w.byte(')')
	}
}

// nameList writes comma-separated String identifiers.
func (w *walker) nameList(names []ast.Node, what string) {
	for i, n := range names {
		s, ok := n.(*ast.String)
		if !ok {
			w.fail(n, errors.KindInvalidVariant, "%s must be String, got %s", what, tagOf(n))
		}
		if i > 0 {
			w.str(", ")
		}
		w.ident(s.Sval)
	}
}

func (w *walker) returning(targets []ast.Node) {
	if len(targets) > 0 {
		w.str(" RETURNING ")
		w.targetList(targets)
	}
}

func (w *walker) insertStmt(s *ast.InsertStmt) {
	w.push("INSERT")
	w.str("INSERT INTO ")
	w.rangeVar(s.Relation, false)
	if len(s.Cols) > 0 {
		w.str(" (")
		for i, n := range s.Cols {
			rt, ok := n.(*ast.ResTarget)
			if !ok {
				w.fail(n, errors.KindInvalidVariant, "insert column must be ResTarget, got %s", tagOf(n))
			}
			if rt.Name == "" {
				w.fail(rt, errors.KindFieldMissing, "insert column has no name")
			}
			if i > 0 {
				w.str(", ")
			}
			w.ident(rt.Name)
		}
		w.byte(')')
	}
	switch sel := s.SelectStmt.(type) {
	case nil:
		w.str(" DEFAULT VALUES")
	case *ast.SelectStmt:
		w.byte(' ')
		w.selectStmt(sel)
	default:
		w.fail(sel, errors.KindInvalidVariant, "INSERT source must be SelectStmt, got %s", sel.Tag())
	}
	w.returning(s.ReturningList)
	w.pop()
}

func (w *walker) updateStmt(s *ast.UpdateStmt) {
	w.push("UPDATE")
	w.str("UPDATE ")
	w.rangeVar(s.Relation, true)
	if len(s.TargetList) == 0 {
		w.fail(nil, errors.KindFieldMissing, "UPDATE requires at least one SET assignment")
	}
	w.str(" SET ")
	for i, n := range s.TargetList {
		rt, ok := n.(*ast.ResTarget)
		if !ok {
			w.fail(n, errors.KindInvalidVariant, "SET assignment must be ResTarget, got %s", tagOf(n))
		}
		if rt.Name == "" || rt.Val == nil {
			w.fail(rt, errors.KindFieldMissing, "SET assignment requires a column and a value")
		}
		if i > 0 {
			w.str(", ")
		}
		w.ident(rt.Name)
		w.str(" = ")
		w.expr(rt.Val)
	}
	if len(s.FromClause) > 0 {
		w.str(" FROM ")
		w.fromList(s.FromClause)
	}
	if s.WhereClause != nil {
		w.str(" WHERE ")
		w.expr(s.WhereClause)
	}
	w.returning(s.ReturningList)
	w.pop()
}

func (w *walker) deleteStmt(s *ast.DeleteStmt) {
	w.push("DELETE")
	w.str("DELETE FROM ")
	w.rangeVar(s.Relation, true)
	if s.WhereClause != nil {
		w.str(" WHERE ")
		w.expr(s.WhereClause)
	}
	w.returning(s.ReturningList)
	w.pop()
}

func (w *walker) createSeqStmt(s *ast.CreateSeqStmt) {
	w.push("CREATE SEQUENCE")
	w.str("CREATE SEQUENCE ")
	if s.IfNotExists {
		w.str("IF NOT EXISTS ")
	}
	w.rangeVar(s.Sequence, false)
	if len(s.Options) > 0 {
		w.byte(' ')
		w.seqOptions(s.Options)
	}
	w.pop()
}

func (w *walker) indexStmt(s *ast.IndexStmt) {
	w.push("CREATE INDEX")
	w.str("CREATE ")
	if s.Unique {
		w.str("UNIQUE ")
	}
	w.str("INDEX ")
	if s.Concurrent {
		w.str("CONCURRENTLY ")
	}
	if s.IfNotExists {
		if s.Idxname == "" {
			w.fail(nil, errors.KindFieldMissing, "IF NOT EXISTS requires an index name")
		}
		w.str("IF NOT EXISTS ")
	}
	if s.Idxname != "" {
		w.ident(s.Idxname)
		w.byte(' ')
	}
	w.str("ON ")
	w.rangeVar(s.Relation, true)
	if s.AccessMethod != "" && s.AccessMethod != "btree" {
		w.str(" USING ")
		w.ident(s.AccessMethod)
	}
	if len(s.IndexParams) == 0 {
		w.fail(nil, errors.KindFieldMissing, "index requires at least one column")
	}
	w.str(" (")
	for i, n := range s.IndexParams {
		elem, ok := n.(*ast.IndexElem)
		if !ok {
			w.fail(n, errors.KindInvalidVariant, "index parameter must be IndexElem, got %s", tagOf(n))
		}
		if i > 0 {
			w.str(", ")
		}
		w.indexElem(elem)
	}
	w.byte(')')
	if len(s.Options) > 0 {
		w.str(" WITH ")
		w.relOptions(s.Options)
	}
	if s.WhereClause != nil {
		w.str(" WHERE ")
		w.expr(s.WhereClause)
	}
	w.pop()
}
