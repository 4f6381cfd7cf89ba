// Package render turns syntax trees back into SQL text.
//
// Output is written into an arena buffer. A tree that cannot be expressed
// as SQL (an unknown node in some position, a missing required field, an
// invalid combination of fields) aborts the call through the arena's
// diagnostic channel; render functions therefore must only be called
// inside trap.Attempt. While rendering, the walker keeps context frames
// open on the channel naming the construct being written.
package render

import (
	"strings"

	"github.com/wippyai/deparse/arena"
	"github.com/wippyai/deparse/ast"
	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/keywords"
	"github.com/wippyai/deparse/internal/trap"
)

// Renderer writes SQL text for syntax trees. It is stateless and safe for
// concurrent use.
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RawStmt renders one top-level statement.
func (*Renderer) RawStmt(a *arena.Arena, out *arena.Buffer, s *ast.RawStmt) {
	w := newWalker(a, out)
	if s == nil {
		w.fail(nil, errors.KindFieldMissing, "statement is empty")
	}
	w.stmt(s.Stmt)
}

// Expr renders a standalone expression.
func (*Renderer) Expr(a *arena.Arena, out *arena.Buffer, n ast.Node) {
	newWalker(a, out).expr(n)
}

// TypeName renders a type name.
func (*Renderer) TypeName(a *arena.Arena, out *arena.Buffer, t *ast.TypeName) {
	newWalker(a, out).typeName(t)
}

// RelOptions renders a parenthesized generic option list, as used by
// WITH (...) clauses.
func (*Renderer) RelOptions(a *arena.Arena, out *arena.Buffer, l *ast.List) {
	newWalker(a, out).relOptions(items(l))
}

// ParenthesizedSeqOptions renders a sequence option list in parentheses,
// or nothing when the list is empty.
func (*Renderer) ParenthesizedSeqOptions(a *arena.Arena, out *arena.Buffer, l *ast.List) {
	w := newWalker(a, out)
	opts := items(l)
	if len(opts) == 0 {
		return
	}
	w.byte('(')
	w.seqOptions(opts)
	w.byte(')')
}

// AnyOperator renders a possibly schema-qualified operator name.
func (*Renderer) AnyOperator(a *arena.Arena, out *arena.Buffer, l *ast.List) {
	newWalker(a, out).anyOperator(items(l))
}

// IndexElem renders one index column or expression.
func (*Renderer) IndexElem(a *arena.Arena, out *arena.Buffer, e *ast.IndexElem) {
	newWalker(a, out).indexElem(e)
}

func items(l *ast.List) []ast.Node {
	if l == nil {
		return nil
	}
	return l.Items
}

type walker struct {
	a    *arena.Arena
	out  *arena.Buffer
	diag *trap.Channel
}

func newWalker(a *arena.Arena, out *arena.Buffer) *walker {
	return &walker{a: a, out: out, diag: a.Diag()}
}

func (w *walker) str(s string) {
	w.out.WriteString(s)
}

func (w *walker) byte(c byte) {
	w.out.WriteByte(c)
}

// push opens a context frame. Frames are popped explicitly on the success
// path; on failure they stay on the channel until the call's snapshot
// flushes it.
func (w *walker) push(frame string) {
	w.diag.Push(frame)
}

func (w *walker) pop() {
	w.diag.Pop()
}

// fail aborts rendering. The fault's origin is the walker method that
// called fail; its cursor is derived from n's location when n has one.
func (w *walker) fail(n ast.Node, kind errors.Kind, format string, args ...any) {
	detail := w.a.Sprintf(format, args...)
	var err *errors.Error
	switch kind {
	case errors.KindUnsupported:
		err = errors.Unsupported(errors.PhaseRender, detail)
	case errors.KindInvalidVariant:
		err = errors.InvalidVariant(errors.PhaseRender, nil, detail)
	case errors.KindInvalidData:
		err = errors.InvalidData(errors.PhaseRender, nil, detail)
	default:
		err = errors.New(errors.PhaseRender, kind).Detail("%s", detail).Build()
	}
	err.Cursor = cursorOf(n)
	err.File, err.Func, err.Line = errors.Locate(1)
	trap.Raise(w.diag, err)
}

func cursorOf(n ast.Node) int {
	var loc int32 = -1
	switch v := n.(type) {
	case *ast.AConst:
		loc = v.Location
	case *ast.AExpr:
		loc = v.Location
	case *ast.BoolExpr:
		loc = v.Location
	case *ast.ColumnRef:
		loc = v.Location
	case *ast.FuncCall:
		loc = v.Location
	case *ast.TypeCast:
		loc = v.Location
	case *ast.NullTest:
		loc = v.Location
	case *ast.ParamRef:
		loc = v.Location
	case *ast.TypeName:
		loc = v.Location
	case *ast.SortBy:
		loc = v.Location
	case *ast.DefElem:
		loc = v.Location
	case *ast.ResTarget:
		loc = v.Location
	case *ast.RangeVar:
		loc = v.Location
	}
	if loc < 0 {
		return 0
	}
	return int(loc) + 1
}

func tagOf(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Tag()
}

// ident writes an identifier, double-quoting it unless it is a lower-case
// word that is not a keyword.
func (w *walker) ident(s string) {
	if s == "" {
		w.fail(nil, errors.KindInvalidData, "zero-length identifier")
	}
	if safeIdent(s) {
		w.str(s)
		return
	}
	w.byte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			w.byte('"')
		}
		w.byte(s[i])
	}
	w.byte('"')
}

func safeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case (c >= '0' && c <= '9') || c == '$':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return !keywords.IsKeyword(s)
}

// literal writes a string constant, using the E'' form when s contains a
// backslash.
func (w *walker) literal(s string) {
	if strings.IndexByte(s, '\\') >= 0 {
		w.byte('E')
	}
	w.byte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\'' || c == '\\' {
			w.byte(c)
		}
		w.byte(c)
	}
	w.byte('\'')
}

// qualifiedName writes dotted identifier parts.
func (w *walker) qualifiedName(names []ast.Node, what string) {
	if len(names) == 0 {
		w.fail(nil, errors.KindFieldMissing, "%s has no name", what)
	}
	for i, n := range names {
		s, ok := n.(*ast.String)
		if !ok {
			w.fail(n, errors.KindInvalidVariant, "%s name part must be String, got %s", what, tagOf(n))
		}
		if i > 0 {
			w.byte('.')
		}
		w.ident(s.Sval)
	}
}

func isOperator(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune("~!@#^&|`?+-*/%<>=", rune(s[i])) {
			return false
		}
	}
	return true
}
