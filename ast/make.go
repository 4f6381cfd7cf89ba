package ast

// Constructors used by the parser and by tests.

func MakeString(s string) *String { return &String{Sval: s} }

// MakeName builds a qualified name as a list of *String.
func MakeName(parts ...string) []Node {
	out := make([]Node, len(parts))
	for i, p := range parts {
		out[i] = &String{Sval: p}
	}
	return out
}

// MakeColumnRef builds a column reference from name parts.
func MakeColumnRef(location int32, parts ...string) *ColumnRef {
	return &ColumnRef{Fields: MakeName(parts...), Location: location}
}

func MakeIntConst(v int32, location int32) *AConst {
	return &AConst{Val: &Integer{Ival: v}, Location: location}
}

func MakeStringConst(s string, location int32) *AConst {
	return &AConst{Val: &String{Sval: s}, Location: location}
}

// MakeOpExpr builds a binary (or prefix, when lexpr is nil) operator expression.
func MakeOpExpr(op string, lexpr, rexpr Node, location int32) *AExpr {
	return &AExpr{Kind: AExprOp, Name: MakeName(op), Lexpr: lexpr, Rexpr: rexpr, Location: location}
}

// MakeTypeName builds a type name from qualified name parts.
func MakeTypeName(parts ...string) *TypeName {
	return &TypeName{Names: MakeName(parts...), Location: -1}
}

// MakeDefElem builds a generic option.
func MakeDefElem(name string, arg Node, location int32) *DefElem {
	return &DefElem{Defname: name, Arg: arg, Location: location}
}

// NameStrings extracts the string parts of a qualified name. ok is false if
// any part is not a *String.
func NameStrings(names []Node) (parts []string, ok bool) {
	parts = make([]string, 0, len(names))
	for _, n := range names {
		s, isStr := n.(*String)
		if !isStr {
			return nil, false
		}
		parts = append(parts, s.Sval)
	}
	return parts, true
}
