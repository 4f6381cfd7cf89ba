package ast

import "testing"

func TestTags(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&SelectStmt{}, "SelectStmt"},
		{&AConst{}, "A_Const"},
		{&AExpr{}, "A_Expr"},
		{&AStar{}, "A_Star"},
		{&IndexElem{}, "IndexElem"},
		{&List{}, "List"},
	}
	for _, tt := range tests {
		if got := tt.node.Tag(); got != tt.want {
			t.Errorf("%T.Tag() = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestNameStrings(t *testing.T) {
	parts, ok := NameStrings(MakeName("pg_catalog", "int4"))
	if !ok || len(parts) != 2 || parts[0] != "pg_catalog" || parts[1] != "int4" {
		t.Fatalf("NameStrings = %v, %v", parts, ok)
	}
	if _, ok := NameStrings([]Node{&String{Sval: "a"}, &AStar{}}); ok {
		t.Fatal("NameStrings should reject non-string parts")
	}
}

func TestMakeOpExpr(t *testing.T) {
	e := MakeOpExpr("+", MakeColumnRef(0, "a"), MakeIntConst(1, 4), 2)
	if e.Kind != AExprOp || e.Location != 2 {
		t.Fatalf("unexpected %+v", e)
	}
	if s := e.Name[0].(*String).Sval; s != "+" {
		t.Fatalf("op = %q", s)
	}
}
