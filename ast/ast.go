// Package ast defines the SQL syntax tree exchanged between the parser, the
// wire codec and the renderer.
//
// The node set mirrors the PostgreSQL raw parse tree for the statements and
// expressions the module understands. Enumerations use 0 for "undefined";
// a tree produced by the parser never contains undefined values, but a
// decoded tree may, and the renderer rejects them.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	node()
	// Tag returns the node type name, e.g. "SelectStmt".
	Tag() string
}

// ParseResult is a sequence of top-level statements.
type ParseResult struct {
	Version int32
	Stmts   []*RawStmt
}

// RawStmt wraps one top-level statement with its source span.
type RawStmt struct {
	Stmt         Node
	StmtLocation int32
	StmtLen      int32
}

type SelectStmt struct {
	TargetList   []Node
	FromClause   []Node
	WhereClause  Node
	GroupClause  []Node
	HavingClause Node
	SortClause   []Node
	LimitCount   Node
	LimitOffset  Node
	// ValuesLists holds one *List per VALUES row; when set, the other
	// clauses are empty.
	ValuesLists []Node
	Distinct    bool
}

type InsertStmt struct {
	Relation      *RangeVar
	Cols          []Node
	SelectStmt    Node
	ReturningList []Node
}

type UpdateStmt struct {
	Relation      *RangeVar
	TargetList    []Node
	WhereClause   Node
	FromClause    []Node
	ReturningList []Node
}

type DeleteStmt struct {
	Relation      *RangeVar
	WhereClause   Node
	ReturningList []Node
}

type CreateSeqStmt struct {
	Sequence    *RangeVar
	Options     []Node
	IfNotExists bool
}

type IndexStmt struct {
	Idxname      string
	Relation     *RangeVar
	AccessMethod string
	IndexParams  []Node
	Options      []Node
	WhereClause  Node
	Unique       bool
	Concurrent   bool
	IfNotExists  bool
}

// ResTarget is a SELECT/RETURNING target (Val with optional Name), an
// INSERT column (Name only) or an UPDATE assignment (Name = Val).
type ResTarget struct {
	Name     string
	Val      Node
	Location int32
}

type Alias struct {
	Aliasname string
	Colnames  []Node
}

type RangeVar struct {
	Schemaname string
	Relname    string
	Alias      *Alias
	// Inh is false for ONLY.
	Inh      bool
	Location int32
}

type JoinExpr struct {
	Jointype JoinType
	Larg     Node
	Rarg     Node
	Quals    Node
}

type ColumnRef struct {
	// Fields holds *String parts and optionally a trailing *AStar.
	Fields   []Node
	Location int32
}

type AStar struct{}

// AConst is a literal. Val is nil when Isnull is set.
type AConst struct {
	Val      Node
	Isnull   bool
	Location int32
}

type AExpr struct {
	Kind     AExprKind
	Name     []Node
	Lexpr    Node
	Rexpr    Node
	Location int32
}

type BoolExpr struct {
	Boolop   BoolExprType
	Args     []Node
	Location int32
}

type FuncCall struct {
	Funcname    []Node
	Args        []Node
	AggStar     bool
	AggDistinct bool
	Location    int32
}

type TypeCast struct {
	Arg      Node
	TypeName *TypeName
	Location int32
}

type NullTest struct {
	Arg          Node
	Nulltesttype NullTestType
	Location     int32
}

type ParamRef struct {
	Number   int32
	Location int32
}

type TypeName struct {
	Names   []Node
	Typmods []Node
	// ArrayBounds holds one *Integer per dimension; -1 means unbounded.
	ArrayBounds []Node
	Setof       bool
	Location    int32
}

type SortBy struct {
	Node        Node
	SortbyDir   SortByDir
	SortbyNulls SortByNulls
	Location    int32
}

type DefElem struct {
	Defnamespace string
	Defname      string
	Arg          Node
	Location     int32
}

type IndexElem struct {
	Name          string
	Expr          Node
	Indexcolname  string
	Collation     []Node
	Opclass       []Node
	Ordering      SortByDir
	NullsOrdering SortByNulls
}

type List struct {
	Items []Node
}

type String struct {
	Sval string
}

type Integer struct {
	Ival int32
}

// Float keeps its literal text.
type Float struct {
	Fval string
}

type Boolean struct {
	Boolval bool
}

func (*RawStmt) node()       {}
func (*SelectStmt) node()    {}
func (*InsertStmt) node()    {}
func (*UpdateStmt) node()    {}
func (*DeleteStmt) node()    {}
func (*CreateSeqStmt) node() {}
func (*IndexStmt) node()     {}
func (*ResTarget) node()     {}
func (*Alias) node()         {}
func (*RangeVar) node()      {}
func (*JoinExpr) node()      {}
func (*ColumnRef) node()     {}
func (*AStar) node()         {}
func (*AConst) node()        {}
func (*AExpr) node()         {}
func (*BoolExpr) node()      {}
func (*FuncCall) node()      {}
func (*TypeCast) node()      {}
func (*NullTest) node()      {}
func (*ParamRef) node()      {}
func (*TypeName) node()      {}
func (*SortBy) node()        {}
func (*DefElem) node()       {}
func (*IndexElem) node()     {}
func (*List) node()          {}
func (*String) node()        {}
func (*Integer) node()       {}
func (*Float) node()         {}
func (*Boolean) node()       {}

func (*RawStmt) Tag() string       { return "RawStmt" }
func (*SelectStmt) Tag() string    { return "SelectStmt" }
func (*InsertStmt) Tag() string    { return "InsertStmt" }
func (*UpdateStmt) Tag() string    { return "UpdateStmt" }
func (*DeleteStmt) Tag() string    { return "DeleteStmt" }
func (*CreateSeqStmt) Tag() string { return "CreateSeqStmt" }
func (*IndexStmt) Tag() string     { return "IndexStmt" }
func (*ResTarget) Tag() string     { return "ResTarget" }
func (*Alias) Tag() string         { return "Alias" }
func (*RangeVar) Tag() string      { return "RangeVar" }
func (*JoinExpr) Tag() string      { return "JoinExpr" }
func (*ColumnRef) Tag() string     { return "ColumnRef" }
func (*AStar) Tag() string         { return "A_Star" }
func (*AConst) Tag() string        { return "A_Const" }
func (*AExpr) Tag() string         { return "A_Expr" }
func (*BoolExpr) Tag() string      { return "BoolExpr" }
func (*FuncCall) Tag() string      { return "FuncCall" }
func (*TypeCast) Tag() string      { return "TypeCast" }
func (*NullTest) Tag() string      { return "NullTest" }
func (*ParamRef) Tag() string      { return "ParamRef" }
func (*TypeName) Tag() string      { return "TypeName" }
func (*SortBy) Tag() string        { return "SortBy" }
func (*DefElem) Tag() string       { return "DefElem" }
func (*IndexElem) Tag() string     { return "IndexElem" }
func (*List) Tag() string          { return "List" }
func (*String) Tag() string        { return "String" }
func (*Integer) Tag() string       { return "Integer" }
func (*Float) Tag() string         { return "Float" }
func (*Boolean) Tag() string       { return "Boolean" }
