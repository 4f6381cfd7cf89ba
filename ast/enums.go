package ast

type AExprKind int32

const (
	AExprKindUndefined AExprKind = iota
	AExprOp
	AExprDistinct
	AExprNotDistinct
	AExprIn
	AExprLike
	AExprILike
	AExprBetween
	AExprNotBetween
)

// MaxAExprKind is the largest defined AExprKind.
const MaxAExprKind = AExprNotBetween

type BoolExprType int32

const (
	BoolExprTypeUndefined BoolExprType = iota
	AndExpr
	OrExpr
	NotExpr
)

const MaxBoolExprType = NotExpr

type JoinType int32

const (
	JoinTypeUndefined JoinType = iota
	JoinInner
	JoinLeft
	JoinFull
	JoinRight
)

const MaxJoinType = JoinRight

type NullTestType int32

const (
	NullTestTypeUndefined NullTestType = iota
	IsNull
	IsNotNull
)

const MaxNullTestType = IsNotNull

type SortByDir int32

const (
	SortByDirUndefined SortByDir = iota
	SortByDirDefault
	SortByDirAsc
	SortByDirDesc
)

const MaxSortByDir = SortByDirDesc

type SortByNulls int32

const (
	SortByNullsUndefined SortByNulls = iota
	SortByNullsDefault
	SortByNullsFirst
	SortByNullsLast
)

const MaxSortByNulls = SortByNullsLast
