package codec

import "google.golang.org/protobuf/encoding/protowire"

// Node oneof field numbers.
const (
	nodeSelectStmt    protowire.Number = 1
	nodeInsertStmt    protowire.Number = 2
	nodeUpdateStmt    protowire.Number = 3
	nodeDeleteStmt    protowire.Number = 4
	nodeCreateSeqStmt protowire.Number = 5
	nodeIndexStmt     protowire.Number = 6
	nodeResTarget     protowire.Number = 10
	nodeRangeVar      protowire.Number = 11
	nodeJoinExpr      protowire.Number = 12
	nodeAlias         protowire.Number = 13
	nodeColumnRef     protowire.Number = 20
	nodeAConst        protowire.Number = 21
	nodeAExpr         protowire.Number = 22
	nodeBoolExpr      protowire.Number = 23
	nodeFuncCall      protowire.Number = 24
	nodeTypeCast      protowire.Number = 25
	nodeNullTest      protowire.Number = 26
	nodeParamRef      protowire.Number = 27
	nodeAStar         protowire.Number = 28
	nodeTypeName      protowire.Number = 30
	nodeSortBy        protowire.Number = 31
	nodeDefElem       protowire.Number = 32
	nodeIndexElem     protowire.Number = 33
	nodeList          protowire.Number = 40
	nodeString        protowire.Number = 41
	nodeInteger       protowire.Number = 42
	nodeFloat         protowire.Number = 43
	nodeBoolean       protowire.Number = 44
)

// A_Const value oneof.
const (
	constIval    protowire.Number = 1
	constFval    protowire.Number = 2
	constBoolval protowire.Number = 3
	constSval    protowire.Number = 4
	constIsnull  protowire.Number = 10
	constLoc     protowire.Number = 11
)
