// Package codec converts syntax trees to and from their protobuf wire form.
//
// The wire format is plain protocol buffers (proto3) and is read and
// written with google.golang.org/protobuf/encoding/protowire; no generated
// code is involved. The schema, in proto notation:
//
//	message ParseResult { int32 version = 1; repeated RawStmt stmts = 2; }
//	message RawStmt     { Node stmt = 1; int32 stmt_location = 2; int32 stmt_len = 3; }
//	message List        { repeated Node items = 1; }
//
//	message Node {
//	  oneof node {
//	    SelectStmt select_stmt = 1;   InsertStmt insert_stmt = 2;
//	    UpdateStmt update_stmt = 3;   DeleteStmt delete_stmt = 4;
//	    CreateSeqStmt create_seq_stmt = 5; IndexStmt index_stmt = 6;
//	    ResTarget res_target = 10;    RangeVar range_var = 11;
//	    JoinExpr join_expr = 12;      Alias alias = 13;
//	    ColumnRef column_ref = 20;    A_Const a_const = 21;
//	    A_Expr a_expr = 22;           BoolExpr bool_expr = 23;
//	    FuncCall func_call = 24;      TypeCast type_cast = 25;
//	    NullTest null_test = 26;      ParamRef param_ref = 27;
//	    A_Star a_star = 28;           TypeName type_name = 30;
//	    SortBy sort_by = 31;          DefElem def_elem = 32;
//	    IndexElem index_elem = 33;    List list = 40;
//	    String string = 41;           Integer integer = 42;
//	    Float float = 43;             Boolean boolean = 44;
//	  }
//	}
//
//	message String  { string sval = 1; }
//	message Integer { int32 ival = 1; }
//	message Float   { string fval = 1; }
//	message Boolean { bool boolval = 1; }
//	message A_Star  {}
//
//	message A_Const   { oneof val { Integer ival = 1; Float fval = 2; Boolean boolval = 3; String sval = 4; }
//	                    bool isnull = 10; int32 location = 11; }
//	message Alias     { string aliasname = 1; repeated Node colnames = 2; }
//	message RangeVar  { string schemaname = 1; string relname = 2; bool inh = 3; Alias alias = 4; int32 location = 5; }
//	message ResTarget { string name = 1; Node val = 2; int32 location = 3; }
//	message JoinExpr  { JoinType jointype = 1; Node larg = 2; Node rarg = 3; Node quals = 4; }
//	message ColumnRef { repeated Node fields = 1; int32 location = 2; }
//	message A_Expr    { A_Expr_Kind kind = 1; repeated Node name = 2; Node lexpr = 3; Node rexpr = 4; int32 location = 5; }
//	message BoolExpr  { BoolExprType boolop = 1; repeated Node args = 2; int32 location = 3; }
//	message FuncCall  { repeated Node funcname = 1; repeated Node args = 2; bool agg_star = 3;
//	                    bool agg_distinct = 4; int32 location = 5; }
//	message TypeCast  { Node arg = 1; TypeName type_name = 2; int32 location = 3; }
//	message NullTest  { Node arg = 1; NullTestType nulltesttype = 2; int32 location = 3; }
//	message ParamRef  { int32 number = 1; int32 location = 2; }
//	message TypeName  { repeated Node names = 1; bool setof = 2; repeated Node typmods = 3;
//	                    repeated Node array_bounds = 4; int32 location = 5; }
//	message SortBy    { Node node = 1; SortByDir sortby_dir = 2; SortByNulls sortby_nulls = 3; int32 location = 4; }
//	message DefElem   { string defnamespace = 1; string defname = 2; Node arg = 3; int32 location = 4; }
//	message IndexElem { string name = 1; Node expr = 2; string indexcolname = 3; repeated Node collation = 4;
//	                    repeated Node opclass = 5; SortByDir ordering = 6; SortByNulls nulls_ordering = 7; }
//
//	message SelectStmt { bool distinct = 1; repeated Node target_list = 2; repeated Node from_clause = 3;
//	                     Node where_clause = 4; repeated Node group_clause = 5; Node having_clause = 6;
//	                     repeated Node sort_clause = 7; Node limit_count = 8; Node limit_offset = 9;
//	                     repeated Node values_lists = 10; }
//	message InsertStmt { RangeVar relation = 1; repeated Node cols = 2; Node select_stmt = 3;
//	                     repeated Node returning_list = 4; }
//	message UpdateStmt { RangeVar relation = 1; repeated Node target_list = 2; Node where_clause = 3;
//	                     repeated Node from_clause = 4; repeated Node returning_list = 5; }
//	message DeleteStmt { RangeVar relation = 1; Node where_clause = 2; repeated Node returning_list = 3; }
//	message CreateSeqStmt { RangeVar sequence = 1; repeated Node options = 2; bool if_not_exists = 3; }
//	message IndexStmt  { string idxname = 1; RangeVar relation = 2; string access_method = 3;
//	                     repeated Node index_params = 4; repeated Node options = 5; Node where_clause = 6;
//	                     bool unique = 7; bool concurrent = 8; bool if_not_exists = 9; }
//
// Enumerations are encoded as varints with 0 meaning undefined; their
// values match the ast package constants.
//
// # Decoding
//
// The Decoder copies every string into the call's arena. It rejects
// truncated input, wrong wire types, out-of-range enums and integers,
// invalid UTF-8, empty or unknown Node variants, payloads nested deeper
// than Config.MaxDepth and list items of the wrong shape. Unknown fields
// of other messages are skipped. Every error is an *errors.Error in
// PhaseDecode whose Cursor is the 1-based payload offset of the failing
// field.
package codec
