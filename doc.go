// Package deparse turns wire-encoded PostgreSQL syntax trees back into SQL
// text without ever letting a malformed tree crash the caller.
//
// Every call runs inside its own arena scope: the payload is decoded into
// arena memory, rendered into an arena buffer, and the result text is
// copied out before the scope is released. A call either returns text or
// an ErrorRecord; it never returns both and never panics on bad input.
//
// # Architecture Overview
//
//	deparse/              Deparser, entry points, Result and ErrorRecord
//	├── arena/            per-call bump allocator and scope pool
//	├── ast/              syntax tree node types
//	├── codec/            protobuf wire format for syntax trees
//	├── render/           syntax tree to SQL text
//	├── parse/            SQL text to syntax tree (CLI and tests)
//	├── metrics/          Prometheus call metrics
//	├── resource/         handle table tracking live scopes
//	├── errors/           structured error types
//	└── internal/
//	    ├── trap/         the single fault recovery boundary
//	    ├── heap/         accounting of memory owned by callers
//	    └── keywords/     SQL keyword table
//
// # Quick Start
//
//	tree, err := parse.Parse("SELECT a FROM t WHERE b = 1")
//	if err != nil {
//		return err
//	}
//	res := deparse.Deparse(codec.EncodeParseResult(tree))
//	defer res.Free()
//	if err := res.Err(); err != nil {
//		return err
//	}
//	fmt.Println(res.Text)
//
// # Entry Points
//
// Seven entry points share one executor:
//
//	Deparse             statements joined with "; "
//	DeparseExpr         one expression
//	DeparseTypeName     a type name
//	DeparseRelOptions   WITH (...) options
//	DeparseSeqOptions   parenthesized sequence options
//	DeparseAnyOperator  a possibly qualified operator
//	DeparseIndexElem    one index element
//
// The package-level functions use a Deparser built from DefaultConfig.
// Create a Deparser with New to set arena limits, the codec depth limit,
// a logger or a Prometheus registerer.
//
// # Errors
//
// A failed call carries an ErrorRecord with the fault's phase and kind,
// message, the source location that raised it, a 1-based cursor into the
// payload or source text, and the render context frames innermost first.
// The record owns its strings, so it stays valid after later calls reuse
// the arena memory the fault was built in.
//
// # Releasing Results
//
// Text and records are accounted by the Deparser. Call Free (or
// FreeResult) when done; Stats reports the outstanding objects and bytes.
// Close on a Deparser releases its pooled arena memory; Results already
// returned stay valid.
package deparse
