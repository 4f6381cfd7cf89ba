// Package errors provides structured error types for the deparse bridge.
//
// Errors are categorized by Phase (where the fault occurred) and Kind (fault
// category). Beyond the field path and cause chain, an Error carries the
// origin of the fault (source file, function, line), a cursor position and
// the diagnostic context frames that were open when it was raised.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRender, errors.KindUnsupported).
//		Path("stmts", "0", "where_clause").
//		Detail("unsupported node %s in expression", "IndexElem").
//		Build()
//	err.File, err.Func, err.Line = errors.Locate(0)
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidEnum(errors.PhaseDecode, path, 9, "SortByDir")
//	err := errors.NestingDepth(errors.PhaseDecode, path, 1000)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
