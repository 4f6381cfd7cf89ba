package deparse

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/heap"
)

// ErrorRecord describes a failed call. Every string is an owned copy that
// stays valid after the call's arena is released and reused.
type ErrorRecord struct {
	Phase          errors.Phase
	Kind           errors.Kind
	Message        string
	SourceFile     string
	SourceFunction string
	Context        string
	LineNumber     int
	CursorPosition int
}

const recordSize = int(unsafe.Sizeof(ErrorRecord{}))

// Error implements error.
func (r *ErrorRecord) Error() string {
	var b strings.Builder
	b.WriteString(r.Message)
	if r.CursorPosition > 0 {
		b.WriteString(" (position ")
		b.WriteString(strconv.Itoa(r.CursorPosition))
		b.WriteByte(')')
	}
	return b.String()
}

// Is matches *errors.Error targets by phase and kind, so callers can test a
// record against the same sentinels as the underlying fault.
func (r *ErrorRecord) Is(target error) bool {
	switch t := target.(type) {
	case *errors.Error:
		return r.Phase == t.Phase && r.Kind == t.Kind
	case *ErrorRecord:
		return r.Phase == t.Phase && r.Kind == t.Kind
	}
	return false
}

// Result is the outcome of one call: Text on success, Error on failure,
// never both.
type Result struct {
	Text  string
	Error *ErrorRecord

	owner *heap.Tracker
}

// Ok reports whether the call succeeded.
func (r *Result) Ok() bool {
	return r != nil && r.Error == nil
}

// Err returns the error record, or nil on success.
func (r *Result) Err() error {
	if r == nil || r.Error == nil {
		return nil
	}
	return r.Error
}

// Free releases the record's strings, the record and the text. The result
// is empty afterwards and a second Free does nothing.
func (r *Result) Free() {
	if r == nil || r.owner == nil {
		return
	}
	t := r.owner
	if e := r.Error; e != nil {
		t.Release(e.Message)
		t.Release(e.SourceFile)
		t.Release(e.SourceFunction)
		t.Release(e.Context)
		t.Drop(recordSize)
		*e = ErrorRecord{}
		r.Error = nil
	}
	t.Release(r.Text)
	r.Text = ""
	r.owner = nil
}

// FreeResult calls r.Free. A nil result is ignored.
func FreeResult(r *Result) {
	r.Free()
}

// snapshot copies fault into an owned record.
func snapshot(t *heap.Tracker, fault *errors.Error) *ErrorRecord {
	t.Acquire(recordSize)
	return &ErrorRecord{
		Phase:          fault.Phase,
		Kind:           fault.Kind,
		Message:        t.Clone(fault.Message()),
		SourceFile:     t.Clone(fault.File),
		SourceFunction: t.Clone(fault.Func),
		Context:        t.Clone(fault.ContextString()),
		LineNumber:     fault.Line,
		CursorPosition: fault.Cursor,
	}
}
