package deparse

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the package logger. It is a no-op logger unless replaced
// with SetLogger.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger replaces the package logger; nil restores the no-op logger.
// Deparsers built without Config.Logger pick up the change on their next
// call.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
