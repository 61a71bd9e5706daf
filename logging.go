// ABOUTME: Package-level logger backed by zap's SugaredLogger.
// ABOUTME: Defaults to a nop logger; binaries install a real one via SetLogger.

package dyndns53

import "go.uber.org/zap"

var log = zap.NewNop().Sugar()

// SetLogger replaces the package logger. Call once at startup, before any
// traffic is served; the package logger is not synchronised for swapping.
func SetLogger(l *zap.Logger) {
	log = l.Sugar()
}
