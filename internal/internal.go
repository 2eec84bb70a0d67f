// Package internal contains internal implementation details.
package internal

import "github.com/bassosimone/dtnsim"

// NullLogger is a [dtnsim.Logger] that does not emit logs.
type NullLogger struct{}

// Debug implements dtnsim.Logger
func (nl *NullLogger) Debug(message string) {
	// nothing
}

// Debugf implements dtnsim.Logger
func (nl *NullLogger) Debugf(format string, v ...any) {
	// nothing
}

// Info implements dtnsim.Logger
func (nl *NullLogger) Info(message string) {
	// nothing
}

// Infof implements dtnsim.Logger
func (nl *NullLogger) Infof(format string, v ...any) {
	// nothing
}

// Warn implements dtnsim.Logger
func (nl *NullLogger) Warn(message string) {
	// nothing
}

// Warnf implements dtnsim.Logger
func (nl *NullLogger) Warnf(format string, v ...any) {
	// nothing
}

var _ dtnsim.Logger = &NullLogger{}
