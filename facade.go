// facade.go: package-level entry points
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/agilira/go-errors"
)

const (
	ErrCodeAlreadyInit errors.ErrorCode = "IGNIS_ALREADY_INITIALIZED"
)

var global atomic.Pointer[Logger]

// Option configures Init. Each Option mirrors one of the original's
// build-time feature flags (WITH_MILLISEC, GMT_OFFSET, IS_DST,
// ENABLE_CONSOLE_OUT), made a runtime choice instead of a compile-time one.
type Option func(*LoggerConfig)

// WithMicros includes sub-second precision (microseconds) in the rendered
// timestamp prefix.
func WithMicros() Option {
	return func(c *LoggerConfig) { c.WithMicros = true }
}

// WithGMTOffset includes the local UTC offset in the rendered timestamp
// prefix.
func WithGMTOffset() Option {
	return func(c *LoggerConfig) { c.WithGMTOffset = true }
}

// WithDST appends "-DST1" to the rendered timestamp, inside its bracket,
// when the record's instant falls within daylight saving time, and
// "-DST0" otherwise.
func WithDST() Option {
	return func(c *LoggerConfig) { c.WithDST = true }
}

// WithConsoleOut mirrors every record to stdout in addition to the log
// file, colorized by severity when stdout is a terminal.
func WithConsoleOut() Option {
	return func(c *LoggerConfig) { c.ConsoleOut = true }
}

// WithErrorCallback registers a callback invoked whenever the consumer
// goroutine encounters a file I/O error it cannot return to any caller.
func WithErrorCallback(cb ErrorCallback) Option {
	return func(c *LoggerConfig) { c.OnError = cb }
}

// Init constructs the process-global Logger and opens the first rolling
// log file immediately. dir must already exist; Init does not create it
// and returns an error when it is missing. rollSizeMB of zero or
// less is rejected. Init is not safe to call concurrently with itself or
// with Close, and calling it twice without an intervening Close returns
// ErrCodeAlreadyInit.
func Init(dir, filename string, rollSizeMB int, opts ...Option) error {
	if global.Load() != nil {
		return errors.Wrap(fmt.Errorf("ignis already initialized"), ErrCodeAlreadyInit, "ignis: Init called twice")
	}

	cfg := LoggerConfig{
		Dir:        dir,
		BaseName:   filename,
		RollSizeMB: rollSizeMB,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	l, err := newLogger(cfg)
	if err != nil {
		return err
	}
	global.Store(l)
	return nil
}

// Close flushes and closes the process-global Logger. It is safe to call
// multiple times and safe to call when Init was never called.
func Close() error {
	l := global.Swap(nil)
	if l == nil {
		return nil
	}
	return l.Close()
}

// Submit builds a LogLine carrying the given call-site metadata and hands
// it to the global Logger once Commit is called. Callers normally reach
// Submit through Debug/Info/Warn/Error/Fatal rather than directly.
func Submit(level Severity, file, function string, line int) *LogLine {
	return newLogLine(level, file, function, line)
}

// Commit finalizes a LogLine and enqueues it for asynchronous writing. A
// LogLine must not be used after Commit is called.
func (l *LogLine) Commit() {
	logger := global.Load()
	if logger == nil {
		return
	}
	logger.Add(l)
}

// callSite captures the file, function name, and line number of the
// caller skip frames above its own caller, the same information the
// original captured through __FILE__/__func__/__LINE__ macros.
func callSite(skip int) (file, function string, line int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown", 0
	}
	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return file, function, line
}

// Debug starts a Debug-severity LogLine at the caller's source location.
func Debug() *LogLine {
	file, fn, line := callSite(2)
	return Submit(SeverityDebug, file, fn, line)
}

// Info starts an Info-severity LogLine at the caller's source location.
func Info() *LogLine {
	file, fn, line := callSite(2)
	return Submit(SeverityInfo, file, fn, line)
}

// Warn starts a Warn-severity LogLine at the caller's source location.
func Warn() *LogLine {
	file, fn, line := callSite(2)
	return Submit(SeverityWarn, file, fn, line)
}

// Error starts an Error-severity LogLine at the caller's source location.
func Error() *LogLine {
	file, fn, line := callSite(2)
	return Submit(SeverityError, file, fn, line)
}

// Fatal starts a Fatal-severity LogLine at the caller's source location.
// Committing a Fatal line makes Commit wait, for at most two seconds, until
// the consumer has written everything queued ahead of it and the line
// itself.
func Fatal() *LogLine {
	file, fn, line := callSite(2)
	return Submit(SeverityFatal, file, fn, line)
}
