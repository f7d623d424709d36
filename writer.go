// writer.go: rolling file output
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agilira/go-errors"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	ErrCodeFileOpen   errors.ErrorCode = "IGNIS_FILE_OPEN"
	ErrCodeFileWrite  errors.ErrorCode = "IGNIS_FILE_WRITE"
	ErrCodeFileRoll   errors.ErrorCode = "IGNIS_FILE_ROLL"
	ErrCodeDirMissing errors.ErrorCode = "IGNIS_DIR_MISSING"
)

const (
	defaultRetryCount = 3
	defaultRetryDelay = 10 * time.Millisecond
)

// ErrorCallback receives errors encountered off the caller's stack, on the
// consumer goroutine — there is nobody else to return them to.
type ErrorCallback func(err error)

// fileWriter owns a single rolling log file: one directory, one base
// filename, and a strictly increasing numeric suffix. It rolls reactively,
// the moment a write would cross the configured byte threshold, and never
// deletes or compresses anything it has already written.
type fileWriter struct {
	dir      string
	baseName string
	maxBytes int64

	file    *os.File
	written int64
	index   int

	consoleOut bool
	isTTY      bool
	console    io.Writer

	onError ErrorCallback
}

func newFileWriter(dir, baseName string, rollSizeMB int, consoleOut bool, onError ErrorCallback) (*fileWriter, error) {
	w := &fileWriter{
		dir:        dir,
		baseName:   baseName,
		maxBytes:   int64(rollSizeMB) * 1024 * 1024,
		index:      1,
		consoleOut: consoleOut,
		onError:    onError,
	}

	if consoleOut {
		w.isTTY = isatty.IsTerminal(os.Stdout.Fd())
		if w.isTTY {
			w.console = colorable.NewColorableStdout()
		} else {
			w.console = os.Stdout
		}
	}

	if err := w.openCurrent(); err != nil {
		return nil, err
	}
	return w, nil
}

// currentPath is "{dir}{baseName}.{index}.txt", matching the original
// FileWriter::roll naming scheme exactly so log directories produced by
// either implementation sort the same way.
func (w *fileWriter) currentPath() string {
	name := w.baseName + "." + strconv.Itoa(w.index) + ".txt"
	return filepath.Join(w.dir, name)
}

func (w *fileWriter) openCurrent() error {
	if info, err := os.Stat(w.dir); err != nil || !info.IsDir() {
		wrapped := errors.Wrap(fmt.Errorf("%q does not exist or is not a directory", w.dir), ErrCodeDirMissing, fmt.Sprintf("log directory %q must pre-exist", w.dir))
		w.report(wrapped)
		return wrapped
	}

	path := w.currentPath()
	var f *os.File
	if err := retryOp(func() error {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		return err
	}); err != nil {
		wrapped := errors.Wrap(err, ErrCodeFileOpen, fmt.Sprintf("failed to open log file %q", path))
		w.report(wrapped)
		return wrapped
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		wrapped := errors.Wrap(err, ErrCodeFileOpen, fmt.Sprintf("failed to stat log file %q", path))
		w.report(wrapped)
		return wrapped
	}

	w.file = f
	w.written = info.Size()
	return nil
}

func (w *fileWriter) report(err error) {
	if w.onError != nil && err != nil {
		w.onError(err)
	}
}

// writeLine formats and appends a single rendered line, rolling the file
// first if the incoming line would push it over the configured threshold.
// A roll failure is reported and the write is still attempted. When the
// next file could not be opened, the previous file has already been
// closed, so that write fails and is reported as well.
func (w *fileWriter) writeLine(rendered []byte) {
	if w.maxBytes > 0 && w.written+int64(len(rendered)) > w.maxBytes && w.written > 0 {
		if err := w.roll(); err != nil {
			w.report(errors.Wrap(err, ErrCodeFileRoll, "failed to roll log file"))
		}
	}

	n, err := w.file.Write(rendered)
	w.written += int64(n)
	if err != nil {
		w.report(errors.Wrap(err, ErrCodeFileWrite, fmt.Sprintf("failed to write log file %q", w.currentPath())))
	}
}

// writeConsoleColored mirrors a single decoded record to the terminal,
// wrapped in a severity-appropriate ANSI color when stdout is a terminal.
func (w *fileWriter) writeConsoleColored(sev Severity, rendered []byte) {
	if !w.consoleOut {
		return
	}
	if !w.isTTY {
		_, _ = w.console.Write(rendered)
		return
	}
	var buf bytes.Buffer
	buf.WriteString(sev.color())
	buf.Write(rendered)
	buf.WriteString(termReset)
	_, _ = w.console.Write(buf.Bytes())
}

func (w *fileWriter) roll() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	w.index++
	w.written = 0

	path := w.currentPath()
	var f *os.File
	if err := retryOp(func() error {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		return err
	}); err != nil {
		return err
	}
	w.file = f
	return nil
}

func (w *fileWriter) close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// retryOp retries a transient file operation a handful of times with a
// short fixed delay, a cheap defense against antivirus locks and
// overlay-fs hiccups right after a directory or file is created.
func retryOp(op func() error) error {
	var lastErr error
	for i := 0; i < defaultRetryCount; i++ {
		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if i < defaultRetryCount-1 {
			time.Sleep(defaultRetryDelay)
		}
	}
	return lastErr
}
