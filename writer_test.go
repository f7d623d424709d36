// writer_test.go: rolling file writer tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriter_RollNaming(t *testing.T) {
	dir := t.TempDir()
	w, err := newFileWriter(dir, "app", 1, false, nil)
	if err != nil {
		t.Fatalf("newFileWriter() error = %v", err)
	}
	defer w.close()

	if got, want := filepath.Base(w.currentPath()), "app.1.txt"; got != want {
		t.Errorf("currentPath() base = %q, want %q", got, want)
	}

	if err := w.roll(); err != nil {
		t.Fatalf("roll() error = %v", err)
	}
	if got, want := filepath.Base(w.currentPath()), "app.2.txt"; got != want {
		t.Errorf("after roll, currentPath() base = %q, want %q", got, want)
	}

	for _, name := range []string{"app.1.txt", "app.2.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestFileWriter_RollsOnSizeThreshold(t *testing.T) {
	dir := t.TempDir()
	w, err := newFileWriter(dir, "app", 0, false, nil)
	if err != nil {
		t.Fatalf("newFileWriter() error = %v", err)
	}
	w.maxBytes = 16
	defer w.close()

	w.writeLine([]byte("0123456789")) // 10 bytes, under threshold
	if w.index != 1 {
		t.Fatalf("index = %d, want 1 after first write", w.index)
	}

	w.writeLine([]byte("0123456789")) // would push to 20 bytes, over threshold
	if w.index != 2 {
		t.Fatalf("index = %d, want 2 after crossing threshold", w.index)
	}
}

func TestFileWriter_RejectsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := newFileWriter(dir, "app", 1, false, nil); err == nil {
		t.Fatalf("newFileWriter() with missing directory should have failed")
	}
}

func TestFileWriter_ReportsErrorsThroughCallback(t *testing.T) {
	dir := t.TempDir()
	var gotErr error
	w, err := newFileWriter(dir, "app", 1, false, func(err error) { gotErr = err })
	if err != nil {
		t.Fatalf("newFileWriter() error = %v", err)
	}
	defer w.close()

	_ = w.file.Close() // force the next write to fail
	w.writeLine([]byte("x"))

	if gotErr == nil {
		t.Errorf("expected onError callback to fire after closing the underlying file")
	}
}
