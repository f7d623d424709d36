// facade_test.go: package-level entry point tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	if l := global.Swap(nil); l != nil {
		_ = l.Close()
	}
}

func TestInit_RejectsDoubleInit(t *testing.T) {
	defer resetGlobal(t)
	dir := t.TempDir()

	if err := Init(dir, "app", 1); err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	if err := Init(dir, "app", 1); err == nil {
		t.Errorf("second Init() without Close() should have failed")
	}
}

func TestSubmitAndSugar_WriteToFile(t *testing.T) {
	defer resetGlobal(t)
	dir := t.TempDir()

	if err := Init(dir, "app", 1); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info().Lit("via sugar").Commit()
	Submit(SeverityWarn, "custom.go", "CustomFn", 99).Lit("via submit").Commit()

	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "app.1.txt"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "via sugar") || !strings.Contains(out, "via submit") {
		t.Errorf("log output missing expected lines: %q", out)
	}
	if !strings.Contains(out, "custom.go:CustomFn:99") {
		t.Errorf("log output missing call-site info: %q", out)
	}
}

func TestCommit_WithoutInitDoesNotPanic(t *testing.T) {
	defer resetGlobal(t)
	Info().Lit("never delivered").Commit()
}

func TestOptions_AffectPrefixFormat(t *testing.T) {
	defer resetGlobal(t)
	dir := t.TempDir()

	if err := Init(dir, "app", 1, WithMicros(), WithGMTOffset()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Info().Lit("timed").Commit()

	deadline := time.Now().Add(time.Second)
	var out string
	for time.Now().Before(deadline) {
		data, _ := os.ReadFile(filepath.Join(dir, "app.1.txt"))
		if len(data) > 0 {
			out = string(data)
			break
		}
		time.Sleep(time.Millisecond)
	}
	_ = Close()

	if out == "" {
		t.Fatalf("no output observed before deadline")
	}
	// WithMicros appends "-<usec>" and WithGMTOffset appends "+<seconds>"
	// inside the single timestamp bracket, before the closing "][LEVEL]".
	if !strings.Contains(out, "][Info]") {
		t.Errorf("expected severity bracket immediately after timestamp, got %q", out)
	}
	if !regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}-\d{6}-\d+\+-?\d+\]\[Info\]`).MatchString(out) {
		t.Errorf("expected timestamp bracket with -<usec> and +<offset> suffixes, got %q", out)
	}
}
