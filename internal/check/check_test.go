// check_test.go: assertion helper tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package check

import (
	"testing"

	"github.com/agilira/ignis"
)

func initLogger(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := ignis.Init(dir, "app", 1); err != nil {
		t.Fatalf("ignis.Init() error = %v", err)
	}
	t.Cleanup(func() { _ = ignis.Close() })
}

func TestEq(t *testing.T) {
	initLogger(t)
	if !Eq(1, 1) {
		t.Errorf("Eq(1, 1) = false, want true")
	}
	if Eq(1, 2) {
		t.Errorf("Eq(1, 2) = true, want false")
	}
}

func TestStrEq(t *testing.T) {
	initLogger(t)
	if !StrEq("abc", "abc") {
		t.Errorf("StrEq(equal) = false, want true")
	}
	if StrEq("abc", "ABC") {
		t.Errorf("StrEq(case-different) = true, want false")
	}
}

// TestStrEqCase_FiresOnInequality pins down the corrected semantics: the
// original C++ macro's inverted strcasecmp check fired its warning on a
// MATCH, not a mismatch. StrEqCase must fire (return false) only when the
// strings genuinely differ under case folding.
func TestStrEqCase_FiresOnInequality(t *testing.T) {
	initLogger(t)
	if !StrEqCase("abc", "ABC") {
		t.Errorf("StrEqCase(case-insensitive match) = false, want true")
	}
	if StrEqCase("abc", "xyz") {
		t.Errorf("StrEqCase(genuinely different) = true, want false")
	}
}

func TestPtr(t *testing.T) {
	initLogger(t)
	var p *int
	if Ptr(p, "p") {
		t.Errorf("Ptr(nil) = true, want false")
	}
	v := 1
	if !Ptr(&v, "v") {
		t.Errorf("Ptr(non-nil) = false, want true")
	}
}

func TestTrue(t *testing.T) {
	initLogger(t)
	if !True(1+1 == 2, "1+1 == 2") {
		t.Errorf("True(correct condition) = false, want true")
	}
	if True(1+1 == 3, "1+1 == 3") {
		t.Errorf("True(false condition) = true, want false")
	}
}
