// check.go: assertion helpers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package check provides the Go analogues of the original logger's
// CHECK_* macro family: lightweight runtime assertions that log a
// warning on failure, or log and terminate the process for the "_F"
// (fatal) variants.
package check

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/agilira/ignis"
)

// Eq reports whether a == b, logging a Warn-severity record carrying both
// operand values when they differ. The original's CHECK_EQ stringizes the
// call-site expressions (#a, #b) via the C preprocessor; Go has no
// equivalent, so Eq renders the operand values themselves, which coincide
// with the stringized form for literal arguments like CHECK_EQ(1, 2).
func Eq[T comparable](a, b T) bool {
	if a == b {
		return true
	}
	ignis.Warn().Lit("CHECK_EQ failed: ").Str(fmt.Sprint(a)).Lit(" != ").Str(fmt.Sprint(b)).Commit()
	return false
}

// EqF behaves like Eq but logs at Fatal severity and terminates the
// process when the check fails, matching CHECK_EQ_F's std::abort().
func EqF[T comparable](a, b T) bool {
	if a == b {
		return true
	}
	ignis.Fatal().Lit("CHECK_EQ failed: ").Str(fmt.Sprint(a)).Lit(" != ").Str(fmt.Sprint(b)).Commit()
	abort()
	return false
}

// StrEq reports whether two strings are byte-for-byte equal, logging a
// Warn-severity record on mismatch.
func StrEq(a, b string) bool {
	if a == b {
		return true
	}
	ignis.Warn().Lit("CHECK_STREQ failed: \"").Str(a).Lit("\" != \"").Str(b).Lit("\"").Commit()
	return false
}

// StrEqF behaves like StrEq but is fatal on mismatch.
func StrEqF(a, b string) bool {
	if a == b {
		return true
	}
	ignis.Fatal().Lit("CHECK_STREQ failed: \"").Str(a).Lit("\" != \"").Str(b).Lit("\"").Commit()
	abort()
	return false
}

// StrEqCase reports whether two strings are equal under case folding.
//
// The original CHECK_STREQ_CASE macro wraps strcasecmp, which returns
// zero on a match; the macro's `if (!strcasecmp(...))` condition is
// therefore true exactly when the strings MATCH, so the original fires
// its warning on success rather than on failure — a bug. StrEqCase fires
// on actual inequality, as a CHECK macro is supposed to.
func StrEqCase(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ignis.Warn().Lit("CHECK_STREQ_CASE failed: \"").Str(a).Lit("\" != \"").Str(b).Lit("\"").Commit()
	return false
}

// StrEqCaseF behaves like StrEqCase but is fatal on mismatch.
func StrEqCaseF(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ignis.Fatal().Lit("CHECK_STREQ_CASE failed: \"").Str(a).Lit("\" != \"").Str(b).Lit("\"").Commit()
	abort()
	return false
}

// Ptr reports whether ptr is non-nil, logging a Warn-severity record
// naming it when it is nil.
func Ptr(ptr any, name string) bool {
	if !isNil(ptr) {
		return true
	}
	ignis.Warn().Lit("CHECK_P failed: pointer ").Str(name).Lit(" is null").Commit()
	return false
}

// PtrF behaves like Ptr but is fatal when the pointer is nil.
func PtrF(ptr any, name string) bool {
	if !isNil(ptr) {
		return true
	}
	ignis.Fatal().Lit("CHECK_P failed: pointer ").Str(name).Lit(" is null").Commit()
	abort()
	return false
}

// True reports whether condition holds, logging a Warn-severity record
// naming the failed expression when it does not.
func True(condition bool, expr string) bool {
	if condition {
		return true
	}
	ignis.Warn().Lit("CHECK failed: ").Str(expr).Commit()
	return false
}

// TrueF behaves like True but is fatal when condition is false.
func TrueF(condition bool, expr string) bool {
	if condition {
		return true
	}
	ignis.Fatal().Lit("CHECK failed: ").Str(expr).Commit()
	abort()
	return false
}

// isNil reports whether v holds a nil pointer, slice, map, channel,
// function, or interface. A bare untyped nil (v itself is nil) is also
// nil; any other kind of value is never considered nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// abort terminates the process after a fatal check fails, matching the
// original's std::abort(). Before abort runs, Commit has already waited
// (for at most two seconds) for the consumer to write the Fatal line.
func abort() {
	os.Exit(1)
}
