// clock_test.go: timestamp capture tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"testing"
	"time"
)

func TestNow_MonotonicNonDecreasing(t *testing.T) {
	a := now()
	time.Sleep(2 * time.Millisecond)
	b := now()
	if b.t.Before(a.t) {
		t.Errorf("now() went backwards: %v then %v", a.t, b.t)
	}
	stopClock()
}

func TestLineTime_UsecMatchesCapturedInstant(t *testing.T) {
	want := time.Date(2026, time.March, 5, 9, 30, 0, 123000, time.UTC)
	lt := lineTime{t: want}
	if lt.usec() != want.Nanosecond()/1000 {
		t.Errorf("usec() = %d, want %d", lt.usec(), want.Nanosecond()/1000)
	}
}

func TestLineTime_BrokenDownFields(t *testing.T) {
	lt := lineTime{t: time.Unix(0, 0)} // 1970-01-01T00:00:00Z
	if lt.year() < 1969 || lt.year() > 1970 {
		t.Errorf("year() = %d, want 1969 or 1970 depending on local zone", lt.year())
	}
}
