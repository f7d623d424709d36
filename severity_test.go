// severity_test.go: severity level tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import "testing"

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityDebug, "Debug"},
		{SeverityInfo, "Info"},
		{SeverityWarn, "Warning"},
		{SeverityError, "Error"},
		{SeverityFatal, "Fatal"},
		{Severity(99), "Debug"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestSeverity_ColorFallsBackForUnknown(t *testing.T) {
	if got := Severity(99).color(); got != termDebug {
		t.Errorf("color() for unknown severity = %q, want termDebug fallback", got)
	}
}
