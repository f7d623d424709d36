// doc.go: package overview
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package ignis is an asynchronous, low-latency, thread-safe application
// logger. Producer goroutines encode log lines in microseconds and hand
// them off to a dedicated consumer goroutine that formats and writes them
// to rolling log files.
//
// The hot path (anything reachable from Submit or the severity helpers)
// does no I/O: a LogLine is allocated once, its payload is encoded into an
// inline buffer (a second allocation happens only for long lines), it is
// pushed into a lock-free MPSC queue, and it is owned from that point on
// by a single background consumer. The one exception is committing a
// Fatal line, which waits (for at most two seconds) until the consumer
// has written it.
//
// # Quick start
//
//	if err := ignis.Init("/var/log/myapp/", "app", 64); err != nil {
//		log.Fatal(err)
//	}
//	defer ignis.Close()
//
//	ignis.Info().Str("starting up").Int64(42).Commit()
//
// # Feature flags
//
// The original C++ implementation toggled timestamp formatting and console
// mirroring via build-time #defines. ignis exposes the same knobs as
// functional options passed to Init:
//
//	ignis.Init(dir, "app", 64,
//		ignis.WithMicros(),
//		ignis.WithGMTOffset(),
//		ignis.WithConsoleOut(),
//	)
//
// # What this package is not
//
// ignis does not do structured (key/value) logging, per-level filtering,
// persistent cross-restart queuing, multi-consumer fan-out, network sinks,
// time-based rotation, or compression. It rolls output files strictly by
// accumulated byte count.
package ignis
