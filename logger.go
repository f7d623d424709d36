// logger.go: composition root
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-errors"
)

const (
	ErrCodeBadConfig errors.ErrorCode = "IGNIS_BAD_CONFIG"
)

// lifecycleState mirrors the original Logger's State enum: a value only
// ever moves forward, INIT -> ENABLED -> DISABLED, and never back.
type lifecycleState int32

const (
	stateInit lifecycleState = iota
	stateEnabled
	stateDisabled
)

// consumer back-off tuning: spin a handful of times, then yield the
// processor, then fall back to short, capped sleeps. This resolved the
// spec's open question on idle behavior in favor of bounded escalation
// rather than an unbounded busy-loop or a fixed-interval ticker.
const (
	spinIterations  = 64
	yieldIterations = 256
	minBackoff      = 50 * time.Microsecond
	maxBackoff      = 4 * time.Millisecond
)

// Logger is the composition root: a queue, a single consumer goroutine
// draining it, and the rolling file it writes to. Producers only ever
// touch the queue; only the consumer goroutine touches the fileWriter.
type Logger struct {
	state atomic.Int32 // lifecycleState

	queue  *queueBuffer
	writer *fileWriter

	pushed   atomic.Uint64
	consumed atomic.Uint64

	done chan struct{}
	wg   sync.WaitGroup

	withMicros    bool
	withGMTOffset bool
	withDST       bool
}

// LoggerConfig groups the construction parameters for newLogger, mirroring
// the shape of a functional-options target without exposing the options
// machinery (that lives in facade.go, which is the only public entry
// point) to this package-private composition root.
type LoggerConfig struct {
	Dir           string
	BaseName      string
	RollSizeMB    int
	ConsoleOut    bool
	WithMicros    bool
	WithGMTOffset bool
	WithDST       bool
	OnError       ErrorCallback
}

func newLogger(cfg LoggerConfig) (*Logger, error) {
	if cfg.BaseName == "" {
		return nil, errors.Wrap(fmt.Errorf("empty base filename"), ErrCodeBadConfig, "ignis: base filename required")
	}
	if cfg.RollSizeMB <= 0 {
		return nil, errors.Wrap(fmt.Errorf("roll size %d", cfg.RollSizeMB), ErrCodeBadConfig, "ignis: roll size must be positive")
	}

	w, err := newFileWriter(cfg.Dir, cfg.BaseName, cfg.RollSizeMB, cfg.ConsoleOut, cfg.OnError)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		queue:         newQueueBuffer(),
		writer:        w,
		done:          make(chan struct{}),
		withMicros:    cfg.WithMicros,
		withGMTOffset: cfg.WithGMTOffset,
		withDST:       cfg.WithDST,
	}
	l.state.Store(int32(stateEnabled))

	l.wg.Add(1)
	go l.consume()

	return l, nil
}

// Add enqueues a completed LogLine for asynchronous consumption. It never
// touches the file, and it blocks only for a Fatal line, which it waits on
// through waitConsumed; once ENABLED has been left, Add
// silently drops the line, matching the original Logger's refusal to push
// once pop() has exited.
func (l *Logger) Add(line *LogLine) {
	if lifecycleState(l.state.Load()) != stateEnabled {
		return
	}
	l.queue.Push(line)
	seq := l.pushed.Add(1)
	if line.severity == SeverityFatal {
		l.waitConsumed(seq)
	}
}

// waitConsumed blocks the caller until the consumer goroutine has rendered
// at least seq lines. Pop is single-consumer only, so a Fatal commit
// cannot drain the queue itself on the caller's goroutine without racing
// the dedicated consumer; instead it waits on the same pushed/consumed
// sequence counters the consumer already maintains, so the two goroutines
// never touch the queue concurrently. The wait is bounded: after two
// seconds it returns even if the consumer has not yet written the line.
func (l *Logger) waitConsumed(seq uint64) {
	deadline := time.Now().Add(2 * time.Second)
	spins := 0
	for l.consumed.Load() < seq && time.Now().Before(deadline) {
		if spins < spinIterations {
			spins++
			continue
		}
		runtime.Gosched()
	}
}

// consume is the single background goroutine that owns the fileWriter. It
// pops lines off the queue, formats them, and writes them out, backing off
// progressively when the queue runs dry so an idle logger burns no CPU.
func (l *Logger) consume() {
	defer l.wg.Done()

	spins := 0
	backoff := minBackoff

	for {
		line := l.queue.Pop()
		if line != nil {
			l.render(line)
			l.consumed.Add(1)
			spins = 0
			backoff = minBackoff
			continue
		}

		select {
		case <-l.done:
			l.drain()
			return
		default:
		}

		switch {
		case spins < spinIterations:
			spins++
		case spins < spinIterations+yieldIterations:
			spins++
			runtime.Gosched()
		default:
			time.Sleep(backoff)
			if backoff < maxBackoff {
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
		}
	}
}

// drain flushes every line still queued at shutdown time, so Close never
// silently discards work a producer believed had already been accepted.
func (l *Logger) drain() {
	for {
		line := l.queue.Pop()
		if line == nil {
			return
		}
		l.render(line)
		l.consumed.Add(1)
	}
}

// render formats a single LogLine to text and writes it through the
// fileWriter, mirroring to the console if enabled.
func (l *Logger) render(line *LogLine) {
	var buf bytes.Buffer
	l.formatPrefix(&buf, line)
	line.decodeText(&buf)
	buf.WriteByte('\n')

	rendered := buf.Bytes()
	l.writer.writeLine(rendered)
	l.writer.writeConsoleColored(line.severity, rendered)
}

// formatPrefix renders the fixed-shape prefix:
//
//	[YYYY-MM-DD-HHMMSS[-USEC][+OFFSET][-DSTx]][LEVEL][THREADID][file:function:line]
//
// one timestamp bracket carrying the optional microsecond, UTC offset, and
// DST suffixes under their respective feature flags, followed by severity,
// goroutine id, and call site.
func (l *Logger) formatPrefix(buf *bytes.Buffer, line *LogLine) {
	t := line.when
	fmt.Fprintf(buf, "[%04d-%02d-%02d-%02d%02d%02d", t.year(), t.month(), t.day(), t.hour(), t.min(), t.sec())
	if l.withMicros {
		fmt.Fprintf(buf, "-%d", t.usec())
	}
	if l.withGMTOffset {
		fmt.Fprintf(buf, "+%d", t.gmtOffset())
	}
	if l.withDST {
		dst := 0
		if t.dst() {
			dst = 1
		}
		fmt.Fprintf(buf, "-DST%d", dst)
	}
	fmt.Fprintf(buf, "][%s][%d][%s:%s:%d] ", line.severity.String(), line.goid, line.file, line.function, line.line)
}

// Close transitions the logger to DISABLED, stops accepting new lines,
// waits for the consumer to drain what's already queued, and closes the
// underlying file. Calling Close more than once is safe and a no-op after
// the first call.
func (l *Logger) Close() error {
	previous := lifecycleState(l.state.Swap(int32(stateDisabled)))
	if previous == stateDisabled {
		return nil
	}
	close(l.done)
	l.wg.Wait()
	stopClock()
	return l.writer.close()
}
