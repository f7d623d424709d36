// clock.go: log-line timestamp capture
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// lineTime is an immutable snapshot of the wall clock at LogLine
// construction. Unlike the original C++ LogLineTime, it stores only the
// instant itself (unix seconds + nanoseconds) rather than a fully
// broken-down struct tm: the broken-down fields (year, month, day, ...) are
// computed lazily at format time on the consumer goroutine. This removes
// a localtime() equivalent from the producer's hot path, per the
// "reasonable optimization" the spec calls out for a from-scratch
// rewrite — the captured instant is still immutable and still taken at
// construction, so every invariant of the original is preserved.
type lineTime struct {
	t time.Time
}

var (
	clockOnce  sync.Once
	sharedTime *timecache.TimeCache
)

// now captures the current instant using a cached clock shared across all
// producers, avoiding a time.Now() syscall on every LogLine construction.
func now() lineTime {
	clockOnce.Do(func() {
		sharedTime = timecache.NewWithResolution(time.Microsecond)
	})
	return lineTime{t: sharedTime.CachedTime()}
}

func stopClock() {
	if sharedTime != nil {
		sharedTime.Stop()
	}
}

func (lt lineTime) usec() int        { return lt.t.Nanosecond() / 1000 }
func (lt lineTime) local() time.Time { return lt.t.Local() }

func (lt lineTime) year() int  { return lt.local().Year() }
func (lt lineTime) month() int { return int(lt.local().Month()) }
func (lt lineTime) day() int   { return lt.local().Day() }
func (lt lineTime) hour() int  { return lt.local().Hour() }
func (lt lineTime) min() int   { return lt.local().Minute() }
func (lt lineTime) sec() int   { return lt.local().Second() }

// gmtOffset returns the UTC offset of the local zone at the captured
// instant, in seconds east of UTC.
func (lt lineTime) gmtOffset() int {
	_, offset := lt.local().Zone()
	return offset
}

// dst reports whether the captured instant falls within daylight saving
// time for the local zone, by comparing its offset against the offset six
// months away (which, for any zone that observes DST, falls in the
// opposite season).
func (lt lineTime) dst() bool {
	l := lt.local()
	_, offset := l.Zone()
	_, janOffset := l.AddDate(0, 6, 0).Zone()
	return offset != janOffset && offset > janOffset
}

