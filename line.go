// line.go: log-line encoder
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ignis

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"
	"strconv"
)

// Tag bytes identifying the type of an encoded streamed value. This is the
// closed enumeration from the wire format; it is private to ignis and must
// stay stable within a single process, but need not be stable across
// processes or versions.
const (
	tagByte    uint8 = 0
	tagString  uint8 = 1 // copied, owned string
	tagInt32   uint8 = 2
	tagInt64   uint8 = 3
	tagUint32  uint8 = 4
	tagUint64  uint8 = 5
	tagFloat64 uint8 = 6
	tagLiteral uint8 = 7 // borrowed string literal
)

// inlineCapacity is the size of the inline portion of a LogLine's payload
// buffer, taken from the original's
// `256 - 2*sizeof(size_t) - sizeof(heap_buffer) - 8` sizing rationale.
// The Go struct also carries the used counter, the heap slice header and
// the typed prefix fields, so a LogLine as a whole is larger than 256
// bytes.
const inlineCapacity = 240

const (
	heapInitialCapacity = 512
)

// LogLine is a self-contained encoded record. newLogLine allocates the
// LogLine itself; its payload lives in the inline array and is moved to a
// separately allocated heap buffer only if it overflows the inline
// capacity.
//
// A LogLine is built by a single producer goroutine via Submit and the
// chained Stream* methods, then handed by value-move (Go: by pointer
// transfer through the queue) to the consumer, which decodes and discards
// it. It must not be retained or reused after Commit.
type LogLine struct {
	inline [inlineCapacity]byte
	heap   []byte
	used   int

	severity Severity
	file     string
	function string
	line     int
	goid     uint64
	when     lineTime
}

// newLogLine constructs a LogLine carrying the call-site metadata fixed
// prefix required by the wire format: timestamp, goroutine id, file,
// function, line, severity. These fields are stored positionally as
// struct fields rather than encoded into the byte buffer — an
// implementation choice the spec explicitly allows ("read positionally by
// the decoder and never inspected through tagged dispatch"); keeping them
// as typed Go fields instead of a hand-rolled positional byte layout
// avoids unsafe reinterpretation for no behavioral difference.
func newLogLine(level Severity, file, function string, line int) *LogLine {
	return &LogLine{
		severity: level,
		file:     file,
		function: function,
		line:     line,
		goid:     goroutineID(),
		when:     now(),
	}
}

func (l *LogLine) buf() []byte {
	if l.heap != nil {
		return l.heap
	}
	return l.inline[:]
}

// grow ensures at least n additional bytes are available after used,
// promoting from inline to heap (or doubling an existing heap buffer) as
// needed. The inline contents are copied exactly once, at first
// promotion.
func (l *LogLine) grow(n int) {
	need := l.used + n
	cur := len(l.buf())
	if need <= cur {
		return
	}
	if l.heap == nil {
		newCap := heapInitialCapacity
		if need > newCap {
			newCap = need
		}
		newBuf := make([]byte, newCap)
		copy(newBuf, l.inline[:l.used])
		l.heap = newBuf
		return
	}
	newCap := 2 * cur
	if need > newCap {
		newCap = need
	}
	newBuf := make([]byte, newCap)
	copy(newBuf, l.heap[:l.used])
	l.heap = newBuf
}

func (l *LogLine) appendTag(tag uint8) {
	l.grow(1)
	l.buf()[l.used] = tag
	l.used++
}

func (l *LogLine) appendRaw(p []byte) {
	l.grow(len(p))
	copy(l.buf()[l.used:], p)
	l.used += len(p)
}

func (l *LogLine) appendLenPrefixed(s string) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	l.grow(4 + len(s))
	b := l.buf()
	copy(b[l.used:], lenBuf[:])
	l.used += 4
	copy(b[l.used:], s)
	l.used += len(s)
}

// Byte streams a single byte-sized character value.
func (l *LogLine) Byte(v byte) *LogLine {
	l.appendTag(tagByte)
	l.grow(1)
	l.buf()[l.used] = v
	l.used++
	return l
}

// Str streams an owned, dynamically-sized string. The bytes are copied
// into the LogLine's own buffer immediately, so the caller's string may be
// freely reused or discarded afterwards.
func (l *LogLine) Str(v string) *LogLine {
	l.appendTag(tagString)
	l.appendLenPrefixed(v)
	return l
}

// Lit streams a string literal — conventionally a compile-time constant.
// ignis has no way to enforce static lifetime as the original C++ does by
// convention; Lit exists to preserve the wire format's semantic
// distinction between "caller-owned, must copy" and "static, safe to
// borrow" values, and to keep call sites expressive (`.Lit("component=")`
// reads as a constant, `.Str(dynamicName)` reads as owned data).
func (l *LogLine) Lit(v string) *LogLine {
	l.appendTag(tagLiteral)
	l.appendLenPrefixed(v)
	return l
}

// Int32 streams a signed 32-bit integer.
func (l *LogLine) Int32(v int32) *LogLine {
	l.appendTag(tagInt32)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	l.appendRaw(b[:])
	return l
}

// Int64 streams a signed 64-bit integer.
func (l *LogLine) Int64(v int64) *LogLine {
	l.appendTag(tagInt64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	l.appendRaw(b[:])
	return l
}

// Uint32 streams an unsigned 32-bit integer.
func (l *LogLine) Uint32(v uint32) *LogLine {
	l.appendTag(tagUint32)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	l.appendRaw(b[:])
	return l
}

// Uint64 streams an unsigned 64-bit integer.
func (l *LogLine) Uint64(v uint64) *LogLine {
	l.appendTag(tagUint64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	l.appendRaw(b[:])
	return l
}

// Float64 streams a double-precision float.
func (l *LogLine) Float64(v float64) *LogLine {
	l.appendTag(tagFloat64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	l.appendRaw(b[:])
	return l
}

// decodeText renders the tagged value stream (everything streamed via
// Byte/Str/Int32/.../Lit) as text, in streaming order, writing into buf.
// An unrecognized tag byte aborts decoding of the remaining record and
// appends a broken-record marker, per the spec's error-handling design.
func (l *LogLine) decodeText(buf *bytes.Buffer) {
	data := l.buf()[:l.used]
	i := 0
	for i < len(data) {
		tag := data[i]
		i++
		switch tag {
		case tagByte:
			if i+1 > len(data) {
				goto broken
			}
			buf.WriteByte(data[i])
			i++
		case tagString, tagLiteral:
			if i+4 > len(data) {
				goto broken
			}
			n := int(binary.LittleEndian.Uint32(data[i : i+4]))
			i += 4
			if i+n > len(data) {
				goto broken
			}
			buf.Write(data[i : i+n])
			i += n
		case tagInt32:
			if i+4 > len(data) {
				goto broken
			}
			v := int32(binary.LittleEndian.Uint32(data[i : i+4]))
			buf.WriteString(strconv.FormatInt(int64(v), 10))
			i += 4
		case tagInt64:
			if i+8 > len(data) {
				goto broken
			}
			v := int64(binary.LittleEndian.Uint64(data[i : i+8]))
			buf.WriteString(strconv.FormatInt(v, 10))
			i += 8
		case tagUint32:
			if i+4 > len(data) {
				goto broken
			}
			v := binary.LittleEndian.Uint32(data[i : i+4])
			buf.WriteString(strconv.FormatUint(uint64(v), 10))
			i += 4
		case tagUint64:
			if i+8 > len(data) {
				goto broken
			}
			v := binary.LittleEndian.Uint64(data[i : i+8])
			buf.WriteString(strconv.FormatUint(v, 10))
			i += 8
		case tagFloat64:
			if i+8 > len(data) {
				goto broken
			}
			bits := binary.LittleEndian.Uint64(data[i : i+8])
			buf.WriteString(strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64))
			i += 8
		default:
			goto broken
		}
	}
	return

broken:
	buf.WriteString("<broken-record>")
}

// goroutineID extracts the numeric id of the calling goroutine by parsing
// the header line of a minimal runtime.Stack() trace ("goroutine 123
// [running]:"). This is the common idiom logging libraries reach for in
// the absence of a public runtime.Goid(): it is used only to populate an
// informational field on the hot path, never for correctness, so the
// parsing cost (one small stack trace per LogLine) is an acceptable
// trade-off against depending on //go:linkname tricks.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if len(b) <= len(prefix) || string(b[:len(prefix)]) != prefix {
		return 0
	}
	b = b[len(prefix):]
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
