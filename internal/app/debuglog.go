package app

import (
	"fmt"
	"time"
)

// DefaultDebugLogSize bounds the in-memory debug log.
const DefaultDebugLogSize = 200

// DebugLog is a fixed-size ring of timestamped diagnostic lines.
type DebugLog struct {
	buf  []string
	next int
	full bool
}

// NewDebugLog creates a log holding at most size lines.
func NewDebugLog(size int) *DebugLog {
	if size <= 0 {
		size = DefaultDebugLogSize
	}
	return &DebugLog{buf: make([]string, size)}
}

// Appendf formats a line, stores it and returns it.
func (l *DebugLog) Appendf(now time.Time, format string, args ...any) string {
	line := fmt.Sprintf("[%s] %s", now.Format("15:04:05"), fmt.Sprintf(format, args...))
	l.buf[l.next] = line
	l.next = (l.next + 1) % len(l.buf)
	if l.next == 0 {
		l.full = true
	}
	return line
}

// Entries returns the stored lines, oldest first.
func (l *DebugLog) Entries() []string {
	if !l.full {
		return append([]string(nil), l.buf[:l.next]...)
	}
	out := make([]string, 0, len(l.buf))
	out = append(out, l.buf[l.next:]...)
	return append(out, l.buf[:l.next]...)
}
