package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is ISO-8601 with second precision and no zone.
const TimestampLayout = "2006-01-02T15:04:05"

// Entry is one immutable activity line.
type Entry struct {
	At      time.Time
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.At.Format(TimestampLayout), e.Message)
}

// ActivityLog is an append-only sequence of entries.
type ActivityLog struct {
	entries []Entry
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

func (l *ActivityLog) Append(e Entry) {
	l.entries = append(l.entries, e)
}

func (l *ActivityLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy in insertion order.
func (l *ActivityLog) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clone returns an independent copy of the log.
func (l *ActivityLog) Clone() *ActivityLog {
	return &ActivityLog{entries: l.Entries()}
}

// Lines renders every entry as "<timestamp>: <message>".
func (l *ActivityLog) Lines() []string {
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, e.String())
	}
	return lines
}
