package monitor

import (
	"fmt"
	"sync"
	"time"
)

// DefaultLogCapacity bounds the log ring when no capacity is given.
const DefaultLogCapacity = 20

// Entry is one captured log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
}

// LogBuffer keeps the most recent N log entries, discarding the oldest
// on overflow. Safe for concurrent append and read.
type LogBuffer struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewLogBuffer creates a ring holding at most max entries.
func NewLogBuffer(max int) *LogBuffer {
	if max <= 0 {
		max = DefaultLogCapacity
	}
	return &LogBuffer{max: max}
}

// Append records a log line, evicting the oldest entry when full.
func (b *LogBuffer) Append(level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{Time: time.Now(), Level: level, Message: message})
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *LogBuffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Formatted renders entries as "[HH:MM:SS] LEVEL: message" lines.
// Styling by level is left to the caller's theme.
func (b *LogBuffer) Formatted() []string {
	entries := b.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("[%s] %s: %s", e.Time.Format("15:04:05"), e.Level, e.Message)
	}
	return out
}
