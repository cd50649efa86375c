// Package logging writes process logs and structured trace events to a
// shared log file. The console UI owns the terminal, so nothing here
// ever writes to stdout or stderr except as a last resort.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const defaultLogFile = "scrape-console.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logger       = zerolog.Nop()
	mirror       func(level, msg string)
)

// SetMirror installs a callback that receives every non-trace log line,
// so the UI can show recent activity without tailing the log file. A
// nil callback removes the mirror.
func SetMirror(fn func(level, msg string)) {
	mu.Lock()
	mirror = fn
	mu.Unlock()
}

func mirrorTo(level, msg string) {
	mu.Lock()
	fn := mirror
	mu.Unlock()
	if fn != nil {
		fn(level, msg)
	}
}

// Configure sets the log destination. Empty values fall back to the
// default path; missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		path = defaultLogFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
			path = defaultLogFile
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	logger = zerolog.New(f).With().Timestamp().Logger()
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Error records an error. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Error().Err(err).Msg("")
	mirrorTo("ERROR", err.Error())
}

// Warn records a warning message.
func Warn(msg string) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Warn().Msg(msg)
	mirrorTo("WARN", msg)
}

// Info records an informational message.
func Info(msg string) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Info().Msg(msg)
	mirrorTo("INFO", msg)
}

// Trace appends a structured event entry when tracing is enabled.
func Trace(event string, payload map[string]interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := logger
	mu.Unlock()
	if !enabled {
		return
	}
	l.Trace().Fields(payload).Str("event", event).Msg(event)
}
