// Package debug provides conditional debug logging for glossgraph.
//
// Debug logging is enabled by setting the GLOSSGRAPH_DEBUG environment
// variable. A value of "1" writes to stderr; any other value is taken as a
// file path, which keeps the terminal UI clean:
//
//	GLOSSGRAPH_DEBUG=/tmp/glossgraph.log glossgraph
//
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	file    *os.File
)

func init() {
	v := os.Getenv("GLOSSGRAPH_DEBUG")
	if v == "" || v == "0" {
		return
	}
	if v == "1" || v == "true" {
		SetOutput(os.Stderr)
		return
	}
	f, err := os.OpenFile(v, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		SetOutput(os.Stderr)
		Log("cannot open debug log %s: %v", v, err)
		return
	}
	file = f
	SetOutput(f)
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.DebugLevel,
		Prefix:          "glossgraph",
	})
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput enables debug logging to w. A nil writer disables it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		enabled, logger = false, nil
		return
	}
	enabled, logger = true, newLogger(w)
}

// Close releases the debug log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file, enabled, logger = nil, false, nil
	return err
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if l := current(); l != nil {
		l.Debug(fmt.Sprintf(format, args...))
	}
}

// With writes a structured debug message with key/value pairs.
func With(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	if l := current(); l != nil {
		l.Debug(name, "took", d)
	}
}

// LogEnterExit logs entry and exit with timing:
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	l := current()
	if l == nil {
		return func() {}
	}
	l.Debug("-> " + name)
	start := time.Now()
	return func() {
		l.Debug("<- "+name, "took", time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if l := current(); l != nil {
		l.Debug(fmt.Sprintf("%s: %T = %+v", name, v, v))
	}
}

// Section logs a section header.
func Section(name string) {
	if l := current(); l != nil {
		l.Debug("=== " + name + " ===")
	}
}
