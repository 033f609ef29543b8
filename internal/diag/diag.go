// Package diag writes diagnostic lines to the error stream.
package diag

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Logger prints forced messages as plain lines and debug messages with a
// "[DEBUG hh:mm:ss]" header when debug output is enabled.
type Logger struct {
	out   *log.Logger
	debug bool
	quiet bool
	now   func() time.Time
}

// New creates a logger writing to w.
// Quiet suppresses forced lines; debug overrides quiet.
func New(w io.Writer, debug, quiet bool) *Logger {
	return &Logger{
		out:   log.New(w, "", 0),
		debug: debug,
		quiet: quiet,
		now:   time.Now,
	}
}

// Discard returns a logger that prints nothing.
func Discard() *Logger {
	return New(io.Discard, false, true)
}

// DebugEnabled reports whether Debugf produces output.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// Printf writes a forced message.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet && !l.debug {
		return
	}
	l.out.Print(fmt.Sprintf(format, args...))
}

// Debugf writes a timestamped message when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.out.Printf("[DEBUG %s] %s", l.now().Format("15:04:05"), fmt.Sprintf(format, args...))
}
