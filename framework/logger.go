package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const debugTimeFormat = "15:04:05.000"

// Logger receives debug messages: the requests a step sends and the responses it gets back.
type Logger interface {
	Printf(message string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// NullLogger returns a Logger that drops everything.
func NullLogger() Logger { return discardLogger{} }

type prefixedLogger struct {
	target Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.target.Printf("%s%s", p.prefix, fmt.Sprintf(message, args...))
}

// LoggerWithPrefix returns a Logger that adds prefix to every message before passing it to target.
// It is used to tag each line of a run's debug output with the run ID.
func LoggerWithPrefix(target Logger, prefix string) Logger {
	if target == nil {
		return NullLogger()
	}
	return prefixedLogger{target: target, prefix: prefix}
}

// DebugEntry is one message held by a CapturingLogger.
type DebugEntry struct {
	Time    time.Time
	Message string
}

// DebugOutput is the debug output of a run, oldest first.
type DebugOutput []DebugEntry

// CapturingLogger holds a run's debug messages until the console decides whether to show them,
// which depends on how the run ends. It is safe for concurrent use.
type CapturingLogger struct {
	entries []DebugEntry
	mu      sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	entry := DebugEntry{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Output returns a copy of the messages captured so far.
func (l *CapturingLogger) Output() DebugOutput {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(DebugOutput(nil), l.entries...)
}

// Dump writes each entry as "<prefix>[hh:mm:ss.mmm] message". Lines after the first in a
// multi-line message, such as a plain-text response body, are written with prefix and indented
// to line up under the message.
func (output DebugOutput) Dump(dest io.Writer, prefix string) {
	for _, e := range output {
		stamp := "[" + e.Time.Format(debugTimeFormat) + "] "
		lines := strings.Split(strings.TrimRight(e.Message, "\n"), "\n")
		fmt.Fprintf(dest, "%s%s%s\n", prefix, stamp, lines[0])
		indent := strings.Repeat(" ", len(stamp))
		for _, line := range lines[1:] {
			fmt.Fprintf(dest, "%s%s%s\n", prefix, indent, line)
		}
	}
}
