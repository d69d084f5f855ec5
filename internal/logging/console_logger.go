package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer // nil means os.Stderr at write time
	styles  Styles
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		styles:  NewStyles(os.Stderr, ColorEnabled(os.Stderr)),
	}
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w. Prefixes
// are coloured only when w is a terminal (see ColorEnabled).
func NewConsoleLoggerWithWriter(verbose bool, w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     w,
		styles:  NewStyles(w, ColorEnabled(w)),
	}
}

func (l *ConsoleLogger) write(prefix string, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.out
	if w == nil {
		w = os.Stderr
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fmt.Fprint(w, prefix+msg+"\n")
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.styles.Paint(l.styles.Muted, "[VERBOSE]")+" ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Warn logs conditions the user should act on.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write(l.styles.Paint(l.styles.Warning, "[WARN]")+" ", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.styles.Paint(l.styles.Error, "[ERROR]")+" ", format, args)
}
