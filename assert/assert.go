// Package assert separates caller contract violations from recoverable
// errors. A failed check here means the caller passed something no correct
// program would pass, so the process goes down instead of limping on.
package assert

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Arg ...
func Arg(cond bool, msg string) {
	if !cond {
		panic("framealloc: invalid argument: " + msg)
	}
}

// Argf ...
func Argf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic("framealloc: invalid argument: " + fmt.Sprintf(format, args...))
	}
}

// Bug ...
func Bug(msg string) {
	panic("framealloc: bug: " + msg)
}

// Bugf ...
func Bugf(format string, args ...interface{}) {
	panic("framealloc: bug: " + fmt.Sprintf(format, args...))
}

// BugOn ...
func BugOn(cond bool, msg string) {
	if cond {
		Bug(msg)
	}
}

const warnBacktraceLen = 6

// WarnOn reports cond. When cond holds it writes msg and a short backtrace
// of the caller to stderr, without stopping the process.
func WarnOn(cond bool, msg string) bool {
	if cond {
		fmt.Fprintf(os.Stderr, "framealloc: warning: %s\n%s", msg, backtrace(2))
	}
	return cond
}

func backtrace(skip int) string {
	pcs := make([]uintptr, warnBacktraceLen)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "\tat %s (%s:%d)\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
