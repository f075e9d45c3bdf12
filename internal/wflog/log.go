// Package wflog is the leveled logger used by the wfcheck CLI and library
// callers that want the same stderr-oriented, color-aware output the rest
// of the module's diagnostics use.
package wflog

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
)

// DebugOn and TraceOn gate DEBUG/TRACE output; both are off by default.
// TraceOn implies DebugOn.
var (
	DebugOn bool
	TraceOn bool
)

func init() {
	ansi.Color(isatty.IsTerminal(os.Stderr.Fd()))
}

// SetColor overrides color auto-detection, e.g. from a --color flag.
func SetColor(enabled bool) {
	ansi.Color(enabled)
}

// PrintfStdErr writes a plain (uncolored-template) message to stderr.
func PrintfStdErr(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// INFO writes an informational message to stderr.
func INFO(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, ansi.Sprintf("@G{INFO}  "+format+"\n", args...))
}

// WARN writes a warning message to stderr.
func WARN(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, ansi.Sprintf("@Y{WARN}  "+format+"\n", args...))
}

// DEBUG writes a debug message to stderr, only when DebugOn is set.
func DEBUG(format string, args ...interface{}) {
	if !DebugOn && !TraceOn {
		return
	}
	fmt.Fprint(os.Stderr, ansi.Sprintf("@B{DEBUG} "+format+"\n", args...))
}

// TRACE writes a trace message to stderr, only when TraceOn is set.
func TRACE(format string, args ...interface{}) {
	if !TraceOn {
		return
	}
	fmt.Fprint(os.Stderr, ansi.Sprintf("@b{TRACE} "+format+"\n", args...))
}
