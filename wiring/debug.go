package wiring

import "fmt"

// DebugWriter is a function type for writing diagnostic messages
type DebugWriter func(string)

// debugPrintln is the global diagnostic sink (no-op by default).
// Invalid-argument reports go through it; failure to log is never
// itself an error.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter sets the platform-specific diagnostic sink.
// This allows applications to redirect wiring diagnostics to their own
// logger. Passing nil restores the no-op sink.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// debugf formats a diagnostic message and hands it to the sink.
func debugf(format string, args ...interface{}) {
	debugPrintln(fmt.Sprintf(format, args...))
}
