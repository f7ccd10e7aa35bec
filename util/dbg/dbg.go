// Package dbg carries per-instruction trace output. Traces go through glog:
// a build with the debug tag logs every trace, other builds only log them
// when glog verbosity is at least TraceLevel (-v=2).
package dbg

// DebugLogger is an interface that defines our debug logging functions.
// This allows us to have different implementations based on build tags.
type DebugLogger interface {
	Printf(format string, a ...interface{})
	Enabled() bool
}

// TraceLevel is the glog verbosity that enables traces in non-debug builds.
const TraceLevel = 2

// Global variable for our debug logger instance.
// This will be initialized by either debug-log.go or nodebug-log.go depending on build tags.
var debugLog DebugLogger

func Printf(format string, a ...interface{}) {
	debugLog.Printf(format, a...)
}

// Enabled reports whether traces are logged. Check it before building
// expensive trace arguments.
func Enabled() bool {
	return debugLog.Enabled()
}
