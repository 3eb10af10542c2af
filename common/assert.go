package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

// Assert panics with msg if condition is false. Used by the debug latch
// (readerWriterLatchDummy) to catch double lock/unlock, not at the public
// API, which reports failure via NONE/false per spec §7.
func Assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// DumpGoroutineStacks prints every goroutine's stack trace, for use from
// the buffer pool manager's debug diagnostics when EnableDebug is set.
//
// REFERENCES
//   - https://pkg.go.dev/runtime#Stack
//   - https://stackoverflow.com/questions/19094099/how-to-dump-goroutine-stacktraces
func DumpGoroutineStacks() {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			output.Stdoutl("=== stack-all   ", string(buf[:n]))
			return
		}
		buf = make([]byte, 2*len(buf))
	}
}
