// Package panics provides goroutine wrappers that recover panics and route
// them through logs before exiting, so a bug in one background loop
// (pruner, voting loop, per-masternode check) doesn't die silently.
package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/dashpay/mnengine/logs"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers a panic, if any, and initiates a clean shutdown.
func HandlePanic(log *logs.Logger, goroutineStackTrace []byte) {
	err := recover()
	if err == nil {
		return
	}
	reason := fmt.Sprintf("fatal error: %+v", err)
	exit(log, reason, debug.Stack(), goroutineStackTrace)
}

// GoroutineWrapperFunc returns a wrapper that launches its argument in a new
// goroutine, recovering and logging any panic instead of crashing the
// process silently.
func GoroutineWrapperFunc(log *logs.Logger) func(func()) {
	return func(f func()) {
		stackTrace := debug.Stack()
		go func() {
			defer HandlePanic(log, stackTrace)
			f()
		}()
	}
}

// Exit prints reason to log and initiates a clean shutdown.
func Exit(log *logs.Logger, reason string) {
	exit(log, reason, nil, nil)
}

func exit(log *logs.Logger, reason string, currentThreadStackTrace, goroutineStackTrace []byte) {
	done := make(chan struct{})
	go func() {
		log.Criticalf("exiting: %s", reason)
		if goroutineStackTrace != nil {
			log.Criticalf("goroutine stack trace: %s", goroutineStackTrace)
		}
		if currentThreadStackTrace != nil {
			log.Criticalf("stack trace: %s", currentThreadStackTrace)
		}
		log.Backend().Close()
		close(done)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "couldn't exit gracefully")
	case <-done:
	}
	os.Exit(1)
}
