package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Finisher restores a terminal to its pre-UI state
type Finisher interface {
	Fini()
}

var crashTerminal atomic.Pointer[Finisher]

// SetCrashTerminal registers the screen to restore before a crash report is printed
func SetCrashTerminal(f Finisher) {
	if f == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&f)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if p := crashTerminal.Load(); p != nil {
		(*p).Fini()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mHATBAND CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

// Recover is deferred at the top of goroutines that are started elsewhere
// (errgroup workers, main)
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}
