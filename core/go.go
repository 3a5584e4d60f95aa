package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash is the unified panic handler for background goroutines.
// It prints the panic value and stack trace to stderr and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "crash detected: %v\n", r)
	fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword for background workers so a
// crash is reported before the process dies
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
