package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores an external resource (terminal screen) before the process dies
type Finalizer interface {
	Fini()
}

var (
	crashMu        sync.Mutex
	crashFinalizer Finalizer
)

// RegisterCrashFinalizer sets the resource cleaned up by HandleCrash
// Pass nil to clear
func RegisterCrashFinalizer(f Finalizer) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashFinalizer = f
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	f := crashFinalizer
	crashMu.Unlock()
	if f != nil {
		f.Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())

	os.Exit(1)
}
