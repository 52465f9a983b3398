// FILE: logtools/src/cmd/logtools/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Manages error messages respecting quiet mode. Entry output and command
// reports are not routed through it.
type OutputHandler struct {
	quiet  bool
	mu     sync.RWMutex
	stderr io.Writer
}

// Global output handler instance
var output *OutputHandler

// Initializes the global output handler
func InitOutputHandler(quiet bool) {
	output = &OutputHandler{
		quiet:  quiet,
		stderr: os.Stderr,
	}
}

// Writes to stderr if not in quiet mode
func (o *OutputHandler) Error(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

// Error writes through the global output handler
func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
