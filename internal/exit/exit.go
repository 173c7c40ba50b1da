package exit

import (
	"fmt"
	"io"
	"os"
)

// Result carries the message, destination, and code used to terminate the
// process.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to its destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success returns a result that prints message to stdout and exits with 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error returns a result that prints message to stderr and exits with 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf is Error with formatting.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
