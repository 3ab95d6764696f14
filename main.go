package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/weagle/weagle/cmd/cli"
	"github.com/weagle/weagle/internal/execshell"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the weagle command-line application. Failures of wrapped
// docker invocations already streamed their output, so the process mirrors
// the child exit code without reprinting the failure.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		os.Exit(commandFailure.Result.ExitCode)
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(1)
}
