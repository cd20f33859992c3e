package main

import (
	"fmt"
	"os"

	"github.com/temirov/ghpr/cmd/cli"
	"github.com/temirov/ghpr/internal/ui"
)

const (
	exitErrorTemplateConstant = "%v\n"
	exitFailureCodeConstant   = 1
)

// main executes the ghpr command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		if !ui.IsReported(executionError) {
			fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		}
		os.Exit(exitFailureCodeConstant)
	}
}
