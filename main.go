package main

import (
	"fmt"
	"os"

	"github.com/temirov/mixrepos/cmd/cli"
)

const (
	exitErrorTemplateConstant = "Error: %v\n"
)

// main executes the mixrepos command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
