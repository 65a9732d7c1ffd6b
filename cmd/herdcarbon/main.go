// Command herdcarbon calculates dairy herd emissions, economics and green
// financing from the command line.
package main

import (
	"errors"
	"os"

	"github.com/rshade/herdcarbon/internal/cli"
	"github.com/rshade/herdcarbon/pkg/version"
)

func main() {
	os.Exit(extractExitCode(run()))
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetVersionTemplate(version.Name + " " + version.String() + "\n")
	return root.Execute()
}

// extractExitCode maps a command error to the process exit code. Commands
// that need a specific code return a *cli.ExitError; anything else is 1.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
