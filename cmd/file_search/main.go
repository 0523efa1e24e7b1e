package main

import (
	"fmt"
	"os"

	"github.com/gcbaptista/go-file-search/internal/cli"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "file-search"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := cli.NewRootCmd(programName, fmt.Sprintf("%s (build %s)", version, build))
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
