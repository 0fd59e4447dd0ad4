// Package main is the entry point for the planforge CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"planforge/internal/app"
	"planforge/internal/cli"
	"planforge/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// Exit codes. A missing taskspec gets its own code so automation can
// tell "no work queued" from a real failure.
const (
	exitFailure          = 1
	exitTaskSpecNotFound = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, domain.ErrTaskSpecNotFound) {
			os.Exit(exitTaskSpecNotFound)
		}
		os.Exit(exitFailure)
	}
}

func run() error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer container.Close()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
