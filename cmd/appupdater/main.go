// Package main is the entry point for the appupdater CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appupdater/cli/internal/cmd"
	"github.com/appupdater/cli/internal/output"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Interrupts tear down the host: the update flow aborts without further prompts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer output.CloseLogFile()

	rootCmd := cmd.NewRootCmd()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cmd.ExitSuccess
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		// Only print if the command layer hasn't already shown it
		if !exitErr.Printed && exitErr.Code != cmd.ExitInterrupted {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitErr.Code
	}

	fmt.Fprintln(os.Stderr, err)
	return cmd.ExitCodeFromError(err)
}
