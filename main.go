// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"

	"github.com/codspeed-go/runner/cmd"
	"github.com/codspeed-go/runner/internal/logger"
	"github.com/codspeed-go/runner/internal/signal"
)

func main() {
	logger.SetupLogger()

	ctx, stop := signal.Enable(context.Background(), slog.Default())
	defer stop()

	rootCmd := cmd.RootCmd()
	rootCmd.SilenceErrors = true // Silence errors so we handle them here.
	err := rootCmd.ExecuteContext(ctx)
	if errIsInterruption(err) {
		rootCmd.Println("interrupted")
		os.Exit(130)
	}
	if err != nil {
		rootCmd.PrintErrln(rootCmd.ErrPrefix(), err)
		os.Exit(1)
	}
}

func errIsInterruption(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) && (*exitError).ProcessState.ExitCode() == 130 { // 130 -> subcommand killed by sigint
		return true
	}

	return false
}
