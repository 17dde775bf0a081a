// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codspeed-go/runner/internal/cobraext"
	"github.com/codspeed-go/runner/internal/logger"
	"github.com/codspeed-go/runner/internal/version"
)

var commands = []*cobraext.Command{
	setupTestCommand(),
	setupVersionCommand(),
}

// RootCmd creates and returns the root cmd for codspeed-go.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "codspeed-go",
		Short:        "codspeed-go - CodSpeed benchmark driver for Go",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cobraext.ComposeCommandActions(cmd, args,
				processPersistentFlags,
				checkVersionUpdate,
			)
		},
	}
	rootCmd.PersistentFlags().BoolP(cobraext.VerboseFlagName, cobraext.VerboseFlagShorthand, false, cobraext.VerboseFlagDescription)
	rootCmd.PersistentFlags().StringP(cobraext.ChangeDirectoryFlagName, cobraext.ChangeDirectoryFlagShorthand, "", cobraext.ChangeDirectoryFlagDescription)
	rootCmd.Flags().BoolP("version", "V", false, "show application version and exit")
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		showVersion, err := cmd.Flags().GetBool("version")
		if err != nil {
			return cobraext.FlagParsingError(err, "version")
		}
		if showVersion {
			fmt.Println(version.Version())
			return nil
		}
		return cmd.Help()
	}

	for _, c := range commands {
		rootCmd.AddCommand(c.Command)
	}
	return rootCmd
}

func processPersistentFlags(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool(cobraext.VerboseFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.VerboseFlagName)
	}
	if verbose {
		logger.EnableDebugMode()
	}

	changeDirectory, err := cmd.Flags().GetString(cobraext.ChangeDirectoryFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.ChangeDirectoryFlagName)
	}
	if changeDirectory != "" {
		if err := os.Chdir(changeDirectory); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
		logger.Debugf("running command in directory %q", changeDirectory)
	}

	return nil
}

func checkVersionUpdate(cmd *cobra.Command, args []string) error {
	version.CheckUpdate(cmd.Context(), slog.Default())
	return nil
}
