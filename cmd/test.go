// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codspeed-go/runner/internal/cobraext"
	"github.com/codspeed-go/runner/internal/common"
	"github.com/codspeed-go/runner/internal/environment"
	"github.com/codspeed-go/runner/internal/logger"
	"github.com/codspeed-go/runner/internal/orchestrator"
)

const (
	testLongDescription = `Use this command to discover Benchmark* functions in the current module, build them against the CodSpeed benchmark runtime, run them, and write aggregated timing results.

Trailing positional arguments select which packages to benchmark (Go package patterns, e.g. "./..."); it defaults to the whole module.`

	defaultBenchPattern = "."
	defaultBenchTime    = "3s"
)

var profileFolderEnv = environment.WithCodspeedPrefix("PROFILE_FOLDER")

func setupTestCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "test [packages]",
		Short: "Run benchmarks through the CodSpeed runtime",
		Long:  testLongDescription,
		RunE:  testCommandAction,
	}

	// Tolerate unrecognized flags rather than aborting: §6 of the external
	// interfaces requires "unrecognized flags ... produce a warning and are
	// ignored" rather than a hard parse failure.
	cmd.FParseErrWhitelist.UnknownFlags = true

	cmd.Flags().String(cobraext.BenchFilterFlagName, defaultBenchPattern, cobraext.BenchFilterFlagDescription)
	cmd.Flags().String(cobraext.BenchTimeFlagName, defaultBenchTime, cobraext.BenchTimeFlagDescription)
	cmd.Flags().Bool(cobraext.DryRunFlagName, false, cobraext.DryRunFlagDescription)
	cmd.Flags().Bool(cobraext.StrictFlagName, false, cobraext.StrictFlagDescription)
	cmd.Flags().String(cobraext.LocalRuntimeFlagName, "", cobraext.LocalRuntimeFlagDescription)

	return cobraext.NewCommand(cmd, cobraext.ContextPackage)
}

func testCommandAction(cmd *cobra.Command, args []string) error {
	cwd, err := cobraext.Getwd(cmd)
	if err != nil {
		return err
	}

	benchPattern, err := cmd.Flags().GetString(cobraext.BenchFilterFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.BenchFilterFlagName)
	}
	benchTime, err := cmd.Flags().GetString(cobraext.BenchTimeFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.BenchTimeFlagName)
	}
	dryRun, err := cmd.Flags().GetBool(cobraext.DryRunFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.DryRunFlagName)
	}
	strict, err := cmd.Flags().GetBool(cobraext.StrictFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.StrictFlagName)
	}
	localRuntime, err := cmd.Flags().GetString(cobraext.LocalRuntimeFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.LocalRuntimeFlagName)
	}

	selectors := selectorsFromArgs(args)
	common.TrimStringSlice(selectors)

	profileFolder := os.Getenv(profileFolderEnv)
	if profileFolder == "" {
		return fmt.Errorf("%s is not set", profileFolderEnv)
	}

	return orchestrator.Run(cmd.Context(), orchestrator.Options{
		ProjectDir:       cwd,
		Selectors:        selectors,
		BenchPattern:     benchPattern,
		BenchTime:        benchTime,
		DryRun:           dryRun,
		Strict:           strict,
		LocalRuntimePath: localRuntime,
		ProfileFolder:    profileFolder,
		Out:              cmd.OutOrStdout(),
	})
}

// selectorsFromArgs splits trailing positionals from unrecognized
// flag-shaped tokens that FParseErrWhitelist.UnknownFlags let through,
// warning about the latter instead of treating them as package selectors.
func selectorsFromArgs(args []string) []string {
	var selectors []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			logger.Warnf("ignoring unrecognized flag %q", a)
			continue
		}
		selectors = append(selectors, a)
	}
	return selectors
}
