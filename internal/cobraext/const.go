// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cobraext

// Flag names and descriptions used by CLI commands.
const (
	VerboseFlagName        = "verbose"
	VerboseFlagShorthand   = "v"
	VerboseFlagDescription = "verbose mode"

	ChangeDirectoryFlagName        = "change-directory"
	ChangeDirectoryFlagShorthand   = "C"
	ChangeDirectoryFlagDescription = "run as if started in this directory instead of the current one"

	BenchFilterFlagName        = "bench"
	BenchFilterFlagDescription = "regular expression selecting which benchmarks to run"

	BenchTimeFlagName        = "benchtime"
	BenchTimeFlagDescription = "minimum run time per benchmark, as <n>s or <n>x"

	DryRunFlagName        = "dry-run"
	DryRunFlagDescription = "build the benchmark runners but do not execute them"

	StrictFlagName        = "strict"
	StrictFlagDescription = "reject benchmark declarations whose signature doesn't match the expected harness shape"

	LocalRuntimeFlagName        = "local-runtime"
	LocalRuntimeFlagDescription = "path to a local checkout of the runtime package, used via a go.mod replace directive instead of fetching a release"
)
