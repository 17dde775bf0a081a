// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package orchestrator drives the full discover/template/build/run/
// aggregate pipeline for a single invocation of the benchmark driver.
package orchestrator

import (
	"io"

	"github.com/codspeed-go/runner/internal/discovery"
)

// Options configures one orchestrator run, assembled by cmd/test.go from
// flags and environment variables.
type Options struct {
	// ProjectDir is the working directory `go list` and the version
	// control root search run against.
	ProjectDir string
	// Selectors are package patterns, e.g. "./...". Defaults to ["./..."]
	// when empty.
	Selectors []string
	// BenchPattern is the -test.bench regular expression.
	BenchPattern string
	// BenchTime is the -test.benchtime duration spec.
	BenchTime string
	// DryRun builds every package's runner but does not execute it.
	DryRun bool
	// Strict rejects Benchmark* declarations whose harness parameter
	// doesn't match the expected shape, instead of accepting every one.
	Strict bool
	// LocalRuntimePath, when non-empty, replaces the fetched runtime
	// module with a local checkout via a go.mod replace directive.
	LocalRuntimePath string
	// ProfileFolder is the root the benchmark harness and the results
	// aggregator both read/write under (CODSPEED_PROFILE_FOLDER).
	ProfileFolder string
	// Out receives the per-package progress summary. Defaults to
	// io.Discard when nil.
	Out io.Writer
}

// packageOutcome records one package's pipeline result for the final
// summary table.
type packageOutcome struct {
	Package    string
	Benchmarks int
	Built      bool
	Ran        bool
	Err        error
}

func (o packageOutcome) status() string {
	switch {
	case o.Err == nil && o.Ran:
		return "ran"
	case o.Err == nil && o.Built:
		return "built (dry-run)"
	default:
		return "failed"
	}
}

// verifierFor returns the benchmark body verifier matching the Strict
// option.
func verifierFor(strict bool) discovery.BodyVerifier {
	if strict {
		return discovery.StrictVerifier
	}
	return discovery.NoopVerifier
}
