// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/codspeed-go/runner/internal/bench"
	"github.com/codspeed-go/runner/internal/builder"
	"github.com/codspeed-go/runner/internal/discovery"
	"github.com/codspeed-go/runner/internal/logger"
	"github.com/codspeed-go/runner/internal/multierror"
	"github.com/codspeed-go/runner/internal/results"
	"github.com/codspeed-go/runner/internal/templater"
	"github.com/codspeed-go/runner/internal/vcs"
	"github.com/codspeed-go/runner/internal/version"
)

const creatorName = "codspeed-go"

// Run discovers benchmark packages under opts.ProjectDir and drives each
// one through template → build → run, continuing past per-package
// failures (see spec §7's error policy), then aggregates raw results into
// per-pid files unless DryRun is set. It returns a non-nil error if
// discovery, locating the version control root, staging the scratch tree
// or aggregation failed, or if one or more packages failed; callers that
// want a zero exit code regardless of per-package failures should inspect
// the returned multierror.Error rather than treat any error as fatal.
func Run(ctx context.Context, opts Options) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	selectors := opts.Selectors
	if len(selectors) == 0 {
		selectors = []string{"./..."}
	}

	packages, err := discovery.Discover(ctx, discovery.Options{
		ProjectDir: opts.ProjectDir,
		Selectors:  selectors,
		Verify:     verifierFor(opts.Strict),
	})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if len(packages) == 0 {
		logger.Info("no benchmarks found")
		return nil
	}

	root, err := vcs.FindRepositoryRootFrom(opts.ProjectDir)
	if err != nil {
		return fmt.Errorf("locating the version control root of %s failed: %w", opts.ProjectDir, err)
	}

	tree, err := vcs.Stage(root)
	if err != nil {
		return fmt.Errorf("staging a scratch working tree failed: %w", err)
	}
	defer tree.Close()

	var errs multierror.Error
	outcomes := make([]packageOutcome, 0, len(packages))

	for _, pkg := range packages {
		outcome := processPackage(ctx, tree, pkg, opts)
		outcomes = append(outcomes, outcome)
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pkg.ImportPath, outcome.Err))
			logger.Warnf("%s: %s", pkg.ImportPath, outcome.Err)
		}
		if err := tree.Reset(); err != nil {
			logger.Warnf("resetting staged tree between packages failed: %s", err)
		}
	}

	renderSummary(out, outcomes)

	if !opts.DryRun {
		if err := results.Aggregate(opts.ProfileFolder, creatorName, version.Tag); err != nil {
			errs = append(errs, fmt.Errorf("aggregation failed: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs.Unique()
	}
	return nil
}

// processPackage runs one package through template → build → (run), never
// panicking or returning early on a pipeline-stage error: the result is
// always returned so the caller can record it and keep going.
func processPackage(ctx context.Context, tree *vcs.WorkingTree, pkg discovery.Package, opts Options) packageOutcome {
	outcome := packageOutcome{Package: pkg.ImportPath, Benchmarks: len(pkg.Benchmarks)}

	templated, err := templater.Prepare(ctx, tree, pkg, templater.Options{
		ProfileFolder:    opts.ProfileFolder,
		RuntimeModule:    version.RuntimePackage(),
		RuntimeVersion:   version.RuntimeVersion(),
		LocalRuntimePath: opts.LocalRuntimePath,
	})
	if err != nil {
		outcome.Err = fmt.Errorf("templating failed: %w", err)
		return outcome
	}

	built, err := builder.Build(ctx, builder.Options{
		ModuleDir:     templated.ModuleDir,
		RunnerDir:     templated.RunnerDir,
		RunnerPath:    templated.RunnerPath,
		Package:       pkg.ImportPath,
		RuntimeModule: version.RuntimePackage(),
		Tag:           version.Tag,
	})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Built = true

	if opts.DryRun {
		return outcome
	}

	if err := bench.Run(ctx, bench.Options{
		BinaryPath: built.BinaryPath,
		ModuleDir:  templated.ModuleDir,
		Pattern:    opts.BenchPattern,
		BenchTime:  opts.BenchTime,
	}); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Ran = true

	return outcome
}
