// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package templater turns one discovered benchmark package into a buildable
// runner inside a shared scratch working tree: it writes the runtime's
// metadata contract, installs the embedded timing runtime, rewrites the
// staged tree's imports and package declarations, relocates the target's
// test files out of the test partition, and renders the generated runner
// source that ties them together.
package templater

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/codspeed-go/runner/internal/discovery"
	"github.com/codspeed-go/runner/internal/patcher"
	"github.com/codspeed-go/runner/internal/vcs"
)

// Options configures one package's templating pass. Redirects defaults to
// patcher.DefaultRedirects when nil.
type Options struct {
	ProfileFolder    string
	RuntimeModule    string
	RuntimeVersion   string
	LocalRuntimePath string
	Redirects        []patcher.Redirect
}

// Result is what the builder and bench runner need to compile and execute
// one package's generated runner.
type Result struct {
	// ModuleDir is the staged tree's root, the working directory for the
	// build invocation.
	ModuleDir string
	// RunnerDir is the package-relative codspeed/ subdirectory containing
	// the generated runner source (and, for external tests, the relocated
	// test files it calls into directly).
	RunnerDir string
	// RunnerPath is the absolute path to the rendered runner.go.
	RunnerPath string
}

// Prepare runs the full per-package templating pass against an
// already-staged working tree. The tree must be reset by the caller (see
// vcs.WorkingTree.Reset) before the next package is prepared: every step
// here mutates the tree in place and nothing here reverts it.
func Prepare(ctx context.Context, tree *vcs.WorkingTree, pkg discovery.Package, opts Options) (*Result, error) {
	relPkgDir, err := tree.PackageRelPath(pkg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s relative to %s failed: %w", pkg.Dir, tree.Root, err)
	}
	stagedPkgDir := filepath.Join(tree.Staged, relPkgDir)

	meta := Metadata{ProfileFolder: opts.ProfileFolder, RelativePackagePath: relPkgDir}
	if err := writeMetadata(tree.Staged, meta); err != nil {
		return nil, err
	}

	if err := installRuntime(ctx, tree.Staged, opts); err != nil {
		return nil, err
	}

	redirects := opts.Redirects
	if redirects == nil {
		redirects = patcher.DefaultRedirects
	}
	if err := patcher.RewriteTree(tree.Staged, redirects); err != nil {
		return nil, fmt.Errorf("patching staged tree failed: %w", err)
	}

	target := patcher.Target{Dir: stagedPkgDir}
	if pkg.IsExternalTest() {
		target.ExternalTestFiles = testFileNames(pkg.GoFiles)
	} else {
		target.InternalTestFiles = testFileNames(append(append([]string{}, pkg.TestGoFiles...), pkg.XTestGoFiles...))
	}

	runnerDir, err := patcher.Relocate(target)
	if err != nil {
		return nil, fmt.Errorf("relocating test files for %s failed: %w", pkg.ImportPath, err)
	}

	data := buildRunnerData(pkg, opts.RuntimeModule)
	runnerPath, err := renderRunner(runnerDir, data)
	if err != nil {
		return nil, err
	}

	relRunnerDir, err := filepath.Rel(tree.Staged, runnerDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s relative to %s failed: %w", runnerDir, tree.Staged, err)
	}

	return &Result{
		ModuleDir:  tree.Staged,
		RunnerDir:  relRunnerDir,
		RunnerPath: runnerPath,
	}, nil
}

// testFileNames filters names down to the _test.go partition the patcher
// expects (go list's GoFiles partition for an external test package also
// contains any non-test helper files compiled into the test binary).
func testFileNames(names []string) []string {
	var out []string
	for _, n := range names {
		if discovery.IsTestFile(n) {
			out = append(out, n)
		}
	}
	return out
}
