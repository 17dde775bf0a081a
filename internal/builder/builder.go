// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package builder compiles a generated runner into a standalone benchmark
// binary, translating the compiler's own failure modes into the driver's
// typed error kinds.
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/codspeed-go/runner/internal/common"
	"github.com/codspeed-go/runner/internal/logger"
	"github.com/codspeed-go/runner/internal/toolchain"
)

// Options describes one package's build invocation.
type Options struct {
	// ModuleDir is the staged tree's root; the build runs with this as its
	// working directory.
	ModuleDir string
	// RunnerDir is the generated runner's directory, relative to ModuleDir.
	RunnerDir string
	// RunnerPath is the absolute path to the rendered runner.go.
	RunnerPath string
	// Package identifies the benchmarked package for error messages, when
	// the compiler's own "# <package>" header can't be recovered.
	Package string
	// RuntimeModule is the embedded timing runtime's module path, whose
	// version symbol is stamped via -ldflags.
	RuntimeModule string
	// Tag is the driver's own version tag, injected into the runtime's
	// version symbol so a benchmark binary reports the driver that built it.
	Tag string
}

// Result carries the built binary's location and basic build telemetry.
type Result struct {
	BinaryPath string
	Size       common.ByteSize
	Duration   time.Duration
}

// Build invokes the Go compiler against the generated runner, returning its
// binary path and size on success. On failure it returns either an
// *UnsupportedTestHarnessError (when stderr matches the known wrong-harness
// pattern) or a *BuildError wrapping the raw stderr.
func Build(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	binaryPath := binaryOutputPath(opts.RunnerPath)
	ldflags := fmt.Sprintf("-X %s.BuildVersion=%s", opts.RuntimeModule, opts.Tag)
	sourceArg := "./" + filepath.ToSlash(opts.RunnerDir)

	_, err := toolchain.Run(ctx, opts.ModuleDir, nil,
		"build", "-tags", "codspeed_trace", "-ldflags", ldflags, "-o", binaryPath, sourceArg)
	if err != nil {
		var toolchainErr *toolchain.Error
		if errors.As(err, &toolchainErr) {
			return nil, parseBuildFailure(opts.Package, toolchainErr.Stderr)
		}
		return nil, fmt.Errorf("building %s failed: %w", opts.Package, err)
	}

	info, err := os.Stat(binaryPath)
	if err != nil {
		return nil, fmt.Errorf("reading built binary %s failed: %w", binaryPath, err)
	}

	size := common.ByteSize(info.Size())
	duration := time.Since(start)
	logger.Debugf("built %s (%s) in %s", binaryPath, size, humanize.RelTime(start, start.Add(duration), "", ""))

	return &Result{BinaryPath: binaryPath, Size: size, Duration: duration}, nil
}

// binaryOutputPath replaces runnerPath's extension with the platform's
// binary extension ("" on most platforms, ".exe" on Windows).
func binaryOutputPath(runnerPath string) string {
	ext := filepath.Ext(runnerPath)
	base := strings.TrimSuffix(runnerPath, ext)
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
