// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package bench executes a built benchmark binary with the harness's
// selection flags, mirroring the teacher's split between an
// output-inheriting subprocess call and an output-capturing variant used
// by tests.
package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/codspeed-go/runner/internal/logger"
)

// Options configures one benchmark binary invocation.
type Options struct {
	// BinaryPath is the built binary's path, under ModuleDir's
	// <pkg>/codspeed/ subdirectory.
	BinaryPath string
	// ModuleDir is the staged module root the binary was built from (see
	// templater.Result.ModuleDir); benchmarks resolve asset paths relative
	// to it, not to the codspeed/ directory the binary actually lives in.
	ModuleDir string
	// Pattern is the benchmark-selection regular expression, passed as
	// -test.bench.
	Pattern string
	// BenchTime is the duration spec, e.g. "3s" or "1x", passed as
	// -test.benchtime.
	BenchTime string
}

// Error wraps a benchmark binary's non-zero exit with its captured stderr.
type Error struct {
	BinaryPath string
	Stderr     string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("running %s failed: %s (stderr=%q)", e.BinaryPath, e.Err, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes the binary with stdout/stderr inherited from the current
// process, for the common case where the harness's own output is what the
// user wants to see. Stderr is also captured so a failure carries it.
func Run(ctx context.Context, opts Options) error {
	cmd := command(ctx, opts)
	cmd.Stdout = os.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)

	if err := cmd.Run(); err != nil {
		return &Error{BinaryPath: opts.BinaryPath, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// Capture executes the binary and returns its captured stdout, for tests
// and callers that need to inspect the harness's output programmatically.
func Capture(ctx context.Context, opts Options) ([]byte, error) {
	cmd := command(ctx, opts)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &Error{BinaryPath: opts.BinaryPath, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

func command(ctx context.Context, opts Options) *exec.Cmd {
	args := []string{
		"-test.bench=" + opts.Pattern,
		"-test.benchtime=" + opts.BenchTime,
	}
	cmd := exec.CommandContext(ctx, opts.BinaryPath, args...)
	cmd.Dir = opts.ModuleDir
	logger.Debugf("run command: %s (dir=%s)", cmd.String(), cmd.Dir)
	return cmd
}
