// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package toolchain wraps subprocess invocations of the Go toolchain (list,
// get, mod tidy, build) behind a single helper, mirroring the
// exec.Command-plus-captured-stderr idiom used throughout the teacher
// repository's docker and kubectl clients.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/codspeed-go/runner/internal/logger"
)

// Result carries the captured output of a completed subprocess.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Error wraps a non-zero toolchain exit with its captured stderr.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("go %v failed: %s (stderr=%q)", e.Args, e.Err, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes `go <args...>` with the given working directory and
// additional environment variables appended to the current process
// environment, fully consuming stdout/stderr before returning.
func Run(ctx context.Context, dir string, env []string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("run command: %s (dir=%s)", cmd.String(), dir)
	if err := cmd.Run(); err != nil {
		return Result{}, &Error{Args: args, Stderr: stderr.String(), Err: err}
	}

	return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
