// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package patcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RunnerSubdir is the name of the subdirectory, local to a benchmarked
// package, that holds the generated runner source and (for external test
// packages) the relocated, relinked test files.
const RunnerSubdir = "codspeed"

// Target describes the single package being prepared for benchmarking: its
// directory in the staged tree, and the test file names (not full paths)
// belonging to its internal and external test partitions.
type Target struct {
	Dir               string
	InternalTestFiles []string
	ExternalTestFiles []string
}

// Relocate renames *_test.go files to *_codspeed.go so the ordinary build
// step (not the test step) compiles them, and, for external test files,
// moves the renamed files into the package's codspeed/ subdirectory so the
// rewritten "main" declaration they now carry (via RewriteTree) can be
// linked standalone without colliding with the package under test. It
// returns the codspeed/ directory, which is always created: it is also
// where the generated runner source is rendered.
func Relocate(target Target) (string, error) {
	runnerDir := filepath.Join(target.Dir, RunnerSubdir)
	if err := os.MkdirAll(runnerDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s failed: %w", runnerDir, err)
	}

	for _, f := range target.InternalTestFiles {
		if err := renameInPlace(target.Dir, f); err != nil {
			return "", err
		}
	}

	for _, f := range target.ExternalTestFiles {
		if err := renameAndMove(target.Dir, runnerDir, f); err != nil {
			return "", err
		}
	}

	return runnerDir, nil
}

func renameInPlace(dir, name string) error {
	codspeedName := codspeedFileName(name)
	if codspeedName == name {
		return nil
	}
	return os.Rename(filepath.Join(dir, name), filepath.Join(dir, codspeedName))
}

func renameAndMove(dir, destDir, name string) error {
	return os.Rename(filepath.Join(dir, name), filepath.Join(destDir, codspeedFileName(name)))
}

// codspeedFileName turns "foo_test.go" into "foo_codspeed.go"; names that
// don't carry the "_test" suffix before the extension pass through
// unchanged.
func codspeedFileName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	const suffix = "_test"
	if !strings.HasSuffix(base, suffix) {
		return name
	}
	return strings.TrimSuffix(base, suffix) + "_codspeed" + ext
}
