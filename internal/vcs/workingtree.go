// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package vcs

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/codspeed-go/runner/internal/files"
	"github.com/codspeed-go/runner/internal/logger"
)

// WorkingTree is a disposable recursive copy of a version-controlled project
// root, staged once per run and shared across every benchmark package's
// pipeline step (see concurrency notes: staging is sequential, not
// per-package). Reset restores it to a clean state between packages so that
// repeated patcher invocations never compound their edits; Close resets it
// and removes it.
type WorkingTree struct {
	// Root is the original, unmodified version-control root.
	Root string
	// Staged is the disposable copy under which all rewriting happens.
	Staged string
}

// Stage copies root into a fresh temporary directory, preserving .git so the
// copy remains a valid working tree that git commands can operate on.
func Stage(root string) (*WorkingTree, error) {
	staged, err := os.MkdirTemp("", "codspeed-go-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory failed: %w", err)
	}

	if err := files.CopyWorkingTree(root, staged); err != nil {
		os.RemoveAll(staged)
		return nil, fmt.Errorf("staging working tree failed: %w", err)
	}

	return &WorkingTree{Root: root, Staged: staged}, nil
}

// Reset restores the staged tree to a clean state: `git reset --hard` plus a
// recursive clean of untracked files and directories, applied to submodules
// too. It runs on every exit path, including after a build/run failure, so
// that the next package's template step starts from pristine source.
func (w *WorkingTree) Reset() error {
	if err := w.runGit("reset", "--hard"); err != nil {
		return fmt.Errorf("resetting staged tree failed: %w", err)
	}
	if err := w.runGit("clean", "-fd", "--recurse-submodules"); err != nil {
		return fmt.Errorf("cleaning staged tree failed: %w", err)
	}
	if err := w.runGit("submodule", "foreach", "--recursive", "git reset --hard && git clean -fd"); err != nil {
		logger.Warnf("resetting submodules failed: %s", err)
	}
	return nil
}

// Close reverts the staged tree and removes the scratch directory entirely.
// A failed reset is logged but never masks the caller's primary error.
func (w *WorkingTree) Close() {
	if err := w.Reset(); err != nil {
		logger.Warnf("failed to roll back staged tree %s: %s", w.Staged, err)
	}
	if err := os.RemoveAll(w.Staged); err != nil {
		logger.Warnf("failed to remove scratch directory %s: %s", w.Staged, err)
	}
}

func (w *WorkingTree) runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = w.Staged
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if logger.IsDebugMode() {
		slog.Default().Debug("run command", slog.String("command", cmd.String()))
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %v failed (stderr=%q): %w", args, stderr.String(), err)
	}
	return nil
}

// PackageRelPath returns pkgDir (a directory under the original,
// unmodified Root, as reported by `go list`) expressed relative to Root.
// Callers join the result onto Staged to find the same package's
// directory in the scratch copy.
func (w *WorkingTree) PackageRelPath(pkgDir string) (string, error) {
	return filepath.Rel(w.Root, pkgDir)
}
