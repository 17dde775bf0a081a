// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package vcs locates a project's version-control root and stages disposable
// working trees that the patcher can rewrite and roll back.
package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// gitWorktree decodes the contents of a ".git" file left behind by a git
// worktree checkout, e.g. "gitdir: /path/to/repo/.git/worktrees/main".
type gitWorktree struct {
	GitDir string `yaml:"gitdir"`
}

func isGitWorktree(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var worktree gitWorktree
	dec := yaml.NewDecoder(bytes.NewBuffer(content))
	dec.KnownFields(true)

	if err := dec.Decode(&worktree); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

// FindRepositoryRootDirectory walks up from the current working directory
// looking for a ".git" marker, returning its containing directory. A ".git"
// file (rather than directory) indicates a linked worktree or submodule; its
// contents must decode as a single "gitdir:" entry, and the directory
// containing the file is returned. The gitdir pointer is not followed and
// the search does not continue to parent directories.
func FindRepositoryRootDirectory() (string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("locating working directory failed: %w", err)
	}
	return findRepositoryRootFrom(workDir)
}

// FindRepositoryRootFrom is FindRepositoryRootDirectory starting from an
// arbitrary directory rather than the process's current working directory.
// The orchestrator uses this to locate the version-control root enclosing
// the project directory, falling back to dir itself when no ".git" marker
// is found.
func FindRepositoryRootFrom(dir string) (string, error) {
	root, err := findRepositoryRootFrom(dir)
	if errors.Is(err, os.ErrNotExist) {
		return dir, nil
	}
	return root, err
}

func findRepositoryRootFrom(workDir string) (string, error) {
	// VolumeName() will return something like "C:" on Windows, and "" elsewhere.
	// rootDir will be something like "C:\" on Windows, and "/" everywhere else.
	rootDir := filepath.VolumeName(workDir) + string(filepath.Separator)

	dir := workDir
	for dir != "." {
		path := filepath.Join(dir, ".git")
		fileInfo, err := os.Stat(path)
		if err == nil && !fileInfo.IsDir() {
			if errWorktree := isGitWorktree(path); errWorktree != nil {
				return "", errWorktree
			}
			return dir, nil
		}
		if err == nil && fileInfo.IsDir() {
			return dir, nil
		}

		if dir == rootDir {
			break
		}
		dir = filepath.Dir(dir)
	}

	return "", os.ErrNotExist
}
