// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package patcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("package sample\n"), 0o644))
}

func TestRelocate_InternalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "sample_test.go"))

	runnerDir, err := Relocate(Target{
		Dir:               dir,
		InternalTestFiles: []string{"sample_test.go"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, RunnerSubdir), runnerDir)

	assert.FileExists(t, filepath.Join(dir, "sample_codspeed.go"))
	assert.NoFileExists(t, filepath.Join(dir, "sample_test.go"))
	assert.DirExists(t, runnerDir)
}

func TestRelocate_ExternalMovesIntoCodspeedDir(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "sample_test.go"))
	writeFixture(t, filepath.Join(dir, "sample_ext_test.go"))

	runnerDir, err := Relocate(Target{
		Dir:               dir,
		InternalTestFiles: []string{"sample_test.go"},
		ExternalTestFiles: []string{"sample_ext_test.go"},
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "sample_codspeed.go"))
	assert.FileExists(t, filepath.Join(runnerDir, "sample_ext_codspeed.go"))
	assert.NoFileExists(t, filepath.Join(dir, "sample_ext_test.go"))
}

func TestCodspeedFileName(t *testing.T) {
	assert.Equal(t, "foo_codspeed.go", codspeedFileName("foo_test.go"))
	assert.Equal(t, "foo.go", codspeedFileName("foo.go"))
}
