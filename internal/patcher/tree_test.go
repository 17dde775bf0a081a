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

func TestRewriteTree_SkipsVendorAndPatchesTheRest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "dep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "dep", "main_test.go"), []byte(externalTestFixture), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "sample_test.go"), []byte(externalTestFixture), 0o644))

	require.NoError(t, RewriteTree(root, DefaultRedirects))

	vendored, err := os.ReadFile(filepath.Join(root, "vendor", "dep", "main_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(vendored), "package sample_test", "vendor/ must be left untouched")

	patched, err := os.ReadFile(filepath.Join(root, "pkg", "sample_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(patched), "package main // "+externalTestMarker+"\n")
}

func TestCollectGoFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("not go"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "b.go"), []byte("package b\n"), 0o644))

	paths, err := collectGoFiles(root)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(root, "a.go"), paths[0])
}
