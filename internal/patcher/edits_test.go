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

func TestRenamedPackageName(t *testing.T) {
	name, ok := renamedPackageName("main", false)
	assert.True(t, ok)
	assert.Equal(t, "main_compat", name)

	name, ok = renamedPackageName("sample_test", false)
	assert.True(t, ok)
	assert.Equal(t, "main", name)

	_, ok = renamedPackageName("sample", false)
	assert.False(t, ok)

	// A "main" produced by a previous externalSuffix rename is left alone:
	// renaming it again would corrupt the file the templater just made
	// linkable as a standalone binary.
	_, ok = renamedPackageName("main", true)
	assert.False(t, ok)
}

const mainFixture = `package main

import (
	"testing"
	"fmt"
)

func BenchmarkFib(b *testing.B) {
	fmt.Println("noop")
}
`

func TestRewriteFile_RenamesMainAndRedirectsTesting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_test.go")
	require.NoError(t, os.WriteFile(path, []byte(mainFixture), 0o644))

	changed, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	assert.True(t, changed)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "package main_compat")
	assert.Contains(t, content, `codspeedtesting "github.com/CodSpeedHQ/codspeed-go/runtime/testing"`)
	assert.NotContains(t, content, "\n\t\"testing\"\n")
}

const externalTestFixture = `package sample_test

import "testing"

func BenchmarkExternal(b *testing.B) {}
`

func TestRewriteFile_RenamesExternalTestPackage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_ext_test.go")
	require.NoError(t, os.WriteFile(path, []byte(externalTestFixture), 0o644))

	changed, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	assert.True(t, changed)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), "package main // "+externalTestMarker+"\n")
}

func TestRewriteFile_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_ext_test.go")
	require.NoError(t, os.WriteFile(path, []byte(externalTestFixture), 0o644))

	_, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	firstPass, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	assert.False(t, changed, "a second pass over already-patched output must be a no-op")

	secondPass, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(firstPass), string(secondPass))
	assert.Contains(t, string(secondPass), "package main // "+externalTestMarker)
	assert.NotContains(t, string(secondPass), "main_compat")
}

func TestRewriteFile_MainPackageIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_test.go")
	require.NoError(t, os.WriteFile(path, []byte(mainFixture), 0o644))

	_, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	firstPass, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	assert.False(t, changed)

	secondPass, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(firstPass), string(secondPass))
}

func TestRewriteFile_NoChangeWhenNothingMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.go")
	require.NoError(t, os.WriteFile(path, []byte("package sample\n\nfunc Noop() {}\n"), 0o644))

	changed, err := rewriteFile(path, DefaultRedirects)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestApplyEdits_ReverseOrderIndependence(t *testing.T) {
	src := []byte("aaaaBBBBcccc")
	edits := []edit{
		{Start: 0, End: 4, Text: "X"},
		{Start: 4, End: 8, Text: "Y"},
	}
	out := applyEdits(src, edits)
	assert.Equal(t, "XYcccc", string(out))
}
