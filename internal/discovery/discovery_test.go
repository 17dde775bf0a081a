// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTestFile = `package sample_test

import "testing"

func BenchmarkZeta(b *testing.B) {}
func BenchmarkAlpha(b *testing.B) {}
func helperNotABenchmark(b *testing.B) {}
func TestSomething(t *testing.T) {}
`

func TestExtractBenchmarks_SortedByNameAndFiltered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample_test.go"), []byte(sampleTestFile), 0o644))

	pkg := Package{
		Dir:          dir,
		ImportPath:   "example.com/sample.test]",
		XTestGoFiles: []string{"sample_test.go"},
	}

	benches, err := extractBenchmarks(pkg, NoopVerifier)
	require.NoError(t, err)
	require.Len(t, benches, 2)
	assert.Equal(t, "BenchmarkAlpha", benches[0].Name)
	assert.Equal(t, "BenchmarkZeta", benches[1].Name)

	for _, b := range benches {
		assert.Equal(t, pkg.ImportPath, b.Package)
		assert.Equal(t, "sample_test.go", b.File)
		assert.Contains(t, b.Qualified, b.Alias+".")
	}

	assert.Equal(t, benches[0].Hash, benches[1].Hash, "benchmarks from the same package share a hash")
}

func TestExtractBenchmarks_AllFilesFailToParse(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken_test.go"), []byte("not valid go <<<"), 0o644))

	pkg := Package{
		Dir:         dir,
		ImportPath:  "example.com/broken.test]",
		TestGoFiles: []string{"broken_test.go"},
	}

	_, err := extractBenchmarks(pkg, NoopVerifier)
	assert.Error(t, err)
}

func TestIsBenchmarkCandidate(t *testing.T) {
	assert.True(t, Package{ImportPath: "example.com/foo [example.com/foo.test]"}.IsBenchmarkCandidate())
	assert.False(t, Package{ImportPath: "example.com/foo"}.IsBenchmarkCandidate())
}

func TestHasTestFile(t *testing.T) {
	assert.True(t, hasTestFile(Package{TestGoFiles: []string{"foo_test.go"}}))
	assert.True(t, hasTestFile(Package{XTestGoFiles: []string{"foo_test.go"}}))
	assert.False(t, hasTestFile(Package{TestGoFiles: []string{"foo.go"}}))
}

func TestBenchmarkAliasIsStable(t *testing.T) {
	hash := hashImportPath("example.com/sample")
	assert.Equal(t, benchmarkAlias("BenchmarkFib", hash), benchmarkAlias("BenchmarkFib", hash))
	assert.NotEqual(t, hashImportPath("example.com/sample"), hashImportPath("example.com/other"))
}
