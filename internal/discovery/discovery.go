// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package discovery

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"hash/fnv"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/codspeed-go/runner/internal/logger"
)

const benchmarkPrefix = "Benchmark"

// BodyVerifier inspects a discovered benchmark's declaration and decides
// whether its use of the harness parameter is supported. The strictness of
// this check is left to callers (see StrictVerifier, NoopVerifier): the
// specification treats body validation as an optional pre-filter.
type BodyVerifier func(decl *ast.FuncDecl) error

// Options configures a discovery run.
type Options struct {
	// ProjectDir is the working directory for the `go list` invocation.
	ProjectDir string
	// Selectors are package patterns, e.g. "./...".
	Selectors []string
	// Verify is applied to every candidate benchmark declaration. A nil
	// Verify is equivalent to NoopVerifier.
	Verify BodyVerifier
}

// Discover runs the full discovery protocol described in the component
// design: list test-bearing packages, filter to benchmark candidates,
// extract Benchmark* functions, and return them in deterministic order.
func Discover(ctx context.Context, opts Options) ([]Package, error) {
	verify := opts.Verify
	if verify == nil {
		verify = NoopVerifier
	}

	all, err := listPackages(ctx, opts.ProjectDir, opts.Selectors)
	if err != nil {
		return nil, err
	}

	var candidates []Package
	for _, pkg := range all {
		if !pkg.IsBenchmarkCandidate() {
			continue
		}
		if !hasTestFile(pkg) {
			continue
		}
		benches, err := extractBenchmarks(pkg, verify)
		if err != nil {
			logger.Warnf("skipping package %s: %s", pkg.ImportPath, err)
			continue
		}
		if len(benches) == 0 {
			logger.Infof("package %s has no Benchmark* functions, skipping", pkg.ImportPath)
			continue
		}
		pkg.Benchmarks = benches
		candidates = append(candidates, pkg)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ImportPath < candidates[j].ImportPath
	})

	return candidates, nil
}

// testFiles returns the partition of pkg's file list that the specification
// treats as "the test-file partition" for benchmark discovery purposes. A
// synthesized external test package (Name ending in "_test") carries its
// test files in GoFiles; every other package carries them split across
// TestGoFiles and XTestGoFiles.
func testFiles(pkg Package) []string {
	if pkg.IsExternalTest() {
		return pkg.GoFiles
	}
	return append(append([]string{}, pkg.TestGoFiles...), pkg.XTestGoFiles...)
}

func hasTestFile(pkg Package) bool {
	for _, f := range testFiles(pkg) {
		if IsTestFile(f) {
			return true
		}
	}
	return false
}

// IsTestFile reports whether name carries the "_test" suffix before its
// extension. Exported so the templater can partition a package's test
// files the same way discovery does when handing them to the patcher.
func IsTestFile(name string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return ext != "" && strings.HasSuffix(strings.TrimSuffix(base, ext), "_test")
}

// extractBenchmarks parses every test file belonging to pkg (internal and
// external) and collects top-level Benchmark* function declarations,
// sorted by file name then by function name. A file that fails to parse is
// skipped with a warning; the package itself is rejected only if every file
// fails to parse.
func extractBenchmarks(pkg Package, verify BodyVerifier) ([]Benchmark, error) {
	files := append([]string{}, testFiles(pkg)...)
	sort.Strings(files)

	hash := hashImportPath(pkg.ImportPath)
	moduleRoot := pkg.Dir
	if pkg.Module != nil && pkg.Module.Dir != "" {
		moduleRoot = pkg.Module.Dir
	}

	var benches []Benchmark
	var parsedAny bool
	for _, f := range files {
		if !IsTestFile(f) {
			continue
		}
		path := filepath.Join(pkg.Dir, f)
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			logger.Warnf("failed to parse %s: %s", path, err)
			continue
		}
		parsedAny = true

		var names []string
		for _, decl := range node.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil {
				continue
			}
			if !strings.HasPrefix(fn.Name.Name, benchmarkPrefix) {
				continue
			}
			if err := verify(fn); err != nil {
				logger.Warnf("%s: %s: %s", path, fn.Name.Name, err)
				continue
			}
			names = append(names, fn.Name.Name)
		}
		sort.Strings(names)

		relFile := f
		if rel, err := filepath.Rel(moduleRoot, path); err == nil {
			relFile = rel
		}

		for _, name := range names {
			alias := benchmarkAlias(name, hash)
			benches = append(benches, Benchmark{
				Name:      name,
				File:      relFile,
				Package:   pkg.ImportPath,
				Hash:      hash,
				Alias:     alias,
				Qualified: alias + "." + name,
			})
		}
	}

	if !parsedAny && len(files) > 0 {
		return nil, &ParseError{Package: pkg.ImportPath}
	}

	return benches, nil
}

// ParseError reports that every test file belonging to a candidate package
// failed to parse, so the package itself was rejected.
type ParseError struct {
	Package string
}

func (e *ParseError) Error() string {
	return "every test file in " + e.Package + " failed to parse"
}

// hashImportPath computes a deterministic, non-cryptographic 64-bit hash of
// a package import path. It need not be stable across process
// implementations, only within a single run.
func hashImportPath(importPath string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(importPath))
	return h.Sum64()
}

// benchmarkAlias builds the "<lowercased-name>_<hash>" alias of a
// benchmark (see Benchmark.Alias for how the generated runner uses it).
func benchmarkAlias(name string, hash uint64) string {
	return strings.ToLower(name) + "_" + strconv.FormatUint(hash, 16)
}
