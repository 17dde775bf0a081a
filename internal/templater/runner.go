// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package templater

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/codspeed-go/runner/internal/discovery"
)

// runnerFileName is the generated runner's source file, written alongside
// the relocated test files inside a benchmarked package's codspeed/
// subdirectory.
const runnerFileName = "runner.go"

var runnerTmpl = template.Must(template.New("runner").Parse(`// Code generated by codspeed-go. DO NOT EDIT.

package main

import (
	codspeedrunner "{{.RuntimePackage}}"
{{- if .ImportPath}}
	{{.ImportAlias}} "{{.ImportPath}}"
{{- end}}
)

func main() {
	codspeedrunner.Main([]codspeedrunner.Benchmark{
{{- range .Benchmarks}}
		{Name: "{{.Qualified}}", Func: {{.FuncRef}}},
{{- end}}
	})
}
`))

// runnerData is the template input for one benchmarked package's generated
// runner. ImportPath is empty for an external test package, whose
// relocated test files already sit next to the runner as package main; in
// that case benchmark functions are referenced directly, with no import.
type runnerData struct {
	RuntimePackage string
	ImportPath     string
	ImportAlias    string
	Benchmarks     []benchmarkRef
}

type benchmarkRef struct {
	Qualified string
	FuncRef   string
}

// buildRunnerData derives the template input from a discovered package's
// benchmarks, per the rule above.
func buildRunnerData(pkg discovery.Package, runtimePackage string) runnerData {
	data := runnerData{RuntimePackage: runtimePackage}

	if !pkg.IsExternalTest() && len(pkg.Benchmarks) > 0 {
		data.ImportPath = pkg.UnderlyingImportPath()
		data.ImportAlias = pkg.Benchmarks[0].Alias
	}

	for _, b := range pkg.Benchmarks {
		ref := b.Name
		if data.ImportPath != "" {
			ref = data.ImportAlias + "." + b.Name
		}
		data.Benchmarks = append(data.Benchmarks, benchmarkRef{Qualified: b.Qualified, FuncRef: ref})
	}

	return data
}

// renderRunner executes the runner template, normalizes its imports, and
// writes the result to runnerDir/runner.go, returning the written path.
func renderRunner(runnerDir string, data runnerData) (string, error) {
	var buf bytes.Buffer
	if err := runnerTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering runner template failed: %w", err)
	}

	path := filepath.Join(runnerDir, runnerFileName)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return "", fmt.Errorf("formatting generated runner %s failed: %w", path, err)
	}

	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return "", fmt.Errorf("writing generated runner %s failed: %w", path, err)
	}

	return path, nil
}
