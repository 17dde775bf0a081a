// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bench

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script-based fixtures require a POSIX shell")
	}
	path := filepath.Join(dir, "runner")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// nestedCodspeedDir simulates a realistically nested package, e.g.
// <moduleRoot>/internal/discovery/codspeed, rather than a package sitting
// directly under the module root: a single-segment layout would make
// filepath.Dir(filepath.Dir(binary)) land on moduleRoot by coincidence and
// mask a broken working-directory computation.
func nestedCodspeedDir(t *testing.T, moduleRoot string) string {
	t.Helper()
	codspeedDir := filepath.Join(moduleRoot, "internal", "discovery", "codspeed")
	require.NoError(t, os.MkdirAll(codspeedDir, 0o755))
	return codspeedDir
}

func TestCapture_ReturnsStdoutAndWorkingDirectory(t *testing.T) {
	moduleRoot := t.TempDir()
	codspeedDir := nestedCodspeedDir(t, moduleRoot)

	script := writeScript(t, codspeedDir, `echo "args: $@"; pwd`)

	out, err := Capture(context.Background(), Options{BinaryPath: script, ModuleDir: moduleRoot, Pattern: ".", BenchTime: "1x"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "-test.bench=. -test.benchtime=1x")

	resolvedRoot, err := filepath.EvalSymlinks(moduleRoot)
	require.NoError(t, err)
	assert.Contains(t, string(out), resolvedRoot)
}

func TestCapture_NonZeroExitReturnsError(t *testing.T) {
	moduleRoot := t.TempDir()
	codspeedDir := nestedCodspeedDir(t, moduleRoot)

	script := writeScript(t, codspeedDir, `echo "boom" 1>&2; exit 1`)

	_, err := Capture(context.Background(), Options{BinaryPath: script, ModuleDir: moduleRoot, Pattern: ".", BenchTime: "1x"})
	require.Error(t, err)

	var benchErr *Error
	require.True(t, errors.As(err, &benchErr))
	assert.Contains(t, benchErr.Stderr, "boom")
}
