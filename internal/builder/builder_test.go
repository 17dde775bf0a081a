// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package builder

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryOutputPath(t *testing.T) {
	got := binaryOutputPath(filepath.Join("pkg", "sample", "codspeed", "runner.go"))
	want := filepath.Join("pkg", "sample", "codspeed", "runner")
	if runtime.GOOS == "windows" {
		want += ".exe"
	}
	assert.Equal(t, want, got)
}
