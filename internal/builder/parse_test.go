// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildFailure_HarnessMismatch(t *testing.T) {
	stderr := "# example.com/sample\n" +
		"./fib_codspeed.go:12:5: cannot use b (variable of type *codspeed.B) as *\"testing\".B value in argument to helper\n"

	err := parseBuildFailure("example.com/sample", stderr)

	var harnessErr *UnsupportedTestHarnessError
	require.True(t, errors.As(err, &harnessErr))
	assert.Equal(t, "example.com/sample", harnessErr.Package)
	assert.Equal(t, "fib_test.go", harnessErr.File)
	assert.Equal(t, 12, harnessErr.Line)
	assert.Equal(t, "helper", harnessErr.Function)
}

func TestParseBuildFailure_GenericError(t *testing.T) {
	stderr := "# example.com/sample\n./runner.go:3:2: undefined: Foo\n"

	err := parseBuildFailure("example.com/sample", stderr)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "example.com/sample", buildErr.Package)
	assert.Contains(t, buildErr.Stderr, "undefined: Foo")
}
