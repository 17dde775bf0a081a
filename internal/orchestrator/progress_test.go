// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package orchestrator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSummary_ListsEveryPackage(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, []packageOutcome{
		{Package: "example.com/a", Benchmarks: 2, Ran: true},
		{Package: "example.com/b", Benchmarks: 1, Err: errors.New("build failed")},
	})

	out := buf.String()
	assert.Contains(t, out, "example.com/a")
	assert.Contains(t, out, "example.com/b")
	assert.Contains(t, out, "build failed")
}
