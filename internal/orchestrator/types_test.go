// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package orchestrator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageOutcome_Status(t *testing.T) {
	assert.Equal(t, "ran", packageOutcome{Ran: true}.status())
	assert.Equal(t, "built (dry-run)", packageOutcome{Built: true}.status())
	assert.Equal(t, "failed", packageOutcome{Err: errors.New("boom")}.status())
	assert.Equal(t, "failed", packageOutcome{}.status())
}

func TestVerifierFor_ReturnsAVerifierForBothModes(t *testing.T) {
	assert.NotNil(t, verifierFor(true))
	assert.NotNil(t, verifierFor(false))
}
