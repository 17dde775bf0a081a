// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codspeed-go/runner/internal/cobraext"
)

func TestSetupTestCommand_RegistersExpectedFlags(t *testing.T) {
	cmd := setupTestCommand()

	assert.Equal(t, cobraext.ContextPackage, cmd.Context())
	for _, flagName := range []string{
		cobraext.BenchFilterFlagName,
		cobraext.BenchTimeFlagName,
		cobraext.DryRunFlagName,
		cobraext.StrictFlagName,
		cobraext.LocalRuntimeFlagName,
	} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "expected flag %q to be registered", flagName)
	}

	assert.True(t, cmd.FParseErrWhitelist.UnknownFlags)
}

func TestSelectorsFromArgs_DropsFlagShapedTokens(t *testing.T) {
	selectors := selectorsFromArgs([]string{"./...", "-unknown", "./internal/..."})

	assert.Equal(t, []string{"./...", "./internal/..."}, selectors)
}
