// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package templater

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetadata(t *testing.T) {
	dir := t.TempDir()

	err := writeMetadata(dir, Metadata{ProfileFolder: "/tmp/profile", RelativePackagePath: "pkg/sample"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, metadataFileName))
	require.NoError(t, err)

	var meta Metadata
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "/tmp/profile", meta.ProfileFolder)
	assert.Equal(t, "pkg/sample", meta.RelativePackagePath)
}
