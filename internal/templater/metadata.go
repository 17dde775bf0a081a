// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package templater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// metadataFileName is the filename, at the staged tree's root, that the
// generated runner's embedded runtime reads on startup to find its own
// profile output location and its package's position in the tree.
const metadataFileName = "go-runner.metadata"

// Metadata is the staged-tree contract described in the external interfaces
// section: a small JSON file the runtime reads instead of requiring every
// generated runner to hardcode its own output paths.
type Metadata struct {
	ProfileFolder       string `json:"profile_folder"`
	RelativePackagePath string `json:"relative_package_path"`
}

// writeMetadata writes the metadata file at the staged tree's root.
func writeMetadata(stagedRoot string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s failed: %w", metadataFileName, err)
	}
	path := filepath.Join(stagedRoot, metadataFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s failed: %w", path, err)
	}
	return nil
}
