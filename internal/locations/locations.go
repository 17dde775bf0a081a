// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package locations manages base file and directory locations from within the codspeed-go config.
package locations

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const configDir = ".codspeed-go"

// LocationManager maintains an instance of a config path location.
type LocationManager struct {
	RootPath string
}

// NewLocationManager returns a new manager to track the configuration dir.
func NewLocationManager() (LocationManager, error) {
	cfg, err := ConfigurationDir()
	if err != nil {
		return LocationManager{}, errors.Wrap(err, "error getting config dir")
	}

	return LocationManager{cfg}, nil
}

// RootDir returns the configuration directory location.
func (loc LocationManager) RootDir() string {
	return loc.RootPath
}

// ConfigurationDir returns the configuration directory location.
func ConfigurationDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "reading home dir failed")
	}
	dir := filepath.Join(homeDir, configDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating config dir failed")
	}
	return dir, nil
}
