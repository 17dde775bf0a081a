// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package environment centralizes the CODSPEED_ environment variable namespace.
package environment

const (
	codspeedEnvPrefix = "CODSPEED_"
)

// WithCodspeedPrefix prefixes variable with the CODSPEED_ namespace, e.g.
// "PROFILE_FOLDER" becomes "CODSPEED_PROFILE_FOLDER".
func WithCodspeedPrefix(variable string) string {
	return codspeedEnvPrefix + variable
}
