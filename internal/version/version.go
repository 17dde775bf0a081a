// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package version

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/codspeed-go/runner/internal/environment"
)

var (
	// BuildTime is the build time of the binary (set externally with ldflags).
	BuildTime = "unknown"

	// CommitHash is the Git hash of the branch, used for version purposes (set externally with ldflags).
	CommitHash = "undefined"

	// Tag describes the semver version of the application (set externally with ldflags).
	Tag string
)

// defaultRuntimePackage is the module path of the embedded timing runtime
// that benchmark binaries are linked against.
const defaultRuntimePackage = "github.com/CodSpeedHQ/codspeed-go/runtime"

// defaultRuntimeVersion is the version of the runtime module installed into
// staged trees, unless overridden.
const defaultRuntimeVersion = "latest"

var runtimeVersionEnv = environment.WithCodspeedPrefix("GO_PKG_VERSION")

// Set Tag to version stored in modinfo if it is not available from the builder.
func init() {
	if Tag != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Version != "(devel)" {
		Tag = info.Main.Version
	}
}

// BuildTimeFormatted method returns the build time preserving the RFC3339 format.
func BuildTimeFormatted() string {
	if BuildTime == "unknown" {
		return BuildTime
	}

	seconds, err := strconv.ParseInt(BuildTime, 10, 64)
	if err != nil {
		return "invalid"
	}
	return time.Unix(seconds, 0).Format(time.RFC3339)
}

// Version returns the human-readable version string printed by `codspeed-go version`
// and by the root command's -V flag. Aggregated result files carry Tag, not
// this string, as their creator version.
func Version() string {
	var sb strings.Builder
	sb.WriteString("codspeed-go ")
	if Tag != "" {
		sb.WriteString(Tag)
		sb.WriteString(" ")
	}
	sb.WriteString(fmt.Sprintf("version-hash %s (build time: %s)", CommitHash, BuildTimeFormatted()))
	return sb.String()
}

// RuntimePackage returns the module path of the embedded timing runtime.
func RuntimePackage() string {
	return defaultRuntimePackage
}

// RuntimeVersion returns the version of the runtime module to install into
// staged trees, honoring the CODSPEED_GO_PKG_VERSION override.
func RuntimeVersion() string {
	if v, ok := os.LookupEnv(runtimeVersionEnv); ok && v != "" {
		return v
	}
	return defaultRuntimeVersion
}
