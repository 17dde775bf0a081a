// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package builder

import (
	"regexp"
	"strconv"
	"strings"
)

// packageHeaderPattern matches the "# <package>" line the compiler prints
// before a block of errors for that package.
var packageHeaderPattern = regexp.MustCompile(`^# (.+)$`)

// harnessErrorPattern matches the specific "wrong harness type" compiler
// error the embedded runtime's substitution for *testing.B produces when a
// benchmark still expects the standard library's type.
var harnessErrorPattern = regexp.MustCompile(
	`^\./(.+)_codspeed(\.[a-zA-Z0-9]+):(\d+):(\d+): cannot use .+ \(variable of type \*codspeed\.B\) as \*"testing"\.B value in argument to (\S+)$`,
)

// parseBuildFailure scans compiler stderr for the known "unsupported test
// harness" paragraph shape. If found, it returns a typed error carrying the
// original (pre-relocation) source file name; otherwise it returns a
// generic BuildError with the full stderr attached.
func parseBuildFailure(pkg, stderr string) error {
	var currentPackage string
	for _, line := range strings.Split(stderr, "\n") {
		if m := packageHeaderPattern.FindStringSubmatch(line); m != nil {
			currentPackage = m[1]
			continue
		}

		m := harnessErrorPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		file, ext, lineNo, function := m[1], m[2], m[3], m[4]
		n, err := strconv.Atoi(lineNo)
		if err != nil {
			continue
		}

		errPkg := currentPackage
		if errPkg == "" {
			errPkg = pkg
		}

		return &UnsupportedTestHarnessError{
			Package:  errPkg,
			File:     file + "_test" + ext,
			Line:     n,
			Function: function,
		}
	}

	return &BuildError{Package: pkg, Stderr: stderr}
}
