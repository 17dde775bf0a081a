// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package builder

import "fmt"

// UnsupportedTestHarnessError is raised when the compiler rejects a call
// that passes the embedded runtime's *codspeed.B to a function (Function)
// that still expects the standard library's *testing.B, typically a helper
// declared in a package the import redirects did not cover.
type UnsupportedTestHarnessError struct {
	Package  string
	File     string
	Line     int
	Function string
}

func (e *UnsupportedTestHarnessError) Error() string {
	return fmt.Sprintf("%s: %s:%d: %s does not accept the benchmark runtime's harness type (expects *testing.B)",
		e.Package, e.File, e.Line, e.Function)
}

// BuildError wraps any other non-zero compiler exit, carrying its stderr
// for the caller to log or surface.
type BuildError struct {
	Package string
	Stderr  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %s failed: %s", e.Package, e.Stderr)
}
