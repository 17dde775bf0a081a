// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package patcher performs mechanical, byte-accurate rewrites of staged
// source files: it re-roots imports at the custom runtime's package paths
// and renames package declarations so that otherwise-unbuildable layouts
// (a benchmark package's own "package main", or an external "_test"
// package) become buildable as an ordinary library or linkable binary.
package patcher

// entryPointIdent and compatSuffix implement the package-rename rule: a
// "main" package is renamed so it becomes importable, using the same
// "_compat" convention the runtime reserves for this purpose.
const (
	entryPointIdent = "main"
	compatSuffix    = "_compat"
	externalSuffix  = "_test"
)

// Redirect rewrites an import whose quoted path exactly equals From to the
// literal text in To, which may itself carry a local alias ahead of its own
// quoted path (e.g. `codspeedtesting "github.com/.../runtime/testing"`).
type Redirect struct {
	From string
	To   string
}

// DefaultRedirects is the standard testing package and its documented
// subpackages, plus the third-party assertion libraries the runtime wraps,
// each mapped to a sibling package under the runtime's import root.
var DefaultRedirects = []Redirect{
	{From: "testing", To: `codspeedtesting "github.com/CodSpeedHQ/codspeed-go/runtime/testing"`},
	{From: "testing/fstest", To: `codspeedfstest "github.com/CodSpeedHQ/codspeed-go/runtime/testing/fstest"`},
	{From: "testing/iotest", To: `codspeediotest "github.com/CodSpeedHQ/codspeed-go/runtime/testing/iotest"`},
	{From: "testing/quick", To: `codspeedquick "github.com/CodSpeedHQ/codspeed-go/runtime/testing/quick"`},
	{From: "testing/slogtest", To: `codspeedslogtest "github.com/CodSpeedHQ/codspeed-go/runtime/testing/slogtest"`},
	{From: "testing/synctest", To: `codspeedsynctest "github.com/CodSpeedHQ/codspeed-go/runtime/testing/synctest"`},
	{From: "github.com/stretchr/testify/assert", To: `assert "github.com/CodSpeedHQ/codspeed-go/runtime/testify/assert"`},
	{From: "github.com/stretchr/testify/require", To: `require "github.com/CodSpeedHQ/codspeed-go/runtime/testify/require"`},
}
