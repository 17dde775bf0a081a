// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package orchestrator

import (
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/table"
)

// renderSummary prints a pass/fail table, one row per processed package,
// colored green for success and red for failure.
func renderSummary(out io.Writer, outcomes []packageOutcome) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Package", "Benchmarks", "Status"})

	for _, o := range outcomes {
		status := o.status()
		if o.Err != nil {
			status = color.RedString("%s: %s", status, o.Err)
		} else {
			status = color.GreenString("%s", status)
		}
		t.AppendRow(table.Row{o.Package, o.Benchmarks, status})
	}

	t.Render()
}
