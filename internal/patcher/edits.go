// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package patcher

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strconv"
	"strings"
)

// edit replaces the half-open byte range [Start, End) of the source buffer
// with Text.
type edit struct {
	Start, End int
	Text       string
}

// rewriteFile parses path, computes the package-rename and import-redirect
// edits, applies them in a single pass, and writes the result back only if
// at least one edit fired. It reports whether the file was modified.
func rewriteFile(path string, redirects []Redirect) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return false, err
	}

	edits := computeEdits(fset, file, redirects)
	if len(edits) == 0 {
		return false, nil
	}

	patched := applyEdits(src, edits)

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, patched, info.Mode()); err != nil {
		return false, err
	}
	return true, nil
}

// computeEdits locates the package-declaration identifier and every import
// spec's path-literal range, and returns the edits those two rules produce.
// Edits are unordered on return; applyEdits sorts them before use.
func computeEdits(fset *token.FileSet, file *ast.File, redirects []Redirect) []edit {
	var edits []edit

	if renamed, ok := renamedPackageName(file.Name.Name, isMarkedExternalTest(fset, file)); ok {
		nameEnd := fset.Position(file.Name.End()).Offset
		edits = append(edits, edit{
			Start: fset.Position(file.Name.Pos()).Offset,
			End:   nameEnd,
			Text:  renamed,
		})
		if renamed == entryPointIdent {
			// Mark the rename so a later pass over this same file (the
			// round-trip case: templating the same package again after a
			// tree reset, or simply re-invoking the patcher) can tell this
			// "main" apart from a package that was genuinely declared
			// "package main" and still needs the "_compat" treatment below.
			edits = append(edits, edit{Start: nameEnd, End: nameEnd, Text: " // " + externalTestMarker})
		}
	}

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		for _, r := range redirects {
			if path != r.From {
				continue
			}
			start := imp.Path.Pos()
			if imp.Name != nil {
				start = imp.Name.Pos()
			}
			edits = append(edits, edit{
				Start: fset.Position(start).Offset,
				End:   fset.Position(imp.Path.End()).Offset,
				Text:  r.To,
			})
			break
		}
	}

	return edits
}

// externalTestMarker is the trailing package-line comment left behind by
// the externalSuffix->entryPointIdent rename. Its presence is what makes
// the rewrite idempotent: without it, a second pass over an already
// relocated external test file would see package "main" and rename it
// again to "main_compat", right after the templater made it linkable as a
// standalone binary under that exact name.
const externalTestMarker = "codspeed:external-test"

// renamedPackageName applies the package-rename rule in isolation, for
// testability independent of parsing. alreadyExternalTest reports whether
// name == entryPointIdent is itself the product of a previous
// externalSuffix rename (see externalTestMarker), in which case there is
// nothing left to do.
func renamedPackageName(name string, alreadyExternalTest bool) (string, bool) {
	switch {
	case name == entryPointIdent:
		if alreadyExternalTest {
			return "", false
		}
		return entryPointIdent + compatSuffix, true
	case strings.HasSuffix(name, externalSuffix):
		return entryPointIdent, true
	default:
		return "", false
	}
}

// isMarkedExternalTest reports whether file's package line already carries
// externalTestMarker, attached by a previous rewrite pass.
func isMarkedExternalTest(fset *token.FileSet, file *ast.File) bool {
	packageLine := fset.Position(file.Package).Line
	for _, group := range file.Comments {
		for _, c := range group.List {
			if fset.Position(c.Pos()).Line == packageLine && strings.Contains(c.Text, externalTestMarker) {
				return true
			}
		}
	}
	return false
}

// applyEdits sorts edits in descending order of Start (so that splicing one
// edit never invalidates the byte offsets of an edit yet to be applied) and
// returns the patched buffer.
func applyEdits(src []byte, edits []edit) []byte {
	sorted := append([]edit{}, edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	out := append([]byte{}, src...)
	for _, e := range sorted {
		var buf []byte
		buf = append(buf, out[:e.Start]...)
		buf = append(buf, []byte(e.Text)...)
		buf = append(buf, out[e.End:]...)
		out = buf
	}
	return out
}
