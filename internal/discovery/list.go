// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codspeed-go/runner/internal/toolchain"
)

// listPackages invokes `go list -test -json <selectors...>` against dir and
// parses the concatenated-object stream it prints on success.
func listPackages(ctx context.Context, dir string, selectors []string) ([]Package, error) {
	args := append([]string{"list", "-test", "-json"}, selectors...)
	result, err := toolchain.Run(ctx, dir, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("go list failed: %w", err)
	}

	return decodePackageStream(result.Stdout)
}

// decodePackageStream parses the output of `go list -json`, which is a
// concatenation of top-level JSON objects without an enclosing array. It
// first tries decoding the stream object-by-object (the common case); if
// that fails on the very first object it falls back to a textual repair:
// join newlines, turn "}{" into "},{", and wrap the result in "[...]".
// Input that is already a JSON array is decoded as is by that fallback.
func decodePackageStream(raw []byte) ([]Package, error) {
	var packages []Package

	dec := json.NewDecoder(bytes.NewReader(raw))
	var firstErr error
	for dec.More() {
		var pkg Package
		if err := dec.Decode(&pkg); err != nil {
			firstErr = err
			break
		}
		packages = append(packages, pkg)
	}
	if firstErr == nil {
		return packages, nil
	}
	if len(packages) > 0 {
		// Decoded some objects before hitting malformed input; this stream
		// isn't the repairable shape we know how to handle.
		return nil, fmt.Errorf("decoding go list output failed partway through the stream: %w", firstErr)
	}

	repaired := repairObjectStream(raw)
	packages = nil
	if err := json.Unmarshal(repaired, &packages); err != nil {
		return nil, fmt.Errorf("decoding go list output failed: %w", err)
	}
	return packages, nil
}

func repairObjectStream(raw []byte) []byte {
	joined := strings.Join(strings.Split(string(raw), "\n"), "")
	if strings.HasPrefix(strings.TrimSpace(joined), "[") {
		return []byte(joined)
	}
	joined = strings.ReplaceAll(joined, "}{", "},{")
	return []byte("[" + joined + "]")
}
