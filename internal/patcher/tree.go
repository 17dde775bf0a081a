// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package patcher

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codspeed-go/runner/internal/logger"
)

var skippedTreeDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
}

// RewriteTree walks root for *.go source files and applies the
// package-rename and import-redirect rules to each, in parallel. File edits
// are independent, so a bounded worker pool processes the whole staged tree
// without per-file coordination beyond the final error join.
func RewriteTree(root string, redirects []Redirect) error {
	paths, err := collectGoFiles(root)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(patchConcurrency())
	for _, path := range paths {
		path := path
		g.Go(func() error {
			changed, err := rewriteFile(path, redirects)
			if err != nil {
				return err
			}
			if changed {
				logger.Debugf("patched %s", path)
			}
			return nil
		})
	}
	return g.Wait()
}

func collectGoFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && (skippedTreeDirs[info.Name()] || strings.HasPrefix(info.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func patchConcurrency() int {
	n := 8
	if cpu := runtime.NumCPU(); cpu > 0 && cpu < n {
		n = cpu
	}
	return n
}
