// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package templater

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/codspeed-go/runner/internal/toolchain"
)

// installRuntime makes the embedded timing runtime importable from the
// staged tree, either by fetching the published module (the default) or,
// when a local checkout was supplied via --local-runtime, by rewriting
// go.mod with a replace directive that points at it instead.
func installRuntime(ctx context.Context, moduleDir string, opts Options) error {
	if opts.LocalRuntimePath != "" {
		return replaceWithLocalRuntime(moduleDir, opts.RuntimeModule, opts.LocalRuntimePath)
	}

	spec := opts.RuntimeModule + "@" + opts.RuntimeVersion
	if _, err := toolchain.Run(ctx, moduleDir, []string{"GOPROXY=direct"}, "get", spec); err != nil {
		return fmt.Errorf("installing runtime package %s failed: %w", spec, err)
	}
	if _, err := toolchain.Run(ctx, moduleDir, nil, "mod", "tidy"); err != nil {
		return fmt.Errorf("go mod tidy failed after installing %s: %w", spec, err)
	}
	return nil
}

// replaceWithLocalRuntime adds a "replace module => absolute-local-path"
// directive to the staged tree's go.mod, so the runtime is built from a
// developer's working checkout instead of a fetched release.
func replaceWithLocalRuntime(moduleDir, module, localPath string) error {
	goModPath := filepath.Join(moduleDir, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return fmt.Errorf("reading %s failed: %w", goModPath, err)
	}

	f, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return fmt.Errorf("parsing %s failed: %w", goModPath, err)
	}

	abs, err := filepath.Abs(localPath)
	if err != nil {
		return fmt.Errorf("resolving local runtime path %s failed: %w", localPath, err)
	}

	if err := f.AddReplace(module, "", abs, ""); err != nil {
		return fmt.Errorf("adding replace directive for %s failed: %w", module, err)
	}
	if err := f.AddRequire(module, "v0.0.0-00010101000000-000000000000"); err != nil {
		return fmt.Errorf("adding require directive for %s failed: %w", module, err)
	}
	f.Cleanup()

	out, err := f.Format()
	if err != nil {
		return fmt.Errorf("formatting %s failed: %w", goModPath, err)
	}
	if err := os.WriteFile(goModPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s failed: %w", goModPath, err)
	}
	return nil
}
