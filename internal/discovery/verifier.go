// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package discovery

import (
	"fmt"
	"go/ast"
)

// NoopVerifier accepts every Benchmark* declaration unconditionally. It is
// the default: a benchmark whose harness parameter the driver can't prove
// safe is still run, and any resulting failure surfaces at build or run
// time instead of being silently dropped during discovery.
func NoopVerifier(*ast.FuncDecl) error {
	return nil
}

// StrictVerifier rejects a Benchmark* declaration unless its signature looks
// like a normal top-level benchmark function: exactly one parameter, of
// pointer type. This catches, at discovery time rather than at compile time,
// declarations that happen to start with "Benchmark" but aren't testing
// benchmarks at all (helpers, types, unrelated functions swept up by the
// name prefix alone).
func StrictVerifier(decl *ast.FuncDecl) error {
	params := decl.Type.Params
	if params == nil || len(params.List) != 1 {
		return fmt.Errorf("expected exactly one parameter, found %d", paramCount(params))
	}

	field := params.List[0]
	if len(field.Names) > 1 {
		return fmt.Errorf("expected a single named parameter")
	}
	if _, ok := field.Type.(*ast.StarExpr); !ok {
		return fmt.Errorf("expected parameter to be a pointer type")
	}

	return nil
}

func paramCount(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	return len(fl.List)
}
