// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawFile(t *testing.T, dir, name string, raw RawResult) {
	t.Helper()
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestAggregate_GroupsByPidAndWritesOneFilePerPid(t *testing.T) {
	profile := t.TempDir()
	rawDir := filepath.Join(profile, rawResultsDir)
	require.NoError(t, os.MkdirAll(rawDir, 0o755))

	writeRawFile(t, rawDir, "a.json", RawResult{Name: "BenchmarkA", URI: "a.go::BenchmarkA", Pid: 100, TimesPerRoundNs: []uint64{1, 2, 3}})
	writeRawFile(t, rawDir, "b.json", RawResult{Name: "BenchmarkB", URI: "b.go::BenchmarkB", Pid: 100, TimesPerRoundNs: []uint64{4, 5}})
	writeRawFile(t, rawDir, "c.json", RawResult{Name: "BenchmarkC", URI: "c.go::BenchmarkC", Pid: 200, TimesPerRoundNs: []uint64{6, 7}, ItersPerRound: []uint64{2, 2}})

	require.NoError(t, Aggregate(profile, "codspeed-go", "v0.0.0-test"))

	var file100 File
	data, err := os.ReadFile(filepath.Join(profile, resultsDir, "100.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &file100))
	assert.Equal(t, uint32(100), file100.Creator.Pid)
	require.Len(t, file100.Benchmarks, 2)
	assert.Equal(t, 3, file100.Benchmarks[0].Stats.Count)
	assert.Equal(t, uint64(1), file100.Benchmarks[0].Samples[0].ItersPerRound, "missing iters_per_round normalizes to ones")

	var file200 File
	data, err = os.ReadFile(filepath.Join(profile, resultsDir, "200.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &file200))
	require.Len(t, file200.Benchmarks, 1)
	assert.Equal(t, uint64(2), file200.Benchmarks[0].Samples[0].ItersPerRound)
}

func TestAggregate_SkipsMalformedFiles(t *testing.T) {
	profile := t.TempDir()
	rawDir := filepath.Join(profile, rawResultsDir)
	require.NoError(t, os.MkdirAll(rawDir, 0o755))

	writeRawFile(t, rawDir, "good.json", RawResult{Name: "BenchmarkOK", Pid: 1, TimesPerRoundNs: []uint64{1}})
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "bad.json"), []byte("{not json"), 0o644))

	require.NoError(t, Aggregate(profile, "codspeed-go", "v0.0.0-test"))

	var file File
	data, err := os.ReadFile(filepath.Join(profile, resultsDir, "1.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &file))
	require.Len(t, file.Benchmarks, 1)
}

func TestAggregate_NoRawFilesIsNotAnError(t *testing.T) {
	profile := t.TempDir()
	assert.NoError(t, Aggregate(profile, "codspeed-go", "v0.0.0-test"))
}
