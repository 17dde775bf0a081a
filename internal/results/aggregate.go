// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/codspeed-go/runner/internal/logger"
)

const (
	rawResultsDir = "raw_results"
	resultsDir    = "results"
)

// Aggregate reads every raw result file under <profileDir>/raw_results,
// groups them by producing pid, and writes one aggregated
// <profileDir>/results/<pid>.json per pid. A malformed raw file is skipped
// with a warning (the per-file Schema policy); Aggregate itself only
// fails on a filesystem error or if every discovered file was malformed.
func Aggregate(profileDir string, creatorName, creatorVersion string) error {
	rawDir := filepath.Join(profileDir, rawResultsDir)
	paths, err := filepath.Glob(filepath.Join(rawDir, "*.json"))
	if err != nil {
		return fmt.Errorf("listing raw result files in %s failed: %w", rawDir, err)
	}
	if len(paths) == 0 {
		return nil
	}

	raws, skipped := parseAll(paths)
	if len(raws) == 0 {
		return fmt.Errorf("aggregation failed: all %d raw result files were malformed", skipped)
	}
	if skipped > 0 {
		logger.Warnf("skipped %d malformed raw result file(s) out of %d", skipped, len(paths))
	}

	outDir := filepath.Join(profileDir, resultsDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s failed: %w", outDir, err)
	}

	for pid, group := range groupByPid(raws) {
		file := buildFile(creatorName, creatorVersion, pid, group)
		if err := writeResultsFile(outDir, pid, file); err != nil {
			return err
		}
	}

	return nil
}

// parseAll parses every path concurrently through a small bounded worker
// pool (reading is I/O-bound and embarrassingly parallel, per spec.md
// §4.6's "reading is parallelizable"), returning the successfully parsed
// records and a count of malformed files.
func parseAll(paths []string) ([]RawResult, int) {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	type outcome struct {
		raw RawResult
		ok  bool
	}
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				raw, err := parseFile(path)
				if err != nil {
					logger.Warnf("%s", &SchemaError{Path: path, Err: err})
					outcomes <- outcome{}
					continue
				}
				outcomes <- outcome{raw: raw, ok: true}
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var raws []RawResult
	var skipped int
	for o := range outcomes {
		if o.ok {
			raws = append(raws, o.raw)
		} else {
			skipped++
		}
	}

	return raws, skipped
}

func parseFile(path string) (RawResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawResult{}, err
	}

	var raw RawResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawResult{}, err
	}
	if len(raw.TimesPerRoundNs) == 0 {
		return RawResult{}, fmt.Errorf("empty codspeed_time_per_round_ns")
	}
	if len(raw.ItersPerRound) > 0 && len(raw.ItersPerRound) != len(raw.TimesPerRoundNs) {
		return RawResult{}, fmt.Errorf("codspeed_iters_per_round length %d does not match codspeed_time_per_round_ns length %d",
			len(raw.ItersPerRound), len(raw.TimesPerRoundNs))
	}

	raw.Normalize()
	return raw, nil
}

func groupByPid(raws []RawResult) map[uint32][]RawResult {
	groups := make(map[uint32][]RawResult)
	for _, r := range raws {
		groups[r.Pid] = append(groups[r.Pid], r)
	}
	return groups
}

func buildFile(creatorName, creatorVersion string, pid uint32, group []RawResult) File {
	benchmarks := make([]AggregatedBenchmark, 0, len(group))
	for _, r := range group {
		samples := make([]Sample, len(r.TimesPerRoundNs))
		for i := range r.TimesPerRoundNs {
			samples[i] = Sample{TimePerRoundNs: r.TimesPerRoundNs[i], ItersPerRound: r.ItersPerRound[i]}
		}
		benchmarks = append(benchmarks, AggregatedBenchmark{
			Metadata: Metadata{Name: r.Name, URI: r.URI},
			Samples:  samples,
			Stats:    computeStats(r.TimesPerRoundNs),
		})
	}

	sort.Slice(benchmarks, func(i, j int) bool {
		return benchmarks[i].Metadata.Name < benchmarks[j].Metadata.Name
	})

	return File{
		Creator:    Creator{Name: creatorName, Version: creatorVersion, Pid: pid},
		Benchmarks: benchmarks,
	}
}

func writeResultsFile(outDir string, pid uint32, file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results for pid %d failed: %w", pid, err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("%d.json", pid))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s failed: %w", path, err)
	}
	return nil
}
