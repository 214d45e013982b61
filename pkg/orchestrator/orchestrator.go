// Copyright the bitlayout authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator enumerates a directory's files, distributes
// extraction and scoring across a worker pool, and reduces the
// per-file results via the merge combiner.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/bitlayout/analyzer/internal/perf"
	"github.com/bitlayout/analyzer/pkg/analysis"
	"github.com/bitlayout/analyzer/pkg/extract"
	"github.com/bitlayout/analyzer/pkg/schema"
)

// Orchestrator configures a batch analysis run.
type Orchestrator struct {
	// Workers bounds concurrent file analyses; 0 selects
	// runtime.GOMAXPROCS(0).
	Workers int
	// ZstdLevel is passed through to every stats.Compute call.
	ZstdLevel int
	// FreqCap is passed through to extract.Options.
	FreqCap uint
}

// New constructs an Orchestrator with the default zstd level and
// frequency cap.
func New() *Orchestrator {
	return &Orchestrator{ZstdLevel: 16, FreqCap: extract.DefaultFreqCap}
}

// AnalyzeFile runs extraction and scoring for a single file.
func (o *Orchestrator) AnalyzeFile(ctx context.Context, s *schema.Schema, path string) (*analysis.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Error{Path: path, Msg: err.Error()}
	}

	set := extract.Run(s, data, extract.Options{FreqCap: o.FreqCap})

	for _, w := range set.Warnings {
		log.Warnf("%s: %s", path, w.Error())
	}

	return analysis.Build(s, set, o.ZstdLevel)
}

// fileOutcome pairs a worker's result with its original index, so the
// reduction step can fold files back together in declaration
// (sorted-path) order, keeping LZ/zstd merge approximation deterministic
// regardless of goroutine completion order.
type fileOutcome struct {
	index   int
	path    string
	results *analysis.Results
	err     error
}

// AnalyzeDirectory walks root recursively, analyzes every regular file
// against s concurrently, and reduces the per-file reports into one via
// analysis.Merge, in sorted-path order.
func (o *Orchestrator) AnalyzeDirectory(ctx context.Context, s *schema.Schema, root string) (*analysis.Results, error) {
	paths, err := discoverFiles(root)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, Error{Path: root, Msg: "no regular files found"}
	}

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	stats := perf.New()

	outcomes := make([]fileOutcome, len(paths))
	sem := make(chan struct{}, workers)
	done := make(chan fileOutcome, len(paths))

	for i, p := range paths {
		sem <- struct{}{}

		go func(idx int, path string) {
			defer func() { <-sem }()

			r, err := o.AnalyzeFile(ctx, s, path)
			done <- fileOutcome{index: idx, path: path, results: r, err: err}
		}(i, p)
	}

	for range paths {
		out := <-done
		outcomes[out.index] = out
	}

	close(done)

	var merged *analysis.Results

	for _, out := range outcomes {
		if out.err != nil {
			return nil, Error{Path: out.path, Msg: out.err.Error()}
		}

		if merged == nil {
			merged = out.results
			continue
		}

		merged, err = analysis.Merge(merged, out.results)
		if err != nil {
			return nil, Error{Path: out.path, Msg: err.Error()}
		}
	}

	stats.Log("directory analysis")

	return merged, nil
}

// discoverFiles returns every regular file beneath root, in sorted
// (deterministic) path order.
func discoverFiles(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Type().IsRegular() {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, Error{Path: root, Msg: err.Error()}
	}

	sort.Strings(paths)

	return paths, nil
}
