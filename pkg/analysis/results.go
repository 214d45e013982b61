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
package analysis

import (
	"fmt"

	"github.com/bitlayout/analyzer/pkg/extract"
	"github.com/bitlayout/analyzer/pkg/layout"
	"github.com/bitlayout/analyzer/pkg/schema"
	"github.com/bitlayout/analyzer/pkg/stats"
)

// FieldResult is one leaf's scored report.
type FieldResult struct {
	LeafID     schema.LeafID
	Name       string
	Width      uint
	ValueCount uint64
	OnesCounts []uint64
	Histogram  extract.Histogram
	Metrics    stats.Metrics
}

// GroupResult is one group's scored report, computed on the
// concatenation of its descendant leaves' bits.
type GroupResult struct {
	GroupID schema.GroupID
	Name    string
	Metrics stats.Metrics
}

// SplitResult is one SplitGroup's scored comparison.
type SplitResult struct {
	Name        string
	Description string
	Group1      stats.Metrics
	Group2      stats.Metrics
}

// CompareCaseResult is one labelled alternative within a CompareGroup.
type CompareCaseResult struct {
	Label   string
	Metrics stats.Metrics
}

// CompareResult is one CompareGroup's scored comparison: a baseline plus
// one or more labelled alternatives.
type CompareResult struct {
	Name        string
	Description string
	Baseline    stats.Metrics
	Comparisons []CompareCaseResult
}

// Results is a complete scored report for one schema over one
// extraction (a single file, or the approximate combination of many).
type Results struct {
	Schema      *schema.Schema
	RecordCount uint64
	ZstdLevel   int

	Fields   []FieldResult
	Groups   []GroupResult
	Splits   []SplitResult
	Compares []CompareResult
}

// Error reports a merge-time mismatch (disjoint schemas).
type Error struct{ Msg string }

func (e Error) Error() string { return fmt.Sprintf("analysis: %s", e.Msg) }

// Build scores a completed extraction against its schema's split and
// compare plans, computing every metric directly from set's
// accumulators. A zstd encoder failure on any single field, group, split
// side or compare case never aborts the run: stats.Compute degrades that
// entry's ZstdSize to stats.ZstdUnavailable and the rest of the tree is
// still scored.
func Build(s *schema.Schema, set *extract.Set, zstdLevel int) (*Results, error) {
	r := &Results{
		Schema:      s,
		RecordCount: set.RecordCount,
		ZstdLevel:   zstdLevel,
		Fields:      make([]FieldResult, len(s.Leaves)),
	}

	for i, leaf := range s.Leaves {
		acc := set.Accumulators[i]

		m := stats.Compute(acc.BitLength(), acc.Bytes(), zstdLevel)

		r.Fields[i] = FieldResult{
			LeafID:     leaf.ID,
			Name:       leaf.Name,
			Width:      leaf.Width,
			ValueCount: acc.ValueCount(),
			OnesCounts: acc.OnesCounts(),
			Histogram:  acc.Histogram(),
			Metrics:    m,
		}
	}

	for _, g := range s.Groups {
		leaves := schema.DescendantLeaves(s, g)

		data := layout.RunSplitGroup(set, leaves)

		m := stats.Compute(bitLengthOf(set, leaves), data, zstdLevel)

		r.Groups = append(r.Groups, GroupResult{GroupID: g.ID, Name: g.Name, Metrics: m})
	}

	for _, sg := range s.SplitGroups {
		d1 := layout.RunSplitGroup(set, sg.Group1)
		d2 := layout.RunSplitGroup(set, sg.Group2)

		m1 := stats.Compute(bitLengthOf(set, sg.Group1), d1, zstdLevel)
		m2 := stats.Compute(bitLengthOf(set, sg.Group2), d2, zstdLevel)

		r.Splits = append(r.Splits, SplitResult{Name: sg.Name, Description: sg.Description, Group1: m1, Group2: m2})
	}

	for _, cg := range s.CompareGroups {
		baseData := layout.RunOps(set, cg.Baseline, s.DefaultOrder)

		baseMetrics := stats.Compute(uint64(len(baseData))*8, baseData, zstdLevel)

		cr := CompareResult{Name: cg.Name, Description: cg.Description, Baseline: baseMetrics}

		for _, c := range cg.Comparisons {
			data := layout.RunOps(set, c.Ops, s.DefaultOrder)

			m := stats.Compute(uint64(len(data))*8, data, zstdLevel)

			cr.Comparisons = append(cr.Comparisons, CompareCaseResult{Label: c.Label, Metrics: m})
		}

		r.Compares = append(r.Compares, cr)
	}

	return r, nil
}

// bitLengthOf sums the accumulated bit length of a set of leaves.
func bitLengthOf(set *extract.Set, leaves []schema.LeafID) uint64 {
	var n uint64
	for _, id := range leaves {
		n += set.Accumulators[id].BitLength()
	}

	return n
}

// Merge folds b into a new Results, combining every field, group, split
// and compare entry pairwise via MergeMetrics. a and b must share the
// same schema (by identity) and have matching plan shapes, which always
// holds for two Results built from the same *schema.Schema.
func Merge(a, b *Results) (*Results, error) {
	if a.Schema != b.Schema {
		return nil, Error{Msg: "cannot merge results built from different schemas"}
	}

	out := &Results{
		Schema:      a.Schema,
		RecordCount: a.RecordCount + b.RecordCount,
		ZstdLevel:   a.ZstdLevel,
		Fields:      make([]FieldResult, len(a.Fields)),
		Groups:      make([]GroupResult, len(a.Groups)),
		Splits:      make([]SplitResult, len(a.Splits)),
		Compares:    make([]CompareResult, len(a.Compares)),
	}

	for i := range a.Fields {
		fa, fb := a.Fields[i], b.Fields[i]

		var hist extract.Histogram
		if fa.Histogram != nil && fb.Histogram != nil {
			merged := make(map[uint64]uint64, len(fa.Histogram.Entries()))
			for v, c := range fa.Histogram.Entries() {
				merged[v] += c
			}

			for v, c := range fb.Histogram.Entries() {
				merged[v] += c
			}

			hist = extract.NewMapHistogramFrom(merged)
		}

		ones := append([]uint64(nil), fa.OnesCounts...)
		for i := range ones {
			ones[i] += fb.OnesCounts[i]
		}

		out.Fields[i] = FieldResult{
			LeafID:     fa.LeafID,
			Name:       fa.Name,
			Width:      fa.Width,
			ValueCount: fa.ValueCount + fb.ValueCount,
			OnesCounts: ones,
			Histogram:  hist,
			Metrics:    MergeMetrics(fa.Metrics, fb.Metrics),
		}
	}

	for i := range a.Groups {
		out.Groups[i] = GroupResult{
			GroupID: a.Groups[i].GroupID,
			Name:    a.Groups[i].Name,
			Metrics: MergeMetrics(a.Groups[i].Metrics, b.Groups[i].Metrics),
		}
	}

	for i := range a.Splits {
		out.Splits[i] = SplitResult{
			Name:        a.Splits[i].Name,
			Description: a.Splits[i].Description,
			Group1:      MergeMetrics(a.Splits[i].Group1, b.Splits[i].Group1),
			Group2:      MergeMetrics(a.Splits[i].Group2, b.Splits[i].Group2),
		}
	}

	for i := range a.Compares {
		ca, cb := a.Compares[i], b.Compares[i]

		cr := CompareResult{
			Name:        ca.Name,
			Description: ca.Description,
			Baseline:    MergeMetrics(ca.Baseline, cb.Baseline),
		}

		for j := range ca.Comparisons {
			cr.Comparisons = append(cr.Comparisons, CompareCaseResult{
				Label:   ca.Comparisons[j].Label,
				Metrics: MergeMetrics(ca.Comparisons[j].Metrics, cb.Comparisons[j].Metrics),
			})
		}

		out.Compares[i] = cr
	}

	return out, nil
}

// RecomputeExactZstd re-derives the exact merged zstd sizes for every
// field, group, split side and compare case from a genuinely
// concatenated extraction (extract.MergeSets), replacing the cheap
// length-weighted-average fallback Merge uses by default. Callers use
// this only when an explicit aggregate or final report is requested,
// since it rescans the whole concatenated stream.
func RecomputeExactZstd(s *schema.Schema, merged *extract.Set, r *Results) error {
	exact, err := Build(s, merged, r.ZstdLevel)
	if err != nil {
		return err
	}

	for i := range r.Fields {
		r.Fields[i].Metrics.ZstdSize = exact.Fields[i].Metrics.ZstdSize
	}

	for i := range r.Groups {
		r.Groups[i].Metrics.ZstdSize = exact.Groups[i].Metrics.ZstdSize
	}

	for i := range r.Splits {
		r.Splits[i].Group1.ZstdSize = exact.Splits[i].Group1.ZstdSize
		r.Splits[i].Group2.ZstdSize = exact.Splits[i].Group2.ZstdSize
	}

	for i := range r.Compares {
		r.Compares[i].Baseline.ZstdSize = exact.Compares[i].Baseline.ZstdSize

		for j := range r.Compares[i].Comparisons {
			r.Compares[i].Comparisons[j].Metrics.ZstdSize = exact.Compares[i].Comparisons[j].Metrics.ZstdSize
		}
	}

	return nil
}
