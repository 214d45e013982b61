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
	"io"
	"sort"

	"github.com/bitlayout/analyzer/pkg/schema"
	"github.com/bitlayout/analyzer/pkg/stats"
)

// Format selects the printer's verbosity.
type Format uint8

const (
	Concise Format = iota
	Detailed
)

// HistogramTopK bounds how many value/count pairs the Detailed format
// prints per field.
const HistogramTopK = 10

// Print writes a text report of r to w in the given format. Sort order
// mirrors schema declaration order (Fields and Groups are already built
// in that order); each field or group's percentage is computed against
// its immediate enclosing group's original size, not the whole record.
func Print(w io.Writer, r *Results, format Format) error {
	recordBits := r.Schema.RecordWidth()
	totalOriginal := (uint64(recordBits)*r.RecordCount + 7) / 8

	fmt.Fprintf(w, "schema: %s  records: %d  original size: %d bytes\n", r.Schema.Name, r.RecordCount, totalOriginal)
	fmt.Fprintln(w, "")

	groupOrig := make(map[schema.GroupID]uint64, len(r.Groups))
	for _, g := range r.Groups {
		groupOrig[g.GroupID] = (g.Metrics.BitLength + 7) / 8
	}

	parentOrig := func(parent *schema.Group) uint64 {
		if parent == nil {
			return totalOriginal
		}

		if o, ok := groupOrig[parent.ID]; ok {
			return o
		}

		return totalOriginal
	}

	for _, f := range r.Fields {
		printFieldLine(w, f, parentOrig(r.Schema.LeafParent[f.LeafID]))

		if format == Detailed {
			printFieldDetail(w, f)
		}
	}

	if len(r.Groups) > 0 {
		fmt.Fprintln(w, "\ngroups:")

		for _, g := range r.Groups {
			printGroupLine(w, g, parentOrig(r.Schema.GroupParent[g.GroupID]))
		}
	}

	for _, sp := range r.Splits {
		printSplit(w, sp)
	}

	for _, c := range r.Compares {
		printCompare(w, c)
	}

	return nil
}

func printFieldLine(w io.Writer, f FieldResult, parentOriginal uint64) {
	orig := (f.Metrics.BitLength + 7) / 8
	fmt.Fprintf(w, "field %-24s width=%-3d bits/byte=%5.2f lz=%-6d est=%-8d zstd=%-8s orig=%-8d (%.1f%%)\n",
		f.Name, f.Width, f.Metrics.Entropy, f.Metrics.LZMatches, f.Metrics.EstimatedSize, zstdField(f.Metrics.ZstdSize),
		orig, percent(orig, parentOriginal))
}

func printFieldDetail(w io.Writer, f FieldResult) {
	fmt.Fprintf(w, "  values=%d distinct=%d\n", f.ValueCount, histogramDistinct(f))
	fmt.Fprintf(w, "  per-bit ones: %v\n", f.OnesCounts)

	if f.Histogram == nil {
		return
	}

	entries := f.Histogram.Entries()
	if len(entries) == 0 {
		return
	}

	type kv struct {
		v uint64
		c uint64
	}

	top := make([]kv, 0, len(entries))
	for v, c := range entries {
		top = append(top, kv{v, c})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].c != top[j].c {
			return top[i].c > top[j].c
		}

		return top[i].v < top[j].v
	})

	if len(top) > HistogramTopK {
		top = top[:HistogramTopK]
	}

	fmt.Fprintf(w, "  top values:")

	for _, e := range top {
		fmt.Fprintf(w, " %d=%d", e.v, e.c)
	}

	fmt.Fprintln(w, "")
}

func histogramDistinct(f FieldResult) uint64 {
	if f.Histogram == nil {
		return 0
	}

	return f.Histogram.DistinctCount()
}

func printGroupLine(w io.Writer, g GroupResult, parentOriginal uint64) {
	orig := (g.Metrics.BitLength + 7) / 8
	fmt.Fprintf(w, "group %-24s bits/byte=%5.2f lz=%-6d est=%-8d zstd=%-8s orig=%-8d (%.1f%%)\n",
		g.Name, g.Metrics.Entropy, g.Metrics.LZMatches, g.Metrics.EstimatedSize, zstdField(g.Metrics.ZstdSize),
		orig, percent(orig, parentOriginal))
}

func printSplit(w io.Writer, sp SplitResult) {
	fmt.Fprintf(w, "\nsplit %s: %s\n", sp.Name, sp.Description)
	fmt.Fprintf(w, "  group_1 zstd=%s  group_2 zstd=%s  ratio=%s\n",
		zstdField(sp.Group1.ZstdSize), zstdField(sp.Group2.ZstdSize), ratioField(sp.Group2.ZstdSize, sp.Group1.ZstdSize))
}

func printCompare(w io.Writer, c CompareResult) {
	fmt.Fprintf(w, "\ncompare %s: %s\n", c.Name, c.Description)
	fmt.Fprintf(w, "  baseline zstd=%s\n", zstdField(c.Baseline.ZstdSize))

	for _, cc := range c.Comparisons {
		fmt.Fprintf(w, "  %-16s zstd=%-8s ratio=%s\n",
			cc.Label, zstdField(cc.Metrics.ZstdSize), ratioField(cc.Metrics.ZstdSize, c.Baseline.ZstdSize))
	}
}

func percent(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}

// zstdField renders a ZstdSize for display, reporting "n/a" when the
// encoder failed for this entry instead of a bogus negative number.
func zstdField(size int) string {
	if size == stats.ZstdUnavailable {
		return "n/a"
	}

	return fmt.Sprintf("%d", size)
}

// ratioField renders a/b as a ratio, or "n/a" if either side's zstd size
// is unavailable.
func ratioField(a, b int) string {
	if a == stats.ZstdUnavailable || b == stats.ZstdUnavailable {
		return "n/a"
	}

	if b == 0 {
		return "0.000"
	}

	return fmt.Sprintf("%.3f", float64(a)/float64(b))
}
