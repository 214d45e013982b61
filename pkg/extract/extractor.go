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
package extract

import (
	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/schema"
)

// Set is the result of extraction: one FieldAccumulator per schema leaf,
// indexed by LeafID.
type Set struct {
	Accumulators []*FieldAccumulator
	// RecordCount is the number of whole records consumed.
	RecordCount uint64
	// StartOffset is the byte offset extraction began at.
	StartOffset uint64
	Warnings    []Warning
}

// Options configures a single extraction run.
type Options struct {
	// FreqCap bounds which leaf widths get a real histogram (default
	// 16, max 64).
	FreqCap uint
}

// DefaultOptions returns the default FreqCap.
func DefaultOptions() Options {
	return Options{FreqCap: DefaultFreqCap}
}

// Run resolves the starting offset, resolves skip_if_not once against
// the file header, then walks the schema in declaration order once per
// record, appending each active leaf's bits to its accumulator.
func Run(s *schema.Schema, data []byte, opts Options) *Set {
	if opts.FreqCap == 0 {
		opts.FreqCap = DefaultFreqCap
	}

	if opts.FreqCap > MaxFreqCap {
		opts.FreqCap = MaxFreqCap
	}

	start := schema.ResolveOffset(s.ConditionalOffsets, data)

	set := &Set{
		Accumulators: make([]*FieldAccumulator, len(s.Leaves)),
		StartOffset:  start,
	}

	for i, leaf := range s.Leaves {
		set.Accumulators[i] = NewFieldAccumulator(leaf, opts.FreqCap)

		if leaf.Width > opts.FreqCap && !leaf.SkipFrequencyAnalysis {
			set.Warnings = append(set.Warnings, Warning{
				Kind:  WarnFrequencyCapExceeded,
				Field: leaf.Name,
				Msg:   "field \"" + leaf.Name + "\" exceeds frequency cap; histogram disabled",
			})
		}
	}

	if uint64(start*8) >= uint64(len(data))*8 {
		set.Warnings = append(set.Warnings, Warning{Kind: WarnInputTooShort, Msg: "no bytes remain after start offset"})
		return set
	}

	recordWidth := uint64(s.RecordWidth())
	if recordWidth == 0 {
		return set
	}

	remainingBits := (uint64(len(data)) - start) * 8
	recordCount := remainingBits / recordWidth

	if recordCount == 0 {
		set.Warnings = append(set.Warnings, Warning{Kind: WarnInputTooShort, Msg: "input too short for even one record"})
		return set
	}

	active := resolveActiveLeaves(s, data)
	reader := bit.NewReader(data)

	if err := reader.SeekBits(start * 8); err != nil {
		set.Warnings = append(set.Warnings, Warning{Kind: WarnInputTooShort, Msg: "start offset exceeds input length"})
		return set
	}

	for rec := uint64(0); rec < recordCount; rec++ {
		extractRecord(s, s.Root, reader, active, set.Accumulators)
	}

	set.RecordCount = recordCount

	return set
}

// MergeSets produces the bit-exact concatenation of two extraction
// results for the same schema over disjoint inputs: every accumulator's
// bit buffer is concatenated in (a, b) order, counts add, and warnings
// concatenate. Neither input is mutated. This is the literal,
// exact-recompute path: bit buffers concatenate in merge order;
// analysis.Merge instead combines already-scored metrics
// approximately, which is the cheaper default used by the orchestrator
// across a whole directory.
func MergeSets(a, b *Set) *Set {
	out := &Set{
		Accumulators: make([]*FieldAccumulator, len(a.Accumulators)),
		RecordCount:  a.RecordCount + b.RecordCount,
		StartOffset:  a.StartOffset,
		Warnings:     append(append([]Warning{}, a.Warnings...), b.Warnings...),
	}

	for i, acc := range a.Accumulators {
		clone := acc.Clone()
		clone.Merge(b.Accumulators[i])
		out.Accumulators[i] = clone
	}

	return out
}

// extractRecord walks one record's worth of the schema tree in
// declaration order.  Groups contribute no bits themselves; every leaf
// always has its bits read from the stream (to keep subsequent fields
// correctly positioned), but the read value is appended to the
// accumulator only if the leaf is active for this file.
func extractRecord(s *schema.Schema, n schema.Node, r *bit.Reader, active []bool, accs []*FieldAccumulator) {
	switch v := n.(type) {
	case *schema.Field:
		value, err := r.ReadBits(v.Width, v.Order)
		if err != nil {
			return
		}

		if active[v.ID] {
			accs[v.ID].Append(value)
		}
	case *schema.Group:
		for _, c := range v.Children {
			extractRecord(s, c, r, active, accs)
		}
	}
}
