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

// Package extract implements the per-record demultiplexer: it walks a
// schema over a raw byte stream, one record at a time, appending each
// active leaf's bits to that leaf's accumulator.
package extract

import "github.com/bits-and-blooms/bitset"

// DefaultFreqCap is the default maximum leaf width for which value
// frequency histograms are built.
const DefaultFreqCap = 16

// MaxFreqCap is the hard ceiling on FreqCap (frequency analysis above 64
// bits is never supported).
const MaxFreqCap = 64

// Histogram is a bounded value->count map.  Implementations are chosen
// by width: a dense array for widths up to 16 bits, a hash map above
// that, and a no-op when frequency analysis is disabled for a field.
type Histogram interface {
	Increment(value uint64)
	// Entries returns every (value, count) pair with count > 0.
	Entries() map[uint64]uint64
	// DistinctCount returns the number of distinct values observed.
	DistinctCount() uint64
	// Merge folds other's counts into this histogram pointwise.
	Merge(other Histogram)
}

// noopHistogram discards everything; used when frequency analysis is
// disabled or the field's width exceeds FreqCap.
type noopHistogram struct{}

func (noopHistogram) Increment(uint64)              {}
func (noopHistogram) Entries() map[uint64]uint64    { return nil }
func (noopHistogram) DistinctCount() uint64         { return 0 }
func (noopHistogram) Merge(Histogram)               {}

// NewNoopHistogram constructs a disabled histogram.
func NewNoopHistogram() Histogram { return noopHistogram{} }

// denseHistogram backs widths <= 16 with a flat counts array, and a
// bitset marking which slots have ever been incremented — this avoids a
// full O(2^width) scan just to report how many distinct values were
// seen, which the detailed report does for every field.
type denseHistogram struct {
	counts []uint64
	seen   *bitset.BitSet
}

// NewDenseHistogram constructs a histogram over values in [0, 2^width).
func NewDenseHistogram(width uint) Histogram {
	size := uint64(1) << width

	return &denseHistogram{
		counts: make([]uint64, size),
		seen:   bitset.New(uint(size)),
	}
}

func (h *denseHistogram) Increment(value uint64) {
	h.counts[value]++
	h.seen.Set(uint(value))
}

func (h *denseHistogram) Entries() map[uint64]uint64 {
	out := make(map[uint64]uint64, h.seen.Count())

	for i, e := h.seen.NextSet(0); e; i, e = h.seen.NextSet(i + 1) {
		out[uint64(i)] = h.counts[i]
	}

	return out
}

func (h *denseHistogram) DistinctCount() uint64 {
	return uint64(h.seen.Count())
}

func (h *denseHistogram) Merge(other Histogram) {
	for v, c := range other.Entries() {
		if v >= uint64(len(h.counts)) {
			continue
		}

		h.counts[v] += c
		h.seen.Set(uint(v))
	}
}

// mapHistogram backs widths in (16, 64] with a hash map, since a dense
// array would be infeasible (up to 2^64 slots).
type mapHistogram struct {
	counts map[uint64]uint64
}

// NewMapHistogram constructs a histogram backed by a hash map.
func NewMapHistogram() Histogram {
	return &mapHistogram{counts: map[uint64]uint64{}}
}

// NewMapHistogramFrom constructs a map-backed histogram pre-populated
// with counts, without mutating the map passed in (it's copied). Used to
// combine two histograms into a fresh result without mutating either
// input (e.g. analysis.Merge, which must not corrupt the inputs it
// folds together).
func NewMapHistogramFrom(counts map[uint64]uint64) Histogram {
	out := make(map[uint64]uint64, len(counts))
	for v, c := range counts {
		out[v] = c
	}

	return &mapHistogram{counts: out}
}

func (h *mapHistogram) Increment(value uint64) {
	h.counts[value]++
}

func (h *mapHistogram) Entries() map[uint64]uint64 {
	return h.counts
}

func (h *mapHistogram) DistinctCount() uint64 {
	return uint64(len(h.counts))
}

func (h *mapHistogram) Merge(other Histogram) {
	for v, c := range other.Entries() {
		h.counts[v] += c
	}
}

// NewHistogram selects the histogram implementation for a field of the
// given width, honoring skipFrequencyAnalysis and freqCap: disabled or
// mapped to a no-op when skip_frequency_analysis is set or the bit
// width exceeds freqCap.
func NewHistogram(width uint, skipFrequencyAnalysis bool, freqCap uint) Histogram {
	if skipFrequencyAnalysis || width > freqCap {
		return NewNoopHistogram()
	}

	if width <= 16 {
		return NewDenseHistogram(width)
	}

	return NewMapHistogram()
}
