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

// FieldAccumulator is the per-leaf state built during extraction: an
// append-only bit buffer holding the concatenation of this field's
// values (each stored in the field's own bit order), a value count, a
// bounded histogram, and per-bit 0/1 counts.
type FieldAccumulator struct {
	Field *schema.Field

	writer    *bit.Writer
	ones      []uint64
	count     uint64
	histogram Histogram
	freqCap   uint
}

// NewFieldAccumulator constructs an empty accumulator for field, with a
// histogram chosen per freqCap.
func NewFieldAccumulator(field *schema.Field, freqCap uint) *FieldAccumulator {
	return &FieldAccumulator{
		Field:     field,
		writer:    bit.NewWriter(),
		ones:      make([]uint64, field.Width),
		histogram: NewHistogram(field.Width, field.SkipFrequencyAnalysis, freqCap),
		freqCap:   freqCap,
	}
}

// Clone returns an independent copy of a, safe to mutate (e.g. via
// Merge) without affecting the original.
func (a *FieldAccumulator) Clone() *FieldAccumulator {
	clone := NewFieldAccumulator(a.Field, a.freqCap)

	bit.AppendBits(clone.writer, a.writer)
	clone.count = a.count
	clone.histogram.Merge(a.histogram)
	copy(clone.ones, a.ones)

	return clone
}

// Append records one extracted value: it is written into the bit buffer
// in the field's own order, the value count is incremented, and (if
// enabled) the histogram and per-bit counters are updated.
func (a *FieldAccumulator) Append(value uint64) {
	// Ignoring the error here is safe: Field.Width is validated to
	// [1,64] at schema build time.
	_ = a.writer.WriteBits(value, a.Field.Width, a.Field.Order)

	a.count++
	a.histogram.Increment(value)

	for i := uint(0); i < a.Field.Width; i++ {
		if (value>>(a.Field.Width-1-i))&1 == 1 {
			a.ones[i]++
		}
	}
}

// Bytes returns the accumulated bit buffer, zero-padded to a byte
// boundary.
func (a *FieldAccumulator) Bytes() []byte {
	return a.writer.Bytes()
}

// Writer exposes the underlying bit writer so other packages (layout
// replay, merge) can concatenate accumulators bit-exactly via
// bit.AppendBits.
func (a *FieldAccumulator) Writer() *bit.Writer {
	return a.writer
}

// BitLength returns the number of bits actually accumulated (before
// byte padding) — value_count * field.width, per Invariant 2.
func (a *FieldAccumulator) BitLength() uint64 {
	return a.writer.TellBits()
}

// ValueCount returns how many values have been appended.
func (a *FieldAccumulator) ValueCount() uint64 {
	return a.count
}

// OnesCounts returns the per-bit-position one-counts, indexed from the
// field's most significant bit (index 0) to its least significant bit.
func (a *FieldAccumulator) OnesCounts() []uint64 {
	return a.ones
}

// Histogram returns the accumulator's value-frequency histogram (may be
// a no-op).
func (a *FieldAccumulator) Histogram() Histogram {
	return a.histogram
}

// Merge folds other (an accumulator for a disjoint record set of the
// same field) into a, concatenating bit buffers in merge order and
// summing counts.
func (a *FieldAccumulator) Merge(other *FieldAccumulator) {
	// Concatenate bit buffers bit-exactly, not byte-padded: the merged
	// buffer has no padding seam between files.
	bit.AppendBits(a.writer, other.writer)

	a.count += other.count
	a.histogram.Merge(other.histogram)

	for i := range a.ones {
		a.ones[i] += other.ones[i]
	}
}
