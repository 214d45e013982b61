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
package layout

import (
	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/extract"
	"github.com/bitlayout/analyzer/pkg/schema"
)

// RunOps replays a top-level list of LayoutOp (a CompareGroup's baseline
// or one of its Comparisons) into a single synthetic byte stream. Every
// call gets its own fresh per-field cursors.
func RunOps(set *extract.Set, ops []schema.LayoutOp, order bit.Order) []byte {
	sess := newSession(set)
	w := bit.NewWriter()

	for _, op := range ops {
		switch v := op.(type) {
		case *schema.Array:
			sess.runArray(v, w, order)
		case *schema.Struct:
			sess.runStruct(v, w, order)
		}
	}

	return w.Bytes()
}

// runArray implements the Array layout op: emit the [Offset,Offset+Bits)
// slice of every remaining value of Field, high-to-low within the value,
// until the field is exhausted.
func (s *session) runArray(op *schema.Array, w *bit.Writer, order bit.Order) {
	width := s.width(op.Field)

	for {
		val, ok := s.nextValue(op.Field)
		if !ok {
			return
		}

		shift := width - op.Offset - op.Bits
		slice := (val >> shift) & bit.Mask(op.Bits)
		_ = w.WriteBits(slice, op.Bits, order)
	}
}

// runStruct implements the Struct layout op: repeat a row of StructOp
// until a full pass produces zero field-backed bytes. A row that
// produces nothing is discarded, including any padding written in that
// pass; cursor advances made by Skip ops in that pass are not undone.
func (s *session) runStruct(op *schema.Struct, dst *bit.Writer, order bit.Order) {
	for {
		row := bit.NewWriter()
		produced := false

		for _, rowOp := range op.Fields {
			switch v := rowOp.(type) {
			case *schema.StructField:
				width := s.width(v.Field)

				val, ok := s.nextValue(v.Field)
				if !ok {
					continue
				}

				shift := width - v.Bits
				_ = row.WriteBits((val>>shift)&bit.Mask(v.Bits), v.Bits, order)
				produced = true
			case *schema.StructPadding:
				_ = row.WriteBits(v.Value, v.Bits, order)
			case *schema.StructSkip:
				s.skip(v.Field, v.Bits)
			}
		}

		if !produced {
			return
		}

		bit.AppendBits(dst, row)
	}
}

// RunSplitGroup produces the synthetic stream for one side of a
// SplitGroup: the bit-exact concatenation of the constituent leaves'
// accumulator buffers, in the given declaration order.
func RunSplitGroup(set *extract.Set, leaves []schema.LeafID) []byte {
	w := bit.NewWriter()

	for _, id := range leaves {
		bit.AppendBits(w, set.Accumulators[id].Writer())
	}

	return w.Bytes()
}
