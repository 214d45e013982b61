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

// Package layout implements the layout replay engine: given completed
// field accumulators and a list of LayoutOp, it replays the plan into a
// single synthetic byte stream, ready for scoring by pkg/stats.
package layout

import (
	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/extract"
	"github.com/bitlayout/analyzer/pkg/schema"
)

// session holds one independent set of per-field cursors over a
// completed extract.Set. A fresh session must be created per layout run
// (baseline and each comparison get their own cursors, all starting from
// the same underlying accumulators).
type session struct {
	set     *extract.Set
	readers map[schema.LeafID]*bit.Reader
}

func newSession(set *extract.Set) *session {
	return &session{
		set:     set,
		readers: make(map[schema.LeafID]*bit.Reader, len(set.Accumulators)),
	}
}

func (s *session) reader(id schema.LeafID) *bit.Reader {
	r, ok := s.readers[id]
	if !ok {
		r = bit.NewReader(s.set.Accumulators[id].Bytes())
		s.readers[id] = r
	}

	return r
}

func (s *session) width(id schema.LeafID) uint {
	return s.set.Accumulators[id].Field.Width
}

// nextValue reads the next width-bit value from field id's accumulator
// (the accumulator's own writer always packs values in the field's
// configured order; replaying reads them back the same way so the
// emitted high/low bit slices refer to the field's own value
// representation, not inter-value packing).
func (s *session) nextValue(id schema.LeafID) (uint64, bool) {
	r := s.reader(id)
	width := s.width(id)
	order := s.set.Accumulators[id].Field.Order

	avail := s.set.Accumulators[id].BitLength() - r.TellBits()
	if avail < uint64(width) {
		return 0, false
	}

	v, err := r.ReadBits(width, order)
	if err != nil {
		return 0, false
	}

	return v, true
}

// skip advances field id's cursor by n bits without producing a value.
func (s *session) skip(id schema.LeafID, n uint) {
	r := s.reader(id)

	avail := s.set.Accumulators[id].BitLength() - r.TellBits()
	if uint64(n) > avail {
		n = uint(avail)
	}

	if n == 0 {
		return
	}

	_ = r.SeekBits(r.TellBits() + uint64(n))
}
