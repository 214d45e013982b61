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
package schema

import "github.com/bitlayout/analyzer/pkg/bit"

// Condition is a single comparison against the raw input bytes: read Bits
// bits at (ByteOffset, BitOffset) in Order, and compare against Value
// (given big-endian, as written in a hex dump of the descriptor).
type Condition struct {
	ByteOffset uint64
	BitOffset  uint
	Bits       uint
	Order      bit.Order
	Value      uint64
}

// Matches evaluates the condition against raw, returning false (never an
// error) if the read range exceeds the input length — per spec, an
// out-of-range condition fails rather than erroring.
func (c Condition) Matches(raw []byte) bool {
	startBit := c.ByteOffset*8 + uint64(c.BitOffset)
	if startBit+uint64(c.Bits) > uint64(len(raw))*8 {
		return false
	}

	r := bit.NewReader(raw)
	if err := r.SeekBits(startBit); err != nil {
		return false
	}

	v, err := r.ReadBits(c.Bits, c.Order)
	if err != nil {
		return false
	}

	return v == c.Value
}

// ConditionalOffset is one candidate starting byte offset, selected when
// all of its Conditions match.
type ConditionalOffset struct {
	Offset     uint64
	Conditions []Condition
}

// matches reports whether every condition in this entry holds against raw.
func (co ConditionalOffset) matches(raw []byte) bool {
	for _, c := range co.Conditions {
		if !c.Matches(raw) {
			return false
		}
	}

	return true
}

// ResolveOffset implements the conditional-offset evaluator (component
// C): the first entry (in declaration order) whose conditions all match
// fixes the starting byte offset; if none match, the offset is 0.
func ResolveOffset(offsets []ConditionalOffset, raw []byte) uint64 {
	for _, co := range offsets {
		if co.matches(raw) {
			return co.Offset
		}
	}

	return 0
}

// SkipIfNotSatisfied evaluates a node's skip_if_not conditions once
// against a file's raw bytes.  A node with no conditions is always kept;
// otherwise it's elided from extraction if any condition fails.
func SkipIfNotSatisfied(conds []Condition, raw []byte) bool {
	for _, c := range conds {
		if !c.Matches(raw) {
			return false
		}
	}

	return true
}
