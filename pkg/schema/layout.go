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

// LayoutOp is the closed sum type of top-level layout operations: *Array
// or *Struct.  Only these two are valid at the top level of a
// split/compare session; Struct itself can only hold StructOp members,
// which structurally excludes nesting a Struct inside a Struct.
type LayoutOp interface {
	layoutOp()
}

// Array emits every remaining value of Field, taking the slice
// [Offset, Offset+Bits) of each value (high-to-low within the value).
type Array struct {
	Field  LeafID
	Offset uint
	Bits   uint
}

func (*Array) layoutOp() {}

// Struct repeats a row of StructOp until a full pass produces no
// field-backed output.
type Struct struct {
	Fields []StructOp
}

func (*Struct) layoutOp() {}

// StructOp is the closed sum type of one row entry inside a Struct:
// *StructField, *StructPadding, or *StructSkip.
type StructOp interface {
	structOp()
}

// StructField consumes one value of Field (cursor += Field's width) and
// emits its high Bits bits.  Emits nothing (without error) if Field is
// already exhausted.
type StructField struct {
	Field LeafID
	Bits  uint
}

func (*StructField) structOp() {}

// StructPadding emits Bits bits of the fixed Value; never sets
// "data produced".
type StructPadding struct {
	Bits  uint
	Value uint64
}

func (*StructPadding) structOp() {}

// StructSkip advances Field's cursor by Bits without emitting anything.
type StructSkip struct {
	Field LeafID
	Bits  uint
}

func (*StructSkip) structOp() {}

// SplitGroup compares a parent group against its component children: the
// synthetic stream for each side is the concatenation of the
// constituent leaves' accumulator bit buffers, in declaration order.
type SplitGroup struct {
	Name        string
	Description string
	Group1      []LeafID
	Group2      []LeafID
}

// ComparisonCase is one named alternative layout within a CompareGroup.
// Comparisons are kept as an ordered slice (not a map) so that report
// output follows descriptor declaration order rather than map iteration
// order.
type ComparisonCase struct {
	Label string
	Ops   []LayoutOp
}

// CompareGroup is a named plan comparing a Baseline layout against one or
// more labelled Comparisons, all built from the same underlying
// accumulators.
type CompareGroup struct {
	Name        string
	Description string
	Baseline    []LayoutOp
	Comparisons []ComparisonCase
}
