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
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/extract"
	"github.com/bitlayout/analyzer/pkg/schema"
)

func buildTestSchema(t *testing.T) *schema.Schema {
	t.Helper()

	root := &schema.Group{
		Name: "root",
		Children: []schema.Node{
			&schema.Field{Name: "a", Width: 8, Order: bit.MSB},
			&schema.Field{Name: "b", Width: 8, Order: bit.MSB},
		},
	}

	s, err := schema.Build(schema.BuildInput{DefaultOrder: bit.MSB, Root: root})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	return s
}

// Interleave: an Array replay over field "a" should reproduce exactly
// the sequence of values extracted for "a".
func Test_RunOps_ArrayRoundtrip(t *testing.T) {
	s := buildTestSchema(t)

	// 3 records of 2 bytes each: a=0x11,b=0x22 / a=0x33,b=0x44 / a=0x55,b=0x66
	data := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	set := extract.Run(s, data, extract.DefaultOptions())

	aID, _ := s.LeafByName("a")
	out := RunOps(set, []schema.LayoutOp{&schema.Array{Field: aID, Offset: 0, Bits: 8}}, bit.MSB)

	want := []byte{0x11, 0x33, 0x55}
	assert.Equal(t, want, out)
}

// Struct termination: a struct row pulling from both fields should stop
// once both are exhausted, without emitting a trailing empty row.
func Test_RunOps_StructTermination(t *testing.T) {
	s := buildTestSchema(t)

	data := []byte{0x11, 0x22, 0x33, 0x44}
	set := extract.Run(s, data, extract.DefaultOptions())

	aID, _ := s.LeafByName("a")
	bID, _ := s.LeafByName("b")

	ops := []schema.LayoutOp{&schema.Struct{Fields: []schema.StructOp{
		&schema.StructField{Field: aID, Bits: 8},
		&schema.StructField{Field: bID, Bits: 8},
	}}}

	out := RunOps(set, ops, bit.MSB)

	want := []byte{0x11, 0x22, 0x33, 0x44}
	assert.Equal(t, want, out)
}

// Struct with an exhausted field mid-row: over-consumption must not
// error, and the partial row's produced bits are kept.
func Test_RunOps_StructPartialRowKept(t *testing.T) {
	s := buildTestSchema(t)

	// Extraction always yields equal value counts per field, so give "a"
	// a third value by appending to its accumulator directly: a has three
	// values, b has two.
	data := []byte{0x11, 0x22, 0x33, 0x44}
	set := extract.Run(s, data, extract.DefaultOptions())

	aID, _ := s.LeafByName("a")
	bID, _ := s.LeafByName("b")

	set.Accumulators[aID].Append(0x55)

	// The third row has a's value but not b's; it is kept as emitted.
	ops := []schema.LayoutOp{&schema.Struct{Fields: []schema.StructOp{
		&schema.StructField{Field: aID, Bits: 8},
		&schema.StructField{Field: bID, Bits: 8},
	}}}

	out := RunOps(set, ops, bit.MSB)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x55}, out, "expected the partial third row to be kept")
}

func Test_RunSplitGroup_ConcatenatesInOrder(t *testing.T) {
	s := buildTestSchema(t)

	data := []byte{0x11, 0x22, 0x33, 0x44}
	set := extract.Run(s, data, extract.DefaultOptions())

	aID, _ := s.LeafByName("a")
	bID, _ := s.LeafByName("b")

	out := RunSplitGroup(set, []schema.LeafID{aID, bID})

	want := []byte{0x11, 0x33, 0x22, 0x44}
	assert.Equal(t, want, out)
}

func Test_RunOps_EmptyFieldArray(t *testing.T) {
	root := &schema.Group{Name: "root", Children: []schema.Node{&schema.Field{Name: "a", Width: 8, Order: bit.MSB}}}

	s, err := schema.Build(schema.BuildInput{DefaultOrder: bit.MSB, Root: root})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	set := extract.Run(s, nil, extract.DefaultOptions())

	aID, _ := s.LeafByName("a")
	out := RunOps(set, []schema.LayoutOp{&schema.Array{Field: aID, Offset: 0, Bits: 8}}, bit.MSB)

	assert.Equal(t, 0, len(out), "expected empty output for empty field")
}
