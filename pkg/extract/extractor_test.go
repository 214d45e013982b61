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
	"encoding/binary"
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/schema"
)

// bc1Schema builds a minimal BC1-block schema: a "colors" group holding
// two 16-bit endpoints, and a 32-bit "indices" field, with a conditional
// offset that detects a DDS header carrying a DXT1 fourCC.
func bc1Schema(t *testing.T) *schema.Schema {
	t.Helper()

	root := &schema.Group{
		Name: "root",
		Children: []schema.Node{
			&schema.Group{
				Name: "colors",
				Children: []schema.Node{
					&schema.Field{Name: "color0", Width: 16, Order: bit.MSB},
					&schema.Field{Name: "color1", Width: 16, Order: bit.MSB},
				},
			},
			&schema.Field{Name: "indices", Width: 32, Order: bit.MSB},
		},
	}

	s, err := schema.Build(schema.BuildInput{
		DefaultOrder: bit.MSB,
		Root:         root,
		ConditionalOffsets: []schema.ConditionalOffset{
			{
				Offset: 0x80,
				Conditions: []schema.Condition{
					{ByteOffset: 0, Bits: 32, Order: bit.MSB, Value: 0x44445320},
					{ByteOffset: 0x54, Bits: 32, Order: bit.MSB, Value: 0x44585431},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	return s
}

// BC1 DDS detection.
func Test_BC1DDSDetection(t *testing.T) {
	s := bc1Schema(t)

	data := make([]byte, 0x80+16)
	binary.BigEndian.PutUint32(data[0:4], 0x44445320)
	binary.BigEndian.PutUint32(data[0x54:0x58], 0x44585431)

	set := Run(s, data, DefaultOptions())

	assert.Equal(t, uint64(0x80), set.StartOffset, "start offset")
	assert.Equal(t, uint64(2), set.RecordCount, "record count")

	indicesID, _ := s.LeafByName("indices")
	assert.Equal(t, uint64(64), set.Accumulators[indicesID].BitLength(), "indices bit length")

	colorGroupID, _ := s.GroupByName("colors")
	leaves := schema.DescendantLeaves(s, s.GroupNode(colorGroupID))

	var colorsBits uint64
	for _, id := range leaves {
		colorsBits += set.Accumulators[id].BitLength()
	}

	assert.Equal(t, uint64(64), colorsBits, "colors group bit length")
}

// No matching header -> offset defaults to 0.
func Test_NoMatch_DefaultsToZero(t *testing.T) {
	s := bc1Schema(t)
	data := make([]byte, 8)

	set := Run(s, data, DefaultOptions())
	assert.Equal(t, uint64(0), set.StartOffset, "default offset")
}

// Skip-if-not elision.
func Test_SkipIfNotElision(t *testing.T) {
	root := &schema.Group{
		Name: "root",
		Children: []schema.Node{
			&schema.Group{
				Name: "optional",
				SkipIfNot: []schema.Condition{
					{ByteOffset: 0, Bits: 8, Order: bit.MSB, Value: 0xFF},
				},
				Children: []schema.Node{&schema.Field{Name: "x", Width: 8, Order: bit.MSB}},
			},
			&schema.Field{Name: "y", Width: 8, Order: bit.MSB},
		},
	}

	s, err := schema.Build(schema.BuildInput{DefaultOrder: bit.MSB, Root: root})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data := []byte{0x00, 0xAB, 0xCD} // condition fails: byte 0 is 0x00, not 0xFF
	set := Run(s, data, DefaultOptions())

	xID, _ := s.LeafByName("x")
	yID, _ := s.LeafByName("y")

	assert.Equal(t, uint64(0), set.Accumulators[xID].BitLength(), "x accumulated bits")
	assert.Equal(t, uint64(1), set.Accumulators[yID].ValueCount(), "y (sibling, unaffected) value count")
}

// Size conservation: sum of leaf bit lengths equals records *
// record_width.
func Test_SizeConservation(t *testing.T) {
	s := bc1Schema(t)
	data := make([]byte, 0x80+24) // all zero: no header matches, so 19 records of 8 bytes from offset 0

	set := Run(s, data, DefaultOptions())

	var total uint64
	for _, acc := range set.Accumulators {
		total += acc.BitLength()
	}

	want := set.RecordCount * uint64(s.RecordWidth())
	assert.Equal(t, want, total, "size conservation violated")
}
