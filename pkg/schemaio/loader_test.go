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
package schemaio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
	"github.com/bitlayout/analyzer/pkg/extract"
)

// bc1YAML describes a BC1-in-DDS layout: a 128-byte header gated on the
// DDS magic and DXT1 fourCC, followed by 8-byte BC1 blocks (two packed
// RGB565 endpoints and a 32-bit index mask).
const bc1YAML = `
version: "1"
metadata:
  name: bc1-dds
  description: BC1 block compression inside a DDS container
bit_order: msb
conditional_offsets:
  - offset: 0x80
    conditions:
      - byte_offset: 0
        bits: 32
        value: 0x44445320
      - byte_offset: 0x54
        bits: 32
        value: 0x44585431
root:
  type: group
  fields:
    colors:
      type: group
      fields:
        color0: 16
        color1: 16
    indices: 32
`

func Test_FromBytes_BC1Scenario(t *testing.T) {
	s, err := FromBytes([]byte(bc1YAML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	header := make([]byte, 0x80)
	header[0], header[1], header[2], header[3] = 0x44, 0x44, 0x53, 0x20
	header[0x54], header[0x55], header[0x56], header[0x57] = 0x44, 0x58, 0x54, 0x31

	data := append(header, make([]byte, 16)...)

	set := extract.Run(s, data, extract.DefaultOptions())

	assert.Equal(t, uint64(0x80), set.StartOffset, "start offset")
	assert.Equal(t, uint64(2), set.RecordCount, "record count")
}

func Test_FromBytes_RejectsUnknownBitOrder(t *testing.T) {
	doc := `
version: "1"
metadata:
  name: bad
bit_order: middle-endian
root:
  type: group
  fields:
    a: 8
`
	_, err := FromBytes([]byte(doc))
	assert.True(t, err != nil, "expected an error for an unknown bit_order")
}

func Test_FromBytes_RejectsNonGroupRoot(t *testing.T) {
	doc := `
version: "1"
metadata:
  name: bad
root: 8
`
	_, err := FromBytes([]byte(doc))
	assert.True(t, err != nil, "expected an error when root is a bare field")
}

func Test_FromBytes_ShorthandFieldWidth(t *testing.T) {
	s, err := FromBytes([]byte(`
version: "1"
metadata:
  name: shorthand
root:
  type: group
  fields:
    a: 4
    b: 4
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	data := []byte{0xAB}
	set := extract.Run(s, data, extract.DefaultOptions())

	assert.Equal(t, uint64(1), set.RecordCount, "record count")

	for i, fa := range set.Accumulators {
		assert.Equal(t, uint64(4), fa.BitLength(), "leaf %d accumulated bits", i)
	}
}

func Test_Load_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")

	doc := []byte("version: \"1\"\nmetadata:\n  name: t\nroot:\n  type: group\n  fields:\n    a: 8\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}
