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
package bit

import (
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
)

// MSB vs LSB extraction.
func Test_MsbLsb(t *testing.T) {
	data := []byte{0b10000000}

	r := NewReader(data)

	f1, err := r.ReadBits(2, MSB)
	assert.True(t, err == nil, "msb field1: unexpected error %v", err)
	assert.Equal(t, uint64(2), f1, "msb field1")

	f2, err := r.ReadBits(2, MSB)
	assert.True(t, err == nil, "msb field2: unexpected error %v", err)
	assert.Equal(t, uint64(0), f2, "msb field2")

	r2 := NewReader(data)

	g1, err := r2.ReadBits(2, LSB)
	assert.True(t, err == nil, "lsb field1: unexpected error %v", err)
	assert.Equal(t, uint64(1), g1, "lsb field1")

	g2, err := r2.ReadBits(2, LSB)
	assert.True(t, err == nil, "lsb field2: unexpected error %v", err)
	assert.Equal(t, uint64(0), g2, "lsb field2")
}

// Bit-order symmetry: reading N bits in MSB order is the bit-reverse of
// reading the same physical bits in LSB order.
func Test_OrderSymmetry(t *testing.T) {
	data := []byte{0b11010010, 0b01101101}

	for width := uint(1); width <= 16; width++ {
		rm := NewReader(data)
		rl := NewReader(data)

		vm, err := rm.ReadBits(width, MSB)
		if err != nil {
			t.Fatalf("width %d: msb read failed: %v", width, err)
		}

		vl, err := rl.ReadBits(width, LSB)
		if err != nil {
			t.Fatalf("width %d: lsb read failed: %v", width, err)
		}

		assert.Equal(t, vl, reverseBits(vm, width), "width %d: reverse(%b) mismatch", width, vm)
	}
}

// Writing the value read back with the same order reproduces the original
// bytes (the Roundtrip property applied at the single-read granularity).
func Test_WriteReadRoundtrip(t *testing.T) {
	cases := []struct {
		width uint
		order Order
		value uint64
	}{
		{7, MSB, 0x5a},
		{13, LSB, 0x1234},
		{64, MSB, 0xdeadbeefcafef00d},
		{1, LSB, 1},
	}

	for _, c := range cases {
		w := NewWriter()
		if err := w.WriteBits(c.value&Mask(c.width), c.width, c.order); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		r := NewReader(w.Bytes())

		got, err := r.ReadBits(c.width, c.order)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}

		assert.Equal(t, c.value&Mask(c.width), got, "width %d order %v", c.width, c.order)
	}
}

func Test_EndOfStream(t *testing.T) {
	r := NewReader([]byte{0x00})

	_, err := r.ReadBits(9, MSB)
	assert.Equal(t, ErrEndOfStream, err)
}

func Test_SeekTellRemaining(t *testing.T) {
	r := NewReader([]byte{0, 0, 0})

	assert.Equal(t, uint64(24), r.RemainingBits(), "initial remaining bits")

	if err := r.SeekBits(8); err != nil {
		t.Fatalf("seek failed: %v", err)
	}

	assert.Equal(t, uint64(8), r.TellBits(), "cursor position")
	assert.Equal(t, uint64(16), r.RemainingBits(), "remaining bits after seek")
}
