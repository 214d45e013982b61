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
package stats

import (
	"bytes"
	"math"
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
)

func Test_Entropy_Uniform(t *testing.T) {
	// All 256 byte values exactly once: maximum entropy, 8 bits/byte.
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	e := Entropy(data)
	assert.True(t, math.Abs(e-8.0) <= 1e-9, "expected entropy 8.0, got %f", e)
}

func Test_Entropy_Constant(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 128)

	assert.Equal(t, float64(0), Entropy(data), "expected entropy 0 for constant data")
}

func Test_Entropy_Empty(t *testing.T) {
	assert.Equal(t, float64(0), Entropy(nil), "expected entropy 0 for empty input")
}

func Test_ByteHistogram_MergeMatchesDirect(t *testing.T) {
	a := []byte{1, 2, 3, 1, 2}
	b := []byte{3, 3, 4}

	merged := ByteFrequencies(a)
	hb := ByteFrequencies(b)
	merged.Add(hb)

	direct := ByteFrequencies(append(append([]byte{}, a...), b...))

	assert.Equal(t, direct, merged, "merged histogram does not match direct histogram")
	assert.True(t, math.Abs(EntropyOf(merged)-EntropyOf(direct)) <= 1e-12, "entropy from merged histogram diverges from direct")
}

func Test_CountLZMatches_RepeatedPattern(t *testing.T) {
	// A long repeated pattern should yield at least one back-reference.
	data := bytes.Repeat([]byte("abcabcabc"), 10)

	assert.True(t, CountLZMatches(data) > 0, "expected at least one LZ match in repetitive data")
}

func Test_CountLZMatches_NoRepeats(t *testing.T) {
	// Strictly increasing bytes: with a 3-byte minimum match and no
	// repeated 3-grams, there should be no matches.
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}

	assert.Equal(t, 0, CountLZMatches(data), "expected zero LZ matches in non-repeating data")
}

func Test_CountLZMatches_TooShort(t *testing.T) {
	assert.Equal(t, 0, CountLZMatches([]byte{1, 2}), "expected zero matches for input shorter than min match")
}

func Test_EstimatedSize(t *testing.T) {
	// 8 bytes at full entropy (8 bits/byte) should estimate to ~8 bytes.
	assert.Equal(t, uint64(8), EstimatedSize(64, 8.0), "expected estimated size 8")
	assert.Equal(t, uint64(0), EstimatedSize(64, 0), "expected estimated size 0 for zero entropy")
}

func Test_ZstdSize_CompressesRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 4096)

	size, err := ZstdSize(data, DefaultZstdLevel)
	if err != nil {
		t.Fatalf("zstd compression failed: %v", err)
	}

	assert.True(t, size < len(data), "expected compressed size smaller than input, got %d >= %d", size, len(data))
}

func Test_Compute_Integration(t *testing.T) {
	data := bytes.Repeat([]byte("xyz"), 100)

	m := Compute(uint64(len(data))*8, data, DefaultZstdLevel)

	assert.Equal(t, uint64(len(data))*8, m.BitLength, "unexpected bit length")
	assert.True(t, m.ZstdSize != 0, "expected non-zero zstd size")
	assert.True(t, m.LZMatches != 0, "expected LZ matches for repeated data")
}

func Test_Compute_ZstdUnavailableSentinelNeverNegativeOnSuccess(t *testing.T) {
	m := Compute(24, []byte{1, 2, 3}, DefaultZstdLevel)

	assert.True(t, m.ZstdSize != ZstdUnavailable, "expected a real zstd size for a valid encoder level, got unavailable sentinel")
}
