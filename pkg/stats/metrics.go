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

// Package stats implements the per-field statistics engine: Shannon
// entropy, a reproducible LZ77 match counter, an entropy-based size
// estimate, and real zstd sizing. Every metric here is defined over a
// byte-padded view of a leaf or group's concatenated bit buffer.
package stats

// ZstdUnavailable is the sentinel ZstdSize value reported when the zstd
// encoder failed for this field's buffer. Every other metric is still
// computed and valid; only the zstd component is missing.
const ZstdUnavailable = -1

// Metrics holds every statistic computed for one field, group, or
// synthetic layout stream.
type Metrics struct {
	// BitLength is the number of bits actually accumulated, before byte
	// padding.
	BitLength uint64
	// ByteHistogram is retained so a later merge can recompute entropy
	// exactly without re-scanning the original bytes.
	ByteHistogram ByteHistogram
	Entropy       float64
	LZMatches     int
	EstimatedSize uint64
	// ZstdSize is the compressed length in bytes, or ZstdUnavailable if
	// the encoder failed for this buffer.
	ZstdSize int
}

// Compute runs the full statistics engine over one accumulator's
// zero-padded byte buffer. A zstd encoder failure never aborts the other
// metrics: it degrades ZstdSize to ZstdUnavailable and Compute still
// returns the rest of the measurements.
func Compute(bitLength uint64, data []byte, zstdLevel int) Metrics {
	hist := ByteFrequencies(data)
	entropy := EntropyOf(hist)

	zsize, err := ZstdSize(data, zstdLevel)
	if err != nil {
		zsize = ZstdUnavailable
	}

	return Metrics{
		BitLength:     bitLength,
		ByteHistogram: hist,
		Entropy:       entropy,
		LZMatches:     CountLZMatches(data),
		EstimatedSize: EstimatedSize(bitLength, entropy),
		ZstdSize:      zsize,
	}
}

// EstimatedSize computes an entropy-based size estimate:
// ceil(L/8) * entropy / 8, in bytes.
func EstimatedSize(bitLength uint64, entropy float64) uint64 {
	byteLen := (bitLength + 7) / 8
	return uint64(float64(byteLen) * entropy / 8)
}
