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

// Package analysis implements the merge combiner and the results/printer
// model: it turns a schema plus a completed extraction (and any
// split/compare plans) into a scored report, and knows how to fold two
// disjoint files' reports into one without rescanning their raw bytes.
package analysis

import "github.com/bitlayout/analyzer/pkg/stats"

// MergeMetrics is an approximate, O(1)-per-merge combinator for two
// already-scored stats.Metrics: bit lengths and LZ match counts add,
// entropy is recomputed exactly but cheaply from the
// summed byte histograms, and zstd size (which is not summed — summing
// compressed sizes is not meaningful) falls back to a length-weighted
// average. Callers wanting an exact merged zstd size use
// RecomputeExactZstd on a genuinely concatenated byte stream instead.
func MergeMetrics(a, b stats.Metrics) stats.Metrics {
	merged := stats.Metrics{
		BitLength:     a.BitLength + b.BitLength,
		ByteHistogram: a.ByteHistogram,
		LZMatches:     a.LZMatches + b.LZMatches,
	}

	merged.ByteHistogram.Add(b.ByteHistogram)
	merged.Entropy = stats.EntropyOf(merged.ByteHistogram)
	merged.EstimatedSize = stats.EstimatedSize(merged.BitLength, merged.Entropy)
	merged.ZstdSize = weightedAverageZstd(a, b)

	return merged
}

// weightedAverageZstd averages two zstd sizes, weighted by each input's
// byte length, rounding to the nearest byte. If either side's zstd size
// is unavailable, the merged size is unavailable too.
func weightedAverageZstd(a, b stats.Metrics) int {
	if a.ZstdSize == stats.ZstdUnavailable || b.ZstdSize == stats.ZstdUnavailable {
		return stats.ZstdUnavailable
	}

	aLen := (a.BitLength + 7) / 8
	bLen := (b.BitLength + 7) / 8
	total := aLen + bLen

	if total == 0 {
		return 0
	}

	weighted := float64(a.ZstdSize)*float64(aLen) + float64(b.ZstdSize)*float64(bLen)

	return int(weighted/float64(total) + 0.5)
}
