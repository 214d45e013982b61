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
package analysis

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bitlayout/analyzer/pkg/stats"
)

// csvHeader is the one stable column order for every row kind; columns
// that don't apply to a given row (e.g. width for a comparison row) are
// left blank rather than reshaping the table.
var csvHeader = []string{
	"kind", "name", "width", "value_count", "bits_per_byte",
	"lz_matches", "estimated_size", "zstd_size", "original_bytes", "ratio",
}

// WriteCSV exports r as one row per field, one per group, and one per
// comparison case (split-group sides and compare-group cases alike),
// with a single stable column order.
func WriteCSV(w io.Writer, r *Results) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, f := range r.Fields {
		row := metricsRow("field", f.Name, f.Metrics)
		row[2] = fmt.Sprintf("%d", f.Width)
		row[3] = fmt.Sprintf("%d", f.ValueCount)

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	for _, g := range r.Groups {
		if err := cw.Write(metricsRow("group", g.Name, g.Metrics)); err != nil {
			return err
		}
	}

	for _, sp := range r.Splits {
		r1 := metricsRow("split_group_1", sp.Name, sp.Group1)
		r2 := metricsRow("split_group_2", sp.Name, sp.Group2)
		r2[9] = ratio(sp.Group2.ZstdSize, sp.Group1.ZstdSize)

		if err := cw.Write(r1); err != nil {
			return err
		}

		if err := cw.Write(r2); err != nil {
			return err
		}
	}

	for _, c := range r.Compares {
		base := metricsRow("compare_baseline", c.Name, c.Baseline)
		if err := cw.Write(base); err != nil {
			return err
		}

		for _, cc := range c.Comparisons {
			row := metricsRow("compare_"+cc.Label, c.Name, cc.Metrics)
			row[9] = ratio(cc.Metrics.ZstdSize, c.Baseline.ZstdSize)

			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

// metricsRow fills the shared columns for a metrics row; callers
// overwrite field-specific columns (width, value_count, ratio) as
// needed.
func metricsRow(kind, name string, m stats.Metrics) []string {
	orig := (m.BitLength + 7) / 8

	return []string{
		kind,
		name,
		"",
		"",
		fmt.Sprintf("%.4f", m.Entropy),
		fmt.Sprintf("%d", m.LZMatches),
		fmt.Sprintf("%d", m.EstimatedSize),
		zstdField(m.ZstdSize),
		fmt.Sprintf("%d", orig),
		"",
	}
}

// ratio renders a/b as a CSV cell, or "n/a" if either side's zstd size
// is unavailable.
func ratio(a, b int) string {
	if a == stats.ZstdUnavailable || b == stats.ZstdUnavailable {
		return "n/a"
	}

	if b == 0 {
		return "0.0000"
	}

	return fmt.Sprintf("%.4f", float64(a)/float64(b))
}
