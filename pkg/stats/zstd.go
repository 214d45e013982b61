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

	"github.com/klauspost/compress/zstd"
)

// DefaultZstdLevel is the default compression level.
const DefaultZstdLevel = 16

// ZstdSize compresses data at the given level (on the CLI's familiar 1-22
// scale) and returns the compressed length in bytes.
func ZstdSize(data []byte, level int) (int, error) {
	var buf bytes.Buffer

	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstdEncoderLevel(level)))
	if err != nil {
		return 0, Error{Op: "zstd_compress", Msg: err.Error()}
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return 0, Error{Op: "zstd_compress", Msg: err.Error()}
	}

	if err := w.Close(); err != nil {
		return 0, Error{Op: "zstd_compress", Msg: err.Error()}
	}

	return buf.Len(), nil
}

// zstdEncoderLevel maps the 1-22 CLI-style level scale onto klauspost's
// four encoder speed tiers.
func zstdEncoderLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 9:
		return zstd.SpeedDefault
	case level <= 15:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}
