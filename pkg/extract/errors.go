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

import "fmt"

// WarningKind classifies a non-fatal condition raised during extraction.
type WarningKind uint8

const (
	// WarnInputTooShort indicates the input couldn't provide even one
	// record after the resolved start offset.
	WarnInputTooShort WarningKind = iota
	// WarnFrequencyCapExceeded indicates a field requested frequency
	// analysis but its width exceeds FreqCap; its histogram was disabled.
	WarnFrequencyCapExceeded
)

// Warning is a recoverable condition; extraction continues regardless.
type Warning struct {
	Kind  WarningKind
	Field string
	Msg   string
}

func (w Warning) Error() string {
	return fmt.Sprintf("extract: %s", w.Msg)
}
