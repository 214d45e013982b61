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

import "fmt"

// Error reports a failure from an underlying codec (currently only zstd
// can fail; entropy and the LZ counter never do).
type Error struct {
	Op  string
	Msg string
}

func (e Error) Error() string {
	return fmt.Sprintf("stats: %s: %s", e.Op, e.Msg)
}
