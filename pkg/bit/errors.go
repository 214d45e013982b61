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

import "errors"

// ErrEndOfStream is returned when a read requests more bits than remain in
// the underlying buffer.
var ErrEndOfStream = errors.New("bit: end of stream")

// ErrInvalidWidth is returned when a caller requests a bit width outside
// [1,64].
var ErrInvalidWidth = errors.New("bit: width must be in [1,64]")
