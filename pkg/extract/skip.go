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

import "github.com/bitlayout/analyzer/pkg/schema"

// resolveActiveLeaves evaluates every node's skip_if_not once against a
// file's raw header bytes, and returns which leaves participate in
// extraction for that file.  A node whose own conditions fail, or whose
// ancestor's conditions failed, contributes zero bits for the whole
// file: the whole subtree is elided from extraction.
//
// The underlying byte stream is still walked at full schema width per
// record (skipped fields still occupy physical space); only the
// accumulator write is suppressed.
func resolveActiveLeaves(s *schema.Schema, raw []byte) []bool {
	active := make([]bool, len(s.Leaves))
	walkActive(s, s.Root, raw, true, active)

	return active
}

func walkActive(s *schema.Schema, n schema.Node, raw []byte, parentActive bool, active []bool) {
	switch v := n.(type) {
	case *schema.Field:
		active[v.ID] = parentActive && schema.SkipIfNotSatisfied(v.SkipIfNot, raw)
	case *schema.Group:
		here := parentActive && schema.SkipIfNotSatisfied(v.SkipIfNot, raw)
		for _, c := range v.Children {
			walkActive(s, c, raw, here, active)
		}
	}
}
