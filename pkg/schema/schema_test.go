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
package schema

import (
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
	"github.com/bitlayout/analyzer/pkg/bit"
)

func simpleRoot() *Group {
	return &Group{
		Name:  "root",
		Order: bit.MSB,
		Children: []Node{
			&Field{Name: "a", Width: 4, Order: bit.MSB},
			&Field{Name: "b", Width: 4, Order: bit.MSB},
		},
	}
}

func Test_Build_Basic(t *testing.T) {
	s, err := Build(BuildInput{Version: "1", DefaultOrder: bit.MSB, Root: simpleRoot()})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	assert.Equal(t, uint(8), s.RecordWidth(), "record width")
	assert.Equal(t, 2, len(s.Leaves), "leaf count")

	id, ok := s.LeafByName("a")
	assert.True(t, ok, "expected leaf a to resolve")
	assert.Equal(t, LeafID(0), id, "leaf a id")
}

func Test_Build_DuplicateName(t *testing.T) {
	root := &Group{
		Name: "root",
		Children: []Node{
			&Field{Name: "a", Width: 4},
			&Field{Name: "a", Width: 4},
		},
	}

	_, err := Build(BuildInput{Root: root})
	if err == nil {
		t.Fatal("expected duplicate name error")
	}

	serr, ok := err.(*Error)
	assert.True(t, ok, "expected a *Error, got %T", err)
	assert.Equal(t, ErrDuplicateName, serr.Kind)
}

func Test_Build_InvalidWidth(t *testing.T) {
	root := &Group{
		Name:     "root",
		Children: []Node{&Field{Name: "a", Width: 0}},
	}

	_, err := Build(BuildInput{Root: root})
	if err == nil {
		t.Fatal("expected invalid width error")
	}
}

func Test_SplitGroup_Resolution(t *testing.T) {
	root := &Group{
		Name: "root",
		Children: []Node{
			&Group{Name: "rgb", Children: []Node{
				&Field{Name: "r", Width: 5},
				&Field{Name: "g", Width: 5},
				&Field{Name: "b", Width: 5},
			}},
		},
	}

	s, err := Build(BuildInput{
		Root: root,
		SplitGroups: []RawSplitGroup{
			{Name: "split", Group1: []string{"rgb"}, Group2: []string{"r", "g", "b"}},
		},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	assert.Equal(t, 1, len(s.SplitGroups), "split group count")

	sg := s.SplitGroups[0]
	assert.Equal(t, 3, len(sg.Group1), "group1 leaf count")
	assert.Equal(t, 3, len(sg.Group2), "group2 leaf count")

	for i := range sg.Group1 {
		if sg.Group1[i] != sg.Group2[i] {
			t.Fatalf("expected group1/group2 leaves to match position %d: %v vs %v", i, sg.Group1, sg.Group2)
		}
	}
}

// Skip-if-not elision is a property of the *extractor*, not the
// schema, but the schema must carry the conditions through untouched.
func Test_SkipIfNot_Carried(t *testing.T) {
	cond := Condition{ByteOffset: 0, Bits: 8, Value: 0xAB, Order: bit.MSB}
	root := &Group{
		Name: "root",
		Children: []Node{
			&Group{
				Name:      "optional",
				SkipIfNot: []Condition{cond},
				Children:  []Node{&Field{Name: "x", Width: 8}},
			},
			&Field{Name: "y", Width: 8},
		},
	}

	s, err := Build(BuildInput{Root: root})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	grp := s.GroupNode(1)
	assert.Equal(t, 1, len(grp.SkipIfNot), "expected skip_if_not to be carried through build")
}
