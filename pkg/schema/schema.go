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

// Package schema holds the in-memory, validated tree of fields and groups
// that drives extraction, statistics and layout replay.  A Schema is
// immutable once built: all name references (analysis plans and split
// groups) are resolved to integer indices at
// construction time, so nothing downstream ever looks a field up by
// string.
package schema

import "github.com/bitlayout/analyzer/pkg/bit"

// LeafID is a resolved, dense index into Schema.Leaves.  Plans carry
// LeafID references rather than names once a Schema has been built.
type LeafID int

// GroupID is a resolved, dense index into Schema.Groups (which includes
// the root).
type GroupID int

// Node is the closed sum type of tree members: *Field (leaf) or *Group.
// Pattern-match via a type switch rather than a vtable, per the small,
// fixed variant set.
type Node interface {
	// NodeName returns this node's schema-wide unique name.
	NodeName() string
	isNode()
}

// Field is a leaf: a single value of a fixed bit width, read each record.
type Field struct {
	Name                  string
	Width                 uint
	Order                 bit.Order
	SkipFrequencyAnalysis bool
	SkipIfNot             []Condition
	// ID is the resolved leaf index, assigned by Build.
	ID LeafID
}

// NodeName implements Node.
func (f *Field) NodeName() string { return f.Name }
func (*Field) isNode()            {}

// Group is purely organisational: its width is the sum of its children's
// widths, and it contributes no bits of its own.  Order and
// SkipFrequencyAnalysis are inherited defaults for children that don't
// set their own.
type Group struct {
	Name                  string
	Description           string
	Order                 bit.Order
	SkipFrequencyAnalysis bool
	SkipIfNot             []Condition
	Children              []Node
	// ID is the resolved group index, assigned by Build.
	ID GroupID
}

// NodeName implements Node.
func (g *Group) NodeName() string { return g.Name }
func (*Group) isNode()            {}

// Width computes this group's bit width as the sum of its children's
// widths (recursively, for nested groups).
func (g *Group) Width() uint {
	var w uint
	for _, c := range g.Children {
		switch n := c.(type) {
		case *Field:
			w += n.Width
		case *Group:
			w += n.Width()
		}
	}

	return w
}

// Schema is the immutable, validated tree plus its analysis plans.
type Schema struct {
	Version            string
	Name               string
	Description        string
	DefaultOrder       bit.Order
	ConditionalOffsets []ConditionalOffset
	Root               *Group
	SplitGroups        []SplitGroup
	CompareGroups      []CompareGroup

	// Leaves is the flat, declaration-ordered array of all fields in the
	// tree; LeafID indexes into it.
	Leaves []*Field
	// Groups is the flat, declaration-ordered array of all groups in the
	// tree (including Root); GroupID indexes into it.
	Groups []*Group

	// LeafParent holds each leaf's immediate enclosing group, indexed by
	// LeafID.
	LeafParent []*Group
	// GroupParent holds each group's immediate enclosing group, indexed
	// by GroupID; the root's own entry is nil.
	GroupParent []*Group

	leafByName  map[string]LeafID
	groupByName map[string]GroupID
}

// RecordWidth returns the total bit width of one record (the root
// group's width).
func (s *Schema) RecordWidth() uint {
	return s.Root.Width()
}

// LeafByName resolves a field name to its LeafID.
func (s *Schema) LeafByName(name string) (LeafID, bool) {
	id, ok := s.leafByName[name]
	return id, ok
}

// GroupByName resolves a group name to its GroupID.
func (s *Schema) GroupByName(name string) (GroupID, bool) {
	id, ok := s.groupByName[name]
	return id, ok
}

// Leaf returns the field for a given LeafID.
func (s *Schema) Leaf(id LeafID) *Field {
	return s.Leaves[id]
}

// GroupNode returns the group for a given GroupID.
func (s *Schema) GroupNode(id GroupID) *Group {
	return s.Groups[id]
}

// DescendantLeaves returns, in declaration order, the LeafIDs of all
// fields beneath (and including, if it were a field) the given node.
func DescendantLeaves(s *Schema, n Node) []LeafID {
	switch v := n.(type) {
	case *Field:
		return []LeafID{v.ID}
	case *Group:
		var out []LeafID
		for _, c := range v.Children {
			out = append(out, DescendantLeaves(s, c)...)
		}

		return out
	default:
		return nil
	}
}
