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

import "github.com/bitlayout/analyzer/pkg/bit"

// Build resolves a raw, name-addressed tree plus name-addressed analysis
// plans into an immutable Schema whose plans carry LeafID/GroupID
// references.  Per the design notes, all name lookups happen exactly
// once, here; nothing downstream resolves a name again.
//
// Build assumes Order and SkipFrequencyAnalysis have already been
// resolved (inherited from parent groups where not explicitly set) on
// every Field and Group in the tree — that propagation is the
// descriptor loader's job (pkg/schemaio), not Build's.
func Build(in BuildInput) (*Schema, error) {
	s := &Schema{
		Version:            in.Version,
		Name:               in.Name,
		Description:        in.Description,
		DefaultOrder:       in.DefaultOrder,
		ConditionalOffsets: in.ConditionalOffsets,
		Root:               in.Root,
		leafByName:         map[string]LeafID{},
		groupByName:        map[string]GroupID{},
	}

	if in.Root == nil {
		return nil, newError(ErrRootNotGroup, "schema root must be a group")
	}

	if err := s.assignIDs(s.Root, nil); err != nil {
		return nil, err
	}

	if err := s.validateWidths(s.Root); err != nil {
		return nil, err
	}

	splits, err := resolveSplitGroups(s, in.SplitGroups)
	if err != nil {
		return nil, err
	}

	s.SplitGroups = splits

	compares, err := resolveCompareGroups(s, in.CompareGroups)
	if err != nil {
		return nil, err
	}

	s.CompareGroups = compares

	return s, nil
}

// BuildInput is the raw, name-addressed material Build consumes.
type BuildInput struct {
	Version            string
	Name               string
	Description        string
	DefaultOrder       bit.Order
	ConditionalOffsets []ConditionalOffset
	Root               *Group
	SplitGroups        []RawSplitGroup
	CompareGroups      []RawCompareGroup
}

// assignIDs walks the tree in declaration order (pre-order, depth first),
// assigning dense LeafID/GroupID values, recording each node's immediate
// parent, and checking for duplicate names across the whole tree.
func (s *Schema) assignIDs(n Node, parent *Group) error {
	name := n.NodeName()
	if _, exists := s.leafByName[name]; exists {
		return newError(ErrDuplicateName, "duplicate name %q", name)
	}

	if _, exists := s.groupByName[name]; exists {
		return newError(ErrDuplicateName, "duplicate name %q", name)
	}

	switch v := n.(type) {
	case *Field:
		if v.Width < 1 || v.Width > 64 {
			return newError(ErrInvalidWidth, "field %q has invalid width %d", v.Name, v.Width)
		}

		v.ID = LeafID(len(s.Leaves))
		s.leafByName[name] = v.ID
		s.Leaves = append(s.Leaves, v)
		s.LeafParent = append(s.LeafParent, parent)
	case *Group:
		v.ID = GroupID(len(s.Groups))
		s.groupByName[name] = v.ID
		s.Groups = append(s.Groups, v)
		s.GroupParent = append(s.GroupParent, parent)

		for _, c := range v.Children {
			if err := s.assignIDs(c, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateWidths checks that every group (recursively) has a positive
// width once its children are accounted for.
func (s *Schema) validateWidths(g *Group) error {
	if g.Width() < 1 {
		return newError(ErrEmptyGroup, "group %q has width < 1", g.Name)
	}

	for _, c := range g.Children {
		if child, ok := c.(*Group); ok {
			if err := s.validateWidths(child); err != nil {
				return err
			}
		}
	}

	return nil
}
