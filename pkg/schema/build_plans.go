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

// This file holds the name-addressed ("raw") mirror of the LayoutOp /
// StructOp / SplitGroup / CompareGroup sum types defined in layout.go.
// The descriptor loader (pkg/schemaio) builds these directly from the
// YAML document, since field names aren't resolved to LeafID until
// Build runs; Build's resolveSplitGroups/resolveCompareGroups convert
// them into the LeafID-addressed runtime form.

// RawLayoutOp is the closed sum type of an unresolved top-level layout
// operation: *RawArray or *RawStruct.
type RawLayoutOp interface {
	rawLayoutOp()
}

// RawArray is the name-addressed mirror of Array.
type RawArray struct {
	Field  string
	Offset uint
	Bits   uint
}

func (*RawArray) rawLayoutOp() {}

// RawStruct is the name-addressed mirror of Struct.
type RawStruct struct {
	Fields []RawStructOp
}

func (*RawStruct) rawLayoutOp() {}

// RawStructOp is the closed sum type of an unresolved struct row entry.
type RawStructOp interface {
	rawStructOp()
}

// RawStructField is the name-addressed mirror of StructField.
type RawStructField struct {
	Field string
	Bits  uint
}

func (*RawStructField) rawStructOp() {}

// RawStructPadding is identical to StructPadding (no names to resolve).
type RawStructPadding struct {
	Bits  uint
	Value uint64
}

func (*RawStructPadding) rawStructOp() {}

// RawStructSkip is the name-addressed mirror of StructSkip.
type RawStructSkip struct {
	Field string
	Bits  uint
}

func (*RawStructSkip) rawStructOp() {}

// RawSplitGroup is the name-addressed mirror of SplitGroup.
type RawSplitGroup struct {
	Name        string
	Description string
	Group1      []string
	Group2      []string
}

// RawComparisonCase is the name-addressed mirror of ComparisonCase.
type RawComparisonCase struct {
	Label string
	Ops   []RawLayoutOp
}

// RawCompareGroup is the name-addressed mirror of CompareGroup.
type RawCompareGroup struct {
	Name        string
	Description string
	Baseline    []RawLayoutOp
	Comparisons []RawComparisonCase
}

// resolveSplitGroups resolves every RawSplitGroup's path lists to
// declaration-ordered leaf lists.
func resolveSplitGroups(s *Schema, raws []RawSplitGroup) ([]SplitGroup, error) {
	out := make([]SplitGroup, 0, len(raws))

	for _, r := range raws {
		g1, err := s.resolveLeafPaths(r.Group1)
		if err != nil {
			return nil, err
		}

		g2, err := s.resolveLeafPaths(r.Group2)
		if err != nil {
			return nil, err
		}

		out = append(out, SplitGroup{
			Name:        r.Name,
			Description: r.Description,
			Group1:      g1,
			Group2:      g2,
		})
	}

	return out, nil
}

// resolveLeafPaths flattens a list of field-or-group names into their
// descendant leaves, in declaration order, concatenated in the order the
// names were given.
func (s *Schema) resolveLeafPaths(names []string) ([]LeafID, error) {
	var out []LeafID

	for _, name := range names {
		if id, ok := s.leafByName[name]; ok {
			out = append(out, id)
			continue
		}

		if gid, ok := s.groupByName[name]; ok {
			out = append(out, DescendantLeaves(s, s.Groups[gid])...)
			continue
		}

		return nil, newError(ErrUnknownReference, "unknown field or group %q", name)
	}

	return out, nil
}

// resolveCompareGroups resolves every RawCompareGroup's field references.
func resolveCompareGroups(s *Schema, raws []RawCompareGroup) ([]CompareGroup, error) {
	out := make([]CompareGroup, 0, len(raws))

	for _, r := range raws {
		baseline, err := s.resolveLayoutOps(r.Baseline)
		if err != nil {
			return nil, err
		}

		cases := make([]ComparisonCase, 0, len(r.Comparisons))

		for _, c := range r.Comparisons {
			ops, err := s.resolveLayoutOps(c.Ops)
			if err != nil {
				return nil, err
			}

			cases = append(cases, ComparisonCase{Label: c.Label, Ops: ops})
		}

		out = append(out, CompareGroup{
			Name:        r.Name,
			Description: r.Description,
			Baseline:    baseline,
			Comparisons: cases,
		})
	}

	return out, nil
}

func (s *Schema) resolveLayoutOps(raws []RawLayoutOp) ([]LayoutOp, error) {
	out := make([]LayoutOp, 0, len(raws))

	for _, raw := range raws {
		switch v := raw.(type) {
		case *RawArray:
			id, err := s.mustLeaf(v.Field)
			if err != nil {
				return nil, err
			}

			bits := v.Bits
			if bits == 0 {
				bits = s.Leaves[id].Width - v.Offset
			}

			out = append(out, &Array{Field: id, Offset: v.Offset, Bits: bits})
		case *RawStruct:
			ops, err := s.resolveStructOps(v.Fields)
			if err != nil {
				return nil, err
			}

			out = append(out, &Struct{Fields: ops})
		default:
			return nil, newError(ErrStructAtNonTopLevel, "unsupported top-level layout op")
		}
	}

	return out, nil
}

func (s *Schema) resolveStructOps(raws []RawStructOp) ([]StructOp, error) {
	out := make([]StructOp, 0, len(raws))

	for _, raw := range raws {
		switch v := raw.(type) {
		case *RawStructField:
			id, err := s.mustLeaf(v.Field)
			if err != nil {
				return nil, err
			}

			bits := v.Bits
			if bits == 0 {
				bits = s.Leaves[id].Width
			}

			out = append(out, &StructField{Field: id, Bits: bits})
		case *RawStructPadding:
			out = append(out, &StructPadding{Bits: v.Bits, Value: v.Value})
		case *RawStructSkip:
			id, err := s.mustLeaf(v.Field)
			if err != nil {
				return nil, err
			}

			out = append(out, &StructSkip{Field: id, Bits: v.Bits})
		default:
			return nil, newError(ErrNestedStruct, "unsupported struct row entry")
		}
	}

	return out, nil
}

func (s *Schema) mustLeaf(name string) (LeafID, error) {
	id, ok := s.leafByName[name]
	if !ok {
		return 0, newError(ErrUnknownReference, "unknown field %q", name)
	}

	return id, nil
}
