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
package schemaio

import (
	"fmt"
	"os"

	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML schema descriptor from path, then builds
// and validates a schema.Schema from it.
func Load(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaio: %w", err)
	}

	return FromBytes(data)
}

// FromBytes parses a YAML schema descriptor already held in memory.
func FromBytes(data []byte) (*schema.Schema, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemaio: %w", err)
	}

	return convert(doc)
}

func convert(doc yamlDoc) (*schema.Schema, error) {
	defaultOrder, ok := bit.ParseOrder(doc.BitOrder)
	if !ok {
		return nil, fmt.Errorf("schemaio: unknown bit_order %q", doc.BitOrder)
	}

	root, err := convertNode("root", doc.Root, defaultOrder, false)
	if err != nil {
		return nil, err
	}

	rootGroup, ok := root.(*schema.Group)
	if !ok {
		return nil, fmt.Errorf("schemaio: schema root must be a group")
	}

	offsets, err := convertConditionalOffsets(doc.ConditionalOffsets, defaultOrder)
	if err != nil {
		return nil, err
	}

	splits := make([]schema.RawSplitGroup, 0, len(doc.Analysis.SplitGroups))
	for _, sg := range doc.Analysis.SplitGroups {
		splits = append(splits, schema.RawSplitGroup{
			Name:        sg.Name,
			Description: sg.Description,
			Group1:      sg.Group1,
			Group2:      sg.Group2,
		})
	}

	compares := make([]schema.RawCompareGroup, 0, len(doc.Analysis.CompareGroups))

	for _, cg := range doc.Analysis.CompareGroups {
		baseline, err := convertLayoutOps(cg.Baseline)
		if err != nil {
			return nil, err
		}

		cases := make([]schema.RawComparisonCase, 0, len(cg.Comparisons))

		for _, named := range cg.Comparisons {
			ops, err := convertLayoutOps(named.Ops)
			if err != nil {
				return nil, err
			}

			cases = append(cases, schema.RawComparisonCase{Label: named.Label, Ops: ops})
		}

		compares = append(compares, schema.RawCompareGroup{
			Name:        cg.Name,
			Description: cg.Description,
			Baseline:    baseline,
			Comparisons: cases,
		})
	}

	return schema.Build(schema.BuildInput{
		Version:            doc.Version,
		Name:               doc.Metadata.Name,
		Description:        doc.Metadata.Description,
		DefaultOrder:       defaultOrder,
		ConditionalOffsets: offsets,
		Root:               rootGroup,
		SplitGroups:        splits,
		CompareGroups:      compares,
	})
}

// convertNode converts one FieldOrGroup entry (and, recursively, its
// children) into a schema.Node, resolving bit-order and
// skip-frequency-analysis inheritance from the parent as it goes: a
// group's bit order propagates to its children unless a child sets its
// own.
func convertNode(name string, y yamlFieldOrGroup, parentOrder bit.Order, parentSkipFreq bool) (schema.Node, error) {
	order := parentOrder

	if y.BitOrder != "" {
		o, ok := bit.ParseOrder(y.BitOrder)
		if !ok {
			return nil, fmt.Errorf("schemaio: field %q: unknown bit_order %q", name, y.BitOrder)
		}

		order = o
	}

	skipFreq := parentSkipFreq || y.SkipFrequencyAnalysis

	conds, err := convertConditions(y.SkipIfNot, order)
	if err != nil {
		return nil, err
	}

	if y.isShorthand {
		return &schema.Field{
			Name:                  name,
			Width:                 y.shorthandBits,
			Order:                 order,
			SkipFrequencyAnalysis: skipFreq,
		}, nil
	}

	switch y.Type {
	case "field":
		return &schema.Field{
			Name:                  name,
			Width:                 y.Bits,
			Order:                 order,
			SkipFrequencyAnalysis: skipFreq,
			SkipIfNot:             conds,
		}, nil
	case "group", "":
		children := make([]schema.Node, 0, len(y.Fields))

		for _, nf := range y.Fields {
			child, err := convertNode(nf.Name, nf.Field, order, skipFreq)
			if err != nil {
				return nil, err
			}

			children = append(children, child)
		}

		return &schema.Group{
			Name:                  name,
			Description:           y.Description,
			Order:                 order,
			SkipFrequencyAnalysis: skipFreq,
			SkipIfNot:             conds,
			Children:              children,
		}, nil
	default:
		return nil, fmt.Errorf("schemaio: field %q: unknown type %q", name, y.Type)
	}
}

func convertConditions(in []yamlCondition, defaultOrder bit.Order) ([]schema.Condition, error) {
	out := make([]schema.Condition, 0, len(in))

	for _, c := range in {
		order := defaultOrder

		if c.BitOrder != "" {
			o, ok := bit.ParseOrder(c.BitOrder)
			if !ok {
				return nil, fmt.Errorf("schemaio: unknown bit_order %q in condition", c.BitOrder)
			}

			order = o
		}

		out = append(out, schema.Condition{
			ByteOffset: c.ByteOffset,
			BitOffset:  c.BitOffset,
			Bits:       c.Bits,
			Order:      order,
			Value:      c.Value,
		})
	}

	return out, nil
}

func convertConditionalOffsets(in []yamlConditionalOffset, defaultOrder bit.Order) ([]schema.ConditionalOffset, error) {
	out := make([]schema.ConditionalOffset, 0, len(in))

	for _, co := range in {
		conds, err := convertConditions(co.Conditions, defaultOrder)
		if err != nil {
			return nil, err
		}

		out = append(out, schema.ConditionalOffset{Offset: co.Offset, Conditions: conds})
	}

	return out, nil
}

func convertLayoutOps(in []yamlLayoutOp) ([]schema.RawLayoutOp, error) {
	out := make([]schema.RawLayoutOp, 0, len(in))

	for _, op := range in {
		switch op.Type {
		case "array":
			out = append(out, &schema.RawArray{Field: op.Field, Offset: op.Offset, Bits: op.Bits})
		case "struct":
			fields, err := convertStructOps(op.Fields)
			if err != nil {
				return nil, err
			}

			out = append(out, &schema.RawStruct{Fields: fields})
		default:
			return nil, fmt.Errorf("schemaio: unknown layout op type %q", op.Type)
		}
	}

	return out, nil
}

func convertStructOps(in []yamlLayoutOpField) ([]schema.RawStructOp, error) {
	out := make([]schema.RawStructOp, 0, len(in))

	for _, op := range in {
		switch op.Type {
		case "field":
			out = append(out, &schema.RawStructField{Field: op.Field, Bits: op.Bits})
		case "padding":
			out = append(out, &schema.RawStructPadding{Bits: op.Bits, Value: op.Value})
		case "skip":
			out = append(out, &schema.RawStructSkip{Field: op.Field, Bits: op.Bits})
		case "struct":
			return nil, fmt.Errorf("schemaio: struct op nested inside a struct")
		default:
			return nil, fmt.Errorf("schemaio: unknown struct row entry type %q", op.Type)
		}
	}

	return out, nil
}
