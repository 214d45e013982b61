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

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements the FieldOrGroup shorthand: a bare integer
// is a leaf field of that bit width, inheriting bit order.
func (f *yamlFieldOrGroup) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var width uint
		if err := node.Decode(&width); err == nil {
			f.isShorthand = true
			f.shorthandBits = width

			return nil
		}
	}

	type plain yamlFieldOrGroup

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*f = yamlFieldOrGroup(p)

	return nil
}

// UnmarshalYAML decodes a group's "fields" mapping while preserving
// declaration order.
func (m *yamlOrderedFieldMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schemaio: expected a mapping for \"fields\", got %v", node.Kind)
	}

	out := make(yamlOrderedFieldMap, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var field yamlFieldOrGroup
		if err := node.Content[i+1].Decode(&field); err != nil {
			return fmt.Errorf("schemaio: field %q: %w", node.Content[i].Value, err)
		}

		out = append(out, yamlNamedField{Name: node.Content[i].Value, Field: field})
	}

	*m = out

	return nil
}

// UnmarshalYAML decodes a compare-group's "comparisons" mapping while
// preserving declaration order.
func (m *yamlOrderedComparisons) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schemaio: expected a mapping for \"comparisons\", got %v", node.Kind)
	}

	out := make(yamlOrderedComparisons, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var ops []yamlLayoutOp
		if err := node.Content[i+1].Decode(&ops); err != nil {
			return fmt.Errorf("schemaio: comparison %q: %w", node.Content[i].Value, err)
		}

		out = append(out, yamlNamedOps{Label: node.Content[i].Value, Ops: ops})
	}

	*m = out

	return nil
}
