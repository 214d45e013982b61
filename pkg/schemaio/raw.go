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

// Package schemaio decodes the external, human-editable YAML schema
// descriptor and builds a pkg/schema.Schema from it. This is the
// external-collaborator boundary for YAML deserialization: pkg/schema
// never imports gopkg.in/yaml.v3 itself, only this package does.
package schemaio

// yamlDoc mirrors the top-level descriptor document.
type yamlDoc struct {
	Version  string       `yaml:"version"`
	Metadata yamlMetadata `yaml:"metadata"`
	BitOrder string       `yaml:"bit_order"`

	ConditionalOffsets []yamlConditionalOffset `yaml:"conditional_offsets"`
	Analysis           yamlAnalysis            `yaml:"analysis"`
	Root               yamlFieldOrGroup        `yaml:"root"`
}

type yamlMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type yamlCondition struct {
	ByteOffset uint64 `yaml:"byte_offset"`
	BitOffset  uint   `yaml:"bit_offset"`
	Bits       uint   `yaml:"bits"`
	BitOrder   string `yaml:"bit_order"`
	Value      uint64 `yaml:"value"`
}

type yamlConditionalOffset struct {
	Offset     uint64          `yaml:"offset"`
	Conditions []yamlCondition `yaml:"conditions"`
}

type yamlAnalysis struct {
	SplitGroups   []yamlSplitGroup   `yaml:"split_groups"`
	CompareGroups []yamlCompareGroup `yaml:"compare_groups"`
}

type yamlSplitGroup struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Group1      []string `yaml:"group_1"`
	Group2      []string `yaml:"group_2"`
}

type yamlCompareGroup struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Baseline    []yamlLayoutOp       `yaml:"baseline"`
	Comparisons yamlOrderedComparisons `yaml:"comparisons"`
}

// yamlOrderedComparisons preserves descriptor declaration order for the
// compare-group "label -> ops" mapping; a plain Go map would not.
type yamlOrderedComparisons []yamlNamedOps

// yamlNamedOps is one label's layout-op list.
type yamlNamedOps struct {
	Label string
	Ops   []yamlLayoutOp
}

// yamlLayoutOp mirrors a LayoutOp entry: {type: array, ...} or
// {type: struct, fields: [...]}.
type yamlLayoutOp struct {
	Type   string             `yaml:"type"`
	Field  string             `yaml:"field"`
	Offset uint               `yaml:"offset"`
	Bits   uint               `yaml:"bits"`
	Value  uint64             `yaml:"value"`
	Fields []yamlLayoutOpField `yaml:"fields"`
}

// yamlLayoutOpField mirrors one struct row entry: {type: field|padding|skip, ...}.
type yamlLayoutOpField struct {
	Type  string `yaml:"type"`
	Field string `yaml:"field"`
	Bits  uint   `yaml:"bits"`
	Value uint64 `yaml:"value"`
}

// yamlFieldOrGroup mirrors a FieldOrGroup entry.  Because a Field may be
// given as a bare integer shorthand, this type implements
// yaml.Unmarshaler itself (see decode.go) rather than relying on struct
// tags alone.
type yamlFieldOrGroup struct {
	// Shorthand: a bare integer bit width.
	shorthandBits uint
	isShorthand   bool

	Type                  string                      `yaml:"type"`
	Bits                  uint                        `yaml:"bits"`
	Description           string                      `yaml:"description"`
	BitOrder              string                      `yaml:"bit_order"`
	SkipFrequencyAnalysis bool                `yaml:"skip_frequency_analysis"`
	SkipIfNot             []yamlCondition     `yaml:"skip_if_not"`
	Fields                yamlOrderedFieldMap `yaml:"fields"`
}

// yamlOrderedFieldMap preserves descriptor declaration order for a
// group's "fields: {name: FieldOrGroup, ...}" mapping; a plain Go map
// would not, and declaration order is what extraction walks.
type yamlOrderedFieldMap []yamlNamedField

// yamlNamedField is one group child, paired with its declared name.
type yamlNamedField struct {
	Name  string
	Field yamlFieldOrGroup
}
