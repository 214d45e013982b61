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
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitlayout/analyzer/internal/assert"
	"github.com/bitlayout/analyzer/pkg/bit"
	"github.com/bitlayout/analyzer/pkg/schema"
)

func twoFieldSchema(t *testing.T) *schema.Schema {
	t.Helper()

	root := &schema.Group{
		Name: "root",
		Children: []schema.Node{
			&schema.Field{Name: "a", Width: 8, Order: bit.MSB},
			&schema.Field{Name: "b", Width: 8, Order: bit.MSB},
		},
	}

	s, err := schema.Build(schema.BuildInput{DefaultOrder: bit.MSB, Root: root})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	return s
}

func Test_AnalyzeFile(t *testing.T) {
	s := twoFieldSchema(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "one.bin")

	if err := os.WriteFile(path, []byte{0x11, 0x22, 0x33, 0x44}, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	o := New()

	r, err := o.AnalyzeFile(context.Background(), s, path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	assert.Equal(t, uint64(2), r.RecordCount, "record count")
}

func Test_AnalyzeDirectory_MergesAllFiles(t *testing.T) {
	s := twoFieldSchema(t)

	dir := t.TempDir()

	files := map[string][]byte{
		"a.bin": {0x11, 0x22},
		"b.bin": {0x33, 0x44, 0x55, 0x66},
	}

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	o := New()

	r, err := o.AnalyzeDirectory(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("analyze directory failed: %v", err)
	}

	assert.Equal(t, uint64(3), r.RecordCount, "combined record count")

	for _, f := range r.Fields {
		assert.Equal(t, uint64(3), f.ValueCount, "field %s combined value count", f.Name)
	}
}

func Test_AnalyzeDirectory_NoFiles(t *testing.T) {
	s := twoFieldSchema(t)
	dir := t.TempDir()

	o := New()

	if _, err := o.AnalyzeDirectory(context.Background(), s, dir); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
