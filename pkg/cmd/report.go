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
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bitlayout/analyzer/pkg/analysis"
	"github.com/bitlayout/analyzer/pkg/orchestrator"
	"github.com/bitlayout/analyzer/pkg/schema"
	"github.com/bitlayout/analyzer/pkg/schemaio"
)

// addAnalysisFlags registers the flags shared by analyze-file and
// analyze-directory.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("schema", "", "path to the YAML schema descriptor (required)")
	cmd.Flags().String("output", "", "directory to write an additional CSV report into")
	cmd.Flags().String("format", "concise", "stdout report detail: concise|detailed")
	cmd.Flags().Uint("zstd-level", 16, "zstd compression level (1-22) used when scoring each stream")
	cmd.Flags().Uint("freq-cap", 16, "maximum field width eligible for value-frequency histograms")
	cmd.Flags().Int("workers", 0, "concurrent file analyses for analyze-directory (0 selects GOMAXPROCS)")

	if err := cmd.MarkFlagRequired("schema"); err != nil {
		panic(err)
	}
}

// loadSchemaOrExit loads the schema named by --schema, exiting with code
// 2 (schema error) on failure.
func loadSchemaOrExit(cmd *cobra.Command) *schema.Schema {
	path := GetString(cmd, "schema")

	s, err := schemaio.Load(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return s
}

// buildOrchestrator constructs an Orchestrator from the shared flags.
func buildOrchestrator(cmd *cobra.Command) *orchestrator.Orchestrator {
	return &orchestrator.Orchestrator{
		Workers:   GetInt(cmd, "workers"),
		ZstdLevel: int(GetUint(cmd, "zstd-level")),
		FreqCap:   GetUint(cmd, "freq-cap"),
	}
}

// reportFormat parses --format, exiting with code 2 on an unknown
// value (a malformed invocation, same class as a schema error).
func reportFormat(cmd *cobra.Command) analysis.Format {
	switch GetString(cmd, "format") {
	case "concise", "":
		return analysis.Concise
	case "detailed":
		return analysis.Detailed
	default:
		fmt.Printf("unknown --format value %q (want concise or detailed)\n", GetString(cmd, "format"))
		os.Exit(2)

		return analysis.Concise
	}
}

// emit writes the concise/detailed report to stdout and, if --output
// names a directory, an additional CSV report inside it.
func emit(cmd *cobra.Command, r *analysis.Results, reportName string) error {
	if err := analysis.Print(os.Stdout, r, reportFormat(cmd)); err != nil {
		return err
	}

	out := GetString(cmd, "output")
	if out == "" {
		return nil
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return orchestrator.Error{Path: out, Msg: err.Error()}
	}

	csvPath := filepath.Join(out, reportName+".csv")

	f, err := os.Create(csvPath)
	if err != nil {
		return orchestrator.Error{Path: csvPath, Msg: err.Error()}
	}
	defer f.Close()

	return analysis.WriteCSV(f, r)
}

// exitForError classifies err and terminates the process with the
// matching exit code: 2 schema error, 3 I/O error, 4 internal error.
func exitForError(err error) {
	fmt.Println(err)

	switch err.(type) {
	case *schema.Error:
		os.Exit(2)
	case orchestrator.Error:
		os.Exit(3)
	default:
		os.Exit(4)
	}
}
