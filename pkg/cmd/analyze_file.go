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
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeFileCmd = &cobra.Command{
	Use:   "analyze-file <path>",
	Short: "Analyze a single binary file against a schema descriptor.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSchemaOrExit(cmd)
		o := buildOrchestrator(cmd)

		r, err := o.AnalyzeFile(context.Background(), s, args[0])
		if err != nil {
			exitForError(err)
			return
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

		if err := emit(cmd, r, name); err != nil {
			exitForError(err)
		}
	},
}

func init() {
	addAnalysisFlags(analyzeFileCmd)
}
