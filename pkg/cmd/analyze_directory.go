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

	"github.com/spf13/cobra"
)

var analyzeDirectoryCmd = &cobra.Command{
	Use:   "analyze-directory <path>",
	Short: "Analyze every file beneath a directory against a schema descriptor, merging the results.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSchemaOrExit(cmd)
		o := buildOrchestrator(cmd)

		r, err := o.AnalyzeDirectory(context.Background(), s, args[0])
		if err != nil {
			exitForError(err)
			return
		}

		if err := emit(cmd, r, "directory"); err != nil {
			exitForError(err)
		}
	},
}

func init() {
	addAnalysisFlags(analyzeDirectoryCmd)
}
