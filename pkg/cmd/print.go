// Copyright Consensys Software Inc.
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

	"github.com/consensys/go-eventb/pkg/parser"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] formula(s)",
	Short: "print formulas in their canonical form.",
	Long: `Parse one or more formulas and print them in canonical form, using the canonical
	image of each operator and only those parentheses which are necessary.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts = getOptions(cmd)
		//
		if GetFlag(cmd, "types") {
			opts = append(opts, parser.WithTypes())
		}
		//
		forEachFormula(cmd, args, func(grammar *parser.Grammar, _ string, res *parser.Result) bool {
			if res.Type() != nil {
				fmt.Println(res.Type())
			} else {
				fmt.Println(parser.Print(res.Formula(), grammar, opts...))
			}
			//
			return true
		})
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(printCmd)
	addFormulaFlags(printCmd)
	printCmd.Flags().Bool("types", false, "print type annotations")
}
