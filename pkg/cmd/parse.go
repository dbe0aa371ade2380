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
	"strings"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] formula(s)",
	Short: "parse formulas and show their syntax trees.",
	Long: `Parse one or more formulas and show their syntax trees, or the problems which
	arose.  Formulas are predicates unless stated otherwise.  When no formula is given,
	formulas are read line by line from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		free := GetFlag(cmd, "free")
		spans := GetFlag(cmd, "spans")
		//
		forEachFormula(cmd, args, func(_ *parser.Grammar, text string, res *parser.Result) bool {
			if res.Type() != nil {
				fmt.Println(res.Type())
				return true
			}
			//
			fmt.Println(res.Formula())
			//
			if free {
				fmt.Printf("free: %s\n", strings.Join(ast.FreeIdentifiers(res.Formula()), ", "))
			}
			//
			if spans {
				printSpans(text, res)
			}
			//
			return true
		})
	},
}

// Print the text from which each sub-formula was parsed.
func printSpans(text string, res *parser.Result) {
	var contents = []rune(text)
	//
	ast.Walk(res.Formula(), func(f ast.Formula) {
		if span, ok := res.Span(f); ok {
			fmt.Printf("%d:%d %s\n", span.Start(), span.End(), string(contents[span.Start():span.End()]))
		}
	})
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(parseCmd)
	addFormulaFlags(parseCmd)
	parseCmd.Flags().Bool("free", false, "show the free identifiers of each formula")
	parseCmd.Flags().Bool("spans", false, "show the text from which each sub-formula was parsed")
}
