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

var checkCmd = &cobra.Command{
	Use:   "check [flags] formula(s)",
	Short: "check formulas survive being printed and parsed again.",
	Long: `Check that printing each given formula in canonical form, and then parsing the
	result, gives back the same formula.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			parse = getParser(cmd)
			opts  = getOptions(cmd)
			quiet = GetFlag(cmd, "quiet")
		)
		//
		forEachFormula(cmd, args, func(grammar *parser.Grammar, text string, res *parser.Result) bool {
			var (
				printed string
				ok      bool
			)
			//
			if res.Type() != nil {
				printed = res.Type().String()
				reparsed := parse(printed, grammar, opts...).Type()
				ok = reparsed != nil && res.Type().Equals(reparsed)
			} else {
				printed = parser.Print(res.Formula(), grammar, opts...)
				reparsed := parse(printed, grammar, opts...)
				ok = !reparsed.HasErrors() && res.Formula().Equals(reparsed.Formula())
			}
			//
			if !ok {
				fmt.Printf("%s: printed as \"%s\" which parses differently\n", text, printed)
			} else if !quiet {
				fmt.Printf("%s: ok\n", text)
			}
			//
			return ok
		})
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	addFormulaFlags(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "only report formulas which fail")
}
