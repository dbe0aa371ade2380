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
	"os"
	"strings"

	"github.com/consensys/go-eventb/pkg/parser"
	"github.com/consensys/go-eventb/pkg/util/termio"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar [flags]",
	Short: "show the operators of the mathematical language.",
	Long: `Show the operators of the mathematical language (including those of any declared
	datatypes), grouped by operator group from lowest to highest, along with the
	operators of the same group which take priority over them.`,
	Run: func(cmd *cobra.Command, args []string) {
		grammar := buildGrammar(cmd)
		//
		if GetFlag(cmd, "keywords") {
			fmt.Println(strings.Join(grammar.Keywords(), " "))
			return
		}
		//
		printOperatorTable(grammar)
	},
}

func printOperatorTable(grammar *parser.Grammar) {
	var (
		height uint = 1
		row    uint = 1
		bold        = termio.BoldAnsiEscape().Build()
	)
	//
	for _, group := range grammar.Groups() {
		height += uint(len(group.Kinds()))
	}
	//
	table := termio.NewTablePrinter(4, height)
	table.AnsiEscapes(term.IsTerminal(int(os.Stdout.Fd())))
	table.SetRow(0, "GROUP", "IMAGE", "ID", "BELOW")
	//
	for col := uint(0); col < 4; col++ {
		table.SetEscape(col, 0, bold)
	}
	//
	for _, group := range grammar.Groups() {
		for _, kind := range group.Kinds() {
			var above []string
			//
			for _, k := range group.Above(kind) {
				above = append(above, grammar.Image(k))
			}
			//
			table.SetRow(row, group.ID(), grammar.Image(kind), grammar.OperatorID(kind), strings.Join(above, " "))
			row++
		}
	}
	//
	table.Print()
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(grammarCmd)
	grammarCmd.Flags().Bool("keywords", false, "only show the keywords of the language")
}
