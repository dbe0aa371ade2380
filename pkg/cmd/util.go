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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-eventb/pkg/datatype"
	"github.com/consensys/go-eventb/pkg/language"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/parser"
	"github.com/consensys/go-eventb/pkg/util/source"
	"github.com/consensys/go-eventb/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Entry point for parsing a given kind of formula.
type parseFn func(string, *parser.Grammar, ...parser.Option) *parser.Result

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Add the flags which select the kind of formula being processed.
func addFormulaFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("expression", "e", false, "formulas are expressions")
	cmd.Flags().BoolP("assignment", "a", false, "formulas are assignments")
	cmd.Flags().BoolP("type", "t", false, "formulas are types")
	cmd.Flags().Bool("predicate-variables", false, "permit predicate variables (e.g. \"$P\")")
	cmd.Flags().StringArrayP("bound", "b", []string{}, "name of an enclosing bound identifier (outermost first)")
}

// Determine which kind of formula is being processed.  By default, formulas
// are predicates.
func getParser(cmd *cobra.Command) parseFn {
	switch {
	case GetFlag(cmd, "expression"):
		return parser.ParseExpression
	case GetFlag(cmd, "assignment"):
		return parser.ParseAssignment
	case GetFlag(cmd, "type"):
		return parser.ParseType
	default:
		return parser.ParsePredicate
	}
}

// Determine the version of the mathematical language being used.
func getVersion(cmd *cobra.Command) operator.Version {
	if GetFlag(cmd, "v1") {
		return operator.V1
	}
	//
	return operator.LATEST
}

// Determine the options for parsing (and printing) formulas.
func getOptions(cmd *cobra.Command) []parser.Option {
	var opts = []parser.Option{parser.WithVersion(getVersion(cmd))}
	//
	if origin := GetString(cmd, "origin"); origin != "" {
		opts = append(opts, parser.WithOrigin(origin))
	}
	//
	if GetFlag(cmd, "predicate-variables") {
		opts = append(opts, parser.WithPredicateVariables())
	}
	//
	if bound := GetStringArray(cmd, "bound"); len(bound) > 0 {
		opts = append(opts, parser.WithBoundNames(bound...))
	}
	//
	return opts
}

// Construct the grammar of the mathematical language, extended with the
// datatypes declared on the command line.
func buildGrammar(cmd *cobra.Command) *parser.Grammar {
	var grammar = parser.NewGrammar()
	//
	if err := language.Declare(grammar); err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	for _, decl := range GetStringArray(cmd, "datatype") {
		dt, errs := datatype.ParseDeclaration(decl)
		//
		if len(errs) > 0 {
			printSyntaxErrors(errs)
			os.Exit(4)
		} else if err := dt.Register(grammar); err != nil {
			fmt.Println(err)
			os.Exit(4)
		}
		//
		log.Debugf("declared datatype %s", dt)
	}
	//
	grammar.Freeze()
	//
	return grammar
}

// Read the formulas to process.  These are either given as arguments or, when
// none are, read line by line from stdin.
func readFormulas(args []string) []string {
	if len(args) > 0 {
		return args
	}
	//
	var (
		lines   []string
		scanner = bufio.NewScanner(os.Stdin)
	)
	//
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	//
	if err := scanner.Err(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return lines
}

// Print the problems arising from parsing a formula.  This returns true if
// any of them is an error (rather than a warning).
func printProblems(res *parser.Result) bool {
	for _, p := range res.Problems() {
		printSyntaxError(&p.SyntaxError)
	}
	//
	return res.HasErrors()
}

func printSyntaxErrors(errs []source.SyntaxError) {
	for i := range errs {
		printSyntaxError(&errs[i])
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	var (
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		// Calculate length (ensures don't overflow line)
		length    = max(1, min(line.Length()-lineOffset, span.Length()))
		highlight = ""
		reset     = ""
	)
	// Only colour output on a terminal
	if term.IsTerminal(int(os.Stdout.Fd())) {
		colour := termio.TERM_RED
		if err.Severity() == source.WARNING {
			colour = termio.TERM_YELLOW
		}
		//
		highlight = termio.BoldAnsiEscape().FgColour(colour).Build()
		reset = termio.ResetAnsiEscape().Build()
	}
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s%s:%s %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, highlight, err.Severity(), reset, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Printf("%s%s%s\n", highlight, strings.Repeat("^", length), reset)
}

// Parse each formula given to a command, reporting any problems which arise,
// and hand each parsed formula to a given function.  This exits with a
// non-zero status if any formula fails to parse, or is rejected by the
// function.
func forEachFormula(cmd *cobra.Command, args []string, fn func(*parser.Grammar, string, *parser.Result) bool) {
	var (
		grammar = buildGrammar(cmd)
		parse   = getParser(cmd)
		opts    = getOptions(cmd)
		failed  = false
	)
	//
	for _, text := range readFormulas(args) {
		res := parse(text, grammar, opts...)
		//
		log.Debugf("parsed \"%s\" with %d problem(s)", text, len(res.Problems()))
		//
		if printProblems(res) || !fn(grammar, text, res) {
			failed = true
		}
	}
	//
	if failed {
		os.Exit(1)
	}
}
