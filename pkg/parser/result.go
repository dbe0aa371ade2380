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
package parser

import (
	"fmt"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/types"
	"github.com/consensys/go-eventb/pkg/util/source"
)

// ProblemKind identifies the kind of a problem reported when parsing.
type ProblemKind uint8

const (
	// UNKNOWN_TEXT signals characters which do not form any token.
	UNKNOWN_TEXT ProblemKind = iota
	// EXPECTED_OPERAND signals a token which cannot start a formula.
	EXPECTED_OPERAND
	// UNEXPECTED_TOKEN signals a token which cannot occur at this position.
	UNEXPECTED_TOKEN
	// MISSING_TOKEN signals that a specific token was expected.
	MISSING_TOKEN
	// INCOMPATIBLE_OPERATORS signals operators which cannot be combined
	// without parentheses.
	INCOMPATIBLE_OPERATORS
	// EXPECTED_EXPRESSION signals a predicate where an expression is required.
	EXPECTED_EXPRESSION
	// EXPECTED_PREDICATE signals an expression where a predicate is required.
	EXPECTED_PREDICATE
	// PREDICATE_VARIABLE_NOT_ALLOWED signals a predicate variable in a formula
	// which does not permit them.  The variable is replaced by ⊤.
	PREDICATE_VARIABLE_NOT_ALLOWED
	// NOT_A_TYPE signals an expression which does not denote a type.
	NOT_A_TYPE
	// INVALID_TYPE_ANNOTATION signals a type annotation on something other than
	// an identifier or an atomic expression.
	INVALID_TYPE_ANNOTATION
	// NOTHING_TO_BIND signals an implicit quantifier without free identifiers.
	NOTHING_TO_BIND
	// ARITY_MISMATCH signals an operator applied to the wrong number of
	// arguments.
	ARITY_MISMATCH
	// EXTENSION_REJECTED signals arguments rejected by an extension.
	EXTENSION_REJECTED
	// INTERNAL_ERROR signals a failure within the parser itself (or a
	// misbehaving extension).
	INTERNAL_ERROR
)

var problemMessages = []string{
	"unknown text encountered \"%s\"",
	"expected an operand",
	"unexpected token \"%s\"",
	"expected \"%s\"",
	"operators \"%s\" and \"%s\" cannot be combined without parentheses",
	"expected an expression",
	"expected a predicate",
	"predicate variable %s not permitted",
	"expression %s is not a type",
	"type annotation requires an identifier",
	"no identifier to bind",
	"operator \"%s\" expects %s argument(s)",
	"%s",
	"internal error: %s",
}

func (k ProblemKind) String() string {
	names := []string{"UNKNOWN_TEXT", "EXPECTED_OPERAND", "UNEXPECTED_TOKEN", "MISSING_TOKEN",
		"INCOMPATIBLE_OPERATORS", "EXPECTED_EXPRESSION", "EXPECTED_PREDICATE", "PREDICATE_VARIABLE_NOT_ALLOWED",
		"NOT_A_TYPE", "INVALID_TYPE_ANNOTATION", "NOTHING_TO_BIND", "ARITY_MISMATCH", "EXTENSION_REJECTED",
		"INTERNAL_ERROR"}
	//
	if int(k) < len(names) {
		return names[k]
	}
	//
	return fmt.Sprintf("PROBLEM%d", k)
}

// Problem is a diagnostic reported when parsing a formula.  Alongside the
// underlying syntax error (which has a span, a severity and a message), it
// records the kind of problem and the arguments of its message.
type Problem struct {
	source.SyntaxError
	kind ProblemKind
	args []string
}

func newProblem(srcfile *source.File, span source.Span, kind ProblemKind, args ...string) Problem {
	var (
		msg = fmt.Sprintf(problemMessages[kind], toAny(args)...)
		err = srcfile.SyntaxError(span, msg)
	)
	// Predicate variables are replaced, so parsing can continue.
	if kind == PREDICATE_VARIABLE_NOT_ALLOWED {
		err = srcfile.Warning(span, msg)
	}
	//
	return Problem{*err, kind, args}
}

// Kind returns the kind of this problem.
func (p *Problem) Kind() ProblemKind {
	return p.kind
}

// Args returns the arguments of this problem's message.
func (p *Problem) Args() []string {
	return p.args
}

// Result is the outcome of parsing a formula.  This holds either the parsed
// artifact, or the problems which arose (or, when only warnings arose, both).
type Result struct {
	formula  ast.Formula
	typ      types.Type
	problems []Problem
	origin   any
	srcmap   *source.Map[ast.Formula]
}

// Success checks whether parsing completed without any problems.
func (r *Result) Success() bool {
	return len(r.problems) == 0
}

// HasErrors checks whether any problem of error severity arose.  When not, a
// (possibly degraded) artifact is available.
func (r *Result) HasErrors() bool {
	for _, p := range r.problems {
		if p.Severity() == source.ERROR {
			return true
		}
	}
	//
	return false
}

// Formula returns the parsed formula, or nil.
func (r *Result) Formula() ast.Formula {
	return r.formula
}

// Expression returns the parsed expression, or nil if no expression was
// parsed.
func (r *Result) Expression() ast.Expression {
	e, _ := r.formula.(ast.Expression)
	return e
}

// Predicate returns the parsed predicate, or nil if no predicate was parsed.
func (r *Result) Predicate() ast.Predicate {
	p, _ := r.formula.(ast.Predicate)
	return p
}

// Assignment returns the parsed assignment, or nil if no assignment was
// parsed.
func (r *Result) Assignment() ast.Assignment {
	a, _ := r.formula.(ast.Assignment)
	return a
}

// Type returns the parsed type, or nil if no type was parsed.
func (r *Result) Type() types.Type {
	return r.typ
}

// Problems returns the problems which arose, in order of occurrence.
func (r *Result) Problems() []Problem {
	return r.problems
}

// Origin returns the origin given for the parsed formula, if any.
func (r *Result) Origin() any {
	return r.origin
}

// Span returns the span of text from which a given sub-formula was parsed.
func (r *Result) Span(f ast.Formula) (source.Span, bool) {
	if r.srcmap == nil || !r.srcmap.Has(f) {
		return source.Span{}, false
	}
	//
	return r.srcmap.Get(f), true
}

// Option configures how formulas are parsed or printed.
type Option func(*config)

type config struct {
	version    operator.Version
	origin     any
	predVars   bool
	withTypes  bool
	boundNames []string
}

func newConfig(opts []Option) config {
	cfg := config{version: operator.LATEST}
	//
	for _, opt := range opts {
		opt(&cfg)
	}
	//
	return cfg
}

// WithVersion selects the language version.  By default, the latest version is
// used.
func WithVersion(v operator.Version) Option {
	return func(c *config) { c.version = v }
}

// WithOrigin attaches an opaque origin to a parse result, such that problems
// can be traced back to wherever the formula came from.
func WithOrigin(origin any) Option {
	return func(c *config) { c.origin = origin }
}

// WithPredicateVariables permits predicate variables (e.g. "$P") to occur.
func WithPredicateVariables() Option {
	return func(c *config) { c.predVars = true }
}

// WithTypes prints the type annotations carried by identifiers, atomic
// expressions and bound identifier declarations.
func WithTypes() Option {
	return func(c *config) { c.withTypes = true }
}

// WithBoundNames gives the names of the bound identifiers enclosing a formula,
// outermost first.  When parsing, occurrences of these names are bound.  When
// printing, these are used to print loose bound identifiers.
func WithBoundNames(names ...string) Option {
	return func(c *config) { c.boundNames = names }
}

func toAny(args []string) []any {
	items := make([]any, len(args))
	//
	for i, a := range args {
		items[i] = a
	}
	//
	return items
}
