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
	"strings"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/types"
	"github.com/consensys/go-eventb/pkg/util/collection/stack"
)

// Printer holds the state of a single print operation.  Sub-parsers use it to
// write text and to print sub-formulas.
type Printer struct {
	grammar   *Grammar
	version   operator.Version
	withTypes bool
	builder   *strings.Builder
	// Display names of the bound identifiers in scope, innermost on top
	names *stack.Stack[string]
	// Free identifiers of the formula being printed
	free map[string]bool
}

// Print a formula (or assignment) in the surface syntax of a given grammar,
// such that parsing the result yields an equal formula.  Supported options
// are WithVersion, WithTypes and WithBoundNames.  Bound identifiers are given
// display names which clash neither with free identifiers nor with enclosing
// bound identifiers.
func Print(f ast.Formula, grammar *Grammar, opts ...Option) string {
	var (
		cfg = newConfig(opts)
		p   = &Printer{
			grammar:   grammar,
			version:   cfg.version,
			withTypes: cfg.withTypes,
			builder:   &strings.Builder{},
			names:     stack.NewStack[string](),
			free:      make(map[string]bool),
		}
	)
	//
	p.names.PushAll(cfg.boundNames)
	//
	for _, name := range ast.FreeIdentifiers(f) {
		p.free[name] = true
	}
	//
	if a, ok := f.(ast.Assignment); ok {
		p.assignment(a)
	} else {
		p.formula(f)
	}
	//
	return p.builder.String()
}

// Grammar returns the grammar being used.
func (p *Printer) Grammar() *Grammar {
	return p.grammar
}

func (p *Printer) write(text string) {
	p.builder.WriteString(text)
}

// capture returns the text written by a given function, rather than writing
// it.
func (p *Printer) capture(fn func()) string {
	saved := p.builder
	p.builder = &strings.Builder{}
	//
	fn()
	//
	text := p.builder.String()
	p.builder = saved
	//
	return text
}

// formula prints a formula in a context where no parentheses are required.
func (p *Printer) formula(f ast.Formula) {
	p.binding(f).parser.Print(p, f)
}

// operand prints a formula occurring as an operand of a given parent,
// parenthesizing it as necessary.
func (p *Printer) operand(parent ast.Formula, child ast.Formula, isRightChild bool) {
	if p.needsParentheses(parent, child, isRightChild) {
		p.write(LPAR_IMAGE)
		p.formula(child)
		p.write(RPAR_IMAGE)
	} else {
		p.formula(child)
	}
}

// arguments prints a parenthesized, comma-separated list of formulas.
func (p *Printer) arguments(args []ast.Formula) {
	p.write(LPAR_IMAGE)
	//
	for i, arg := range args {
		if i != 0 {
			p.write(COMMA_IMAGE)
		}
		//
		p.formula(arg)
	}
	//
	p.write(RPAR_IMAGE)
}

// infix writes the image of an infix operator.  Keywords are separated from
// their operands.
func (p *Printer) infix(image string) {
	if isKeyword(image) {
		p.write(" " + image + " ")
	} else {
		p.write(image)
	}
}

// image returns the image of the operator of a given formula.
func (p *Printer) image(f ast.Formula) string {
	return p.grammar.Image(p.binding(f).kind)
}

// brackets returns the opening and closing brackets of a given formula.
func (p *Printer) brackets(f ast.Formula) (string, string) {
	kind := p.binding(f).kind
	//
	if close, ok := p.grammar.closer(kind); ok {
		return p.grammar.Image(kind), p.grammar.Image(close)
	}
	//
	panic(fmt.Sprintf("no closing bracket for \"%s\"", p.grammar.Image(kind)))
}

// typeOf writes the type annotation of an identifier or atomic expression, if
// types are being printed.
func (p *Printer) typeOf(t types.Type) {
	if !p.withTypes || t == nil {
		return
	}
	//
	p.write(TYPED_IMAGE)
	// Annotations bind tighter than products
	if _, ok := t.(*types.ProductType); ok {
		p.write(LPAR_IMAGE + t.String() + RPAR_IMAGE)
	} else {
		p.write(t.String())
	}
}

func (p *Printer) binding(f ast.Formula) binding {
	if b, ok := p.grammar.prints.Get(formulaKey(f)); ok {
		return b
	}
	//
	panic(fmt.Sprintf("no printer for %s", f.Tag()))
}

func (p *Printer) needsParentheses(parent ast.Formula, child ast.Formula, isRightChild bool) bool {
	pb, ok1 := p.grammar.prints.Get(formulaKey(parent))
	cb, ok2 := p.grammar.prints.Get(formulaKey(child))
	//
	if !ok1 || !ok2 {
		return false
	} else if parent.Tag() == child.Tag() && isAssociative(pb.parser) {
		// Otherwise the child would be flattened into its parent
		return true
	}
	//
	return p.grammar.needsParentheses(isRightChild, cb.kind, pb.kind, p.version)
}

func isAssociative(sp SubParser) bool {
	switch sp := sp.(type) {
	case associativeParser:
		return true
	case extensionParser:
		return sp.ext.Shape == ASSOCIATIVE_INFIX
	}
	//
	return false
}

// ============================================================================
// Bound identifiers
// ============================================================================

// decls writes a list of bound identifier declarations, bringing them into
// scope.  This returns the number of names brought into scope.
func (p *Printer) decls(decls []*ast.BoundIdentDecl) int {
	n := p.implicitDecls(decls)
	//
	for i, d := range decls {
		if i != 0 {
			p.write(COMMA_IMAGE)
		}
		//
		p.write(p.names.Peek(uint(n - 1 - i)))
		p.typeOf(d.Type)
	}
	//
	return n
}

// implicitDecls brings a list of bound identifier declarations into scope,
// without writing them.
func (p *Printer) implicitDecls(decls []*ast.BoundIdentDecl) int {
	for _, d := range decls {
		p.names.Push(p.fresh(d.Name))
	}
	//
	return len(decls)
}

func (p *Printer) unbind(n int) {
	p.names.PopN(uint(n))
}

func (p *Printer) boundName(index uint) string {
	if index >= p.names.Len() {
		panic(fmt.Sprintf("bound identifier [%d] is not in scope", index))
	}
	//
	return p.names.Peek(index)
}

// fresh chooses a display name for a bound identifier, based on the name it
// was declared with.
func (p *Printer) fresh(name string) string {
	if name == "" {
		name = "x"
	}
	//
	candidate := name
	//
	for i := 0; p.clashes(candidate); i++ {
		candidate = fmt.Sprintf("%s%d", name, i)
	}
	//
	return candidate
}

func (p *Printer) clashes(name string) bool {
	if _, ok := p.grammar.symbols.Lookup(name); ok || p.free[name] {
		return true
	}
	//
	_, ok := p.names.Find(name)
	//
	return ok
}

// isImplicit determines whether a quantified expression can be printed in its
// implicit form.  This requires that its expression contains no free
// identifiers and refers to every declaration, in order of declaration.
func (p *Printer) isImplicit(q *ast.QuantifiedExpression) bool {
	var (
		n     = uint(len(q.Decls))
		order []uint
		seen  = make(map[uint]bool)
	)
	//
	if len(ast.FreeIdentifiers(q.Expression)) != 0 {
		return false
	}
	//
	for _, d := range q.Decls {
		if p.withTypes && d.Type != nil {
			return false
		}
	}
	//
	boundReferences(q.Expression, 0, func(index uint) {
		if index < n && !seen[index] {
			seen[index] = true
			order = append(order, n-1-index)
		}
	})
	//
	for i, d := range order {
		if d != uint(i) {
			return false
		}
	}
	//
	return uint(len(order)) == n
}

// boundReferences visits every bound identifier of a formula which refers
// beyond the formula itself, in order of occurrence.  Indices are relative to
// the formula's scope.
func boundReferences(f ast.Formula, depth uint, visit func(uint)) {
	var decls uint
	//
	switch f := f.(type) {
	case *ast.BoundIdentifier:
		if f.Index >= depth {
			visit(f.Index - depth)
		}
		//
		return
	case *ast.QuantifiedExpression:
		decls = uint(len(f.Decls))
	case *ast.QuantifiedPredicate:
		decls = uint(len(f.Decls))
	}
	//
	for _, c := range f.Children() {
		boundReferences(c, depth+decls, visit)
	}
}

// ============================================================================
// Assignments
// ============================================================================

func (p *Printer) assignment(a ast.Assignment) {
	switch a := a.(type) {
	case *ast.BecomesEqualTo:
		p.identifiers(a.Idents)
		p.write(" " + BECOMES_EQ_IMAGE + " ")
		//
		for i, v := range a.Values {
			if i != 0 {
				p.write(COMMA_IMAGE)
			}
			//
			p.formula(v)
		}
	case *ast.BecomesMemberOf:
		p.formula(a.Ident)
		p.write(" " + BECOMES_IN_IMAGE + " ")
		p.formula(a.Set)
	case *ast.BecomesSuchThat:
		p.identifiers(a.Idents)
		p.write(" " + BECOMES_ST_IMAGE + " ")
		// Primed identifiers are named after those being assigned
		for _, ident := range a.Idents {
			p.names.Push(ident.Name + "'")
		}
		//
		p.formula(a.Condition)
		p.unbind(len(a.Idents))
	default:
		panic(fmt.Sprintf("unknown assignment %s", a))
	}
}

func (p *Printer) identifiers(idents []*ast.FreeIdentifier) {
	for i, ident := range idents {
		if i != 0 {
			p.write(COMMA_IMAGE)
		}
		//
		p.formula(ident)
	}
}
