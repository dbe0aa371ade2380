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
	"errors"
	"fmt"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/util/source/lex"
)

// Shape determines how the operator of an extension is written.
type Shape uint8

const (
	// ATOMIC operators take no arguments (e.g. "nil").
	ATOMIC Shape = iota
	// PARENTHESIZED operators take a fixed number of arguments, given in
	// parentheses (e.g. "cons(x, l)").
	PARENTHESIZED
	// INFIX operators take two arguments (e.g. "a ⊕ b").
	INFIX
	// ASSOCIATIVE_INFIX operators take two or more arguments (e.g.
	// "a ⊕ b ⊕ c").
	ASSOCIATIVE_INFIX
)

func (s Shape) String() string {
	switch s {
	case ATOMIC:
		return "atomic"
	case PARENTHESIZED:
		return "parenthesized"
	case INFIX:
		return "infix"
	case ASSOCIATIVE_INFIX:
		return "associative infix"
	}
	//
	return fmt.Sprintf("shape%d", uint8(s))
}

// Pair of operator (or group) identifiers.
type Pair struct {
	Left  string
	Right string
}

// Extension describes an operator contributed on top of a language, such as
// the constructor of a datatype.  Extensions are plain records, registered
// with a grammar through AddExtension, which allocates each a fresh tag.
type Extension struct {
	// Unique identifier of the operator
	ID string
	// Image of the operator
	Syntax string
	Shape  Shape
	// Number of arguments of a parenthesized operator
	Arity uint
	// Group the operator belongs to
	Group string
	// Whether the operator builds a predicate, rather than an expression
	Predicate bool
	// Whether the arguments are predicates, rather than expressions
	PredicateArgs bool
	// Whether the operator is a type constructor
	Type bool
	// Optional check of the arguments, applied before a formula is
	// constructed.  An error rejects the formula.
	Check func(args []ast.Formula) error
	// Additional relationships with other operators
	Compatibilities []Pair
	Priorities      []Pair
	GroupPriorities []Pair
}

// Arguments returns the number of arguments this operator expects, or zero if
// this can vary.
func (e *Extension) Arguments() uint {
	switch e.Shape {
	case ATOMIC:
		return 0
	case PARENTHESIZED:
		return e.Arity
	case INFIX:
		return 2
	}
	//
	return 0
}

func (e *Extension) validate() error {
	switch {
	case e.ID == "":
		return errors.New("extension has no identifier")
	case e.Syntax == "":
		return fmt.Errorf("extension %s has no syntax", e.ID)
	case e.Group == "":
		return fmt.Errorf("extension %s has no group", e.ID)
	case e.Shape > ASSOCIATIVE_INFIX:
		return fmt.Errorf("extension %s has unknown shape %s", e.ID, e.Shape)
	case e.Shape == PARENTHESIZED && e.Arity == 0:
		return fmt.Errorf("parenthesized extension %s has no arguments", e.ID)
	case e.Shape != PARENTHESIZED && e.Arity != 0:
		return fmt.Errorf("%s extension %s cannot have arity %d", e.Shape, e.ID, e.Arity)
	case e.Predicate && e.Type:
		return fmt.Errorf("predicate extension %s cannot be a type constructor", e.ID)
	}
	//
	return nil
}

// extensionParser adapts an extension into the sub-parser protocol.
type extensionParser struct {
	ext *Extension
	tag ast.Tag
}

func (s extensionParser) Tag() ast.Tag {
	return s.tag
}

func (s extensionParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	if s.ext.Shape == ATOMIC {
		return s.build(p, tok, nil)
	} else if _, errs := p.expect(p.grammar.LPAR); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	args, errs := p.parseArguments()
	if len(errs) > 0 {
		return nil, 0, errs
	} else if _, errs = p.expect(p.grammar.RPAR); len(errs) > 0 {
		return nil, 0, errs
	} else if uint(len(args)) != s.ext.Arity {
		return nil, 0, p.problemAt(tok.Span, ARITY_MISMATCH, s.ext.Syntax, fmt.Sprint(s.ext.Arity))
	}
	//
	return s.build(p, tok, args)
}

func (s extensionParser) Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem) {
	var args = []ast.Formula{left}
	//
	for ok := true; ok; ok = s.ext.Shape == ASSOCIATIVE_INFIX && p.match(tok.Kind) {
		right, _, errs := p.parseFormula(tok.Kind)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		args = append(args, right)
	}
	//
	return s.build(p, tok, args)
}

func (s extensionParser) build(p *Parser, tok lex.Token, args []ast.Formula) (ast.Formula, Kind, []Problem) {
	var errs []Problem
	// Check arguments have the right class
	if s.ext.PredicateArgs {
		_, errs = p.predicates(args)
	} else {
		_, errs = p.expressions(args)
	}
	//
	if len(errs) > 0 {
		return nil, 0, errs
	} else if s.ext.Check != nil {
		if err := s.ext.Check(args); err != nil {
			return nil, 0, p.problemAt(tok.Span, EXTENSION_REJECTED, err.Error())
		}
	}
	//
	if s.ext.Predicate {
		return ast.NewExtendedPredicate(s.tag, s.ext.Syntax, args...), tok.Kind, nil
	}
	//
	return ast.NewExtendedExpression(s.tag, s.ext.Syntax, args...), tok.Kind, nil
}

func (s extensionParser) Print(p *Printer, f ast.Formula) {
	var (
		args  = f.Children()
		image = p.image(f)
	)
	//
	switch s.ext.Shape {
	case ATOMIC:
		p.write(image)
	case PARENTHESIZED:
		p.write(image)
		p.arguments(args)
	default:
		for i, arg := range args {
			if i != 0 {
				p.infix(image)
			}
			//
			p.operand(f, arg, i != 0)
		}
	}
}
