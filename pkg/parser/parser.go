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
	"math/big"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/types"
	"github.com/consensys/go-eventb/pkg/util/collection/stack"
	"github.com/consensys/go-eventb/pkg/util/source"
	"github.com/consensys/go-eventb/pkg/util/source/lex"
)

// ParseExpression parses a given string as an expression.
func ParseExpression(text string, grammar *Grammar, opts ...Option) *Result {
	return run(text, grammar, opts, func(p *Parser) (ast.Formula, []Problem) {
		return p.parseExpression(grammar.EOF)
	})
}

// ParsePredicate parses a given string as a predicate.
func ParsePredicate(text string, grammar *Grammar, opts ...Option) *Result {
	return run(text, grammar, opts, func(p *Parser) (ast.Formula, []Problem) {
		return p.parsePredicate(grammar.EOF)
	})
}

// ParseAssignment parses a given string as an assignment, such as "x ≔ x+1".
func ParseAssignment(text string, grammar *Grammar, opts ...Option) *Result {
	return run(text, grammar, opts, func(p *Parser) (ast.Formula, []Problem) {
		return p.parseAssignment()
	})
}

// ParseType parses a given string as a type, such as "ℙ(ℤ×S)".
func ParseType(text string, grammar *Grammar, opts ...Option) *Result {
	var typ types.Type
	//
	result := run(text, grammar, opts, func(p *Parser) (ast.Formula, []Problem) {
		expr, errs := p.parseExpression(grammar.EOF)
		if len(errs) == 0 {
			typ, errs = p.toType(expr)
		}
		//
		return expr, errs
	})
	// A type is parsed, rather than an expression.
	if !result.HasErrors() {
		result.formula, result.typ = nil, typ
	}
	//
	return result
}

func run(text string, grammar *Grammar, opts []Option, entry func(*Parser) (ast.Formula, []Problem)) (
	result *Result) {
	var (
		cfg     = newConfig(opts)
		srcfile = source.NewSourceFile(cfg.origin, text)
	)
	//
	result = &Result{origin: cfg.origin}
	// Never panic across the public boundary
	defer func() {
		if r := recover(); r != nil {
			span := source.NewSpan(0, len(srcfile.Contents()))
			result.formula = nil
			result.problems = append(result.problems, newProblem(srcfile, span, INTERNAL_ERROR, fmt.Sprint(r)))
		}
	}()
	// Lex the formula
	tokens, errs := grammar.Lex(srcfile)
	if len(errs) > 0 {
		result.problems = errs
		return result
	}
	//
	p := newParser(grammar, srcfile, tokens, cfg)
	result.srcmap = p.srcmap
	//
	formula, errs := entry(p)
	// Check everything was consumed
	if len(errs) == 0 && p.lookahead().Kind != grammar.EOF {
		errs = p.unexpected(p.lookahead())
	}
	//
	result.problems = append(p.problems, errs...)
	//
	if len(errs) == 0 {
		result.formula = formula
	}
	//
	return result
}

// Parser holds the state of a single parse operation over a sequence of
// tokens.  Sub-parsers use it to read tokens and to parse sub-formulas.
type Parser struct {
	grammar *Grammar
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index   int
	version operator.Version
	// Whether predicate variables are permitted
	predVars bool
	// Operator of which the formula being started is an operand
	parent Kind
	// Names of the bound identifiers in scope, innermost on top
	bound *stack.Stack[string]
	// Problems which did not stop parsing
	problems []Problem
	// Source mapping
	srcmap  *source.Map[ast.Formula]
	factory *types.Factory
}

func newParser(grammar *Grammar, srcfile *source.File, tokens []lex.Token, cfg config) *Parser {
	p := &Parser{
		grammar:  grammar,
		srcfile:  srcfile,
		tokens:   tokens,
		version:  cfg.version,
		predVars: cfg.predVars,
		bound:    stack.NewStack[string](),
		srcmap:   source.NewSourceMap[ast.Formula](srcfile),
		factory:  types.NewFactory(),
	}
	//
	p.bound.PushAll(cfg.boundNames)
	//
	return p
}

// Grammar returns the grammar being used.
func (p *Parser) Grammar() *Grammar {
	return p.grammar
}

// Version returns the language version being parsed.
func (p *Parser) Version() operator.Version {
	return p.version
}

// parseFormula is the core of the parser.  It parses the longest formula which
// can occur as an operand of the parent operator.  Infix operators are
// consumed for as long as they bind tighter than the parent.
func (p *Parser) parseFormula(parent Kind) (ast.Formula, Kind, []Problem) {
	var (
		start   = p.lookahead()
		nud, ok = p.grammar.nuds.Get(start.Kind)
	)
	//
	if !ok {
		return nil, 0, p.problemAt(start.Span, EXPECTED_OPERAND)
	}
	// Consume trigger
	p.index++
	p.parent = parent
	//
	left, kind, errs := nud.Nud(p, start)
	//
	for len(errs) == 0 {
		p.record(left, start)
		//
		next := p.lookahead()
		led, ok := p.grammar.leds.Get(next.Kind)
		// Tokens without an infix parser end the formula
		if !ok {
			return left, kind, nil
		}
		//
		switch p.grammar.Relationship(parent, next.Kind, p.version) {
		case operator.LEFT_PRIORITY, operator.COMPATIBLE:
			// Left operand belongs to the parent
			return left, kind, nil
		case operator.INCOMPATIBLE:
			return nil, 0, p.incompatible(parent, next)
		}
		//
		if p.grammar.Relationship(kind, next.Kind, p.version) == operator.INCOMPATIBLE {
			return nil, 0, p.incompatible(kind, next)
		}
		// Consume trigger
		p.index++
		//
		left, kind, errs = led.Led(p, next, left)
	}
	//
	return nil, 0, errs
}

func (p *Parser) parseExpression(parent Kind) (ast.Expression, []Problem) {
	f, _, errs := p.parseFormula(parent)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return p.expression(f)
}

func (p *Parser) parsePredicate(parent Kind) (ast.Predicate, []Problem) {
	f, _, errs := p.parseFormula(parent)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return p.predicate(f)
}

// parseArguments parses a comma-separated list of formulas, each of which is
// delimited (e.g. by brackets) and hence parsed in an open context.
func (p *Parser) parseArguments() ([]ast.Formula, []Problem) {
	var args []ast.Formula
	//
	for {
		arg, _, errs := p.parseFormula(p.grammar.OPEN)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		args = append(args, arg)
		//
		if !p.match(p.grammar.COMMA) {
			return args, nil
		}
	}
}

func (p *Parser) parseAssignment() (ast.Formula, []Problem) {
	var idents []*ast.FreeIdentifier
	// Parse identifiers being assigned
	for len(idents) == 0 || p.match(p.grammar.COMMA) {
		tok, errs := p.expect(p.grammar.IDENT)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		ident := ast.NewFreeIdentifier(p.text(tok))
		p.srcmap.Put(ident, tok.Span)
		idents = append(idents, ident)
	}
	//
	switch tok := p.lookahead(); tok.Kind {
	case p.grammar.BECOMES_EQ:
		p.index++
		//
		args, errs := p.parseArguments()
		if len(errs) > 0 {
			return nil, errs
		} else if len(args) != len(idents) {
			return nil, p.problemAt(tok.Span, ARITY_MISMATCH, BECOMES_EQ_IMAGE, fmt.Sprint(len(idents)))
		}
		//
		values, errs := p.expressions(args)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.NewBecomesEqualTo(idents, values), nil
	case p.grammar.BECOMES_IN:
		p.index++
		//
		if len(idents) != 1 {
			return nil, p.problemAt(tok.Span, ARITY_MISMATCH, BECOMES_IN_IMAGE, "1")
		}
		//
		set, errs := p.parseExpression(p.grammar.OPEN)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.NewBecomesMemberOf(idents[0], set), nil
	case p.grammar.BECOMES_ST:
		p.index++
		//
		primed := make([]*ast.BoundIdentDecl, len(idents))
		//
		for i, ident := range idents {
			primed[i] = ast.NewBoundIdentDecl(ident.Name + "'")
			p.bind(primed[i].Name)
		}
		//
		condition, errs := p.parsePredicate(p.grammar.OPEN)
		p.unbind(len(primed))
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.NewBecomesSuchThat(idents, primed, condition), nil
	default:
		return nil, p.problemAt(tok.Span, MISSING_TOKEN, BECOMES_EQ_IMAGE)
	}
}

// parseDecls parses a comma-separated list of bound identifier declarations,
// each of which may carry a type (e.g. "x⦂ℤ").
func (p *Parser) parseDecls() ([]*ast.BoundIdentDecl, []Problem) {
	var decls []*ast.BoundIdentDecl
	//
	for len(decls) == 0 || p.match(p.grammar.COMMA) {
		tok, errs := p.expect(p.grammar.IDENT)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		decl := ast.NewBoundIdentDecl(p.text(tok))
		//
		if p.match(p.grammar.TYPED) {
			if decl.Type, errs = p.parseTypeAnnotation(); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		p.srcmap.Put(decl, source.NewSpan(tok.Span.Start(), p.end()))
		decls = append(decls, decl)
	}
	//
	return decls, nil
}

// tryDecls attempts to parse a list of declarations followed by "·", as found
// in the explicit forms of quantifiers.  If this fails, nothing is consumed.
func (p *Parser) tryDecls() ([]*ast.BoundIdentDecl, bool) {
	m := p.mark()
	//
	if decls, errs := p.parseDecls(); len(errs) == 0 && p.match(p.grammar.DOT) {
		return decls, true
	}
	//
	p.reset(m)
	//
	return nil, false
}

// parseImplicit handles the implicit forms of quantified expressions ("E∣P"),
// where the free identifiers of E become bound.  Having parsed E once to
// determine its free identifiers, it is parsed again with them bound.
func (p *Parser) parseImplicit(m mark, first ast.Expression, exprParent Kind, predParent Kind) (
	[]*ast.BoundIdentDecl, ast.Predicate, ast.Expression, []Problem) {
	var (
		names = ast.FreeIdentifiers(first)
		decls = make([]*ast.BoundIdentDecl, len(names))
		typed = make(map[string]types.Type)
	)
	//
	if len(names) == 0 {
		span, _ := p.spanOf(first)
		return nil, nil, nil, p.problemAt(span, NOTHING_TO_BIND)
	}
	// Retain any types given for the identifiers being bound
	ast.Walk(first, func(f ast.Formula) {
		if id, ok := f.(*ast.FreeIdentifier); ok && id.Type != nil {
			typed[id.Name] = id.Type
		}
	})
	//
	for i, name := range names {
		decls[i] = &ast.BoundIdentDecl{Name: name, Type: typed[name]}
	}
	// Parse again with identifiers bound
	p.reset(m)
	p.bind(names...)
	defer p.unbind(len(names))
	//
	expr, errs := p.parseExpression(exprParent)
	if len(errs) > 0 {
		return nil, nil, nil, errs
	} else if _, errs = p.expect(p.grammar.MID); len(errs) > 0 {
		return nil, nil, nil, errs
	}
	//
	pred, errs := p.parsePredicate(predParent)
	//
	return decls, pred, expr, errs
}

func (p *Parser) parseTypeAnnotation() (types.Type, []Problem) {
	expr, errs := p.parseExpression(p.grammar.TYPED)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return p.toType(expr)
}

func (p *Parser) toType(expr ast.Expression) (types.Type, []Problem) {
	if t, ok := p.grammar.FromExpression(expr, p.factory); ok {
		return t, nil
	}
	//
	span, _ := p.spanOf(expr)
	//
	return nil, p.problemAt(span, NOT_A_TYPE, p.srcfile.Text(span))
}

func (p *Parser) identifier(tok lex.Token) ast.Expression {
	name := p.text(tok)
	// Search enclosing scopes, innermost first
	if index, ok := p.bound.Find(name); ok {
		return ast.NewBoundIdentifier(index)
	}
	//
	return ast.NewFreeIdentifier(name)
}

func (p *Parser) literal(tok lex.Token, negative bool) *ast.IntegerLiteral {
	var value big.Int
	// Digits only, so this cannot fail.
	value.SetString(p.text(tok), 10)
	//
	if negative {
		value.Neg(&value)
	}
	//
	return ast.NewIntegerLiteral(&value)
}

func (p *Parser) expression(f ast.Formula) (ast.Expression, []Problem) {
	if e, ok := f.(ast.Expression); ok {
		return e, nil
	}
	//
	span, _ := p.spanOf(f)
	//
	return nil, p.problemAt(span, EXPECTED_EXPRESSION)
}

func (p *Parser) expressions(fs []ast.Formula) ([]ast.Expression, []Problem) {
	exprs := make([]ast.Expression, len(fs))
	//
	for i, f := range fs {
		var errs []Problem
		//
		if exprs[i], errs = p.expression(f); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return exprs, nil
}

func (p *Parser) predicate(f ast.Formula) (ast.Predicate, []Problem) {
	if e, ok := f.(ast.Predicate); ok {
		return e, nil
	}
	//
	span, _ := p.spanOf(f)
	//
	return nil, p.problemAt(span, EXPECTED_PREDICATE)
}

func (p *Parser) predicates(fs []ast.Formula) ([]ast.Predicate, []Problem) {
	preds := make([]ast.Predicate, len(fs))
	//
	for i, f := range fs {
		var errs []Problem
		//
		if preds[i], errs = p.predicate(f); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return preds, nil
}

// mark records a position to which the parser can be reset.
type mark struct {
	index    int
	problems int
}

func (p *Parser) mark() mark {
	return mark{p.index, len(p.problems)}
}

func (p *Parser) reset(m mark) {
	p.index = m.index
	p.problems = p.problems[:m.problems]
}

func (p *Parser) bind(names ...string) {
	p.bound.PushAll(names)
}

func (p *Parser) unbind(n int) {
	p.bound.PopN(uint(n))
}

// record the span of a formula, unless it is already known.  A formula parsed
// within parentheses retains the span without them.
func (p *Parser) record(f ast.Formula, start lex.Token) {
	if !p.srcmap.Has(f) {
		p.srcmap.Put(f, source.NewSpan(start.Span.Start(), p.end()))
	}
}

func (p *Parser) spanOf(f ast.Formula) (source.Span, bool) {
	if f != nil && p.srcmap.Has(f) {
		return p.srcmap.Get(f), true
	}
	//
	return p.previous().Span, false
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[min(p.index, len(p.tokens)-1)]
}

func (p *Parser) previous() lex.Token {
	return p.tokens[max(p.index-1, 0)]
}

// end returns the end of the last token consumed.
func (p *Parser) end() int {
	prev := p.previous()
	return prev.Span.End()
}

// Match attempts to match the given token.
func (p *Parser) match(kind Kind) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind Kind) (lex.Token, []Problem) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.problemAt(lookahead.Span, MISSING_TOKEN, p.grammar.Image(kind))
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Get the text representing the given token as a string.
func (p *Parser) text(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

func (p *Parser) unexpected(tok lex.Token) []Problem {
	if tok.Kind == p.grammar.EOF {
		return p.problemAt(tok.Span, EXPECTED_OPERAND)
	}
	//
	return p.problemAt(tok.Span, UNEXPECTED_TOKEN, p.text(tok))
}

func (p *Parser) incompatible(left Kind, tok lex.Token) []Problem {
	return p.problemAt(tok.Span, INCOMPATIBLE_OPERATORS, p.grammar.Image(left), p.text(tok))
}

func (p *Parser) problemAt(span source.Span, kind ProblemKind, args ...string) []Problem {
	return []Problem{newProblem(p.srcfile, span, kind, args...)}
}
