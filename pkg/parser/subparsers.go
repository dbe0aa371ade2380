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
	"github.com/consensys/go-eventb/pkg/util/source/lex"
)

// SubParser is responsible for one surface form of formula.  Every sub-parser
// can both parse and print the formulas it is responsible for, which are
// identified by its tag.
type SubParser interface {
	// Tag of the formulas built by this sub-parser.
	Tag() ast.Tag
	// Print a formula built by this sub-parser.
	Print(p *Printer, f ast.Formula)
}

// NudParser is a sub-parser for forms which begin with a given token, such as
// "¬P" or "card(S)".  The token has already been consumed when Nud is called.
// This returns the parsed formula along with the kind of operator it was
// parsed as, which need not be the kind of the token.
type NudParser interface {
	SubParser
	Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem)
}

// LedParser is a sub-parser for forms whose given token follows a left
// operand, such as "a+b" or "r∼".  The token has already been consumed when
// Led is called.
type LedParser interface {
	SubParser
	Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem)
}

// multiTagged is implemented by sub-parsers responsible for more than one
// tag.
type multiTagged interface {
	tags() []ast.Tag
}

type shape struct {
	tag ast.Tag
}

func (s shape) Tag() ast.Tag {
	return s.tag
}

var (
	parens             = parenParser{shape{ast.NO_TAG}}
	identifiers        = identParser{shape{ast.FREE_IDENT}}
	literals           = literalParser{shape{ast.INTLIT}}
	predicateVariables = predicateVariableParser{shape{ast.PREDICATE_VARIABLE}}
)

// Atomic constructs a sub-parser for nullary operators, such as "ℕ" or "⊤".
func Atomic(tag ast.Tag) NudParser {
	return atomicParser{shape{tag}}
}

// Prefix constructs a sub-parser for unary prefix operators, such as "¬P".
// For unary minus, a directly following integer literal is read as a negative
// literal.
func Prefix(tag ast.Tag) NudParser {
	return prefixParser{shape{tag}}
}

// Call constructs a sub-parser for operators whose arguments are given in
// parentheses, such as "card(S)" or "partition(S, a, b)".
func Call(tag ast.Tag) NudParser {
	return callParser{shape{tag}}
}

// Binary constructs a sub-parser for binary infix operators, such as "a ↦ b".
func Binary(tag ast.Tag) LedParser {
	return binaryParser{shape{tag}}
}

// Associative constructs a sub-parser for associative infix operators, such
// as "a + b + c".  Chains of the operator are parsed into a single formula.
func Associative(tag ast.Tag) LedParser {
	return associativeParser{shape{tag}}
}

// Postfix constructs a sub-parser for unary postfix operators, such as "r∼".
func Postfix(tag ast.Tag) LedParser {
	return postfixParser{shape{tag}}
}

// Image constructs a sub-parser for bracketed binary forms, such as "f(x)"
// and "r[S]".  The closing bracket is that registered for the operator's
// image.
func Image(tag ast.Tag) LedParser {
	return imageParser{shape{tag}}
}

// SetForms constructs the sub-parser for set extensions ("{a, b}") and set
// comprehensions ("{x·P ∣ E}" and "{E ∣ P}").
func SetForms() NudParser {
	return setParser{shape{ast.SETEXT}}
}

// QuantifiedPredicate constructs a sub-parser for quantified predicates, such
// as "∀x·P".
func QuantifiedPredicate(tag ast.Tag) NudParser {
	return quantifiedPredicateParser{shape{tag}}
}

// QuantifiedExpression constructs a sub-parser for quantified expressions,
// such as "⋃x·P ∣ E" and "⋃E ∣ P".
func QuantifiedExpression(tag ast.Tag) NudParser {
	return quantifiedExpressionParser{shape{tag}}
}

// Lambda constructs the sub-parser for lambda abstractions, such as
// "λx↦y·P ∣ E".
func Lambda() NudParser {
	return lambdaParser{shape{ast.CSET}}
}

// TypeAnnotation constructs the sub-parser for type annotations on
// identifiers and atomic expressions, such as "∅⦂ℙ(ℤ)".
func TypeAnnotation() LedParser {
	return typeParser{shape{ast.NO_TAG}}
}

// ============================================================================
// Structural forms
// ============================================================================

type parenParser struct{ shape }

func (s parenParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	f, _, errs := p.parseFormula(p.grammar.OPEN)
	//
	if len(errs) > 0 {
		return nil, 0, errs
	} else if _, errs = p.expect(p.grammar.RPAR); len(errs) > 0 {
		return nil, 0, errs
	}
	// Parenthesized formulas act as atoms
	return f, p.grammar.NOOP, nil
}

func (s parenParser) Print(p *Printer, f ast.Formula) {
	panic("parentheses are printed by the enclosing formula")
}

type identParser struct{ shape }

func (s identParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	return p.identifier(tok), tok.Kind, nil
}

func (s identParser) Print(p *Printer, f ast.Formula) {
	switch f := f.(type) {
	case *ast.FreeIdentifier:
		p.write(f.Name)
		p.typeOf(f.Type)
	case *ast.BoundIdentifier:
		p.write(p.boundName(f.Index))
	default:
		panic(fmt.Sprintf("unexpected identifier %s", f))
	}
}

type literalParser struct{ shape }

func (s literalParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	return p.literal(tok, false), tok.Kind, nil
}

func (s literalParser) Print(p *Printer, f ast.Formula) {
	value := f.(*ast.IntegerLiteral).Value
	//
	if value.Sign() < 0 {
		p.write(MINUS_IMAGE + new(big.Int).Neg(value).String())
	} else {
		p.write(value.String())
	}
}

type predicateVariableParser struct{ shape }

func (s predicateVariableParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	name := p.text(tok)
	//
	if !p.predVars {
		p.problems = append(p.problems, p.problemAt(tok.Span, PREDICATE_VARIABLE_NOT_ALLOWED, name)...)
		return ast.NewLiteralPredicate(ast.BTRUE), tok.Kind, nil
	}
	//
	return ast.NewPredicateVariable(name), tok.Kind, nil
}

func (s predicateVariableParser) Print(p *Printer, f ast.Formula) {
	p.write(f.(*ast.PredicateVariable).Name)
}

type typeParser struct{ shape }

func (s typeParser) Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem) {
	typ, errs := p.parseTypeAnnotation()
	//
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	switch l := left.(type) {
	case *ast.FreeIdentifier:
		return &ast.FreeIdentifier{Name: l.Name, Type: typ}, tok.Kind, nil
	case *ast.AtomicExpression:
		e := ast.NewAtomicExpression(l.Tag())
		e.Type = typ
		//
		return e, tok.Kind, nil
	case *ast.BoundIdentifier:
		// Bound identifiers are typed by their declaration
		return l, tok.Kind, nil
	}
	//
	return nil, 0, p.problemAt(tok.Span, INVALID_TYPE_ANNOTATION)
}

func (s typeParser) Print(p *Printer, f ast.Formula) {
	panic("type annotations are printed with the formula they annotate")
}

// ============================================================================
// Operators
// ============================================================================

type atomicParser struct{ shape }

func (s atomicParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	if s.tag == ast.BTRUE || s.tag == ast.BFALSE {
		return ast.NewLiteralPredicate(s.tag), tok.Kind, nil
	}
	//
	return ast.NewAtomicExpression(s.tag), tok.Kind, nil
}

func (s atomicParser) Print(p *Printer, f ast.Formula) {
	p.write(p.image(f))
	//
	if e, ok := f.(*ast.AtomicExpression); ok {
		p.typeOf(e.Type)
	}
}

type prefixParser struct{ shape }

func (s prefixParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	var (
		kind   = p.grammar.kindOf(s)
		parent = p.parent
	)
	// A literal directly following a minus sign is negative.
	if next := p.lookahead(); s.tag == ast.UNMINUS && next.Kind == p.grammar.INTLIT &&
		next.Span.Start() == tok.Span.End() {
		p.index++
		//
		return p.literal(next, true), next.Kind, nil
	}
	// An operand of a tighter operator cannot be a prefix operator (e.g. "a^−x").
	switch p.grammar.Relationship(parent, kind, p.version) {
	case operator.LEFT_PRIORITY, operator.INCOMPATIBLE:
		return nil, 0, p.incompatible(parent, tok)
	}
	//
	operand, _, errs := p.parseFormula(kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	if s.tag == ast.NOT {
		pred, errs := p.predicate(operand)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewNot(pred), kind, nil
	}
	//
	expr, errs := p.expression(operand)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewUnaryExpression(s.tag, expr), kind, nil
}

func (s prefixParser) Print(p *Printer, f ast.Formula) {
	var (
		child   = f.Children()[0]
		operand = p.capture(func() { p.operand(f, child, false) })
	)
	//
	p.write(p.image(f))
	// Avoid gluing a minus sign onto a literal
	if lit, ok := child.(*ast.IntegerLiteral); ok && s.tag == ast.UNMINUS && lit.Value.Sign() >= 0 {
		p.write(LPAR_IMAGE + operand + RPAR_IMAGE)
	} else if s.tag == ast.UNMINUS && len(operand) > 0 && operand[0] >= '0' && operand[0] <= '9' {
		p.write(" " + operand)
	} else {
		p.write(operand)
	}
}

type callParser struct{ shape }

func (s callParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	var image = p.text(tok)
	//
	if _, errs := p.expect(p.grammar.LPAR); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	args, errs := p.parseArguments()
	if len(errs) > 0 {
		return nil, 0, errs
	} else if _, errs = p.expect(p.grammar.RPAR); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	switch {
	case s.tag == ast.KPARTITION:
		exprs, errs := p.expressions(args)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewPartition(exprs...), tok.Kind, nil
	case len(args) != 1:
		return nil, 0, p.problemAt(tok.Span, ARITY_MISMATCH, image, "1")
	case s.tag == ast.KBOOL:
		pred, errs := p.predicate(args[0])
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewBoolExpression(pred), tok.Kind, nil
	}
	//
	expr, errs := p.expression(args[0])
	if len(errs) > 0 {
		return nil, 0, errs
	} else if s.tag == ast.KFINITE {
		return ast.NewFinite(expr), tok.Kind, nil
	}
	//
	return ast.NewUnaryExpression(s.tag, expr), tok.Kind, nil
}

func (s callParser) Print(p *Printer, f ast.Formula) {
	p.write(p.image(f))
	p.arguments(f.Children())
}

type binaryParser struct{ shape }

func (s binaryParser) Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem) {
	kind := p.grammar.kindOf(s)
	//
	right, _, errs := p.parseFormula(kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	if s.tag == ast.LIMP || s.tag == ast.LEQV {
		preds, errs := p.predicates([]ast.Formula{left, right})
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewBinaryPredicate(s.tag, preds[0], preds[1]), kind, nil
	}
	//
	exprs, errs := p.expressions([]ast.Formula{left, right})
	if len(errs) > 0 {
		return nil, 0, errs
	} else if s.tag >= ast.EQUAL && s.tag <= ast.NOTSUBSETEQ {
		return ast.NewRelationalPredicate(s.tag, exprs[0], exprs[1]), kind, nil
	}
	//
	return ast.NewBinaryExpression(s.tag, exprs[0], exprs[1]), kind, nil
}

func (s binaryParser) Print(p *Printer, f ast.Formula) {
	children := f.Children()
	//
	p.operand(f, children[0], false)
	p.infix(p.image(f))
	p.operand(f, children[1], true)
}

type associativeParser struct{ shape }

func (s associativeParser) Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem) {
	var (
		kind     = p.grammar.kindOf(s)
		operands = []ast.Formula{left}
	)
	// Accumulate a chain of this operator
	for ok := true; ok; ok = p.match(tok.Kind) {
		right, _, errs := p.parseFormula(kind)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		operands = append(operands, right)
	}
	//
	if s.tag == ast.LAND || s.tag == ast.LOR {
		preds, errs := p.predicates(operands)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewAssociativePredicate(s.tag, preds...), kind, nil
	}
	//
	exprs, errs := p.expressions(operands)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewAssociativeExpression(s.tag, exprs...), kind, nil
}

func (s associativeParser) Print(p *Printer, f ast.Formula) {
	image := p.image(f)
	//
	for i, child := range f.Children() {
		if i != 0 {
			p.infix(image)
		}
		//
		p.operand(f, child, i != 0)
	}
}

type postfixParser struct{ shape }

func (s postfixParser) Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem) {
	expr, errs := p.expression(left)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewUnaryExpression(s.tag, expr), tok.Kind, nil
}

func (s postfixParser) Print(p *Printer, f ast.Formula) {
	p.operand(f, f.Children()[0], false)
	p.write(p.image(f))
}

type imageParser struct{ shape }

func (s imageParser) Led(p *Parser, tok lex.Token, left ast.Formula) (ast.Formula, Kind, []Problem) {
	closer, ok := p.grammar.closer(tok.Kind)
	if !ok {
		panic(fmt.Sprintf("no closing bracket for \"%s\"", p.text(tok)))
	}
	//
	fn, errs := p.expression(left)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	arg, errs := p.parseExpression(p.grammar.OPEN)
	if len(errs) > 0 {
		return nil, 0, errs
	} else if _, errs = p.expect(closer); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewBinaryExpression(s.tag, fn, arg), tok.Kind, nil
}

func (s imageParser) Print(p *Printer, f ast.Formula) {
	var (
		children    = f.Children()
		open, close = p.brackets(f)
	)
	//
	p.operand(f, children[0], false)
	p.write(open)
	p.formula(children[1])
	p.write(close)
}

// ============================================================================
// Binders
// ============================================================================

type quantifiedPredicateParser struct{ shape }

func (s quantifiedPredicateParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	kind := p.grammar.kindOf(s)
	//
	decls, errs := p.parseDecls()
	if len(errs) > 0 {
		return nil, 0, errs
	} else if _, errs = p.expect(p.grammar.DOT); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	p.bind(declNames(decls)...)
	defer p.unbind(len(decls))
	//
	pred, errs := p.parsePredicate(kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewQuantifiedPredicate(s.tag, decls, pred), kind, nil
}

func (s quantifiedPredicateParser) Print(p *Printer, f ast.Formula) {
	q := f.(*ast.QuantifiedPredicate)
	//
	p.write(p.image(f))
	n := p.decls(q.Decls)
	p.write(DOT_IMAGE)
	p.operand(f, q.Predicate, false)
	p.unbind(n)
}

type quantifiedExpressionParser struct{ shape }

func (s quantifiedExpressionParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	var (
		kind = p.grammar.kindOf(s)
		m    = p.mark()
	)
	// Explicit form
	if decls, ok := p.tryDecls(); ok {
		pred, expr, errs := p.parseExplicit(decls, kind)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewQuantifiedExpression(s.tag, decls, pred, expr, ast.EXPLICIT), kind, nil
	}
	// Implicit form
	first, errs := p.parseExpression(kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	decls, pred, expr, errs := p.parseImplicit(m, first, kind, kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewQuantifiedExpression(s.tag, decls, pred, expr, ast.IMPLICIT), kind, nil
}

func (s quantifiedExpressionParser) Print(p *Printer, f ast.Formula) {
	q := f.(*ast.QuantifiedExpression)
	//
	p.write(p.image(f))
	//
	if q.Form == ast.IMPLICIT && p.isImplicit(q) {
		n := p.implicitDecls(q.Decls)
		p.operand(f, q.Expression, false)
		p.write(MID_IMAGE)
		p.operand(f, q.Predicate, false)
		p.unbind(n)
	} else {
		n := p.decls(q.Decls)
		p.write(DOT_IMAGE)
		p.formula(q.Predicate)
		p.write(MID_IMAGE)
		p.operand(f, q.Expression, false)
		p.unbind(n)
	}
}

// parseExplicit parses the remainder of an explicit quantified expression,
// after its declarations and "·".
func (p *Parser) parseExplicit(decls []*ast.BoundIdentDecl, exprParent Kind) (ast.Predicate, ast.Expression,
	[]Problem) {
	p.bind(declNames(decls)...)
	defer p.unbind(len(decls))
	//
	pred, errs := p.parsePredicate(p.grammar.OPEN)
	if len(errs) > 0 {
		return nil, nil, errs
	} else if _, errs = p.expect(p.grammar.MID); len(errs) > 0 {
		return nil, nil, errs
	}
	//
	expr, errs := p.parseExpression(exprParent)
	//
	return pred, expr, errs
}

type setParser struct{ shape }

func (s setParser) tags() []ast.Tag {
	return []ast.Tag{ast.SETEXT, ast.CSET}
}

func (s setParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	var (
		kind = p.grammar.kindOf(s)
		m    = p.mark()
	)
	//
	closer, ok := p.grammar.closer(tok.Kind)
	if !ok {
		panic(fmt.Sprintf("no closing bracket for \"%s\"", p.text(tok)))
	} else if p.match(closer) {
		return ast.NewSetExtension(), kind, nil
	}
	// Explicit comprehension
	if decls, ok := p.tryDecls(); ok {
		pred, expr, errs := p.parseExplicit(decls, p.grammar.OPEN)
		if len(errs) > 0 {
			return nil, 0, errs
		} else if _, errs = p.expect(closer); len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewQuantifiedExpression(ast.CSET, decls, pred, expr, ast.EXPLICIT), kind, nil
	}
	//
	first, errs := p.parseExpression(p.grammar.OPEN)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	// Implicit comprehension
	if p.lookahead().Kind == p.grammar.MID {
		decls, pred, expr, errs := p.parseImplicit(m, first, p.grammar.OPEN, p.grammar.OPEN)
		if len(errs) > 0 {
			return nil, 0, errs
		} else if _, errs = p.expect(closer); len(errs) > 0 {
			return nil, 0, errs
		}
		//
		return ast.NewQuantifiedExpression(ast.CSET, decls, pred, expr, ast.IMPLICIT), kind, nil
	}
	// Extension
	members := []ast.Expression{first}
	//
	for p.match(p.grammar.COMMA) {
		member, errs := p.parseExpression(p.grammar.OPEN)
		if len(errs) > 0 {
			return nil, 0, errs
		}
		//
		members = append(members, member)
	}
	//
	if _, errs = p.expect(closer); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	return ast.NewSetExtension(members...), kind, nil
}

func (s setParser) Print(p *Printer, f ast.Formula) {
	open, close := p.brackets(f)
	//
	p.write(open)
	//
	switch f := f.(type) {
	case *ast.SetExtension:
		for i, member := range f.Members {
			if i != 0 {
				p.write(COMMA_IMAGE)
			}
			//
			p.formula(member)
		}
	case *ast.QuantifiedExpression:
		if f.Form == ast.IMPLICIT && p.isImplicit(f) {
			n := p.implicitDecls(f.Decls)
			p.formula(f.Expression)
			p.write(MID_IMAGE)
			p.formula(f.Predicate)
			p.unbind(n)
		} else {
			n := p.decls(f.Decls)
			p.write(DOT_IMAGE)
			p.formula(f.Predicate)
			p.write(MID_IMAGE)
			p.formula(f.Expression)
			p.unbind(n)
		}
	}
	//
	p.write(close)
}

type lambdaParser struct{ shape }

func (s lambdaParser) Nud(p *Parser, tok lex.Token) (ast.Formula, Kind, []Problem) {
	var kind = p.grammar.kindOf(s)
	// Parse the pattern with its identifiers free
	pattern, errs := p.parseExpression(kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	var decls []*ast.BoundIdentDecl
	//
	if decls, errs = p.patternDecls(pattern, nil); len(errs) > 0 {
		return nil, 0, errs
	} else if _, errs = p.expect(p.grammar.DOT); len(errs) > 0 {
		return nil, 0, errs
	}
	//
	pred, expr, errs := p.parseExplicit(decls, kind)
	if len(errs) > 0 {
		return nil, 0, errs
	}
	//
	maplet := ast.NewBinaryExpression(ast.MAPSTO, p.bindPattern(pattern, decls), expr)
	//
	return ast.NewQuantifiedExpression(ast.CSET, decls, pred, maplet, ast.LAMBDA), kind, nil
}

func (s lambdaParser) Print(p *Printer, f ast.Formula) {
	q := f.(*ast.QuantifiedExpression)
	maplet, ok := q.Expression.(*ast.BinaryExpression)
	// Lambdas not in the expected shape are printed as comprehensions
	if !ok || maplet.Tag() != ast.MAPSTO || !isPattern(maplet.Left, len(q.Decls)) {
		explicit := ast.NewQuantifiedExpression(ast.CSET, q.Decls, q.Predicate, q.Expression, ast.EXPLICIT)
		p.formula(explicit)
		//
		return
	}
	//
	p.write(p.image(f))
	//
	n := p.implicitDecls(q.Decls)
	p.formula(maplet.Left)
	p.write(DOT_IMAGE)
	p.formula(q.Predicate)
	p.write(MID_IMAGE)
	p.operand(f, maplet.Right, false)
	p.unbind(n)
}

// patternDecls checks that a lambda pattern consists only of distinct
// identifiers combined with maplets, and returns their declarations in order.
// Identifiers of the pattern shadow any enclosing declarations of the same
// name.
func (p *Parser) patternDecls(pattern ast.Expression, decls []*ast.BoundIdentDecl) ([]*ast.BoundIdentDecl,
	[]Problem) {
	var decl *ast.BoundIdentDecl
	//
	switch e := pattern.(type) {
	case *ast.FreeIdentifier:
		decl = &ast.BoundIdentDecl{Name: e.Name, Type: e.Type}
	case *ast.BoundIdentifier:
		decl = ast.NewBoundIdentDecl(p.bound.Peek(e.Index))
	case *ast.BinaryExpression:
		if e.Tag() == ast.MAPSTO {
			decls, errs := p.patternDecls(e.Left, decls)
			if len(errs) > 0 {
				return nil, errs
			}
			//
			return p.patternDecls(e.Right, decls)
		}
	}
	//
	span, _ := p.spanOf(pattern)
	//
	if decl == nil {
		return nil, p.problemAt(span, UNEXPECTED_TOKEN, p.srcfile.Text(span))
	}
	//
	for _, d := range decls {
		if d.Name == decl.Name {
			return nil, p.problemAt(span, UNEXPECTED_TOKEN, decl.Name)
		}
	}
	//
	return append(decls, decl), nil
}

// bindPattern converts the identifiers of a lambda pattern into references to
// their declarations.
func (p *Parser) bindPattern(pattern ast.Expression, decls []*ast.BoundIdentDecl) ast.Expression {
	var name string
	//
	switch e := pattern.(type) {
	case *ast.FreeIdentifier:
		name = e.Name
	case *ast.BoundIdentifier:
		name = p.bound.Peek(e.Index)
	case *ast.BinaryExpression:
		return ast.NewBinaryExpression(ast.MAPSTO, p.bindPattern(e.Left, decls), p.bindPattern(e.Right, decls))
	}
	//
	for i, d := range decls {
		if d.Name == name {
			return ast.NewBoundIdentifier(uint(len(decls) - 1 - i))
		}
	}
	//
	panic(fmt.Sprintf("invalid lambda pattern %s", pattern))
}

// isPattern checks whether a lambda pattern refers to each of n declarations
// exactly once, in order of declaration.
func isPattern(pattern ast.Expression, n int) bool {
	var (
		next = n - 1
		ok   = true
	)
	//
	var visit func(ast.Expression)
	visit = func(e ast.Expression) {
		switch e := e.(type) {
		case *ast.BoundIdentifier:
			ok = ok && int(e.Index) == next
			next--
		case *ast.BinaryExpression:
			if e.Tag() != ast.MAPSTO {
				ok = false
				return
			}
			//
			visit(e.Left)
			visit(e.Right)
		default:
			ok = false
		}
	}
	//
	visit(pattern)
	//
	return ok && next == -1
}

func declNames(decls []*ast.BoundIdentDecl) []string {
	names := make([]string, len(decls))
	//
	for i, d := range decls {
		names[i] = d.Name
	}
	//
	return names
}
