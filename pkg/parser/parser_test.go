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
	"testing"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/types"
	"github.com/consensys/go-eventb/pkg/util/assert"
)

// ============================================================================
// Precedence
// ============================================================================

func TestParser_00(t *testing.T) {
	g := testGrammar()
	expected := ast.NewAssociativeExpression(ast.PLUS, ast.NewInt(1),
		ast.NewAssociativeExpression(ast.MUL, ast.NewInt(2), ast.NewInt(3)))
	//
	checkExpression(t, g, "1+2∗3", expected)
	checkPrint(t, g, expected, "1+2∗3")
}

func TestParser_01(t *testing.T) {
	g := testGrammar()
	expected := ast.NewAssociativeExpression(ast.MUL,
		ast.NewAssociativeExpression(ast.PLUS, ast.NewInt(1), ast.NewInt(2)), ast.NewInt(3))
	//
	checkExpression(t, g, "(1+2)∗3", expected)
	checkPrint(t, g, expected, "(1+2)∗3")
}

func TestParser_02(t *testing.T) {
	g := testGrammar()
	expected := ast.NewAssociativeExpression(ast.PLUS, ast.NewInt(1), ast.NewInt(2), ast.NewInt(3), ast.NewInt(4))
	//
	checkExpression(t, g, "1+2+3+4", expected)
	checkPrint(t, g, expected, "1+2+3+4")
	// Nested chains are kept apart
	nested := ast.NewAssociativeExpression(ast.PLUS, ast.NewInt(1),
		ast.NewAssociativeExpression(ast.PLUS, ast.NewInt(2), ast.NewInt(3)))
	checkPrint(t, g, nested, "1+(2+3)")
	checkRoundTrip(t, g, "1+(2+3)")
}

func TestParser_03(t *testing.T) {
	g := testGrammar()
	x := ast.NewFreeIdentifier("x")
	//
	checkExpression(t, g, "−3", ast.NewInt(-3))
	checkExpression(t, g, "− x", ast.NewUnaryExpression(ast.UNMINUS, x))
	checkExpression(t, g, "− 3", ast.NewUnaryExpression(ast.UNMINUS, ast.NewInt(3)))
	checkExpression(t, g, "−(3)", ast.NewUnaryExpression(ast.UNMINUS, ast.NewInt(3)))
	checkExpression(t, g, "2∗−3", ast.NewAssociativeExpression(ast.MUL, ast.NewInt(2), ast.NewInt(-3)))
	checkPrint(t, g, ast.NewUnaryExpression(ast.UNMINUS, ast.NewInt(3)), "−(3)")
	checkPrint(t, g, ast.NewUnaryExpression(ast.UNMINUS, x), "−x")
	checkPrint(t, g, ast.NewInt(-3), "−3")
}

func TestParser_04(t *testing.T) {
	g := testGrammar()
	a, b, c := ast.NewFreeIdentifier("a"), ast.NewFreeIdentifier("b"), ast.NewFreeIdentifier("c")
	left := ast.NewBinaryExpression(ast.MINUS, ast.NewBinaryExpression(ast.MINUS, a, b), c)
	right := ast.NewBinaryExpression(ast.MINUS, a, ast.NewBinaryExpression(ast.MINUS, b, c))
	// Compatible operators associate to the left
	checkExpression(t, g, "a−b−c", left)
	checkPrint(t, g, left, "a−b−c")
	checkPrint(t, g, right, "a−(b−c)")
	checkExpression(t, g, "a+b−c",
		ast.NewBinaryExpression(ast.MINUS, ast.NewAssociativeExpression(ast.PLUS, a, b), c))
	checkExpression(t, g, "a−b+c",
		ast.NewAssociativeExpression(ast.PLUS, ast.NewBinaryExpression(ast.MINUS, a, b), c))
}

func TestParser_05(t *testing.T) {
	g := testGrammar()
	//
	checkProblem(t, ParsePredicate("a=b=c", g), INCOMPATIBLE_OPERATORS)
	checkProblem(t, ParsePredicate("a<b=c", g), INCOMPATIBLE_OPERATORS)
}

func TestParser_06(t *testing.T) {
	// Operators of unrelated groups
	g := NewGrammar()
	oplus, err1 := g.AddExtension(&Extension{ID: "oplus", Syntax: "⊕", Shape: INFIX, Group: "g1"})
	otimes, err2 := g.AddExtension(&Extension{ID: "otimes", Syntax: "⊗", Shape: INFIX, Group: "g2"})
	//
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	g.Freeze()
	//
	kplus, _ := g.Kind("oplus")
	ktimes, _ := g.Kind("otimes")
	assert.Equal(t, operator.LEFT_PRIORITY, g.Relationship(kplus, ktimes, operator.LATEST))
	assert.Equal(t, operator.LEFT_PRIORITY, g.Relationship(ktimes, kplus, operator.LATEST))
	// The operand already parsed binds to the left
	a, b, c := ast.NewFreeIdentifier("a"), ast.NewFreeIdentifier("b"), ast.NewFreeIdentifier("c")
	checkExpression(t, g, "a⊕b⊗c",
		ast.NewExtendedExpression(otimes, "⊗", ast.NewExtendedExpression(oplus, "⊕", a, b), c))
	checkExpression(t, g, "a⊗b⊕c",
		ast.NewExtendedExpression(oplus, "⊕", ast.NewExtendedExpression(otimes, "⊗", a, b), c))
}

func TestParser_07(t *testing.T) {
	g := testGrammar()
	a, b, c, d := ast.NewFreeIdentifier("a"), ast.NewFreeIdentifier("b"), ast.NewFreeIdentifier("c"),
		ast.NewFreeIdentifier("d")
	expected := ast.NewAssociativePredicate(ast.LAND, ast.NewRelationalPredicate(ast.LT, a, b),
		ast.NewNot(ast.NewRelationalPredicate(ast.LT, c, d)))
	//
	checkPredicate(t, g, "a<b∧¬c<d", expected)
	checkPrint(t, g, expected, "a<b∧¬c<d")
	checkRoundTrip(t, g, "¬¬a<b")
	checkRoundTrip(t, g, "¬(a<b∧c<d)")
}

// ============================================================================
// Binders
// ============================================================================

func TestParser_08(t *testing.T) {
	g := testGrammar()
	y := ast.NewFreeIdentifier("y")
	//
	checkPredicate(t, g, "∀x·x=y", ast.NewQuantifiedPredicate(ast.FORALL, decls("x"),
		ast.NewRelationalPredicate(ast.EQUAL, ast.NewBoundIdentifier(0), y)))
	checkPredicate(t, g, "∀x·∀y·x=y", ast.NewQuantifiedPredicate(ast.FORALL, decls("x"),
		ast.NewQuantifiedPredicate(ast.FORALL, decls("y"),
			ast.NewRelationalPredicate(ast.EQUAL, ast.NewBoundIdentifier(1), ast.NewBoundIdentifier(0)))))
	checkPredicate(t, g, "∀x,y·x=y", ast.NewQuantifiedPredicate(ast.FORALL, decls("x", "y"),
		ast.NewRelationalPredicate(ast.EQUAL, ast.NewBoundIdentifier(1), ast.NewBoundIdentifier(0))))
	checkRoundTrip(t, g, "∀x,y·x=y")
	checkRoundTrip(t, g, "∀x·∀y·x<y∧y<z")
}

func TestParser_09(t *testing.T) {
	g := testGrammar()
	x := ast.NewBoundIdentifier(0)
	implicit := ast.NewQuantifiedExpression(ast.CSET, decls("x"),
		ast.NewRelationalPredicate(ast.LT, x, ast.NewInt(1)), x, ast.IMPLICIT)
	explicit := ast.NewQuantifiedExpression(ast.CSET, decls("x"),
		ast.NewRelationalPredicate(ast.LT, x, ast.NewInt(1)), x, ast.EXPLICIT)
	//
	checkExpression(t, g, "{x∣x<1}", implicit)
	checkExpression(t, g, "{x·x<1∣x}", explicit)
	checkPrint(t, g, implicit, "{x∣x<1}")
	checkPrint(t, g, explicit, "{x·x<1∣x}")
	checkRoundTrip(t, g, "{x+y∣x<y}")
	checkRoundTrip(t, g, "⋃{x}∣x<1")
	checkRoundTrip(t, g, "⋃x·x<1∣{x}")
	checkProblem(t, ParseExpression("{1∣1<2}", g), NOTHING_TO_BIND)
}

func TestParser_10(t *testing.T) {
	g := testGrammar()
	x, y := ast.NewBoundIdentifier(1), ast.NewBoundIdentifier(0)
	expected := ast.NewQuantifiedExpression(ast.CSET, decls("x", "y"), ast.NewRelationalPredicate(ast.LT, x, y),
		ast.NewBinaryExpression(ast.MAPSTO, ast.NewBinaryExpression(ast.MAPSTO, x, y),
			ast.NewAssociativeExpression(ast.PLUS, x, y)), ast.LAMBDA)
	//
	checkExpression(t, g, "λx↦y·x<y∣x+y", expected)
	checkPrint(t, g, expected, "λx↦y·x<y∣x+y")
	checkProblem(t, ParseExpression("λx↦x·x<1∣x", g), UNEXPECTED_TOKEN)
	checkProblem(t, ParseExpression("λx+1·x<1∣x", g), UNEXPECTED_TOKEN)
}

func TestParser_11(t *testing.T) {
	g := testGrammar()
	// Declarations clashing with free identifiers are renamed
	f := ast.NewQuantifiedPredicate(ast.FORALL, decls("y"),
		ast.NewRelationalPredicate(ast.EQUAL, ast.NewBoundIdentifier(0), ast.NewFreeIdentifier("y")))
	checkPrint(t, g, f, "∀y0·y0=y")
	// As are those clashing with enclosing declarations
	f = ast.NewQuantifiedPredicate(ast.FORALL, decls("x"), ast.NewQuantifiedPredicate(ast.FORALL, decls("x"),
		ast.NewRelationalPredicate(ast.EQUAL, ast.NewBoundIdentifier(0), ast.NewBoundIdentifier(1))))
	checkPrint(t, g, f, "∀x·∀x0·x0=x")
	// Lambdas not in the expected shape
	lambda := ast.NewQuantifiedExpression(ast.CSET, decls("x"), ast.NewLiteralPredicate(ast.BTRUE),
		ast.NewFreeIdentifier("z"), ast.LAMBDA)
	checkPrint(t, g, lambda, "{x·⊤∣z}")
}

func TestParser_12(t *testing.T) {
	g := testGrammar()
	expected := ast.NewAssociativeExpression(ast.PLUS, ast.NewBoundIdentifier(0), ast.NewFreeIdentifier("y"))
	//
	checkExpression(t, g, "x+y", expected, WithBoundNames("x"))
	checkPrint(t, g, expected, "x+y", WithBoundNames("x"))
	//
	assert.Panics(t, func() { Print(expected, g) })
}

// ============================================================================
// Predicate variables and assignments
// ============================================================================

func TestParser_13(t *testing.T) {
	g := testGrammar()
	// Not permitted, hence replaced
	res := ParsePredicate("$P∧a<b", g)
	checkProblem(t, res, PREDICATE_VARIABLE_NOT_ALLOWED)
	assert.False(t, res.HasErrors())
	assert.Equal(t, ast.BTRUE, res.Predicate().Children()[0].Tag())
	// Permitted
	res = ParsePredicate("$P∧a<b", g, WithPredicateVariables())
	assert.True(t, res.Success())
	assert.True(t, res.Predicate().Children()[0].Equals(ast.NewPredicateVariable("$P")))
	checkPrint(t, g, res.Predicate(), "$P∧a<b")
}

func TestParser_14(t *testing.T) {
	g := testGrammar()
	x, y := ast.NewFreeIdentifier("x"), ast.NewFreeIdentifier("y")
	//
	res := ParseAssignment("x,y ≔ 1,2", g)
	assert.True(t, res.Success())
	assert.True(t, res.Assignment().Equals(ast.NewBecomesEqualTo([]*ast.FreeIdentifier{x, y},
		[]ast.Expression{ast.NewInt(1), ast.NewInt(2)})))
	//
	checkProblem(t, ParseAssignment("x,y ≔ 1", g), ARITY_MISMATCH)
	checkProblem(t, ParseAssignment("x,y :∈ ℤ", g), ARITY_MISMATCH)
	checkProblem(t, ParseAssignment("x", g), MISSING_TOKEN)
	checkAssignment(t, g, "x ≔ x+1")
	checkAssignment(t, g, "x :∈ ℤ")
	checkAssignment(t, g, "x,y :∣ x'<y∧y'<x")
	// Primed identifiers are bound
	res = ParseAssignment("x :∣ x'<x", g)
	assert.True(t, res.Assignment().Equals(ast.NewBecomesSuchThat([]*ast.FreeIdentifier{x}, decls("x'"),
		ast.NewRelationalPredicate(ast.LT, ast.NewBoundIdentifier(0), x))))
}

// ============================================================================
// Types
// ============================================================================

func TestParser_15(t *testing.T) {
	var (
		g   = testGrammar()
		f   = types.NewFactory()
		res = ParseType("ℙ(ℤ×S)", g)
	)
	//
	assert.True(t, res.Success())
	assert.True(t, res.Formula() == nil)
	assert.True(t, res.Type().Equals(f.PowerSet(f.Product(f.Integer(), f.Given("S")))))
	checkProblem(t, ParseType("1", g), NOT_A_TYPE)
	checkProblem(t, ParseType("S+T", g), NOT_A_TYPE)
}

func TestParser_16(t *testing.T) {
	var (
		g     = testGrammar()
		f     = types.NewFactory()
		typed = &ast.FreeIdentifier{Name: "x", Type: f.Integer()}
	)
	//
	checkExpression(t, g, "x⦂ℤ", typed)
	checkPrint(t, g, typed, "x⦂ℤ", WithTypes())
	checkPrint(t, g, typed, "x")
	checkRoundTrip(t, g, "x⦂ℙ(ℤ)+1", WithTypes())
	checkRoundTrip(t, g, "x⦂(ℤ×ℤ)", WithTypes())
	checkProblem(t, ParseExpression("(x+1)⦂ℤ", g), INVALID_TYPE_ANNOTATION)
	checkProblem(t, ParseExpression("x⦂1", g), NOT_A_TYPE)
	// Typed declarations
	checkRoundTrip(t, g, "∀x⦂ℤ,y·x<y", WithTypes())
	checkPrint(t, g, ParseExpression("{x⦂ℤ∣x<1}", g).Expression(), "{x⦂ℤ·x<1∣x}", WithTypes())
}

// ============================================================================
// Operators
// ============================================================================

func TestParser_17(t *testing.T) {
	g := testGrammar()
	s := ast.NewFreeIdentifier("S")
	//
	checkExpression(t, g, "card(S)", ast.NewUnaryExpression(ast.KCARD, s))
	checkProblem(t, ParseExpression("card(S,S)", g), ARITY_MISMATCH)
	checkProblem(t, ParseExpression("card S", g), MISSING_TOKEN)
	checkRoundTrip(t, g, "card(S)+card({1,2})")
	checkRoundTrip(t, g, "ℙ(S)")
	checkRoundTrip(t, g, "{}")
}

func TestParser_18(t *testing.T) {
	g := testGrammar()
	f, x, y := ast.NewFreeIdentifier("f"), ast.NewFreeIdentifier("x"), ast.NewFreeIdentifier("y")
	//
	checkExpression(t, g, "f(x)(y)", ast.NewBinaryExpression(ast.FUNIMAGE,
		ast.NewBinaryExpression(ast.FUNIMAGE, f, x), y))
	checkExpression(t, g, "f∼(x)", ast.NewBinaryExpression(ast.FUNIMAGE,
		ast.NewUnaryExpression(ast.CONVERSE, f), x))
	checkPrint(t, g, ast.NewBinaryExpression(ast.FUNIMAGE, ast.NewAssociativeExpression(ast.PLUS, f, x), y),
		"(f+x)(y)")
	checkRoundTrip(t, g, "f(x+1)∼")
}

func TestParser_19(t *testing.T) {
	g := testGrammar()
	//
	checkProblem(t, ParsePredicate("x+1", g), EXPECTED_PREDICATE)
	checkProblem(t, ParseExpression("x<1", g), EXPECTED_EXPRESSION)
	checkProblem(t, ParseExpression("x # y", g), UNKNOWN_TEXT)
	checkProblem(t, ParseExpression("x y", g), UNEXPECTED_TOKEN)
	checkProblem(t, ParseExpression("", g), EXPECTED_OPERAND)
	checkProblem(t, ParseExpression("(x", g), MISSING_TOKEN)
	checkProblem(t, ParseExpression("x+", g), EXPECTED_OPERAND)
}

// ============================================================================
// Results
// ============================================================================

func TestParser_20(t *testing.T) {
	g := testGrammar()
	res := ParseExpression("x + y∗z", g, WithOrigin("inv1"))
	//
	assert.True(t, res.Success())
	assert.Equal(t, "inv1", res.Origin())
	// Spans of sub-formulas
	span, ok := res.Span(res.Expression())
	assert.True(t, ok)
	assert.Equal(t, 0, span.Start())
	assert.Equal(t, 7, span.End())
	//
	span, ok = res.Span(res.Expression().Children()[1])
	assert.True(t, ok)
	assert.Equal(t, 4, span.Start())
	// Problems are located
	res = ParseExpression("x + # y", g)
	assert.False(t, res.Success())
	assert.True(t, res.Formula() == nil)
	span = res.Problems()[0].Span()
	assert.Equal(t, 4, span.Start())
}

func TestParser_21(t *testing.T) {
	g := NewGrammar()
	//
	assert.NoError(t, g.AddLed("+", "plus", "arith", Associative(ast.PLUS)))
	assert.NoError(t, g.AddLed("+", "plus", "arith", Associative(ast.PLUS)))
	// Conflicting bindings
	var override *operator.OverrideError
	//
	assert.True(t, errors.As(g.AddLed("+", "plus", "logic", Associative(ast.PLUS)), &override))
	assert.True(t, errors.As(g.AddLed("+", "plus", "arith", Binary(ast.MINUS)), &override))
	assert.True(t, errors.As(g.AddLed("∗", "plus", "arith", Associative(ast.MUL)), &override))
	//
	g.Freeze()
	//
	var frozen *operator.FrozenError
	//
	assert.True(t, g.IsFrozen())
	assert.True(t, errors.As(g.AddNud("ℤ", "integer", "closed", Atomic(ast.INTEGER)), &frozen))
	assert.True(t, errors.As(g.Alias("plus", "+"), &frozen))
}

func TestParser_22(t *testing.T) {
	g := testGrammar()
	//
	assert.Equal(t, []string{"card"}, g.Keywords())
	assert.True(t, g.NeedsParentheses(false, ast.PLUS, ast.MUL, operator.LATEST))
	assert.False(t, g.NeedsParentheses(true, ast.MUL, ast.PLUS, operator.LATEST))
	assert.True(t, g.NeedsParentheses(true, ast.MINUS, ast.MINUS, operator.LATEST))
	assert.False(t, g.NeedsParentheses(false, ast.MINUS, ast.MINUS, operator.LATEST))
	assert.False(t, g.NeedsParentheses(false, ast.FREE_IDENT, ast.MUL, operator.LATEST))
	// Compatibility holds within priorities, unlike the relationship
	plus, _ := g.Kind("plus")
	mul, _ := g.Kind("mul")
	assert.True(t, g.IsCompatible(plus, mul, operator.LATEST))
	assert.Equal(t, operator.RIGHT_PRIORITY, g.Relationship(plus, mul, operator.LATEST))
}

// ============================================================================
// Extensions
// ============================================================================

func TestParser_23(t *testing.T) {
	g := NewGrammar()
	nilExt := &Extension{ID: "nil", Syntax: "nil", Shape: ATOMIC, Group: "closed"}
	consExt := &Extension{ID: "cons", Syntax: "cons", Shape: PARENTHESIZED, Arity: 2, Group: "closed"}
	//
	nilTag, err := g.AddExtension(nilExt)
	assert.NoError(t, err)
	consTag, err := g.AddExtension(consExt)
	assert.NoError(t, err)
	// Registering again has no effect
	tag, err := g.AddExtension(consExt)
	assert.NoError(t, err)
	assert.Equal(t, consTag, tag)
	// Unless conflicting
	_, err = g.AddExtension(&Extension{ID: "cons", Syntax: "::", Shape: INFIX, Group: "closed"})
	assert.Error(t, err)
	//
	g.Freeze()
	//
	expected := ast.NewExtendedExpression(consTag, "cons", ast.NewInt(1), ast.NewExtendedExpression(nilTag, "nil"))
	checkExpression(t, g, "cons(1, nil)", expected)
	checkPrint(t, g, expected, "cons(1,nil)")
	checkProblem(t, ParseExpression("cons(1)", g), ARITY_MISMATCH)
	//
	ext, ok := g.ExtensionOf(consTag)
	assert.True(t, ok)
	assert.Equal(t, consExt, ext)
	assert.Equal(t, []*Extension{nilExt, consExt}, g.Extensions())
	assert.Equal(t, uint(2), consExt.Arguments())
}

func TestParser_24(t *testing.T) {
	g := NewGrammar()
	//
	_, err := g.AddExtension(&Extension{ID: "positive", Syntax: "pos", Shape: PARENTHESIZED, Arity: 1,
		Group: "closed", Check: func(args []ast.Formula) error {
			if lit, ok := args[0].(*ast.IntegerLiteral); ok && lit.Value.Sign() <= 0 {
				return fmt.Errorf("%s is not positive", lit)
			}
			//
			return nil
		}})
	assert.NoError(t, err)
	//
	_, err = g.AddExtension(&Extension{ID: "broken", Syntax: "broken", Shape: PARENTHESIZED, Arity: 1,
		Group: "closed", Check: func(args []ast.Formula) error { panic("broken") }})
	assert.NoError(t, err)
	// Invalid extensions
	_, err = g.AddExtension(&Extension{ID: "invalid", Syntax: "invalid", Shape: PARENTHESIZED, Group: "closed"})
	assert.Error(t, err)
	_, err = g.AddExtension(&Extension{ID: "invalid", Syntax: "invalid", Shape: ATOMIC})
	assert.Error(t, err)
	//
	g.Freeze()
	//
	assert.True(t, ParseExpression("pos(1)", g).Success())
	checkProblem(t, ParseExpression("pos(0)", g), EXTENSION_REJECTED)
	checkProblem(t, ParseExpression("broken(0)", g), INTERNAL_ERROR)
}

func TestParser_25(t *testing.T) {
	g := NewGrammar()
	//
	_, err := g.AddExtension(&Extension{ID: "oplus", Syntax: "⊕", Shape: ASSOCIATIVE_INFIX, Group: "ops"})
	assert.NoError(t, err)
	_, err = g.AddExtension(&Extension{ID: "mod", Syntax: "mod", Shape: INFIX, Group: "ops",
		Priorities: []Pair{{"oplus", "mod"}}})
	assert.NoError(t, err)
	_, err = g.AddExtension(&Extension{ID: "List", Syntax: "List", Shape: PARENTHESIZED, Arity: 1,
		Group: "closed", Type: true, GroupPriorities: []Pair{{"ops", "closed"}}})
	assert.NoError(t, err)
	//
	g.Freeze()
	//
	res := ParseExpression("a⊕b⊕c", g)
	assert.True(t, res.Success())
	assert.Equal(t, 3, len(res.Expression().Children()))
	checkRoundTrip(t, g, "a⊕b mod c⊕d")
	checkRoundTrip(t, g, "(a⊕b) mod c")
	checkRoundTrip(t, g, "a⊕(b⊕c)")
	// Type constructors
	f := types.NewFactory()
	res = ParseType("List(S)", g)
	assert.True(t, res.Success())
	assert.True(t, res.Type().Equals(f.Parametric("List", f.Given("S"))))
}

func TestParser_26(t *testing.T) {
	var (
		g       = NewGrammar()
		unknown *operator.UnknownOperatorError
		cycle   *operator.CycleError
		oplus   = &Extension{ID: "oplus", Syntax: "⊕", Shape: ASSOCIATIVE_INFIX, Group: "ops"}
		ominus  = &Extension{ID: "ominus", Syntax: "⊖", Shape: INFIX, Group: "ops",
			Priorities: []Pair{{"oplus", "ominus"}}}
		otimes = &Extension{ID: "otimes", Syntax: "⊗", Shape: ATOMIC, Group: "closed"}
	)
	//
	_, err := g.AddExtension(oplus)
	assert.NoError(t, err)
	// Rejected extensions leave no trace
	_, err = g.AddExtension(&Extension{ID: "ominus", Syntax: "⊖", Shape: INFIX, Group: "ops",
		Priorities: []Pair{{"ominus", "missing"}}})
	assert.True(t, errors.As(err, &unknown))
	_, err = g.AddExtension(&Extension{ID: "ominus", Syntax: "⊖", Shape: INFIX, Group: "ops",
		Priorities: []Pair{{"oplus", "ominus"}, {"ominus", "oplus"}}})
	assert.True(t, errors.As(err, &cycle))
	checkUnregistered(t, g, "ominus", "⊖")
	// Either all extensions of a set are registered, or none is
	_, err = g.AddExtensions(&Extension{ID: "alpha", Syntax: "α", Shape: ATOMIC, Group: "closed"},
		&Extension{ID: "alpha1", Syntax: "α", Shape: ATOMIC, Group: "closed"})
	assert.Error(t, err)
	checkUnregistered(t, g, "alpha", "α")
	checkUnregistered(t, g, "alpha1", "α")
	// Both a corrected and an unrelated extension can still be registered
	tags, err := g.AddExtensions(ominus, otimes)
	assert.NoError(t, err)
	assert.True(t, tags[0] != tags[1])
	assert.Equal(t, []*Extension{oplus, ominus, otimes}, g.Extensions())
	//
	g.Freeze()
	//
	for _, ext := range []*Extension{oplus, ominus, otimes} {
		text := ext.Syntax
		if ext.Shape != ATOMIC {
			text = "a" + ext.Syntax + "b"
		}
		//
		res := ParseExpression(text, g)
		assert.True(t, res.Success(), "parsing %s", text)
		//
		actual, ok := g.ExtensionOf(res.Expression().Tag())
		assert.True(t, ok, "extension of %s", text)
		assert.Equal(t, ext, actual, "extension of %s", text)
	}
	// Relationships of the rejected extensions were not kept
	checkRoundTrip(t, g, "a⊕b⊖c")
	checkRoundTrip(t, g, "(a⊕b)⊖c")
}

func TestParser_27(t *testing.T) {
	g := testGrammar()
	a, b := ast.NewFreeIdentifier("a"), ast.NewFreeIdentifier("b")
	// Prefix operands of looser operators
	checkExpression(t, g, "a∗−b", ast.NewAssociativeExpression(ast.MUL, a, ast.NewUnaryExpression(ast.UNMINUS, b)))
	checkRoundTrip(t, g, "a−−b")
	checkRoundTrip(t, g, "a↦−b")
	checkRoundTrip(t, g, "a<b∧¬¬a<b")
	// Prefix operands which would be printed with parentheses
	nested := ast.NewUnaryExpression(ast.UNMINUS, ast.NewUnaryExpression(ast.UNMINUS, a))
	checkProblem(t, ParseExpression("−−a", g), INCOMPATIBLE_OPERATORS)
	checkProblem(t, ParseExpression("a∗−−b", g), INCOMPATIBLE_OPERATORS)
	checkExpression(t, g, "−(−a)", nested)
	checkPrint(t, g, nested, "−(−a)")
	// Negative literals are not prefix operators
	checkExpression(t, g, "−−1", ast.NewUnaryExpression(ast.UNMINUS, ast.NewInt(-1)))
}

// ============================================================================
// Framework
// ============================================================================

// testGrammar constructs a small grammar exercising each shape of sub-parser.
// Groups are ordered (lowest first): quantification, logic, relational, pair,
// arithmetic, function, typed, closed.
func testGrammar() *Grammar {
	g := NewGrammar()
	//
	check(g.AddNud("∀", "forall", "quantification", QuantifiedPredicate(ast.FORALL)))
	check(g.AddNud("⋃", "qunion", "quantification", QuantifiedExpression(ast.QUNION)))
	check(g.AddNud("λ", "lambda", "quantification", Lambda()))
	check(g.AddLed("∧", "land", "logic", Associative(ast.LAND)))
	check(g.AddNud("¬", "not", "logic", Prefix(ast.NOT)))
	check(g.AddLed("=", "equal", "relational", Binary(ast.EQUAL)))
	check(g.AddLed("<", "lt", "relational", Binary(ast.LT)))
	check(g.AddLed("↦", "mapsto", "pair", Binary(ast.MAPSTO)))
	check(g.AddLed("×", "cprod", "pair", Binary(ast.CPROD)))
	check(g.AddLed("+", "plus", "arithmetic", Associative(ast.PLUS)))
	check(g.AddLed("−", "minus", "arithmetic", Binary(ast.MINUS)))
	check(g.AddLed("∗", "mul", "arithmetic", Associative(ast.MUL)))
	check(g.AddOverloadedNud("−", "unminus", "arithmetic", Prefix(ast.UNMINUS)))
	check(g.AddLed(LPAR_IMAGE, "funimage", "function", Image(ast.FUNIMAGE)))
	check(g.AddLed("∼", "converse", "function", Postfix(ast.CONVERSE)))
	check(g.AddLed(TYPED_IMAGE, "typed", "typed", TypeAnnotation()))
	check(g.AddNud("{", "braces", "closed", SetForms()))
	check(g.AddOpenClose("{", "}"))
	check(g.AddNud("ℤ", "integer", "closed", Atomic(ast.INTEGER)))
	check(g.AddNud("⊤", "btrue", "closed", Atomic(ast.BTRUE)))
	check(g.AddNud("ℙ", "pow", "closed", Call(ast.POW)))
	check(g.AddNud("card", "card", "closed", Call(ast.KCARD)))
	// Compatibilities
	check(g.AddAssociative("land"))
	check(g.AddCompatibility("not", "not"))
	check(g.AddCompatibility("forall", "forall"))
	check(g.AddCompatibility("mapsto", "mapsto"))
	check(g.AddCompatibility("cprod", "cprod"))
	check(g.AddAssociative("plus"))
	check(g.AddAssociative("mul"))
	check(g.AddCompatibility("plus", "minus"))
	check(g.AddCompatibility("minus", "plus"))
	check(g.AddCompatibility("minus", "minus"))
	check(g.AddCompatibility("funimage", "funimage"))
	check(g.AddCompatibility("funimage", "converse"))
	check(g.AddCompatibility("converse", "funimage"))
	// Priorities
	check(g.AddPriority("land", "not"))
	check(g.AddPriority("plus", "mul"))
	check(g.AddPriority("minus", "mul"))
	check(g.AddPriority("mul", "unminus"))
	//
	groups := []string{"quantification", "logic", "relational", "pair", "arithmetic", "function", "typed",
		"closed"}
	//
	for i := 1; i < len(groups); i++ {
		check(g.AddGroupPriority(groups[i-1], groups[i]))
	}
	//
	g.Freeze()
	//
	return g
}

func check(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func decls(names ...string) []*ast.BoundIdentDecl {
	decls := make([]*ast.BoundIdentDecl, len(names))
	//
	for i, name := range names {
		decls[i] = ast.NewBoundIdentDecl(name)
	}
	//
	return decls
}

func checkExpression(t *testing.T, g *Grammar, text string, expected ast.Expression, opts ...Option) {
	res := ParseExpression(text, g, opts...)
	//
	checkSuccess(t, text, res)
	assert.True(t, expected.Equals(res.Expression()), "parsing \"%s\" gave %s, expected %s", text,
		res.Expression(), expected)
}

// checkPredicate parses a predicate, comparing it against an expected
// predicate (if given).
func checkPredicate(t *testing.T, g *Grammar, text string, expected ast.Predicate, opts ...Option) {
	res := ParsePredicate(text, g, opts...)
	//
	checkSuccess(t, text, res)
	//
	if expected != nil {
		assert.True(t, expected.Equals(res.Predicate()), "parsing \"%s\" gave %s, expected %s", text,
			res.Predicate(), expected)
	}
}

func checkPrint(t *testing.T, g *Grammar, f ast.Formula, expected string, opts ...Option) {
	actual := Print(f, g, opts...)
	//
	assert.Equal(t, expected, actual, "printing %s", f)
}

// checkRoundTrip parses a formula (as an expression or predicate), prints it
// and parses the result again, checking both parses agree.
func checkRoundTrip(t *testing.T, g *Grammar, text string, opts ...Option) {
	var (
		parse = ParseExpression
		res   = ParseExpression(text, g, opts...)
	)
	//
	if !res.Success() {
		parse, res = ParsePredicate, ParsePredicate(text, g, opts...)
	}
	//
	checkSuccess(t, text, res)
	printed := Print(res.Formula(), g, opts...)
	again := parse(printed, g, opts...)
	checkSuccess(t, printed, again)
	assert.True(t, res.Formula().Equals(again.Formula()), "\"%s\" printed as \"%s\"", text, printed)
}

func checkAssignment(t *testing.T, g *Grammar, text string) {
	res := ParseAssignment(text, g)
	//
	checkSuccess(t, text, res)
	assert.Equal(t, text, Print(res.Assignment(), g))
}

func checkSuccess(t *testing.T, text string, res *Result) {
	if !res.Success() {
		for _, p := range res.Problems() {
			t.Errorf("%s: %s", text, p.Message())
		}
		//
		t.FailNow()
	}
}

func checkProblem(t *testing.T, res *Result, expected ProblemKind) {
	assert.False(t, res.Success())
	assert.Equal(t, expected, res.Problems()[0].Kind(), "problems: %v", res.Problems())
}

func checkUnregistered(t *testing.T, g *Grammar, id string, image string) {
	_, ok := g.Extension(id)
	assert.False(t, ok, "extension %s", id)
	_, ok = g.TagOf(id)
	assert.False(t, ok, "tag of %s", id)
	_, ok = g.Kind(id)
	assert.False(t, ok, "operator %s", id)
	_, ok = g.symbols.Lookup(image)
	assert.False(t, ok, "image %s", image)
}
