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
package datatype

import (
	"errors"
	"testing"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/language"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/parser"
	"github.com/consensys/go-eventb/pkg/types"
	"github.com/consensys/go-eventb/pkg/util/assert"
)

const LIST = "List(T) ::= nil | cons(head: T, tail: List(T))"

// ============================================================================
// Construction
// ============================================================================

func TestDatatype_00(t *testing.T) {
	d := newList()
	//
	assert.Equal(t, "List", d.Name())
	assert.Equal(t, []string{"T"}, d.Params())
	assert.Equal(t, 2, len(d.Constructors()))
	assert.Equal(t, LIST, d.String())
	//
	cons, ok := d.Constructor("cons")
	assert.True(t, ok)
	assert.Equal(t, "cons", cons.ID())
	assert.True(t, cons.Datatype() == d)
	assert.Equal(t, 2, len(cons.Arguments()))
	assert.False(t, cons.IsBasic())
	//
	empty, ok := d.Constructor("nil")
	assert.True(t, ok)
	assert.True(t, empty.IsBasic())
	assert.Equal(t, 0, len(empty.Destructors()))
	//
	head, ok := d.Destructor("head")
	assert.True(t, ok)
	assert.True(t, head.Constructor() == cons)
	assert.Equal(t, "head", head.Argument().Destructor)
	//
	_, ok = d.Constructor("head")
	assert.False(t, ok)
}

func TestDatatype_01(t *testing.T) {
	d := NewDatatype("Colour")
	//
	assert.NoError(t, d.AddConstructor("red"))
	err := d.AddConstructor("red", Arg("", Integer()))
	//
	assert.Error(t, err)
	assert.Equal(t, "constructor red already exists", err.Error())
	// The datatype is unchanged
	assert.Equal(t, 1, len(d.Constructors()))
	assert.Equal(t, 0, len(d.Constructors()[0].Arguments()))
}

func TestDatatype_02(t *testing.T) {
	d := NewDatatype("Pair", "A", "B")
	// Identifiers must be distinct
	assert.Error(t, d.AddConstructor("Pair"))
	assert.NoError(t, d.AddConstructor("pair", Arg("fst", Param("A")), Arg("snd", Param("B"))))
	assert.Error(t, d.AddConstructor("other", Arg("fst", Param("A"))))
	assert.Error(t, d.AddConstructor("fst"))
	assert.Error(t, d.AddConstructor("twice", Arg("x", Param("A")), Arg("x", Param("A"))))
	// Type parameters must be declared
	assert.Error(t, d.AddConstructor("other", Arg("", Param("C"))))
	assert.Error(t, d.AddConstructor("other", Arg("", PowerSet(Product(Param("A"), Param("C"))))))
	//
	assert.Equal(t, 1, len(d.Constructors()))
	_, ok := d.Destructor("x")
	assert.False(t, ok)
}

func TestDatatype_03(t *testing.T) {
	var frozen *operator.FrozenError
	//
	d := newList()
	d.Freeze()
	//
	assert.True(t, errors.As(d.AddConstructor("single", Arg("", Param("T"))), &frozen))
	assert.Equal(t, 2, len(d.Constructors()))
}

// ============================================================================
// Instantiation
// ============================================================================

func TestDatatype_04(t *testing.T) {
	var (
		d       = newList()
		f       = types.NewFactory()
		listInt = d.Type(f, f.Integer())
	)
	//
	cons, _ := d.Constructor("cons")
	argTypes, ok := cons.ArgumentTypes(listInt, f)
	//
	assert.True(t, ok)
	assert.Equal(t, 2, len(argTypes))
	assert.True(t, argTypes[0].Equals(f.Integer()))
	assert.True(t, argTypes[1].Equals(listInt))
	// Types which are not lists
	_, ok = cons.ArgumentTypes(f.Integer(), f)
	assert.False(t, ok)
	_, ok = cons.ArgumentTypes(f.Parametric("Seq", f.Integer()), f)
	assert.False(t, ok)
	// Lists with the wrong number of type arguments
	assert.Panics(t, func() { cons.ArgumentTypes(f.Parametric("List", f.Integer(), f.Boolean()), f) })
	assert.Panics(t, func() { d.Type(f) })
}

func TestDatatype_05(t *testing.T) {
	var (
		d = NewDatatype("Tree", "K", "V")
		f = types.NewFactory()
	)
	//
	check(d.AddConstructor("leaf"))
	check(d.AddConstructor("node", Arg("left", Self()), Arg("entry", Product(Param("K"), Param("V"))),
		Arg("right", Self()), Arg("keys", PowerSet(Param("K"))), Arg("", Applied("Opt", Param("V"))),
		Arg("size", Integer()), Arg("red", Boolean()), Arg("owner", Given("S"))))
	//
	tree := d.Type(f, f.Integer(), f.Given("S"))
	node, _ := d.Constructor("node")
	argTypes, ok := node.ArgumentTypes(tree, f)
	//
	assert.True(t, ok)
	//
	expected := []types.Type{tree, f.Product(f.Integer(), f.Given("S")), tree, f.PowerSet(f.Integer()),
		f.Parametric("Opt", f.Given("S")), f.Integer(), f.Boolean(), f.Given("S")}
	//
	for i, e := range expected {
		assert.True(t, e.Equals(argTypes[i]), "argument %d is %s, expected %s", i, argTypes[i], e)
	}
	// Destructors
	entry, _ := d.Destructor("entry")
	entryType, ok := entry.Type(tree, f)
	assert.True(t, ok)
	assert.True(t, entryType.Equals(expected[1]))
	//
	assert.Equal(t, "Tree(K,V) ::= leaf | node(left: Tree(K,V), entry: K×V, right: Tree(K,V), keys: ℙ(K), "+
		"Opt(V), size: ℤ, red: BOOL, owner: S)", d.String())
}

// ============================================================================
// Extensions
// ============================================================================

func TestDatatype_06(t *testing.T) {
	exts := newList().Extensions()
	//
	assert.Equal(t, 5, len(exts))
	checkExtension(t, exts[0], "List", parser.PARENTHESIZED, 1, true)
	checkExtension(t, exts[1], "nil", parser.ATOMIC, 0, false)
	checkExtension(t, exts[2], "cons", parser.PARENTHESIZED, 2, false)
	checkExtension(t, exts[3], "head", parser.PARENTHESIZED, 1, false)
	checkExtension(t, exts[4], "tail", parser.PARENTHESIZED, 1, false)
	// Datatypes without parameters have an atomic type constructor
	d := NewDatatype("Colour")
	check(d.AddConstructor("red"))
	checkExtension(t, d.Extensions()[0], "Colour", parser.ATOMIC, 0, true)
}

func TestDatatype_07(t *testing.T) {
	g := newGrammar(newList())
	cons, _ := g.TagOf("cons")
	empty, _ := g.TagOf("nil")
	//
	expected := ast.NewExtendedExpression(cons, "cons", ast.NewInt(1),
		ast.NewExtendedExpression(empty, "nil"))
	res := parser.ParseExpression("cons(1,nil)", g)
	//
	checkSuccess(t, res)
	assert.True(t, expected.Equals(res.Expression()), "parsed %s", res.Expression())
	assert.Equal(t, "cons(1,nil)", parser.Print(res.Expression(), g))
	//
	for _, text := range []string{"head(l)+1", "tail(cons(x,l))=l", "cons(1,nil)∈List(ℤ)",
		"∀l·l=nil∨(∃x,r·l=cons(x,r))"} {
		res := parser.ParsePredicate(text, g)
		if !res.Success() {
			res = parser.ParseExpression(text, g)
		}
		//
		checkSuccess(t, res)
		assert.Equal(t, text, parser.Print(res.Formula(), g))
	}
	//
	checkProblem(t, parser.ParseExpression("cons(1)", g), parser.ARITY_MISMATCH)
	checkProblem(t, parser.ParseExpression("cons(1,nil", g), parser.MISSING_TOKEN)
}

func TestDatatype_08(t *testing.T) {
	var (
		g = newGrammar(newList())
		f = types.NewFactory()
	)
	// Type expressions
	res := parser.ParseType("List(ℙ(ℤ))", g)
	checkSuccess(t, res)
	assert.True(t, res.Type().Equals(f.Parametric("List", f.PowerSet(f.Integer()))), "type %s", res.Type())
	// Type annotations
	res = parser.ParsePredicate("l⦂List(BOOL)=nil", g, parser.WithTypes())
	checkSuccess(t, res)
	assert.Equal(t, "l⦂List(BOOL)=nil", parser.Print(res.Formula(), g, parser.WithTypes()))
	// Constructors do not denote types
	checkProblem(t, parser.ParseType("cons(ℤ,nil)", g), parser.NOT_A_TYPE)
}

func TestDatatype_09(t *testing.T) {
	var override *operator.OverrideError
	// Datatypes need a basic constructor
	d := NewDatatype("Stream", "T")
	check(d.AddConstructor("next", Arg("value", Param("T")), Arg("rest", Self())))
	assert.Error(t, d.Register(parser.NewGrammar()))
	// Registering twice with the same grammar has no effect
	list := newList()
	g := parser.NewGrammar()
	check(language.Declare(g))
	assert.NoError(t, list.Register(g))
	assert.NoError(t, list.Register(g))
	// Clashes with existing operators are reported
	clash := NewDatatype("Opt", "T")
	check(clash.AddConstructor("nil"))
	assert.True(t, errors.As(clash.Register(g), &override))
	// A rejected datatype contributes nothing
	_, ok := g.TagOf("Opt")
	assert.False(t, ok)
	_, ok = g.Kind("Opt")
	assert.False(t, ok)
	// Nor does it prevent other datatypes from being registered
	colour := NewDatatype("Colour")
	check(colour.AddConstructor("red"))
	check(colour.AddConstructor("green"))
	assert.NoError(t, colour.Register(g))
	//
	g.Freeze()
	//
	res := parser.ParseExpression("red", g)
	assert.True(t, res.Success())
	ext, ok := g.ExtensionOf(res.Expression().Tag())
	assert.True(t, ok)
	assert.Equal(t, "red", ext.ID)
	// Opt is just an identifier
	res = parser.ParsePredicate("x=Opt", g)
	assert.True(t, res.Success())
	assert.Equal(t, []string{"x", "Opt"}, ast.FreeIdentifiers(res.Formula()))
}

// ============================================================================
// Declarations
// ============================================================================

func TestDatatype_10(t *testing.T) {
	checkDeclaration(t, LIST)
	checkDeclaration(t, "Colour ::= red | green | blue")
	checkDeclaration(t, "Tree(K,V) ::= leaf | node(left: Tree(K,V), entry: K×V, right: Tree(K,V))")
	checkDeclaration(t, "Graph(N) ::= graph(nodes: ℙ(N), edges: ℙ(N×N), weights: ℙ(N×N×ℤ))")
	checkDeclaration(t, "Wrapper ::= wrap(Seq(ℤ), BOOL, S×(T×U))")
	// Alternative spellings
	d, errs := ParseDeclaration("List ( T ) ::=\n  nil\n| cons(head:T, tail:List(T))")
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, LIST, d.String())
	//
	d, errs = ParseDeclaration("Set ::= set(POW(INT ** INT))")
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, "Set ::= set(ℙ(ℤ×ℤ))", d.String())
}

func TestDatatype_11(t *testing.T) {
	checkDeclarationError(t, "", "expected identifier")
	checkDeclarationError(t, "List(T) nil", "expected \"::=\"")
	checkDeclarationError(t, "List(T) ::= nil |", "expected identifier")
	checkDeclarationError(t, "List(T) ::= nil # cons", "unknown text encountered")
	checkDeclarationError(t, "List(T) ::= nil cons", "unknown token")
	checkDeclarationError(t, "List(T,T) ::= nil", "duplicate type parameter")
	checkDeclarationError(t, "List(T) ::= nil | nil", "constructor nil already exists")
	checkDeclarationError(t, "List(T) ::= nil | cons(head: T, head: T)", "destructor head already exists")
	checkDeclarationError(t, "List(T) ::= nil | cons(List(ℤ))",
		"datatype must be applied to its own type parameters")
	checkDeclarationError(t, "List(T) ::= nil | cons(T(ℤ))", "unexpected type arguments")
	checkDeclarationError(t, "List(T) ::= nil | cons(ℙ(T,T))", "expected one type argument")
	checkDeclarationError(t, "List(T) ::= nil | cons(T", "expected ')'")
}

// ============================================================================
// Framework
// ============================================================================

func newList() *Datatype {
	d := NewDatatype("List", "T")
	//
	check(d.AddConstructor("nil"))
	check(d.AddConstructor("cons", Arg("head", Param("T")), Arg("tail", Self())))
	//
	return d
}

func newGrammar(datatypes ...*Datatype) *parser.Grammar {
	var exts []*parser.Extension
	//
	for _, d := range datatypes {
		d.Freeze()
		exts = append(exts, d.Extensions()...)
	}
	//
	g, err := language.New(exts...)
	check(err)
	//
	return g
}

func check(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func checkExtension(t *testing.T, ext *parser.Extension, id string, shape parser.Shape, arity uint, isType bool) {
	assert.Equal(t, id, ext.ID)
	assert.Equal(t, id, ext.Syntax)
	assert.Equal(t, shape, ext.Shape)
	assert.Equal(t, arity, ext.Arity)
	assert.Equal(t, isType, ext.Type)
	assert.Equal(t, language.CLOSED, ext.Group)
}

func checkDeclaration(t *testing.T, text string) {
	d, errs := ParseDeclaration(text)
	//
	for _, err := range errs {
		t.Errorf("%s: %s", text, err.Message())
	}
	//
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, text, d.String())
}

func checkDeclarationError(t *testing.T, text string, expected string) {
	d, errs := ParseDeclaration(text)
	//
	assert.True(t, d == nil)
	assert.Equal(t, 1, len(errs), "parsing \"%s\"", text)
	assert.Equal(t, expected, errs[0].Message())
}

func checkSuccess(t *testing.T, res *parser.Result) {
	if !res.Success() {
		for _, p := range res.Problems() {
			t.Errorf("%s", p.Message())
		}
		//
		t.FailNow()
	}
}

func checkProblem(t *testing.T, res *parser.Result, expected parser.ProblemKind) {
	assert.False(t, res.Success())
	assert.Equal(t, expected, res.Problems()[0].Kind(), "problems: %v", res.Problems())
}
