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
package ast

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-eventb/pkg/types"
)

// FreeIdentifier is an identifier which is not bound within the formula.  The
// type is optional and only present when given explicitly (e.g. "x⦂ℤ").
type FreeIdentifier struct {
	Name string
	Type types.Type
}

// BoundIdentDecl declares a bound identifier (e.g. the "x" in "∀x·P").  The
// name is only a hint for printing.
type BoundIdentDecl struct {
	Name string
	Type types.Type
}

// BoundIdentifier refers to a bound identifier by its de Bruijn index.  Index 0
// refers to the innermost declaration in scope, with the last identifier
// declared by a quantifier being innermost.
type BoundIdentifier struct {
	Index uint
}

// IntegerLiteral is an integer constant.
type IntegerLiteral struct {
	Value *big.Int
}

// AtomicExpression is a nullary expression operator, such as ℤ or ∅.  The type
// is optional and only present when given explicitly (e.g. "∅⦂ℙ(ℤ)").
type AtomicExpression struct {
	tag  Tag
	Type types.Type
}

// UnaryExpression applies a unary operator to an expression.
type UnaryExpression struct {
	tag   Tag
	Child Expression
}

// BinaryExpression applies a binary operator to two expressions.
type BinaryExpression struct {
	tag   Tag
	Left  Expression
	Right Expression
}

// AssociativeExpression applies an associative operator to two or more
// expressions.
type AssociativeExpression struct {
	tag      Tag
	Operands []Expression
}

// BoolExpression converts a predicate into a boolean value.
type BoolExpression struct {
	Predicate Predicate
}

// SetExtension enumerates the members of a set.
type SetExtension struct {
	Members []Expression
}

// QuantifiedForm records which of the surface forms a quantified expression
// was written with.  This matters only for printing.
type QuantifiedForm uint8

const (
	// EXPLICIT is the form "Q x·P ∣ E".
	EXPLICIT QuantifiedForm = iota
	// IMPLICIT is the form "Q E ∣ P", binding every free identifier of E.
	IMPLICIT
	// LAMBDA is the form "λ pattern·P ∣ E".
	LAMBDA
)

// QuantifiedExpression binds identifiers within a predicate and an expression.
type QuantifiedExpression struct {
	tag        Tag
	Decls      []*BoundIdentDecl
	Predicate  Predicate
	Expression Expression
	Form       QuantifiedForm
}

// ExtendedExpression applies an expression operator contributed by an
// extension.  Children are expressions or predicates, as determined by the
// extension.
type ExtendedExpression struct {
	tag    Tag
	Symbol string
	Args   []Formula
}

// NewFreeIdentifier constructs a free identifier.
func NewFreeIdentifier(name string) *FreeIdentifier {
	return &FreeIdentifier{name, nil}
}

// NewBoundIdentDecl constructs a bound identifier declaration.
func NewBoundIdentDecl(name string) *BoundIdentDecl {
	return &BoundIdentDecl{name, nil}
}

// NewBoundIdentifier constructs a reference to a bound identifier.
func NewBoundIdentifier(index uint) *BoundIdentifier {
	return &BoundIdentifier{index}
}

// NewIntegerLiteral constructs an integer literal.
func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{value}
}

// NewInt constructs an integer literal from a machine integer.
func NewInt(value int64) *IntegerLiteral {
	return &IntegerLiteral{big.NewInt(value)}
}

// NewAtomicExpression constructs an atomic expression.
func NewAtomicExpression(tag Tag) *AtomicExpression {
	checkTag(atomicExpressionTags, tag, "atomic expression")
	return &AtomicExpression{tag, nil}
}

// NewUnaryExpression constructs a unary expression.
func NewUnaryExpression(tag Tag, child Expression) *UnaryExpression {
	checkTag(unaryExpressionTags, tag, "unary expression")
	return &UnaryExpression{tag, child}
}

// NewBinaryExpression constructs a binary expression.
func NewBinaryExpression(tag Tag, left Expression, right Expression) *BinaryExpression {
	checkTag(binaryExpressionTags, tag, "binary expression")
	return &BinaryExpression{tag, left, right}
}

// NewAssociativeExpression constructs an associative expression with at least
// two children.
func NewAssociativeExpression(tag Tag, children ...Expression) *AssociativeExpression {
	checkTag(associativeExpressionTags, tag, "associative expression")
	//
	if len(children) < 2 {
		panic(fmt.Sprintf("%s requires at least two children", tag))
	}
	//
	return &AssociativeExpression{tag, children}
}

// NewBoolExpression constructs bool(P).
func NewBoolExpression(p Predicate) *BoolExpression {
	return &BoolExpression{p}
}

// NewSetExtension constructs a set extension.
func NewSetExtension(members ...Expression) *SetExtension {
	return &SetExtension{members}
}

// NewQuantifiedExpression constructs a quantified expression.
func NewQuantifiedExpression(tag Tag, decls []*BoundIdentDecl, pred Predicate, expr Expression,
	form QuantifiedForm) *QuantifiedExpression {
	checkTag(quantifiedExpressionTags, tag, "quantified expression")
	//
	if len(decls) == 0 {
		panic("quantified expression requires at least one declaration")
	} else if form == LAMBDA && tag != CSET {
		panic("lambda form is only valid for set comprehension")
	}
	//
	return &QuantifiedExpression{tag, decls, pred, expr, form}
}

// NewExtendedExpression constructs an extended expression.
func NewExtendedExpression(tag Tag, symbol string, children ...Formula) *ExtendedExpression {
	if !tag.IsExtension() {
		panic(fmt.Sprintf("invalid tag %s for extended expression", tag))
	}
	//
	return &ExtendedExpression{tag, symbol, children}
}

// Tag implementation for the Formula interface.
func (e *FreeIdentifier) Tag() Tag { return FREE_IDENT }

// Tag implementation for the Formula interface.
func (e *BoundIdentDecl) Tag() Tag { return BOUND_IDENT_DECL }

// Tag implementation for the Formula interface.
func (e *BoundIdentifier) Tag() Tag { return BOUND_IDENT }

// Tag implementation for the Formula interface.
func (e *IntegerLiteral) Tag() Tag { return INTLIT }

// Tag implementation for the Formula interface.
func (e *AtomicExpression) Tag() Tag { return e.tag }

// Tag implementation for the Formula interface.
func (e *UnaryExpression) Tag() Tag { return e.tag }

// Tag implementation for the Formula interface.
func (e *BinaryExpression) Tag() Tag { return e.tag }

// Tag implementation for the Formula interface.
func (e *AssociativeExpression) Tag() Tag { return e.tag }

// Tag implementation for the Formula interface.
func (e *BoolExpression) Tag() Tag { return KBOOL }

// Tag implementation for the Formula interface.
func (e *SetExtension) Tag() Tag { return SETEXT }

// Tag implementation for the Formula interface.
func (e *QuantifiedExpression) Tag() Tag { return e.tag }

// Tag implementation for the Formula interface.
func (e *ExtendedExpression) Tag() Tag { return e.tag }

// Children implementation for the Formula interface.
func (e *FreeIdentifier) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (e *BoundIdentDecl) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (e *BoundIdentifier) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (e *IntegerLiteral) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (e *AtomicExpression) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (e *UnaryExpression) Children() []Formula { return []Formula{e.Child} }

// Children implementation for the Formula interface.
func (e *BinaryExpression) Children() []Formula { return []Formula{e.Left, e.Right} }

// Children implementation for the Formula interface.
func (e *AssociativeExpression) Children() []Formula { return expressionsOf(e.Operands) }

// Children implementation for the Formula interface.
func (e *BoolExpression) Children() []Formula { return []Formula{e.Predicate} }

// Children implementation for the Formula interface.
func (e *SetExtension) Children() []Formula { return expressionsOf(e.Members) }

// Children implementation for the Formula interface.
func (e *QuantifiedExpression) Children() []Formula {
	children := declsOf(e.Decls)
	return append(children, e.Predicate, e.Expression)
}

// Children implementation for the Formula interface.
func (e *ExtendedExpression) Children() []Formula { return e.Args }

// Equals implementation for the Formula interface.
func (e *FreeIdentifier) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *BoundIdentDecl) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *BoundIdentifier) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *IntegerLiteral) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *AtomicExpression) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *UnaryExpression) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *BinaryExpression) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *AssociativeExpression) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *BoolExpression) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *SetExtension) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *QuantifiedExpression) Equals(o Formula) bool { return equals(e, o) }

// Equals implementation for the Formula interface.
func (e *ExtendedExpression) Equals(o Formula) bool { return equals(e, o) }

func (e *FreeIdentifier) String() string {
	if e.Type != nil {
		return fmt.Sprintf("%s⦂%s", e.Name, e.Type)
	}
	//
	return e.Name
}

func (e *BoundIdentDecl) String() string  { return fmt.Sprintf("%s:", e.Name) }
func (e *BoundIdentifier) String() string { return fmt.Sprintf("[%d]", e.Index) }
func (e *IntegerLiteral) String() string  { return e.Value.String() }

func (e *AtomicExpression) String() string      { return stringOf(e) }
func (e *UnaryExpression) String() string       { return stringOf(e) }
func (e *BinaryExpression) String() string      { return stringOf(e) }
func (e *AssociativeExpression) String() string { return stringOf(e) }
func (e *BoolExpression) String() string        { return stringOf(e) }
func (e *SetExtension) String() string          { return stringOf(e) }
func (e *QuantifiedExpression) String() string  { return stringOf(e) }
func (e *ExtendedExpression) String() string    { return extendedString(e.Symbol, e.Args) }

func (e *FreeIdentifier) expression()        {}
func (e *BoundIdentifier) expression()       {}
func (e *IntegerLiteral) expression()        {}
func (e *AtomicExpression) expression()      {}
func (e *UnaryExpression) expression()       {}
func (e *BinaryExpression) expression()      {}
func (e *AssociativeExpression) expression() {}
func (e *BoolExpression) expression()        {}
func (e *SetExtension) expression()          {}
func (e *QuantifiedExpression) expression()  {}
func (e *ExtendedExpression) expression()    {}

func declsOf(decls []*BoundIdentDecl) []Formula {
	formulas := make([]Formula, len(decls), len(decls)+2)
	//
	for i, d := range decls {
		formulas[i] = d
	}
	//
	return formulas
}

func equalTypes(l types.Type, r types.Type) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	//
	return l.Equals(r)
}

func extendedString(symbol string, children []Formula) string {
	if len(children) == 0 {
		return symbol
	}
	//
	args := make([]string, len(children))
	//
	for i, c := range children {
		args[i] = c.String()
	}
	//
	return fmt.Sprintf("%s(%s)", symbol, strings.Join(args, ", "))
}
