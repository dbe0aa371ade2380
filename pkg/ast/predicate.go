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

import "fmt"

// LiteralPredicate is ⊤ or ⊥.
type LiteralPredicate struct {
	tag Tag
}

// UnaryPredicate is the negation of a predicate.
type UnaryPredicate struct {
	Child Predicate
}

// BinaryPredicate is an implication or an equivalence.
type BinaryPredicate struct {
	tag   Tag
	Left  Predicate
	Right Predicate
}

// AssociativePredicate is a conjunction or disjunction of two or more
// predicates.
type AssociativePredicate struct {
	tag      Tag
	Operands []Predicate
}

// RelationalPredicate relates two expressions (e.g. "x∈S").
type RelationalPredicate struct {
	tag   Tag
	Left  Expression
	Right Expression
}

// QuantifiedPredicate binds identifiers within a predicate.
type QuantifiedPredicate struct {
	tag       Tag
	Decls     []*BoundIdentDecl
	Predicate Predicate
}

// SimplePredicate is finite(E).
type SimplePredicate struct {
	Expression Expression
}

// MultiplePredicate is partition(S, ...).
type MultiplePredicate struct {
	Operands []Expression
}

// PredicateVariable is a placeholder for an arbitrary predicate (e.g. "$P"),
// as used in rule schemas.
type PredicateVariable struct {
	Name string
}

// ExtendedPredicate applies a predicate operator contributed by an extension.
type ExtendedPredicate struct {
	tag    Tag
	Symbol string
	Args   []Formula
}

// NewLiteralPredicate constructs ⊤ or ⊥.
func NewLiteralPredicate(tag Tag) *LiteralPredicate {
	checkTag(literalPredicateTags, tag, "literal predicate")
	return &LiteralPredicate{tag}
}

// NewNot constructs ¬P.
func NewNot(child Predicate) *UnaryPredicate {
	return &UnaryPredicate{child}
}

// NewBinaryPredicate constructs an implication or an equivalence.
func NewBinaryPredicate(tag Tag, left Predicate, right Predicate) *BinaryPredicate {
	checkTag(binaryPredicateTags, tag, "binary predicate")
	return &BinaryPredicate{tag, left, right}
}

// NewAssociativePredicate constructs a conjunction or disjunction.
func NewAssociativePredicate(tag Tag, children ...Predicate) *AssociativePredicate {
	checkTag(associativePredicateTags, tag, "associative predicate")
	//
	if len(children) < 2 {
		panic(fmt.Sprintf("%s requires at least two children", tag))
	}
	//
	return &AssociativePredicate{tag, children}
}

// NewRelationalPredicate constructs a relational predicate.
func NewRelationalPredicate(tag Tag, left Expression, right Expression) *RelationalPredicate {
	checkTag(relationalPredicateTags, tag, "relational predicate")
	return &RelationalPredicate{tag, left, right}
}

// NewQuantifiedPredicate constructs a quantified predicate.
func NewQuantifiedPredicate(tag Tag, decls []*BoundIdentDecl, pred Predicate) *QuantifiedPredicate {
	checkTag(quantifiedPredicateTags, tag, "quantified predicate")
	//
	if len(decls) == 0 {
		panic("quantified predicate requires at least one declaration")
	}
	//
	return &QuantifiedPredicate{tag, decls, pred}
}

// NewFinite constructs finite(E).
func NewFinite(expr Expression) *SimplePredicate {
	return &SimplePredicate{expr}
}

// NewPartition constructs partition(S, ...).
func NewPartition(children ...Expression) *MultiplePredicate {
	if len(children) == 0 {
		panic("partition requires at least one child")
	}
	//
	return &MultiplePredicate{children}
}

// NewPredicateVariable constructs a predicate variable.
func NewPredicateVariable(name string) *PredicateVariable {
	return &PredicateVariable{name}
}

// NewExtendedPredicate constructs an extended predicate.
func NewExtendedPredicate(tag Tag, symbol string, children ...Formula) *ExtendedPredicate {
	if !tag.IsExtension() {
		panic(fmt.Sprintf("invalid tag %s for extended predicate", tag))
	}
	//
	return &ExtendedPredicate{tag, symbol, children}
}

// Tag implementation for the Formula interface.
func (p *LiteralPredicate) Tag() Tag { return p.tag }

// Tag implementation for the Formula interface.
func (p *UnaryPredicate) Tag() Tag { return NOT }

// Tag implementation for the Formula interface.
func (p *BinaryPredicate) Tag() Tag { return p.tag }

// Tag implementation for the Formula interface.
func (p *AssociativePredicate) Tag() Tag { return p.tag }

// Tag implementation for the Formula interface.
func (p *RelationalPredicate) Tag() Tag { return p.tag }

// Tag implementation for the Formula interface.
func (p *QuantifiedPredicate) Tag() Tag { return p.tag }

// Tag implementation for the Formula interface.
func (p *SimplePredicate) Tag() Tag { return KFINITE }

// Tag implementation for the Formula interface.
func (p *MultiplePredicate) Tag() Tag { return KPARTITION }

// Tag implementation for the Formula interface.
func (p *PredicateVariable) Tag() Tag { return PREDICATE_VARIABLE }

// Tag implementation for the Formula interface.
func (p *ExtendedPredicate) Tag() Tag { return p.tag }

// Children implementation for the Formula interface.
func (p *LiteralPredicate) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (p *UnaryPredicate) Children() []Formula { return []Formula{p.Child} }

// Children implementation for the Formula interface.
func (p *BinaryPredicate) Children() []Formula { return []Formula{p.Left, p.Right} }

// Children implementation for the Formula interface.
func (p *AssociativePredicate) Children() []Formula {
	children := make([]Formula, len(p.Operands))
	//
	for i, c := range p.Operands {
		children[i] = c
	}
	//
	return children
}

// Children implementation for the Formula interface.
func (p *RelationalPredicate) Children() []Formula { return []Formula{p.Left, p.Right} }

// Children implementation for the Formula interface.
func (p *QuantifiedPredicate) Children() []Formula {
	return append(declsOf(p.Decls), p.Predicate)
}

// Children implementation for the Formula interface.
func (p *SimplePredicate) Children() []Formula { return []Formula{p.Expression} }

// Children implementation for the Formula interface.
func (p *MultiplePredicate) Children() []Formula { return expressionsOf(p.Operands) }

// Children implementation for the Formula interface.
func (p *PredicateVariable) Children() []Formula { return nil }

// Children implementation for the Formula interface.
func (p *ExtendedPredicate) Children() []Formula { return p.Args }

// Equals implementation for the Formula interface.
func (p *LiteralPredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *UnaryPredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *BinaryPredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *AssociativePredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *RelationalPredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *QuantifiedPredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *SimplePredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *MultiplePredicate) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *PredicateVariable) Equals(o Formula) bool { return equals(p, o) }

// Equals implementation for the Formula interface.
func (p *ExtendedPredicate) Equals(o Formula) bool { return equals(p, o) }

func (p *LiteralPredicate) String() string     { return stringOf(p) }
func (p *UnaryPredicate) String() string       { return stringOf(p) }
func (p *BinaryPredicate) String() string      { return stringOf(p) }
func (p *AssociativePredicate) String() string { return stringOf(p) }
func (p *RelationalPredicate) String() string  { return stringOf(p) }
func (p *QuantifiedPredicate) String() string  { return stringOf(p) }
func (p *SimplePredicate) String() string      { return stringOf(p) }
func (p *MultiplePredicate) String() string    { return stringOf(p) }
func (p *PredicateVariable) String() string    { return p.Name }
func (p *ExtendedPredicate) String() string    { return extendedString(p.Symbol, p.Args) }

func (p *LiteralPredicate) predicate()     {}
func (p *UnaryPredicate) predicate()       {}
func (p *BinaryPredicate) predicate()      {}
func (p *AssociativePredicate) predicate() {}
func (p *RelationalPredicate) predicate()  {}
func (p *QuantifiedPredicate) predicate()  {}
func (p *SimplePredicate) predicate()      {}
func (p *MultiplePredicate) predicate()    {}
func (p *PredicateVariable) predicate()    {}
func (p *ExtendedPredicate) predicate()    {}
