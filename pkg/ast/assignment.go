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

// BecomesEqualTo assigns values to one or more identifiers ("x,y ≔ E,F").
type BecomesEqualTo struct {
	Idents []*FreeIdentifier
	Values []Expression
}

// BecomesMemberOf assigns an arbitrary member of a set to an identifier
// ("x :∈ S").
type BecomesMemberOf struct {
	Ident *FreeIdentifier
	Set   Expression
}

// BecomesSuchThat assigns values to identifiers such that a condition holds
// ("x :∣ x' > x").  Within the condition, the primed identifiers are bound,
// with the primed form of the last identifier being innermost.
type BecomesSuchThat struct {
	Idents    []*FreeIdentifier
	Primed    []*BoundIdentDecl
	Condition Predicate
}

// NewBecomesEqualTo constructs a deterministic assignment.
func NewBecomesEqualTo(idents []*FreeIdentifier, values []Expression) *BecomesEqualTo {
	if len(idents) == 0 || len(idents) != len(values) {
		panic(fmt.Sprintf("invalid assignment of %d values to %d identifiers", len(values), len(idents)))
	}
	//
	return &BecomesEqualTo{idents, values}
}

// NewBecomesMemberOf constructs a set-membership assignment.
func NewBecomesMemberOf(ident *FreeIdentifier, set Expression) *BecomesMemberOf {
	return &BecomesMemberOf{ident, set}
}

// NewBecomesSuchThat constructs a predicate assignment.
func NewBecomesSuchThat(idents []*FreeIdentifier, primed []*BoundIdentDecl, condition Predicate) *BecomesSuchThat {
	if len(idents) == 0 || len(idents) != len(primed) {
		panic(fmt.Sprintf("invalid assignment of %d primed identifiers to %d identifiers", len(primed), len(idents)))
	}
	//
	return &BecomesSuchThat{idents, primed, condition}
}

// Tag implementation for the Formula interface.
func (a *BecomesEqualTo) Tag() Tag { return BECOMES_EQUAL_TO }

// Tag implementation for the Formula interface.
func (a *BecomesMemberOf) Tag() Tag { return BECOMES_MEMBER_OF }

// Tag implementation for the Formula interface.
func (a *BecomesSuchThat) Tag() Tag { return BECOMES_SUCH_THAT }

// Children implementation for the Formula interface.
func (a *BecomesEqualTo) Children() []Formula {
	children := identsOf(a.Idents)
	return append(children, expressionsOf(a.Values)...)
}

// Children implementation for the Formula interface.
func (a *BecomesMemberOf) Children() []Formula {
	return []Formula{a.Ident, a.Set}
}

// Children implementation for the Formula interface.
func (a *BecomesSuchThat) Children() []Formula {
	children := identsOf(a.Idents)
	children = append(children, declsOf(a.Primed)...)
	//
	return append(children, a.Condition)
}

// Equals implementation for the Formula interface.
func (a *BecomesEqualTo) Equals(o Formula) bool { return equals(a, o) }

// Equals implementation for the Formula interface.
func (a *BecomesMemberOf) Equals(o Formula) bool { return equals(a, o) }

// Equals implementation for the Formula interface.
func (a *BecomesSuchThat) Equals(o Formula) bool { return equals(a, o) }

func (a *BecomesEqualTo) String() string  { return stringOf(a) }
func (a *BecomesMemberOf) String() string { return stringOf(a) }
func (a *BecomesSuchThat) String() string { return stringOf(a) }

func (a *BecomesEqualTo) assignment()  {}
func (a *BecomesMemberOf) assignment() {}
func (a *BecomesSuchThat) assignment() {}

func identsOf(idents []*FreeIdentifier) []Formula {
	formulas := make([]Formula, len(idents))
	//
	for i, id := range idents {
		formulas[i] = id
	}
	//
	return formulas
}
