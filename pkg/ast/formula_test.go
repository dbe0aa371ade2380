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
	"testing"

	"github.com/consensys/go-eventb/pkg/types"
	"github.com/consensys/go-eventb/pkg/util/assert"
)

func TestFormula_00(t *testing.T) {
	// 1+2*3
	e1 := NewAssociativeExpression(PLUS, NewInt(1), NewAssociativeExpression(MUL, NewInt(2), NewInt(3)))
	e2 := NewAssociativeExpression(PLUS, NewInt(1), NewAssociativeExpression(MUL, NewInt(2), NewInt(3)))
	e3 := NewAssociativeExpression(MUL, NewAssociativeExpression(PLUS, NewInt(1), NewInt(2)), NewInt(3))
	//
	assert.True(t, e1.Equals(e2))
	assert.False(t, e1.Equals(e3))
	assert.Equal(t, "PLUS(1, MUL(2, 3))", e1.String())
}

func TestFormula_01(t *testing.T) {
	// ∀x·x=0 and ∀y·y=0 are equal up to renaming.
	p1 := NewQuantifiedPredicate(FORALL, []*BoundIdentDecl{NewBoundIdentDecl("x")},
		NewRelationalPredicate(EQUAL, NewBoundIdentifier(0), NewInt(0)))
	p2 := NewQuantifiedPredicate(FORALL, []*BoundIdentDecl{NewBoundIdentDecl("y")},
		NewRelationalPredicate(EQUAL, NewBoundIdentifier(0), NewInt(0)))
	p3 := NewQuantifiedPredicate(EXISTS, []*BoundIdentDecl{NewBoundIdentDecl("x")},
		NewRelationalPredicate(EQUAL, NewBoundIdentifier(0), NewInt(0)))
	//
	assert.True(t, p1.Equals(p2))
	assert.False(t, p1.Equals(p3))
}

func TestFormula_02(t *testing.T) {
	x := NewFreeIdentifier("x")
	y := NewFreeIdentifier("y")
	p := NewAssociativePredicate(LAND,
		NewRelationalPredicate(IN, x, NewFreeIdentifier("S")),
		NewRelationalPredicate(EQUAL, y, NewUnaryExpression(UNMINUS, x)))
	//
	assert.Equal(t, []string{"x", "S", "y"}, FreeIdentifiers(p))
	assert.Equal(t, uint(8), Size(p))
}

func TestFormula_03(t *testing.T) {
	f := types.NewFactory()
	x1 := &FreeIdentifier{"x", f.Integer()}
	x2 := &FreeIdentifier{"x", f.Integer()}
	x3 := NewFreeIdentifier("x")
	//
	assert.True(t, x1.Equals(x2))
	assert.False(t, x1.Equals(x3))
	assert.Equal(t, "x⦂ℤ", x1.String())
}

func TestFormula_04(t *testing.T) {
	assert.Panics(t, func() { NewBinaryExpression(PLUS, NewInt(1), NewInt(2)) })
	assert.Panics(t, func() { NewAssociativeExpression(PLUS, NewInt(1)) })
	assert.Panics(t, func() { NewExtendedExpression(PLUS, "plus") })
	assert.Panics(t, func() { NewBecomesEqualTo([]*FreeIdentifier{NewFreeIdentifier("x")}, nil) })
}

func TestFormula_05(t *testing.T) {
	tag := FIRST_EXTENSION_TAG + 3
	e1 := NewExtendedExpression(tag, "cons", NewInt(1), NewFreeIdentifier("l"))
	e2 := NewExtendedExpression(tag, "cons", NewInt(1), NewFreeIdentifier("l"))
	e3 := NewExtendedExpression(tag+1, "cons", NewInt(1), NewFreeIdentifier("l"))
	//
	assert.True(t, e1.Equals(e2))
	assert.False(t, e1.Equals(e3))
	assert.Equal(t, "cons(1, l)", e1.String())
	assert.Equal(t, "EXT3", tag.String())
}

func TestFormula_06(t *testing.T) {
	x := NewFreeIdentifier("x")
	a1 := NewBecomesEqualTo([]*FreeIdentifier{x}, []Expression{NewInt(1)})
	a2 := NewBecomesMemberOf(x, NewAtomicExpression(INTEGER))
	//
	assert.False(t, a1.Equals(a2))
	assert.True(t, a2.Equals(NewBecomesMemberOf(NewFreeIdentifier("x"), NewAtomicExpression(INTEGER))))
	assert.Equal(t, "BECOMES_MEMBER_OF(x, INTEGER)", a2.String())
}
