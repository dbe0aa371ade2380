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
	"strings"
)

// Formula is the root of the formula tree.  Formulas are immutable once
// constructed.
type Formula interface {
	fmt.Stringer
	// Tag identifies the shape of this formula.
	Tag() Tag
	// Children returns the immediate sub-formulas of this formula, in textual
	// order.  Bound identifier declarations are included.
	Children() []Formula
	// Equals checks structural equality, up to the renaming of bound
	// identifiers.
	Equals(Formula) bool
}

// Expression is a formula denoting a value.
type Expression interface {
	Formula
	expression()
}

// Predicate is a formula denoting a truth value.
type Predicate interface {
	Formula
	predicate()
}

// Assignment is a formula denoting a state change.
type Assignment interface {
	Formula
	assignment()
}

// FreeIdentifiers returns the names of the free identifiers occurring in a
// formula, in order of first occurrence.
func FreeIdentifiers(f Formula) []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	//
	Walk(f, func(f Formula) {
		if id, ok := f.(*FreeIdentifier); ok && !seen[id.Name] {
			seen[id.Name] = true
			names = append(names, id.Name)
		}
	})
	//
	return names
}

// Walk visits every sub-formula of a formula (including itself) in pre-order.
func Walk(f Formula, visitor func(Formula)) {
	visitor(f)
	//
	for _, c := range f.Children() {
		Walk(c, visitor)
	}
}

// Size returns the number of nodes in a formula.
func Size(f Formula) uint {
	var n uint
	//
	Walk(f, func(Formula) { n++ })
	//
	return n
}

func equals(l Formula, r Formula) bool {
	if l == nil || r == nil {
		return l == r
	} else if l.Tag() != r.Tag() || !equalLeaves(l, r) {
		return false
	}
	//
	lc, rc := l.Children(), r.Children()
	//
	if len(lc) != len(rc) {
		return false
	}
	//
	for i := range lc {
		if !lc[i].Equals(rc[i]) {
			return false
		}
	}
	//
	return true
}

func equalLeaves(l Formula, r Formula) bool {
	switch l := l.(type) {
	case *FreeIdentifier:
		r, ok := r.(*FreeIdentifier)
		return ok && l.Name == r.Name && equalTypes(l.Type, r.Type)
	case *BoundIdentDecl:
		r, ok := r.(*BoundIdentDecl)
		return ok && equalTypes(l.Type, r.Type)
	case *BoundIdentifier:
		r, ok := r.(*BoundIdentifier)
		return ok && l.Index == r.Index
	case *IntegerLiteral:
		r, ok := r.(*IntegerLiteral)
		return ok && l.Value.Cmp(r.Value) == 0
	case *AtomicExpression:
		r, ok := r.(*AtomicExpression)
		return ok && equalTypes(l.Type, r.Type)
	case *PredicateVariable:
		r, ok := r.(*PredicateVariable)
		return ok && l.Name == r.Name
	}
	// Remaining shapes are determined by their tag and children.
	return true
}

func stringOf(f Formula) string {
	var (
		builder  strings.Builder
		children = f.Children()
	)
	//
	builder.WriteString(f.Tag().String())
	//
	if len(children) > 0 {
		builder.WriteString("(")
		//
		for i, c := range children {
			if i != 0 {
				builder.WriteString(", ")
			}
			//
			builder.WriteString(c.String())
		}
		//
		builder.WriteString(")")
	}
	//
	return builder.String()
}

func expressionsOf(exprs []Expression) []Formula {
	formulas := make([]Formula, len(exprs))
	//
	for i, e := range exprs {
		formulas[i] = e
	}
	//
	return formulas
}
