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
package types

import (
	"fmt"
	"strings"
)

// Type represents the type of an expression.
type Type interface {
	fmt.Stringer
	// Equals checks whether this type is identical to another.
	Equals(Type) bool
	// Children returns the immediate component types of this type.
	Children() []Type
}

// IntegerType is the type ℤ.
type IntegerType struct{}

// BooleanType is the type BOOL.
type BooleanType struct{}

// GivenType is a carrier set (or a type parameter, when used within a
// datatype declaration).
type GivenType struct {
	Name string
}

// PowerSetType is the type of sets of a given base type.
type PowerSetType struct {
	Base Type
}

// ProductType is the type of pairs.
type ProductType struct {
	Left  Type
	Right Type
}

// ParametricType is a type built by a type constructor contributed by an
// extension (e.g. a datatype), applied to zero or more type arguments.
type ParametricType struct {
	Constructor string
	Params      []Type
}

// Source returns the source type of a relational type ℙ(S×T), or nil when this
// is not a relational type.
func (t *PowerSetType) Source() Type {
	if p, ok := t.Base.(*ProductType); ok {
		return p.Left
	}
	//
	return nil
}

// Target returns the target type of a relational type ℙ(S×T), or nil when this
// is not a relational type.
func (t *PowerSetType) Target() Type {
	if p, ok := t.Base.(*ProductType); ok {
		return p.Right
	}
	//
	return nil
}

func (t *IntegerType) String() string { return "ℤ" }
func (t *BooleanType) String() string { return "BOOL" }
func (t *GivenType) String() string   { return t.Name }

func (t *PowerSetType) String() string {
	return fmt.Sprintf("ℙ(%s)", t.Base.String())
}

func (t *ProductType) String() string {
	var right = t.Right.String()
	// Products associate to the left
	if _, ok := t.Right.(*ProductType); ok {
		right = fmt.Sprintf("(%s)", right)
	}
	//
	return fmt.Sprintf("%s×%s", t.Left.String(), right)
}

func (t *ParametricType) String() string {
	if len(t.Params) == 0 {
		return t.Constructor
	}
	//
	params := make([]string, len(t.Params))
	//
	for i, p := range t.Params {
		params[i] = p.String()
	}
	//
	return fmt.Sprintf("%s(%s)", t.Constructor, strings.Join(params, ","))
}

// Equals implementation for the Type interface.
func (t *IntegerType) Equals(o Type) bool {
	_, ok := o.(*IntegerType)
	return ok
}

// Equals implementation for the Type interface.
func (t *BooleanType) Equals(o Type) bool {
	_, ok := o.(*BooleanType)
	return ok
}

// Equals implementation for the Type interface.
func (t *GivenType) Equals(o Type) bool {
	g, ok := o.(*GivenType)
	return ok && g.Name == t.Name
}

// Equals implementation for the Type interface.
func (t *PowerSetType) Equals(o Type) bool {
	p, ok := o.(*PowerSetType)
	return ok && t.Base.Equals(p.Base)
}

// Equals implementation for the Type interface.
func (t *ProductType) Equals(o Type) bool {
	p, ok := o.(*ProductType)
	return ok && t.Left.Equals(p.Left) && t.Right.Equals(p.Right)
}

// Equals implementation for the Type interface.
func (t *ParametricType) Equals(o Type) bool {
	p, ok := o.(*ParametricType)
	if !ok || p.Constructor != t.Constructor || len(p.Params) != len(t.Params) {
		return false
	}
	//
	for i := range t.Params {
		if !t.Params[i].Equals(p.Params[i]) {
			return false
		}
	}
	//
	return true
}

// Children implementation for the Type interface.
func (t *IntegerType) Children() []Type { return nil }

// Children implementation for the Type interface.
func (t *BooleanType) Children() []Type { return nil }

// Children implementation for the Type interface.
func (t *GivenType) Children() []Type { return nil }

// Children implementation for the Type interface.
func (t *PowerSetType) Children() []Type { return []Type{t.Base} }

// Children implementation for the Type interface.
func (t *ProductType) Children() []Type { return []Type{t.Left, t.Right} }

// Children implementation for the Type interface.
func (t *ParametricType) Children() []Type { return t.Params }

// GivenTypes returns the names of all given types occurring in a type, in
// order of first occurrence.
func GivenTypes(t Type) []string {
	var (
		names []string
		seen  = make(map[string]bool)
		visit func(Type)
	)
	//
	visit = func(t Type) {
		if g, ok := t.(*GivenType); ok && !seen[g.Name] {
			seen[g.Name] = true
			names = append(names, g.Name)
		}
		//
		for _, c := range t.Children() {
			visit(c)
		}
	}
	//
	visit(t)
	//
	return names
}
