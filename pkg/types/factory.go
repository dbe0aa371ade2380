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

// Factory constructs types.  Types are interned, so that structurally equal
// types constructed by the same factory are represented by the same value.
type Factory struct {
	cache map[string]Type
}

// NewFactory constructs a new (empty) type factory.
func NewFactory() *Factory {
	return &Factory{make(map[string]Type)}
}

// Integer returns the type ℤ.
func (f *Factory) Integer() Type {
	return f.intern(&IntegerType{})
}

// Boolean returns the type BOOL.
func (f *Factory) Boolean() Type {
	return f.intern(&BooleanType{})
}

// Given returns the given type of a given name.
func (f *Factory) Given(name string) Type {
	return f.intern(&GivenType{name})
}

// PowerSet returns the type ℙ(base).
func (f *Factory) PowerSet(base Type) Type {
	return f.intern(&PowerSetType{base})
}

// Product returns the type left×right.
func (f *Factory) Product(left, right Type) Type {
	return f.intern(&ProductType{left, right})
}

// Relation returns the type ℙ(left×right).
func (f *Factory) Relation(left, right Type) Type {
	return f.PowerSet(f.Product(left, right))
}

// Parametric returns the type obtained by applying a type constructor to some
// type arguments.
func (f *Factory) Parametric(constructor string, params ...Type) Type {
	return f.intern(&ParametricType{constructor, params})
}

// Size returns the number of distinct types constructed by this factory.
func (f *Factory) Size() int {
	return len(f.cache)
}

func (f *Factory) intern(t Type) Type {
	key := t.String()
	//
	if existing, ok := f.cache[key]; ok && existing.Equals(t) {
		return existing
	}
	//
	f.cache[key] = t
	//
	return t
}
