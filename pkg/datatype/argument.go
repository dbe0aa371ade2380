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
	"fmt"
	"strings"

	"github.com/consensys/go-eventb/pkg/types"
)

// Argument describes one argument of a constructor.  An argument may have a
// destructor which extracts it from a constructed value.  An empty destructor
// means the argument cannot be accessed directly.
type Argument struct {
	Destructor string
	Type       ArgumentType
}

// Arg constructs an argument with a given destructor.
func Arg(destructor string, t ArgumentType) Argument {
	return Argument{destructor, t}
}

// ArgumentType is the (abstract) type of a constructor argument.  This may
// refer to the type parameters of the datatype, and to the datatype itself.
// Such types only become concrete types once the datatype is instantiated.
type ArgumentType interface {
	// Format this argument type, where self is the text denoting the datatype
	// itself.
	format(self string) string
	// Instantiate this argument type, giving a concrete type.
	instantiate(inst *TypeInstantiation) types.Type
	// Visit each type parameter of this argument type.
	params(visit func(string))
}

// Param returns the argument type denoting a given type parameter.
func Param(name string) ArgumentType {
	return &paramType{name}
}

// Given returns the argument type denoting a given set.
func Given(name string) ArgumentType {
	return &givenType{name}
}

// Integer returns the argument type denoting the integers.
func Integer() ArgumentType {
	return &integerType{}
}

// Boolean returns the argument type denoting the booleans.
func Boolean() ArgumentType {
	return &booleanType{}
}

// PowerSet returns the argument type denoting the sets of a given type.
func PowerSet(base ArgumentType) ArgumentType {
	return &powerSetType{base}
}

// Product returns the argument type denoting the pairs of two types.
func Product(left, right ArgumentType) ArgumentType {
	return &productType{left, right}
}

// Relation returns the argument type denoting the relations between two
// types.
func Relation(left, right ArgumentType) ArgumentType {
	return &powerSetType{&productType{left, right}}
}

// Self returns the argument type denoting the datatype being defined, applied
// to its own type parameters.
func Self() ArgumentType {
	return &selfType{}
}

// Applied returns the argument type denoting some other parametric type
// applied to given type arguments.
func Applied(name string, args ...ArgumentType) ArgumentType {
	return &appliedType{name, args}
}

type paramType struct{ name string }

func (t *paramType) format(string) string { return t.name }

func (t *paramType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.Get(t.name)
}

func (t *paramType) params(visit func(string)) {
	visit(t.name)
}

type givenType struct{ name string }

func (t *givenType) format(string) string { return t.name }

func (t *givenType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.factory.Given(t.name)
}

func (t *givenType) params(func(string)) {}

type integerType struct{}

func (t *integerType) format(string) string { return "ℤ" }

func (t *integerType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.factory.Integer()
}

func (t *integerType) params(func(string)) {}

type booleanType struct{}

func (t *booleanType) format(string) string { return "BOOL" }

func (t *booleanType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.factory.Boolean()
}

func (t *booleanType) params(func(string)) {}

type powerSetType struct{ base ArgumentType }

func (t *powerSetType) format(self string) string {
	return fmt.Sprintf("ℙ(%s)", t.base.format(self))
}

func (t *powerSetType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.factory.PowerSet(t.base.instantiate(inst))
}

func (t *powerSetType) params(visit func(string)) {
	t.base.params(visit)
}

type productType struct{ left, right ArgumentType }

func (t *productType) format(self string) string {
	// Products associate to the left
	if _, ok := t.right.(*productType); ok {
		return fmt.Sprintf("%s×(%s)", t.left.format(self), t.right.format(self))
	}
	//
	return fmt.Sprintf("%s×%s", t.left.format(self), t.right.format(self))
}

func (t *productType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.factory.Product(t.left.instantiate(inst), t.right.instantiate(inst))
}

func (t *productType) params(visit func(string)) {
	t.left.params(visit)
	t.right.params(visit)
}

type selfType struct{}

func (t *selfType) format(self string) string { return self }

func (t *selfType) instantiate(inst *TypeInstantiation) types.Type {
	return inst.self
}

func (t *selfType) params(func(string)) {}

type appliedType struct {
	name string
	args []ArgumentType
}

func (t *appliedType) format(self string) string {
	if len(t.args) == 0 {
		return t.name
	}
	//
	args := make([]string, len(t.args))
	//
	for i, arg := range t.args {
		args[i] = arg.format(self)
	}
	//
	return fmt.Sprintf("%s(%s)", t.name, strings.Join(args, ","))
}

func (t *appliedType) instantiate(inst *TypeInstantiation) types.Type {
	args := make([]types.Type, len(t.args))
	//
	for i, arg := range t.args {
		args[i] = arg.instantiate(inst)
	}
	//
	return inst.factory.Parametric(t.name, args...)
}

func (t *appliedType) params(visit func(string)) {
	for _, arg := range t.args {
		arg.params(visit)
	}
}
