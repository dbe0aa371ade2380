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

	"github.com/consensys/go-eventb/pkg/types"
)

// TypeInstantiation maps the type parameters of a datatype to the concrete
// types given at a particular use of that datatype.  For example, the type
// List(ℤ) instantiates the parameter T of List(T) with ℤ.
type TypeInstantiation struct {
	datatype *Datatype
	// The instantiated datatype itself
	self types.Type
	// Concrete type of each parameter
	params  map[string]types.Type
	factory *types.Factory
}

// Type returns the concrete type of this datatype for given type arguments.
func (p *Datatype) Type(f *types.Factory, args ...types.Type) types.Type {
	if len(args) != len(p.params) {
		panic(fmt.Sprintf("datatype %s expects %d type argument(s), got %d", p.name, len(p.params), len(args)))
	}
	//
	return f.Parametric(p.name, args...)
}

// Instantiate this datatype for a given concrete type, which should be a
// parametric type built from this datatype's type constructor.  If not, this
// fails.  The number of type arguments must match the number of type
// parameters.
func (p *Datatype) Instantiate(t types.Type, f *types.Factory) (*TypeInstantiation, bool) {
	parametric, ok := t.(*types.ParametricType)
	//
	if !ok || parametric.Constructor != p.name {
		return nil, false
	} else if len(parametric.Params) != len(p.params) {
		panic(fmt.Sprintf("datatype %s has %d type parameter(s), but %s has %d", p.name, len(p.params), t,
			len(parametric.Params)))
	}
	//
	inst := &TypeInstantiation{p, t, make(map[string]types.Type), f}
	//
	for i, param := range p.params {
		inst.params[param] = parametric.Params[i]
	}
	//
	return inst, true
}

// Get returns the concrete type of a given type parameter.
func (p *TypeInstantiation) Get(param string) types.Type {
	if t, ok := p.params[param]; ok {
		return t
	}
	//
	panic(fmt.Sprintf("unknown type parameter %s of datatype %s", param, p.datatype.name))
}

// Datatype returns the datatype being instantiated.
func (p *TypeInstantiation) Datatype() *Datatype {
	return p.datatype
}

// Apply this instantiation to an argument type, giving a concrete type.
func (p *TypeInstantiation) Apply(t ArgumentType) types.Type {
	return t.instantiate(p)
}

// ArgumentTypes determines the concrete types of the arguments of this
// constructor, for a given concrete type of its datatype.  This fails if the
// given type is not an instance of the datatype.
func (p *Constructor) ArgumentTypes(t types.Type, f *types.Factory) ([]types.Type, bool) {
	inst, ok := p.datatype.Instantiate(t, f)
	if !ok {
		return nil, false
	}
	//
	argTypes := make([]types.Type, len(p.arguments))
	//
	for i, arg := range p.arguments {
		argTypes[i] = inst.Apply(arg.Type)
	}
	//
	return argTypes, true
}

// Type determines the concrete type of the values extracted by this
// destructor, for a given concrete type of its datatype.
func (p *Destructor) Type(t types.Type, f *types.Factory) (types.Type, bool) {
	inst, ok := p.constructor.datatype.Instantiate(t, f)
	if !ok {
		return nil, false
	}
	//
	return inst.Apply(p.Argument().Type), true
}
