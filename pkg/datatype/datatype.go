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
	"slices"
	"strings"

	"github.com/consensys/go-eventb/pkg/language"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/parser"
	log "github.com/sirupsen/logrus"
)

// Datatype is an algebraic datatype, such as "List(T) ::= nil | cons(head: T,
// tail: List(T))".  A datatype has a name (which denotes its type
// constructor), zero or more type parameters and one or more value
// constructors.  Once a datatype is frozen, no more constructors can be added.
type Datatype struct {
	name   string
	params []string
	// Constructors in order of declaration
	constructors []*Constructor
	// Constructors indexed by identifier
	ids *operator.OnceMap[string, *Constructor]
	// Destructors indexed by identifier
	destructors map[string]*Destructor
	// Operators contributed by this datatype, fixed once frozen
	extensions []*parser.Extension
}

// Constructor is a value constructor of a datatype.
type Constructor struct {
	datatype  *Datatype
	id        string
	arguments []Argument
	// One (possibly nil) destructor for each argument
	destructors []*Destructor
}

// Destructor extracts one argument from the values built by a constructor.
type Destructor struct {
	constructor *Constructor
	id          string
	index       uint
}

// NewDatatype constructs a datatype with a given name and type parameters, but
// no constructors.
func NewDatatype(name string, params ...string) *Datatype {
	return &Datatype{name, params, nil, operator.NewOnceMap[string, *Constructor]("constructor"),
		make(map[string]*Destructor), nil}
}

// Name returns the name of this datatype, which is also the identifier of its
// type constructor.
func (p *Datatype) Name() string {
	return p.name
}

// Params returns the type parameters of this datatype.
func (p *Datatype) Params() []string {
	return p.params
}

// Constructors returns the constructors of this datatype, in order of
// declaration.
func (p *Datatype) Constructors() []*Constructor {
	return p.constructors
}

// Constructor returns the constructor with a given identifier.
func (p *Datatype) Constructor(id string) (*Constructor, bool) {
	return p.ids.Get(id)
}

// Destructor returns the destructor with a given identifier.
func (p *Datatype) Destructor(id string) (*Destructor, bool) {
	d, ok := p.destructors[id]
	return d, ok
}

// AddConstructor adds a value constructor to this datatype.  This fails if the
// identifier of the constructor (or of any of its destructors) is already in
// use, or if an argument refers to an unknown type parameter.  In such case,
// the datatype is left unchanged.
func (p *Datatype) AddConstructor(id string, args ...Argument) error {
	if p.ids.IsFrozen() {
		return &operator.FrozenError{Table: "constructor", Key: id}
	} else if err := p.checkConstructor(id, args); err != nil {
		return err
	}
	//
	c := &Constructor{p, id, args, make([]*Destructor, len(args))}
	//
	for i, arg := range args {
		if arg.Destructor != "" {
			c.destructors[i] = &Destructor{c, arg.Destructor, uint(i)}
			p.destructors[arg.Destructor] = c.destructors[i]
		}
	}
	//
	if err := p.ids.Put(id, c); err != nil {
		// Cannot happen, since the identifier was checked above
		panic(err.Error())
	}
	//
	p.constructors = append(p.constructors, c)
	//
	log.Debugf("added constructor %s to datatype %s", id, p.name)
	//
	return nil
}

func (p *Datatype) checkConstructor(id string, args []Argument) error {
	if p.isDefined(id) {
		return fmt.Errorf("constructor %s already exists", id)
	}
	//
	var (
		err   error
		names = make(map[string]bool)
	)
	//
	for _, arg := range args {
		switch {
		case arg.Type == nil:
			return fmt.Errorf("argument of constructor %s has no type", id)
		case arg.Destructor == "":
			// No destructor
		case arg.Destructor == id || names[arg.Destructor] || p.isDefined(arg.Destructor):
			return fmt.Errorf("destructor %s already exists", arg.Destructor)
		default:
			names[arg.Destructor] = true
		}
		//
		arg.Type.params(func(param string) {
			if err == nil && !slices.Contains(p.params, param) {
				err = fmt.Errorf("unknown type parameter %s in constructor %s", param, id)
			}
		})
	}
	//
	return err
}

// isDefined checks whether an identifier is already used by this datatype.
func (p *Datatype) isDefined(id string) bool {
	_, ok := p.destructors[id]
	//
	return id == p.name || p.ids.Has(id) || ok
}

// Freeze this datatype, such that no further constructors can be added.
func (p *Datatype) Freeze() {
	if !p.ids.IsFrozen() {
		p.ids.Freeze()
		p.extensions = p.Extensions()
	}
}

// Extensions returns the operators contributed by this datatype: its type
// constructor, its value constructors and their destructors.  All of these
// are closed operators, either atomic (when they take no argument) or
// followed by a parenthesized list of arguments.
func (p *Datatype) Extensions() []*parser.Extension {
	if p.extensions != nil {
		return p.extensions
	}
	//
	var exts = []*parser.Extension{closed(p.name, uint(len(p.params)))}
	// The datatype denotes a type
	exts[0].Type = true
	//
	for _, c := range p.constructors {
		exts = append(exts, closed(c.id, uint(len(c.arguments))))
		//
		for _, d := range c.destructors {
			if d != nil {
				exts = append(exts, closed(d.id, 1))
			}
		}
	}
	//
	return exts
}

// Register the extensions of this datatype with a given grammar.  The datatype
// is frozen in the process, and the grammar is left unchanged if registration
// fails.  A datatype can only be registered if it has at least one basic
// constructor, since it would otherwise have no values.
func (p *Datatype) Register(g *parser.Grammar) error {
	if !slices.ContainsFunc(p.constructors, (*Constructor).IsBasic) {
		return fmt.Errorf("datatype %s has no basic constructor", p.name)
	}
	//
	p.Freeze()
	// Either every operator is registered, or none is
	if _, err := g.AddExtensions(p.Extensions()...); err != nil {
		return err
	}
	//
	log.Debugf("registered datatype %s with %d constructor(s)", p.name, len(p.constructors))
	//
	return nil
}

// String returns the declaration of this datatype.
func (p *Datatype) String() string {
	var (
		builder strings.Builder
		self    = p.self()
	)
	//
	builder.WriteString(self)
	builder.WriteString(" ::= ")
	//
	for i, c := range p.constructors {
		if i != 0 {
			builder.WriteString(" | ")
		}
		//
		builder.WriteString(c.id)
		//
		if len(c.arguments) == 0 {
			continue
		}
		//
		builder.WriteString("(")
		//
		for j, arg := range c.arguments {
			if j != 0 {
				builder.WriteString(", ")
			}
			//
			if arg.Destructor != "" {
				builder.WriteString(arg.Destructor)
				builder.WriteString(": ")
			}
			//
			builder.WriteString(arg.Type.format(self))
		}
		//
		builder.WriteString(")")
	}
	//
	return builder.String()
}

// self returns the text denoting this datatype applied to its own parameters.
func (p *Datatype) self() string {
	if len(p.params) == 0 {
		return p.name
	}
	//
	return fmt.Sprintf("%s(%s)", p.name, strings.Join(p.params, ","))
}

// ID returns the identifier of this constructor.
func (p *Constructor) ID() string {
	return p.id
}

// Datatype returns the datatype this constructor belongs to.
func (p *Constructor) Datatype() *Datatype {
	return p.datatype
}

// Arguments returns the arguments of this constructor.
func (p *Constructor) Arguments() []Argument {
	return p.arguments
}

// Destructors returns the destructors of this constructor, one for each
// argument.  Arguments without a destructor have a nil entry.
func (p *Constructor) Destructors() []*Destructor {
	return p.destructors
}

// IsBasic checks whether this constructor builds values without reference to
// the datatype itself (e.g. "nil" in a list datatype).
func (p *Constructor) IsBasic() bool {
	for _, arg := range p.arguments {
		if refersToSelf(arg.Type) {
			return false
		}
	}
	//
	return true
}

// ID returns the identifier of this destructor.
func (p *Destructor) ID() string {
	return p.id
}

// Constructor returns the constructor this destructor belongs to.
func (p *Destructor) Constructor() *Constructor {
	return p.constructor
}

// Argument returns the argument extracted by this destructor.
func (p *Destructor) Argument() Argument {
	return p.constructor.arguments[p.index]
}

func refersToSelf(t ArgumentType) bool {
	switch t := t.(type) {
	case *selfType:
		return true
	case *powerSetType:
		return refersToSelf(t.base)
	case *productType:
		return refersToSelf(t.left) || refersToSelf(t.right)
	case *appliedType:
		return slices.ContainsFunc(t.args, refersToSelf)
	}
	//
	return false
}

// closed constructs an extension for a closed operator with a given number of
// (parenthesized) arguments.
func closed(id string, arity uint) *parser.Extension {
	ext := &parser.Extension{ID: id, Syntax: id, Shape: parser.ATOMIC, Group: language.CLOSED}
	//
	if arity > 0 {
		ext.Shape, ext.Arity = parser.PARENTHESIZED, arity
	}
	//
	return ext
}
