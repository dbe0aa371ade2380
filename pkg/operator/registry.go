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
package operator

import (
	"fmt"
	"maps"
	"slices"
)

// GROUP0 is the identifier of the distinguished group holding only the
// structural markers (end-of-formula, no-operator and generic-open).  Operators
// of any other group always take priority over those of GROUP0.
const GROUP0 = "GROUP0"

// Relationship determines how two adjacent operators bind, given that the left
// one was encountered first.
type Relationship uint8

const (
	// LEFT_PRIORITY means the left operator binds tighter.
	LEFT_PRIORITY Relationship = iota
	// RIGHT_PRIORITY means the right operator binds tighter.
	RIGHT_PRIORITY
	// COMPATIBLE means the operators can be chained without parentheses, and
	// associate to the left.
	COMPATIBLE
	// INCOMPATIBLE means the operators cannot be chained without parentheses.
	INCOMPATIBLE
)

func (r Relationship) String() string {
	switch r {
	case LEFT_PRIORITY:
		return "LEFT_PRIORITY"
	case RIGHT_PRIORITY:
		return "RIGHT_PRIORITY"
	case COMPATIBLE:
		return "COMPATIBLE"
	default:
		return "INCOMPATIBLE"
	}
}

// Mirror returns the relationship obtained by swapping left and right.
func (r Relationship) Mirror() Relationship {
	switch r {
	case LEFT_PRIORITY:
		return RIGHT_PRIORITY
	case RIGHT_PRIORITY:
		return LEFT_PRIORITY
	default:
		return r
	}
}

type pair struct {
	left, right Kind
}

// Group is a set of operators sharing a single priority and compatibility
// scheme.
type Group struct {
	id string
	// Position of this group in the group priority closure
	index uint
	// Operators in this group, in order of registration.
	kinds []Kind
	// Maps each operator to its position in the priority closure.
	members map[Kind]uint
	// Intra-group priorities
	priorities Closure
	// Compatibilities holding for every version
	compatible map[pair]bool
	// Compatibilities holding for specific versions
	versioned map[Version]map[pair]bool
}

func newGroup(id string, index uint) *Group {
	return &Group{id, index, nil, make(map[Kind]uint), Closure{}, make(map[pair]bool),
		make(map[Version]map[pair]bool)}
}

// ID returns the identifier of this group.
func (p *Group) ID() string {
	return p.id
}

// Kinds returns the operators of this group, in order of registration.
func (p *Group) Kinds() []Kind {
	return p.kinds
}

// Above returns the operators of this group which have priority over the
// given operator.
func (p *Group) Above(kind Kind) []Kind {
	var kinds []Kind
	//
	for _, i := range p.priorities.Above(p.members[kind]) {
		kinds = append(kinds, p.kinds[i])
	}
	//
	return kinds
}

// Compatible checks whether the given operators were declared compatible for
// the given version.
func (p *Group) Compatible(left, right Kind, v Version) bool {
	key := pair{left, right}
	//
	return p.compatible[key] || p.versioned[v][key]
}

func (p *Group) clone() *Group {
	versioned := make(map[Version]map[pair]bool, len(p.versioned))
	//
	for v, pairs := range p.versioned {
		versioned[v] = maps.Clone(pairs)
	}
	//
	return &Group{p.id, p.index, slices.Clone(p.kinds), maps.Clone(p.members), p.priorities.Clone(),
		maps.Clone(p.compatible), versioned}
}

func (p *Group) prioritised(left, right Kind) (Relationship, bool) {
	l, r := p.members[left], p.members[right]
	//
	switch {
	case p.priorities.Less(l, r):
		return RIGHT_PRIORITY, true
	case p.priorities.Less(r, l):
		return LEFT_PRIORITY, true
	}
	//
	return INCOMPATIBLE, false
}

// Registry records the operators of a grammar, the groups they belong to and
// how they relate to each other.
type Registry struct {
	ids     *OnceMap[string, Kind]
	names   *OnceMap[Kind, string]
	groupOf *OnceMap[Kind, *Group]
	groups  map[string]*Group
	// Groups in order of creation
	order []*Group
	// Priorities between groups
	priorities Closure
}

// NewRegistry constructs a registry holding just the (empty) GROUP0.
func NewRegistry() *Registry {
	r := &Registry{
		NewOnceMap[string, Kind]("operator"),
		NewOnceMap[Kind, string]("kind"),
		NewOnceMap[Kind, *Group]("group"),
		make(map[string]*Group),
		nil,
		Closure{},
	}
	//
	r.group(GROUP0)
	//
	return r
}

// AddOperator registers a given kind as an operator with a given identifier,
// belonging to a given group.  The group is created if it does not already
// exist.  An operator belongs to exactly one group, and an identifier denotes
// exactly one operator.
func (p *Registry) AddOperator(kind Kind, id string, groupID string) error {
	if k, ok := p.ids.Get(id); ok && k != kind {
		return &OverrideError{"operator", id, k, kind}
	} else if n, ok := p.names.Get(kind); ok && n != id {
		return &OverrideError{"kind", kind, n, id}
	} else if g, ok := p.groupOf.Get(kind); ok && g.id != groupID {
		return &OverrideError{"group", id, g.id, groupID}
	}
	//
	group := p.group(groupID)
	//
	if err := p.ids.Put(id, kind); err != nil {
		return err
	} else if err := p.names.Put(kind, id); err != nil {
		return err
	} else if err := p.groupOf.Put(kind, group); err != nil {
		return err
	}
	//
	if _, ok := group.members[kind]; !ok {
		group.members[kind] = uint(len(group.kinds))
		group.kinds = append(group.kinds, kind)
	}
	//
	return nil
}

// AddCompatibility records that the left operator may be directly followed by
// the right operator (without parentheses).  When no versions are given, this
// holds for all versions.  Both operators must belong to the same group.
func (p *Registry) AddCompatibility(leftID, rightID string, versions ...Version) error {
	left, right, group, err := p.sameGroup(leftID, rightID)
	//
	if err != nil {
		return err
	} else if p.ids.IsFrozen() {
		return &FrozenError{"compatibility", leftID}
	} else if len(versions) == 0 {
		group.compatible[pair{left, right}] = true
	}
	//
	for _, v := range versions {
		if group.versioned[v] == nil {
			group.versioned[v] = make(map[pair]bool)
		}
		//
		group.versioned[v][pair{left, right}] = true
	}
	//
	return nil
}

// AddPriority records that the high operator binds tighter than the low
// operator.  Both operators must belong to the same group.  If this would
// create a cycle, nothing is changed and a CycleError is returned.
func (p *Registry) AddPriority(lowID, highID string) error {
	low, high, group, err := p.sameGroup(lowID, highID)
	//
	if err != nil {
		return err
	} else if p.ids.IsFrozen() {
		return &FrozenError{"priority", lowID}
	} else if !group.priorities.Add(group.members[low], group.members[high]) {
		return &CycleError{[]string{lowID, highID, lowID}}
	}
	//
	return nil
}

// AddGroupPriority records that every operator of the high group binds
// tighter than every operator of the low group.  If this would create a cycle,
// nothing is changed and a CycleError is returned.
func (p *Registry) AddGroupPriority(lowID, highID string) error {
	if p.ids.IsFrozen() {
		return &FrozenError{"group priority", lowID}
	} else if highID == GROUP0 {
		return fmt.Errorf("%s cannot have priority over %s", GROUP0, lowID)
	}
	//
	low, high := p.group(lowID), p.group(highID)
	//
	if !p.priorities.Add(low.index, high.index) {
		return &CycleError{[]string{lowID, highID, lowID}}
	}
	//
	return nil
}

// Relationship determines how the left operator relates to the right operator
// for a given language version.  Both kinds must have been registered as
// operators.
func (p *Registry) Relationship(left, right Kind, v Version) Relationship {
	lg, rg := p.mustGroupOf(left), p.mustGroupOf(right)
	l0, r0 := lg.id == GROUP0, rg.id == GROUP0
	//
	switch {
	case l0 && r0:
		return LEFT_PRIORITY
	case l0:
		return RIGHT_PRIORITY
	case r0:
		return LEFT_PRIORITY
	case lg != rg:
		if p.priorities.Less(lg.index, rg.index) {
			return RIGHT_PRIORITY
		} else if p.priorities.Less(rg.index, lg.index) {
			return LEFT_PRIORITY
		}
		// Unrelated groups: the operand already parsed binds to the left.
		return LEFT_PRIORITY
	}
	//
	if rel, ok := lg.prioritised(left, right); ok {
		return rel
	} else if lg.Compatible(left, right, v) {
		return COMPATIBLE
	}
	//
	return INCOMPATIBLE
}

// IsCompatible determines whether the left operator can be followed by the
// right operator in a given version without parentheses.  This holds for
// operators declared compatible, and for operators of the same group related by
// priority.  Operators in different groups are never compatible.
func (p *Registry) IsCompatible(left, right Kind, v Version) bool {
	lg, ok1 := p.groupOf.Get(left)
	rg, ok2 := p.groupOf.Get(right)
	//
	if !ok1 || !ok2 || lg != rg {
		return false
	}
	//
	_, related := lg.prioritised(left, right)
	//
	return related || lg.Compatible(left, right, v)
}

// HasGroup checks whether a given kind was registered as an operator.
func (p *Registry) HasGroup(kind Kind) bool {
	return p.groupOf.Has(kind)
}

// GroupOf returns the group of a given operator kind.
func (p *Registry) GroupOf(kind Kind) (*Group, bool) {
	return p.groupOf.Get(kind)
}

// Kind returns the kind of a given operator identifier.
func (p *Registry) Kind(id string) (Kind, bool) {
	return p.ids.Get(id)
}

// ID returns the identifier of a given operator kind.
func (p *Registry) ID(kind Kind) (string, bool) {
	return p.names.Get(kind)
}

// Groups returns all groups, lowest first where ordered (and otherwise in
// order of creation).
func (p *Registry) Groups() []*Group {
	groups := slices.Clone(p.order)
	//
	slices.SortStableFunc(groups, func(l, r *Group) int {
		switch {
		case p.priorities.Less(l.index, r.index):
			return -1
		case p.priorities.Less(r.index, l.index):
			return 1
		}
		//
		return 0
	})
	//
	return groups
}

// GroupPriority checks whether the high group was (transitively) declared to
// have priority over the low group.
func (p *Registry) GroupPriority(lowID, highID string) bool {
	low, ok1 := p.groups[lowID]
	high, ok2 := p.groups[highID]
	//
	return ok1 && ok2 && p.priorities.Less(low.index, high.index)
}

// Clone returns a deep copy of this registry.  Changes made to the copy (e.g.
// to check whether a set of registrations would succeed) leave this registry
// untouched.
func (p *Registry) Clone() *Registry {
	var (
		groups  = make(map[string]*Group, len(p.groups))
		order   = make([]*Group, len(p.order))
		groupOf = NewOnceMap[Kind, *Group](p.groupOf.name)
	)
	//
	for i, g := range p.order {
		order[i] = g.clone()
		groups[g.id] = order[i]
	}
	//
	for kind, g := range p.groupOf.entries {
		groupOf.entries[kind] = groups[g.id]
	}
	//
	groupOf.frozen = p.groupOf.frozen
	//
	return &Registry{p.ids.Clone(), p.names.Clone(), groupOf, groups, order, p.priorities.Clone()}
}

// Freeze prevents any further operators from being registered.
func (p *Registry) Freeze() {
	p.ids.Freeze()
	p.names.Freeze()
	p.groupOf.Freeze()
}

func (p *Registry) group(id string) *Group {
	if g, ok := p.groups[id]; ok {
		return g
	}
	//
	g := newGroup(id, uint(len(p.order)))
	p.groups[id] = g
	p.order = append(p.order, g)
	//
	return g
}

func (p *Registry) mustGroupOf(kind Kind) *Group {
	if g, ok := p.groupOf.Get(kind); ok {
		return g
	}
	//
	panic(fmt.Sprintf("kind %d is not an operator", kind))
}

func (p *Registry) sameGroup(leftID, rightID string) (Kind, Kind, *Group, error) {
	left, ok := p.ids.Get(leftID)
	if !ok {
		return 0, 0, nil, &UnknownOperatorError{leftID}
	}
	//
	right, ok := p.ids.Get(rightID)
	if !ok {
		return 0, 0, nil, &UnknownOperatorError{rightID}
	}
	//
	lg, rg := p.mustGroupOf(left), p.mustGroupOf(right)
	//
	if lg != rg {
		return 0, 0, nil, &GroupMismatchError{leftID, rightID, lg.id, rg.id}
	}
	//
	return left, right, lg, nil
}
