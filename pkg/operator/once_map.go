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

import "maps"

// OnceMap is a mapping whose entries can be written only once.  Rewriting an
// entry with an identical value has no effect, whilst rewriting it with a
// different value fails.  Once frozen, every write fails.
type OnceMap[K comparable, V comparable] struct {
	name    string
	entries map[K]V
	frozen  bool
}

// NewOnceMap constructs an empty map whose name is used in errors.
func NewOnceMap[K comparable, V comparable](name string) *OnceMap[K, V] {
	return &OnceMap[K, V]{name, make(map[K]V), false}
}

// Put binds a given key to a given value.
func (p *OnceMap[K, V]) Put(key K, value V) error {
	if p.frozen {
		return &FrozenError{p.name, key}
	} else if old, ok := p.entries[key]; ok && old != value {
		return &OverrideError{p.name, key, old, value}
	}
	//
	p.entries[key] = value
	//
	return nil
}

// Get returns the value bound to a given key (if any).
func (p *OnceMap[K, V]) Get(key K) (V, bool) {
	v, ok := p.entries[key]
	return v, ok
}

// Has checks whether a given key is bound.
func (p *OnceMap[K, V]) Has(key K) bool {
	_, ok := p.entries[key]
	return ok
}

// Len returns the number of bindings.
func (p *OnceMap[K, V]) Len() int {
	return len(p.entries)
}

// Clone returns a copy of this map, which can be written independently.
func (p *OnceMap[K, V]) Clone() *OnceMap[K, V] {
	return &OnceMap[K, V]{p.name, maps.Clone(p.entries), p.frozen}
}

// Freeze prevents any further writes.
func (p *OnceMap[K, V]) Freeze() {
	p.frozen = true
}

// IsFrozen checks whether this map was frozen.
func (p *OnceMap[K, V]) IsFrozen() bool {
	return p.frozen
}

// Entries returns the underlying bindings.  These must not be modified.
func (p *OnceMap[K, V]) Entries() map[K]V {
	return p.entries
}
