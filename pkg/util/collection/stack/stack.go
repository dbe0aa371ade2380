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
package stack

// Stack represents a reusable LIFO stack which is implemented using an array.
// Items are addressed by their offset from the top, such that the most
// recently pushed item has offset 0.
type Stack[T comparable] struct {
	items []T
}

// NewStack returns an empty stack
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// IsEmpty checks whether or not there are still items on the stack
func (p *Stack[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Len returns the number of items on the stack.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Peek at nth item from top of stack.
func (p *Stack[T]) Peek(offset uint) T {
	var n = len(p.items) - int(offset) - 1
	//
	if n < 0 {
		panic("peek out-of-bounds")
	}
	// Get last item
	return p.items[n]
}

// Find the offset from the top of the stack of the topmost occurrence of a
// given item, if there is one.
func (p *Stack[T]) Find(item T) (uint, bool) {
	var n = len(p.items) - 1
	//
	for i := range len(p.items) {
		if p.items[n-i] == item {
			return uint(i), true
		}
	}
	//
	return 0, false
}

// Push a new item onto the stack
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// PushAll pushes zero or more items onto the stack, such that the last of
// them ends up on top.
func (p *Stack[T]) PushAll(items []T) {
	p.items = append(p.items, items...)
}

// Pop the last item off the stack
func (p *Stack[T]) Pop() T {
	var n = len(p.items)
	//
	if n == 0 {
		panic("cannot pop from empty stack")
	}
	// Get last item
	item := p.items[n-1]
	// Remove last item
	p.items = p.items[:n-1]
	// Done
	return item
}

// PopN pops the last n items off the stack.
func (p *Stack[T]) PopN(n uint) {
	if n > p.Len() {
		panic("cannot pop beyond bottom of stack")
	}
	//
	p.items = p.items[:len(p.items)-int(n)]
}
