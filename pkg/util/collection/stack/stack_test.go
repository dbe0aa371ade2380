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

import (
	"testing"

	"github.com/consensys/go-eventb/pkg/util/assert"
)

func TestStack_01(t *testing.T) {
	s := NewStack[string]()
	s.PushAll([]string{"x", "y"})
	s.Push("z")
	//
	assert.Equal(t, uint(3), s.Len())
	assert.Equal(t, "z", s.Peek(0))
	assert.Equal(t, "x", s.Peek(2))
	assert.Equal(t, "z", s.Pop())
	assert.Equal(t, "y", s.Peek(0))
}

func TestStack_02(t *testing.T) {
	s := NewStack[string]()
	s.PushAll([]string{"x", "y", "x"})
	// Innermost occurrence wins
	checkFind(t, s, "x", 0, true)
	checkFind(t, s, "y", 1, true)
	checkFind(t, s, "z", 0, false)
	//
	s.PopN(1)
	checkFind(t, s, "x", 1, true)
	s.PopN(2)
	assert.True(t, s.IsEmpty())
}

func TestStack_03(t *testing.T) {
	s := NewStack[int]()
	//
	assert.Panics(t, func() { s.Pop() })
	assert.Panics(t, func() { s.Peek(0) })
	assert.Panics(t, func() { s.PopN(1) })
}

// ============================================================================
// Framework
// ============================================================================

func checkFind(t *testing.T, s *Stack[string], item string, offset uint, found bool) {
	actual, ok := s.Find(item)
	//
	assert.Equal(t, found, ok, "find %s", item)
	//
	if ok {
		assert.Equal(t, offset, actual, "find %s", item)
	}
}
