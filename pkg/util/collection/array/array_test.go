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
package array

import (
	"testing"

	"github.com/consensys/go-eventb/pkg/util/assert"
)

func TestRemoveMatching_01(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	result := RemoveMatching(items, func(i int) bool { return i%2 == 0 })
	//
	assert.Equal(t, []int{1, 3, 5}, result)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

func TestRemoveMatching_02(t *testing.T) {
	items := []string{"x", " ", "+", " ", "y"}
	result := RemoveMatching(items, func(s string) bool { return s == " " })
	//
	assert.Equal(t, []string{"x", "+", "y"}, result)
}

func TestRemoveMatching_03(t *testing.T) {
	items := []int{1, 3}
	//
	assert.Equal(t, items, RemoveMatching(items, func(i int) bool { return i > 3 }))
	assert.Equal(t, 0, len(RemoveMatching(items, func(i int) bool { return true })))
}
