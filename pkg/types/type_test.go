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
	"testing"

	"github.com/consensys/go-eventb/pkg/util/assert"
)

func TestType_00(t *testing.T) {
	f := NewFactory()
	//
	assert.Equal(t, "ℙ(ℤ×BOOL)", f.Relation(f.Integer(), f.Boolean()).String())
	assert.Equal(t, "S×T×U", f.Product(f.Product(f.Given("S"), f.Given("T")), f.Given("U")).String())
	assert.Equal(t, "S×(T×U)", f.Product(f.Given("S"), f.Product(f.Given("T"), f.Given("U"))).String())
	assert.Equal(t, "List(ℙ(S))", f.Parametric("List", f.PowerSet(f.Given("S"))).String())
}

func TestType_01(t *testing.T) {
	f := NewFactory()
	// Interning
	assert.True(t, f.PowerSet(f.Integer()) == f.PowerSet(f.Integer()))
	assert.True(t, f.PowerSet(f.Integer()).Equals(&PowerSetType{&IntegerType{}}))
	assert.False(t, f.Given("S").Equals(f.Given("T")))
	assert.False(t, f.Parametric("L", f.Integer()).Equals(f.Parametric("L")))
}

func TestType_02(t *testing.T) {
	f := NewFactory()
	rel := f.Relation(f.Given("S"), f.Product(f.Given("T"), f.Given("S"))).(*PowerSetType)
	//
	assert.True(t, rel.Source().Equals(f.Given("S")))
	assert.Equal(t, []string{"S", "T"}, GivenTypes(rel))
	assert.Equal(t, nil, f.PowerSet(f.Integer()).(*PowerSetType).Source())
}
