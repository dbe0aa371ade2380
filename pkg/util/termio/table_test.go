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
package termio

import (
	"testing"

	"github.com/consensys/go-eventb/pkg/util/assert"
)

func TestTable_01(t *testing.T) {
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "ID", "IMAGE")
	table.SetRow(1, "LEQV", "⇔")
	//
	assert.Equal(t, "ID   | IMAGE\nLEQV | ⇔\n", table.String())
}

func TestTable_02(t *testing.T) {
	table := NewTablePrinter(3, 2)
	table.SetRow(0, "∪", "BUNION", "binop")
	table.SetRow(1, "<<|", "DOMSUB", "binop")
	//
	assert.Equal(t, "∪   | BUNION | binop\n<<| | DOMSUB | binop\n", table.String())
	assert.Equal(t, "<<|", table.Get(0, 1))
	assert.Equal(t, uint(2), table.Height())
}

func TestTable_03(t *testing.T) {
	table := NewTablePrinter(2, 1)
	escape := NewAnsiEscape().FgColour(TERM_RED).Build()
	//
	table.SetRow(0, "x", "y")
	table.SetEscape(0, 0, escape)
	assert.Equal(t, escape+"x"+ResetAnsiEscape().Build()+" | y\n", table.String())
	// Disabled escapes
	table.AnsiEscapes(false)
	assert.Equal(t, "x | y\n", table.String())
}

func TestTable_04(t *testing.T) {
	table := NewTablePrinter(2, 1)
	//
	assert.Panics(t, func() { table.SetRow(0, "x") })
}

func TestEscape_01(t *testing.T) {
	assert.Equal(t, "\033[1;31m", BoldAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[33m", NewAnsiEscape().FgColour(TERM_YELLOW).Build())
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
}

func TestEscape_02(t *testing.T) {
	escape := NewAnsiEscape().FgColour(TERM_WHITE)
	// Escapes are values
	assert.Equal(t, "\033[37;44m", escape.BgColour(TERM_BLUE).Build())
	assert.Equal(t, "\033[37m", escape.Build())
}
