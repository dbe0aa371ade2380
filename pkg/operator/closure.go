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
	"github.com/bits-and-blooms/bitset"
)

// Closure is a strict partial order over dense indices, maintained in
// transitively closed form.  Row i holds every index known to be strictly
// above i.
type Closure struct {
	above []*bitset.BitSet
}

// Less checks whether lo is strictly below hi.
func (p *Closure) Less(lo, hi uint) bool {
	return lo < uint(len(p.above)) && p.above[lo].Test(hi)
}

// Related checks whether two indices are ordered (in either direction).
func (p *Closure) Related(a, b uint) bool {
	return p.Less(a, b) || p.Less(b, a)
}

// Add inserts lo < hi, along with everything this implies transitively.  If
// this would introduce a cycle, then nothing is changed and false is
// returned.
func (p *Closure) Add(lo, hi uint) bool {
	if lo == hi || p.Less(hi, lo) {
		return false
	}
	//
	p.ensure(max(lo, hi) + 1)
	// Everything above hi, including hi
	update := p.above[hi].Clone()
	update.Set(hi)
	// Apply to lo and everything below lo
	for x := range p.above {
		if uint(x) == lo || p.above[x].Test(lo) {
			p.above[x].InPlaceUnion(update)
		}
	}
	//
	return true
}

// Above returns every index strictly above a given index, in ascending order.
func (p *Closure) Above(lo uint) []uint {
	var items []uint
	//
	if lo < uint(len(p.above)) {
		for i, ok := p.above[lo].NextSet(0); ok; i, ok = p.above[lo].NextSet(i + 1) {
			items = append(items, i)
		}
	}
	//
	return items
}

// Clone returns a copy of this closure, which can be extended independently.
func (p *Closure) Clone() Closure {
	above := make([]*bitset.BitSet, len(p.above))
	//
	for i, row := range p.above {
		above[i] = row.Clone()
	}
	//
	return Closure{above}
}

func (p *Closure) ensure(n uint) {
	for uint(len(p.above)) < n {
		p.above = append(p.above, bitset.New(n))
	}
}
