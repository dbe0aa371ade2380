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

import "fmt"

// Kind identifies a lexical (or syntactic) class of token.  Kinds are small,
// dense integers allocated by a SymbolTable.  They are plain unsigned integers
// so that they can be used directly as the kinds of lexer tokens.
type Kind = uint

type symbol struct {
	image    string
	reserved bool
}

// SymbolTable maps token images to kinds.  Alongside images which appear in
// formulas, a symbol table also allocates "reserved" kinds for synthetic
// markers (such as end-of-formula) which can never be written directly.
// Symbol tables are only ever extended.
type SymbolTable struct {
	images  map[string]Kind
	symbols []symbol
}

// NewSymbolTable constructs an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{make(map[string]Kind), nil}
}

// GetOrAdd returns the kind associated with a given image, allocating a fresh
// kind when the image has not been seen before.
func (p *SymbolTable) GetOrAdd(image string) Kind {
	if kind, ok := p.images[image]; ok {
		return kind
	}
	//
	kind := Kind(len(p.symbols))
	p.symbols = append(p.symbols, symbol{image, false})
	p.images[image] = kind
	//
	return kind
}

// Reserved allocates a fresh kind which is not associated with any image, and
// hence cannot be produced from formula text.  An image can be given, though
// this is used only for diagnostics.
func (p *SymbolTable) Reserved(image ...string) Kind {
	var name string
	//
	kind := Kind(len(p.symbols))
	//
	if len(image) > 0 {
		name = image[0]
	} else {
		name = fmt.Sprintf("<reserved %d>", kind)
	}
	//
	p.symbols = append(p.symbols, symbol{name, true})
	//
	return kind
}

// Alias makes an additional image resolve to an existing (non-reserved) kind.
// The canonical image of that kind is unchanged.
func (p *SymbolTable) Alias(image string, kind Kind) error {
	if kind >= Kind(len(p.symbols)) || p.symbols[kind].reserved {
		return fmt.Errorf("cannot alias \"%s\" to unknown kind %d", image, kind)
	} else if k, ok := p.images[image]; ok && k != kind {
		return &OverrideError{"image", image, p.symbols[k].image, p.symbols[kind].image}
	}
	//
	p.images[image] = kind
	//
	return nil
}

// Lookup returns the kind associated with a given image, if it exists.
func (p *SymbolTable) Lookup(image string) (Kind, bool) {
	kind, ok := p.images[image]
	return kind, ok
}

// IsReserved determines whether a given kind was allocated as a reserved kind.
func (p *SymbolTable) IsReserved(kind Kind) bool {
	return kind < Kind(len(p.symbols)) && p.symbols[kind].reserved
}

// Image returns the (canonical) image of a given kind.
func (p *SymbolTable) Image(kind Kind) string {
	if kind >= Kind(len(p.symbols)) {
		panic(fmt.Sprintf("unknown kind %d", kind))
	}
	//
	return p.symbols[kind].image
}

// Images returns every image known to this table (including aliases), mapped
// to its kind.  Reserved kinds have no image and are not included.
func (p *SymbolTable) Images() map[string]Kind {
	images := make(map[string]Kind, len(p.images))
	//
	for k, v := range p.images {
		images[k] = v
	}
	//
	return images
}

// Size returns the number of kinds allocated so far.
func (p *SymbolTable) Size() uint {
	return uint(len(p.symbols))
}
