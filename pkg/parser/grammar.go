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
package parser

import (
	"fmt"
	"slices"

	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/operator"
	log "github.com/sirupsen/logrus"
)

// Kind is an alias for the kinds allocated by a grammar's symbol table.
type Kind = operator.Kind

// Images of the structural tokens every grammar knows about.
const (
	LPAR_IMAGE       = "("
	RPAR_IMAGE       = ")"
	COMMA_IMAGE      = ","
	DOT_IMAGE        = "·"
	MID_IMAGE        = "∣"
	TYPED_IMAGE      = "⦂"
	BECOMES_EQ_IMAGE = "≔"
	BECOMES_IN_IMAGE = ":∈"
	BECOMES_ST_IMAGE = ":∣"
	MINUS_IMAGE      = "−"
)

// printKey identifies which sub-parser prints a given formula.  This is
// normally determined by its tag alone, except that set comprehensions written
// as lambdas are printed differently.
type printKey struct {
	tag  ast.Tag
	form ast.QuantifiedForm
}

// binding associates a tag with the operator kind and sub-parser responsible
// for it.
type binding struct {
	kind   Kind
	parser SubParser
}

// Grammar determines the surface syntax of formulas.  A grammar is assembled
// once, by registering operators along with the sub-parsers responsible for
// them, and is then frozen.  A frozen grammar is never modified, and can be
// shared by any number of concurrent parse (or print) operations.
type Grammar struct {
	symbols  *operator.SymbolTable
	registry *operator.Registry
	// Prefix sub-parsers, indexed by kind
	nuds *operator.OnceMap[Kind, NudParser]
	// Infix (and postfix) sub-parsers, indexed by kind
	leds *operator.OnceMap[Kind, LedParser]
	// Printing sub-parsers, indexed by tag
	prints *operator.OnceMap[printKey, binding]
	// Closing brackets, indexed by the kind of the opening bracket
	closers *operator.OnceMap[Kind, Kind]
	// Extensions indexed by identifier, and by tag
	extensions *operator.OnceMap[string, *Extension]
	tags       map[ast.Tag]*Extension
	ids        map[string]ast.Tag
	nextTag    ast.Tag
	frozen     bool
	// Lexing rules, fixed once frozen
	lex *lexicon
	// Structural kinds
	EOF, NOOP, OPEN                    Kind
	LPAR, RPAR, COMMA, DOT, MID, TYPED Kind
	IDENT, INTLIT, PREDVAR, WHITESPACE Kind
	BECOMES_EQ, BECOMES_IN, BECOMES_ST Kind
}

// NewGrammar constructs a grammar holding only the structural vocabulary
// shared by every language: end-of-formula, brackets, commas, identifiers,
// integer literals, predicate variables and the assignment symbols.
func NewGrammar() *Grammar {
	g := &Grammar{
		symbols:    operator.NewSymbolTable(),
		registry:   operator.NewRegistry(),
		nuds:       operator.NewOnceMap[Kind, NudParser]("nud"),
		leds:       operator.NewOnceMap[Kind, LedParser]("led"),
		prints:     operator.NewOnceMap[printKey, binding]("tag"),
		closers:    operator.NewOnceMap[Kind, Kind]("close"),
		extensions: operator.NewOnceMap[string, *Extension]("extension"),
		tags:       make(map[ast.Tag]*Extension),
		ids:        make(map[string]ast.Tag),
		nextTag:    ast.FIRST_EXTENSION_TAG,
	}
	// Synthetic markers
	g.EOF = g.symbols.Reserved("end of formula")
	g.NOOP = g.symbols.Reserved("no operator")
	g.OPEN = g.symbols.Reserved("open")
	g.IDENT = g.symbols.Reserved("identifier")
	g.INTLIT = g.symbols.Reserved("integer literal")
	g.PREDVAR = g.symbols.Reserved("predicate variable")
	g.WHITESPACE = g.symbols.Reserved("whitespace")
	// Punctuation
	g.LPAR = g.symbols.GetOrAdd(LPAR_IMAGE)
	g.RPAR = g.symbols.GetOrAdd(RPAR_IMAGE)
	g.COMMA = g.symbols.GetOrAdd(COMMA_IMAGE)
	g.DOT = g.symbols.GetOrAdd(DOT_IMAGE)
	g.MID = g.symbols.GetOrAdd(MID_IMAGE)
	g.TYPED = g.symbols.GetOrAdd(TYPED_IMAGE)
	g.BECOMES_EQ = g.symbols.GetOrAdd(BECOMES_EQ_IMAGE)
	g.BECOMES_IN = g.symbols.GetOrAdd(BECOMES_IN_IMAGE)
	g.BECOMES_ST = g.symbols.GetOrAdd(BECOMES_ST_IMAGE)
	// Only the synthetic markers belong to GROUP0.
	g.must(g.registry.AddOperator(g.EOF, "EOF", operator.GROUP0))
	g.must(g.registry.AddOperator(g.NOOP, "NOOP", operator.GROUP0))
	g.must(g.registry.AddOperator(g.OPEN, "OPEN", operator.GROUP0))
	g.must(g.AddOpenClose(LPAR_IMAGE, RPAR_IMAGE))
	// Built-in sub-parsers
	g.must(g.nuds.Put(g.LPAR, parens))
	g.must(g.bindNud(g.IDENT, identifiers))
	g.must(g.bindNud(g.INTLIT, literals))
	g.must(g.bindNud(g.PREDVAR, predicateVariables))
	g.must(g.bindPrint(printKey{ast.BOUND_IDENT, ast.EXPLICIT}, g.IDENT, identifiers))
	//
	return g
}

// Alias makes an additional image denote the same token as an existing one.
// This is typically used for ASCII spellings of mathematical symbols.
func (g *Grammar) Alias(alias string, image string) error {
	if g.frozen {
		return &operator.FrozenError{Table: "symbol", Key: alias}
	}
	//
	kind, ok := g.symbols.Lookup(image)
	if !ok {
		return fmt.Errorf("cannot alias \"%s\" to unknown symbol \"%s\"", alias, image)
	}
	//
	log.Debugf("aliasing \"%s\" to \"%s\"", alias, image)
	//
	return g.symbols.Alias(alias, kind)
}

// AddNud registers a prefix operator with a given image and identifier,
// belonging to a given group.  The sub-parser is invoked whenever the image is
// encountered at the start of a formula.
func (g *Grammar) AddNud(image string, id string, group string, nud NudParser) error {
	kind, err := g.addOperator(image, id, group)
	//
	if err != nil {
		return err
	} else if err = g.nuds.Put(kind, nud); err != nil {
		return err
	}
	//
	log.Debugf("registered prefix operator %s \"%s\" in group %s", id, image, group)
	//
	return g.bindPrints(kind, nud)
}

// AddLed registers an infix (or postfix) operator with a given image and
// identifier, belonging to a given group.  The sub-parser is invoked whenever
// the image is encountered after an operand.
func (g *Grammar) AddLed(image string, id string, group string, led LedParser) error {
	kind, err := g.addOperator(image, id, group)
	//
	if err != nil {
		return err
	} else if err = g.leds.Put(kind, led); err != nil {
		return err
	}
	//
	log.Debugf("registered infix operator %s \"%s\" in group %s", id, image, group)
	//
	return g.bindPrints(kind, led)
}

// AddOverloadedNud registers a prefix operator on an image which also denotes
// an infix operator (e.g. unary minus).  Since the image's kind already
// identifies the infix operator, the prefix operator is allocated its own
// reserved kind, which it produces when parsed.
func (g *Grammar) AddOverloadedNud(image string, id string, group string, nud NudParser) error {
	if g.frozen {
		return &operator.FrozenError{Table: "nud", Key: image}
	}
	//
	var (
		token = g.symbols.GetOrAdd(image)
		kind  = g.symbols.Reserved(image)
	)
	//
	if err := g.registry.AddOperator(kind, id, group); err != nil {
		return err
	} else if err := g.nuds.Put(token, nud); err != nil {
		return err
	}
	//
	log.Debugf("registered overloaded prefix operator %s \"%s\" in group %s", id, image, group)
	//
	return g.bindPrints(kind, nud)
}

// AddOpenClose registers a pair of brackets.  Sub-parsers opening a bracket
// use this to determine which token closes it.
func (g *Grammar) AddOpenClose(open string, close string) error {
	if g.frozen {
		return &operator.FrozenError{Table: "close", Key: open}
	}
	//
	return g.closers.Put(g.symbols.GetOrAdd(open), g.symbols.GetOrAdd(close))
}

// AddCompatibility records that the left operator can be directly followed by
// the right operator, for the given versions (or all versions if none are
// given).
func (g *Grammar) AddCompatibility(leftID string, rightID string, versions ...operator.Version) error {
	return g.registry.AddCompatibility(leftID, rightID, versions...)
}

// AddPriority records that the high operator binds tighter than the low one.
func (g *Grammar) AddPriority(lowID string, highID string) error {
	return g.registry.AddPriority(lowID, highID)
}

// AddGroupPriority records that every operator of the high group binds tighter
// than every operator of the low group.
func (g *Grammar) AddGroupPriority(lowID string, highID string) error {
	return g.registry.AddGroupPriority(lowID, highID)
}

// AddAssociative records that an operator is compatible with itself, such that
// chains of it can be written without parentheses.
func (g *Grammar) AddAssociative(id string) error {
	if err := g.registry.AddCompatibility(id, id); err != nil {
		return err
	}
	//
	kind, _ := g.registry.Kind(id)
	//
	for _, v := range operator.VERSIONS {
		if !g.registry.IsCompatible(kind, kind, v) {
			return fmt.Errorf("operator %s is not self-compatible in %s", id, v)
		}
	}
	//
	return nil
}

// AddExtension registers an operator described by an extension, allocating a
// fresh tag for it.  When this fails, the grammar is left unchanged.
func (g *Grammar) AddExtension(ext *Extension) (ast.Tag, error) {
	tags, err := g.AddExtensions(ext)
	//
	if err != nil {
		return ast.NO_TAG, err
	}
	//
	return tags[0], nil
}

// AddExtensions registers a set of extensions together, returning the tag
// allocated to each.  Either all of them are registered, or (when any of them
// is rejected) none is and the grammar is left unchanged.  Extensions already
// registered with this grammar are skipped.
func (g *Grammar) AddExtensions(exts ...*Extension) ([]ast.Tag, error) {
	if err := g.checkExtensions(exts); err != nil {
		return nil, err
	}
	//
	var tags = make([]ast.Tag, len(exts))
	//
	for i, ext := range exts {
		tag, err := g.addExtension(ext)
		// Cannot fail, since the extensions were checked.
		g.must(err)
		//
		tags[i] = tag
	}
	//
	return tags, nil
}

func (g *Grammar) addExtension(ext *Extension) (ast.Tag, error) {
	if e, ok := g.extensions.Get(ext.ID); ok && e == ext {
		// Re-registering the same extension has no effect.
		return g.ids[ext.ID], nil
	}
	//
	var (
		tag = g.nextTag
		sp  = extensionParser{ext, tag}
		err error
	)
	// Register the operator itself
	switch ext.Shape {
	case ATOMIC, PARENTHESIZED:
		err = g.AddNud(ext.Syntax, ext.ID, ext.Group, sp)
	default:
		err = g.AddLed(ext.Syntax, ext.ID, ext.Group, sp)
	}
	//
	if err != nil {
		return ast.NO_TAG, err
	} else if err = relate(g.registry, g.symbols.GetOrAdd(ext.Syntax), ext); err != nil {
		return ast.NO_TAG, err
	} else if err = g.extensions.Put(ext.ID, ext); err != nil {
		return ast.NO_TAG, err
	}
	//
	g.ids[ext.ID] = tag
	g.tags[tag] = ext
	g.nextTag++
	//
	log.Debugf("registered extension %s as %s", ext.ID, tag)
	//
	return tag, nil
}

// checkExtensions determines whether a set of extensions can be registered
// together, without changing this grammar.  Their relationships are applied
// to a copy of the operator registry.
func (g *Grammar) checkExtensions(exts []*Extension) error {
	var (
		registry = g.registry.Clone()
		ids      = make(map[string]*Extension)
		images   = make(map[string]Kind)
		nuds     = make(map[Kind]bool)
		leds     = make(map[Kind]bool)
		next     = g.symbols.Size()
	)
	//
	if g.frozen && len(exts) > 0 {
		return &operator.FrozenError{Table: "extension", Key: exts[0].ID}
	}
	//
	for _, ext := range exts {
		if err := ext.validate(); err != nil {
			return err
		} else if e, ok := g.extensions.Get(ext.ID); ok && e == ext {
			continue
		} else if ok {
			return &operator.OverrideError{Table: "extension", Key: ext.ID, Existing: e.Syntax, Rejected: ext.Syntax}
		} else if e, ok := ids[ext.ID]; ok && e == ext {
			continue
		} else if ok {
			return &operator.OverrideError{Table: "extension", Key: ext.ID, Existing: e.Syntax, Rejected: ext.Syntax}
		}
		//
		ids[ext.ID] = ext
		// Determine the kind the image has, or will be given
		kind, ok := g.symbols.Lookup(ext.Syntax)
		if !ok {
			if kind, ok = images[ext.Syntax]; !ok {
				kind, next = next, next+1
				images[ext.Syntax] = kind
			}
		}
		// Check the image is not already parsed in the same position
		existing, _ := registry.ID(kind)
		//
		switch {
		case ext.Shape == ATOMIC || ext.Shape == PARENTHESIZED:
			if g.nuds.Has(kind) || nuds[kind] {
				return &operator.OverrideError{Table: "nud", Key: ext.Syntax, Existing: existing, Rejected: ext.ID}
			}
			//
			nuds[kind] = true
		default:
			if g.leds.Has(kind) || leds[kind] {
				return &operator.OverrideError{Table: "led", Key: ext.Syntax, Existing: existing, Rejected: ext.ID}
			}
			//
			leds[kind] = true
		}
		//
		if err := relate(registry, kind, ext); err != nil {
			return err
		}
	}
	//
	return nil
}

// relate registers an extension's operator with a registry, along with its
// relationships to other operators.
func relate(registry *operator.Registry, kind Kind, ext *Extension) error {
	err := registry.AddOperator(kind, ext.ID, ext.Group)
	//
	if err == nil && ext.Shape == ASSOCIATIVE_INFIX {
		err = registry.AddCompatibility(ext.ID, ext.ID)
	}
	//
	for i := 0; err == nil && i < len(ext.Compatibilities); i++ {
		err = registry.AddCompatibility(ext.Compatibilities[i].Left, ext.Compatibilities[i].Right)
	}
	//
	for i := 0; err == nil && i < len(ext.Priorities); i++ {
		err = registry.AddPriority(ext.Priorities[i].Left, ext.Priorities[i].Right)
	}
	//
	for i := 0; err == nil && i < len(ext.GroupPriorities); i++ {
		err = registry.AddGroupPriority(ext.GroupPriorities[i].Left, ext.GroupPriorities[i].Right)
	}
	//
	return err
}

// Extension returns the extension registered with a given identifier.
func (g *Grammar) Extension(id string) (*Extension, bool) {
	return g.extensions.Get(id)
}

// TagOf returns the tag allocated to the extension with a given identifier.
func (g *Grammar) TagOf(id string) (ast.Tag, bool) {
	tag, ok := g.ids[id]
	return tag, ok
}

// ExtensionOf returns the extension which was allocated a given tag.
func (g *Grammar) ExtensionOf(tag ast.Tag) (*Extension, bool) {
	ext, ok := g.tags[tag]
	return ext, ok
}

// Extensions returns the registered extensions, in order of registration.
func (g *Grammar) Extensions() []*Extension {
	var exts []*Extension
	//
	for tag := ast.FIRST_EXTENSION_TAG; tag < g.nextTag; tag++ {
		exts = append(exts, g.tags[tag])
	}
	//
	return exts
}

// Freeze prevents any further modification of this grammar.
func (g *Grammar) Freeze() {
	g.frozen = true
	g.lex = g.lexicon()
	g.registry.Freeze()
	g.nuds.Freeze()
	g.leds.Freeze()
	g.prints.Freeze()
	g.closers.Freeze()
	g.extensions.Freeze()
}

// IsFrozen checks whether this grammar was frozen.
func (g *Grammar) IsFrozen() bool {
	return g.frozen
}

// IsOperator determines whether a given kind is an operator, as opposed to a
// non-operator token (such as an identifier) or a synthetic marker.
func (g *Grammar) IsOperator(kind Kind) bool {
	group, ok := g.registry.GroupOf(kind)
	return ok && group.ID() != operator.GROUP0
}

// Relationship determines how the left operator relates to the right operator
// for a given language version.  Kinds which are not operators are treated as
// the no-operator marker.
func (g *Grammar) Relationship(left Kind, right Kind, v operator.Version) operator.Relationship {
	if !g.registry.HasGroup(left) {
		left = g.NOOP
	}
	//
	if !g.registry.HasGroup(right) {
		right = g.NOOP
	}
	//
	return g.registry.Relationship(left, right, v)
}

// IsCompatible determines whether the left operator can be directly followed
// by the right operator.  Unlike Relationship, operators related by priority
// are considered compatible.
func (g *Grammar) IsCompatible(left Kind, right Kind, v operator.Version) bool {
	return g.registry.IsCompatible(left, right, v)
}

// NeedsParentheses determines whether a formula with the child tag must be
// parenthesized when it occurs as an operand of a formula with the parent tag.
// Tags not bound to an operator never need parentheses.
func (g *Grammar) NeedsParentheses(isRightChild bool, childTag ast.Tag, parentTag ast.Tag,
	v operator.Version) bool {
	child, ok1 := g.prints.Get(printKey{childTag, ast.EXPLICIT})
	parent, ok2 := g.prints.Get(printKey{parentTag, ast.EXPLICIT})
	//
	if !ok1 || !ok2 {
		return false
	}
	//
	return g.needsParentheses(isRightChild, child.kind, parent.kind, v)
}

func (g *Grammar) needsParentheses(isRightChild bool, child Kind, parent Kind, v operator.Version) bool {
	if !g.IsOperator(child) || !g.IsOperator(parent) {
		return false
	}
	//
	switch g.registry.Relationship(parent, child, v) {
	case operator.LEFT_PRIORITY, operator.INCOMPATIBLE:
		return true
	case operator.COMPATIBLE:
		// Compatible operators associate to the left
		return isRightChild
	default:
		return false
	}
}

// Image returns the canonical image of a given kind.
func (g *Grammar) Image(kind Kind) string {
	return g.symbols.Image(kind)
}

// Kind returns the kind of a given operator identifier.
func (g *Grammar) Kind(id string) (Kind, bool) {
	return g.registry.Kind(id)
}

// Groups returns the operator groups of this grammar, lowest first.
func (g *Grammar) Groups() []*operator.Group {
	return g.registry.Groups()
}

// OperatorID returns the identifier of a given operator kind.
func (g *Grammar) OperatorID(kind Kind) string {
	id, _ := g.registry.ID(kind)
	return id
}

// Keywords returns the images of this grammar which look like identifiers
// (e.g. "card"), sorted alphabetically.
func (g *Grammar) Keywords() []string {
	var keywords []string
	//
	for image := range g.symbols.Images() {
		if isKeyword(image) {
			keywords = append(keywords, image)
		}
	}
	//
	slices.Sort(keywords)
	//
	return keywords
}

func (g *Grammar) addOperator(image string, id string, group string) (Kind, error) {
	if g.frozen {
		return 0, &operator.FrozenError{Table: "operator", Key: id}
	}
	//
	kind := g.symbols.GetOrAdd(image)
	//
	return kind, g.registry.AddOperator(kind, id, group)
}

func (g *Grammar) bindNud(kind Kind, nud NudParser) error {
	if err := g.nuds.Put(kind, nud); err != nil {
		return err
	}
	//
	return g.bindPrints(kind, nud)
}

func (g *Grammar) bindPrints(kind Kind, sp SubParser) error {
	for _, key := range keysOf(sp) {
		if err := g.bindPrint(key, kind, sp); err != nil {
			return err
		}
	}
	//
	return nil
}

func (g *Grammar) bindPrint(key printKey, kind Kind, sp SubParser) error {
	if key.tag == ast.NO_TAG {
		return nil
	}
	//
	return g.prints.Put(key, binding{kind, sp})
}

// kindOf returns the operator kind responsible for a given sub-parser.
func (g *Grammar) kindOf(sp SubParser) Kind {
	if b, ok := g.prints.Get(keysOf(sp)[0]); ok {
		return b.kind
	}
	//
	return g.NOOP
}

func (g *Grammar) closer(open Kind) (Kind, bool) {
	return g.closers.Get(open)
}

func (g *Grammar) must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

// keysOf determines the print keys of a sub-parser.
func keysOf(sp SubParser) []printKey {
	switch sp := sp.(type) {
	case lambdaParser:
		return []printKey{{ast.CSET, ast.LAMBDA}}
	case multiTagged:
		var keys []printKey
		//
		for _, tag := range sp.tags() {
			keys = append(keys, printKey{tag, ast.EXPLICIT})
		}
		//
		return keys
	}
	//
	return []printKey{{sp.Tag(), ast.EXPLICIT}}
}

// formulaKey determines the print key of a formula.
func formulaKey(f ast.Formula) printKey {
	if q, ok := f.(*ast.QuantifiedExpression); ok && q.Form == ast.LAMBDA {
		return printKey{ast.CSET, ast.LAMBDA}
	}
	//
	return printKey{f.Tag(), ast.EXPLICIT}
}
