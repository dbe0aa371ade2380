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
package language

import (
	"github.com/consensys/go-eventb/pkg/ast"
	"github.com/consensys/go-eventb/pkg/operator"
	"github.com/consensys/go-eventb/pkg/parser"
	log "github.com/sirupsen/logrus"
)

// Versions of the mathematical language.
const (
	V1 = operator.V1
	V2 = operator.V2
)

// Operator groups of the mathematical language, from lowest to highest.
const (
	QUANTIFICATION = "quantification"
	LOGIC          = "logic"
	RELATIONAL     = "relational"
	PAIR           = "pair"
	RELATION       = "relation"
	BINOP          = "binop"
	INTERVAL       = "interval"
	ARITHMETIC     = "arithmetic"
	FUNCTIONAL     = "functional"
	TYPED          = "typed"
	// CLOSED holds atoms and self-delimiting forms.  Extensions of atomic or
	// parenthesized shape normally belong here.
	CLOSED = "closed"
)

// GROUPS lists the groups of the mathematical language in priority order.
var GROUPS = []string{QUANTIFICATION, LOGIC, RELATIONAL, PAIR, RELATION, BINOP, INTERVAL, ARITHMETIC,
	FUNCTIONAL, TYPED, CLOSED}

// Images of the operators without a standard Unicode symbol, taken from the
// private use area.
const (
	TREL_IMAGE  = "\uE100"
	SREL_IMAGE  = "\uE101"
	STREL_IMAGE = "\uE102"
	OVR_IMAGE   = "\uE103"
)

type operatorDef struct {
	image string
	tag   ast.Tag
	group string
	nud   parser.NudParser
	led   parser.LedParser
}

func nud(image string, tag ast.Tag, group string, p parser.NudParser) operatorDef {
	return operatorDef{image, tag, group, p, nil}
}

func led(image string, tag ast.Tag, group string, p parser.LedParser) operatorDef {
	return operatorDef{image, tag, group, nil, p}
}

// Operators are registered in this order, which matters only for overloaded
// images (the infix minus must exist before the prefix one).
var operators = []operatorDef{
	// Quantification
	nud("∀", ast.FORALL, QUANTIFICATION, parser.QuantifiedPredicate(ast.FORALL)),
	nud("∃", ast.EXISTS, QUANTIFICATION, parser.QuantifiedPredicate(ast.EXISTS)),
	nud("⋃", ast.QUNION, QUANTIFICATION, parser.QuantifiedExpression(ast.QUNION)),
	nud("⋂", ast.QINTER, QUANTIFICATION, parser.QuantifiedExpression(ast.QINTER)),
	nud("λ", ast.CSET, QUANTIFICATION, parser.Lambda()),
	// Logic
	led("⇒", ast.LIMP, LOGIC, parser.Binary(ast.LIMP)),
	led("⇔", ast.LEQV, LOGIC, parser.Binary(ast.LEQV)),
	led("∧", ast.LAND, LOGIC, parser.Associative(ast.LAND)),
	led("∨", ast.LOR, LOGIC, parser.Associative(ast.LOR)),
	nud("¬", ast.NOT, LOGIC, parser.Prefix(ast.NOT)),
	// Relational predicates
	led("=", ast.EQUAL, RELATIONAL, parser.Binary(ast.EQUAL)),
	led("≠", ast.NOTEQUAL, RELATIONAL, parser.Binary(ast.NOTEQUAL)),
	led("<", ast.LT, RELATIONAL, parser.Binary(ast.LT)),
	led("≤", ast.LE, RELATIONAL, parser.Binary(ast.LE)),
	led(">", ast.GT, RELATIONAL, parser.Binary(ast.GT)),
	led("≥", ast.GE, RELATIONAL, parser.Binary(ast.GE)),
	led("∈", ast.IN, RELATIONAL, parser.Binary(ast.IN)),
	led("∉", ast.NOTIN, RELATIONAL, parser.Binary(ast.NOTIN)),
	led("⊂", ast.SUBSET, RELATIONAL, parser.Binary(ast.SUBSET)),
	led("⊄", ast.NOTSUBSET, RELATIONAL, parser.Binary(ast.NOTSUBSET)),
	led("⊆", ast.SUBSETEQ, RELATIONAL, parser.Binary(ast.SUBSETEQ)),
	led("⊈", ast.NOTSUBSETEQ, RELATIONAL, parser.Binary(ast.NOTSUBSETEQ)),
	// Pairs
	led("↦", ast.MAPSTO, PAIR, parser.Binary(ast.MAPSTO)),
	// Relation sets
	led("↔", ast.REL, RELATION, parser.Binary(ast.REL)),
	led(TREL_IMAGE, ast.TREL, RELATION, parser.Binary(ast.TREL)),
	led(SREL_IMAGE, ast.SREL, RELATION, parser.Binary(ast.SREL)),
	led(STREL_IMAGE, ast.STREL, RELATION, parser.Binary(ast.STREL)),
	led("⇸", ast.PFUN, RELATION, parser.Binary(ast.PFUN)),
	led("→", ast.TFUN, RELATION, parser.Binary(ast.TFUN)),
	led("⤔", ast.PINJ, RELATION, parser.Binary(ast.PINJ)),
	led("↣", ast.TINJ, RELATION, parser.Binary(ast.TINJ)),
	led("⤀", ast.PSUR, RELATION, parser.Binary(ast.PSUR)),
	led("↠", ast.TSUR, RELATION, parser.Binary(ast.TSUR)),
	led("⤖", ast.TBIJ, RELATION, parser.Binary(ast.TBIJ)),
	// Set and relation operators
	led("∪", ast.BUNION, BINOP, parser.Associative(ast.BUNION)),
	led("∩", ast.BINTER, BINOP, parser.Associative(ast.BINTER)),
	led("∖", ast.SETMINUS, BINOP, parser.Binary(ast.SETMINUS)),
	led("×", ast.CPROD, BINOP, parser.Binary(ast.CPROD)),
	led("◁", ast.DOMRES, BINOP, parser.Binary(ast.DOMRES)),
	led("⩤", ast.DOMSUB, BINOP, parser.Binary(ast.DOMSUB)),
	led("▷", ast.RANRES, BINOP, parser.Binary(ast.RANRES)),
	led("⩥", ast.RANSUB, BINOP, parser.Binary(ast.RANSUB)),
	led("∘", ast.BCOMP, BINOP, parser.Associative(ast.BCOMP)),
	led(";", ast.FCOMP, BINOP, parser.Associative(ast.FCOMP)),
	led(OVR_IMAGE, ast.OVR, BINOP, parser.Associative(ast.OVR)),
	led("⊗", ast.DPROD, BINOP, parser.Binary(ast.DPROD)),
	led("∥", ast.PPROD, BINOP, parser.Binary(ast.PPROD)),
	// Intervals
	led("‥", ast.UPTO, INTERVAL, parser.Binary(ast.UPTO)),
	// Arithmetic
	led("+", ast.PLUS, ARITHMETIC, parser.Associative(ast.PLUS)),
	led(parser.MINUS_IMAGE, ast.MINUS, ARITHMETIC, parser.Binary(ast.MINUS)),
	led("∗", ast.MUL, ARITHMETIC, parser.Associative(ast.MUL)),
	led("÷", ast.DIV, ARITHMETIC, parser.Binary(ast.DIV)),
	led("mod", ast.MOD, ARITHMETIC, parser.Binary(ast.MOD)),
	nud(parser.MINUS_IMAGE, ast.UNMINUS, ARITHMETIC, parser.Prefix(ast.UNMINUS)),
	led("^", ast.EXPN, ARITHMETIC, parser.Binary(ast.EXPN)),
	// Function application, relational image and converse
	led(parser.LPAR_IMAGE, ast.FUNIMAGE, FUNCTIONAL, parser.Image(ast.FUNIMAGE)),
	led("[", ast.RELIMAGE, FUNCTIONAL, parser.Image(ast.RELIMAGE)),
	led("∼", ast.CONVERSE, FUNCTIONAL, parser.Postfix(ast.CONVERSE)),
	// Type annotations
	led(parser.TYPED_IMAGE, ast.NO_TAG, TYPED, parser.TypeAnnotation()),
	// Set forms
	nud("{", ast.SETEXT, CLOSED, parser.SetForms()),
	// Atoms
	nud("⊤", ast.BTRUE, CLOSED, parser.Atomic(ast.BTRUE)),
	nud("⊥", ast.BFALSE, CLOSED, parser.Atomic(ast.BFALSE)),
	nud("ℤ", ast.INTEGER, CLOSED, parser.Atomic(ast.INTEGER)),
	nud("ℕ", ast.NATURAL, CLOSED, parser.Atomic(ast.NATURAL)),
	nud("ℕ1", ast.NATURAL1, CLOSED, parser.Atomic(ast.NATURAL1)),
	nud("BOOL", ast.BOOL, CLOSED, parser.Atomic(ast.BOOL)),
	nud("TRUE", ast.TRUE, CLOSED, parser.Atomic(ast.TRUE)),
	nud("FALSE", ast.FALSE, CLOSED, parser.Atomic(ast.FALSE)),
	nud("∅", ast.EMPTYSET, CLOSED, parser.Atomic(ast.EMPTYSET)),
	nud("pred", ast.KPRED, CLOSED, parser.Atomic(ast.KPRED)),
	nud("succ", ast.KSUCC, CLOSED, parser.Atomic(ast.KSUCC)),
	nud("prj1", ast.KPRJ1, CLOSED, parser.Atomic(ast.KPRJ1)),
	nud("prj2", ast.KPRJ2, CLOSED, parser.Atomic(ast.KPRJ2)),
	nud("id", ast.KID, CLOSED, parser.Atomic(ast.KID)),
	// Function-like keywords
	nud("card", ast.KCARD, CLOSED, parser.Call(ast.KCARD)),
	nud("ℙ", ast.POW, CLOSED, parser.Call(ast.POW)),
	nud("ℙ1", ast.POW1, CLOSED, parser.Call(ast.POW1)),
	nud("union", ast.KUNION, CLOSED, parser.Call(ast.KUNION)),
	nud("inter", ast.KINTER, CLOSED, parser.Call(ast.KINTER)),
	nud("dom", ast.KDOM, CLOSED, parser.Call(ast.KDOM)),
	nud("ran", ast.KRAN, CLOSED, parser.Call(ast.KRAN)),
	nud("min", ast.KMIN, CLOSED, parser.Call(ast.KMIN)),
	nud("max", ast.KMAX, CLOSED, parser.Call(ast.KMAX)),
	nud("bool", ast.KBOOL, CLOSED, parser.Call(ast.KBOOL)),
	nud("finite", ast.KFINITE, CLOSED, parser.Call(ast.KFINITE)),
	nud("partition", ast.KPARTITION, CLOSED, parser.Call(ast.KPARTITION)),
}

// Operators which can be chained with themselves, in every version.
var associative = []ast.Tag{ast.LAND, ast.LOR, ast.BUNION, ast.BINTER, ast.BCOMP, ast.FCOMP, ast.OVR,
	ast.PLUS, ast.MUL}

// Operators which can be chained with each other (in either order).  An
// operator paired with itself is self-compatible, but not necessarily
// associative (e.g. "a−b−c" means "(a−b)−c").
var compatibilities = [][2]ast.Tag{
	// Logic
	{ast.NOT, ast.NOT},
	// Pairs
	{ast.MAPSTO, ast.MAPSTO},
	// Set and relation operators
	{ast.CPROD, ast.CPROD},
	{ast.BINTER, ast.SETMINUS},
	{ast.BINTER, ast.RANRES},
	{ast.BINTER, ast.RANSUB},
	{ast.FCOMP, ast.RANRES},
	{ast.FCOMP, ast.RANSUB},
	{ast.DOMRES, ast.BINTER},
	{ast.DOMSUB, ast.BINTER},
	{ast.DOMRES, ast.FCOMP},
	{ast.DOMSUB, ast.FCOMP},
	// Arithmetic
	{ast.PLUS, ast.MINUS},
	{ast.MINUS, ast.MINUS},
	{ast.MUL, ast.DIV},
	{ast.MUL, ast.MOD},
	{ast.DIV, ast.DIV},
	{ast.DIV, ast.MOD},
	{ast.MOD, ast.MOD},
	// Functional
	{ast.FUNIMAGE, ast.FUNIMAGE},
	{ast.FUNIMAGE, ast.RELIMAGE},
	{ast.FUNIMAGE, ast.CONVERSE},
	{ast.RELIMAGE, ast.RELIMAGE},
	{ast.RELIMAGE, ast.CONVERSE},
	{ast.CONVERSE, ast.CONVERSE},
}

// Operators which chain with each other in the first version of the language
// only.
var relations = []ast.Tag{ast.REL, ast.TREL, ast.SREL, ast.STREL, ast.PFUN, ast.TFUN, ast.PINJ, ast.TINJ,
	ast.PSUR, ast.TSUR, ast.TBIJ}

// Intra-group priorities, given as (low, high) pairs.
var priorities = [][2]ast.Tag{
	// Logic
	{ast.LIMP, ast.LAND},
	{ast.LIMP, ast.LOR},
	{ast.LEQV, ast.LAND},
	{ast.LEQV, ast.LOR},
	{ast.LAND, ast.NOT},
	{ast.LOR, ast.NOT},
	// Arithmetic
	{ast.PLUS, ast.MUL},
	{ast.PLUS, ast.DIV},
	{ast.PLUS, ast.MOD},
	{ast.MINUS, ast.MUL},
	{ast.MINUS, ast.DIV},
	{ast.MINUS, ast.MOD},
	{ast.MUL, ast.UNMINUS},
	{ast.DIV, ast.UNMINUS},
	{ast.MOD, ast.UNMINUS},
	{ast.UNMINUS, ast.EXPN},
}

// ASCII spellings of the mathematical symbols.
var aliases = [][2]string{
	{"!", "∀"}, {"#", "∃"}, {"UNION", "⋃"}, {"INTER", "⋂"}, {"%", "λ"},
	{"=>", "⇒"}, {"<=>", "⇔"}, {"&", "∧"}, {"or", "∨"}, {"not", "¬"},
	{"/=", "≠"}, {"<=", "≤"}, {">=", "≥"}, {":", "∈"}, {"/:", "∉"},
	{"<<:", "⊂"}, {"/<<:", "⊄"}, {"<:", "⊆"}, {"/<:", "⊈"},
	{"|->", "↦"},
	{"<->", "↔"}, {"<<->", TREL_IMAGE}, {"<->>", SREL_IMAGE}, {"<<->>", STREL_IMAGE},
	{"+->", "⇸"}, {"-->", "→"}, {">+>", "⤔"}, {">->", "↣"}, {"+->>", "⤀"}, {"-->>", "↠"}, {">->>", "⤖"},
	{"\\/", "∪"}, {"/\\", "∩"}, {"\\", "∖"}, {"**", "×"},
	{"<|", "◁"}, {"<<|", "⩤"}, {"|>", "▷"}, {"|>>", "⩥"},
	{"circ", "∘"}, {"<+", OVR_IMAGE}, {"><", "⊗"}, {"||", "∥"},
	{"..", "‥"}, {"-", parser.MINUS_IMAGE}, {"*", "∗"}, {"/", "÷"}, {"~", "∼"},
	{"true", "⊤"}, {"false", "⊥"},
	{"INT", "ℤ"}, {"NAT", "ℕ"}, {"NAT1", "ℕ1"}, {"POW", "ℙ"}, {"POW1", "ℙ1"},
	{".", parser.DOT_IMAGE}, {"|", parser.MID_IMAGE}, {"oftype", parser.TYPED_IMAGE},
	{":=", parser.BECOMES_EQ_IMAGE}, {"::", parser.BECOMES_IN_IMAGE}, {":|", parser.BECOMES_ST_IMAGE},
}

// New constructs the grammar of the mathematical language, extended with
// zero or more extensions.  The grammar is frozen before being returned.
func New(exts ...*parser.Extension) (*parser.Grammar, error) {
	g := parser.NewGrammar()
	//
	if err := Declare(g); err != nil {
		return nil, err
	}
	//
	if _, err := g.AddExtensions(exts...); err != nil {
		return nil, err
	}
	//
	g.Freeze()
	//
	return g, nil
}

// Declare adds the operators of the mathematical language to a given grammar,
// which must not yet be frozen.
func Declare(g *parser.Grammar) error {
	var b = builder{grammar: g}
	//
	for _, op := range operators {
		b.add(op)
	}
	//
	for _, tag := range associative {
		b.err = b.then(g.AddAssociative(ID(tag)))
	}
	//
	for _, pair := range compatibilities {
		b.compatible(pair[0], pair[1])
	}
	//
	for _, l := range relations {
		for _, r := range relations {
			b.compatible(l, r, V1)
		}
	}
	//
	for _, pair := range priorities {
		b.err = b.then(g.AddPriority(ID(pair[0]), ID(pair[1])))
	}
	//
	for i := 1; i < len(GROUPS); i++ {
		b.err = b.then(g.AddGroupPriority(GROUPS[i-1], GROUPS[i]))
	}
	//
	b.err = b.then(g.AddOpenClose("[", "]"))
	b.err = b.then(g.AddOpenClose("{", "}"))
	//
	for _, alias := range aliases {
		b.err = b.then(g.Alias(alias[0], alias[1]))
	}
	//
	if b.err == nil {
		log.Debugf("declared %d operators in %d groups", len(operators), len(GROUPS))
	}
	//
	return b.err
}

// ID returns the operator identifier under which the operator responsible for
// a given tag is registered.  Type annotations, which have no tag, are
// registered as "TYPED".
func ID(tag ast.Tag) string {
	if tag == ast.NO_TAG {
		return "TYPED"
	}
	//
	return tag.String()
}

// builder registers operators one after the other, stopping at the first
// error.
type builder struct {
	grammar *parser.Grammar
	err     error
}

func (b *builder) then(err error) error {
	if b.err != nil {
		return b.err
	}
	//
	return err
}

func (b *builder) add(op operatorDef) {
	if b.err != nil {
		return
	}
	//
	switch {
	case op.led != nil:
		b.err = b.grammar.AddLed(op.image, ID(op.tag), op.group, op.led)
	case op.tag == ast.UNMINUS:
		b.err = b.grammar.AddOverloadedNud(op.image, ID(op.tag), op.group, op.nud)
	default:
		b.err = b.grammar.AddNud(op.image, ID(op.tag), op.group, op.nud)
	}
}

// compatible records that two operators can follow each other in either
// order.
func (b *builder) compatible(left, right ast.Tag, versions ...operator.Version) {
	b.err = b.then(b.grammar.AddCompatibility(ID(left), ID(right), versions...))
	//
	if left != right {
		b.err = b.then(b.grammar.AddCompatibility(ID(right), ID(left), versions...))
	}
}
