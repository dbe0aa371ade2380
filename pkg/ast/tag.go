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
package ast

import "fmt"

// Tag discriminates the different shapes of formula.
type Tag uint

// nolint
const (
	NO_TAG Tag = iota
	// Identifiers and literals
	FREE_IDENT
	BOUND_IDENT_DECL
	BOUND_IDENT
	INTLIT
	SETEXT
	PREDICATE_VARIABLE
	// Binary expressions
	FUNIMAGE
	RELIMAGE
	MAPSTO
	REL
	TREL
	SREL
	STREL
	PFUN
	TFUN
	PINJ
	TINJ
	PSUR
	TSUR
	TBIJ
	SETMINUS
	CPROD
	DPROD
	PPROD
	DOMRES
	DOMSUB
	RANRES
	RANSUB
	UPTO
	MINUS
	DIV
	MOD
	EXPN
	// Associative expressions
	BUNION
	BINTER
	BCOMP
	FCOMP
	OVR
	PLUS
	MUL
	// Atomic expressions
	INTEGER
	NATURAL
	NATURAL1
	BOOL
	TRUE
	FALSE
	EMPTYSET
	KPRED
	KSUCC
	KPRJ1
	KPRJ2
	KID
	// Unary expressions
	KCARD
	POW
	POW1
	KUNION
	KINTER
	KDOM
	KRAN
	KMIN
	KMAX
	CONVERSE
	UNMINUS
	KBOOL
	// Quantified expressions
	QUNION
	QINTER
	CSET
	// Predicates
	BTRUE
	BFALSE
	LIMP
	LEQV
	LAND
	LOR
	NOT
	FORALL
	EXISTS
	EQUAL
	NOTEQUAL
	LT
	LE
	GT
	GE
	IN
	NOTIN
	SUBSET
	NOTSUBSET
	SUBSETEQ
	NOTSUBSETEQ
	KFINITE
	KPARTITION
	// Assignments
	BECOMES_EQUAL_TO
	BECOMES_MEMBER_OF
	BECOMES_SUCH_THAT
)

// FIRST_EXTENSION_TAG is the first tag allocated to operators contributed by
// extensions.  Every tag from here onwards is an extension tag.
const FIRST_EXTENSION_TAG Tag = 1000

var tagNames = map[Tag]string{
	FREE_IDENT: "FREE_IDENT", BOUND_IDENT_DECL: "BOUND_IDENT_DECL", BOUND_IDENT: "BOUND_IDENT",
	INTLIT: "INTLIT", SETEXT: "SETEXT", PREDICATE_VARIABLE: "PREDICATE_VARIABLE",
	FUNIMAGE: "FUNIMAGE", RELIMAGE: "RELIMAGE", MAPSTO: "MAPSTO", REL: "REL", TREL: "TREL", SREL: "SREL",
	STREL: "STREL", PFUN: "PFUN", TFUN: "TFUN", PINJ: "PINJ", TINJ: "TINJ", PSUR: "PSUR", TSUR: "TSUR",
	TBIJ: "TBIJ", SETMINUS: "SETMINUS", CPROD: "CPROD", DPROD: "DPROD", PPROD: "PPROD", DOMRES: "DOMRES",
	DOMSUB: "DOMSUB", RANRES: "RANRES", RANSUB: "RANSUB", UPTO: "UPTO", MINUS: "MINUS", DIV: "DIV",
	MOD: "MOD", EXPN: "EXPN", BUNION: "BUNION", BINTER: "BINTER", BCOMP: "BCOMP", FCOMP: "FCOMP",
	OVR: "OVR", PLUS: "PLUS", MUL: "MUL", INTEGER: "INTEGER", NATURAL: "NATURAL", NATURAL1: "NATURAL1",
	BOOL: "BOOL", TRUE: "TRUE", FALSE: "FALSE", EMPTYSET: "EMPTYSET", KPRED: "KPRED", KSUCC: "KSUCC",
	KPRJ1: "KPRJ1", KPRJ2: "KPRJ2", KID: "KID", KCARD: "KCARD", POW: "POW", POW1: "POW1",
	KUNION: "KUNION", KINTER: "KINTER", KDOM: "KDOM", KRAN: "KRAN", KMIN: "KMIN", KMAX: "KMAX",
	CONVERSE: "CONVERSE", UNMINUS: "UNMINUS", KBOOL: "KBOOL", QUNION: "QUNION", QINTER: "QINTER",
	CSET: "CSET", BTRUE: "BTRUE", BFALSE: "BFALSE", LIMP: "LIMP", LEQV: "LEQV", LAND: "LAND", LOR: "LOR",
	NOT: "NOT", FORALL: "FORALL", EXISTS: "EXISTS", EQUAL: "EQUAL", NOTEQUAL: "NOTEQUAL", LT: "LT",
	LE: "LE", GT: "GT", GE: "GE", IN: "IN", NOTIN: "NOTIN", SUBSET: "SUBSET", NOTSUBSET: "NOTSUBSET",
	SUBSETEQ: "SUBSETEQ", NOTSUBSETEQ: "NOTSUBSETEQ", KFINITE: "KFINITE", KPARTITION: "KPARTITION",
	BECOMES_EQUAL_TO: "BECOMES_EQUAL_TO", BECOMES_MEMBER_OF: "BECOMES_MEMBER_OF",
	BECOMES_SUCH_THAT: "BECOMES_SUCH_THAT",
}

// IsExtension checks whether this tag was allocated to an extension.
func (t Tag) IsExtension() bool {
	return t >= FIRST_EXTENSION_TAG
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	} else if t.IsExtension() {
		return fmt.Sprintf("EXT%d", uint(t-FIRST_EXTENSION_TAG))
	}
	//
	return fmt.Sprintf("TAG%d", uint(t))
}

// Tag ranges for the various node shapes.
var (
	binaryExpressionTags      = tagRange(FUNIMAGE, EXPN)
	associativeExpressionTags = tagRange(BUNION, MUL)
	atomicExpressionTags      = tagRange(INTEGER, KID)
	unaryExpressionTags       = tagRange(KCARD, UNMINUS)
	quantifiedExpressionTags  = tagRange(QUNION, CSET)
	literalPredicateTags      = tagRange(BTRUE, BFALSE)
	binaryPredicateTags       = tagRange(LIMP, LEQV)
	associativePredicateTags  = tagRange(LAND, LOR)
	quantifiedPredicateTags   = tagRange(FORALL, EXISTS)
	relationalPredicateTags   = tagRange(EQUAL, NOTSUBSETEQ)
)

func tagRange(first, last Tag) map[Tag]bool {
	tags := make(map[Tag]bool)
	//
	for t := first; t <= last; t++ {
		tags[t] = true
	}
	//
	return tags
}

func checkTag(tags map[Tag]bool, tag Tag, shape string) {
	if !tags[tag] {
		panic(fmt.Sprintf("invalid tag %s for %s", tag, shape))
	}
}
