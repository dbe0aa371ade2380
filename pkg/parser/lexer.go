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
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/consensys/go-eventb/pkg/util/collection/array"
	"github.com/consensys/go-eventb/pkg/util/source"
	"github.com/consensys/go-eventb/pkg/util/source/lex"
)

// lexicon holds the lexing rules derived from the images of a grammar.
// Identifier-like images (keywords) are not lexed directly.  Instead, they are
// recognised after an identifier has been lexed.
type lexicon struct {
	rules    []lex.LexRule[rune]
	keywords map[string]Kind
}

func (g *Grammar) lexicon() *lexicon {
	var (
		images   = g.symbols.Images()
		symbols  []string
		keywords = make(map[string]Kind)
		// Characters which start a symbol cannot start an identifier
		excluded = make(map[rune]bool)
	)
	//
	for image, kind := range images {
		if isKeyword(image) {
			keywords[image] = kind
		} else {
			r, _ := utf8.DecodeRuneInString(image)
			excluded[r] = true
			symbols = append(symbols, image)
		}
	}
	// Sort for determinism
	slices.Sort(symbols)
	//
	var (
		rules      = make([]lex.LexRule[rune], 0, len(symbols)+5)
		identStart = lex.Is(func(r rune) bool {
			return !excluded[r] && (r == '_' || unicode.IsLetter(r))
		})
		identRest = lex.Many(lex.Is(func(r rune) bool {
			return !excluded[r] && (r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r))
		}))
		identifier = lex.And(identStart, identRest)
		number     = lex.Many(lex.Within('0', '9'))
		whitespace = lex.Many(lex.Is(unicode.IsSpace))
	)
	//
	for _, symbol := range symbols {
		rules = append(rules, lex.Rule(lex.String(symbol), images[symbol]))
	}
	//
	rules = append(rules,
		lex.Rule(identifier, g.IDENT),
		lex.Rule(number, g.INTLIT),
		lex.Rule(lex.Sequence(lex.Unit('$'), identifier), g.PREDVAR),
		lex.Rule(whitespace, g.WHITESPACE),
		lex.Rule(lex.Eof[rune](), g.EOF))
	//
	return &lexicon{rules, keywords}
}

// Lex a given source file into a sequence of tokens terminated by an
// end-of-formula token, or report the first piece of unknown text.
func (g *Grammar) Lex(srcfile *source.File) ([]lex.Token, []Problem) {
	var lexicon = g.lex
	//
	if lexicon == nil {
		lexicon = g.lexicon()
	}
	//
	var (
		lexer = lex.NewLexer(srcfile.Contents(), lexicon.rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		span := source.NewSpan(int(start), int(end))
		//
		return nil, []Problem{newProblem(srcfile, span, UNKNOWN_TEXT, srcfile.Text(span))}
	}
	// Remove any whitespace
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool { return t.Kind == g.WHITESPACE })
	// Resolve keywords
	for i, t := range tokens {
		if t.Kind != g.IDENT {
			continue
		} else if kind, ok := lexicon.keywords[srcfile.Text(t.Span)]; ok {
			tokens[i].Kind = kind
		}
	}
	//
	return tokens, nil
}

// isKeyword determines whether an image looks like an identifier, such as
// "card" or "BOOL".
func isKeyword(image string) bool {
	for i, r := range image {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLetter(r):
		case i > 0 && (r == '_' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	//
	return image != ""
}
