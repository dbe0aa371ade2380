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
package datatype

import (
	"slices"
	"unicode"

	"github.com/consensys/go-eventb/pkg/util/collection/array"
	"github.com/consensys/go-eventb/pkg/util/source"
	"github.com/consensys/go-eventb/pkg/util/source/lex"
)

// ParseDeclaration parses the textual declaration of a datatype, such as:
//
//	List(T) ::= nil | cons(head: T, tail: List(T))
//
// Argument types are built from ℤ, BOOL, ℙ(...), products (×), given sets,
// type parameters and applications of other type constructors.  Arguments
// named before a colon have destructors.
func ParseDeclaration(text string) (*Datatype, []source.SyntaxError) {
	var (
		srcfile = source.NewSourceFile("datatype", text)
		lexer   = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	// Remove any whitespace
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	//
	p := &declarationParser{srcfile, tokens, 0, nil}
	//
	return p.parseDatatype()
}

// END_OF signals "end of declaration"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LBRACE signals "left brace"
const LBRACE uint = 2

// RBRACE signals "right brace"
const RBRACE uint = 3

// COMMA separates arguments
const COMMA uint = 4

// COLON separates a destructor from the type of its argument
const COLON uint = 5

// DEFINES separates a datatype from its constructors
const DEFINES uint = 6

// BAR separates constructors
const BAR uint = 7

// TIMES signals a cartesian product
const TIMES uint = 8

// IDENTIFIER signals a name
const IDENTIFIER uint = 9

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Is(unicode.IsSpace))

var identifierStart lex.Scanner[rune] = lex.Is(func(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
})

var identifierRest lex.Scanner[rune] = lex.Many(lex.Is(func(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.String("::="), DEFINES),
	lex.Rule(lex.Unit('|'), BAR),
	lex.Rule(lex.Or(lex.Unit('×'), lex.String("**")), TIMES),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

type declarationParser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Datatype being declared
	datatype *Datatype
}

func (p *declarationParser) parseDatatype() (*Datatype, []source.SyntaxError) {
	name, errs := p.parseName()
	if len(errs) != 0 {
		return nil, errs
	}
	//
	var params []string
	// Parse type parameters (if any)
	if p.match(LBRACE) {
		if params, errs = p.parseParams(); len(errs) != 0 {
			return nil, errs
		}
	}
	//
	p.datatype = NewDatatype(name, params...)
	//
	if !p.match(DEFINES) {
		return nil, p.syntaxErrors(p.lookahead(), "expected \"::=\"")
	}
	// Parse constructors
	for ok := true; ok; ok = p.match(BAR) {
		if errs = p.parseConstructor(); len(errs) != 0 {
			return nil, errs
		}
	}
	//
	if !p.follows(END_OF) {
		return nil, p.syntaxErrors(p.lookahead(), "unknown token")
	}
	// All good!
	return p.datatype, nil
}

func (p *declarationParser) parseParams() ([]string, []source.SyntaxError) {
	var params []string
	//
	for ok := true; ok; ok = p.match(COMMA) {
		token := p.lookahead()
		name, errs := p.parseName()
		//
		if len(errs) != 0 {
			return nil, errs
		} else if slices.Contains(params, name) {
			return nil, p.syntaxErrors(token, "duplicate type parameter")
		}
		//
		params = append(params, name)
	}
	//
	if !p.match(RBRACE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	return params, nil
}

func (p *declarationParser) parseConstructor() []source.SyntaxError {
	var (
		token      = p.lookahead()
		args       []Argument
		name, errs = p.parseName()
	)
	//
	if len(errs) != 0 {
		return errs
	}
	//
	if p.match(LBRACE) {
		for ok := true; ok; ok = p.match(COMMA) {
			arg, errs := p.parseArgument()
			if len(errs) != 0 {
				return errs
			}
			//
			args = append(args, arg)
		}
		//
		if !p.match(RBRACE) {
			return p.syntaxErrors(p.lookahead(), "expected ')'")
		}
	}
	//
	if err := p.datatype.AddConstructor(name, args...); err != nil {
		return p.syntaxErrors(token, err.Error())
	}
	//
	return nil
}

func (p *declarationParser) parseArgument() (Argument, []source.SyntaxError) {
	var destructor string
	// Check for a destructor
	if p.follows(IDENTIFIER) && p.peek(1).Kind == COLON {
		destructor = p.string(p.expect(IDENTIFIER))
		p.expect(COLON)
	}
	//
	t, errs := p.parseType()
	//
	return Argument{destructor, t}, errs
}

// Parse a type, where products associate to the left.
func (p *declarationParser) parseType() (ArgumentType, []source.SyntaxError) {
	t, errs := p.parseUnitType()
	//
	for len(errs) == 0 && p.match(TIMES) {
		var rhs ArgumentType
		//
		if rhs, errs = p.parseUnitType(); len(errs) == 0 {
			t = Product(t, rhs)
		}
	}
	//
	return t, errs
}

func (p *declarationParser) parseUnitType() (ArgumentType, []source.SyntaxError) {
	var token = p.lookahead()
	//
	if p.match(LBRACE) {
		t, errs := p.parseType()
		//
		if len(errs) == 0 && !p.match(RBRACE) {
			return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
		}
		//
		return t, errs
	}
	//
	name, errs := p.parseName()
	if len(errs) != 0 {
		return nil, errs
	}
	//
	var args []ArgumentType
	//
	if p.match(LBRACE) {
		if args, errs = p.parseTypeArguments(); len(errs) != 0 {
			return nil, errs
		}
	}
	//
	return p.resolve(token, name, args)
}

func (p *declarationParser) parseTypeArguments() ([]ArgumentType, []source.SyntaxError) {
	var args []ArgumentType
	//
	for ok := true; ok; ok = p.match(COMMA) {
		arg, errs := p.parseType()
		if len(errs) != 0 {
			return nil, errs
		}
		//
		args = append(args, arg)
	}
	//
	if !p.match(RBRACE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	return args, nil
}

// Resolve a name (applied to zero or more type arguments) into a type.
func (p *declarationParser) resolve(token lex.Token, name string, args []ArgumentType) (ArgumentType,
	[]source.SyntaxError) {
	var datatype = p.datatype
	//
	switch {
	case name == "ℤ" || name == "INT":
		return p.atomic(token, Integer(), args)
	case name == "BOOL":
		return p.atomic(token, Boolean(), args)
	case name == "ℙ" || name == "POW":
		if len(args) != 1 {
			return nil, p.syntaxErrors(token, "expected one type argument")
		}
		//
		return PowerSet(args[0]), nil
	case name == datatype.name:
		if !isOwnParams(args, datatype.params) {
			return nil, p.syntaxErrors(token, "datatype must be applied to its own type parameters")
		}
		//
		return Self(), nil
	case slices.Contains(datatype.params, name):
		return p.atomic(token, Param(name), args)
	case len(args) == 0:
		return Given(name), nil
	}
	//
	return Applied(name, args...), nil
}

func (p *declarationParser) atomic(token lex.Token, t ArgumentType, args []ArgumentType) (ArgumentType,
	[]source.SyntaxError) {
	if len(args) != 0 {
		return nil, p.syntaxErrors(token, "unexpected type arguments")
	}
	//
	return t, nil
}

func isOwnParams(args []ArgumentType, params []string) bool {
	if len(args) != len(params) {
		return false
	}
	//
	for i, arg := range args {
		if param, ok := arg.(*paramType); !ok || param.name != params[i] {
			return false
		}
	}
	//
	return true
}

func (p *declarationParser) parseName() (string, []source.SyntaxError) {
	if !p.follows(IDENTIFIER) {
		return "", p.syntaxErrors(p.lookahead(), "expected identifier")
	}
	//
	return p.string(p.expect(IDENTIFIER)), nil
}

// Get the text representing the given token as a string.
func (p *declarationParser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Follows checks whether one of the given token kinds is next.
func (p *declarationParser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *declarationParser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Peek returns the token a given number of positions after the next one, or
// the last token (which is always EOF).
func (p *declarationParser) peek(n int) lex.Token {
	return p.tokens[min(p.index+n, len(p.tokens)-1)]
}

func (p *declarationParser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *declarationParser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *declarationParser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
