// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package gqlang

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// A Lexer produces tokens from a Source on demand. The zero value is not
// usable; create one with NewLexer.
type Lexer struct {
	source *Source

	last Token
	tok  Token

	// next is the memoized result of Lookahead.
	next    *Token
	nextErr error

	// line is the 1-based line that the scanner is on and lineStart is the
	// byte offset at which that line begins.
	line      int
	lineStart int
}

// NewLexer returns a lexer positioned at the start-of-file token.
func NewLexer(src *Source) *Lexer {
	sof := Token{Kind: KindSOF}
	return &Lexer{
		source: src,
		last:   sof,
		tok:    sof,
		line:   1,
	}
}

// Source returns the source the lexer is reading from.
func (l *Lexer) Source() *Source {
	return l.source
}

// Token returns the current token.
func (l *Lexer) Token() Token {
	return l.tok
}

// LastToken returns the token before the current token.
func (l *Lexer) LastToken() Token {
	return l.last
}

// Advance moves to the next non-comment token and returns it.
func (l *Lexer) Advance() (Token, error) {
	next, err := l.Lookahead()
	if err != nil {
		return l.tok, err
	}
	l.last = l.tok
	l.tok = next
	l.next = nil
	return l.tok, nil
}

// Lookahead returns the next non-comment token without advancing. Once the
// current token is EOF, Lookahead returns the EOF token.
func (l *Lexer) Lookahead() (Token, error) {
	if l.tok.Kind == KindEOF {
		return l.tok, nil
	}
	if l.next != nil || l.nextErr != nil {
		if l.nextErr != nil {
			return Token{}, l.nextErr
		}
		return *l.next, nil
	}
	tok := l.tok
	for {
		var err error
		tok, err = l.readToken(tok)
		if err != nil {
			l.nextErr = err
			return Token{}, err
		}
		if tok.Kind != KindComment {
			break
		}
	}
	l.next = &tok
	return tok, nil
}

// readToken scans the token following prev.
func (l *Lexer) readToken(prev Token) (Token, error) {
	body := l.source.Body
	pos := l.positionAfterWhitespace(int(prev.End))
	col := 1 + pos - l.lineStart
	tok := func(kind TokenKind, size int) Token {
		return Token{
			Kind:   kind,
			Start:  Pos(pos),
			End:    Pos(pos + size),
			Line:   l.line,
			Column: col,
		}
	}

	if pos >= len(body) {
		return Token{
			Kind:   KindEOF,
			Start:  Pos(len(body)),
			End:    Pos(len(body)),
			Line:   l.line,
			Column: col,
		}, nil
	}
	switch c := body[pos]; {
	case c == '#':
		return l.readComment(pos, col), nil
	case c == '.':
		if strings.HasPrefix(body[pos:], "...") {
			return tok(KindSpread, 3), nil
		}
	case punctuatorKinds[c] != 0:
		return tok(punctuatorKinds[c], 1), nil
	case isNameStart(c):
		return l.readName(pos, col), nil
	case c == '-' || isDigit(c):
		return l.readNumber(pos, col)
	case c == '"':
		if strings.HasPrefix(body[pos:], `"""`) {
			return l.readBlockString(pos, col)
		}
		return l.readString(pos, col)
	}
	r, _ := utf8.DecodeRuneInString(body[pos:])
	return Token{}, syntaxError(l.source, Pos(pos), unexpectedCharacterMessage(r))
}

// positionAfterWhitespace skips ignored characters starting at pos and
// returns the position of the next lexable character.
// https://spec.graphql.org/June2018/#sec-Source-Text.Ignored-Tokens
func (l *Lexer) positionAfterWhitespace(pos int) int {
	body := l.source.Body
	for pos < len(body) {
		switch body[pos] {
		case ' ', '\t', ',':
			pos++
		case '\n':
			pos++
			l.line++
			l.lineStart = pos
		case '\r':
			if pos+1 < len(body) && body[pos+1] == '\n' {
				pos += 2
			} else {
				pos++
			}
			l.line++
			l.lineStart = pos
		case bom[0]:
			if !strings.HasPrefix(body[pos:], bom) {
				return pos
			}
			pos += len(bom)
		default:
			return pos
		}
	}
	return pos
}

// readComment scans a comment up to the end of the line.
func (l *Lexer) readComment(start, col int) Token {
	body := l.source.Body
	pos := start + 1
	for pos < len(body) && (body[pos] > 0x1f || body[pos] == '\t') {
		pos++
	}
	return Token{
		Kind:   KindComment,
		Start:  Pos(start),
		End:    Pos(pos),
		Line:   l.line,
		Column: col,
		Value:  body[start+1 : pos],
	}
}

// readName scans [_A-Za-z][_0-9A-Za-z]*.
// https://spec.graphql.org/June2018/#Name
func (l *Lexer) readName(start, col int) Token {
	body := l.source.Body
	pos := start + 1
	for pos < len(body) && (isNameStart(body[pos]) || isDigit(body[pos])) {
		pos++
	}
	return Token{
		Kind:   KindName,
		Start:  Pos(start),
		End:    Pos(pos),
		Line:   l.line,
		Column: col,
		Value:  body[start:pos],
	}
}

// readNumber scans either an integer or a floating-point literal.
// https://spec.graphql.org/June2018/#sec-Int-Value
// https://spec.graphql.org/June2018/#sec-Float-Value
func (l *Lexer) readNumber(start, col int) (Token, error) {
	body := l.source.Body
	pos := start
	isFloat := false

	if body[pos] == '-' {
		pos++
	}
	if pos < len(body) && body[pos] == '0' {
		pos++
		if pos < len(body) && isDigit(body[pos]) {
			return Token{}, syntaxError(l.source, Pos(pos),
				fmt.Sprintf("Invalid number, unexpected digit after 0: %s.", l.printCharAt(pos)))
		}
	} else {
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return Token{}, err
		}
	}

	if pos < len(body) && body[pos] == '.' {
		isFloat = true
		var err error
		if pos, err = l.readDigits(pos + 1); err != nil {
			return Token{}, err
		}
	}

	if pos < len(body) && (body[pos] == 'e' || body[pos] == 'E') {
		isFloat = true
		pos++
		if pos < len(body) && (body[pos] == '+' || body[pos] == '-') {
			pos++
		}
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return Token{}, err
		}
	}

	// Numbers cannot be followed by '.' or a name start.
	if pos < len(body) && (body[pos] == '.' || isNameStart(body[pos])) {
		return Token{}, syntaxError(l.source, Pos(pos),
			fmt.Sprintf("Invalid number, expected digit but got: %s.", l.printCharAt(pos)))
	}

	kind := KindInt
	if isFloat {
		kind = KindFloat
	}
	return Token{
		Kind:   kind,
		Start:  Pos(start),
		End:    Pos(pos),
		Line:   l.line,
		Column: col,
		Value:  body[start:pos],
	}, nil
}

// readDigits returns the position after a non-empty run of digits.
func (l *Lexer) readDigits(pos int) (int, error) {
	body := l.source.Body
	if pos >= len(body) || !isDigit(body[pos]) {
		return pos, syntaxError(l.source, Pos(pos),
			fmt.Sprintf("Invalid number, expected digit but got: %s.", l.printCharAt(pos)))
	}
	for pos < len(body) && isDigit(body[pos]) {
		pos++
	}
	return pos, nil
}

// readString scans a quoted string and unescapes its value.
// https://spec.graphql.org/June2018/#sec-String-Value
func (l *Lexer) readString(start, col int) (Token, error) {
	body := l.source.Body
	pos := start + 1
	chunkStart := pos
	value := new(strings.Builder)

	for pos < len(body) {
		c := body[pos]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '"' {
			value.WriteString(body[chunkStart:pos])
			return Token{
				Kind:   KindString,
				Start:  Pos(start),
				End:    Pos(pos + 1),
				Line:   l.line,
				Column: col,
				Value:  value.String(),
			}, nil
		}
		if c < 0x20 && c != '\t' {
			return Token{}, syntaxError(l.source, Pos(pos),
				fmt.Sprintf("Invalid character within String: %s.", l.printCharAt(pos)))
		}
		pos++
		if c != '\\' {
			continue
		}

		value.WriteString(body[chunkStart : pos-1])
		if pos >= len(body) {
			break
		}
		switch esc := body[pos]; esc {
		case '"', '/', '\\':
			value.WriteByte(esc)
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')
		case 'u':
			r, ok := uniCharCode(body, pos+1)
			if !ok {
				end := pos + 5
				if end > len(body) {
					end = len(body)
				}
				return Token{}, syntaxError(l.source, Pos(pos),
					fmt.Sprintf("Invalid character escape sequence: \\u%s.", body[pos+1:end]))
			}
			pos += 4
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[pos+1:], `\u`) {
				if r2, ok := uniCharCode(body, pos+3); ok {
					if pair := utf16.DecodeRune(r, r2); pair != utf8.RuneError {
						r = pair
						pos += 6
					}
				}
			}
			value.WriteRune(r)
		default:
			esc, _ := utf8.DecodeRuneInString(body[pos:])
			return Token{}, syntaxError(l.source, Pos(pos),
				fmt.Sprintf("Invalid character escape sequence: \\%c.", esc))
		}
		pos++
		chunkStart = pos
	}
	return Token{}, syntaxError(l.source, Pos(pos), "Unterminated string.")
}

// readBlockString scans a triple-quoted string and dedents its value.
// https://spec.graphql.org/June2018/#sec-String-Value
func (l *Lexer) readBlockString(start, col int) (Token, error) {
	body := l.source.Body
	line := l.line
	pos := start + 3
	chunkStart := pos
	raw := new(strings.Builder)

	for pos < len(body) {
		c := body[pos]
		if strings.HasPrefix(body[pos:], `"""`) {
			raw.WriteString(body[chunkStart:pos])
			return Token{
				Kind:   KindBlockString,
				Start:  Pos(start),
				End:    Pos(pos + 3),
				Line:   line,
				Column: col,
				Value:  DedentBlockStringValue(raw.String()),
			}, nil
		}
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			return Token{}, syntaxError(l.source, Pos(pos),
				fmt.Sprintf("Invalid character within String: %s.", l.printCharAt(pos)))
		}
		switch {
		case c == '\n':
			pos++
			l.line++
			l.lineStart = pos
		case c == '\r':
			if pos+1 < len(body) && body[pos+1] == '\n' {
				pos += 2
			} else {
				pos++
			}
			l.line++
			l.lineStart = pos
		case c == '\\' && strings.HasPrefix(body[pos+1:], `"""`):
			raw.WriteString(body[chunkStart:pos])
			raw.WriteString(`"""`)
			pos += 4
			chunkStart = pos
		default:
			pos++
		}
	}
	return Token{}, syntaxError(l.source, Pos(pos), "Unterminated string.")
}

// uniCharCode decodes the four hex digits at body[pos:].
func uniCharCode(body string, pos int) (rune, bool) {
	if pos+4 > len(body) {
		return 0, false
	}
	var r rune
	for i := pos; i < pos+4; i++ {
		d := char2hex(body[i])
		if d < 0 {
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}

func char2hex(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// printCharAt describes the character at body[pos] for an error message.
func (l *Lexer) printCharAt(pos int) string {
	if pos >= len(l.source.Body) {
		return KindEOF.String()
	}
	r, _ := utf8.DecodeRuneInString(l.source.Body[pos:])
	return printCharCode(r)
}

// printCharCode quotes r, rendering anything other than printable ASCII as
// a \uXXXX escape.
func printCharCode(r rune) string {
	switch r {
	case '\\':
		return `"\\"`
	case '"':
		return `"\""`
	case '\b':
		return `"\b"`
	case '\n':
		return `"\n"`
	case '\r':
		return `"\r"`
	case '\t':
		return `"\t"`
	}
	if r > ' ' && r < 0x7f {
		return `"` + string(r) + `"`
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}

func unexpectedCharacterMessage(r rune) string {
	if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return fmt.Sprintf("Cannot contain the invalid character %s.", printCharCode(r))
	}
	if r == '\'' {
		return `Unexpected single quote character ('), did you mean to use a double quote (")?`
	}
	return fmt.Sprintf("Cannot parse the unexpected character %s.", printCharCode(r))
}

// A Token is a lexical unit of a GraphQL document.
type Token struct {
	Kind  TokenKind
	Start Pos
	End   Pos
	// Line and Column are 1-based and locate Start.
	Line   int
	Column int
	// Value is set for names, numbers, strings, block strings, and comments.
	// String values are unescaped and block string values are dedented.
	Value string
}

// String describes the token the way it appears in syntax errors,
// e.g. `Name "foo"` or `"{"`.
func (tok Token) String() string {
	if !tok.Kind.hasValue() {
		return tok.Kind.describe()
	}
	return tok.Kind.describe() + ` "` + tok.Value + `"`
}

// TokenKind is the type of a Token.
type TokenKind int

// Token kinds.
const (
	KindSOF TokenKind = 1 + iota
	KindEOF

	// Punctuators
	KindBang         // '!'
	KindDollar       // '$'
	KindAmp          // '&'
	KindLeftParen    // '('
	KindRightParen   // ')'
	KindSpread       // '...'
	KindColon        // ':'
	KindEquals       // '='
	KindAt           // '@'
	KindLeftBracket  // '['
	KindRightBracket // ']'
	KindLeftBrace    // '{'
	KindPipe         // '|'
	KindRightBrace   // '}'

	KindName
	KindInt
	KindFloat
	KindString
	KindBlockString
	KindComment
)

var punctuatorKinds = [256]TokenKind{
	'!': KindBang,
	'$': KindDollar,
	'&': KindAmp,
	'(': KindLeftParen,
	')': KindRightParen,
	':': KindColon,
	'=': KindEquals,
	'@': KindAt,
	'[': KindLeftBracket,
	']': KindRightBracket,
	'{': KindLeftBrace,
	'|': KindPipe,
	'}': KindRightBrace,
}

var tokenKindStrings = map[TokenKind]string{
	KindSOF:          "<SOF>",
	KindEOF:          "<EOF>",
	KindBang:         "!",
	KindDollar:       "$",
	KindAmp:          "&",
	KindLeftParen:    "(",
	KindRightParen:   ")",
	KindSpread:       "...",
	KindColon:        ":",
	KindEquals:       "=",
	KindAt:           "@",
	KindLeftBracket:  "[",
	KindRightBracket: "]",
	KindLeftBrace:    "{",
	KindPipe:         "|",
	KindRightBrace:   "}",
	KindName:         "Name",
	KindInt:          "Int",
	KindFloat:        "Float",
	KindString:       "String",
	KindBlockString:  "BlockString",
	KindComment:      "Comment",
}

// String returns the punctuator itself or the name of the kind.
func (kind TokenKind) String() string {
	if s, ok := tokenKindStrings[kind]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(kind))
}

// IsPunctuator reports whether kind is a punctuator.
func (kind TokenKind) IsPunctuator() bool {
	return KindBang <= kind && kind <= KindRightBrace
}

// describe returns the kind as it appears in syntax errors:
// punctuators are quoted.
func (kind TokenKind) describe() string {
	if kind.IsPunctuator() {
		return `"` + kind.String() + `"`
	}
	return kind.String()
}

func (kind TokenKind) hasValue() bool {
	return kind >= KindName
}

// isNameStart reports whether c could begin a name.
// https://spec.graphql.org/June2018/#Name
func isNameStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

const bom = "\uFEFF"
