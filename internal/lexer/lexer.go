package lexer

import (
	"github.com/funvibe/sol/internal/token"
	"unicode/utf8"
)

// Lexer produces tokens on demand, so a parse that stops after one term never
// looks further into the input than it has to.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	afterIdent   bool // previous token was an identifier ending at position
}

func New(input string) *Lexer {
	return NewAt(input, 0)
}

// NewAt starts lexing at the given byte offset. Line and column numbers are
// still counted from the beginning of input.
func NewAt(input string, offset int) *Lexer {
	if offset < 0 {
		offset = 0
	}
	if offset > len(input) {
		offset = len(input)
	}
	l := &Lexer{input: input, line: 1, column: 0}
	for _, r := range input[:offset] {
		if r == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
	l.readPosition = offset
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.readPosition = len(l.input) + 1
		l.position = len(l.input)
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += w
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// Offset returns the byte offset of the character under examination.
func (l *Lexer) Offset() int {
	return l.position
}

func (l *Lexer) NextToken() token.Token {
	afterIdent := l.afterIdent
	l.afterIdent = false

	// `=` is not a symbol: it only counts when it touches an identifier.
	if !(afterIdent && l.ch == '=' && !l.atEOF()) {
		l.skipSeparators()
	}

	if l.atEOF() {
		return token.Token{Type: token.EOF, Offset: len(l.input), Line: l.line, Column: l.column + 1}
	}

	var tok token.Token
	switch l.ch {
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '*':
		tok = l.newToken(token.ASTERISK)
	case ':':
		tok = l.newToken(token.COLON)
	case '.':
		tok = l.newToken(token.DOT)
	case '@':
		tok = l.newToken(token.AT)
	case '=':
		tok = l.newToken(token.ASSIGN)
	default:
		if isIdentChar(l.ch) {
			tok = token.Token{Type: token.IDENT, Offset: l.position, Line: l.line, Column: l.column}
			tok.Lexeme = l.readIdentifier()
			l.afterIdent = true
			return tok
		}
		// Reserved symbols with no production of their own.
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentChar(l.ch) && !l.atEOF() {
		l.readChar()
	}
	return l.input[position:l.position]
}

// skipSeparators drops every character outside the symbol set. Whitespace,
// punctuation such as `;` or `,` and any non-ASCII text act as separators.
func (l *Lexer) skipSeparators() {
	for !l.atEOF() && !isSymbol(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) newToken(tokenType token.TokenType) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(l.ch), Offset: l.position, Line: l.line, Column: l.column}
}

func isIdentChar(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_'
}

func isSymbol(ch rune) bool {
	if isIdentChar(ch) {
		return true
	}
	switch ch {
	case '(', ')', '.', '@', ':', '-', '*', '%', '#', '{', '}', '[', ']':
		return true
	}
	return false
}
