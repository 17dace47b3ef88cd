package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT    TokenType = "IDENT"
	ASTERISK TokenType = "*"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"

	// Binder markers. They only introduce a binder when they touch the
	// preceding identifier.
	COLON  TokenType = ":"
	DOT    TokenType = "."
	AT     TokenType = "@"
	ASSIGN TokenType = "="
)

type Token struct {
	Type   TokenType
	Lexeme string
	Offset int // byte offset of the first character
	Line   int
	Column int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Lexeme)
}

// IsBinderMarker reports whether the token can follow an identifier to form
// a lambda, pi, fixpoint or let.
func (t Token) IsBinderMarker() bool {
	switch t.Type {
	case COLON, DOT, AT, ASSIGN:
		return true
	}
	return false
}
