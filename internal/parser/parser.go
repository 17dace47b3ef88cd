package parser

import (
	"fmt"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/diagnostics"
	"github.com/funvibe/sol/internal/lexer"
	"github.com/funvibe/sol/internal/syntax"
	"github.com/funvibe/sol/internal/token"
)

// Parser is a recursive-descent parser over the lexer's token stream. It
// stops at the first error.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	lastEnd int // offset just past the last consumed token
	depth   int
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, lastEnd: l.Offset()}
	p.curToken = l.NextToken()
	p.peekToken = l.NextToken()
	return p
}

func (p *Parser) nextToken() {
	p.lastEnd = p.curToken.End()
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

// EndOffset returns the offset just past the text consumed so far.
func (p *Parser) EndOffset() int {
	return p.lastEnd
}

// ParseTerm parses exactly one term and leaves the parser on the token
// following it.
func (p *Parser) ParseTerm() (syntax.Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > config.MaxNestingDepth {
		return nil, diagnostics.NewError(
			diagnostics.ErrP004,
			p.curToken,
			fmt.Sprintf("term nesting exceeds %d levels", config.MaxNestingDepth),
		)
	}

	switch p.curToken.Type {
	case token.LPAREN:
		return p.parseApplication()
	case token.ASTERISK:
		node := &syntax.Universe{Token: p.curToken}
		p.nextToken()
		return node, nil
	case token.IDENT:
		return p.parseIdentifierLed()
	case token.EOF:
		return nil, diagnostics.NewError(diagnostics.ErrP001, p.curToken, "expected a term, found end of input")
	default:
		return nil, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			fmt.Sprintf("expected a term, found %q", p.curToken.Lexeme),
		)
	}
}

// ( F A1 ... An )
func (p *Parser) parseApplication() (syntax.Node, error) {
	open := p.curToken
	p.nextToken()

	if p.curTokenIs(token.EOF) {
		return nil, unterminated(open)
	}
	fun, err := p.ParseTerm()
	if err != nil {
		return nil, err
	}

	app := &syntax.App{Token: open, Fun: fun}
	for !p.curTokenIs(token.RPAREN) {
		if p.curTokenIs(token.EOF) {
			return nil, unterminated(open)
		}
		arg, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		app.Args = append(app.Args, arg)
	}
	p.nextToken() // consume ')'

	if len(app.Args) == 0 {
		return fun, nil
	}
	return app, nil
}

func unterminated(open token.Token) error {
	return diagnostics.NewError(diagnostics.ErrP002, open, "application is missing its closing ')'")
}

// parseIdentifierLed handles `name`, `name:T B`, `name.T B`, `name@B` and
// `name=V B`. The marker only binds when it touches the name.
func (p *Parser) parseIdentifierLed() (syntax.Node, error) {
	ident := p.curToken
	p.nextToken()

	if !p.curToken.IsBinderMarker() || p.curToken.Offset != ident.End() {
		return &syntax.Ref{Token: ident, Name: ident.Lexeme}, nil
	}

	marker := p.curToken.Type
	p.nextToken()

	switch marker {
	case token.COLON, token.DOT:
		typ, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		body, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		if marker == token.COLON {
			return &syntax.Lam{Token: ident, Name: ident.Lexeme, Type: typ, Body: body}, nil
		}
		return &syntax.Pi{Token: ident, Name: ident.Lexeme, Type: typ, Body: body}, nil

	case token.AT:
		body, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &syntax.Fix{Token: ident, Name: ident.Lexeme, Body: body}, nil

	default: // token.ASSIGN
		value, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		body, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &syntax.Let{Token: ident, Name: ident.Lexeme, Value: value, Body: body}, nil
	}
}
