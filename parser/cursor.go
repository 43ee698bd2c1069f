package parser

import (
	"github.com/metaphox/solar/ast"
	"github.com/metaphox/solar/lexer"
)

// TokenSource supplies tokens one at a time. After the last real token it
// must keep returning a token of type [ast.EOF]. [*lexer.Lexer] satisfies it.
type TokenSource interface {
	NextToken() ast.Token
}

// TokenSlice replays a fixed token sequence. Each call to [TokenSlice.Source]
// starts from the beginning, so the same tokens can be parsed any number of
// times.
type TokenSlice []ast.Token

// Tokenize scans input to completion and returns the tokens, EOF included.
func Tokenize(input string) TokenSlice {
	return TokenSlice(lexer.New(input).Tokens())
}

// Source returns a fresh TokenSource positioned at the first token.
func (ts TokenSlice) Source() TokenSource {
	return &sliceSource{toks: ts}
}

type sliceSource struct {
	toks []ast.Token
	i    int
}

func (s *sliceSource) NextToken() ast.Token {
	if s.i < len(s.toks) {
		tok := s.toks[s.i]
		s.i++
		return tok
	}
	eof := ast.Token{Type: ast.EOF, Line: 1, Col: 1}
	if n := len(s.toks); n > 0 {
		last := s.toks[n-1]
		eof.Line, eof.Col = last.Line, last.Col+len(last.Literal)
	}
	return eof
}

// cursor is a two-token window over a TokenSource: cur is the token being
// examined, peek the one after it. Nothing is consumed until advance.
type cursor struct {
	src  TokenSource
	cur  ast.Token
	peek ast.Token

	consumed int // tokens consumed so far
}

func newCursor(src TokenSource) *cursor {
	c := &cursor{src: src}
	c.cur = src.NextToken()
	c.peek = src.NextToken()
	return c
}

// advance consumes cur and returns it, shifting peek into cur.
func (c *cursor) advance() ast.Token {
	tok := c.cur
	c.consumed++
	c.cur = c.peek
	if c.cur.Type == ast.EOF {
		c.peek = c.cur
	} else {
		c.peek = c.src.NextToken()
	}
	return tok
}

func (c *cursor) curIs(tt ast.TokenType) bool  { return c.cur.Type == tt }
func (c *cursor) peekIs(tt ast.TokenType) bool { return c.peek.Type == tt }
