// Package lexer implements the Solar language lexer (tokeniser).
//
// The lexer converts a Solar source string into a flat stream of [ast.Token] values.
// Call [New] to create a lexer and then call [Lexer.NextToken] repeatedly until
// you receive a token with Type == [ast.EOF].
//
// Design notes:
//   - Single-pass, byte-by-byte scanning using a read position cursor.
//   - No global state; every [Lexer] is independent.
//   - Line and column numbers are tracked for every token (1-based).
//   - Line comments (// …) and block comments (/* … */) are consumed silently.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent].
//   - Two-character operators (==, !=, <=, >=) need one byte of look-ahead
//     and are handled by peekChar.
package lexer

import (
	"github.com/metaphox/solar/ast"
)

// Lexer holds all state required to tokenise a single Solar source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination

	line int // current 1-based line number
	col  int // 1-based column of ch

	// set when a block comment runs into the end of input; reported as an
	// ILLEGAL token by the next NextToken call.
	unterminated *ast.Token
}

// New creates a [Lexer] that tokenises the given input string.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
//
// Whitespace and comments are skipped before each token. When the input is
// exhausted, NextToken returns a token with Type == [ast.EOF] on every
// subsequent call.
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespaceAndComments()

	if l.unterminated != nil {
		tok := *l.unterminated
		l.unterminated = nil
		return tok
	}

	var tok ast.Token

	switch l.ch {
	case 0:
		if l.pos >= len(l.input) {
			return l.makeToken(ast.EOF, "")
		}
		tok = l.makeToken(ast.ILLEGAL, string(l.ch))

	case '"':
		return l.readString()

	case '{':
		tok = l.makeToken(ast.LBRACE, "{")
	case '}':
		tok = l.makeToken(ast.RBRACE, "}")
	case '(':
		tok = l.makeToken(ast.LPAREN, "(")
	case ')':
		tok = l.makeToken(ast.RPAREN, ")")
	case ',':
		tok = l.makeToken(ast.COMMA, ",")
	case '+':
		tok = l.makeToken(ast.PLUS, "+")
	case '-':
		tok = l.makeToken(ast.MINUS, "-")
	case '*':
		tok = l.makeToken(ast.ASTERISK, "*")
	case '/':
		tok = l.makeToken(ast.SLASH, "/")

	case '=':
		tok = l.twoChar('=', ast.EQ, "==", ast.ASSIGN, "=")
	case '!':
		tok = l.twoChar('=', ast.NEQ, "!=", ast.ILLEGAL, "!")
	case '<':
		tok = l.twoChar('=', ast.LTE, "<=", ast.LT, "<")
	case '>':
		tok = l.twoChar('=', ast.GTE, ">=", ast.GT, ">")

	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.makeToken(ast.ILLEGAL, string(l.ch))
	}

	l.readChar() // advance past the last character of this token
	return tok
}

// Tokens scans the whole input and returns every token up to and including
// the terminating EOF.
func (l *Lexer) Tokens() []ast.Token {
	var toks []ast.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks
		}
	}
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character. At end of input l.ch is 0.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// makeToken constructs a token at the current source position.
// It does NOT advance the cursor.
func (l *Lexer) makeToken(tt ast.TokenType, literal string) ast.Token {
	return ast.Token{Type: tt, Literal: literal, Line: l.line, Col: l.col}
}

// twoChar returns the two-character token when the next byte is next, and
// the single-character token otherwise.
func (l *Lexer) twoChar(next byte, long ast.TokenType, longLit string, short ast.TokenType, shortLit string) ast.Token {
	if l.peekChar() == next {
		tok := l.makeToken(long, longLit)
		l.readChar()
		return tok
	}
	return l.makeToken(short, shortLit)
}

// skipWhitespaceAndComments advances past whitespace, line comments and
// block comments before the next meaningful token.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			switch l.peekChar() {
			case '/':
				for l.ch != '\n' && l.pos < len(l.input) {
					l.readChar()
				}
			case '*':
				l.skipBlockComment()
			default:
				return // lone '/' is the division operator
			}
		default:
			return
		}
	}
}

// skipBlockComment consumes a /* … */ comment. Block comments do not nest.
func (l *Lexer) skipBlockComment() {
	start := l.makeToken(ast.ILLEGAL, "/*")
	l.readChar() // '/'
	l.readChar() // '*'
	for l.pos < len(l.input) {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
	l.unterminated = &start
}

// readIdentifier scans an identifier or keyword. It leaves the cursor on the
// first character after the identifier.
func (l *Lexer) readIdentifier() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	return ast.Token{Type: ast.LookupIdent(literal), Literal: literal, Line: startLine, Col: startCol}
}

// readNumber scans a decimal integer literal. Range checking is left to the
// parser, which owns the conversion to int64.
func (l *Lexer) readNumber() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	return ast.Token{Type: ast.INT, Literal: l.input[start:l.pos], Line: startLine, Col: startCol}
}

// readString scans a double-quoted string literal starting at the opening '"'.
//
// Recognised escape sequences: \n  \t  \r  \\  \"
// Any other backslash sequence is passed through as-is (backslash + character).
//
// If the string is not closed before a newline or EOF, an ILLEGAL token is
// returned containing whatever text was scanned up to that point.
func (l *Lexer) readString() ast.Token {
	startCol := l.col
	startLine := l.line

	l.readChar() // skip opening '"'

	var buf []byte
	for {
		switch {
		case l.ch == '"':
			tok := ast.Token{Type: ast.STRING, Literal: string(buf), Line: startLine, Col: startCol}
			l.readChar()
			return tok

		case l.ch == '\\' && l.readPos < len(l.input):
			l.readChar()
			switch l.ch {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			case '\\':
				buf = append(buf, '\\')
			case '"':
				buf = append(buf, '"')
			default:
				buf = append(buf, '\\', l.ch)
			}
			l.readChar()

		case l.ch == '\n' || l.pos >= len(l.input):
			return ast.Token{Type: ast.ILLEGAL, Literal: "\"" + string(buf), Line: startLine, Col: startCol}

		default:
			buf = append(buf, l.ch)
			l.readChar()
		}
	}
}

// isLetter reports whether b may start or continue an identifier.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
