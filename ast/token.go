// Package ast defines the token types and the Token struct used by the Solar lexer and parser.
//
// Tokens are the smallest meaningful units of a Solar source file. Every token carries its
// type, the exact literal text it was scanned from, and its source position (line + column).
// Position is 1-based: the first character of a file is Line 1, Col 1.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL represents a character or sequence the lexer could not recognise,
	// such as an unterminated string literal or a lone '!'.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	IDENT
	// INT is a decimal integer literal: [0-9]+
	INT
	// STRING is a double-quoted string literal. Literal holds the unescaped contents.
	STRING

	// ── Keywords ───────────────────────────────────────────────────────────────

	// FUN introduces a function declaration: fun add(a, b) { return a + b }
	FUN
	// IF begins a conditional: if (x > 0) { ... }
	IF
	// ELSE is the else block of an if statement.
	ELSE
	// WHILE begins a conditional loop: while (i < 10) { ... }
	WHILE
	// RETURN leaves the enclosing function, optionally with a value.
	RETURN
	// TRUE is the boolean literal true.
	TRUE
	// FALSE is the boolean literal false.
	FALSE

	// ── Arithmetic operators ────────────────────────────────────────────────────

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /

	// ── Relational operators ────────────────────────────────────────────────────

	EQ  // ==
	NEQ // !=
	LT  // <
	GT  // >
	LTE // <=
	GTE // >=

	// ── Delimiters ──────────────────────────────────────────────────────────────

	ASSIGN // =
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	COMMA  // ,
)

var tokenNames = [...]string{
	ILLEGAL:  "illegal token",
	EOF:      "end of input",
	IDENT:    "identifier",
	INT:      "integer",
	STRING:   "string",
	FUN:      "'fun'",
	IF:       "'if'",
	ELSE:     "'else'",
	WHILE:    "'while'",
	RETURN:   "'return'",
	TRUE:     "'true'",
	FALSE:    "'false'",
	PLUS:     "'+'",
	MINUS:    "'-'",
	ASTERISK: "'*'",
	SLASH:    "'/'",
	EQ:       "'=='",
	NEQ:      "'!='",
	LT:       "'<'",
	GT:       "'>'",
	LTE:      "'<='",
	GTE:      "'>='",
	ASSIGN:   "'='",
	LPAREN:   "'('",
	RPAREN:   "')'",
	LBRACE:   "'{'",
	RBRACE:   "'}'",
	COMMA:    "','",
}

// String returns the name used for tt in diagnostics: the quoted punctuation
// or keyword for fixed tokens, the class name for everything else.
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsRelational reports whether tt is one of == != < > <= >=.
func (tt TokenType) IsRelational() bool {
	return tt >= EQ && tt <= GTE
}

// keywords maps the literal text of every Solar keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"fun":    FUN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Position is a 1-based source location.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}

// Token is a single lexical unit produced by the Solar lexer.
//
// For STRING tokens Literal holds the string value with escapes already
// processed; for every other type it is the exact source text.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// Pos returns the token's source position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Col: t.Col}
}

// String returns the literal text of the token, useful in error messages.
func (t Token) String() string {
	return t.Literal
}
