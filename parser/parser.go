// Package parser implements the Solar recursive-descent parser.
//
// The parser reads a token stream from a [TokenSource] (normally a
// [lexer.Lexer]) and builds an [ast.Program]. There is one function per
// grammar rule. Every decision looks at the current token only, except the
// statement dispatcher, which peeks one further token to tell an assignment
// (`x = …`) from a call (`x(…)`).
//
// Usage:
//
//	prog, err := parser.New(lexer.New(source)).Parse()
//	if err != nil { ... }
//
// Errors are fail-fast: the first malformed construct aborts the parse and
// Parse returns a nil program and an [*Error]. With [WithRecovery] the parser
// instead records the error, skips to the next statement and carries on, so
// several problems can be reported in one pass; the result is still a nil
// program plus an [ErrorList].
package parser

import (
	"errors"
	"fmt"

	"github.com/metaphox/solar/ast"
	"github.com/metaphox/solar/lexer"
)

// DefaultMaxDepth is the default maximum nesting depth of blocks and
// parenthesized groups.
const DefaultMaxDepth = 500

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithRecovery makes the parser continue after statement-level errors and
// report all of them as an [ErrorList].
func WithRecovery() Option {
	return func(p *Parser) {
		p.recover = true
	}
}

// Parser holds the state of a single parse. Create one with [New] and call
// [Parser.Parse] once; a Parser must not be shared between goroutines.
type Parser struct {
	c        *cursor
	maxDepth int
	depth    int
	recover  bool
	errors   ErrorList

	done bool
	prog *ast.Program
	err  error
}

// New creates a Parser that reads tokens from src.
func New(src TokenSource, opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	p.c = newCursor(src)
	return p
}

// ParseString lexes and parses input in one step.
func ParseString(input string, opts ...Option) (*ast.Program, error) {
	return New(lexer.New(input), opts...).Parse()
}

// Parse builds and returns the complete AST for the input. Calling Parse
// again returns the same result.
func (p *Parser) Parse() (*ast.Program, error) {
	if !p.done {
		p.prog, p.err = p.parseProgram()
		p.done = true
	}
	return p.prog, p.err
}

// parseProgram parses `statement+ EOF`.
func (p *Parser) parseProgram() (*ast.Program, error) {
	var stmts []ast.Statement
	for {
		more, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, more...)
		if p.c.curIs(ast.EOF) {
			break
		}
		// Only a stray '}' stops the statement loop before EOF.
		stray := p.errorAt(UnexpectedToken, RuleProgram, p.c.cur, "expected statement or end of input, got %v", p.c.cur.Type)
		if !p.recover {
			return nil, stray
		}
		p.errors = append(p.errors, stray)
		p.c.advance()
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	if len(stmts) == 0 {
		return nil, p.errorAt(UnexpectedEndOfInput, RuleProgram, p.c.cur, "expected at least one statement")
	}
	return &ast.Program{Statements: stmts}, nil
}

// ── Statement sequences ───────────────────────────────────────────────────────

// parseStatements parses statements until '}' or EOF, which it leaves
// unconsumed. It accepts zero statements; the program rule enforces one.
func (p *Parser) parseStatements() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.c.curIs(ast.RBRACE) && !p.c.curIs(ast.EOF) {
		start := p.c.consumed
		s, err := p.parseStatement()
		if err != nil {
			var perr *Error
			if !p.recover || !errors.As(err, &perr) || perr.Kind == RecursionLimitExceeded {
				return nil, err
			}
			p.errors = append(p.errors, perr)
			p.synchronize(start)
			continue
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// synchronize skips tokens until one that can begin a statement or end the
// enclosing block. Brace groups opened while skipping are skipped whole. It
// always consumes at least one token when the failed statement consumed none,
// so recovery cannot loop.
func (p *Parser) synchronize(start int) {
	if p.c.consumed == start && !p.c.curIs(ast.EOF) {
		p.c.advance()
	}
	depth := 0
	for !p.c.curIs(ast.EOF) {
		switch {
		case p.c.curIs(ast.LBRACE):
			depth++
		case p.c.curIs(ast.RBRACE):
			if depth == 0 {
				return
			}
			depth--
		case depth == 0 && p.atStatementBoundary():
			return
		}
		p.c.advance()
	}
}

func (p *Parser) atStatementBoundary() bool {
	switch p.c.cur.Type {
	case ast.FUN, ast.IF, ast.WHILE, ast.RETURN, ast.RBRACE, ast.EOF:
		return true
	case ast.IDENT:
		return p.c.peekIs(ast.ASSIGN) || p.c.peekIs(ast.LPAREN)
	}
	return false
}

// parseBlock parses `'{' statement* '}'`. rule names the enclosing construct
// for diagnostics about the braces.
func (p *Parser) parseBlock(rule Rule) (*ast.Block, error) {
	if err := p.enter(RuleBlock); err != nil {
		return nil, err
	}
	defer p.leave()

	open, err := p.expect(ast.LBRACE, rule)
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RBRACE, rule); err != nil {
		return nil, err
	}
	return &ast.Block{Token: open, Statements: stmts}, nil
}

// ── Statements ────────────────────────────────────────────────────────────────

// parseStatement dispatches on the current token, and for identifiers on the
// token after it.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.c.cur.Type {
	case ast.FUN:
		return p.parseFunctionDecl()
	case ast.IF:
		return p.parseIfElse()
	case ast.WHILE:
		return p.parseWhileLoop()
	case ast.RETURN:
		return p.parseReturnStmt()
	case ast.IDENT:
		switch p.c.peek.Type {
		case ast.ASSIGN:
			return p.parseAssignment()
		case ast.LPAREN:
			call, err := p.parseFunctionCall()
			if err != nil {
				return nil, err
			}
			return &ast.FunctionCallStmt{Call: call}, nil
		}
		return nil, p.errorAt(NoViableAlternative, RuleStatement, p.c.peek,
			"expected '=' or '(' after identifier %q, got %v", p.c.cur.Literal, p.c.peek.Type)
	}
	return nil, p.errorAt(NoViableAlternative, RuleStatement, p.c.cur, "expected statement, got %v", p.c.cur.Type)
}

// parseAssignment parses `identifier '=' expression`.
func (p *Parser) parseAssignment() (ast.Statement, error) {
	name, err := p.expect(ast.IDENT, RuleAssignment)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ASSIGN, RuleAssignment); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: name, Name: name.Literal, Value: value}, nil
}

// parseFunctionDecl parses `'fun' identifier '(' [parameterList] ')' block`.
func (p *Parser) parseFunctionDecl() (ast.Statement, error) {
	tok, err := p.expect(ast.FUN, RuleFunctionDecl)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(ast.IDENT, RuleFunctionDecl)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LPAREN, RuleFunctionDecl); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RPAREN, RuleFunctionDecl); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(RuleFunctionDecl)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Token: tok, Name: name.Literal, Params: params, Body: body}, nil
}

// parseParameterList parses `identifier (',' identifier)*`, or nothing when
// the list is absent. A trailing comma is an error.
func (p *Parser) parseParameterList() ([]ast.Param, error) {
	if !p.c.curIs(ast.IDENT) {
		return nil, nil
	}
	var params []ast.Param
	for {
		tok, err := p.expect(ast.IDENT, RuleParameterList)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: tok.Literal, Token: tok})
		if !p.c.curIs(ast.COMMA) {
			return params, nil
		}
		p.c.advance()
	}
}

// parseFunctionCall parses `identifier '(' [argumentList] ')'`.
func (p *Parser) parseFunctionCall() (*ast.FunctionCall, error) {
	name, err := p.expect(ast.IDENT, RuleFunctionCall)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LPAREN, RuleFunctionCall); err != nil {
		return nil, err
	}
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RPAREN, RuleFunctionCall); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Token: name, Name: name.Literal, Args: args}, nil
}

// parseArgumentList parses `expression (',' expression)*`, or nothing when
// the next token is ')'.
func (p *Parser) parseArgumentList() ([]*ast.Expression, error) {
	if p.c.curIs(ast.RPAREN) {
		return nil, nil
	}
	var args []*ast.Expression
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.c.curIs(ast.COMMA) {
			return args, nil
		}
		p.c.advance()
	}
}

// parseIfElse parses `'if' '(' booleanExpression ')' block ['else' block]`.
// There is no else-if form: `else if` must be written `else { if … }`.
func (p *Parser) parseIfElse() (ast.Statement, error) {
	tok, err := p.expect(ast.IF, RuleIfElse)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition(RuleIfElse)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock(RuleIfElse)
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfElse{Token: tok, Condition: cond, Then: then}
	if p.c.curIs(ast.ELSE) {
		p.c.advance()
		if stmt.Else, err = p.parseBlock(RuleIfElse); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseWhileLoop parses `'while' '(' booleanExpression ')' block`.
func (p *Parser) parseWhileLoop() (ast.Statement, error) {
	tok, err := p.expect(ast.WHILE, RuleWhileLoop)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition(RuleWhileLoop)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(RuleWhileLoop)
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Token: tok, Condition: cond, Body: body}, nil
}

// parseCondition parses the `'(' booleanExpression ')'` header shared by if
// and while.
func (p *Parser) parseCondition(rule Rule) (ast.BooleanExpr, error) {
	if _, err := p.expect(ast.LPAREN, rule); err != nil {
		return nil, err
	}
	cond, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RPAREN, rule); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseReturnStmt parses `'return' [expression]`. A value is parsed only when
// the next token can begin an expression.
func (p *Parser) parseReturnStmt() (ast.Statement, error) {
	tok, err := p.expect(ast.RETURN, RuleReturnStmt)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStmt{Token: tok}
	if startsExpression(p.c.cur.Type) {
		if stmt.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// expect consumes and returns the current token if it has type tt. Otherwise
// it returns an error attributed to rule and consumes nothing.
func (p *Parser) expect(tt ast.TokenType, rule Rule) (ast.Token, error) {
	if p.c.curIs(tt) {
		return p.c.advance(), nil
	}
	return ast.Token{}, p.errorAt(UnexpectedToken, rule, p.c.cur, "expected %v, got %v", tt, p.c.cur.Type)
}

// errorAt builds a diagnostic for tok. Running into EOF or an ILLEGAL token
// overrides kind, since those explain the failure better than the rule does.
func (p *Parser) errorAt(kind Kind, rule Rule, tok ast.Token, format string, args ...any) *Error {
	switch tok.Type {
	case ast.EOF:
		kind = UnexpectedEndOfInput
	case ast.ILLEGAL:
		kind = IllegalToken
	}
	return &Error{Kind: kind, Rule: rule, Token: tok, Msg: fmt.Sprintf(format, args...)}
}

// enter records one more level of nesting and fails once maxDepth is passed.
// Every successful enter must be paired with leave.
func (p *Parser) enter(rule Rule) error {
	if p.depth >= p.maxDepth {
		return &Error{
			Kind:  RecursionLimitExceeded,
			Rule:  rule,
			Token: p.c.cur,
			Msg:   fmt.Sprintf("nesting exceeds %d levels", p.maxDepth),
		}
	}
	p.depth++
	return nil
}

func (p *Parser) leave() { p.depth-- }
