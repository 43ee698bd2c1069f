package parser

import (
	"strconv"

	"github.com/metaphox/solar/ast"
)

// ── Arithmetic ────────────────────────────────────────────────────────────────
//
//	expression := term (('+'|'-') term)*
//	term       := factor (('*'|'/') factor)*
//	factor     := INT | STRING | IDENT | '(' expression ')'
//
// There is no unary minus; `-5` is rejected by parseFactor.

// startsExpression reports whether a token of type tt can begin an expression.
func startsExpression(tt ast.TokenType) bool {
	switch tt {
	case ast.INT, ast.STRING, ast.IDENT, ast.LPAREN:
		return true
	}
	return false
}

// parseExpression parses an additive chain.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	head, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return p.parseExpressionTail(head)
}

// parseExpressionTail parses the `(('+'|'-') term)*` links after head.
func (p *Parser) parseExpressionTail(head *ast.Term) (*ast.Expression, error) {
	expr := &ast.Expression{Head: head}
	for p.c.curIs(ast.PLUS) || p.c.curIs(ast.MINUS) {
		op := p.c.advance()
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr.Tail = append(expr.Tail, ast.TermOp{Token: op, Operator: op.Literal, Term: t})
	}
	return expr, nil
}

// parseTerm parses a multiplicative chain.
func (p *Parser) parseTerm() (*ast.Term, error) {
	head, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return p.parseTermTail(head)
}

// parseTermTail parses the `(('*'|'/') factor)*` links after head.
func (p *Parser) parseTermTail(head ast.Factor) (*ast.Term, error) {
	term := &ast.Term{Head: head}
	for p.c.curIs(ast.ASTERISK) || p.c.curIs(ast.SLASH) {
		op := p.c.advance()
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		term.Tail = append(term.Tail, ast.FactorOp{Token: op, Operator: op.Literal, Factor: f})
	}
	return term, nil
}

// continueExpression parses the rest of an expression whose first factor has
// already been parsed.
func (p *Parser) continueExpression(first ast.Factor) (*ast.Expression, error) {
	term, err := p.parseTermTail(first)
	if err != nil {
		return nil, err
	}
	return p.parseExpressionTail(term)
}

// parseFactor parses a literal, an identifier or a parenthesized expression.
func (p *Parser) parseFactor() (ast.Factor, error) {
	switch p.c.cur.Type {
	case ast.INT:
		tok := p.c.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &Error{Kind: InvalidLiteral, Rule: RuleFactor, Token: tok,
				Msg: "integer literal out of range"}
		}
		return &ast.IntLiteral{Token: tok, Value: v}, nil
	case ast.STRING:
		tok := p.c.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
	case ast.IDENT:
		tok := p.c.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}, nil
	case ast.LPAREN:
		return p.parseParenExpr()
	}
	return nil, p.errorAt(NoViableAlternative, RuleFactor, p.c.cur,
		"expected integer, string, identifier or '(', got %v", p.c.cur.Type)
}

// parseParenExpr parses `'(' expression ')'` in factor position.
func (p *Parser) parseParenExpr() (ast.Factor, error) {
	if err := p.enter(RuleFactor); err != nil {
		return nil, err
	}
	defer p.leave()

	open, err := p.expect(ast.LPAREN, RuleFactor)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RPAREN, RuleFactor); err != nil {
		return nil, err
	}
	return &ast.ParenExpr{Token: open, Inner: inner}, nil
}

// ── Boolean expressions ───────────────────────────────────────────────────────
//
//	booleanExpression := expression relop expression
//	                   | 'true' | 'false'
//	                   | '(' booleanExpression ')'
//
// A leading '(' may open either a boolean group, `(a < b)`, or the first
// factor of the left operand, `(a + 1) < b`. parseGroup reads the group and
// reports which of the two it turned out to be, so neither reading needs
// backtracking.

// parseBooleanExpression parses a condition.
func (p *Parser) parseBooleanExpression() (ast.BooleanExpr, error) {
	switch p.c.cur.Type {
	case ast.TRUE, ast.FALSE:
		return p.parseBoolLiteral(), nil
	case ast.LPAREN:
		cond, paren, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		if cond != nil {
			return cond, nil
		}
		left, err := p.continueExpression(paren)
		if err != nil {
			return nil, err
		}
		return p.parseComparison(left)
	}
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return p.parseComparison(left)
}

// parseGroup parses a parenthesized group at the start of a condition. It
// returns a *ast.ParenBool when the group holds a boolean expression and a
// *ast.ParenExpr when it holds a plain arithmetic expression; exactly one of
// the two results is non-nil on success.
func (p *Parser) parseGroup() (*ast.ParenBool, *ast.ParenExpr, error) {
	if err := p.enter(RuleBooleanExpression); err != nil {
		return nil, nil, err
	}
	defer p.leave()

	open, err := p.expect(ast.LPAREN, RuleBooleanExpression)
	if err != nil {
		return nil, nil, err
	}

	var (
		cond ast.BooleanExpr
		expr *ast.Expression
	)
	switch p.c.cur.Type {
	case ast.TRUE, ast.FALSE:
		cond = p.parseBoolLiteral()
	case ast.LPAREN:
		innerCond, innerParen, err := p.parseGroup()
		if err != nil {
			return nil, nil, err
		}
		if innerCond != nil {
			cond = innerCond
		} else if expr, err = p.continueExpression(innerParen); err != nil {
			return nil, nil, err
		}
	default:
		if expr, err = p.parseExpression(); err != nil {
			return nil, nil, err
		}
	}

	if expr != nil && p.c.cur.Type.IsRelational() {
		if cond, err = p.parseComparison(expr); err != nil {
			return nil, nil, err
		}
	}

	if cond != nil {
		if _, err := p.expect(ast.RPAREN, RuleBooleanExpression); err != nil {
			return nil, nil, err
		}
		return &ast.ParenBool{Token: open, Inner: cond}, nil, nil
	}
	if _, err := p.expect(ast.RPAREN, RuleFactor); err != nil {
		return nil, nil, err
	}
	return nil, &ast.ParenExpr{Token: open, Inner: expr}, nil
}

// parseComparison parses `relop expression` after an already parsed left
// operand. Exactly one relational operator is allowed per comparison.
func (p *Parser) parseComparison(left *ast.Expression) (ast.BooleanExpr, error) {
	if !p.c.cur.Type.IsRelational() {
		return nil, p.errorAt(UnexpectedToken, RuleBooleanExpression, p.c.cur,
			"expected relational operator, got %v", p.c.cur.Type)
	}
	op := p.c.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Token: op, Left: left, Operator: op.Literal, Right: right}, nil
}

// parseBoolLiteral consumes the current 'true' or 'false' token.
func (p *Parser) parseBoolLiteral() *ast.BoolLiteral {
	tok := p.c.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == ast.TRUE}
}
