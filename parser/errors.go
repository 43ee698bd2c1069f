package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metaphox/solar/ast"
)

// Kind classifies a parse failure.
type Kind int

const (
	// UnexpectedToken: a specific token was required and another was found.
	UnexpectedToken Kind = iota + 1
	// NoViableAlternative: the lookahead matched none of a rule's alternatives.
	NoViableAlternative
	// UnexpectedEndOfInput: the input ended while a rule expected more tokens.
	UnexpectedEndOfInput
	// RecursionLimitExceeded: nesting went deeper than the configured maximum.
	RecursionLimitExceeded
	// IllegalToken: the lexer could not classify the input at this position.
	IllegalToken
	// InvalidLiteral: an integer literal does not fit in 64 bits.
	InvalidLiteral
)

func (k Kind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case NoViableAlternative:
		return "no viable alternative"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case RecursionLimitExceeded:
		return "recursion limit exceeded"
	case IllegalToken:
		return "illegal token"
	case InvalidLiteral:
		return "invalid literal"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is matching against an *Error of the same Kind.
var (
	ErrUnexpectedToken     = &Error{Kind: UnexpectedToken}
	ErrNoViableAlternative = &Error{Kind: NoViableAlternative}
	ErrUnexpectedEOF       = &Error{Kind: UnexpectedEndOfInput}
	ErrRecursionLimit      = &Error{Kind: RecursionLimitExceeded}
	ErrIllegalToken        = &Error{Kind: IllegalToken}
	ErrInvalidLiteral      = &Error{Kind: InvalidLiteral}
)

// Rule names the grammar rule that was active when an error occurred.
type Rule string

const (
	RuleProgram           Rule = "program"
	RuleStatement         Rule = "statement"
	RuleAssignment        Rule = "assignment"
	RuleFunctionCall      Rule = "functionCall"
	RuleFunctionDecl      Rule = "functionDecl"
	RuleParameterList     Rule = "parameterList"
	RuleArgumentList      Rule = "argumentList"
	RuleBlock             Rule = "block"
	RuleExpression        Rule = "expression"
	RuleTerm              Rule = "term"
	RuleFactor            Rule = "factor"
	RuleIfElse            Rule = "ifElse"
	RuleWhileLoop         Rule = "whileLoop"
	RuleReturnStmt        Rule = "returnStmt"
	RuleBooleanExpression Rule = "booleanExpression"
)

// Error is a single parse diagnostic. Token is the offending token; its
// position is the position of the error.
type Error struct {
	Kind  Kind
	Rule  Rule
	Token ast.Token
	Msg   string
}

func (e *Error) Error() string {
	near := e.Token.Literal
	if e.Token.Type == ast.EOF {
		near = "EOF"
	}
	return fmt.Sprintf("line %d, col %d: %s: %s (near %q)",
		e.Token.Line, e.Token.Col, e.Rule, e.Msg, near)
}

// Pos returns the position of the offending token.
func (e *Error) Pos() ast.Position { return e.Token.Pos() }

// Is reports whether target is an *Error of the same Kind, which lets the
// package sentinels be used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// ErrorList is returned when the parser runs with recovery enabled. It holds
// every diagnostic in source order.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors:\n\t%s", len(l), strings.Join(msgs, "\n\t"))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Diagnostics flattens err into the parse errors it carries. It returns nil
// when err holds no *Error.
func Diagnostics(err error) []*Error {
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	var single *Error
	if errors.As(err, &single) {
		return []*Error{single}
	}
	return nil
}
