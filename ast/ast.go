// Package ast defines the Abstract Syntax Tree (AST) node types for the Solar language.
//
// The hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    Assignment, FunctionDecl, FunctionCallStmt
//	    IfElse, WhileLoop, ReturnStmt
//	  Expression, Term        (left-associative operator chains)
//	  Factor (interface)
//	    IntLiteral, StringLiteral, Identifier, ParenExpr
//	  BooleanExpr (interface)
//	    Comparison, BoolLiteral, ParenBool
//
// Every node records the token at which it starts; Pos() returns its position.
// Nodes form a strict tree: a child belongs to exactly one parent and there are
// no back-references.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Solar AST.
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String returns a compact, fully parenthesized representation of the node.
	// It is intended for debugging and test output, not pretty-printing.
	String() string
	// Pos returns the position of the token that began this node.
	Pos() Position
}

// Statement is a Node that can appear in a program or a block.
type Statement interface {
	Node
	statementNode()
}

// Factor is the smallest expression unit.
type Factor interface {
	Node
	factorNode()
}

// BooleanExpr is a condition of an if statement or while loop.
type BooleanExpr interface {
	Node
	booleanNode()
}

// ── Program and blocks ────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser. It always holds at
// least one statement.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Pos returns the position of the first statement.
func (p *Program) Pos() Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return Position{Line: 1, Col: 1}
}

// String returns all statements, one per line, useful for snapshot testing.
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Block is a brace-delimited statement sequence. It may be empty.
type Block struct {
	Token      Token // the '{' token
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() Position        { return b.Token.Pos() }
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Param is a single function parameter name.
type Param struct {
	Name  string
	Token Token // the identifier token
}

// ── Statements ────────────────────────────────────────────────────────────────

// Assignment binds a value to a variable.
//
//	count = count + 1
type Assignment struct {
	Token Token // the identifier token
	Name  string
	Value *Expression
}

func (s *Assignment) statementNode()       {}
func (s *Assignment) TokenLiteral() string { return s.Token.Literal }
func (s *Assignment) Pos() Position        { return s.Token.Pos() }
func (s *Assignment) String() string {
	return fmt.Sprintf("%s = %s", s.Name, s.Value.String())
}

// FunctionDecl declares a named function.
//
//	fun add(a, b) { return a + b }
type FunctionDecl struct {
	Token  Token // the 'fun' token
	Name   string
	Params []Param
	Body   *Block
}

func (s *FunctionDecl) statementNode()       {}
func (s *FunctionDecl) TokenLiteral() string { return s.Token.Literal }
func (s *FunctionDecl) Pos() Position        { return s.Token.Pos() }
func (s *FunctionDecl) String() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("fun %s(%s) %s", s.Name, strings.Join(names, ", "), s.Body.String())
}

// FunctionCall invokes a function by name. Calls only appear as statements;
// their value is discarded.
type FunctionCall struct {
	Token Token // the identifier token
	Name  string
	Args  []*Expression
}

func (c *FunctionCall) TokenLiteral() string { return c.Token.Literal }
func (c *FunctionCall) Pos() Position        { return c.Token.Pos() }
func (c *FunctionCall) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// FunctionCallStmt wraps a call in statement position.
//
//	println("hello")
type FunctionCallStmt struct {
	Call *FunctionCall
}

func (s *FunctionCallStmt) statementNode()       {}
func (s *FunctionCallStmt) TokenLiteral() string { return s.Call.TokenLiteral() }
func (s *FunctionCallStmt) Pos() Position        { return s.Call.Pos() }
func (s *FunctionCallStmt) String() string       { return s.Call.String() }

// IfElse is a conditional statement. Else is nil when there is no else
// clause; `else { }` yields a non-nil Else with no statements.
//
//	if (x > 0) { y = 1 } else { y = 2 }
type IfElse struct {
	Token     Token // the 'if' token
	Condition BooleanExpr
	Then      *Block
	Else      *Block
}

func (s *IfElse) statementNode()       {}
func (s *IfElse) TokenLiteral() string { return s.Token.Literal }
func (s *IfElse) Pos() Position        { return s.Token.Pos() }
func (s *IfElse) String() string {
	out := fmt.Sprintf("if %s %s", s.Condition.String(), s.Then.String())
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileLoop repeats its body while the condition holds.
//
//	while (i < 10) { i = i + 1 }
type WhileLoop struct {
	Token     Token // the 'while' token
	Condition BooleanExpr
	Body      *Block
}

func (s *WhileLoop) statementNode()       {}
func (s *WhileLoop) TokenLiteral() string { return s.Token.Literal }
func (s *WhileLoop) Pos() Position        { return s.Token.Pos() }
func (s *WhileLoop) String() string {
	return fmt.Sprintf("while %s %s", s.Condition.String(), s.Body.String())
}

// ReturnStmt leaves the enclosing function.
//
//	return x * 2
//	return        (Value is nil)
type ReturnStmt struct {
	Token Token
	Value *Expression
}

func (s *ReturnStmt) statementNode()       {}
func (s *ReturnStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStmt) Pos() Position        { return s.Token.Pos() }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// ── Arithmetic ────────────────────────────────────────────────────────────────

// TermOp is one `+ term` or `- term` link of an Expression chain.
type TermOp struct {
	Token    Token  // the operator token
	Operator string // "+" or "-"
	Term     *Term
}

// Expression is an additive chain evaluated left to right:
// Head (op Term)*.
type Expression struct {
	Head *Term
	Tail []TermOp
}

func (e *Expression) TokenLiteral() string { return e.Head.TokenLiteral() }
func (e *Expression) Pos() Position        { return e.Head.Pos() }
func (e *Expression) String() string {
	out := e.Head.String()
	for _, op := range e.Tail {
		out = fmt.Sprintf("(%s %s %s)", out, op.Operator, op.Term.String())
	}
	return out
}

// FactorOp is one `* factor` or `/ factor` link of a Term chain.
type FactorOp struct {
	Token    Token  // the operator token
	Operator string // "*" or "/"
	Factor   Factor
}

// Term is a multiplicative chain evaluated left to right:
// Head (op Factor)*.
type Term struct {
	Head Factor
	Tail []FactorOp
}

func (t *Term) TokenLiteral() string { return t.Head.TokenLiteral() }
func (t *Term) Pos() Position        { return t.Head.Pos() }
func (t *Term) String() string {
	out := t.Head.String()
	for _, op := range t.Tail {
		out = fmt.Sprintf("(%s %s %s)", out, op.Operator, op.Factor.String())
	}
	return out
}

// ── Factors ───────────────────────────────────────────────────────────────────

// IntLiteral is a decimal integer literal value.
type IntLiteral struct {
	Token Token
	Value int64
}

func (f *IntLiteral) factorNode()          {}
func (f *IntLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *IntLiteral) Pos() Position        { return f.Token.Pos() }
func (f *IntLiteral) String() string       { return strconv.FormatInt(f.Value, 10) }

// StringLiteral is a string literal with escape sequences already processed.
type StringLiteral struct {
	Token Token
	Value string
}

func (f *StringLiteral) factorNode()          {}
func (f *StringLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *StringLiteral) Pos() Position        { return f.Token.Pos() }
func (f *StringLiteral) String() string       { return strconv.Quote(f.Value) }

// Identifier is a reference to a variable.
type Identifier struct {
	Token Token
	Name  string
}

func (f *Identifier) factorNode()          {}
func (f *Identifier) TokenLiteral() string { return f.Token.Literal }
func (f *Identifier) Pos() Position        { return f.Token.Pos() }
func (f *Identifier) String() string       { return f.Name }

// ParenExpr is a parenthesized expression used as a factor. It resets the
// precedence context: (1 + 2) * 3.
type ParenExpr struct {
	Token Token // the '(' token
	Inner *Expression
}

func (f *ParenExpr) factorNode()          {}
func (f *ParenExpr) TokenLiteral() string { return f.Token.Literal }
func (f *ParenExpr) Pos() Position        { return f.Token.Pos() }
func (f *ParenExpr) String() string       { return "(" + f.Inner.String() + ")" }

// ── Boolean expressions ───────────────────────────────────────────────────────

// Comparison relates exactly two expressions.
//
//	a + 1 <= b
type Comparison struct {
	Token    Token // the operator token
	Left     *Expression
	Operator string // "==", "!=", "<", ">", "<=", ">="
	Right    *Expression
}

func (b *Comparison) booleanNode()         {}
func (b *Comparison) TokenLiteral() string { return b.Left.TokenLiteral() }
func (b *Comparison) Pos() Position        { return b.Left.Pos() }
func (b *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// BoolLiteral is the literal true or false.
type BoolLiteral struct {
	Token Token
	Value bool
}

func (b *BoolLiteral) booleanNode()         {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Pos() Position        { return b.Token.Pos() }
func (b *BoolLiteral) String() string       { return strconv.FormatBool(b.Value) }

// ParenBool groups a single boolean expression. There are no logical
// operators, so the group never combines two conditions.
type ParenBool struct {
	Token Token // the '(' token
	Inner BooleanExpr
}

func (b *ParenBool) booleanNode()         {}
func (b *ParenBool) TokenLiteral() string { return b.Token.Literal }
func (b *ParenBool) Pos() Position        { return b.Token.Pos() }
func (b *ParenBool) String() string       { return "(" + b.Inner.String() + ")" }
