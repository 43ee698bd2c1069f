// Package parser_test contains tests for the Solar recursive-descent parser.
//
// Each test parses a snippet, inspects the returned AST via type assertions,
// and fails with a descriptive message on mismatch.
//
// Test categories:
//   - Statements:  assignment, fun, call, if/else, while, return
//   - Expressions: literals, precedence, associativity, parentheses
//   - Conditions:  comparisons, literals, grouping and the '(' ambiguity
//   - Errors:      every error kind, positions, rule attribution
//   - Recovery, recursion limit, idempotence
package parser_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/metaphox/solar/ast"
	"github.com/metaphox/solar/parser"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// parse runs the full parser on input and fails the test on error or if the
// number of top-level statements doesn't match want.
func parse(t *testing.T, input string, wantStmts int) *ast.Program {
	t.Helper()
	prog, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	if len(prog.Statements) != wantStmts {
		t.Fatalf("expected %d statements, got %d", wantStmts, len(prog.Statements))
	}
	return prog
}

// firstStmt parses a single-statement program and returns the statement.
func firstStmt(t *testing.T, input string) ast.Statement {
	t.Helper()
	return parse(t, input, 1).Statements[0]
}

// parseErr parses input, expects failure, and returns the diagnostic.
func parseErr(t *testing.T, input string) *parser.Error {
	t.Helper()
	prog, err := parser.ParseString(input)
	if err == nil {
		t.Fatalf("parse %q: expected error, got program %q", input, prog.String())
	}
	if prog != nil {
		t.Fatalf("parse %q: expected nil program alongside error", input)
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("parse %q: expected *parser.Error, got %T", input, err)
	}
	return perr
}

// exprOf returns the value of `x = <expr>`.
func exprOf(t *testing.T, input string) *ast.Expression {
	t.Helper()
	as, ok := firstStmt(t, "x = "+input).(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment")
	}
	return as.Value
}

// condOf returns the condition of `if (<cond>) { }`.
func condOf(t *testing.T, cond string) ast.BooleanExpr {
	t.Helper()
	ie, ok := firstStmt(t, "if ("+cond+") { }").(*ast.IfElse)
	if !ok {
		t.Fatalf("expected *ast.IfElse")
	}
	return ie.Condition
}

// single unwraps an expression that consists of exactly one factor.
func single(t *testing.T, e *ast.Expression) ast.Factor {
	t.Helper()
	if len(e.Tail) != 0 || len(e.Head.Tail) != 0 {
		t.Fatalf("expected a single factor, got %s", e.String())
	}
	return e.Head.Head
}

func assertIntLit(t *testing.T, f ast.Factor, val int64) {
	t.Helper()
	lit, ok := f.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected *ast.IntLiteral, got %T (%s)", f, f.String())
	}
	if lit.Value != val {
		t.Fatalf("IntLiteral value: got %d, want %d", lit.Value, val)
	}
}

func assertIdent(t *testing.T, f ast.Factor, name string) {
	t.Helper()
	id, ok := f.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected *ast.Identifier, got %T", f)
	}
	if id.Name != name {
		t.Fatalf("identifier name: got %q, want %q", id.Name, name)
	}
}

// ── Programs ──────────────────────────────────────────────────────────────────

func TestParser_StatementCountAndOrder(t *testing.T) {
	prog := parse(t, `
a = 1
fun f(x) { return x }
f(a)
if (a < 2) { a = 2 }
while (a > 0) { a = a - 1 }
return`, 6)

	want := []string{"*ast.Assignment", "*ast.FunctionDecl", "*ast.FunctionCallStmt",
		"*ast.IfElse", "*ast.WhileLoop", "*ast.ReturnStmt"}
	for i, s := range prog.Statements {
		if got := reflect.TypeOf(s).String(); got != want[i] {
			t.Errorf("statement %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestParser_EmptyProgram(t *testing.T) {
	for _, input := range []string{"", "   ", "// only a comment\n/* and a block */"} {
		perr := parseErr(t, input)
		if perr.Kind != parser.UnexpectedEndOfInput {
			t.Errorf("%q: kind = %v, want UnexpectedEndOfInput", input, perr.Kind)
		}
		if perr.Rule != parser.RuleProgram {
			t.Errorf("%q: rule = %s, want program", input, perr.Rule)
		}
	}
}

func TestParser_StrayClosingBrace(t *testing.T) {
	perr := parseErr(t, "x = 1 }")
	if perr.Kind != parser.UnexpectedToken || perr.Rule != parser.RuleProgram {
		t.Errorf("got %v in %s, want UnexpectedToken in program", perr.Kind, perr.Rule)
	}
	if perr.Token.Col != 7 {
		t.Errorf("col = %d, want 7", perr.Token.Col)
	}
}

// ── Statements ────────────────────────────────────────────────────────────────

func TestParser_Assignment(t *testing.T) {
	as, ok := firstStmt(t, `answer = 42`).(*ast.Assignment)
	if !ok {
		t.Fatal("expected *ast.Assignment")
	}
	if as.Name != "answer" {
		t.Errorf("name: got %q", as.Name)
	}
	assertIntLit(t, single(t, as.Value), 42)
}

func TestParser_AssignmentString(t *testing.T) {
	as := firstStmt(t, `greeting = "hi\tthere"`).(*ast.Assignment)
	str, ok := single(t, as.Value).(*ast.StringLiteral)
	if !ok || str.Value != "hi\tthere" {
		t.Errorf("value: got %v", as.Value)
	}
}

func TestParser_FunctionDecl(t *testing.T) {
	fd, ok := firstStmt(t, `fun add(a, b) { sum = a + b return sum }`).(*ast.FunctionDecl)
	if !ok {
		t.Fatal("expected *ast.FunctionDecl")
	}
	if fd.Name != "add" {
		t.Errorf("name: got %q", fd.Name)
	}
	if len(fd.Params) != 2 || fd.Params[0].Name != "a" || fd.Params[1].Name != "b" {
		t.Errorf("params: got %+v", fd.Params)
	}
	if len(fd.Body.Statements) != 2 {
		t.Fatalf("body: got %d statements, want 2", len(fd.Body.Statements))
	}
}

func TestParser_FunctionDeclNoParamsReturnNoValue(t *testing.T) {
	fd := firstStmt(t, `fun f() { return }`).(*ast.FunctionDecl)
	if len(fd.Params) != 0 {
		t.Errorf("expected no params, got %d", len(fd.Params))
	}
	if len(fd.Body.Statements) != 1 {
		t.Fatalf("body: got %d statements, want 1", len(fd.Body.Statements))
	}
	rs, ok := fd.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fd.Body.Statements[0])
	}
	if rs.Value != nil {
		t.Errorf("expected no return value, got %s", rs.Value.String())
	}
}

func TestParser_FunctionDeclEmptyBody(t *testing.T) {
	fd := firstStmt(t, `fun noop() {}`).(*ast.FunctionDecl)
	if len(fd.Body.Statements) != 0 {
		t.Errorf("expected empty body, got %d statements", len(fd.Body.Statements))
	}
}

func TestParser_DuplicateParamsAccepted(t *testing.T) {
	fd := firstStmt(t, `fun f(a, a) {}`).(*ast.FunctionDecl)
	if len(fd.Params) != 2 {
		t.Errorf("params: got %d, want 2", len(fd.Params))
	}
}

func TestParser_FunctionCallStatement(t *testing.T) {
	cs, ok := firstStmt(t, `f(1, 2, 3)`).(*ast.FunctionCallStmt)
	if !ok {
		t.Fatal("expected *ast.FunctionCallStmt")
	}
	if cs.Call.Name != "f" {
		t.Errorf("name: got %q", cs.Call.Name)
	}
	if len(cs.Call.Args) != 3 {
		t.Fatalf("args: got %d, want 3", len(cs.Call.Args))
	}
	for i, arg := range cs.Call.Args {
		assertIntLit(t, single(t, arg), int64(i+1))
	}
}

func TestParser_FunctionCallNoArgs(t *testing.T) {
	cs := firstStmt(t, `tick()`).(*ast.FunctionCallStmt)
	if len(cs.Call.Args) != 0 {
		t.Errorf("args: got %d, want 0", len(cs.Call.Args))
	}
}

func TestParser_FunctionCallExpressionArgs(t *testing.T) {
	cs := firstStmt(t, `println("n = " + n, (n + 1) * 2)`).(*ast.FunctionCallStmt)
	if got, want := cs.String(), `println(("n = " + n), (((n + 1)) * 2))`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParser_IfWithoutElse(t *testing.T) {
	ie, ok := firstStmt(t, `if (a < b) { x = 1 }`).(*ast.IfElse)
	if !ok {
		t.Fatal("expected *ast.IfElse")
	}
	if ie.Else != nil {
		t.Errorf("expected no else branch, got %s", ie.Else.String())
	}
	if len(ie.Then.Statements) != 1 {
		t.Errorf("then: got %d statements, want 1", len(ie.Then.Statements))
	}
}

func TestParser_IfElse(t *testing.T) {
	ie := firstStmt(t, `if (a < b) { x = 1 } else { x = 2 }`).(*ast.IfElse)
	if len(ie.Then.Statements) != 1 {
		t.Errorf("then: got %d statements, want 1", len(ie.Then.Statements))
	}
	if ie.Else == nil || len(ie.Else.Statements) != 1 {
		t.Fatalf("expected else branch with one statement, got %v", ie.Else)
	}
	as := ie.Else.Statements[0].(*ast.Assignment)
	assertIntLit(t, single(t, as.Value), 2)
}

func TestParser_IfEmptyElseIsPresent(t *testing.T) {
	ie := firstStmt(t, `if (true) { } else { }`).(*ast.IfElse)
	if ie.Else == nil {
		t.Fatal("empty else block must be present")
	}
	if len(ie.Else.Statements) != 0 {
		t.Errorf("else: got %d statements, want 0", len(ie.Else.Statements))
	}
}

func TestParser_ElseIfMustBeNested(t *testing.T) {
	perr := parseErr(t, `if (a < 1) { } else if (a < 2) { }`)
	if perr.Kind != parser.UnexpectedToken || perr.Token.Type != ast.IF {
		t.Errorf("got %v at %q, want UnexpectedToken at 'if'", perr.Kind, perr.Token.Literal)
	}

	ie := firstStmt(t, `if (a < 1) { } else { if (a < 2) { } }`).(*ast.IfElse)
	if _, ok := ie.Else.Statements[0].(*ast.IfElse); !ok {
		t.Errorf("expected nested *ast.IfElse in else block")
	}
}

func TestParser_WhileLoop(t *testing.T) {
	wl, ok := firstStmt(t, `while (i <= 10) { i = i + 1 println(i) }`).(*ast.WhileLoop)
	if !ok {
		t.Fatal("expected *ast.WhileLoop")
	}
	if wl.Condition.String() != "(i <= 10)" {
		t.Errorf("condition: got %s", wl.Condition.String())
	}
	if len(wl.Body.Statements) != 2 {
		t.Errorf("body: got %d statements, want 2", len(wl.Body.Statements))
	}
}

func TestParser_ReturnValueLookahead(t *testing.T) {
	tests := []struct {
		input     string
		wantValue string // "" means no value
		stmts     int
	}{
		{`return`, "", 1},
		{`return 1`, "1", 1},
		{`return "s"`, `"s"`, 1},
		{`return x`, "x", 1},
		{`return (1 + 2) * 3`, "(((1 + 2)) * 3)", 1},
		{`return if (true) { }`, "", 2},
		{`return fun g() { }`, "", 2},
		{`return while (false) { }`, "", 2},
		{`return return`, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parse(t, tt.input, tt.stmts)
			rs := prog.Statements[0].(*ast.ReturnStmt)
			got := ""
			if rs.Value != nil {
				got = rs.Value.String()
			}
			if got != tt.wantValue {
				t.Errorf("value: got %q, want %q", got, tt.wantValue)
			}
		})
	}
}

func TestParser_ReturnInsideBlockBeforeBrace(t *testing.T) {
	fd := firstStmt(t, `fun f() { if (true) { return } return 1 }`).(*ast.FunctionDecl)
	if len(fd.Body.Statements) != 2 {
		t.Fatalf("body: got %d statements, want 2", len(fd.Body.Statements))
	}
}

// ── Expressions ───────────────────────────────────────────────────────────────

func TestParser_MultiplicationBindsTighter(t *testing.T) {
	e := exprOf(t, `1 + 2 * 3`)
	if len(e.Tail) != 1 || e.Tail[0].Operator != "+" {
		t.Fatalf("expected one '+' link, got %s", e.String())
	}
	if len(e.Head.Tail) != 0 {
		t.Fatalf("left term should be a single factor")
	}
	assertIntLit(t, e.Head.Head, 1)
	right := e.Tail[0].Term
	assertIntLit(t, right.Head, 2)
	if len(right.Tail) != 1 || right.Tail[0].Operator != "*" {
		t.Fatalf("right term should be 2 * 3, got %s", right.String())
	}
	assertIntLit(t, right.Tail[0].Factor, 3)
}

func TestParser_ParenthesesOverridePrecedence(t *testing.T) {
	e := exprOf(t, `(1 + 2) * 3`)
	if len(e.Tail) != 0 {
		t.Fatalf("expected a single term, got %s", e.String())
	}
	paren, ok := e.Head.Head.(*ast.ParenExpr)
	if !ok {
		t.Fatalf("expected *ast.ParenExpr as first factor, got %T", e.Head.Head)
	}
	if paren.Inner.String() != "(1 + 2)" {
		t.Errorf("inner: got %s", paren.Inner.String())
	}
	if len(e.Head.Tail) != 1 || e.Head.Tail[0].Operator != "*" {
		t.Fatalf("expected '* 3', got %s", e.Head.String())
	}
	assertIntLit(t, e.Head.Tail[0].Factor, 3)
}

func TestParser_LeftAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`1 - 2 - 3`, "((1 - 2) - 3)"},
		{`8 / 4 / 2`, "((8 / 4) / 2)"},
		{`a * b + c * d - e`, "(((a * b) + (c * d)) - e)"},
		{`1 - (2 - 3)`, "(1 - ((2 - 3)))"},
		{`((x))`, "((x))"},
	}
	for _, tt := range tests {
		if got := exprOf(t, tt.input).String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParser_ExpressionChainsKeepSourceOrder(t *testing.T) {
	e := exprOf(t, `a + b - c`)
	if len(e.Tail) != 2 {
		t.Fatalf("expected 2 links, got %d", len(e.Tail))
	}
	assertIdent(t, e.Head.Head, "a")
	if e.Tail[0].Operator != "+" || e.Tail[1].Operator != "-" {
		t.Errorf("operators: got %s %s", e.Tail[0].Operator, e.Tail[1].Operator)
	}
	assertIdent(t, e.Tail[1].Term.Head, "c")
}

func TestParser_NoUnaryMinus(t *testing.T) {
	perr := parseErr(t, `x = -5`)
	if perr.Kind != parser.NoViableAlternative || perr.Rule != parser.RuleFactor {
		t.Errorf("got %v in %s, want NoViableAlternative in factor", perr.Kind, perr.Rule)
	}
	if perr.Token.Type != ast.MINUS {
		t.Errorf("offending token: got %v, want '-'", perr.Token.Type)
	}
}

func TestParser_IntegerOutOfRange(t *testing.T) {
	perr := parseErr(t, `x = 99999999999999999999`)
	if perr.Kind != parser.InvalidLiteral {
		t.Errorf("kind: got %v, want InvalidLiteral", perr.Kind)
	}
	if !errors.Is(perr, parser.ErrInvalidLiteral) {
		t.Error("errors.Is(err, ErrInvalidLiteral) = false")
	}
}

// ── Conditions ────────────────────────────────────────────────────────────────

func TestParser_Comparisons(t *testing.T) {
	for _, op := range []string{"==", "!=", "<", ">", "<=", ">="} {
		cmp, ok := condOf(t, "a + 1 "+op+" b * 2").(*ast.Comparison)
		if !ok {
			t.Fatalf("%s: expected *ast.Comparison", op)
		}
		if cmp.Operator != op {
			t.Errorf("operator: got %q, want %q", cmp.Operator, op)
		}
		if cmp.Left.String() != "(a + 1)" || cmp.Right.String() != "(b * 2)" {
			t.Errorf("%s: operands %s, %s", op, cmp.Left.String(), cmp.Right.String())
		}
	}
}

func TestParser_BoolLiterals(t *testing.T) {
	for input, want := range map[string]bool{"true": true, "false": false} {
		lit, ok := condOf(t, input).(*ast.BoolLiteral)
		if !ok {
			t.Fatalf("%s: expected *ast.BoolLiteral", input)
		}
		if lit.Value != want {
			t.Errorf("%s: got %v", input, lit.Value)
		}
	}
}

func TestParser_ConditionGrouping(t *testing.T) {
	tests := []struct {
		cond     string
		wantType string
		want     string
	}{
		{`(a < b)`, "*ast.ParenBool", "((a < b))"},
		{`((a < b))`, "*ast.ParenBool", "(((a < b)))"},
		{`(true)`, "*ast.ParenBool", "(true)"},
		{`(a) < b`, "*ast.Comparison", "((a) < b)"},
		{`(a + 1) * 2 < b`, "*ast.Comparison", "((((a + 1)) * 2) < b)"},
		{`((a)) == (b)`, "*ast.Comparison", "(((a)) == (b))"},
		{`((a + 1) < b)`, "*ast.ParenBool", "((((a + 1)) < b))"},
		{`((a) - 1 >= 0)`, "*ast.ParenBool", "((((a) - 1) >= 0))"},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			cond := condOf(t, tt.cond)
			if got := reflect.TypeOf(cond).String(); got != tt.wantType {
				t.Errorf("type: got %s, want %s", got, tt.wantType)
			}
			if got := cond.String(); got != tt.want {
				t.Errorf("string: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParser_ConditionRejects(t *testing.T) {
	tests := []struct {
		name  string
		cond  string
		kind  parser.Kind
		token ast.TokenType
	}{
		{"bare expression", `a`, parser.UnexpectedToken, ast.RPAREN},
		{"chained comparison", `a < b < c`, parser.UnexpectedToken, ast.LT},
		{"logical and", `a < b && c < d`, parser.IllegalToken, ast.ILLEGAL},
		{"comparing a boolean group", `(a < b) == c`, parser.UnexpectedToken, ast.EQ},
		{"literal compared", `true == x`, parser.UnexpectedToken, ast.EQ},
		{"negation", `!ready`, parser.IllegalToken, ast.ILLEGAL},
		{"empty condition", ``, parser.NoViableAlternative, ast.RPAREN},
		{"grouped bare expression", `(a)`, parser.UnexpectedToken, ast.RPAREN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, "if ("+tt.cond+") { }")
			if perr.Kind != tt.kind {
				t.Errorf("kind: got %v, want %v (%v)", perr.Kind, tt.kind, perr)
			}
			if perr.Token.Type != tt.token {
				t.Errorf("token: got %v, want %v", perr.Token.Type, tt.token)
			}
		})
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestParser_MissingExpressionIsEndOfInput(t *testing.T) {
	perr := parseErr(t, `x = `)
	if perr.Kind != parser.UnexpectedEndOfInput {
		t.Errorf("kind: got %v, want UnexpectedEndOfInput", perr.Kind)
	}
	if !errors.Is(perr, parser.ErrUnexpectedEOF) {
		t.Error("errors.Is(err, ErrUnexpectedEOF) = false")
	}
	if errors.Is(perr, parser.ErrUnexpectedToken) {
		t.Error("errors.Is(err, ErrUnexpectedToken) = true")
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  parser.Kind
		rule  parser.Rule
		line  int
		col   int
	}{
		{"statement starts with literal", `42`, parser.NoViableAlternative, parser.RuleStatement, 1, 1},
		{"identifier alone", `x`, parser.UnexpectedEndOfInput, parser.RuleStatement, 1, 2},
		{"identifier then operator", `x + 1`, parser.NoViableAlternative, parser.RuleStatement, 1, 3},
		{"else without if", `else { }`, parser.NoViableAlternative, parser.RuleStatement, 1, 1},
		{"fun without name", `fun () { }`, parser.UnexpectedToken, parser.RuleFunctionDecl, 1, 5},
		{"param trailing comma", `fun f(a,) { }`, parser.UnexpectedToken, parser.RuleParameterList, 1, 9},
		{"param not identifier", `fun f(1) { }`, parser.UnexpectedToken, parser.RuleFunctionDecl, 1, 7},
		{"fun missing body", `fun f()`, parser.UnexpectedEndOfInput, parser.RuleFunctionDecl, 1, 8},
		{"unclosed block", "fun f() {\n  x = 1\n", parser.UnexpectedEndOfInput, parser.RuleFunctionDecl, 3, 1},
		{"call unclosed", `f(1, 2`, parser.UnexpectedEndOfInput, parser.RuleFunctionCall, 1, 7},
		{"call missing comma", `f(1 2)`, parser.UnexpectedToken, parser.RuleFunctionCall, 1, 5},
		{"call trailing comma", `f(1,)`, parser.NoViableAlternative, parser.RuleFactor, 1, 5},
		{"if missing paren", `if a < b { }`, parser.UnexpectedToken, parser.RuleIfElse, 1, 4},
		{"while missing block", `while (true) x = 1`, parser.UnexpectedToken, parser.RuleWhileLoop, 1, 14},
		{"unbalanced paren", `x = (1 + 2`, parser.UnexpectedEndOfInput, parser.RuleFactor, 1, 11},
		{"assignment to call", `f() = 1`, parser.NoViableAlternative, parser.RuleStatement, 1, 5},
		{"unterminated string", `x = "abc`, parser.IllegalToken, parser.RuleFactor, 1, 5},
		{"stray bang", `x = 1 ! 2`, parser.IllegalToken, parser.RuleStatement, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.input)
			if perr.Kind != tt.kind {
				t.Errorf("kind: got %v, want %v (%v)", perr.Kind, tt.kind, perr)
			}
			if perr.Rule != tt.rule {
				t.Errorf("rule: got %s, want %s", perr.Rule, tt.rule)
			}
			if perr.Token.Line != tt.line || perr.Token.Col != tt.col {
				t.Errorf("position: got %d:%d, want %d:%d", perr.Token.Line, perr.Token.Col, tt.line, tt.col)
			}
		})
	}
}

func TestParser_ErrorMessage(t *testing.T) {
	perr := parseErr(t, "x = 1\ny = (2 + )")
	msg := perr.Error()
	for _, want := range []string{"line 2, col 10", "factor", `near ")"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

// ── Recovery ──────────────────────────────────────────────────────────────────

func TestParser_RecoveryReportsEveryStatementError(t *testing.T) {
	input := `x =
y = 2
fun (a) { }
z = 3 +
if (a < b) { w = } else { v = 1 }
}
ok()`
	prog, err := parser.ParseString(input, parser.WithRecovery())
	if prog != nil {
		t.Fatal("recovering parser must not return a program when errors were found")
	}
	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected parser.ErrorList, got %T", err)
	}
	wantLines := []int{2, 3, 5, 5, 6}
	if len(list) != len(wantLines) {
		t.Fatalf("got %d errors, want %d:\n%v", len(list), len(wantLines), err)
	}
	for i, e := range list {
		if e.Token.Line != wantLines[i] {
			t.Errorf("error %d: line %d, want %d (%v)", i, e.Token.Line, wantLines[i], e)
		}
	}
	if !errors.Is(err, parser.ErrNoViableAlternative) {
		t.Error("errors.Is should see through ErrorList")
	}
	if got := len(parser.Diagnostics(err)); got != len(wantLines) {
		t.Errorf("Diagnostics: got %d, want %d", got, len(wantLines))
	}
}

func TestParser_RecoveryOnValidInput(t *testing.T) {
	prog, err := parser.ParseString(`a = 1 b = 2`, parser.WithRecovery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(prog.Statements))
	}
}

func TestParser_RecoveryAlwaysTerminates(t *testing.T) {
	for _, input := range []string{"))))", "+ + +", "x x x", "{ { {", "} } }", "fun fun fun"} {
		_, err := parser.ParseString(input, parser.WithRecovery())
		if err == nil {
			t.Errorf("%q: expected errors", input)
		}
	}
}

// ── Recursion limit ───────────────────────────────────────────────────────────

func TestParser_RecursionLimit(t *testing.T) {
	deep := "x = " + strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)

	if _, err := parser.ParseString(deep); err != nil {
		t.Fatalf("default limit: unexpected error %v", err)
	}

	_, err := parser.ParseString(deep, parser.WithMaxDepth(10))
	if !errors.Is(err, parser.ErrRecursionLimit) {
		t.Fatalf("expected recursion limit error, got %v", err)
	}

	blocks := strings.Repeat("if (true) { ", 20) + strings.Repeat("}", 20)
	_, err = parser.ParseString(blocks, parser.WithMaxDepth(10), parser.WithRecovery())
	if !errors.Is(err, parser.ErrRecursionLimit) {
		t.Fatalf("recursion limit must abort even with recovery, got %v", err)
	}
}

func TestParser_PathologicalNestingDoesNotCrash(t *testing.T) {
	deep := "if (" + strings.Repeat("(", 100000) + "true" + strings.Repeat(")", 100000) + ") { }"
	_, err := parser.ParseString(deep)
	if !errors.Is(err, parser.ErrRecursionLimit) {
		t.Fatalf("expected recursion limit error, got %v", err)
	}
}

// ── Idempotence and token sources ─────────────────────────────────────────────

func TestParser_Idempotent(t *testing.T) {
	toks := parser.Tokenize(`
fun fact(n) {
    if (n <= 1) { return 1 }
    fact(n - 1)
    return n * (n - 1)
}
r = 0
while ((r) < 10) { r = r + 1 }`)

	first, err := parser.New(toks.Source()).Parse()
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := parser.New(toks.Source()).Parse()
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same tokens twice produced different trees")
	}
}

func TestParser_ParseTwiceReturnsSameResult(t *testing.T) {
	p := parser.New(parser.Tokenize(`a = 1`).Source())
	first, err1 := p.Parse()
	second, err2 := p.Parse()
	if first != second || err1 != err2 {
		t.Error("second Parse call returned a different result")
	}
}

func TestParser_TokenSliceWithoutEOF(t *testing.T) {
	toks := parser.TokenSlice{
		{Type: ast.IDENT, Literal: "x", Line: 1, Col: 1},
		{Type: ast.ASSIGN, Literal: "=", Line: 1, Col: 3},
		{Type: ast.INT, Literal: "7", Line: 1, Col: 5},
	}
	prog, err := parser.New(toks.Source()).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.String() != "x = 7\n" {
		t.Errorf("got %q", prog.String())
	}
}

func TestParser_Positions(t *testing.T) {
	prog := parse(t, "a = 1\n\nfun f() {\n  return a\n}", 2)
	if got := prog.Statements[1].Pos(); got != (ast.Position{Line: 3, Col: 1}) {
		t.Errorf("fun position: got %v", got)
	}
	fd := prog.Statements[1].(*ast.FunctionDecl)
	if got := fd.Body.Statements[0].Pos(); got != (ast.Position{Line: 4, Col: 3}) {
		t.Errorf("return position: got %v", got)
	}
}
