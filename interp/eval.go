package interp

import (
	"github.com/metaphox/solar/ast"
)

func (in *Interpreter) evalExpression(e *ast.Expression) (Value, error) {
	acc, err := in.evalTerm(e.Head)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Tail {
		right, err := in.evalTerm(op.Term)
		if err != nil {
			return nil, err
		}
		if acc, err = arith(op.Token, acc, right); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (in *Interpreter) evalTerm(t *ast.Term) (Value, error) {
	acc, err := in.evalFactor(t.Head)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Tail {
		right, err := in.evalFactor(op.Factor)
		if err != nil {
			return nil, err
		}
		if acc, err = arith(op.Token, acc, right); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (in *Interpreter) evalFactor(f ast.Factor) (Value, error) {
	switch f := f.(type) {
	case *ast.IntLiteral:
		return f.Value, nil
	case *ast.StringLiteral:
		return f.Value, nil
	case *ast.Identifier:
		v, ok := in.lookup(f.Name)
		if !ok {
			return nil, errorf(f, "undefined variable %q", f.Name)
		}
		return v, nil
	case *ast.ParenExpr:
		return in.evalExpression(f.Inner)
	}
	return nil, errorf(f, "unsupported factor %T", f)
}

// arith applies a binary arithmetic operator. '+' adds two ints and
// concatenates anything else; the other operators take ints only.
func arith(op ast.Token, left, right Value) (Value, error) {
	l, lok := left.(int64)
	r, rok := right.(int64)
	if op.Type == ast.PLUS && !(lok && rok) {
		return Format(left) + Format(right), nil
	}
	if !lok || !rok {
		return nil, &RuntimeError{Pos: op.Pos(),
			Msg: "operator " + op.Literal + " is not supported for " + typeName(left) + " and " + typeName(right)}
	}
	switch op.Type {
	case ast.PLUS:
		return l + r, nil
	case ast.MINUS:
		return l - r, nil
	case ast.ASTERISK:
		return l * r, nil
	case ast.SLASH:
		if r == 0 {
			return nil, &RuntimeError{Pos: op.Pos(), Msg: "division by zero"}
		}
		return l / r, nil
	}
	return nil, &RuntimeError{Pos: op.Pos(), Msg: "unknown operator " + op.Literal}
}

// evalCondition evaluates the condition of an if or while.
func (in *Interpreter) evalCondition(b ast.BooleanExpr) (bool, error) {
	switch b := b.(type) {
	case *ast.BoolLiteral:
		return b.Value, nil
	case *ast.ParenBool:
		return in.evalCondition(b.Inner)
	case *ast.Comparison:
		left, err := in.evalExpression(b.Left)
		if err != nil {
			return false, err
		}
		right, err := in.evalExpression(b.Right)
		if err != nil {
			return false, err
		}
		return compare(b.Token, left, right)
	}
	return false, errorf(b, "unsupported condition %T", b)
}

// compare applies a relational operator. Equality works on any pair of values
// and is false across types; ordering takes ints only.
func compare(op ast.Token, left, right Value) (bool, error) {
	switch op.Type {
	case ast.EQ:
		return left == right, nil
	case ast.NEQ:
		return left != right, nil
	}
	l, lok := left.(int64)
	r, rok := right.(int64)
	if !lok || !rok {
		return false, &RuntimeError{Pos: op.Pos(),
			Msg: "operator " + op.Literal + " requires integers, got " + typeName(left) + " and " + typeName(right)}
	}
	switch op.Type {
	case ast.LT:
		return l < r, nil
	case ast.GT:
		return l > r, nil
	case ast.LTE:
		return l <= r, nil
	case ast.GTE:
		return l >= r, nil
	}
	return false, &RuntimeError{Pos: op.Pos(), Msg: "unknown operator " + op.Literal}
}
