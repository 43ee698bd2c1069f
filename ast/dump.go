package ast

import "strconv"

// Dump converts a node into nested maps and slices made of strings, ints,
// bools and nil, suitable for YAML or JSON encoding. Every map carries a
// "type" key naming the node and a "pos" key with its "line:col".
func Dump(n Node) any {
	switch n := n.(type) {
	case nil:
		return nil
	case *Program:
		return map[string]any{
			"type":       "Program",
			"statements": dumpStatements(n.Statements),
		}
	case *Block:
		if n == nil {
			return nil
		}
		return dumpStatements(n.Statements)
	case *Assignment:
		return node(n, "Assignment", map[string]any{
			"name":  n.Name,
			"value": Dump(n.Value),
		})
	case *FunctionDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		return node(n, "FunctionDecl", map[string]any{
			"name":   n.Name,
			"params": params,
			"body":   Dump(n.Body),
		})
	case *FunctionCallStmt:
		return Dump(n.Call)
	case *FunctionCall:
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = Dump(a)
		}
		return node(n, "FunctionCall", map[string]any{
			"name": n.Name,
			"args": args,
		})
	case *IfElse:
		fields := map[string]any{
			"condition": Dump(n.Condition),
			"then":      Dump(n.Then),
		}
		if n.Else != nil {
			fields["else"] = Dump(n.Else)
		}
		return node(n, "IfElse", fields)
	case *WhileLoop:
		return node(n, "WhileLoop", map[string]any{
			"condition": Dump(n.Condition),
			"body":      Dump(n.Body),
		})
	case *ReturnStmt:
		fields := map[string]any{}
		if n.Value != nil {
			fields["value"] = Dump(n.Value)
		}
		return node(n, "ReturnStmt", fields)
	case *Expression:
		if len(n.Tail) == 0 {
			return Dump(n.Head)
		}
		chain := []any{Dump(n.Head)}
		for _, op := range n.Tail {
			chain = append(chain, op.Operator, Dump(op.Term))
		}
		return node(n, "Expression", map[string]any{"chain": chain})
	case *Term:
		if len(n.Tail) == 0 {
			return Dump(n.Head)
		}
		chain := []any{Dump(n.Head)}
		for _, op := range n.Tail {
			chain = append(chain, op.Operator, Dump(op.Factor))
		}
		return node(n, "Term", map[string]any{"chain": chain})
	case *IntLiteral:
		return node(n, "Int", map[string]any{"value": n.Value})
	case *StringLiteral:
		return node(n, "String", map[string]any{"value": n.Value})
	case *Identifier:
		return node(n, "Identifier", map[string]any{"name": n.Name})
	case *ParenExpr:
		return node(n, "Paren", map[string]any{"inner": Dump(n.Inner)})
	case *Comparison:
		return node(n, "Comparison", map[string]any{
			"left":     Dump(n.Left),
			"operator": n.Operator,
			"right":    Dump(n.Right),
		})
	case *BoolLiteral:
		return node(n, "Bool", map[string]any{"value": n.Value})
	case *ParenBool:
		return node(n, "ParenBool", map[string]any{"inner": Dump(n.Inner)})
	}
	return nil
}

func dumpStatements(stmts []Statement) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = Dump(s)
	}
	return out
}

func node(n Node, typ string, fields map[string]any) map[string]any {
	fields["type"] = typ
	fields["pos"] = n.Pos().short()
	return fields
}

func (p Position) short() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}
