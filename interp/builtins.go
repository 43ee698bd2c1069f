package interp

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/metaphox/solar/ast"
)

func (in *Interpreter) registerBuiltins() {
	for name, fn := range map[string]func(*Interpreter, *ast.FunctionCall, []Value) (Value, error){
		"println":            builtinPrintln,
		"exit":               builtinExit,
		"printStackTrace":    builtinPrintStackTrace,
		"printVariableTrace": builtinPrintVariableTrace,
	} {
		in.funcs[name] = &function{name: name, builtin: fn}
	}
}

// println writes a single argument as-is and several as `[a, b]`.
func builtinPrintln(in *Interpreter, _ *ast.FunctionCall, args []Value) (Value, error) {
	line := formatList(args)
	if len(args) == 1 {
		line = Format(args[0])
	}
	_, err := fmt.Fprintln(in.out, line)
	return nil, err
}

// exit stops the program. A missing or non-integer code exits with -1.
func builtinExit(in *Interpreter, call *ast.FunctionCall, args []Value) (Value, error) {
	code := -1
	if len(args) > 0 {
		if c, ok := args[0].(int64); ok {
			code = int(c)
		}
	}
	in.log.Info("program called exit", "code", code, "pos", call.Pos().String())
	return nil, &ExitError{Code: code}
}

// printStackTrace writes the active calls, innermost first.
func builtinPrintStackTrace(in *Interpreter, call *ast.FunctionCall, _ []Value) (Value, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "at printStackTrace (%s)\n", call.Pos())
	for i := len(in.frames) - 1; i >= 0; i-- {
		fr := in.frames[i]
		fmt.Fprintf(&sb, "at %s (%s)\n", fr.name, fr.call)
	}
	sb.WriteString("at <main>\n")
	_, err := io.WriteString(in.out, sb.String())
	return nil, err
}

// printVariableTrace writes the variables of every active frame, innermost
// first, followed by the globals. Names are sorted.
func builtinPrintVariableTrace(in *Interpreter, _ *ast.FunctionCall, _ []Value) (Value, error) {
	var sb strings.Builder
	writeVars := func(label string, vars map[string]Value) {
		sb.WriteString(label + ":")
		for _, name := range slices.Sorted(maps.Keys(vars)) {
			fmt.Fprintf(&sb, " %s=%s", name, Format(vars[name]))
		}
		sb.WriteByte('\n')
	}
	for i := len(in.frames) - 1; i >= 0; i-- {
		writeVars(in.frames[i].name, in.frames[i].vars)
	}
	writeVars("<globals>", in.globals)
	_, err := io.WriteString(in.out, sb.String())
	return nil, err
}
