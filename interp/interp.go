// Package interp executes Solar programs by walking the AST produced by the
// parser.
//
// An Interpreter keeps its globals and function table across calls to Run, so
// several programs can be fed to the same instance in sequence.
//
// Scoping is two-level: the globals, and one frame per active function call.
// Reading a name looks in the current frame first and then in the globals.
// Assigning updates the binding that a read would find, and otherwise creates
// the name in the current frame (or in the globals at top level).
package interp

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/metaphox/solar/ast"
)

// DefaultMaxCallDepth bounds the number of nested function calls.
const DefaultMaxCallDepth = 1000

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where println writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithLogger sets the logger used for execution tracing.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

// WithMaxCallDepth sets the maximum call nesting. Values below 1 keep the
// default.
func WithMaxCallDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxCalls = n
		}
	}
}

// Interpreter executes programs. It is not safe for concurrent use.
type Interpreter struct {
	out      io.Writer
	log      *slog.Logger
	maxCalls int

	funcs   map[string]*function
	globals map[string]Value
	frames  []*frame
}

type function struct {
	name    string
	decl    *ast.FunctionDecl // nil for builtins
	builtin func(in *Interpreter, call *ast.FunctionCall, args []Value) (Value, error)
}

type frame struct {
	name string
	call ast.Position
	vars map[string]Value
	ret  Value
}

// flow tells a statement sequence whether to keep going.
type flow int

const (
	flowNext flow = iota
	flowReturn
)

// New creates an Interpreter with the builtin functions registered.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		out:      os.Stdout,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxCalls: DefaultMaxCallDepth,
		funcs:    make(map[string]*function),
		globals:  make(map[string]Value),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.registerBuiltins()
	return in
}

// Run executes prog. It returns an *ExitError when the program calls exit and
// a *RuntimeError when execution fails.
func (in *Interpreter) Run(prog *ast.Program) error {
	return in.RunContext(context.Background(), prog)
}

// RunContext is like Run but stops with ctx.Err() once ctx is done. The
// context is checked before every call and loop iteration.
func (in *Interpreter) RunContext(ctx context.Context, prog *ast.Program) error {
	in.log.Debug("run started", "statements", len(prog.Statements))
	in.frames = in.frames[:0]
	_, err := in.execStatements(ctx, prog.Statements)
	if err != nil {
		in.log.Debug("run stopped", "error", err)
		return err
	}
	in.log.Debug("run finished", "globals", len(in.globals), "functions", len(in.funcs))
	return nil
}

// Global returns the value of a global variable.
func (in *Interpreter) Global(name string) (Value, bool) {
	v, ok := in.globals[name]
	return v, ok
}

// ── Statements ────────────────────────────────────────────────────────────────

func (in *Interpreter) execStatements(ctx context.Context, stmts []ast.Statement) (flow, error) {
	for _, s := range stmts {
		f, err := in.exec(ctx, s)
		if err != nil || f == flowReturn {
			return f, err
		}
	}
	return flowNext, nil
}

func (in *Interpreter) exec(ctx context.Context, s ast.Statement) (flow, error) {
	switch s := s.(type) {
	case *ast.Assignment:
		v, err := in.evalExpression(s.Value)
		if err != nil {
			return flowNext, err
		}
		in.assign(s.Name, v)

	case *ast.FunctionDecl:
		return flowNext, in.declare(s)

	case *ast.FunctionCallStmt:
		_, err := in.call(ctx, s.Call)
		return flowNext, err

	case *ast.IfElse:
		ok, err := in.evalCondition(s.Condition)
		if err != nil {
			return flowNext, err
		}
		if ok {
			return in.execStatements(ctx, s.Then.Statements)
		}
		if s.Else != nil {
			return in.execStatements(ctx, s.Else.Statements)
		}

	case *ast.WhileLoop:
		for {
			if err := ctx.Err(); err != nil {
				return flowNext, err
			}
			ok, err := in.evalCondition(s.Condition)
			if err != nil {
				return flowNext, err
			}
			if !ok {
				break
			}
			f, err := in.execStatements(ctx, s.Body.Statements)
			if err != nil || f == flowReturn {
				return f, err
			}
		}

	case *ast.ReturnStmt:
		fr := in.current()
		if fr == nil {
			return flowNext, errorf(s, "return statement outside of a function")
		}
		fr.ret = nil
		if s.Value != nil {
			v, err := in.evalExpression(s.Value)
			if err != nil {
				return flowNext, err
			}
			fr.ret = v
		}
		return flowReturn, nil

	default:
		return flowNext, errorf(s, "unsupported statement %T", s)
	}
	return flowNext, nil
}

// declare registers a user function. Functions live in one global namespace
// and may only be declared outside function bodies.
func (in *Interpreter) declare(d *ast.FunctionDecl) error {
	if in.current() != nil {
		return errorf(d, "cannot define functions in this scope")
	}
	if _, exists := in.funcs[d.Name]; exists {
		return errorf(d, "function %q is already defined", d.Name)
	}
	in.funcs[d.Name] = &function{name: d.Name, decl: d}
	in.log.Debug("function declared", "function", d.Name, "params", len(d.Params))
	return nil
}

// call evaluates the arguments left to right and invokes the named function.
func (in *Interpreter) call(ctx context.Context, c *ast.FunctionCall) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := in.evalExpression(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := in.funcs[c.Name]
	if !ok {
		return nil, errorf(c, "undefined function %q", c.Name)
	}
	if fn.builtin != nil {
		return fn.builtin(in, c, args)
	}

	params := fn.decl.Params
	if len(args) != len(params) {
		return nil, errorf(c, "function %q expects %d argument(s), got %d", c.Name, len(params), len(args))
	}
	if len(in.frames) >= in.maxCalls {
		return nil, errorf(c, "call stack exceeds %d frames", in.maxCalls)
	}

	fr := &frame{name: c.Name, call: c.Pos(), vars: make(map[string]Value, len(params))}
	for i, p := range params {
		fr.vars[p.Name] = args[i]
	}
	in.frames = append(in.frames, fr)
	in.log.Debug("call", "function", c.Name, "depth", len(in.frames))

	_, err := in.execStatements(ctx, fn.decl.Body.Statements)
	in.frames = in.frames[:len(in.frames)-1]
	return fr.ret, err
}

// ── Scopes ────────────────────────────────────────────────────────────────────

func (in *Interpreter) current() *frame {
	if len(in.frames) == 0 {
		return nil
	}
	return in.frames[len(in.frames)-1]
}

func (in *Interpreter) lookup(name string) (Value, bool) {
	if fr := in.current(); fr != nil {
		if v, ok := fr.vars[name]; ok {
			return v, true
		}
	}
	v, ok := in.globals[name]
	return v, ok
}

func (in *Interpreter) assign(name string, v Value) {
	fr := in.current()
	if fr != nil {
		if _, ok := fr.vars[name]; ok {
			fr.vars[name] = v
			return
		}
		if _, ok := in.globals[name]; !ok {
			fr.vars[name] = v
			return
		}
	}
	in.globals[name] = v
}
