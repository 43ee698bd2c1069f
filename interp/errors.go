package interp

import (
	"fmt"

	"github.com/metaphox/solar/ast"
)

// RuntimeError reports a failure while executing a program. Pos is the
// position of the node that failed.
type RuntimeError struct {
	Pos ast.Position
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: runtime error: %s", e.Pos, e.Msg)
}

// ExitError is returned by Run when the program calls exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func errorf(n ast.Node, format string, args ...any) error {
	return &RuntimeError{Pos: n.Pos(), Msg: fmt.Sprintf(format, args...)}
}
