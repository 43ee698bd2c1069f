package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metaphox/solar/ast"
	"github.com/metaphox/solar/interp"
	"github.com/metaphox/solar/parser"
)

var (
	colorError  = lipgloss.Color("#EF4444") // red
	colorAccent = lipgloss.Color("#F59E0B") // amber
	colorMuted  = lipgloss.Color("#6B7280") // gray
)

// styles renders the parts of a diagnostic.
type styles struct {
	label  func(...string) string
	title  func(...string) string
	gutter func(...string) string
	caret  func(...string) string
}

func plain(strs ...string) string { return strings.Join(strs, " ") }

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{label: plain, title: plain, gutter: plain, caret: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		label:  r.NewStyle().Bold(true).Foreground(colorError).Render,
		title:  r.NewStyle().Bold(true).Render,
		gutter: r.NewStyle().Foreground(colorMuted).Render,
		caret:  r.NewStyle().Bold(true).Foreground(colorAccent).Render,
	}
}

type diagnostic struct {
	file  string
	pos   ast.Position
	title string
	msg   string
}

// renderDiagnostic prints d followed by the offending source line with a
// caret under the reported column:
//
//	error: unexpected token: expected ')', got '{'
//	  --> main.sol:3:9
//	   |
//	 3 | if (a < b { }
//	   |           ^
func renderDiagnostic(w io.Writer, st styles, src string, d diagnostic) {
	fmt.Fprintf(w, "%s %s\n", st.label("error:"), st.title(d.title+": "+d.msg))
	fmt.Fprintf(w, "  %s %s:%d:%d\n", st.gutter("-->"), d.file, d.pos.Line, d.pos.Col)

	lines := strings.Split(src, "\n")
	if d.pos.Line < 1 || d.pos.Line > len(lines) {
		return
	}
	line := strings.TrimRight(lines[d.pos.Line-1], "\r")
	num := strconv.Itoa(d.pos.Line)
	blank := strings.Repeat(" ", len(num)) + " |"

	fmt.Fprintln(w, st.gutter(" "+blank))
	fmt.Fprintf(w, "%s %s\n", st.gutter(" "+num+" |"), line)
	fmt.Fprintf(w, "%s %s\n", st.gutter(" "+blank), caretIndent(line, d.pos.Col)+st.caret("^"))
}

// caretIndent returns the whitespace that lines a caret up with column col of
// line, keeping tabs so the caret stays aligned.
func caretIndent(line string, col int) string {
	var sb strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// reportParseErrors renders every parse diagnostic in err. It returns
// errReported when it printed something and err unchanged otherwise.
func reportParseErrors(w io.Writer, file, src string, err error) error {
	diags := parser.Diagnostics(err)
	if len(diags) == 0 {
		return err
	}
	st := newStyles(w, cfg.Output.Color)
	for _, e := range diags {
		renderDiagnostic(w, st, src, diagnostic{
			file:  file,
			pos:   e.Pos(),
			title: e.Kind.String(),
			msg:   fmt.Sprintf("%s (in %s)", e.Msg, e.Rule),
		})
	}
	if len(diags) > 1 {
		fmt.Fprintf(w, "%d errors\n", len(diags))
	}
	return errReported
}

// reportRuntimeError renders a runtime failure with its source location.
func reportRuntimeError(w io.Writer, file, src string, rerr *interp.RuntimeError) error {
	renderDiagnostic(w, newStyles(w, cfg.Output.Color), src, diagnostic{
		file:  file,
		pos:   rerr.Pos,
		title: "runtime error",
		msg:   rerr.Msg,
	})
	return errReported
}
