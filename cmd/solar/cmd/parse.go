package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/solar/ast"
	"github.com/metaphox/solar/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its syntax tree",
	Long: `Parse a Solar source file. On success the syntax tree is printed as
text, YAML or JSON; otherwise every diagnostic is printed with the offending
source line.

Use "-" as the file name to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	addFormatFlag(parseCmd)
	parseCmd.Flags().Bool("recover", false, "keep parsing after an error and report every statement error")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	prog, _, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "text" {
		_, err := fmt.Fprint(out, prog.String())
		return err
	}
	return encode(out, format, ast.Dump(prog))
}

// parseFile reads and parses path with the configured parser options and
// the command's --recover flag, if it has one. Parse errors are rendered to
// stderr and reported as errReported.
func parseFile(cmd *cobra.Command, path string) (*ast.Program, string, error) {
	src, err := readSource(cmd, path)
	if err != nil {
		return nil, "", err
	}

	pc := cfg.Parser
	if f := cmd.Flags().Lookup("recover"); f != nil && f.Changed {
		pc.Recover, _ = cmd.Flags().GetBool("recover")
	}

	prog, err := parser.ParseString(src, pc.Options()...)
	if err != nil {
		logger.Debug("parse failed", "component", "cli", "file", path, "diagnostics", len(parser.Diagnostics(err)))
		return nil, src, reportParseErrors(cmd.ErrOrStderr(), path, src, err)
	}
	logger.Debug("parsed", "component", "cli", "file", path, "statements", len(prog.Statements))
	return prog, src, nil
}
