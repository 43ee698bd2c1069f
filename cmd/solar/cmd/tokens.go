package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/solar/parser"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a source file",
	Long: `Print every token of a Solar source file with its position.

Use "-" as the file name to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	addFormatFlag(tokensCmd)
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	toks := parser.Tokenize(src)
	logger.Debug("tokenized", "component", "cli", "file", args[0], "tokens", len(toks))

	out := cmd.OutOrStdout()
	if format == "text" {
		for _, tok := range toks {
			fmt.Fprintf(out, "%d:%d\t%-14s %q\n", tok.Line, tok.Col, tok.Type, tok.Literal)
		}
		return nil
	}

	records := make([]map[string]any, len(toks))
	for i, tok := range toks {
		records[i] = map[string]any{
			"type":    tok.Type.String(),
			"literal": tok.Literal,
			"line":    tok.Line,
			"col":     tok.Col,
		}
	}
	return encode(out, format, records)
}
