package cmd

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/metaphox/solar/interp"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a program",
	Long: `Parse and execute a Solar program. The process exits with the code the
program passes to exit(), or 1 on a parse or runtime error.

Use "-" as the file name to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	prog, src, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	in := interp.New(
		interp.WithOutput(cmd.OutOrStdout()),
		interp.WithLogger(logger.With("component", "interp")),
	)
	err = in.RunContext(ctx, prog)

	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		return reportRuntimeError(cmd.ErrOrStderr(), args[0], src, rerr)
	}
	return err
}
