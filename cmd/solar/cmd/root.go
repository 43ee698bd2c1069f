package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/solar/config"
	"github.com/metaphox/solar/interp"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
)

// errReported means the command already printed its diagnostics.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "solar",
	Short: "Solar language tools",
	Long: `solar parses and runs programs written in the Solar scripting language.

Commands:
  tokens   - print the token stream of a file
  parse    - print the syntax tree or the parse errors
  run      - execute a program`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the command line and prints any error not yet reported.
func Execute() error {
	err := rootCmd.Execute()
	var exit *interp.ExitError
	if err != nil && !errors.Is(err, errReported) && !errors.As(err, &exit) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var exit *interp.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: solar.toml or solar.yaml in the current or a parent directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// loadConfig reads the configuration and sets up logging before any
// subcommand runs.
func loadConfig(cmd *cobra.Command, _ []string) error {
	var (
		path = cfgFile
		err  error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		wd, werr := os.Getwd()
		if werr != nil {
			return werr
		}
		cfg, path, err = config.FindAndLoad(wd)
	}
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	logger.Debug("config loaded", "component", "cli", "path", path, "command", cmd.Name())
	return nil
}

// readSource returns the contents of path, or standard input for "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
