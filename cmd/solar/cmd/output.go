package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// addFormatFlag registers --format on c. When the flag is not given the
// configured output format applies.
func addFormatFlag(c *cobra.Command) {
	c.Flags().StringP("format", "f", "", "output format: text, yaml or json (default from config)")
}

func outputFormat(c *cobra.Command) (string, error) {
	format, _ := c.Flags().GetString("format")
	if !c.Flags().Changed("format") {
		format = cfg.Output.Format
	}
	switch format {
	case "text", "yaml", "json":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, yaml or json)", format)
}

// encode writes v as YAML or JSON.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("cannot encode as %q", format)
}
