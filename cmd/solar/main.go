package main

import (
	"os"

	"github.com/metaphox/solar/cmd/solar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
