package main

import (
	"os"

	"github.com/chimera-sh/chimera-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
