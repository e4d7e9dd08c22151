package main

import (
	"os"

	"github.com/oria-mc/oria/cli/commands"
	"github.com/oria-mc/oria/cli/internal/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}
