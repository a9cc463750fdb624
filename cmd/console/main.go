package main

import (
	"fmt"
	"os"

	"github.com/proofmine/proofmine-console/internal/console/commands"
)

func main() {
	app := commands.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
