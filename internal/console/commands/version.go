package commands

import (
	"runtime"

	"github.com/urfave/cli/v2"
)

// VersionCommand displays build information
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Display version information",
		Action: displayVersion,
	}
}

func displayVersion(c *cli.Context) error {
	r := newRenderer(c)
	r.Println("ProofMine Console")
	r.Printf("Version:      %s\n", Version)
	if GitCommit != "" {
		r.Printf("Git Commit:   %s\n", GitCommit)
	}
	if BuildDate != "" {
		r.Printf("Build Date:   %s\n", BuildDate)
	}
	r.Printf("Go Version:   %s\n", runtime.Version())
	return nil
}
