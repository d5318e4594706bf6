package main

import (
	"fmt"

	"github.com/spf13/cobra"

	engine "github.com/kolkov/vshell/awk"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vshell %s (awk %s)\n", version, engine.Version)
		},
	}
}
