package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portalcheck",
		Short:         "Offline checks for portal game data",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewInitDBCmd())

	return cmd
}
