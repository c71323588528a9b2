package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udisondev/portalgate/internal/data"
)

// NewInitDBCmd creates the init-db subcommand.
func NewInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db <path>",
		Short: "Create the portal tables in a SQLite game database",
		Long: `Creates the reagent, fake-use, doodad func and skill effect tables in the
SQLite file at <path>. Existing tables and rows are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := data.InitGameDB(ctx, args[0]); err != nil {
				return fmt.Errorf("init-db: %w", err)
			}
			cmd.Printf("game schema ready: %s\n", args[0])
			return nil
		},
	}
}
