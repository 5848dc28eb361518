package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"blogforge/internal/config"
	"blogforge/internal/store"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := store.New(ctx, config.Get().Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(ctx); err != nil {
				return err
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}
