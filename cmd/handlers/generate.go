package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogforge/internal/config"
	"blogforge/internal/pipeline"
	"blogforge/internal/store"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var keywords []string
	var showTrace bool

	cmd := &cobra.Command{
		Use:   "generate <project-id>",
		Short: "Run the generation pipeline for one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Get()

			db, err := store.New(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			pipe, _, err := buildPipeline(ctx, cfg, db)
			if err != nil {
				return err
			}

			result, err := pipe.Run(ctx, pipeline.Request{ProjectID: args[0], Keywords: keywords})
			if err != nil {
				return err
			}

			fmt.Printf("Title: %s\n", result.Content.Title)
			fmt.Printf("Tags:  %v\n", result.Content.Tags)
			if result.DraftURL != "" {
				fmt.Printf("Draft: %s\n", result.DraftURL)
			}
			if result.PublishWarning != "" {
				fmt.Printf("Publish warning: %s\n", result.PublishWarning)
			}
			if showTrace && result.DebugTrace != nil {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result.DebugTrace); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "keyword to feature (first one becomes the main keyword)")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the generation debug trace as JSON")
	return cmd
}
