package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quizmaster_app/internal/config"
	"quizmaster_app/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample categories and questions",
	Long: `Insert the six sample categories and one question for each.

Nothing is inserted when the database already has categories.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return seed(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func seed(ctx context.Context, cfg *config.Config, out, warn io.Writer) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	cache := openCache(ctx, cfg, warn)
	if cache != nil {
		defer cache.Close()
	}

	res, err := services.NewQuizService(db, cache).Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding sample data: %w", err)
	}

	if res.Categories == 0 {
		fmt.Fprintln(out, "Categories already exist, nothing to seed.")
		return nil
	}
	fmt.Fprintf(out, "Inserted %d categories and %d questions.\n", res.Categories, res.Questions)
	return nil
}
