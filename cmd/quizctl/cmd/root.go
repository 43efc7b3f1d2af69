// Package cmd contains the quizctl commands.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"quizmaster_app/internal/config"
	"quizmaster_app/internal/services"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "quizctl",
	Short: "QuizMaster maintenance commands",
	Long: `quizctl manages the QuizMaster database from the command line.

It reads the same configuration as the server: config/config.yaml, a .env
file and environment variables such as DATABASE_URL.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("database-url", "", "database URL (overrides DATABASE_URL)")
	_ = v.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	rootCmd.PersistentFlags().String("redis-url", "", "redis URL (overrides REDIS_URL)")
	_ = v.BindPFlag("redis_url", rootCmd.PersistentFlags().Lookup("redis-url"))
}

func initConfig() {
	_ = godotenv.Load()
}

func loadConfig() (*config.Config, error) {
	return config.LoadFrom(v)
}

// openDB opens and migrates the configured database.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := services.InitDB(cfg.DatabaseURL, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := services.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return db, nil
}

// openCache connects to Redis when redis_url is set. A connection failure is
// reported on warn and the command carries on without a cache, like the
// server and worker do.
func openCache(ctx context.Context, cfg *config.Config, warn io.Writer) *services.RedisCache {
	if cfg.RedisURL == "" {
		return nil
	}
	cache, err := services.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		fmt.Fprintf(warn, "warning: redis unavailable, running without cache: %v\n", err)
		return nil
	}
	return cache
}
