// Package migrate implements the database migration commands.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"verdant/internal/infrastructure/config"
	"verdant/internal/infrastructure/database"
	"verdant/internal/infrastructure/migration"
	"verdant/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: run pending migrations, roll back, and check status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*migration.GolangMigrateStrategy, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	strategy, ok := migration.NewGolangMigrateStrategy(scriptsPath).(*migration.GolangMigrateStrategy)
	if !ok {
		return nil, fmt.Errorf("unexpected migration strategy type")
	}
	return strategy, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return strategy.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return strategy.MigrateDown(database.Get(), steps)
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	version, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	logger.Info("migration status", "version", version, "dirty", dirty)
	return nil
}
