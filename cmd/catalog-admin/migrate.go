package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustLoad(configPath)

			repos, err := repository.New(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("error accessing the database: %w", err)
			}
			defer repos.Close()

			if err := repository.Migrate(cmd.Context(), repos.DB); err != nil {
				return err
			}

			slog.Info("✅ Schema is up to date")

			return nil
		},
	}
}
