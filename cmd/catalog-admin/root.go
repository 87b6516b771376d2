package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "catalog-admin",
	Short: "Catalog administration server for categories, products and users",
	Long: `catalog-admin serves the admin pages, the JSON API under /api and the
GraphQL endpoint at /graphql from one PostgreSQL-backed catalog.

The configuration file is taken from --config, then CONFIG_PATH, then
./config/local.yaml. Environment variables override file values.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML configuration file")

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())
}
