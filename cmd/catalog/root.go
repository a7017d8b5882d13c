package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"civicfund-go/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the project catalog",
	Long:  "Runs the listing pipeline and wallet views against the seeded catalog without starting the server.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.LogLevel, "console"); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("file", "", "catalog seed file (defaults to CATALOG_FILE or the built-in catalog)")
	rootCmd.AddCommand(listCmd, walletCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
