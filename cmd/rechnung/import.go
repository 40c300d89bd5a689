package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rechnung-app/rechnung/internal/config"
	"github.com/rechnung-app/rechnung/internal/logger"
	"github.com/rechnung-app/rechnung/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply a JSON snapshot",
	Long: `Reads a snapshot file and applies it. A snapshot may carry any subset
of the keys (settings, invoices, clients); only the keys present are
replaced. A malformed snapshot leaves the store untouched.`,
	Example: `  rechnung import backup.json`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.WithComponent("import")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	gw, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := storage.Import(gw, data); err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}
	log.Info().Str("file", args[0]).Msg("snapshot imported")
	return nil
}
