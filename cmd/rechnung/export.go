package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rechnung-app/rechnung/internal/config"
	"github.com/rechnung-app/rechnung/internal/storage"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a full JSON snapshot of all data",
	Long: `Writes the complete dataset (settings, invoices, clients) as a single
JSON snapshot to stdout or, with -o, to a file. The snapshot is the same
format the HTTP /export endpoint serves.`,
	Example: `  rechnung export
  rechnung export -o backup.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the snapshot to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	gw, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	data, err := storage.Export(gw)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(exportOutput, data, 0o644)
}
