package main

import (
	"github.com/spf13/cobra"

	"github.com/rechnung-app/rechnung/internal/services"
	"github.com/rechnung-app/rechnung/internal/storage"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "rechnung",
	Short:   "Rechnung - invoicing for German small businesses",
	Long:    `Rechnung manages clients, invoices and business settings for a single user, renders German-format invoice documents and keeps everything in a local sqlite file.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}

// openStores opens the sqlite gateway and the three loaded services on top
// of it. The schema-version check runs as part of Open.
func openStores(dbPath string) (*storage.SQLiteGateway, *services.InvoiceService, *services.ClientService, *services.SettingsService, error) {
	gw, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	settings := services.NewSettingsService(gw)
	invoices := services.NewInvoiceService(gw)
	clients := services.NewClientService(gw)
	for _, load := range []func() error{settings.Load, invoices.Load, clients.Load} {
		if err := load(); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return gw, invoices, clients, settings, nil
}
