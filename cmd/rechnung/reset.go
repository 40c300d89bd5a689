package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rechnung-app/rechnung/internal/config"
	"github.com/rechnung-app/rechnung/internal/logger"
	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/storage"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all data and reinitialize defaults",
	Long: `Deletes all invoices, clients and settings and writes the default
settings back. Asks for confirmation unless --force is given.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.WithComponent("reset")

	if !resetForce {
		fmt.Printf("This deletes ALL data in %s. Type 'yes' to continue: ", cfg.DBPath)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	gw, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := gw.Clear(); err != nil {
		return err
	}
	if err := gw.SaveSettings(models.DefaultSettings()); err != nil {
		return err
	}
	log.Info().Str("db", cfg.DBPath).Msg("data reset")
	return nil
}
