package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rechnung-app/rechnung/internal/config"
	"github.com/rechnung-app/rechnung/internal/logger"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
