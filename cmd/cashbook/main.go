package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/cashbook/internal/commands"
	"github.com/cleared-dev/cashbook/internal/logger"
)

func main() {
	// CASHBOOK_* settings may live in a .env file next to the ledger.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		log := logger.New()
		log.Error().Err(err).Msg("cashbook failed")
		os.Exit(1)
	}
}
