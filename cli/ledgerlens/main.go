package main

import (
	"os"

	"github.com/joho/godotenv"

	ledgerlenscmder "github.com/ledgerlens/ledgerlens/cmd/ledgerlens"
)

func main() {
	// API keys (OPENAI_API_KEY) may live in a local .env file.
	_ = godotenv.Load()

	cmd := ledgerlenscmder.NewLedgerlensCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
