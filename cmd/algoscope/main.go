// ABOUTME: Entry point for the algoscope CLI.
// ABOUTME: Loads .env overrides before command dispatch so config sees them.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env files are fine; existing env vars are never clobbered.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
