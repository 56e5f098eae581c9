package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ordkort/ordkort/cmd"
)

func main() {
	// Optional .env for API keys and path overrides; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
