package main

import (
	"os"

	"github.com/joho/godotenv"

	"surveyor/internal/cli"
)

func main() {
	// Provider keys may live in a .env file next to the project.
	_ = godotenv.Load()
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
