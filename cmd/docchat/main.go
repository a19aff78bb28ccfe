package main

import (
	"github.com/joho/godotenv"

	"docchat/internal/cli"
)

func main() {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	cli.Execute()
}
