package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rescuelink/rescuelink-backend/reportservice"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	if err := reportservice.Run(); err != nil {
		os.Exit(1)
	}
}
