package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// .env carries the embedding API key during local use
	_ = godotenv.Load()
	Execute()
}
