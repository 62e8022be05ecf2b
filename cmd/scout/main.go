package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"StockScout/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
