package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/uwcirg/waverify-auth/internal/app"
	"github.com/uwcirg/waverify-auth/internal/config"
)

func main() {
	// Optional local overrides; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
