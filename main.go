package main

import (
	"log"
	"os"

	"github.com/example/flashdeck/internal/cli"
	"github.com/example/flashdeck/internal/config"
	"github.com/example/flashdeck/internal/database"
)

func main() {
	cfg := config.Load()

	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	app := cli.NewApp(cfg)
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		log.Println(err)
		database.Close()
		os.Exit(1)
	}
}
