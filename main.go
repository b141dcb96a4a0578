// @title CandyPang Classroom API
// @version 1.0
// @description Backend for the CandyPang classroom gamification board.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey AccessCode
// @in header
// @name X-Access-Code

package main

import (
	"candypang_backend/internal/app"
	"candypang_backend/internal/config"
	"candypang_backend/pkg/configwatcher"
	"candypang_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	seedOnly := flag.Bool("seed-only", false, "reseed the roster and exit")
	reseed := flag.Bool("reseed", false, "force a reseed even when the version matches")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceReseed = *reseed || *seedOnly
	cfg.SeedOnly = *seedOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
