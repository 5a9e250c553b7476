// @title VidyaMitra Backend API
// @version 1.0
// @description AI career coaching backend: mock interviews, quizzes, roadmaps, training plans and resume analysis.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"vidyamitra_backend/internal/app"
	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/pkg/configwatcher"
	"vidyamitra_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		log.Println("Config file changed, applying reloadable settings")
		application.ApplyConfig(newCfg)
	})

	if cfg.MigrateOnly {
		log.Println("Migrations complete, exiting")
		return
	}

	application.Run()
}
