package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/conectarapak/conectar/internal/ai"
	"github.com/conectarapak/conectar/internal/api"
	"github.com/conectarapak/conectar/internal/cli"
	"github.com/conectarapak/conectar/internal/config"
	"github.com/conectarapak/conectar/internal/db"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration failed: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "reset-recovery" {
		if len(os.Args) < 3 {
			log.Fatal("usage: conectar reset-recovery <email>")
		}
		if err := cli.RunResetRecoveryCommand(cfg.DBPath, os.Args[2]); err != nil {
			log.Fatalf("reset-recovery failed: %v", err)
		}
		return
	}

	location := mustLoadLocation(cfg.Timezone)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var generator ai.Generator = ai.Disabled{}
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		if err != nil {
			log.Fatalf("gemini init failed: %v", err)
		}
		generator = client
	} else {
		log.Print("CONECTAR_GEMINI_API_KEY not set, assistant and research queries will answer with fallbacks")
	}

	handler := api.NewHandler(database, generator, cfg.SecretKey, cfg.CookieSecure, location, time.Duration(cfg.FlowTTLMinutes)*time.Minute)

	app := fiber.New(fiber.Config{
		AppName:               "ConectarAPAK",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("ConectarAPAK listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
