package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"motortown/core"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "web.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	if err := core.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	// Gorilla cookie store carries the one-shot flash notices.
	store := sessions.NewCookieStore([]byte(cfg.SessionKey))

	accountRepo := core.NewPgAccountRepository(db)
	inventoryRepo := core.NewPgInventoryRepository(db)
	cache := core.NewClassificationCache(redisClient, inventoryRepo, cfg.NavCacheTTL)
	tokens := core.NewTokenService(cfg)

	if err := core.BootstrapAdmin(ctx, db, accountRepo, cfg); err != nil {
		log.Fatalf("bootstrap admin failed: %v", err)
	}

	if cfg.SeedFile != "" {
		if err := core.LoadInventorySeed(ctx, cfg.SeedFile, inventoryRepo, cache); err != nil {
			log.Fatalf("failed to load inventory seed %s: %v", cfg.SeedFile, err)
		}
	}

	router, err := core.NewRouter(cfg, store, tokens, accountRepo, inventoryRepo, cache)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting storefront on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
