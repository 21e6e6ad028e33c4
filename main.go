package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sasank-in/skin-disease/internal/assistant"
	"github.com/sasank-in/skin-disease/internal/auth"
	"github.com/sasank-in/skin-disease/internal/classifier"
	"github.com/sasank-in/skin-disease/internal/config"
	"github.com/sasank-in/skin-disease/internal/database"
	"github.com/sasank-in/skin-disease/internal/listing"
	"github.com/sasank-in/skin-disease/internal/router"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	flag.Parse()

	// load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close(db)

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	hasher, err := auth.NewHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		log.Fatalf("password hasher: %v", err)
	}
	tokens := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL())
	if cfg.Auth.Secret == "dev-secret-change-me" {
		log.Printf("warning: SECRET_KEY is the development default")
	}

	if err := database.SeedDemoUsers(db, hasher, cfg.Seed); err != nil {
		log.Fatalf("seed demo users: %v", err)
	}

	model, err := loadClassifier(cfg.Model)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}

	assist := assistant.New(assistant.Config{
		Groq:    assistant.ProviderSettings(cfg.Assistant.Groq),
		Gemini:  assistant.ProviderSettings(cfg.Assistant.Gemini),
		Timeout: cfg.Assistant.Timeout,
	}, nil)
	if name := assist.ProviderName(); name != "" {
		log.Printf("assistant provider: %s", name)
	} else {
		log.Printf("assistant provider: none, using heuristic answers")
	}

	scraper, closeScraper := buildScraper(cfg.Listing)
	defer closeScraper()

	handler, err := router.SetupRouter(router.Deps{
		Config:     cfg,
		DB:         db,
		Hasher:     hasher,
		Tokens:     tokens,
		Classifier: model,
		Assistant:  assist,
		Scraper:    scraper,
	})
	if err != nil {
		log.Fatalf("setup router: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run server: %v", err)
		}
	}()

	log.Printf("server listening on %s", addr)
	waitForShutdown(server)
}

func loadClassifier(cfg config.ModelConfig) (*classifier.Service, error) {
	if cfg.SkipLoad {
		log.Printf("model loading skipped; predictions will fail until a model is configured")
		return classifier.New(nil), nil
	}
	svc, err := classifier.Open(cfg.Path, nil)
	if err != nil {
		return nil, err
	}
	log.Printf("model loaded from %s (%d classes)", cfg.Path, len(svc.Names()))
	return svc, nil
}

// buildScraper wraps the Practo scraper in a redis cache when REDIS_ADDR is set.
func buildScraper(cfg config.ListingConfig) (listing.Scraper, func()) {
	practo := listing.NewPracto(cfg.UserAgent, cfg.Cookie, cfg.Timeout)
	if cfg.RedisAddr == "" {
		return practo, func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis %s unavailable, listing cache disabled: %v", cfg.RedisAddr, err)
		_ = rdb.Close()
		return practo, func() {}
	}
	log.Printf("listing cache: redis %s, ttl %s", cfg.RedisAddr, cfg.CacheTTL)
	return listing.NewCached(practo, rdb, cfg.CacheTTL), func() { _ = rdb.Close() }
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
