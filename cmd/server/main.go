package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shelfview/backend/config"
	httpDelivery "github.com/shelfview/backend/internal/delivery/http"
	"github.com/shelfview/backend/internal/domain"
	"github.com/shelfview/backend/internal/infrastructure/cache"
	"github.com/shelfview/backend/internal/infrastructure/catalog"
	"github.com/shelfview/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debug := cfg.IsDevelopment()

	log.Printf("Starting ShelfView Backend v%s", httpDelivery.Version)
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog Source: %s", cfg.Catalog.Source)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	loadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	products, err := catalog.Load(loadCtx, newProductSource(cfg, debug))
	cancel()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	optionsCache, closeCache := newCache(cfg)
	defer closeCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(products, usecase.CatalogServiceConfig{
		RetrievalDelay: cfg.Catalog.RetrievalDelay,
	})

	optionsService := usecase.NewOptionsService(optionsCache, products, usecase.OptionsServiceConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: debug,
	})

	session := usecase.NewFilterSession(catalogService, usecase.FilterSessionConfig{
		DebounceDelay:      cfg.Filters.DebounceDelay,
		DiscardStale:       cfg.Filters.DiscardStale,
		EnableDebugLogging: debug,
	})
	defer session.Close()

	log.Printf("Filters: retrieval delay=%s, debounce=%s, discard stale=%v",
		catalogService.Delay(),
		cfg.Filters.DebounceDelay,
		cfg.Filters.DiscardStale)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, optionsService, session)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newProductSource(cfg *config.Config, debug bool) domain.ProductSource {
	switch cfg.Catalog.Source {
	case "file":
		log.Printf("Catalog file: %s", cfg.Catalog.Path)
		return catalog.FileSource{Path: cfg.Catalog.Path}
	case "remote":
		client := catalog.NewClient(cfg.Catalog.RemoteURL)
		if debug {
			client.SetDebug(true)
			log.Printf("Catalog client debug mode enabled")
		}
		return client
	default:
		return catalog.EmbeddedSource{}
	}
}

func newCache(cfg *config.Config) (domain.CacheRepository, func()) {
	if cfg.Cache.Type == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "shelfview:")
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		return redisCache, func() { redisCache.Close() }
	}

	memoryCache := cache.NewMemoryCache(0)
	return memoryCache, func() { memoryCache.Close() }
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
