// ABOUTME: Main entry point for the Web Research API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webresearch-api/api"
	"webresearch-api/api/handlers"
	"webresearch-api/core/discovery"
	"webresearch-api/core/fetch"
	"webresearch-api/core/interfaces"
	"webresearch-api/core/research"
	"webresearch-api/infrastructure/cache/disk"
	"webresearch-api/infrastructure/cache/memory"
	stdhttp "webresearch-api/infrastructure/http/standard"
	logrusadapter "webresearch-api/infrastructure/logger/logrus"
	"webresearch-api/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrusadapter.New(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting Web Research API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"cache_dir":   cfg.Cache.Dir,
		"concurrency": cfg.Reader.MaxConcurrency,
	})

	cacheTTL := time.Duration(cfg.Cache.TTLHours) * time.Hour

	var cache interfaces.Cache
	diskCache, err := disk.NewDiskCache(cfg.Cache.Dir, cacheTTL, logger)
	if err != nil {
		logger.Error("Failed to create disk cache, falling back to memory", map[string]interface{}{
			"dir":   cfg.Cache.Dir,
			"error": err.Error(),
		})
		cache = memory.NewMemoryCache(cacheTTL)
	} else {
		cache = diskCache
	}

	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Reader.TimeoutSeconds) * time.Second)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	discoveryService := discovery.NewService(deps, discovery.Config{
		BaseURL:         cfg.Search.BaseURL,
		Region:          cfg.Search.Region,
		MaxResults:      cfg.Search.MaxResults,
		SnippetMaxChars: cfg.Search.SnippetMaxChars,
	})

	fetchService := fetch.NewService(deps, fetch.Config{
		ReaderBaseURL:   cfg.Reader.BaseURL,
		APIKey:          cfg.Reader.APIKey,
		Timeout:         time.Duration(cfg.Reader.TimeoutSeconds) * time.Second,
		MaxRetries:      cfg.Reader.MaxRetries,
		ContentMaxChars: cfg.Reader.ContentMaxChars,
		CacheTTL:        cacheTTL,
	})

	researchService := research.NewService(deps, discoveryService, fetchService, research.Config{
		TopK:           cfg.Search.TopK,
		MaxConcurrency: cfg.Reader.MaxConcurrency,
	})

	humaAPI, router := api.NewAPI(api.APIConfig{Logger: logger})

	searchHandler := handlers.NewSearchHandler(researchService)
	searchHandler.RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server exited", nil)
}
