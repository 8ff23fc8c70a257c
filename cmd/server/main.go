package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shivneri/backend/config"
	httpDelivery "github.com/shivneri/backend/internal/delivery/http"
	"github.com/shivneri/backend/internal/domain"
	"github.com/shivneri/backend/internal/infrastructure/cache"
	"github.com/shivneri/backend/internal/infrastructure/catalog"
	"github.com/shivneri/backend/internal/infrastructure/completion"
	"github.com/shivneri/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Shivneri Fresh Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	replyCache := cache.NewMemoryCache()
	log.Printf("Reply cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.LocalPath)

	var completer *completion.Client
	if cfg.Chat.APIKey != "" {
		completer = completion.NewClient(cfg.Chat.APIKey, cfg.Chat.BaseURL, cfg.Chat.Model,
			cfg.Chat.SystemPrompt, cfg.RateLimit.Completion)
		log.Printf("Completion API configured: %s (model: %s)", cfg.Chat.BaseURL, cfg.Chat.Model)
	} else {
		log.Printf("WARNING: Completion API key not configured - AI fallback disabled")
	}

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		if completer != nil {
			completer.SetDebug(true)
		}
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(catalogClient, usecase.SearchServiceConfig{
		BrandAliases:    cfg.Tables.BrandAliases,
		CategoryFixes:   cfg.Tables.CategoryFixes,
		KeywordSynonyms: cfg.Tables.KeywordSynonyms,
		Matcher: usecase.MatcherConfig{
			Threshold:          cfg.Matching.Threshold,
			BrandThreshold:     cfg.Matching.BrandThreshold,
			WholeWordBonus:     cfg.Matching.WholeWordBonus,
			PrefixBonus:        cfg.Matching.PrefixBonus,
			TopN:               cfg.Matching.TopN,
			MinTokenLength:     cfg.Matching.MinTokenLength,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	log.Printf("Matching: threshold=%.2f, brand=%.2f, top=%d",
		cfg.Matching.Threshold, cfg.Matching.BrandThreshold, cfg.Matching.TopN)

	// Load the catalog up front; a failure is not fatal - the service
	// starts not-ready and reports that to callers until a reload works.
	loadCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := searchService.LoadCatalog(loadCtx); err != nil {
		log.Printf("WARNING: Initial catalog load failed: %v", err)
	}
	cancel()

	// A load that fetched an empty catalog succeeds but leaves the service
	// not-ready, so gate the retry on readiness rather than on the error.
	if !searchService.Ready() {
		go retryCatalogLoad(searchService)
	}

	// Avoid handing a typed nil to the interface when no key is configured
	var chatCompleter domain.ChatCompleter
	if completer != nil {
		chatCompleter = completer
	}
	chatService := usecase.NewChatService(searchService, replyCache, chatCompleter,
		usecase.ChatServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		})

	checkoutBuilder := usecase.NewCheckoutBuilder(cfg.Checkout.WhatsAppNumber)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(chatService, searchService, checkoutBuilder)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// retryCatalogLoad keeps trying until the first successful load so the
// service can become ready without a restart.
func retryCatalogLoad(search *usecase.SearchService) {
	for !search.Ready() {
		time.Sleep(time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := search.LoadCatalog(ctx); err != nil {
			log.Printf("WARNING: Catalog reload failed: %v", err)
		}
		cancel()
	}
	log.Printf("Catalog loaded after retry")
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
