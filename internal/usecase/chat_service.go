package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shivneri/backend/internal/domain"
)

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ChatService handles one chat turn: recipe intents are answered from the
// recipe library, everything else goes through local catalog search, and
// only when local matching finds nothing usable is the message forwarded
// to the completion endpoint. Completion replies are cached by normalized
// message.
type ChatService struct {
	search             *SearchService
	cache              domain.CacheRepository
	completer          domain.ChatCompleter
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewChatService creates a chat service with dependencies. completer may
// be nil when no completion API is configured; fallback then degrades to
// an apologetic reply.
func NewChatService(
	search *SearchService,
	cache domain.CacheRepository,
	completer domain.ChatCompleter,
	config ChatServiceConfig,
) *ChatService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ChatService{
		search:             search,
		cache:              cache,
		completer:          completer,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// HandleMessage produces the bot reply for one user message.
func (s *ChatService) HandleMessage(ctx context.Context, message string) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidRequest
	}

	if IsRecipeIntent(message) {
		return s.recipeReply(message), nil
	}

	result, err := s.search.Search(ctx, message)
	switch {
	case err == nil:
		return &domain.ChatReply{
			Brand:    result.Brand,
			Products: result.Products,
			Source:   "catalog",
		}, nil
	case errors.Is(err, domain.ErrCatalogNotReady):
		return &domain.ChatReply{
			Text:   "Product list is not loaded yet. Please try again in a moment.",
			Source: "notice",
		}, nil
	case errors.Is(err, domain.ErrNoMatch), errors.Is(err, domain.ErrInvalidRequest):
		return s.fallbackReply(ctx, message)
	default:
		return nil, err
	}
}

func (s *ChatService) recipeReply(message string) *domain.ChatReply {
	if text, ok := LookupRecipe(message); ok {
		return &domain.ChatReply{Text: text, Source: "recipe"}
	}
	return &domain.ChatReply{
		Text:   "Recipe not found yet. Try " + strings.Join(RecipeSuggestions(), ", ") + ".",
		Source: "recipe",
	}
}

// fallbackReply relays the message to the completion endpoint, consulting
// the reply cache first. The reply text is passed through verbatim.
func (s *ChatService) fallbackReply(ctx context.Context, message string) (*domain.ChatReply, error) {
	cacheKey := "chat:" + Normalize(message)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			if s.enableDebugLogging {
				log.Printf("[CHAT] Cache hit for %q", message)
			}
			return &domain.ChatReply{Text: cached, Source: "cache"}, nil
		}
	}

	if s.completer == nil {
		return &domain.ChatReply{
			Text:   "Sorry, I couldn't find anything for that. Try another product or brand name.",
			Source: "notice",
		}, nil
	}

	reply, err := s.completer.Complete(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChatAPIFailure, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, reply, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[CHAT] Failed to cache reply: %v", err)
		}
	}

	return &domain.ChatReply{Text: reply, Source: "completion"}, nil
}
