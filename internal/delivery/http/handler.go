package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shivneri/backend/internal/domain"
	"github.com/shivneri/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chat     *usecase.ChatService
	search   *usecase.SearchService
	checkout usecase.CheckoutBuilder
}

// NewHandler creates a new HTTP handler
func NewHandler(chat *usecase.ChatService, search *usecase.SearchService, checkout usecase.CheckoutBuilder) *Handler {
	return &Handler{
		chat:     chat,
		search:   search,
		checkout: checkout,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "shivneri-backend",
		"version":       "1.0.0",
		"catalog_ready": h.search != nil && h.search.Ready(),
	})
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat handles one chat turn: catalog matches, recipes, or the completion
// fallback when local matching finds nothing.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.chat.HandleMessage(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		case errors.Is(err, domain.ErrChatAPIFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant is unavailable right now, please try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":    reply.Text,
		"brand":    reply.Brand,
		"products": formatProducts(reply.Products),
		"source":   reply.Source,
	})
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchProducts returns ranked catalog matches for a free-text query.
// An empty result list (no error) tells the caller to use the chat
// fallback; a 503 means the catalog has not loaded yet.
func (h *Handler) SearchProducts(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.search.Search(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCatalogNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded yet"})
		case errors.Is(err, domain.ErrNoMatch):
			c.JSON(http.StatusOK, gin.H{"results": []gin.H{}})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand":   result.Brand,
		"results": formatProducts(result.Products),
	})
}

// ListProducts returns the enriched catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.search.Products()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type checkoutRequest struct {
	Items []domain.CartItem `json:"items" binding:"required"`
}

// Checkout builds the WhatsApp handoff for a cart.
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": h.checkout.Message(req.Items),
		"url":     h.checkout.URL(req.Items),
		"count":   usecase.CartCount(req.Items),
		"total":   usecase.CartTotal(req.Items),
	})
}

// categoryTips holds serving suggestions keyed by a category/name keyword.
var categoryTips = map[string]string{
	"CHEESE":       "Good for pizza, pasta, or sandwiches.",
	"MOZZARELLA":   "Melts well for pizza and pasta.",
	"FRENCH FRIES": "Ready-to-fry, great as a side or snacks.",
	"KETCHUP":      "Use for burgers, fries, or sandwiches.",
	"SAUCE":        "Useful for pasta, marinades, or dips.",
	"MAYONNAISE":   "Great for burgers, wraps, and salads.",
	"PASTA":        "Pairs well with sauce, cheese, and herbs.",
	"NUGGETS":      "Quick snack, air-fry or deep-fry.",
	"NOODLES":      "Stir-fry with veggies and sauces.",
	"SUSHI":        "Check Japanese section for nori, vinegar, rice.",
	"OLIVE":        "Nice for salads, pizzas, and sandwiches.",
}

func tipFor(p domain.Product) string {
	category := strings.ToUpper(p.Category)
	name := strings.ToUpper(p.Name)
	for key, tip := range categoryTips {
		if strings.Contains(category, key) || strings.Contains(name, key) {
			return tip
		}
	}
	return ""
}

func formatProducts(ranked []domain.RankedProduct) []gin.H {
	views := make([]gin.H, 0, len(ranked))
	for _, r := range ranked {
		views = append(views, gin.H{
			"name":     r.Product.Name,
			"brand":    r.Product.CanonicalBrand,
			"category": r.Product.Category,
			"price":    r.Product.Price,
			"priceInr": usecase.FormatINR(r.Product.Price),
			"tip":      tipFor(r.Product),
		})
	}
	return views
}
