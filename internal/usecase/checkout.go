package usecase

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shivneri/backend/internal/domain"
)

// CheckoutBuilder turns a cart into a pre-filled WhatsApp order handoff.
type CheckoutBuilder struct {
	whatsAppNumber string
}

// NewCheckoutBuilder creates a checkout builder for the given WhatsApp
// number (country code included, digits only).
func NewCheckoutBuilder(whatsAppNumber string) CheckoutBuilder {
	return CheckoutBuilder{whatsAppNumber: whatsAppNumber}
}

// CartCount is the total quantity across cart lines; a missing quantity
// counts as 1.
func CartCount(items []domain.CartItem) int {
	count := 0
	for _, item := range items {
		count += itemQty(item)
	}
	return count
}

// CartTotal is the price sum across cart lines, quantity included.
func CartTotal(items []domain.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(itemQty(item))
	}
	return total
}

// Message builds the plain-text order message: numbered lines, total and
// a customer-details stub. An empty cart yields a bare greeting.
func (b CheckoutBuilder) Message(items []domain.CartItem) string {
	if len(items) == 0 {
		return "Hello, I would like to order."
	}

	lines := make([]string, 0, len(items)+6)
	lines = append(lines, "Hello, I would like to order:")
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s x %d – %s", i+1, item.Name, itemQty(item), FormatINR(item.Price)))
	}
	lines = append(lines,
		"",
		"Total: "+FormatINR(CartTotal(items)),
		"",
		"Customer details:",
		"Name:",
		"Address:",
		"Phone:",
	)
	return strings.Join(lines, "\n")
}

// URL is the wa.me link carrying the URL-escaped order message. Empty for
// an empty cart.
func (b CheckoutBuilder) URL(items []domain.CartItem) string {
	if len(items) == 0 {
		return ""
	}
	return "https://wa.me/" + b.whatsAppNumber + "?text=" + url.QueryEscape(b.Message(items))
}

func itemQty(item domain.CartItem) int {
	if item.Qty <= 0 {
		return 1
	}
	return item.Qty
}

// FormatINR renders a rupee amount with Indian digit grouping (last three
// digits, then pairs) and no decimals, e.g. 1234567 -> ₹12,34,567.
func FormatINR(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return "₹" + sign + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return "₹" + sign + strings.Join(groups, ",") + "," + tail
}
