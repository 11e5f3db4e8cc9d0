package web

// messages.go maps errors to user-facing messages with support codes.
//
// # Error Codes Reference
//
// # Cart Errors (CART001-CART099)
//
//	CART001 - Invalid quantity: Quantity must be at least 1
//	          Status: 400
//	CART002 - Invalid price: Price must be zero or greater
//	          Status: 400
//	CART003 - Empty item: Item name is required
//	          Status: 400
//	CART004 - Index out of range: That cart line does not exist
//	          Status: 400
//	CART005 - Unknown item: The item is not in the catalog
//	          Status: 404
//	CART006 - Too large: Quantity or total exceeds what the cart can hold
//	          Status: 400
//
// # Catalog Errors (CAT001-CAT099)
//
//	CAT001 - Load in progress: The catalog is already being refreshed
//	         Status: 409
//	CAT002 - Fetch failed: The product sheet could not be downloaded
//	         Status: 502
//
// # Storage Errors (STORE001-STORE099)
//
//	STORE001 - Persistence failure: The cart changed but could not be saved
//	           Status: 500
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Malformed body: The request body is not valid JSON
//	         Status: 400
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Status: 429
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Status: 500
//
// Matching uses errors.Is against the package sentinels, first match wins.

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/sheetcart/internal/cart"
	"github.com/JonMunkholm/sheetcart/internal/catalog"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Status  int    // HTTP status to respond with
}

var (
	errMalformedBody = errors.New("malformed request body")
	errRateLimited   = errors.New("rate limit exceeded")
)

type errorMapping struct {
	target error
	msg    UserMessage
}

var errorMappings = []errorMapping{
	// Cart preconditions
	{cart.ErrInvalidQuantity, UserMessage{
		Message: "Quantity must be at least 1",
		Action:  "Choose a quantity of one or more",
		Code:    "CART001",
		Status:  http.StatusBadRequest,
	}},
	{cart.ErrInvalidPrice, UserMessage{
		Message: "Price must be zero or greater",
		Action:  "Check the price sent for this item",
		Code:    "CART002",
		Status:  http.StatusBadRequest,
	}},
	{cart.ErrEmptyItem, UserMessage{
		Message: "Item name is required",
		Action:  "Pick a product from the catalog",
		Code:    "CART003",
		Status:  http.StatusBadRequest,
	}},
	{cart.ErrIndexOutOfRange, UserMessage{
		Message: "That cart line does not exist",
		Action:  "Reload the cart and try again",
		Code:    "CART004",
		Status:  http.StatusBadRequest,
	}},

	{errUnknownItem, UserMessage{
		Message: "That item is not in the catalog",
		Action:  "Reload the catalog or send a price with the item",
		Code:    "CART005",
		Status:  http.StatusNotFound,
	}},

	{cart.ErrTooLarge, UserMessage{
		Message: "Quantity or total is too large",
		Action:  "Order a smaller quantity",
		Code:    "CART006",
		Status:  http.StatusBadRequest,
	}},

	// Catalog
	{catalog.ErrLoadInProgress, UserMessage{
		Message: "The catalog is already being refreshed",
		Action:  "Wait a moment and try again",
		Code:    "CAT001",
		Status:  http.StatusConflict,
	}},
	{catalog.ErrFetch, UserMessage{
		Message: "The product sheet could not be downloaded",
		Action:  "The previous catalog is still being served; try again later",
		Code:    "CAT002",
		Status:  http.StatusBadGateway,
	}},

	// Storage
	{cart.ErrPersist, UserMessage{
		Message: "Your cart changed but could not be saved",
		Action:  "Keep this page open and try again",
		Code:    "STORE001",
		Status:  http.StatusInternalServerError,
	}},

	// Request
	{errMalformedBody, UserMessage{
		Message: "The request body is not valid JSON",
		Action:  "Send {\"item\", \"price\", \"quantity\"} as JSON",
		Code:    "REQ001",
		Status:  http.StatusBadRequest,
	}},
	{errRateLimited, UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
		Status:  http.StatusTooManyRequests,
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
	Status:  http.StatusInternalServerError,
}

// MapError converts an error to a UserMessage. A nil error maps to the zero
// value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}
	return defaultMessage
}
