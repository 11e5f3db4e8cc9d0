package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/sheetcart/internal/cart"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

var errUnknownItem = errors.New("item not in catalog")

type cartResponse struct {
	Lines     []cart.Line `json:"lines"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
	Empty     bool        `json:"empty"`
}

func newCartResponse(st cart.State) cartResponse {
	return cartResponse{
		Lines:     st.Lines,
		Total:     st.Total,
		ItemCount: st.ItemCount(),
		Empty:     st.Empty(),
	}
}

// addItemRequest is the body of POST /api/cart/items. Quantity defaults to 1.
// Without a price the unit price is taken from the current catalog.
type addItemRequest struct {
	Item     string `json:"item"`
	Price    *int64 `json:"price"`
	Quantity *int   `json:"quantity"`
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, newCartResponse(s.cart.State()))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %w", errMalformedBody, err))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	var price int64
	if req.Price != nil {
		price = *req.Price
	} else if strings.TrimSpace(req.Item) != "" {
		p, ok := s.catalogPrice(req.Item)
		if !ok {
			respondError(w, r, fmt.Errorf("%w: %q", errUnknownItem, req.Item))
			return
		}
		price = p
	}

	st, err := s.cart.Add(r.Context(), req.Item, price, quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newCartResponse(st))
}

// catalogPrice returns the price of the first catalog entry named item.
func (s *Server) catalogPrice(item string) (int64, bool) {
	for _, e := range s.catalog.Catalog().Entries {
		if e.Name == item {
			return e.Price, true
		}
	}
	return 0, false
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %q", cart.ErrIndexOutOfRange, raw))
		return
	}

	st, err := s.cart.RemoveAt(r.Context(), index)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newCartResponse(st))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	st, err := s.cart.Clear(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newCartResponse(st))
}

func (s *Server) handleCartSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.cart.State().Summary())
}
