package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/sheetcart/internal/catalog"
)

type catalogResponse struct {
	Entries  []catalog.Entry `json:"entries"`
	Count    int             `json:"count"`
	LoadedAt *time.Time      `json:"loaded_at"`
	Loading  bool            `json:"loading"`
}

type reloadResponse struct {
	LoadID          string `json:"load_id"`
	Count           int    `json:"count"`
	Rows            int    `json:"rows"`
	RowsDropped     int    `json:"rows_dropped"`
	PricesDefaulted int    `json:"prices_defaulted"`
	MalformedFields int    `json:"malformed_fields"`
	DurationMS      int64  `json:"duration_ms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCatalog returns the current catalog. loaded_at is null until the
// first successful load.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	snap := s.catalog.Catalog()

	resp := catalogResponse{
		Entries: snap.Entries,
		Count:   len(snap.Entries),
		Loading: s.catalog.Loading(),
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadedAt = &snap.LoadedAt
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	groups := s.catalog.Groups()
	if groups == nil {
		groups = []catalog.Group{}
	}
	writeJSON(w, r, http.StatusOK, groups)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.Load(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, reloadResponse{
		LoadID:          res.ID,
		Count:           res.Entries,
		Rows:            res.Parse.Rows,
		RowsDropped:     res.Build.Dropped,
		PricesDefaulted: res.Build.PriceDefaulted,
		MalformedFields: res.Parse.MalformedFields,
		DurationMS:      res.Duration.Milliseconds(),
	})
}
