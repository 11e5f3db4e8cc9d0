// Package catalog turns parsed sheet rows into typed catalog entries and
// keeps the most recently loaded catalog available to the rest of the
// service.
package catalog

// Defaults applied to entries whose sheet row leaves the field blank.
const (
	PlaceholderImage = "img/no-image.png"
	Uncategorized    = "Sin categoría"
)

// Entry is one purchasable item of the catalog.
type Entry struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}
