package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

// ErrFetch wraps every failure to retrieve the sheet text.
var ErrFetch = errors.New("catalog fetch failed")

// DefaultMaxBytes caps the size of a fetched sheet.
const DefaultMaxBytes = 10 << 20

// utf8BOM is prepended by spreadsheet exports saved on Windows.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StatusError reports a non-2xx response from the sheet host.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Fetcher retrieves the raw CSV text of the catalog sheet.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (string, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

// HTTPFetcher downloads the sheet over HTTP.
type HTTPFetcher struct {
	URL      string
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher for the CSV export of sheetURL.
// A timeout of zero leaves the request bound only by its context.
func NewHTTPFetcher(sheetURL string, timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{
		URL:      ExportURL(sheetURL),
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Fetch performs a GET of the sheet URL and returns the body as text, with
// a leading BOM removed and invalid UTF-8 replaced by U+FFFD.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %w", ErrFetch, &StatusError{StatusCode: resp.StatusCode, URL: f.URL})
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: sheet exceeds %d bytes", ErrFetch, limit)
	}

	body = bytes.TrimPrefix(body, utf8BOM)
	if !utf8.Valid(body) {
		// Latin-1 exports and truncated sequences; keep the rest readable.
		body = bytes.ToValidUTF8(body, []byte("\uFFFD"))
	}
	return string(body), nil
}
