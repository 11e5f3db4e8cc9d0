package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/JonMunkholm/sheetcart/internal/logging"
	"github.com/JonMunkholm/sheetcart/internal/sheet"
	"github.com/google/uuid"
)

// Load results reported to a Recorder.
const (
	ResultSuccess    = "success"
	ResultFailure    = "failure"
	ResultSuppressed = "suppressed"
)

// Recorder receives the outcome of every load attempt.
type Recorder interface {
	CatalogLoad(result string, entries int, parse sheet.Stats, build BuildStats)
}

// Snapshot is the catalog as of its last successful load.
type Snapshot struct {
	Entries  []Entry   `json:"entries"`
	LoadedAt time.Time `json:"loaded_at"`
}

// LoadResult summarizes one successful load.
type LoadResult struct {
	ID       string
	Entries  int
	Parse    sheet.Stats
	Build    BuildStats
	Duration time.Duration
}

// Loader fetches the sheet and replaces the catalog on success. A failed
// load leaves the previous catalog untouched.
type Loader struct {
	fetcher  Fetcher
	recorder Recorder
	guard    *loadGuard

	mu      sync.RWMutex
	current Snapshot
}

// NewLoader creates a Loader. recorder may be nil.
func NewLoader(fetcher Fetcher, recorder Recorder) *Loader {
	return &Loader{
		fetcher:  fetcher,
		recorder: recorder,
		guard:    newLoadGuard(),
		current:  Snapshot{Entries: []Entry{}},
	}
}

// Load fetches, parses and builds the catalog. It returns ErrLoadInProgress
// without doing anything when another load is running.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	if !l.guard.TryAcquire() {
		logging.FromContext(ctx).Warn("catalog load suppressed, another load is running")
		l.record(ResultSuppressed, 0, sheet.Stats{}, BuildStats{})
		return LoadResult{}, ErrLoadInProgress
	}
	defer l.guard.Release()

	res := LoadResult{ID: uuid.New().String()}
	logger := logging.WithFields(ctx, "load_id", res.ID)
	start := time.Now()

	text, err := l.fetcher.Fetch(ctx)
	if err != nil {
		logger.Error("catalog load failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		l.record(ResultFailure, 0, sheet.Stats{}, BuildStats{})
		return LoadResult{}, err
	}

	rows, parseStats := sheet.ParseReport(text)
	entries, buildStats := BuildReport(rows)

	l.mu.Lock()
	l.current = Snapshot{Entries: entries, LoadedAt: time.Now()}
	l.mu.Unlock()

	res.Entries = len(entries)
	res.Parse = parseStats
	res.Build = buildStats
	res.Duration = time.Since(start)

	logger.Info("catalog loaded",
		"entries", res.Entries,
		"rows", parseStats.Rows,
		"rows_dropped", buildStats.Dropped,
		"prices_defaulted", buildStats.PriceDefaulted,
		"malformed_fields", parseStats.MalformedFields,
		"short_rows", parseStats.ShortRows,
		"long_rows", parseStats.LongRows,
		"duration_ms", res.Duration.Milliseconds(),
	)
	if len(parseStats.Header) > 0 {
		logger.Debug("catalog header", "columns", parseStats.Header)
	}
	l.record(ResultSuccess, res.Entries, parseStats, buildStats)

	return res, nil
}

// Catalog returns the current catalog. The entries slice is a copy.
func (l *Loader) Catalog() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, len(l.current.Entries))
	copy(entries, l.current.Entries)
	return Snapshot{Entries: entries, LoadedAt: l.current.LoadedAt}
}

// Groups returns the current catalog grouped by category.
func (l *Loader) Groups() []Group {
	return GroupByCategory(l.Catalog().Entries)
}

// Loading reports whether a load is running.
func (l *Loader) Loading() bool {
	return l.guard.Active()
}

// WaitIdle blocks until no load is running or ctx is done.
func (l *Loader) WaitIdle(ctx context.Context) error {
	return l.guard.WaitForDrain(ctx)
}

func (l *Loader) record(result string, entries int, parse sheet.Stats, build BuildStats) {
	if l.recorder != nil {
		l.recorder.CatalogLoad(result, entries, parse, build)
	}
}
