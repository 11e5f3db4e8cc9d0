package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/JonMunkholm/sheetcart/internal/logging"
)

// Precondition violations. The offending operation is aborted and the cart
// is left untouched.
var (
	ErrEmptyItem       = errors.New("item name is required")
	ErrInvalidPrice    = errors.New("price must be zero or greater")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrTooLarge        = errors.New("quantity or total too large")
)

// ErrPersist wraps failures to write the snapshot. The in-memory mutation
// that preceded the write is kept.
var ErrPersist = errors.New("cart persistence failed")

// Operations reported in Event.Op.
const (
	OpAdd       = "add"
	OpRemove    = "remove"
	OpClear     = "clear"
	OpRehydrate = "rehydrate"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Op    string
	State State
}

// KV is the durable key-value store the cart snapshot lives in.
type KV interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, entries map[string]string) error
}

// Store owns the cart state. Every mutation recomputes the total, persists
// the snapshot, then notifies subscribers.
type Store struct {
	kv   KV
	keys Keys

	mu    sync.Mutex
	lines []Line
	total int64

	subMu       sync.RWMutex
	subscribers []func(Event)
}

// NewStore creates an empty cart backed by kv. Call Rehydrate to load the
// last persisted snapshot.
func NewStore(kv KV, keys Keys) *Store {
	return &Store{
		kv:    kv,
		keys:  keys.withDefaults(),
		lines: []Line{},
	}
}

// Subscribe registers fn to receive every Event. fn runs synchronously on
// the mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.subMu.Unlock()
}

// State returns a copy of the current cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Add puts quantity units of item in the cart. An item already in the cart
// gets its quantity increased and keeps its original price. Items are
// matched by exact name; a blank name is rejected.
func (s *Store) Add(ctx context.Context, item string, price int64, quantity int) (State, error) {
	switch {
	case strings.TrimSpace(item) == "":
		return s.State(), ErrEmptyItem
	case price < 0:
		return s.State(), ErrInvalidPrice
	case quantity < 1:
		return s.State(), ErrInvalidQuantity
	}

	return s.mutate(ctx, OpAdd, func() error {
		lines, _, err := mergeLine(s.lines, s.total, Line{Item: item, Price: price, Quantity: quantity})
		if err != nil {
			return err
		}
		s.lines = lines
		return nil
	})
}

// RemoveAt drops the line at index, keeping the order of the others.
func (s *Store) RemoveAt(ctx context.Context, index int) (State, error) {
	return s.mutate(ctx, OpRemove, func() error {
		if index < 0 || index >= len(s.lines) {
			return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(s.lines))
		}
		s.lines = slices.Delete(s.lines, index, index+1)
		return nil
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.mutate(ctx, OpClear, func() error {
		s.lines = []Line{}
		return nil
	})
}

// Rehydrate replaces the in-memory cart with the persisted snapshot. A
// missing or malformed snapshot yields an empty cart. The persisted total is
// never trusted; it is recomputed from the lines. A read error from the
// store also yields an empty cart and is returned.
func (s *Store) Rehydrate(ctx context.Context) (State, error) {
	logger := logging.FromContext(ctx)

	values, readErr := s.kv.GetMany(ctx, s.keys.Cart, s.keys.Total)
	if readErr != nil {
		logger.Error("cart snapshot read failed, starting empty", "error", readErr)
		values = nil
	}

	lines, err := decodeLines(values[s.keys.Cart])
	if err != nil {
		logger.Warn("discarding cart snapshot", "error", err)
		lines = []Line{}
	}

	s.mu.Lock()
	s.lines = lines
	s.total = sumLines(lines)
	st := s.stateLocked()
	s.mu.Unlock()

	if raw, ok := values[s.keys.Total]; ok {
		if stored, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil || stored != st.Total {
			logger.Warn("persisted cart total does not match lines, using recomputed value",
				"stored", raw,
				"recomputed", st.Total,
			)
		}
	}

	logger.Info("cart rehydrated", "lines", len(st.Lines), "items", st.ItemCount(), "total", st.Total)
	s.notify(Event{Op: OpRehydrate, State: st})

	if readErr != nil {
		return st, fmt.Errorf("rehydrate cart: %w", readErr)
	}
	return st, nil
}

// mutate applies change under the lock, then recomputes, persists and
// notifies. A change that returns an error leaves the cart untouched.
func (s *Store) mutate(ctx context.Context, op string, change func() error) (State, error) {
	s.mu.Lock()
	if err := change(); err != nil {
		st := s.stateLocked()
		s.mu.Unlock()
		return st, err
	}
	s.total = sumLines(s.lines)
	st := s.stateLocked()
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		logging.FromContext(ctx).Error("cart snapshot write failed", "op", op, "error", persistErr)
	}
	s.notify(Event{Op: op, State: st})

	return st, persistErr
}

// persistLocked overwrites both snapshot keys in one write.
func (s *Store) persistLocked(ctx context.Context) error {
	entries, err := encodeSnapshot(s.keys, s.lines, s.total)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) stateLocked() State {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return State{Lines: lines, Total: s.total}
}

func (s *Store) notify(ev Event) {
	s.subMu.RLock()
	subs := make([]func(Event), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
