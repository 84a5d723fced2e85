// Package store holds the session state of discount records and the
// actions that reconcile it with the discount API.
package store

import (
	"context"
	"sync"

	"github.com/jacksmith/dk/internal/model"
)

// Messages stored in the error field.
const (
	MsgLoadFailed    = "failed to load discount data"
	MsgDeletePartial = "some discounts failed to delete"
)

// API is the discount endpoint used by the store. api.Client implements it.
type API interface {
	ListDiscounts(ctx context.Context) ([]model.Discount, error)
	CreateDiscount(ctx context.Context, p model.Payload) (model.Discount, error)
	UpdateDiscount(ctx context.Context, id string, p model.Payload) error
	DeleteDiscount(ctx context.Context, id string) error
}

// State is a point-in-time copy of the store.
type State struct {
	Items   []model.Discount
	Loading bool
	Err     string // empty when unset
}

// DeleteResult partitions the identifiers passed to DeleteMany.
type DeleteResult struct {
	SuccessIDs []string
	FailedIDs  []string

	// Failures holds the error for each failed identifier.
	Failures map[string]error
}

// Store owns the discount list for one session. Actions are not
// serialized against each other: overlapping actions race on items and
// loading, and the last write wins. Readers may observe intermediate
// states such as Loading with the previous items.
type Store struct {
	api API

	mu      sync.RWMutex
	items   []model.Discount
	loading bool
	err     string
}

// New creates an empty store backed by api.
func New(api API) *Store {
	return &Store{
		api:   api,
		items: []model.Discount{},
	}
}

// Items returns a copy of the current items.
func (s *Store) Items() []model.Discount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Discount{}, s.items...)
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed action, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Items:   append([]model.Discount{}, s.items...),
		Loading: s.loading,
		Err:     s.err,
	}
}

// Find returns the item with the given ID.
func (s *Store) Find(id string) (model.Discount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return model.Discount{}, false
}

// FetchAll replaces the items with the server's list. Failures are
// recorded in Err and never returned. Loading is false once FetchAll
// returns.
func (s *Store) FetchAll(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	items, err := s.api.ListDiscounts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = errorMessage(err, MsgLoadFailed)
		return
	}
	if items == nil {
		items = []model.Discount{}
	}
	s.items = dedupe(items)
}

// Create creates a discount and puts it first in the items.
// On failure the items are unchanged and the error is returned.
func (s *Store) Create(ctx context.Context, p model.Payload) (model.Discount, error) {
	s.clearErr()

	created, err := s.api.CreateDiscount(ctx, p)
	if err != nil {
		return model.Discount{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Never hold two entries with one ID, even if the server reuses one.
	if i := indexOf(s.items, created.ID); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	}
	s.items = append([]model.Discount{created}, s.items...)
	return created, nil
}

// Update replaces the discount on the server and merges p into the local
// item with the same ID, if there is one. On failure the items are
// unchanged and the error is returned.
func (s *Store) Update(ctx context.Context, id string, p model.Payload) error {
	s.clearErr()

	if err := s.api.UpdateDiscount(ctx, id, p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, id); i >= 0 {
		s.items[i] = s.items[i].Merge(p)
	}
	return nil
}

// DeleteMany deletes the given discounts one at a time. Empty and
// duplicate identifiers are ignored. A failed delete does not stop the
// remaining ones. Deleted items are removed locally; if any delete failed,
// Err is set.
func (s *Store) DeleteMany(ctx context.Context, ids []string) DeleteResult {
	s.clearErr()

	result := DeleteResult{
		SuccessIDs: []string{},
		FailedIDs:  []string{},
	}

	unique := model.NormalizeIDs(ids)
	if len(unique) == 0 {
		return result
	}

	for _, id := range unique {
		result = result.fold(id, s.api.DeleteDiscount(ctx, id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(result.SuccessIDs) > 0 {
		s.items = without(s.items, result.SuccessIDs)
	}
	if len(result.FailedIDs) > 0 {
		s.err = MsgDeletePartial
	}
	return result
}

// fold adds the outcome of deleting id to r.
func (r DeleteResult) fold(id string, err error) DeleteResult {
	if err == nil {
		r.SuccessIDs = append(r.SuccessIDs, id)
		return r
	}
	r.FailedIDs = append(r.FailedIDs, id)
	if r.Failures == nil {
		r.Failures = make(map[string]error)
	}
	r.Failures[id] = err
	return r
}

func (s *Store) clearErr() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func indexOf(items []model.Discount, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// without returns items minus those whose ID is in ids.
func without(items []model.Discount, ids []string) []model.Discount {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]model.Discount, 0, len(items))
	for _, it := range items {
		if !drop[it.ID] {
			kept = append(kept, it)
		}
	}
	return kept
}

// dedupe keeps the first item for each ID. Items without an ID are kept.
func dedupe(items []model.Discount) []model.Discount {
	seen := make(map[string]bool, len(items))
	out := make([]model.Discount, 0, len(items))
	for _, it := range items {
		if it.ID != "" {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
		}
		out = append(out, it)
	}
	return out
}
