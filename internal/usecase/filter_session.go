package usecase

import (
	"context"
	"encoding/json"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/shelfview/backend/internal/domain"
)

// Retriever runs a filter query, possibly with latency
type Retriever interface {
	Retrieve(ctx context.Context, criteria domain.Criteria) ([]domain.Product, error)
}

// debouncedKeys are the fields whose live updates arrive as a stream of
// keystrokes or slider moves.
var debouncedKeys = []domain.FilterKey{domain.FilterName, domain.FilterPrice}

// FilterSessionConfig holds configuration for a filter session
type FilterSessionConfig struct {
	DebounceDelay      time.Duration
	DiscardStale       bool
	EnableDebugLogging bool
}

type pendingUpdate struct {
	value json.RawMessage
	epoch uint64
}

// FilterSession owns the current filter criteria and the results of the
// most recent retrieval. Every change to the criteria starts a new
// retrieval in the background.
//
// Retrievals are numbered. With DiscardStale set, a retrieval that completes
// after a newer one was issued is dropped; otherwise whichever completes last
// wins.
type FilterSession struct {
	retriever    Retriever
	discardStale bool
	debug        bool
	debouncers   map[domain.FilterKey]*Debouncer[pendingUpdate]

	mu        sync.Mutex
	criteria  domain.Criteria
	products  []domain.Product
	issued    uint64
	loading   bool
	pending   bool
	idle      chan struct{} // closed once retrieval #issued completes
	queued    map[domain.FilterKey]bool
	settled   chan struct{} // closed and replaced whenever a queued update lands
	epoch     uint64        // bumped by Replace to void debounced updates
	updatedAt time.Time
}

// NewFilterSession creates a session with empty criteria and starts the
// initial retrieval of the full catalog.
func NewFilterSession(retriever Retriever, config FilterSessionConfig) *FilterSession {
	s := &FilterSession{
		retriever:    retriever,
		discardStale: config.DiscardStale,
		debug:        config.EnableDebugLogging,
		debouncers:   make(map[domain.FilterKey]*Debouncer[pendingUpdate]),
		products:     []domain.Product{},
		idle:         make(chan struct{}),
		queued:       make(map[domain.FilterKey]bool),
		settled:      make(chan struct{}),
	}
	close(s.idle)

	if config.DebounceDelay > 0 {
		for _, key := range debouncedKeys {
			s.debouncers[key] = NewDebouncer(config.DebounceDelay, func(u pendingUpdate) {
				s.apply(key, u)
			})
		}
	}

	s.mu.Lock()
	s.startLocked()
	s.mu.Unlock()

	return s
}

// Criteria returns a copy of the current criteria
func (s *FilterSession) Criteria() domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.Clone()
}

// Snapshot returns the current criteria, results and loading state
func (s *FilterSession) Snapshot() domain.FilterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Update sets a single criteria field from its JSON value. Name and price
// updates are debounced when a debounce delay is configured; the value is
// validated immediately either way.
func (s *FilterSession) Update(key domain.FilterKey, value json.RawMessage) (domain.FilterSnapshot, error) {
	s.mu.Lock()
	if _, err := s.criteria.With(key, value); err != nil {
		s.mu.Unlock()
		return domain.FilterSnapshot{}, err
	}
	update := pendingUpdate{value: slices.Clone(value), epoch: s.epoch}
	d, debounced := s.debouncers[key]
	if debounced {
		s.queued[key] = true
	}
	s.mu.Unlock()

	if debounced {
		d.Call(update)
	} else {
		s.apply(key, update)
	}

	return s.Snapshot(), nil
}

// Replace swaps the whole criteria at once, dropping any debounced update
// that has not fired yet.
func (s *FilterSession) Replace(criteria domain.Criteria) (domain.FilterSnapshot, error) {
	if err := criteria.Validate(); err != nil {
		return domain.FilterSnapshot{}, err
	}

	s.stopDebouncers()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.clearQueuedLocked()
	s.setLocked(criteria.Clone())
	return s.snapshotLocked(), nil
}

// Reset clears every criteria field
func (s *FilterSession) Reset() domain.FilterSnapshot {
	snapshot, _ := s.Replace(domain.Criteria{})
	return snapshot
}

// WaitIdle blocks until debounced updates made so far have been applied and
// the most recently issued retrieval has completed.
func (s *FilterSession) WaitIdle(ctx context.Context) (domain.FilterSnapshot, error) {
	for {
		s.mu.Lock()
		if len(s.queued) == 0 {
			idle := s.idle
			s.mu.Unlock()

			select {
			case <-ctx.Done():
				return domain.FilterSnapshot{}, ctx.Err()
			case <-idle:
				return s.Snapshot(), nil
			}
		}
		settled := s.settled
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.FilterSnapshot{}, ctx.Err()
		case <-settled:
		}
	}
}

// Close drops pending debounced updates
func (s *FilterSession) Close() {
	s.stopDebouncers()

	s.mu.Lock()
	s.clearQueuedLocked()
	s.mu.Unlock()
}

func (s *FilterSession) stopDebouncers() {
	for _, d := range s.debouncers {
		d.Stop()
	}
}

// apply merges one field into the current criteria. Debounced values are
// re-validated against whatever the criteria became in the meantime.
func (s *FilterSession) apply(key domain.FilterKey, u pendingUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.epoch != s.epoch {
		if s.debug {
			log.Printf("[FILTERS] dropping %s update made before criteria were replaced", key)
		}
		return
	}
	s.settleLocked(key)

	next, err := s.criteria.With(key, u.value)
	if err != nil {
		log.Printf("[FILTERS] rejected %s update: %v", key, err)
		return
	}
	s.setLocked(next)
}

func (s *FilterSession) settleLocked(key domain.FilterKey) {
	if !s.queued[key] {
		return
	}
	delete(s.queued, key)
	close(s.settled)
	s.settled = make(chan struct{})
}

func (s *FilterSession) clearQueuedLocked() {
	for key := range s.queued {
		s.settleLocked(key)
	}
}

func (s *FilterSession) setLocked(next domain.Criteria) {
	if next.Equal(s.criteria) {
		if s.debug {
			log.Printf("[FILTERS] criteria unchanged, skipping retrieval")
		}
		return
	}
	s.criteria = next
	s.startLocked()
}

func (s *FilterSession) startLocked() {
	s.issued++
	seq := s.issued
	if !s.pending {
		s.idle = make(chan struct{})
	}
	s.pending = true
	s.loading = true

	if s.debug {
		if s.criteria.IsEmpty() {
			log.Printf("[FILTERS] retrieval #%d started: all products", seq)
		} else {
			log.Printf("[FILTERS] retrieval #%d started: %+v", seq, s.criteria)
		}
	}

	go s.run(seq, s.criteria.Clone())
}

func (s *FilterSession) run(seq uint64, criteria domain.Criteria) {
	products, err := s.retriever.Retrieve(context.Background(), criteria)

	s.mu.Lock()
	defer s.mu.Unlock()

	latest := seq == s.issued
	if latest {
		s.pending = false
		defer close(s.idle)
	}

	if err != nil {
		log.Printf("[FILTERS] retrieval #%d failed: %v", seq, err)
		if latest {
			s.loading = false
		}
		return
	}

	if !latest && s.discardStale {
		if s.debug {
			log.Printf("[FILTERS] discarding stale retrieval #%d (latest #%d)", seq, s.issued)
		}
		return
	}

	s.products = products
	s.loading = false
	s.updatedAt = time.Now()

	if s.debug {
		log.Printf("[FILTERS] retrieval #%d returned %d products", seq, len(products))
	}
}

func (s *FilterSession) snapshotLocked() domain.FilterSnapshot {
	return domain.FilterSnapshot{
		Criteria:  s.criteria.Clone(),
		Products:  slices.Clone(s.products),
		Count:     len(s.products),
		Loading:   s.loading,
		Sequence:  s.issued,
		UpdatedAt: s.updatedAt,
	}
}
