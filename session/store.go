// Package session holds per-user conversation state in process memory:
// the wizard state of the single-entry flow and, independently, the batch
// state of the multi-line flow. Records expire after a fixed TTL and are
// evicted both lazily on read and by a periodic reaper.
package session

import (
	"sync"
	"time"

	"github.com/crewlog/crewlog/batch"
)

// DefaultTTL is how long a session survives without activity
const DefaultTTL = 2 * time.Hour

// Step is the wizard position within the single-entry flow
type Step int

const (
	StepSquadSelection Step = iota
	StepPersonSelection
	StepTypeSelection
	StepCategorySelection
	StepModifySelection
	StepSummary
	StepDone
)

// WizardState is the in-progress single-entry flow for one user
type WizardState struct {
	Step Step

	SquadID       int64
	SquadName     string
	UserID        int64
	PersonName    string
	TypeID        int64
	TypeName      string
	CategoryIDs   []int64
	CategoryNames []string
	Description   string
	StartDate     time.Time
	EndDate       *time.Time

	Locale       string
	LastActivity time.Time
}

// BatchState is the in-progress batch flow for one user: the validated
// entry list and the preview cursor position.
type BatchState struct {
	Entries      []batch.Entry
	Cursor       int
	LastActivity time.Time
}

// Store is a concurrent, expiring per-user state store. Wizard and batch
// state are independent records under the same user id. Every reader
// re-checks expiry because the reaper may lag.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	wizards map[int64]*WizardState
	batches map[int64]*BatchState
}

// Option configures a Store
type Option func(*Store)

// WithClock injects a clock, letting tests drive expiry deterministically
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a session store with the given TTL
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:     ttl,
		now:     time.Now,
		wizards: make(map[int64]*WizardState),
		batches: make(map[int64]*BatchState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) expired(lastActivity time.Time) bool {
	return s.now().Sub(lastActivity) > s.ttl
}

// GetOrCreate returns the user's wizard state, creating a fresh one seeded
// with the user's locale preference when absent or expired.
func (s *Store) GetOrCreate(userID int64, locale string) *WizardState {
	if w, ok := s.Get(userID); ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another goroutine may have created it
	if w, ok := s.wizards[userID]; ok && !s.expired(w.LastActivity) {
		return w
	}
	w := &WizardState{
		Step:         StepSquadSelection,
		Locale:       locale,
		LastActivity: s.now(),
	}
	s.wizards[userID] = w
	return w
}

// Get returns the user's wizard state, or false when absent or expired.
// An expired record is removed on the spot.
func (s *Store) Get(userID int64) (*WizardState, bool) {
	s.mu.RLock()
	w, ok := s.wizards[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(w.LastActivity) {
		s.mu.Lock()
		if current, ok := s.wizards[userID]; ok && s.expired(current.LastActivity) {
			delete(s.wizards, userID)
		}
		s.mu.Unlock()
		return nil, false
	}
	return w, true
}

// Put stores the user's wizard state, stamping activity
func (s *Store) Put(userID int64, w *WizardState) {
	w.LastActivity = s.now()
	s.mu.Lock()
	s.wizards[userID] = w
	s.mu.Unlock()
}

// Delete removes the user's wizard state
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	delete(s.wizards, userID)
	s.mu.Unlock()
}

// Reset clears the wizard fields in place, keeping the record and the
// user's locale preference.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wizards[userID]
	if !ok {
		return
	}
	*w = WizardState{
		Step:         StepSquadSelection,
		Locale:       w.Locale,
		LastActivity: s.now(),
	}
}

// GetBatch returns the user's batch state, or false when absent or
// expired. An expired record is removed on the spot.
func (s *Store) GetBatch(userID int64) (*BatchState, bool) {
	s.mu.RLock()
	b, ok := s.batches[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(b.LastActivity) {
		s.mu.Lock()
		if current, ok := s.batches[userID]; ok && s.expired(current.LastActivity) {
			delete(s.batches, userID)
		}
		s.mu.Unlock()
		return nil, false
	}
	return b, true
}

// PutBatch stores the user's batch state, stamping activity
func (s *Store) PutBatch(userID int64, b *BatchState) {
	b.LastActivity = s.now()
	s.mu.Lock()
	s.batches[userID] = b
	s.mu.Unlock()
}

// DeleteBatch removes the user's batch state
func (s *Store) DeleteBatch(userID int64) {
	s.mu.Lock()
	delete(s.batches, userID)
	s.mu.Unlock()
}

// Sweep removes every expired record from both maps and returns how many
// it removed. Safe to run concurrently with readers; the lazy eviction
// path and the sweep converge on the same outcome.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, w := range s.wizards {
		if s.expired(w.LastActivity) {
			delete(s.wizards, id)
			removed++
		}
	}
	for id, b := range s.batches {
		if s.expired(b.LastActivity) {
			delete(s.batches, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live wizard and batch records
func (s *Store) Len() (wizards, batches int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wizards), len(s.batches)
}
