package console

import (
	"sync"
	"time"

	"github.com/harborview/frontdesk/internal/hotel"
)

// Store owns the two workflow trees and the AI-readiness flag for the
// lifetime of the process. It is the only writer of pane state: reducer
// operations and the pull operator go through it, and every mutation replaces
// whole slots under one lock so readers always observe a complete prior or
// complete new value.
type Store struct {
	mu        sync.RWMutex
	manual    Tree
	ai        Tree
	aiReady   bool
	directory *hotel.Directory
	clock     func() time.Time
}

// StoreOption customizes store construction.
type StoreOption func(*Store)

// WithClock lets tests control the LastUpdated stamps.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewStore builds a store with both panes at the initial value. The directory
// backs the ingestion path's re-derivation queries.
func NewStore(directory *hotel.Directory, opts ...StoreOption) *Store {
	s := &Store{
		manual:    NewTree(),
		ai:        NewTree(),
		directory: directory,
		clock:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Directory exposes the query service the store derives UI state from.
func (s *Store) Directory() *hotel.Directory {
	return s.directory
}

// Snapshot returns a deep copy of one pane's tree. Callers can render or
// inspect it without holding any lock.
func (s *Store) Snapshot(pane Pane) Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree(pane).Clone()
}

// AIReady reports whether the AI pane holds an update the agent has not
// pulled yet.
func (s *Store) AIReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aiReady
}

// PullFromAI replaces the whole manual tree with an independent copy of the
// AI tree and clears the readiness flag, in one transition. This is the only
// path by which AI data becomes manual data. Gating on AIReady is the
// caller's job; invoking the operator always performs the copy.
func (s *Store) PullFromAI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = s.ai.Clone()
	s.aiReady = false
}

// Reset returns both panes to the documented initial value and clears the
// readiness flag.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = NewTree()
	s.ai = NewTree()
	s.aiReady = false
}

// tree resolves the addressed pane. Must be called with the lock held.
func (s *Store) tree(pane Pane) *Tree {
	if pane == PaneAI {
		return &s.ai
	}
	return &s.manual
}

// mutate applies fn to the addressed pane and stamps LastUpdated, all under
// the write lock so the data slot and its UI slot change together.
func (s *Store) mutate(pane Pane, fn func(*Tree)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree := s.tree(pane)
	fn(tree)
	tree.LastUpdated = s.clock()
}
