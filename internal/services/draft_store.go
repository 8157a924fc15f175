package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/form"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
)

// draftEntry is one mounted form. Its mutex serializes input events the way
// a single UI thread would; expiresAt is guarded by the store lock.
type draftEntry struct {
	mu        sync.Mutex
	id        string
	form      *form.Form
	expiresAt time.Time
	closed    atomic.Bool
}

// DraftStore keeps registration drafts in memory until they are submitted,
// discarded or expire.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*draftEntry
	ttl    time.Duration
	now    func() time.Time
}

// NewDraftStore creates a store whose drafts expire after ttl without activity
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		drafts: make(map[string]*draftEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// create stores f under a new id
func (s *DraftStore) create(f *form.Form) *draftEntry {
	entry := &draftEntry{
		id:        utils.GenerateUUID(),
		form:      f,
		expiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.drafts[entry.id] = entry
	s.mu.Unlock()

	observability.ActiveDrafts.Inc()
	return entry
}

// get returns a live draft and extends its expiration
func (s *DraftStore) get(id string) (*draftEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[id]
	if !ok {
		return nil, models.ErrDraftNotFound
	}
	now := s.now()
	if !now.Before(entry.expiresAt) {
		s.removeLocked(id)
		return nil, models.ErrDraftNotFound
	}
	entry.expiresAt = now.Add(s.ttl)
	return entry, nil
}

// Delete removes a draft. It reports whether the draft existed.
func (s *DraftStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return false
	}
	s.removeLocked(id)
	return true
}

// Sweep removes expired drafts and returns how many were removed
func (s *DraftStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.drafts {
		if !now.Before(entry.expiresAt) {
			s.removeLocked(id)
			removed++
		}
	}
	return removed
}

// expiry returns when entry expires unless touched again
func (s *DraftStore) expiry(entry *draftEntry) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entry.expiresAt
}

// Len returns the number of drafts held
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *DraftStore) removeLocked(id string) {
	if entry, ok := s.drafts[id]; ok {
		delete(s.drafts, id)
		entry.closed.Store(true)
		observability.ActiveDrafts.Dec()
	}
}
