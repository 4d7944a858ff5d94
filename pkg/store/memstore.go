package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

// MemStore keeps analyses in memory. Documents are stored as deep copies so
// callers can't mutate stored state through retained pointers.
type MemStore struct {
	analyses map[string]*cog.COGAnalysis
	mu       sync.RWMutex
	closed   bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{analyses: make(map[string]*cog.COGAnalysis)}
}

// deepCopy round-trips through JSON; documents are plain data.
func deepCopy(a *cog.COGAnalysis) (*cog.COGAnalysis, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to copy analysis: %w", err)
	}
	var out cog.COGAnalysis
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy analysis: %w", err)
	}
	return &out, nil
}

// Create stores a new analysis.
func (s *MemStore) Create(ctx context.Context, a *cog.COGAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, exists := s.analyses[a.ID]; exists {
		return fmt.Errorf("analysis %s already exists", a.ID)
	}
	cp, err := deepCopy(a)
	if err != nil {
		return err
	}
	s.analyses[a.ID] = cp
	return nil
}

// Get returns a copy of the stored analysis.
func (s *MemStore) Get(ctx context.Context, id string) (*cog.COGAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	a, ok := s.analyses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return deepCopy(a)
}

// Update replaces a stored analysis.
func (s *MemStore) Update(ctx context.Context, a *cog.COGAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.analyses[a.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	cp, err := deepCopy(a)
	if err != nil {
		return err
	}
	s.analyses[a.ID] = cp
	return nil
}

// Delete removes an analysis and all owned children with it.
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.analyses[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.analyses, id)
	return nil
}

// List returns summaries sorted by most recently updated.
func (s *MemStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]Summary, 0, len(s.analyses))
	for _, a := range s.analyses {
		out = append(out, Summary{
			ID:            a.ID,
			Title:         a.Title,
			ScoringSystem: string(a.ScoringSystem),
			COGCount:      len(a.CentersOfGravity),
			VulnCount:     len(a.Vulnerabilities),
			UpdatedAt:     a.UpdatedAt,
		})
	}
	sortSummaries(out)
	return out, nil
}

// Close marks the store closed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
