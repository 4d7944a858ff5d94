// Package store persists COG analysis documents. Three implementations share
// one interface: PGStore (PostgreSQL, JSONB documents), SnapshotStore
// (snappy-compressed files for offline export/import), and MemStore (tests
// and the TUI). The engine itself never touches a store; concurrency control
// lives entirely at this layer.
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

var (
	ErrNotFound = errors.New("analysis not found")
	ErrClosed   = errors.New("store is closed")
)

// Summary is the listing projection of a stored analysis.
type Summary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ScoringSystem string    `json:"scoring_system"`
	COGCount      int       `json:"cog_count"`
	VulnCount     int       `json:"vuln_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// sortSummaries orders summaries most recently updated first, with ID as a
// deterministic tie-break.
func sortSummaries(s []Summary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].UpdatedAt.Equal(s[j].UpdatedAt) {
			return s[i].UpdatedAt.After(s[j].UpdatedAt)
		}
		return s[i].ID < s[j].ID
	})
}

// Store is the persistence contract for analysis documents.
type Store interface {
	Create(ctx context.Context, a *cog.COGAnalysis) error
	Get(ctx context.Context, id string) (*cog.COGAnalysis, error)
	Update(ctx context.Context, a *cog.COGAnalysis) error
	// Delete removes the analysis and, with it, every owned child entity.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	Close() error
}
