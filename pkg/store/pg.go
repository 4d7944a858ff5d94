package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

// PGStore persists analyses in PostgreSQL as JSONB documents with a few
// projected columns for listing.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects, verifies the connection, and runs migrations.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cog_analyses (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			scoring_system TEXT NOT NULL,
			document       JSONB NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

// Ping checks database connectivity.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Create stores a new analysis document.
func (s *PGStore) Create(ctx context.Context, a *cog.COGAnalysis) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO cog_analyses (id, title, scoring_system, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.Title, string(a.ScoringSystem), doc, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// Get retrieves an analysis document by ID.
func (s *PGStore) Get(ctx context.Context, id string) (*cog.COGAnalysis, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM cog_analyses WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var a cog.COGAnalysis
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &a, nil
}

// Update replaces a stored analysis document.
func (s *PGStore) Update(ctx context.Context, a *cog.COGAnalysis) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE cog_analyses
		SET title = $2, scoring_system = $3, document = $4, updated_at = $5
		WHERE id = $1
	`, a.ID, a.Title, string(a.ScoringSystem), doc, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	return nil
}

// Delete removes an analysis; owned children live inside the document, so
// the row deletion removes them atomically.
func (s *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cog_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// List returns summaries of all stored analyses, most recently updated first.
func (s *PGStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, scoring_system,
		       jsonb_array_length(COALESCE(document->'centers_of_gravity', '[]'::jsonb)),
		       jsonb_array_length(COALESCE(document->'vulnerabilities', '[]'::jsonb)),
		       updated_at
		FROM cog_analyses
		ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.ScoringSystem, &s.COGCount, &s.VulnCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
