package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/snappy"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

// snapshotExt marks snappy-compressed analysis snapshot files.
const snapshotExt = ".cog.sz"

// snapshotHeaderSize is the CRC32 prefix covering the compressed payload.
const snapshotHeaderSize = 4

// SnapshotStore persists each analysis as a snappy-compressed JSON file with
// a CRC32 checksum prefix, so a truncated or corrupted snapshot is detected
// on load rather than deserialised into a half-valid document.
type SnapshotStore struct {
	dir string
	mu  sync.Mutex
}

// NewSnapshotStore creates the snapshot directory if needed.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

func (s *SnapshotStore) path(id string) string {
	return filepath.Join(s.dir, id+snapshotExt)
}

func (s *SnapshotStore) write(a *cog.COGAnalysis) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	compressed := snappy.Encode(nil, doc)
	buf := make([]byte, snapshotHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(buf[:snapshotHeaderSize], crc32.ChecksumIEEE(compressed))
	copy(buf[snapshotHeaderSize:], compressed)

	// Write-then-rename so a crash never leaves a partial snapshot behind.
	tmp := s.path(a.ID) + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path(a.ID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) read(id string) (*cog.COGAnalysis, error) {
	buf, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(buf) < snapshotHeaderSize {
		return nil, fmt.Errorf("snapshot %s is truncated", id)
	}

	compressed := buf[snapshotHeaderSize:]
	if crc32.ChecksumIEEE(compressed) != binary.LittleEndian.Uint32(buf[:snapshotHeaderSize]) {
		return nil, fmt.Errorf("snapshot %s failed checksum verification", id)
	}

	doc, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot %s: %w", id, err)
	}

	var a cog.COGAnalysis
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	return &a, nil
}

// Create stores a new analysis snapshot.
func (s *SnapshotStore) Create(ctx context.Context, a *cog.COGAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path(a.ID)); err == nil {
		return fmt.Errorf("analysis %s already exists", a.ID)
	}
	return s.write(a)
}

// Get loads and verifies an analysis snapshot.
func (s *SnapshotStore) Get(ctx context.Context, id string) (*cog.COGAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// Update overwrites an existing snapshot.
func (s *SnapshotStore) Update(ctx context.Context, a *cog.COGAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path(a.ID)); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	return s.write(a)
}

// Delete removes a snapshot file.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

// List loads every snapshot in the directory and summarises it. Corrupted
// snapshots are skipped rather than failing the whole listing.
func (s *SnapshotStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), snapshotExt)
		a, err := s.read(id)
		if err != nil {
			continue
		}
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

// Close is a no-op; snapshots hold no open handles between calls.
func (s *SnapshotStore) Close() error {
	return nil
}
