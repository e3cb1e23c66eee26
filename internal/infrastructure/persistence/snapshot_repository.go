// Package persistence provides file-based storage for release records.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/stagegate/stagegate/internal/domain/release"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
	"github.com/stagegate/stagegate/internal/fileutil"
)

// MaxSnapshotFileSize is the maximum allowed size for snapshot files (2MB).
const MaxSnapshotFileSize = 2 << 20

// DefaultSnapshotDir is the default directory for release snapshots,
// relative to the repository root.
const DefaultSnapshotDir = ".stagegate/releases"

// checkContext returns the context error if the context is canceled.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// FileSnapshotRepository stores release snapshots as JSON files, one file
// per released version.
type FileSnapshotRepository struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileSnapshotRepository creates a snapshot repository rooted at basePath.
// The directory is created if it does not exist.
func NewFileSnapshotRepository(basePath string) (*FileSnapshotRepository, error) {
	const op = "persistence.NewFileSnapshotRepository"

	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, sgerrors.IOWrap(err, op, "failed to create snapshot directory")
	}

	return &FileSnapshotRepository{basePath: basePath}, nil
}

// Save persists a snapshot. Snapshots are immutable: saving a version that
// already has a snapshot is an error.
func (r *FileSnapshotRepository) Save(ctx context.Context, snap *release.Snapshot) error {
	const op = "persistence.Save"

	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.snapshotFilePath(snap.Version)
	if _, err := os.Stat(path); err == nil {
		return sgerrors.State(op, fmt.Sprintf("snapshot for version %s already exists", snap.Version))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return sgerrors.IOWrap(err, op, "failed to marshal snapshot")
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o600); err != nil {
		return sgerrors.IOWrap(err, op, "failed to write snapshot file")
	}

	return nil
}

// Find retrieves the snapshot for a specific version.
func (r *FileSnapshotRepository) Find(ctx context.Context, version string) (*release.Snapshot, error) {
	const op = "persistence.Find"

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readSnapshot(op, r.snapshotFilePath(version))
}

// List returns all stored snapshots, newest first.
func (r *FileSnapshotRepository) List(ctx context.Context) ([]*release.Snapshot, error) {
	const op = "persistence.List"

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return nil, sgerrors.IOWrap(err, op, "failed to read snapshot directory")
	}

	snapshots := make([]*release.Snapshot, 0, len(entries))
	for _, entry := range entries {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "release-") || filepath.Ext(name) != ".json" {
			continue
		}
		snap, err := r.readSnapshot(op, filepath.Join(r.basePath, name))
		if err != nil {
			// Skip unreadable or malformed files.
			continue
		}
		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})

	return snapshots, nil
}

// Latest returns the most recently created snapshot.
func (r *FileSnapshotRepository) Latest(ctx context.Context) (*release.Snapshot, error) {
	const op = "persistence.Latest"

	snapshots, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(snapshots) == 0 {
		return nil, sgerrors.NotFound(op, "no release snapshots found")
	}

	return snapshots[0], nil
}

// Helper methods

func (r *FileSnapshotRepository) snapshotFilePath(version string) string {
	return filepath.Join(r.basePath, fmt.Sprintf("release-%s.json", version))
}

func (r *FileSnapshotRepository) readSnapshot(op, path string) (*release.Snapshot, error) {
	data, err := fileutil.ReadFileLimited(path, MaxSnapshotFileSize)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sgerrors.NotFound(op, fmt.Sprintf("snapshot file %s not found", filepath.Base(path)))
		}
		return nil, sgerrors.IOWrap(err, op, "failed to read snapshot file")
	}

	var snap release.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, sgerrors.IOWrap(err, op, "failed to unmarshal snapshot")
	}

	return &snap, nil
}
