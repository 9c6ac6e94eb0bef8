package jsonl

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var _ lintview.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps one JSONL file of snapshots per main file.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store writing under dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Path returns the history file used for mainFile.
func (s *SnapshotStore) Path(mainFile string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(mainFile)))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".jsonl")
}

// Append adds a snapshot to its main file's history.
func (s *SnapshotStore) Append(snapshot *lintview.Snapshot) error {
	return appendRecord(s.Path(snapshot.MainFile), snapshot)
}

// Load returns the stored snapshots of mainFile, oldest first.
func (s *SnapshotStore) Load(mainFile string) ([]*lintview.Snapshot, error) {
	return load[*lintview.Snapshot](s.Path(mainFile))
}
