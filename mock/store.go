package mock

import "github.com/fwojciec/lintview"

// Compile-time interface verification.
var _ lintview.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of lintview.SnapshotStore.
type SnapshotStore struct {
	AppendFn func(snapshot *lintview.Snapshot) error
	LoadFn   func(mainFile string) ([]*lintview.Snapshot, error)
}

func (s *SnapshotStore) Append(snapshot *lintview.Snapshot) error {
	return s.AppendFn(snapshot)
}

func (s *SnapshotStore) Load(mainFile string) ([]*lintview.Snapshot, error) {
	return s.LoadFn(mainFile)
}
