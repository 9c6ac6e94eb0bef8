package lintview

import (
	"slices"
	"sync"
	"time"
)

// Snapshot captures the source text of one analysis request together with
// the report eventually produced for it.
type Snapshot struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	MainFile   string            `json:"main_file"`
	Source     string            `json:"source"`
	Imported   map[string]string `json:"imported,omitempty"`
	Findings   []Finding         `json:"findings,omitempty"`
	Config     *LinterConfig     `json:"config,omitempty"`
	Document   *Document         `json:"document,omitempty"`
	Markup     string            `json:"markup,omitempty"`
	ResolvedAt *time.Time        `json:"resolved_at,omitempty"`
}

// Resolved reports whether findings have been attached.
func (s *Snapshot) Resolved() bool {
	return s.ResolvedAt != nil
}

// Resolve attaches the report to the snapshot. It may succeed only once.
func (s *Snapshot) Resolve(findings []Finding, cfg *LinterConfig, doc *Document, at time.Time) error {
	if s.Resolved() {
		return ErrSnapshotResolved
	}
	s.Findings = findings
	s.Config = cfg
	s.Document = doc
	if doc != nil {
		s.Markup = doc.Markup()
	}
	s.ResolvedAt = &at
	return nil
}

// History is an append-only record of snapshots per main file. It is safe
// for concurrent use.
type History struct {
	mu     sync.RWMutex
	byFile map[string][]*Snapshot
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{byFile: make(map[string][]*Snapshot)}
}

// Append records a snapshot under its main file.
func (h *History) Append(s *Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byFile[s.MainFile] = append(h.byFile[s.MainFile], s)
}

// ForFile returns the snapshots for path in the order they were appended.
func (h *History) ForFile(path string) []*Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.byFile[path])
}

// Between returns the snapshots for path whose timestamps fall within
// [from, to]. A zero bound is open.
func (h *History) Between(path string, from, to time.Time) []*Snapshot {
	var out []*Snapshot
	for _, s := range h.ForFile(path) {
		if !from.IsZero() && s.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && s.Timestamp.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Since returns the snapshots for path taken strictly after t.
func (h *History) Since(path string, t time.Time) []*Snapshot {
	var out []*Snapshot
	for _, s := range h.ForFile(path) {
		if s.Timestamp.After(t) {
			out = append(out, s)
		}
	}
	return out
}
