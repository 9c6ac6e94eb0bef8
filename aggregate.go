package lintview

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Registry is the explicit list of analyzer variants available to an
// Aggregator.
type Registry struct {
	mu        sync.RWMutex
	analyzers []Analyzer
}

// NewRegistry creates a registry holding analyzers.
func NewRegistry(analyzers ...Analyzer) *Registry {
	return &Registry{analyzers: analyzers}
}

// Register adds an analyzer.
func (r *Registry) Register(a Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyzers = append(r.analyzers, a)
}

// Analyzers returns all registered analyzers in registration order.
func (r *Registry) Analyzers() []Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.analyzers)
}

// Enabled returns the analyzers whose Enabled predicate holds.
func (r *Registry) Enabled() []Analyzer {
	var enabled []Analyzer
	for _, a := range r.Analyzers() {
		if a.Enabled() {
			enabled = append(enabled, a)
		}
	}
	return enabled
}

// Batch is the set of sessions started together for one snapshot.
type Batch struct {
	ID       string
	Snapshot *Snapshot
	Sessions []*Session

	results [][]Finding
	config  *LinterConfig
}

// Accepted returns the number of completions accepted so far.
func (b *Batch) Accepted() int {
	return len(b.results)
}

// Done reports whether every session has delivered.
func (b *Batch) Done() bool {
	return len(b.Sessions) > 0 && len(b.results) == len(b.Sessions)
}

func (b *Batch) owns(s *Session) bool {
	return s != nil && s.BatchID == b.ID && slices.Contains(b.Sessions, s)
}

// Aggregator merges session results into one report per batch. It is not
// safe for concurrent use: one control goroutine owns it.
type Aggregator struct {
	registry *Registry
	renderer Renderer
	history  *History
	store    SnapshotStore
	logger   hclog.Logger
	now      func() time.Time
	onReport []func(*Snapshot)
	current  *Batch
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithRenderer sets the report renderer. Defaults to a zero Presenter.
func WithRenderer(r Renderer) AggregatorOption {
	return func(a *Aggregator) { a.renderer = r }
}

// WithHistory sets the in-memory snapshot history.
func WithHistory(h *History) AggregatorOption {
	return func(a *Aggregator) { a.history = h }
}

// WithSnapshotStore persists resolved snapshots.
func WithSnapshotStore(s SnapshotStore) AggregatorOption {
	return func(a *Aggregator) { a.store = s }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) AggregatorOption {
	return func(a *Aggregator) { a.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

// OnReport registers a hook called with every resolved snapshot.
func OnReport(fn func(*Snapshot)) AggregatorOption {
	return func(a *Aggregator) { a.onReport = append(a.onReport, fn) }
}

// NewAggregator creates an aggregator over the analyzers in registry.
func NewAggregator(registry *Registry, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		registry: registry,
		renderer: Presenter{},
		history:  NewHistory(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = hclog.NewNullLogger()
	}
	a.logger = a.logger.Named("aggregator")
	return a
}

// History returns the snapshot history.
func (a *Aggregator) History() *History {
	return a.history
}

// Current returns the most recently started batch, or nil.
func (a *Aggregator) Current() *Batch {
	return a.current
}

// Start cancels the in-flight batch, captures a snapshot of req, and hands a
// new session for every enabled analyzer to launch. A batch without
// sessions never produces a report.
func (a *Aggregator) Start(ctx context.Context, req Request, launch func(*Session)) *Batch {
	a.Cancel()

	b := &Batch{
		ID: uuid.New().String(),
		Snapshot: &Snapshot{
			ID:        uuid.New().String(),
			Timestamp: a.now(),
			MainFile:  req.MainFile,
			Source:    req.Source,
			Imported:  req.Imported,
		},
	}
	a.history.Append(b.Snapshot)
	a.current = b

	for _, an := range a.registry.Enabled() {
		b.Sessions = append(b.Sessions, NewSession(ctx, b.ID, an, req, a.logger))
	}
	if len(b.Sessions) == 0 {
		a.logger.Warn("no analyzers enabled", "file", req.MainFile)
		return b
	}

	a.logger.Debug("batch started", "batch", b.ID, "file", req.MainFile, "sessions", len(b.Sessions))
	for _, s := range b.Sessions {
		launch(s)
	}
	return b
}

// Cancel cancels every live session of the current batch.
func (a *Aggregator) Cancel() {
	if a.current == nil {
		return
	}
	for _, s := range a.current.Sessions {
		s.Cancel()
	}
}

// Accept records a completion. Cancelled, stale, and duplicate completions
// are dropped. When the final session of the batch is accepted, the merged
// report is rendered and the resolved snapshot is returned; otherwise Accept
// returns nil.
func (a *Aggregator) Accept(c Completion) *Snapshot {
	b := a.current
	s := c.Session
	if b == nil || !b.owns(s) {
		a.logger.Trace("dropping stale completion")
		return nil
	}
	if c.Cancelled {
		s.Cancel()
		a.logger.Trace("dropping interrupted completion", "session", s.ID)
		return nil
	}
	if !s.complete() {
		a.logger.Trace("dropping completion", "session", s.ID, "state", s.State())
		return nil
	}

	b.results = append(b.results, c.Findings)
	if c.Config != nil {
		b.config = c.Config
	}
	if !b.Done() {
		return nil
	}

	var findings []Finding
	for _, r := range b.results {
		findings = append(findings, r...)
	}
	doc := a.renderer.Render(findings, b.config)

	snap := b.Snapshot
	if err := snap.Resolve(findings, b.config, doc, a.now()); err != nil {
		a.logger.Error("failed to resolve snapshot", "snapshot", snap.ID, "error", err)
		return nil
	}
	a.logger.Debug("batch resolved", "batch", b.ID, "findings", len(findings))

	if a.store != nil {
		if err := a.store.Append(snap); err != nil {
			a.logger.Warn("failed to persist snapshot", "snapshot", snap.ID, "error", err)
		}
	}
	for _, fn := range a.onReport {
		fn(snap)
	}
	return snap
}
