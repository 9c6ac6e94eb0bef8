package lintview

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// SessionState is the lifecycle state of a Session.
type SessionState int32

const (
	SessionRunning SessionState = iota
	SessionCompleted
	SessionCancelled
)

func (s SessionState) String() string {
	switch s {
	case SessionRunning:
		return "running"
	case SessionCompleted:
		return "completed"
	case SessionCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("SessionState(%d)", int32(s))
	}
}

// Session is one cancellable run of one analyzer.
type Session struct {
	ID       string
	BatchID  string
	Analyzer Analyzer
	Request  Request

	ctx    context.Context
	cancel context.CancelFunc
	state  atomic.Int32
	logger hclog.Logger
}

// NewSession creates a running session. Its context derives from ctx.
func NewSession(ctx context.Context, batchID string, a Analyzer, req Request, logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Session{
		ID:       uuid.New().String(),
		BatchID:  batchID,
		Analyzer: a,
		Request:  req,
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.logger = logger.With("analyzer", a.Name(), "session", s.ID)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Cancelled reports whether the session was cancelled.
func (s *Session) Cancelled() bool {
	return s.State() == SessionCancelled
}

// Cancel stops the session. Calling it more than once is harmless, and a
// session that already completed stays completed.
func (s *Session) Cancel() {
	s.state.CompareAndSwap(int32(SessionRunning), int32(SessionCancelled))
	s.cancel()
}

// complete marks the session delivered. It reports false if the session was
// cancelled or already delivered.
func (s *Session) complete() bool {
	ok := s.state.CompareAndSwap(int32(SessionRunning), int32(SessionCompleted))
	if ok {
		s.cancel()
	}
	return ok
}

// Completion is the message a finished session posts to the control loop.
type Completion struct {
	Session   *Session
	Findings  []Finding
	Config    *LinterConfig
	Cancelled bool  // The run was interrupted; the completion is dropped
	Err       error // Failure that was turned into an unavailable finding
}

// Run executes the analyzer and blocks until it finishes. It never panics:
// failures become a single unavailable finding.
func (s *Session) Run() (c Completion) {
	c.Session = s
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("analyzer panicked", "panic", r)
			c = s.unavailable(fmt.Errorf("analyzer panicked: %v", r))
		}
	}()

	s.logger.Debug("analysis started", "file", s.Request.MainFile)
	res, err := s.Analyzer.Analyze(s.ctx, s.Request)
	if s.ctx.Err() != nil {
		s.logger.Trace("analysis interrupted")
		return Completion{Session: s, Cancelled: true}
	}
	if err != nil {
		s.logger.Error("analysis failed", "error", err)
		return s.unavailable(err)
	}
	s.logger.Debug("analysis finished", "findings", len(res.Findings))
	return Completion{Session: s, Findings: res.Findings, Config: res.Config}
}

func (s *Session) unavailable(err error) Completion {
	return Completion{
		Session:  s,
		Findings: []Finding{UnavailableFinding(s.Request.MainFile, s.Analyzer.Name())},
		Err:      err,
	}
}
