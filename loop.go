package lintview

import (
	"context"
	"sync"
)

// Loop is a headless control queue. Sessions run on worker goroutines and
// post their completions; a single consumer drains them with Next.
type Loop struct {
	completions chan Completion
	done        chan struct{}
	once        sync.Once
}

// NewLoop creates an open loop.
func NewLoop() *Loop {
	return &Loop{
		completions: make(chan Completion, 16),
		done:        make(chan struct{}),
	}
}

// Launch runs s on a new goroutine and posts its completion.
func (l *Loop) Launch(s *Session) {
	go func() {
		c := s.Run()
		select {
		case l.completions <- c:
		case <-l.done:
		}
	}()
}

// Next blocks until a completion arrives, ctx is done, or the loop closes.
func (l *Loop) Next(ctx context.Context) (Completion, error) {
	select {
	case c := <-l.completions:
		return c, nil
	case <-ctx.Done():
		return Completion{}, ctx.Err()
	case <-l.done:
		return Completion{}, context.Canceled
	}
}

// Close releases goroutines still waiting to post.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// RunBatch starts a batch for req and consumes completions until it
// resolves. It returns nil without error when no analyzer is enabled.
func RunBatch(ctx context.Context, agg *Aggregator, loop *Loop, req Request) (*Snapshot, error) {
	b := agg.Start(ctx, req, loop.Launch)
	if len(b.Sessions) == 0 {
		return nil, nil
	}
	for {
		c, err := loop.Next(ctx)
		if err != nil {
			agg.Cancel()
			return nil, err
		}
		if snap := agg.Accept(c); snap != nil && snap == b.Snapshot {
			return snap, nil
		}
	}
}
