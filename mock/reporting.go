package mock

import (
	"context"

	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var (
	_ lintview.Reporter       = (*Reporter)(nil)
	_ lintview.FeedbackSender = (*FeedbackSender)(nil)
)

// Reporter is a mock implementation of lintview.Reporter. Nil functions are
// no-ops.
type Reporter struct {
	SendCodeFn    func(path, source string)
	SendResultsFn func(path, results string)
	SendErrorsFn  func(path, errs string)
}

func (r *Reporter) SendCode(path, source string) {
	if r.SendCodeFn != nil {
		r.SendCodeFn(path, source)
	}
}

func (r *Reporter) SendResults(path, results string) {
	if r.SendResultsFn != nil {
		r.SendResultsFn(path, results)
	}
}

func (r *Reporter) SendErrors(path, errs string) {
	if r.SendErrorsFn != nil {
		r.SendErrorsFn(path, errs)
	}
}

// FeedbackSender is a mock implementation of lintview.FeedbackSender.
type FeedbackSender struct {
	SubmitFn func(ctx context.Context, feedback *lintview.Feedback) error
}

func (s *FeedbackSender) Submit(ctx context.Context, feedback *lintview.Feedback) error {
	return s.SubmitFn(ctx, feedback)
}
