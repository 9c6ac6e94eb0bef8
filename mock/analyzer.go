package mock

import (
	"context"

	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var _ lintview.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of lintview.Analyzer. A nil EnabledFn
// means enabled.
type Analyzer struct {
	NameValue string
	EnabledFn func() bool
	AnalyzeFn func(ctx context.Context, req lintview.Request) (lintview.Result, error)
}

func (a *Analyzer) Name() string {
	return a.NameValue
}

func (a *Analyzer) Enabled() bool {
	if a.EnabledFn == nil {
		return true
	}
	return a.EnabledFn()
}

func (a *Analyzer) Analyze(ctx context.Context, req lintview.Request) (lintview.Result, error) {
	return a.AnalyzeFn(ctx, req)
}
