package mock

import (
	"context"

	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var (
	_ lintview.ExplanationSource = (*ExplanationSource)(nil)
	_ lintview.Explainer         = (*Explainer)(nil)
)

// ExplanationSource is a mock implementation of lintview.ExplanationSource.
type ExplanationSource struct {
	ExplanationsFn func(ctx context.Context) (map[string]lintview.Explanation, error)
}

func (s *ExplanationSource) Explanations(ctx context.Context) (map[string]lintview.Explanation, error) {
	return s.ExplanationsFn(ctx)
}

// Explainer is a mock implementation of lintview.Explainer.
type Explainer struct {
	ExplainFn func(ctx context.Context, code string) string
}

func (e *Explainer) Explain(ctx context.Context, code string) string {
	return e.ExplainFn(ctx, code)
}
