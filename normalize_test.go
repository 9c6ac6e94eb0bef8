package lintview_test

import (
	"context"
	"testing"

	"github.com/fwojciec/lintview"
	"github.com/fwojciec/lintview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("copies fields and resolves explanation", func(t *testing.T) {
		t.Parallel()

		var asked string
		n := lintview.Normalizer{
			Source: "edulint",
			Explainer: &mock.Explainer{
				ExplainFn: func(_ context.Context, code string) string {
					asked = code
					return "**Why** it matters"
				},
			},
		}
		raw := lintview.RawFinding{
			Path:        ptr("/src/main.py"),
			Line:        ptr(7),
			Column:      ptr(4),
			Code:        ptr("R6201"),
			Text:        ptr("simplify\nmore details"),
			EndLine:     ptr(8),
			EnabledBy:   ptr("python_specific"),
			Relevance:   ptr(3),
			MoreInfoURL: ptr("https://example.com/R6201"),
		}

		f, err := n.Normalize(context.Background(), raw)

		require.NoError(t, err)
		assert.Equal(t, "R6201", asked)
		assert.Equal(t, "R6201", f.Code)
		assert.Equal(t, "simplify", f.Headline())
		assert.Equal(t, "/src/main.py", f.Path)
		assert.Equal(t, 7, f.Line)
		require.NotNil(t, f.Column)
		assert.Equal(t, 4, *f.Column)
		require.NotNil(t, f.EndLine)
		assert.Equal(t, 8, *f.EndLine)
		assert.Nil(t, f.EndColumn)
		assert.Equal(t, "python_specific", f.EnabledBy)
		assert.Equal(t, 3, f.EffectiveRelevance())
		assert.Equal(t, "https://example.com/R6201", f.MoreInfoURL)
		assert.Equal(t, "**Why** it matters", f.Explanation)
		assert.Equal(t, "edulint", f.Source)
	})

	t.Run("defaults relevance when absent", func(t *testing.T) {
		t.Parallel()

		f, err := lintview.Normalizer{}.Normalize(context.Background(), lintview.RawFinding{
			Path: ptr("/a.py"), Line: ptr(1), Column: ptr(0), Code: ptr("C"), Text: ptr("t"),
		})

		require.NoError(t, err)
		assert.Equal(t, lintview.DefaultRelevance, f.EffectiveRelevance())
		assert.Empty(t, f.Explanation)
	})

	t.Run("names missing required fields", func(t *testing.T) {
		t.Parallel()

		_, err := lintview.Normalizer{}.Normalize(context.Background(), lintview.RawFinding{
			Path: ptr("/a.py"), Column: ptr(0), Text: ptr("t"),
		})

		require.ErrorIs(t, err, lintview.ErrMalformedOutput)
		assert.Contains(t, err.Error(), "line, code")
	})
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	t.Parallel()

	good := lintview.RawFinding{Path: ptr("/a.py"), Line: ptr(1), Column: ptr(0), Code: ptr("C"), Text: ptr("t")}

	t.Run("fails the whole list on one bad record", func(t *testing.T) {
		t.Parallel()

		findings, err := lintview.Normalizer{}.NormalizeAll(context.Background(), []lintview.RawFinding{good, {Path: ptr("/a.py")}})

		require.ErrorIs(t, err, lintview.ErrMalformedOutput)
		assert.Nil(t, findings)
	})

	t.Run("converts every record", func(t *testing.T) {
		t.Parallel()

		findings, err := lintview.Normalizer{}.NormalizeAll(context.Background(), []lintview.RawFinding{good, good})

		require.NoError(t, err)
		assert.Len(t, findings, 2)
	})
}

func TestUnavailableFinding(t *testing.T) {
	t.Parallel()

	f := lintview.UnavailableFinding("/src/main.py", "edulint")

	assert.Equal(t, lintview.UnavailableCode, f.Code)
	assert.Equal(t, "/src/main.py", f.Path)
	assert.Equal(t, "edulint", f.Source)
	assert.Contains(t, f.Explanation, "pip install")
}
