package lintview_test

import (
	"context"
	"testing"

	"github.com/fwojciec/lintview"
	"github.com/fwojciec/lintview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRequest = lintview.Request{MainFile: "/src/main.py", Source: "print('hi')\n"}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns analyzer findings", func(t *testing.T) {
		t.Parallel()

		a := &mock.Analyzer{
			NameValue: "edulint",
			AnalyzeFn: func(_ context.Context, req lintview.Request) (lintview.Result, error) {
				return lintview.Result{
					Findings: []lintview.Finding{{Code: "C0103", Path: req.MainFile, Line: 1}},
					Config:   &lintview.LinterConfig{Value: []byte(`"default"`)},
				}, nil
			},
		}
		s := lintview.NewSession(context.Background(), "batch", a, testRequest, nil)

		c := s.Run()

		assert.Same(t, s, c.Session)
		assert.False(t, c.Cancelled)
		require.Len(t, c.Findings, 1)
		assert.Equal(t, "C0103", c.Findings[0].Code)
		assert.Equal(t, "default", c.Config.String())
		assert.Equal(t, lintview.SessionRunning, s.State())
	})

	t.Run("turns failure into unavailable finding", func(t *testing.T) {
		t.Parallel()

		a := &mock.Analyzer{
			NameValue: "edulint",
			AnalyzeFn: func(context.Context, lintview.Request) (lintview.Result, error) {
				return lintview.Result{}, lintview.ErrMalformedOutput
			},
		}

		c := lintview.NewSession(context.Background(), "batch", a, testRequest, nil).Run()

		require.Len(t, c.Findings, 1)
		assert.Equal(t, lintview.UnavailableCode, c.Findings[0].Code)
		assert.Equal(t, "/src/main.py", c.Findings[0].Path)
		assert.Equal(t, "edulint", c.Findings[0].Source)
		assert.ErrorIs(t, c.Err, lintview.ErrMalformedOutput)
	})

	t.Run("recovers analyzer panic", func(t *testing.T) {
		t.Parallel()

		a := &mock.Analyzer{
			NameValue: "broken",
			AnalyzeFn: func(context.Context, lintview.Request) (lintview.Result, error) {
				panic("boom")
			},
		}

		c := lintview.NewSession(context.Background(), "batch", a, testRequest, nil).Run()

		require.Len(t, c.Findings, 1)
		assert.Equal(t, lintview.UnavailableCode, c.Findings[0].Code)
		assert.Error(t, c.Err)
	})

	t.Run("reports interruption when cancelled", func(t *testing.T) {
		t.Parallel()

		a := &mock.Analyzer{
			NameValue: "slow",
			AnalyzeFn: func(ctx context.Context, _ lintview.Request) (lintview.Result, error) {
				<-ctx.Done()
				return lintview.Result{}, ctx.Err()
			},
		}
		s := lintview.NewSession(context.Background(), "batch", a, testRequest, nil)
		s.Cancel()

		c := s.Run()

		assert.True(t, c.Cancelled)
		assert.Empty(t, c.Findings)
		assert.NoError(t, c.Err)
	})
}

func TestSession_Cancel(t *testing.T) {
	t.Parallel()

	a := &mock.Analyzer{NameValue: "x"}
	s := lintview.NewSession(context.Background(), "batch", a, testRequest, nil)

	s.Cancel()
	s.Cancel()

	assert.True(t, s.Cancelled())
	assert.Equal(t, "cancelled", s.State().String())
}
