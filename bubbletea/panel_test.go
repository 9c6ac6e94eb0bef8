package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/lintview"
	"github.com/fwojciec/lintview/bubbletea"
	lv "github.com/fwojciec/lintview/lipgloss"
	"github.com/fwojciec/lintview/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainFile = "/src/main.py"

// Compile-time check that Viewer implements lintview.Viewer.
var _ lintview.Viewer = (*bubbletea.Viewer)(nil)

func plainPrinter() *lv.Printer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return lv.NewPrinter(lv.WithRenderer(r))
}

func source() *mock.RequestSource {
	return &mock.RequestSource{
		RequestFn: func(path string) (lintview.Request, error) {
			return lintview.Request{MainFile: path, Source: "import os\n\nimport sys\n"}, nil
		},
	}
}

func reporting(findings ...lintview.Finding) *mock.Analyzer {
	return &mock.Analyzer{
		NameValue: "static",
		AnalyzeFn: func(context.Context, lintview.Request) (lintview.Result, error) {
			return lintview.Result{Findings: findings}, nil
		},
	}
}

// blocking returns an analyzer that waits until its session is cancelled.
func blocking() *mock.Analyzer {
	return &mock.Analyzer{
		NameValue: "slow",
		AnalyzeFn: func(ctx context.Context, _ lintview.Request) (lintview.Result, error) {
			<-ctx.Done()
			return lintview.Result{}, ctx.Err()
		},
	}
}

var unusedImports = []lintview.Finding{
	{Code: "W0611", Message: "unused import os", Path: mainFile, Line: 1, Explanation: "Remove imports you do not use."},
	{Code: "W0611", Message: "unused import sys", Path: mainFile, Line: 3, Explanation: "Remove imports you do not use."},
}

func newPanel(analyzers []lintview.Analyzer, opts ...bubbletea.PanelOption) bubbletea.Panel {
	agg := lintview.NewAggregator(lintview.NewRegistry(analyzers...))
	opts = append([]bubbletea.PanelOption{bubbletea.WithPrinter(plainPrinter())}, opts...)
	return bubbletea.NewPanel(mainFile, agg, source(), opts...)
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (bubbletea.Panel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	p, ok := next.(bubbletea.Panel)
	require.True(t, ok)
	return p, cmd
}

// drain executes cmd and feeds every resulting message back into the panel.
func drain(t *testing.T, m bubbletea.Panel, cmd tea.Cmd) bubbletea.Panel {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	m, next := update(t, m, msg)
	return drain(t, m, next)
}

func started(t *testing.T, m bubbletea.Panel) (bubbletea.Panel, tea.Cmd) {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return update(t, m, m.Init()())
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPanel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := newPanel(nil)

	assert.Contains(t, m.View(), "Loading")
}

func TestPanel_Analysis(t *testing.T) {
	t.Parallel()

	t.Run("shows analyzing status while sessions run", func(t *testing.T) {
		t.Parallel()

		m, cmd := started(t, newPanel([]lintview.Analyzer{reporting(unusedImports...)}))

		require.NotNil(t, cmd)
		assert.True(t, m.Running())
		assert.Contains(t, m.View(), bubbletea.StatusAnalyzing)
	})

	t.Run("renders report once every session delivered", func(t *testing.T) {
		t.Parallel()

		m, cmd := started(t, newPanel([]lintview.Analyzer{reporting(unusedImports[0]), reporting(unusedImports[1])}))
		m = drain(t, m, cmd)

		require.NotNil(t, m.Snapshot())
		assert.False(t, m.Running())
		assert.Len(t, m.Snapshot().Findings, 2)
		view := m.View()
		assert.Contains(t, view, "What to improve")
		assert.Contains(t, view, "▸ Line 1 unused import os")
		assert.Contains(t, view, "▸ Line 3 unused import sys")
		assert.Contains(t, view, "finding 1/2")
		assert.NotContains(t, view, "Remove imports you do not use.")
		assert.Less(t, strings.Index(view, "Summary: undetermined origin: 2"), strings.Index(view, "▸ Line 1"))
	})

	t.Run("shows conclusion for clean code", func(t *testing.T) {
		t.Parallel()

		m, cmd := started(t, newPanel([]lintview.Analyzer{reporting()}))
		m = drain(t, m, cmd)

		view := m.View()
		assert.Contains(t, view, "The code in main.py looks good.")
		assert.Contains(t, view, "Summary: no problems detected")
	})

	t.Run("reports missing analyzers", func(t *testing.T) {
		t.Parallel()

		disabled := reporting(unusedImports...)
		disabled.EnabledFn = func() bool { return false }

		m, cmd := started(t, newPanel([]lintview.Analyzer{disabled}))

		assert.Nil(t, cmd)
		assert.False(t, m.Running())
		assert.Equal(t, bubbletea.StatusNoAnalyzers, m.Status())
		assert.Contains(t, m.View(), bubbletea.StatusNoAnalyzers)
	})

	t.Run("shows capture error", func(t *testing.T) {
		t.Parallel()

		agg := lintview.NewAggregator(lintview.NewRegistry(reporting()))
		src := &mock.RequestSource{
			RequestFn: func(string) (lintview.Request, error) {
				return lintview.Request{}, errors.New("read main.py: permission denied")
			},
		}
		m := bubbletea.NewPanel(mainFile, agg, src, bubbletea.WithPrinter(plainPrinter()))

		m, cmd := started(t, m)

		assert.Nil(t, cmd)
		assert.Equal(t, "read main.py: permission denied", m.Status())
	})

	t.Run("cancel stops the batch without a report", func(t *testing.T) {
		t.Parallel()

		m, cmd := started(t, newPanel([]lintview.Analyzer{blocking()}))
		m, _ = update(t, m, key('c'))

		assert.False(t, m.Running())
		assert.Equal(t, bubbletea.StatusCancelled, m.Status())

		m = drain(t, m, cmd)

		assert.Nil(t, m.Snapshot())
		assert.Contains(t, m.View(), bubbletea.StatusCancelled)
	})

	t.Run("rerun replaces the report", func(t *testing.T) {
		t.Parallel()

		calls := 0
		an := &mock.Analyzer{
			NameValue: "counting",
			AnalyzeFn: func(context.Context, lintview.Request) (lintview.Result, error) {
				calls++
				return lintview.Result{Findings: unusedImports[:calls]}, nil
			},
		}
		m, cmd := started(t, newPanel([]lintview.Analyzer{an}))
		m = drain(t, m, cmd)
		first := m.Snapshot()

		m, cmd = update(t, m, key('r'))
		assert.True(t, m.Running())
		m = drain(t, m, cmd)

		require.NotNil(t, m.Snapshot())
		assert.NotSame(t, first, m.Snapshot())
		assert.Len(t, m.Snapshot().Findings, 2)
	})
}

func TestPanel_Navigation(t *testing.T) {
	t.Parallel()

	report := func(t *testing.T, opts ...bubbletea.PanelOption) bubbletea.Panel {
		t.Helper()
		m, cmd := started(t, newPanel([]lintview.Analyzer{reporting(unusedImports...)}, opts...))
		return drain(t, m, cmd)
	}

	t.Run("toggle shows and hides details", func(t *testing.T) {
		t.Parallel()

		m := report(t)
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, m.Expanded(0))
		assert.Contains(t, m.View(), "▾ Line 1 unused import os")
		assert.Contains(t, m.View(), "Remove imports you do not use.")

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.False(t, m.Expanded(0))
		assert.NotContains(t, m.View(), "Remove imports you do not use.")
	})

	t.Run("moves between findings within bounds", func(t *testing.T) {
		t.Parallel()

		m := report(t)
		m, _ = update(t, m, key('n'))
		assert.Equal(t, 1, m.Selected())
		assert.Contains(t, m.View(), "finding 2/2")

		m, _ = update(t, m, key('n'))
		assert.Equal(t, 1, m.Selected())

		m, _ = update(t, m, key('p'))
		m, _ = update(t, m, key('p'))
		assert.Equal(t, 0, m.Selected())
	})

	t.Run("expand all then collapse all", func(t *testing.T) {
		t.Parallel()

		m := report(t)
		m, _ = update(t, m, key('e'))
		assert.True(t, m.Expanded(0))
		assert.True(t, m.Expanded(1))

		m, _ = update(t, m, key('e'))
		assert.False(t, m.Expanded(0))
		assert.False(t, m.Expanded(1))
	})

	t.Run("copies location of selected finding", func(t *testing.T) {
		t.Parallel()

		var copied string
		clip := &mock.Clipboard{CopyFn: func(content string) error {
			copied = content
			return nil
		}}

		m := report(t, bubbletea.WithClipboard(clip))
		m, _ = update(t, m, key('n'))
		m, _ = update(t, m, key('y'))

		assert.Equal(t, "editor:///src/main.py#3", copied)
		assert.Equal(t, "Copied editor:///src/main.py#3", m.Status())
	})

	t.Run("reports clipboard failure", func(t *testing.T) {
		t.Parallel()

		clip := &mock.Clipboard{CopyFn: func(string) error { return errors.New("no clipboard") }}

		m := report(t, bubbletea.WithClipboard(clip))
		m, _ = update(t, m, key('y'))

		assert.Equal(t, "Copy failed: no clipboard", m.Status())
	})
}

func TestPanel_Program(t *testing.T) {
	t.Parallel()

	m := newPanel([]lintview.Analyzer{reporting(unusedImports...)})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("unused import sys"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(key('q'))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(bubbletea.Panel)
	require.True(t, ok)
	require.NotNil(t, final.Snapshot())
	assert.Len(t, final.Snapshot().Findings, 2)
}
