// Package bubbletea provides the interactive report panel built on Bubble
// Tea.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var _ lintview.Viewer = (*Viewer)(nil)

// Viewer implements lintview.Viewer with a full-screen panel.
type Viewer struct {
	agg    *lintview.Aggregator
	source lintview.RequestSource
	opts   []PanelOption
}

// NewViewer creates a viewer that analyzes files captured from source.
func NewViewer(agg *lintview.Aggregator, source lintview.RequestSource, opts ...PanelOption) *Viewer {
	return &Viewer{agg: agg, source: source, opts: opts}
}

// View opens the panel for mainFile and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, mainFile string) error {
	opts := append(append([]PanelOption{}, v.opts...), WithContext(ctx))
	m := NewPanel(mainFile, v.agg, v.source, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	v.agg.Cancel()
	return err
}
