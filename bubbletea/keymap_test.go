package bubbletea_test

import (
	"testing"

	bkey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/lintview/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding bkey.Binding
	}{
		{"k scrolls up", key('k'), km.Up},
		{"arrow up scrolls up", tea.KeyMsg{Type: tea.KeyUp}, km.Up},
		{"j scrolls down", key('j'), km.Down},
		{"ctrl+u half page up", tea.KeyMsg{Type: tea.KeyCtrlU}, km.HalfPageUp},
		{"ctrl+d half page down", tea.KeyMsg{Type: tea.KeyCtrlD}, km.HalfPageDown},
		{"g goes to top", key('g'), km.GotoTop},
		{"G goes to bottom", key('G'), km.GotoBottom},
		{"n selects next finding", key('n'), km.NextFinding},
		{"p selects previous finding", key('p'), km.PrevFinding},
		{"N selects previous finding", key('N'), km.PrevFinding},
		{"enter toggles details", tea.KeyMsg{Type: tea.KeyEnter}, km.Toggle},
		{"space toggles details", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Toggle},
		{"e expands all", key('e'), km.ExpandAll},
		{"r reruns", key('r'), km.Rerun},
		{"F9 reruns", tea.KeyMsg{Type: tea.KeyF9}, km.Rerun},
		{"c cancels", key('c'), km.Cancel},
		{"y copies location", key('y'), km.CopyLocation},
		{"q quits", key('q'), km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, bkey.Matches(tt.msg, tt.binding))
		})
	}

	t.Run("cancel and rerun do not overlap", func(t *testing.T) {
		t.Parallel()
		assert.False(t, bkey.Matches(key('c'), km.Rerun))
		assert.False(t, bkey.Matches(key('r'), km.Cancel))
	})
}
