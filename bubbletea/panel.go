package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/lintview"
	lv "github.com/fwojciec/lintview/lipgloss"
)

// Status messages.
const (
	StatusAnalyzing   = "Analyzing your code ..."
	StatusCancelled   = "Analysis cancelled"
	StatusNoAnalyzers = "No analyzers are enabled"
)

type runMsg struct{}

type completionMsg struct {
	completion lintview.Completion
}

// Panel is the Bubble Tea model of the report panel. It owns the
// aggregator: session completions arrive as messages and are accepted on the
// update goroutine.
type Panel struct {
	ctx       context.Context
	mainFile  string
	agg       *lintview.Aggregator
	source    lintview.RequestSource
	printer   *lv.Printer
	clipboard lintview.Clipboard

	running    bool
	snapshot   *lintview.Snapshot
	expanded   map[int]bool
	selected   int
	blockLines []int
	status     string

	viewport viewport.Model
	keymap   KeyMap
	width    int
	ready    bool
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithPrinter sets the printer used to style the report.
func WithPrinter(p *lv.Printer) PanelOption {
	return func(m *Panel) { m.printer = p }
}

// WithClipboard enables copying finding locations.
func WithClipboard(c lintview.Clipboard) PanelOption {
	return func(m *Panel) { m.clipboard = c }
}

// WithContext sets the parent context of analysis sessions.
func WithContext(ctx context.Context) PanelOption {
	return func(m *Panel) { m.ctx = ctx }
}

// NewPanel creates a panel that analyzes mainFile as soon as it starts.
func NewPanel(mainFile string, agg *lintview.Aggregator, source lintview.RequestSource, opts ...PanelOption) Panel {
	m := Panel{
		ctx:      context.Background(),
		mainFile: mainFile,
		agg:      agg,
		source:   source,
		expanded: make(map[int]bool),
		keymap:   DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.printer == nil {
		m.printer = lv.NewPrinter()
	}
	return m
}

// Init implements tea.Model.
func (m Panel) Init() tea.Cmd {
	return func() tea.Msg { return runMsg{} }
}

// Update implements tea.Model.
func (m Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		return m, m.start()

	case completionMsg:
		snap := m.agg.Accept(msg.completion)
		if snap == nil {
			return m, nil
		}
		m.running = false
		m.snapshot = snap
		m.expanded = make(map[int]bool)
		m.selected = 0
		m.status = ""
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.agg.Cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Rerun):
			return m, m.start()
		case key.Matches(msg, m.keymap.Cancel):
			m.cancel()
			return m, nil
		case key.Matches(msg, m.keymap.Toggle):
			m.toggle()
			return m, nil
		case key.Matches(msg, m.keymap.ExpandAll):
			m.toggleAll()
			return m, nil
		case key.Matches(msg, m.keymap.NextFinding):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keymap.PrevFinding):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keymap.CopyLocation):
			m.copyLocation()
			return m, nil
		case key.Matches(msg, m.keymap.GotoTop):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		statusBarHeight := 1
		m.width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
		m.refresh()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Panel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// Running reports whether a batch is in flight.
func (m Panel) Running() bool { return m.running }

// Status returns the current status message.
func (m Panel) Status() string { return m.status }

// Selected returns the index of the block under the cursor.
func (m Panel) Selected() int { return m.selected }

// Expanded reports whether block i shows its details.
func (m Panel) Expanded(i int) bool { return m.expanded[i] }

// Snapshot returns the last resolved snapshot, or nil.
func (m Panel) Snapshot() *lintview.Snapshot { return m.snapshot }

// start captures the file and launches a new batch. Each session runs in
// its own command and reports back as a completionMsg.
func (m *Panel) start() tea.Cmd {
	req, err := m.source.Request(m.mainFile)
	if err != nil {
		m.agg.Cancel()
		m.running = false
		m.status = err.Error()
		m.refresh()
		return nil
	}

	var sessions []*lintview.Session
	m.agg.Start(m.ctx, req, func(s *lintview.Session) {
		sessions = append(sessions, s)
	})
	if len(sessions) == 0 {
		m.running = false
		m.status = StatusNoAnalyzers
		m.refresh()
		return nil
	}

	m.running = true
	m.status = StatusAnalyzing
	m.refresh()
	cmds := make([]tea.Cmd, len(sessions))
	for i, s := range sessions {
		cmds[i] = func() tea.Msg { return completionMsg{completion: s.Run()} }
	}
	return tea.Batch(cmds...)
}

func (m *Panel) cancel() {
	if !m.running {
		return
	}
	m.agg.Cancel()
	m.running = false
	m.status = StatusCancelled
	m.refresh()
}

func (m *Panel) blocks() []lintview.Block {
	if m.running || m.snapshot == nil || m.snapshot.Document == nil {
		return nil
	}
	return m.snapshot.Document.Blocks()
}

func (m *Panel) toggle() {
	blocks := m.blocks()
	if m.selected >= len(blocks) || !blocks[m.selected].Collapsible {
		return
	}
	m.expanded[m.selected] = !m.expanded[m.selected]
	m.refresh()
}

// toggleAll expands every block unless all are expanded already, in which
// case it collapses them.
func (m *Panel) toggleAll() {
	blocks := m.blocks()
	expand := false
	for i, blk := range blocks {
		if blk.Collapsible && !m.expanded[i] {
			expand = true
			break
		}
	}
	for i, blk := range blocks {
		if blk.Collapsible {
			m.expanded[i] = expand
		}
	}
	m.refresh()
}

func (m *Panel) move(delta int) {
	blocks := m.blocks()
	if len(blocks) == 0 {
		return
	}
	m.selected = max(0, min(len(blocks)-1, m.selected+delta))
	m.refresh()
	if m.selected < len(m.blockLines) {
		m.viewport.SetYOffset(m.blockLines[m.selected])
	}
}

func (m *Panel) copyLocation() {
	blocks := m.blocks()
	if m.clipboard == nil || m.selected >= len(blocks) {
		return
	}
	uri := blocks[m.selected].URI
	if err := m.clipboard.Copy(uri); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + uri
}

func (m *Panel) refresh() {
	if !m.ready {
		return
	}
	content, lines := m.renderContent()
	m.blockLines = lines
	m.viewport.SetContent(ExpandTabs(content))
}

// renderContent renders the report and returns the line offset of every
// block title.
func (m Panel) renderContent() (string, []int) {
	if m.running {
		return "\n" + StatusAnalyzing + "\n", nil
	}
	if m.snapshot == nil || m.snapshot.Document == nil {
		return "\n" + m.status + "\n", nil
	}

	doc := m.snapshot.Document
	if doc.Len() == 0 {
		return m.printer.Conclusion(doc, m.mainFile), nil
	}

	var b strings.Builder
	line := 0
	write := func(s string) {
		b.WriteString(s)
		line += strings.Count(s, "\n")
	}

	var offsets []int
	write(m.printer.Header(doc))
	idx := 0
	for _, section := range doc.Sections {
		write("\n")
		if section.HeaderURI != "" {
			write(m.printer.FileHeader(section) + "\n")
		}
		for _, blk := range section.Blocks {
			offsets = append(offsets, line)
			write(m.printer.BlockTitle(blk, m.expanded[idx], idx == m.selected) + "\n")
			if m.expanded[idx] {
				write(m.printer.Body(blk) + "\n")
				if !blk.Tight {
					write("\n")
				}
			}
			idx++
		}
	}
	if footer := m.printer.Footer(doc); footer != "" {
		write("\n" + footer + "\n")
	}
	return b.String(), offsets
}

func (m Panel) statusBarView() string {
	styles := m.printer.Styles()
	barStyle := m.printer.Style(styles.Status)
	dimStyle := m.printer.Style(lintview.ColorPair{Foreground: styles.Remark.Foreground, Background: styles.Status.Background})

	var parts []string
	if blocks := m.blocks(); len(blocks) > 0 {
		width := len(fmt.Sprint(len(blocks)))
		parts = append(parts, fmt.Sprintf("finding %*d/%-*d", width, m.selected+1, width, len(blocks)))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, scrollPosition(m.viewport))

	sep := barStyle.Render(" │ ")
	content := barStyle.Render(strings.Join(parts, " │ ")) + sep +
		dimStyle.Render("n/p:move  enter:details  r:rerun  c:cancel  y:copy  q:quit") +
		barStyle.Render("  ")

	if w := lipgloss.Width(content); m.width > w {
		content = barStyle.Render(strings.Repeat(" ", m.width-w)) + content
	}
	return content
}

func scrollPosition(vp viewport.Model) string {
	switch {
	case vp.AtTop():
		return "Top"
	case vp.AtBottom():
		return "Bot"
	default:
		return fmt.Sprintf("%2d%%", int(vp.ScrollPercent()*100))
	}
}
