package lipgloss

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/lintview"
)

// Printer renders report documents as styled terminal text.
type Printer struct {
	styles    lintview.Styles
	renderer  *lipgloss.Renderer
	tokenizer lintview.Tokenizer
	language  string
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithTheme sets the theme. Defaults to DefaultTheme.
func WithTheme(t lintview.Theme) PrinterOption {
	return func(p *Printer) { p.styles = t.Styles() }
}

// WithRenderer sets a custom lipgloss renderer.
func WithRenderer(r *lipgloss.Renderer) PrinterOption {
	return func(p *Printer) { p.renderer = r }
}

// WithTokenizer enables syntax highlighting of code blocks in explanations.
func WithTokenizer(t lintview.Tokenizer, language string) PrinterOption {
	return func(p *Printer) {
		p.tokenizer = t
		p.language = language
	}
}

// NewPrinter creates a Printer.
func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{styles: DefaultTheme().Styles()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Style converts a color pair to a lipgloss style using the printer's
// renderer.
func (p *Printer) Style(cp lintview.ColorPair) lipgloss.Style {
	var style lipgloss.Style
	if p.renderer != nil {
		style = p.renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// Styles returns the styles in use.
func (p *Printer) Styles() lintview.Styles {
	return p.styles
}

// Header renders the report title, its remark and the summary line that
// precedes the blocks.
func (p *Printer) Header(doc *lintview.Document) string {
	title := p.Style(p.styles.Title).Bold(true).Render(doc.Title)
	remark := p.Style(p.styles.Remark).Italic(true).Render(doc.Remark)
	return title + "\n" + remark + "\n\n" + p.Summary(doc) + "\n"
}

// Summary renders the one-line count of findings per origin.
func (p *Printer) Summary(doc *lintview.Document) string {
	return p.Style(p.styles.Summary).Render("Summary: " + doc.Summary)
}

// FileHeader renders the header of a file section.
func (p *Printer) FileHeader(section lintview.FileSection) string {
	return p.Style(p.styles.FileHeader).Bold(true).Render(" " + filepath.Base(section.Path) + " ")
}

// BlockTitle renders the one-line heading of a block.
func (p *Printer) BlockTitle(blk lintview.Block, expanded, selected bool) string {
	marker := "  "
	if blk.Collapsible {
		marker = "▸ "
		if expanded {
			marker = "▾ "
		}
	}

	var parts []string
	if blk.Finding.Line > 0 {
		parts = append(parts, p.Style(p.styles.Location).Underline(true).Render(fmt.Sprintf("Line %d", blk.Finding.Line)))
	}
	title := blk.Title
	if origin := "[" + blk.Finding.EnabledBy + "] "; blk.Finding.EnabledBy != "" && strings.HasPrefix(title, origin) {
		parts = append(parts, p.Style(p.styles.Origin).Render(strings.TrimSpace(origin)))
		title = strings.TrimPrefix(title, origin)
	}
	parts = append(parts, p.Style(p.styles.Message).Render(title))

	if selected {
		marker = p.Style(p.styles.Selected).Render(marker)
	}
	return marker + strings.Join(parts, " ")
}

// Body renders the markup body of a block as indented terminal text.
func (p *Printer) Body(blk lintview.Block) string {
	bodyStyle := p.Style(p.styles.Body)
	var out []string
	for _, seg := range segments(blk.Body) {
		if seg.code {
			out = append(out, p.code(seg.text)...)
			continue
		}
		for _, line := range strings.Split(seg.text, "\n") {
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				continue
			}
			out = append(out, "    "+bodyStyle.Render(inline(line)))
		}
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

func (p *Printer) code(text string) []string {
	var lines []string
	if p.tokenizer != nil {
		for _, toks := range p.tokenizer.TokenizeLines(p.language, text) {
			var b strings.Builder
			for _, tok := range toks {
				b.WriteString(p.Style(lintview.ColorPair{Foreground: tok.Style.Foreground}).Bold(tok.Style.Bold).Render(tok.Text))
			}
			lines = append(lines, b.String())
		}
	}
	if lines == nil {
		codeStyle := p.Style(p.styles.Code)
		for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
			lines = append(lines, codeStyle.Render(l))
		}
	}
	for i, l := range lines {
		lines[i] = "      " + l
	}
	return lines
}

// Footer renders the configuration line, or "" when none was reported.
func (p *Printer) Footer(doc *lintview.Document) string {
	if doc.ConfigLine == "" {
		return ""
	}
	return p.Style(p.styles.Remark).Italic(true).Render(doc.ConfigLine)
}

// Conclusion renders the text shown in place of an empty report: the
// looks-good message, the summary and the configuration line.
func (p *Printer) Conclusion(doc *lintview.Document, mainFile string) string {
	out := p.LooksGood(mainFile) + "\n\n" + p.Summary(doc) + "\n"
	if footer := p.Footer(doc); footer != "" {
		out += footer + "\n"
	}
	return out
}

// LooksGood renders the conclusion shown for a report without findings.
func (p *Printer) LooksGood(mainFile string) string {
	good := p.Style(p.styles.Good).Bold(true).Render(fmt.Sprintf("The code in %s looks good.", filepath.Base(mainFile)))
	hint := p.Style(p.styles.Remark).Italic(true).Render("If it is not working as it should, then consider using some general debugging techniques.")
	return good + "\n\n" + hint
}

// Print renders the whole document with every block expanded.
func (p *Printer) Print(doc *lintview.Document, mainFile string) string {
	var b strings.Builder
	if doc.Len() == 0 {
		return p.Conclusion(doc, mainFile)
	}

	b.WriteString(p.Header(doc))
	for _, section := range doc.Sections {
		b.WriteString("\n")
		if section.HeaderURI != "" {
			b.WriteString(p.FileHeader(section))
			b.WriteString("\n")
		}
		for _, blk := range section.Blocks {
			b.WriteString(p.BlockTitle(blk, true, false))
			b.WriteString("\n")
			b.WriteString(p.Body(blk))
			b.WriteString("\n")
			if !blk.Tight {
				b.WriteString("\n")
			}
		}
	}
	if footer := p.Footer(doc); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}
	return b.String()
}

type segment struct {
	text string
	code bool
}

// segments splits block markup into prose and literal code segments.
func segments(markup string) []segment {
	var segs []segment
	var prose, code []string
	flushProse := func() {
		if len(prose) > 0 {
			segs = append(segs, segment{text: strings.Join(prose, "\n")})
			prose = nil
		}
	}
	flushCode := func() {
		for len(code) > 0 && strings.TrimSpace(code[len(code)-1]) == "" {
			code = code[:len(code)-1]
		}
		if len(code) > 0 {
			segs = append(segs, segment{text: dedent(code), code: true})
		}
		code = nil
	}

	lines := strings.Split(markup, "\n")
	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != ".. code::" {
			prose = append(prose, lines[i])
			continue
		}
		flushProse()
		for i+1 < len(lines) && (strings.TrimSpace(lines[i+1]) == "" || strings.HasPrefix(lines[i+1], " ")) {
			i++
			if len(code) == 0 && strings.TrimSpace(lines[i]) == "" {
				continue
			}
			code = append(code, lines[i])
		}
		flushCode()
	}
	flushProse()
	return segs
}

func dedent(lines []string) string {
	margin := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if margin < 0 || n < margin {
			margin = n
		}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		switch {
		case strings.TrimSpace(l) == "":
			out[i] = ""
		case margin > 0:
			out[i] = l[margin:]
		default:
			out[i] = l
		}
	}
	return strings.Join(out, "\n")
}

var (
	inlineLink   = regexp.MustCompile("`([^`<]+?)\\s*<([^>]+)>`__")
	inlineBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineEscape = regexp.MustCompile(`\\(.)`)
)

// inline strips host markup from one prose line.
func inline(line string) string {
	line = inlineLink.ReplaceAllString(line, "$1 ($2)")
	line = inlineBold.ReplaceAllString(line, "$1")
	return inlineEscape.ReplaceAllString(line, "$1")
}
