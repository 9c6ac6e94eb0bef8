package lintview

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is the structured report rendered from a merged finding list.
type Document struct {
	Title      string        `json:"title"`
	Remark     string        `json:"remark"`
	Summary    string        `json:"summary"`
	Sections   []FileSection `json:"sections,omitempty"`
	ConfigLine string        `json:"config_line,omitempty"`
}

// FileSection holds the blocks for one file.
type FileSection struct {
	Path      string  `json:"path"`
	HeaderURI string  `json:"header_uri,omitempty"` // Set only when the report spans several files
	Blocks    []Block `json:"blocks"`
}

// Block is one finding as it appears in the report.
type Block struct {
	Finding     Finding `json:"finding"`
	Title       string  `json:"title"`
	URI         string  `json:"uri"`
	Body        string  `json:"body"` // Host markup
	Collapsible bool    `json:"collapsible"`
	Tight       bool    `json:"tight"`
}

// Len returns the number of blocks across all sections.
func (d *Document) Len() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Blocks)
	}
	return n
}

// Blocks returns every block in report order.
func (d *Document) Blocks() []Block {
	blocks := make([]Block, 0, d.Len())
	for _, s := range d.Sections {
		blocks = append(blocks, s.Blocks...)
	}
	return blocks
}

const markupPrelude = ".. default-role:: code\n\n.. role:: light\n\n.. role:: remark\n\n"

// Markup renders the document as host markup.
func (d *Document) Markup() string {
	var b strings.Builder

	if d.Len() > 0 {
		b.WriteString(markupPrelude)
		b.WriteString(title(d.Title))
		fmt.Fprintf(&b, ":remark:`%s`\n\n", d.Remark)
	}
	fmt.Fprintf(&b, "Summary: %s\n\n", d.Summary)

	for _, section := range d.Sections {
		if len(section.Blocks) == 0 {
			continue
		}
		if section.HeaderURI != "" {
			fmt.Fprintf(&b, "`%s <%s>`__\n\n", Escape(filepath.Base(section.Path)), section.HeaderURI)
		}
		for _, block := range section.Blocks {
			b.WriteString(block.markup())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if d.ConfigLine != "" {
		fmt.Fprintf(&b, ":remark:`%s`\n", d.ConfigLine)
	}
	return b.String()
}

func (blk Block) markup() string {
	heading := Escape(blk.Title)
	if blk.Finding.Line > 0 {
		heading = fmt.Sprintf("`Line %d <%s>`__ : %s", blk.Finding.Line, blk.URI, heading)
	}
	class := "empty"
	if blk.Collapsible {
		class = "toggle"
	}
	if blk.Tight {
		class += ", tight"
	}
	return ".. topic:: " + heading + "\n" +
		"    :class: " + class + "\n" +
		"    \n" +
		indent(blk.Body, "    ") + "\n\n"
}

func title(s string) string {
	line := strings.Repeat("=", len(s))
	return line + "\n" + s + "\n" + line + "\n\n"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
