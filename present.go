package lintview

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Renderer turns a merged finding list into a report document.
type Renderer interface {
	Render(findings []Finding, cfg *LinterConfig) *Document
}

// Compile-time interface verification.
var _ Renderer = Presenter{}

// DefaultScheme is the URI scheme of editor location links.
const DefaultScheme = "editor"

const (
	reportTitle        = "What to improve"
	reportRemark       = "Addressing these suggestions can fix some bugs and makes your code more readable."
	noProblems         = "no problems detected"
	undeterminedOrigin = "undetermined origin"
)

// Presenter renders findings into a Document. The zero value uses
// DefaultScheme.
type Presenter struct {
	Scheme string
}

// FormatLocationURI builds an editor link to path, optionally at line and
// column. Line 0 means no position.
func FormatLocationURI(scheme, path string, line int, col *int) string {
	if scheme == "" {
		scheme = DefaultScheme
	}
	uri := scheme + "://" + strings.ReplaceAll(path, " ", "%20")
	if line > 0 {
		uri += "#" + strconv.Itoa(line)
		if col != nil {
			uri += ":" + strconv.Itoa(*col)
		}
	}
	return uri
}

// Render groups, orders, and deduplicates findings into a Document. The
// result does not depend on the order of findings.
func (p Presenter) Render(findings []Finding, cfg *LinterConfig) *Document {
	doc := &Document{
		Title:  reportTitle,
		Remark: reportRemark,
	}

	byPath := make(map[string][]Finding)
	for _, f := range findings {
		byPath[f.Path] = append(byPath[f.Path], f)
	}
	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	var kept []Finding
	for _, path := range paths {
		group := dedupe(sortFindings(byPath[path]))
		kept = append(kept, group...)

		section := FileSection{Path: path}
		if len(paths) > 1 {
			section.HeaderURI = FormatLocationURI(p.Scheme, path, 0, nil)
		}
		for i, f := range group {
			section.Blocks = append(section.Blocks, p.block(f, i < len(group)-1))
		}
		doc.Sections = append(doc.Sections, section)
	}

	doc.Summary = summarize(kept)
	if s := cfg.String(); s != "" {
		doc.ConfigLine = "used configuration: " + s
	}
	return doc
}

func (p Presenter) block(f Finding, tight bool) Block {
	title := f.Headline()
	if f.EnabledBy != "" {
		title = "[" + f.EnabledBy + "] " + title
	}

	var body string
	switch {
	case f.Explanation != "":
		body = f.Explanation
	case f.Message != "":
		body = Escape(f.Message)
	}
	if f.MoreInfoURL != "" {
		body += fmt.Sprintf("\n\n`More info online <%s>`__", f.MoreInfoURL)
	}
	body = strings.TrimSpace(body)
	collapsible := body != ""
	if !collapsible {
		body = "n/a"
	}

	return Block{
		Finding:     f,
		Title:       title,
		URI:         FormatLocationURI(p.Scheme, f.Path, f.Line, f.Column),
		Body:        body,
		Collapsible: collapsible,
		Tight:       tight,
	}
}

// sortFindings orders findings by line ascending and relevance descending,
// then by every remaining field so that equal keys never depend on input
// order.
func sortFindings(fs []Finding) []Finding {
	sorted := slices.Clone(fs)
	slices.SortStableFunc(sorted, func(a, b Finding) int {
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		if c := cmp.Compare(b.EffectiveRelevance(), a.EffectiveRelevance()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Key().Column, b.Key().Column); c != 0 {
			return c
		}
		return cmp.Or(
			strings.Compare(a.Code, b.Code),
			strings.Compare(a.Message, b.Message),
			strings.Compare(a.EnabledBy, b.EnabledBy),
			strings.Compare(a.Source, b.Source),
			strings.Compare(a.Explanation, b.Explanation),
			strings.Compare(a.MoreInfoURL, b.MoreInfoURL),
		)
	})
	return sorted
}

func dedupe(fs []Finding) []Finding {
	seen := make(map[FindingKey]bool, len(fs))
	out := fs[:0:0]
	for _, f := range fs {
		k := f.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}

func summarize(fs []Finding) string {
	if len(fs) == 0 {
		return noProblems
	}
	counts := make(map[string]int)
	for _, f := range fs {
		counts[f.EnabledBy]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		if name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	parts := make([]string, 0, len(counts))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, counts[name]))
	}
	if n, ok := counts[""]; ok {
		parts = append(parts, fmt.Sprintf("%s: %d", undeterminedOrigin, n))
	}
	return strings.Join(parts, ", ")
}
