// Package textcheck is an in-process analyzer for whitespace and layout
// problems that need no parser.
package textcheck

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/lintview"
)

// Name is the analyzer variant name and the enabled_by origin of its
// findings.
const Name = "textcheck"

// EnabledKey is the settings key that switches the analyzer on.
const EnabledKey = "textcheck.enabled"

// DefaultMaxLineLength is the longest line accepted without a finding.
const DefaultMaxLineLength = 100

// Rule codes.
const (
	CodeLongLine       = "W001"
	CodeTrailingSpace  = "W002"
	CodeTabIndent      = "W003"
	CodeMissingNewline = "W004"
)

var _ lintview.Analyzer = (*Analyzer)(nil)

// Analyzer checks the captured source of the main file and its imports.
type Analyzer struct {
	MaxLineLength int
	Settings      lintview.Settings // Optional; always enabled when nil
	Explainer     lintview.Explainer
}

func (a *Analyzer) Name() string { return Name }

func (a *Analyzer) Enabled() bool {
	return a.Settings == nil || a.Settings.Bool(EnabledKey)
}

// Analyze checks every captured file. It reports no configuration.
func (a *Analyzer) Analyze(ctx context.Context, req lintview.Request) (lintview.Result, error) {
	findings := a.Check(req.MainFile, req.Source)
	for _, path := range req.ImportedPaths() {
		if err := ctx.Err(); err != nil {
			return lintview.Result{}, err
		}
		findings = append(findings, a.Check(path, req.Imported[path])...)
	}
	if a.Explainer != nil {
		for i := range findings {
			if e := a.Explainer.Explain(ctx, findings[i].Code); e != "" {
				findings[i].Explanation = e
			}
		}
	}
	return lintview.Result{Findings: findings}, nil
}

// Check returns the findings for one file's source.
func (a *Analyzer) Check(path, source string) []lintview.Finding {
	maxLen := a.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}

	var findings []lintview.Finding
	add := func(code string, line, col int, msg string) {
		findings = append(findings, lintview.Finding{
			Code:      code,
			Message:   msg,
			Path:      path,
			Line:      line,
			Column:    &col,
			EnabledBy: Name,
			Source:    Name,
		})
	}

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			break
		}
		line = strings.TrimSuffix(line, "\r")
		n := i + 1
		if width := utf8.RuneCountInString(line); width > maxLen {
			add(CodeLongLine, n, maxLen, fmt.Sprintf("Line too long (%d/%d)", width, maxLen))
		}
		if trimmed := strings.TrimRight(line, " \t"); len(trimmed) < len(line) {
			add(CodeTrailingSpace, n, utf8.RuneCountInString(trimmed), "Trailing whitespace")
		}
		if indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]; strings.Contains(indent, "\t") {
			add(CodeTabIndent, n, 0, "Indentation contains tabs")
		}
	}
	if source != "" && !strings.HasSuffix(source, "\n") {
		add(CodeMissingNewline, len(lines), 0, "Final newline missing")
	}
	return findings
}

// Explanations is the explanation table for the rules above.
func Explanations() map[string]lintview.Explanation {
	return map[string]lintview.Explanation{
		CodeLongLine: {
			Why:      "Long lines are hard to read, especially side by side with other code.",
			Examples: "Split long expressions inside parentheses:\n\n```py\ntotal = (first_value\n         + second_value)\n```",
		},
		CodeTrailingSpace: {
			Why: "Whitespace at the end of a line is invisible and only adds noise to diffs.",
		},
		CodeTabIndent: {
			Why: "Python compares indentation literally. Mixing tabs and spaces leads to confusing `IndentationError`s. Use four spaces.",
		},
		CodeMissingNewline: {
			Why: "Many tools expect every line, including the last one, to end with a newline.",
		},
	}
}

var _ lintview.ExplanationSource = ExplanationSource{}

// ExplanationSource serves Explanations.
type ExplanationSource struct{}

func (ExplanationSource) Explanations(context.Context) (map[string]lintview.Explanation, error) {
	return Explanations(), nil
}
