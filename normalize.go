package lintview

import (
	"context"
	"fmt"
	"strings"
)

// RawFinding is one finding record as an analyzer writes it on the wire.
// Pointer fields distinguish missing keys from zero values.
type RawFinding struct {
	Path        *string `json:"path"`
	Line        *int    `json:"line"`
	Column      *int    `json:"column"`
	Code        *string `json:"code"`
	Text        *string `json:"text"`
	EndLine     *int    `json:"end_line,omitempty"`
	EndColumn   *int    `json:"end_column,omitempty"`
	EnabledBy   *string `json:"enabled_by,omitempty"`
	Relevance   *int    `json:"relevance,omitempty"`
	MoreInfoURL *string `json:"more_info_url,omitempty"`
	Symbol      *string `json:"symbol,omitempty"`
	Source      *string `json:"source,omitempty"`
}

// missing returns the names of required keys absent from the record.
func (r RawFinding) missing() []string {
	var names []string
	if r.Path == nil {
		names = append(names, "path")
	}
	if r.Line == nil {
		names = append(names, "line")
	}
	if r.Column == nil {
		names = append(names, "column")
	}
	if r.Code == nil {
		names = append(names, "code")
	}
	if r.Text == nil {
		names = append(names, "text")
	}
	return names
}

// Normalizer converts wire records into Findings.
type Normalizer struct {
	Explainer Explainer // Optional; findings get no explanation when nil
	Source    string    // Analyzer variant name stamped on every finding
}

// Normalize converts one raw record. A record missing required keys yields
// an error wrapping ErrMalformedOutput.
func (n Normalizer) Normalize(ctx context.Context, raw RawFinding) (Finding, error) {
	if names := raw.missing(); len(names) > 0 {
		return Finding{}, fmt.Errorf("%w: finding is missing %s", ErrMalformedOutput, strings.Join(names, ", "))
	}

	f := Finding{
		Code:      *raw.Code,
		Message:   *raw.Text,
		Path:      *raw.Path,
		Line:      *raw.Line,
		Column:    copyInt(raw.Column),
		EndLine:   copyInt(raw.EndLine),
		EndColumn: copyInt(raw.EndColumn),
		Source:    n.Source,
	}
	if raw.EnabledBy != nil {
		f.EnabledBy = *raw.EnabledBy
	}
	if raw.Relevance != nil {
		f.Relevance = *raw.Relevance
	}
	if raw.MoreInfoURL != nil {
		f.MoreInfoURL = *raw.MoreInfoURL
	}
	if n.Explainer != nil {
		f.Explanation = n.Explainer.Explain(ctx, f.Code)
	}
	return f, nil
}

// NormalizeAll converts every record. The first malformed record fails the
// whole list.
func (n Normalizer) NormalizeAll(ctx context.Context, raws []RawFinding) ([]Finding, error) {
	findings := make([]Finding, 0, len(raws))
	for i, raw := range raws {
		f, err := n.Normalize(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		findings = append(findings, f)
	}
	return findings, nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// UnavailableCode is the code of the synthetic finding reported when an
// analyzer's output cannot be used.
const UnavailableCode = "LINT-UNAVAILABLE"

const unavailableExplanation = `The linter ran but its results could not be decoded. This often happens
in fresh installations where the linter package is missing or broken.

Try to install the linter as a package, then run the check again:

.. code::

    python3 -m pip install --upgrade edulint`

// UnavailableFinding reports that linting could not be performed for path.
// It keeps a broken tool from looking like clean code.
func UnavailableFinding(path, source string) Finding {
	return Finding{
		Code:        UnavailableCode,
		Message:     "Linting is unavailable: the analyzer output could not be decoded",
		Explanation: unavailableExplanation,
		Path:        path,
		Line:        1,
		Source:      source,
	}
}
