// Package sarif exports findings as SARIF 2.1.0 reports.
package sarif

import (
	"fmt"
	"io"

	"github.com/fwojciec/lintview"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// Tool identity written into every run.
const (
	ToolName       = "lintview"
	InformationURI = "https://edulint.com"
)

// Report builds a single-run SARIF report from findings. Rules are
// collected from the finding codes in order of appearance.
func Report(findings []lintview.Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, InformationURI)
	for _, f := range findings {
		rule := run.AddRule(f.Code).WithDescription(f.Headline())
		if f.MoreInfoURL != "" {
			uri := f.MoreInfoURL
			rule.HelpURI = &uri
		}

		region := sarif.NewRegion().WithStartLine(max(f.Line, 1))
		if f.Column != nil {
			region.WithStartColumn(*f.Column + 1)
		}
		if f.EndLine != nil {
			region.WithEndLine(*f.EndLine)
		}
		if f.EndColumn != nil {
			region.WithEndColumn(*f.EndColumn + 1)
		}
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.Path)).
				WithRegion(region),
		)

		result := sarif.NewRuleResult(f.Code).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel(Level(f)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	report.AddRun(run)
	return report, nil
}

// Level maps a finding to a SARIF result level.
func Level(f lintview.Finding) string {
	switch {
	case f.Code == lintview.UnavailableCode:
		return "error"
	case f.EffectiveRelevance() >= 3:
		return "warning"
	default:
		return "note"
	}
}

// Write encodes the findings shown in the report of snap as indented SARIF
// JSON. Duplicates collapsed by the report are exported once.
func Write(w io.Writer, snap *lintview.Snapshot) error {
	var findings []lintview.Finding
	if snap.Document != nil {
		for _, blk := range snap.Document.Blocks() {
			findings = append(findings, blk.Finding)
		}
	} else {
		findings = snap.Findings
	}
	report, err := Report(findings)
	if err != nil {
		return err
	}
	return report.PrettyWrite(w)
}
