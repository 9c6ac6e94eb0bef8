// Package lintview provides domain types for collecting linter findings and
// presenting them as a navigable report.
package lintview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// Sentinel errors.
var (
	ErrMalformedOutput  = errors.New("malformed analyzer output")
	ErrSnapshotResolved = errors.New("snapshot already resolved")
	ErrNoAnalyzers      = errors.New("no analyzers enabled")
	ErrFileNotFound     = errors.New("file not found")
)

// DefaultRelevance is the relevance assumed for findings that carry none.
const DefaultRelevance = 1

// Finding is one diagnostic reported by an analyzer.
type Finding struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"` // Host markup, resolved by code
	Path        string `json:"path"`
	Line        int    `json:"line"`                 // 1-based
	Column      *int   `json:"column,omitempty"`     // nil when unknown
	EndLine     *int   `json:"end_line,omitempty"`   // nil when unknown
	EndColumn   *int   `json:"end_column,omitempty"` // nil when unknown
	EnabledBy   string `json:"enabled_by,omitempty"` // Rule set that enabled the finding, empty if unknown
	Source      string `json:"source,omitempty"`     // Analyzer variant that produced it
	Relevance   int    `json:"relevance,omitempty"`  // 0 means DefaultRelevance
	MoreInfoURL string `json:"more_info_url,omitempty"`
}

// Headline returns the first line of the message.
func (f Finding) Headline() string {
	headline, _, _ := strings.Cut(f.Message, "\n")
	return strings.TrimRight(headline, "\r")
}

// EffectiveRelevance returns Relevance, or DefaultRelevance when unset.
func (f Finding) EffectiveRelevance() int {
	if f.Relevance == 0 {
		return DefaultRelevance
	}
	return f.Relevance
}

// FindingKey is the identity used to deduplicate findings.
type FindingKey struct {
	Path    string
	Line    int
	Column  int // -1 when unknown
	Code    string
	Message string
}

// Key returns the deduplication identity of the finding.
func (f Finding) Key() FindingKey {
	col := -1
	if f.Column != nil {
		col = *f.Column
	}
	return FindingKey{
		Path:    f.Path,
		Line:    f.Line,
		Column:  col,
		Code:    f.Code,
		Message: f.Message,
	}
}

// LinterConfig is the configuration an analyzer reported it resolved for a run.
type LinterConfig struct {
	Files []string        `json:"files"`
	Value json.RawMessage `json:"value"`
}

// String renders the configuration for display. JSON strings are unquoted.
func (c *LinterConfig) String() string {
	if c == nil || len(c.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(c.Value, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, c.Value); err != nil {
		return string(c.Value)
	}
	return buf.String()
}

// Request describes one analysis over captured source text.
type Request struct {
	MainFile string            // Absolute path of the file being analyzed
	Source   string            // Main file source captured at request time
	Imported map[string]string // Imported user file path -> captured source
}

// ImportedPaths returns the imported file paths in sorted order.
func (r Request) ImportedPaths() []string {
	paths := make([]string, 0, len(r.Imported))
	for p := range r.Imported {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Result is what one analyzer run produced.
type Result struct {
	Findings []Finding
	Config   *LinterConfig // nil when the analyzer surfaced none
}

// Analyzer is one analysis variant. Implementations must be safe to call
// Analyze from a worker goroutine.
type Analyzer interface {
	// Name identifies the variant, for example "edulint".
	Name() string
	// Enabled is a pure predicate over current settings.
	Enabled() bool
	// Analyze runs the analysis and blocks until it finishes or ctx is done.
	Analyze(ctx context.Context, req Request) (Result, error)
}

// Explanation is the raw long-form text an analyzer publishes for a rule code.
type Explanation struct {
	Why      string `json:"why"`
	Examples string `json:"examples,omitempty"`
}

// ExplanationSource fetches the complete code -> explanation table.
type ExplanationSource interface {
	Explanations(ctx context.Context) (map[string]Explanation, error)
}

// Explainer resolves a rule code to rendered explanation markup.
type Explainer interface {
	// Explain returns the explanation for code, or "" if none exists.
	Explain(ctx context.Context, code string) string
}

// Settings provides host configuration options by key.
type Settings interface {
	Bool(key string) bool
	String(key string) string
	SetBool(key string, value bool)
}

// ImportResolver finds user files imported by a source file.
type ImportResolver interface {
	// ImportedFiles returns absolute paths of local files imported by source.
	ImportedFiles(mainFile, source string) []string
}

// RequestSource captures an analysis request for a file.
type RequestSource interface {
	Request(path string) (Request, error)
}

// SnapshotStore persists snapshot history.
type SnapshotStore interface {
	Append(snapshot *Snapshot) error
	Load(mainFile string) ([]*Snapshot, error)
}

// Reporter sends best-effort usage reports. Implementations must never block
// the caller or propagate failures.
type Reporter interface {
	SendCode(path, source string)
	SendResults(path, results string)
	SendErrors(path, errs string)
}

// FeedbackSender submits collected feedback.
type FeedbackSender interface {
	Submit(ctx context.Context, feedback *Feedback) error
}

// Viewer displays analysis results for a file and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, mainFile string) error
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}
