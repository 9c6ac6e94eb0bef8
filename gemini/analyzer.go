package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/lintview"
	"github.com/hashicorp/go-hclog"
)

// Name is the analyzer variant name.
const Name = "gemini"

// EnabledKey is the settings key that switches the analyzer on.
const EnabledKey = "gemini.enabled"

// DefaultTimeout bounds a single review request.
const DefaultTimeout = 60 * time.Second

var _ lintview.Analyzer = (*Analyzer)(nil)

// Analyzer asks a Gemini model to review the captured sources. It is off
// unless settings enable it.
type Analyzer struct {
	client    GenerativeClient
	model     string
	timeout   time.Duration
	settings  lintview.Settings
	explainer lintview.Explainer
	logger    hclog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithSettings makes Enabled follow the gemini.enabled setting.
func WithSettings(s lintview.Settings) Option {
	return func(a *Analyzer) { a.settings = s }
}

// WithExplainer attaches explanations to findings whose code has one.
func WithExplainer(e lintview.Explainer) Option {
	return func(a *Analyzer) { a.explainer = e }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer using model, DefaultModel when empty.
func NewAnalyzer(client GenerativeClient, model string, opts ...Option) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	a := &Analyzer{client: client, model: model, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = hclog.NewNullLogger()
	}
	a.logger = a.logger.Named(Name)
	return a
}

func (a *Analyzer) Name() string { return Name }

func (a *Analyzer) Enabled() bool {
	return a.client != nil && a.settings != nil && a.settings.Bool(EnabledKey)
}

// Analyze sends the sources to the model and decodes its findings.
func (a *Analyzer) Analyze(ctx context.Context, req lintview.Request) (lintview.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	contents := []*Content{{Parts: []*Part{{Text: BuildPrompt(req)}}}}
	resp, err := a.client.GenerateContent(ctx, a.model, contents, BuildConfig())
	if err != nil {
		return lintview.Result{}, err
	}
	if resp == nil {
		return lintview.Result{}, fmt.Errorf("gemini: returned nil response")
	}

	n := lintview.Normalizer{Explainer: a.explainer, Source: Name}
	res, err := lintview.ParseOutput(ctx, []byte(resp.Text), req.MainFile, n)
	if err != nil {
		a.logger.Error("unusable model response", "file", req.MainFile, "response", resp.Text)
		return lintview.Result{}, fmt.Errorf("gemini: %w", err)
	}

	known := map[string]bool{req.MainFile: true}
	for path := range req.Imported {
		known[path] = true
	}
	for i := range res.Findings {
		f := &res.Findings[i]
		if !known[f.Path] {
			f.Path = req.MainFile
		}
		if f.EnabledBy == "" {
			f.EnabledBy = Name
		}
	}
	return lintview.Result{Findings: res.Findings}, nil
}

// BuildPrompt lists every captured file with numbered lines.
func BuildPrompt(req lintview.Request) string {
	var b strings.Builder
	b.WriteString("Review the following Python program written by a beginner.\n")
	b.WriteString("Report only concrete problems with its readability or correctness.\n\n")
	writeFile(&b, req.MainFile, req.Source)
	for _, path := range req.ImportedPaths() {
		writeFile(&b, path, req.Imported[path])
	}
	return b.String()
}

func writeFile(b *strings.Builder, path, source string) {
	fmt.Fprintf(b, "## %s\n\n", path)
	for i, line := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		fmt.Fprintf(b, "%4d | %s\n", i+1, line)
	}
	b.WriteString("\n")
}

// BuildConfig returns the generation config. The response schema is the
// bare finding array the linter emits.
func BuildConfig() *GenerateContentConfig {
	temp := float32(0.2)
	str := func(desc string) *Schema { return &Schema{Type: "string", Description: desc} }
	num := func(desc string) *Schema { return &Schema{Type: "integer", Description: desc} }
	return &GenerateContentConfig{
		SystemInstruction: &Content{Parts: []*Part{{
			Text: `You are a patient programming tutor. Point out problems a student can fix,
each anchored to a line of the listed files. Use short imperative messages.`,
		}}},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &Schema{
			Type: "array",
			Items: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"path":      str("File path exactly as listed"),
					"line":      num("1-based line number"),
					"column":    num("0-based column"),
					"code":      str("Short rule identifier such as AI001"),
					"text":      str("One-line message"),
					"relevance": num("1 (minor) to 5 (important)"),
				},
				Required: []string{"path", "line", "column", "code", "text"},
			},
		},
	}
}
