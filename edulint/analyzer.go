package edulint

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/lintview"
	"github.com/hashicorp/go-hclog"
)

// Name is the analyzer variant name.
const Name = "edulint"

// EnabledKey is the settings key that switches the analyzer on.
const EnabledKey = "edulint.enabled"

// DefaultCommand runs the linter with JSON output. The file path is
// appended.
var DefaultCommand = []string{"python3", "-m", "edulint", "--json"}

var _ lintview.Analyzer = (*Analyzer)(nil)

// Analyzer lints the main file by running edulint.
type Analyzer struct {
	command   []string
	settings  lintview.Settings
	explainer lintview.Explainer
	runner    *Runner
	logger    hclog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCommand overrides the linter command.
func WithCommand(argv []string) Option {
	return func(a *Analyzer) { a.command = slices.Clone(argv) }
}

// WithSettings makes Enabled follow the edulint.enabled setting. Without
// settings the analyzer is always enabled.
func WithSettings(s lintview.Settings) Option {
	return func(a *Analyzer) { a.settings = s }
}

// WithExplainer attaches explanations to findings.
func WithExplainer(e lintview.Explainer) Option {
	return func(a *Analyzer) { a.explainer = e }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an edulint analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{command: DefaultCommand}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = hclog.NewNullLogger()
	}
	a.logger = a.logger.Named(Name)
	a.runner = NewRunner(a.logger)
	return a
}

func (a *Analyzer) Name() string { return Name }

func (a *Analyzer) Enabled() bool {
	if a.settings == nil {
		return true
	}
	return a.settings.Bool(EnabledKey)
}

// Analyze runs the linter on req.MainFile. The exit status is ignored as
// long as stdout holds a readable report.
func (a *Analyzer) Analyze(ctx context.Context, req lintview.Request) (lintview.Result, error) {
	argv := append(slices.Clone(a.command), req.MainFile)
	out, runErr := a.runner.Run(ctx, argv)
	if ctx.Err() != nil {
		return lintview.Result{}, ctx.Err()
	}

	n := lintview.Normalizer{Explainer: a.explainer, Source: Name}
	res, err := lintview.ParseOutput(ctx, out.Stdout, req.MainFile, n)
	if err != nil {
		a.logger.Error("unusable linter output", "file", req.MainFile, "stdout", string(out.Stdout), "stderr", string(out.Stderr))
		if runErr != nil {
			return lintview.Result{}, fmt.Errorf("%w (%w)", err, runErr)
		}
		return lintview.Result{}, err
	}
	if runErr != nil {
		a.logger.Debug("linter exited with error", "error", runErr)
	}
	return res, nil
}
