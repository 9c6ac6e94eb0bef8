package edulint

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fwojciec/lintview"
	"github.com/hashicorp/go-hclog"
)

// DefaultExplanationsCommand prints the code -> explanation table as JSON.
var DefaultExplanationsCommand = []string{"python3", "-c", "import json, edulint; print(json.dumps(edulint.get_explanations()))"}

var _ lintview.ExplanationSource = (*ExplanationSource)(nil)

// ExplanationSource reads the explanation table from the installed linter.
type ExplanationSource struct {
	command []string
	runner  *Runner
}

// NewExplanationSource creates a source running argv. A nil argv uses
// DefaultExplanationsCommand.
func NewExplanationSource(argv []string, logger hclog.Logger) *ExplanationSource {
	if len(argv) == 0 {
		argv = DefaultExplanationsCommand
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExplanationSource{command: slices.Clone(argv), runner: NewRunner(logger.Named("explanations"))}
}

func (s *ExplanationSource) Explanations(ctx context.Context) (map[string]lintview.Explanation, error) {
	out, err := s.runner.Run(ctx, s.command)
	if err != nil {
		return nil, fmt.Errorf("load explanations: %w", err)
	}
	var table map[string]lintview.Explanation
	if err := json.Unmarshal(out.Stdout, &table); err != nil {
		return nil, fmt.Errorf("decode explanations: %w", err)
	}
	return table, nil
}
