package lintview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
)

// Output is an analyzer's decoded wire document.
type Output struct {
	Problems []RawFinding
	Configs  []ConfigEntry
}

// ConfigEntry pairs a set of input files with the configuration an analyzer
// resolved for them.
type ConfigEntry struct {
	Files  []string
	Config json.RawMessage
}

// UnmarshalJSON decodes the two-element array form [[files...], {"config": X}].
func (e *ConfigEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("config entry: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Files); err != nil {
		return fmt.Errorf("config entry files: %w", err)
	}
	var holder struct {
		Config json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal(pair[1], &holder); err != nil {
		return fmt.Errorf("config entry config: %w", err)
	}
	e.Config = holder.Config
	return nil
}

// problemsDocument is wire shape B.
type problemsDocument struct {
	Problems *[]RawFinding `json:"problems"`
	Configs  []ConfigEntry `json:"configs"`
}

// DecodeOutput decodes analyzer stdout. Two shapes are accepted: a bare array
// of findings, or an object with "problems" and "configs" arrays. New shapes
// belong here and nowhere else.
func DecodeOutput(data []byte) (Output, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Output{}, fmt.Errorf("%w: empty output", ErrMalformedOutput)
	}

	var bare []RawFinding
	errBare := json.Unmarshal(data, &bare)
	if errBare == nil {
		return Output{Problems: bare}, nil
	}

	var doc problemsDocument
	errDoc := json.Unmarshal(data, &doc)
	if errDoc == nil && doc.Problems != nil {
		return Output{Problems: *doc.Problems, Configs: doc.Configs}, nil
	}
	if errDoc == nil {
		errDoc = errors.New(`object has no "problems" key`)
	}
	return Output{}, fmt.Errorf("%w: %w", ErrMalformedOutput, errors.Join(errBare, errDoc))
}

// ConfigFor returns the configuration resolved for mainFile, or nil unless
// exactly one config entry lists it.
func (o Output) ConfigFor(mainFile string) *LinterConfig {
	var match *ConfigEntry
	count := 0
	for i := range o.Configs {
		if listsFile(o.Configs[i].Files, mainFile) {
			match = &o.Configs[i]
			count++
		}
	}
	if count != 1 || len(match.Config) == 0 {
		return nil
	}
	return &LinterConfig{
		Files: append([]string(nil), match.Files...),
		Value: append(json.RawMessage(nil), match.Config...),
	}
}

func listsFile(files []string, path string) bool {
	want := filepath.Clean(path)
	for _, f := range files {
		if filepath.Clean(f) == want {
			return true
		}
	}
	return false
}

// ParseOutput decodes and normalizes analyzer stdout into a Result.
func ParseOutput(ctx context.Context, stdout []byte, mainFile string, n Normalizer) (Result, error) {
	out, err := DecodeOutput(stdout)
	if err != nil {
		return Result{}, err
	}
	findings, err := n.NormalizeAll(ctx, out.Problems)
	if err != nil {
		return Result{}, err
	}
	return Result{Findings: findings, Config: out.ConfigFor(mainFile)}, nil
}
