package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var _ lintview.ExplanationSource = (*ExplanationSource)(nil)

// ExplanationSource wraps an ExplanationSource with file-based caching.
// Entries are keyed so that a new linter version gets a fresh table.
type ExplanationSource struct {
	inner    lintview.ExplanationSource
	cacheDir string
	key      string
}

// NewExplanationSource creates a caching source. key identifies the table
// version, typically the linter version.
func NewExplanationSource(inner lintview.ExplanationSource, cacheDir, key string) *ExplanationSource {
	return &ExplanationSource{
		inner:    inner,
		cacheDir: cacheDir,
		key:      key,
	}
}

// Explanations returns the cached table or delegates to the inner source.
func (s *ExplanationSource) Explanations(ctx context.Context) (map[string]lintview.Explanation, error) {
	if cached, err := s.loadFromCache(); err == nil {
		return cached, nil
	}

	table, err := s.inner.Explanations(ctx)
	if err != nil {
		return nil, err
	}

	// Best-effort
	_ = s.saveToCache(table)

	return table, nil
}

// CachePath returns the file holding the cached table.
func (s *ExplanationSource) CachePath() string {
	sum := sha256.Sum256([]byte(s.key))
	return filepath.Join(s.cacheDir, "explanations-"+hex.EncodeToString(sum[:8])+".json")
}

func (s *ExplanationSource) loadFromCache() (map[string]lintview.Explanation, error) {
	data, err := os.ReadFile(s.CachePath())
	if err != nil {
		return nil, err
	}

	var table map[string]lintview.Explanation
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *ExplanationSource) saveToCache(table map[string]lintview.Explanation) error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(table)
	if err != nil {
		return err
	}

	return os.WriteFile(s.CachePath(), data, 0o644)
}
