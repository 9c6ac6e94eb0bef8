package lintview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var _ Explainer = (*ExplanationCache)(nil)

// ExplanationCache resolves rule codes to rendered explanations. The
// underlying table is fetched from its source at most once.
type ExplanationCache struct {
	source ExplanationSource
	logger hclog.Logger
	group  singleflight.Group

	mu       sync.RWMutex
	loaded   bool
	table    map[string]Explanation
	rendered map[string]string
}

// NewExplanationCache creates a cache backed by source. A nil logger
// discards log output.
func NewExplanationCache(source ExplanationSource, logger hclog.Logger) *ExplanationCache {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExplanationCache{
		source:   source,
		logger:   logger.Named("explanations"),
		rendered: make(map[string]string),
	}
}

// Explain returns the rendered explanation for code, or "" when the code is
// unknown or the source failed.
func (c *ExplanationCache) Explain(ctx context.Context, code string) string {
	c.mu.RLock()
	text, ok := c.rendered[code]
	c.mu.RUnlock()
	if ok {
		return text
	}

	table := c.load(ctx)
	e, ok := table[code]
	if !ok {
		return ""
	}
	text = RenderExplanation(e)

	c.mu.Lock()
	c.rendered[code] = text
	c.mu.Unlock()
	return text
}

// Codes returns the number of known codes, loading the table if needed.
func (c *ExplanationCache) Codes(ctx context.Context) int {
	return len(c.load(ctx))
}

func (c *ExplanationCache) load(ctx context.Context) map[string]Explanation {
	c.mu.RLock()
	if c.loaded {
		table := c.table
		c.mu.RUnlock()
		return table
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do("table", func() (any, error) {
		c.mu.RLock()
		if c.loaded {
			table := c.table
			c.mu.RUnlock()
			return table, nil
		}
		c.mu.RUnlock()

		table := map[string]Explanation{}
		if c.source != nil {
			fetched, err := c.source.Explanations(ctx)
			switch {
			case err != nil && interrupted(ctx, err):
				// Left unloaded so the next caller fetches again.
				c.logger.Debug("explanation load interrupted", "error", err)
				return table, nil
			case err != nil:
				c.logger.Error("failed to load explanations", "error", err)
			case fetched != nil:
				table = fetched
			}
		}

		c.mu.Lock()
		c.table = table
		c.loaded = true
		c.mu.Unlock()
		return table, nil
	})
	return v.(map[string]Explanation)
}

func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RenderExplanation composes an explanation into host markup.
func RenderExplanation(e Explanation) string {
	text := e.Why + "\n"
	if e.Examples != "" {
		text += "\n" + e.Examples + "\n"
	}
	return strings.TrimSpace(ToMarkup(text))
}
