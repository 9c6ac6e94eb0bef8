package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/lintview"
	"github.com/hashicorp/go-hclog"
)

// Compile-time interface verification.
var _ lintview.RequestSource = (*Workspace)(nil)

// Workspace captures analysis requests from files on disk.
type Workspace struct {
	resolver lintview.ImportResolver
	logger   hclog.Logger
}

// NewWorkspace creates a workspace. A nil resolver captures only the main
// file.
func NewWorkspace(resolver lintview.ImportResolver, logger hclog.Logger) *Workspace {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Workspace{resolver: resolver, logger: logger.Named("workspace")}
}

// Request reads path and the local modules it imports. The returned request
// holds the text as it was at this moment.
func (w *Workspace) Request(path string) (lintview.Request, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return lintview.Request{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lintview.Request{}, fmt.Errorf("%w: %s", lintview.ErrFileNotFound, abs)
		}
		return lintview.Request{}, fmt.Errorf("read %s: %w", abs, err)
	}

	req := lintview.Request{MainFile: abs, Source: string(data)}
	if w.resolver == nil {
		return req, nil
	}
	for _, imported := range w.resolver.ImportedFiles(abs, req.Source) {
		src, err := os.ReadFile(imported)
		if err != nil {
			w.logger.Warn("skipping unreadable import", "path", imported, "error", err)
			continue
		}
		if req.Imported == nil {
			req.Imported = make(map[string]string)
		}
		req.Imported[imported] = string(src)
	}
	return req, nil
}
