package mock

import (
	"context"

	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var (
	_ lintview.Settings       = (*Settings)(nil)
	_ lintview.ImportResolver = (*ImportResolver)(nil)
	_ lintview.Clipboard      = (*Clipboard)(nil)
	_ lintview.Renderer       = (*Renderer)(nil)
	_ lintview.RequestSource  = (*RequestSource)(nil)
	_ lintview.Viewer         = (*Viewer)(nil)
)

// Settings is a mock implementation of lintview.Settings.
type Settings struct {
	BoolFn    func(key string) bool
	StringFn  func(key string) string
	SetBoolFn func(key string, value bool)
}

func (s *Settings) Bool(key string) bool {
	return s.BoolFn(key)
}

func (s *Settings) String(key string) string {
	return s.StringFn(key)
}

func (s *Settings) SetBool(key string, value bool) {
	s.SetBoolFn(key, value)
}

// ImportResolver is a mock implementation of lintview.ImportResolver.
type ImportResolver struct {
	ImportedFilesFn func(mainFile, source string) []string
}

func (r *ImportResolver) ImportedFiles(mainFile, source string) []string {
	return r.ImportedFilesFn(mainFile, source)
}

// Clipboard is a mock implementation of lintview.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Renderer is a mock implementation of lintview.Renderer.
type Renderer struct {
	RenderFn func(findings []lintview.Finding, cfg *lintview.LinterConfig) *lintview.Document
}

func (r *Renderer) Render(findings []lintview.Finding, cfg *lintview.LinterConfig) *lintview.Document {
	return r.RenderFn(findings, cfg)
}

// RequestSource is a mock implementation of lintview.RequestSource.
type RequestSource struct {
	RequestFn func(path string) (lintview.Request, error)
}

func (s *RequestSource) Request(path string) (lintview.Request, error) {
	return s.RequestFn(path)
}

// Viewer is a mock implementation of lintview.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, mainFile string) error
}

func (v *Viewer) View(ctx context.Context, mainFile string) error {
	return v.ViewFn(ctx, mainFile)
}
