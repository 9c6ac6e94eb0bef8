package config

import (
	"strconv"
	"sync"

	"github.com/fwojciec/lintview"
)

// Option keys.
const (
	KeyEdulintEnabled   = "edulint.enabled"
	KeyTextcheckEnabled = "textcheck.enabled"
	KeyGeminiEnabled    = "gemini.enabled"
	KeyUsePylint        = "assistance.use_pylint"
	KeyEditorScheme     = "editor.scheme"
	KeyReportingEnabled = "reporting.enabled"
)

var _ lintview.Settings = (*Settings)(nil)

// Settings is a key/value view over the configuration options.
type Settings struct {
	mu       sync.RWMutex
	defaults map[string]string
	values   map[string]string
}

// NewSettings creates settings seeded from cfg. Entries of the options map
// override the section values.
func NewSettings(cfg *Config) *Settings {
	s := &Settings{
		defaults: make(map[string]string),
		values:   make(map[string]string),
	}
	if cfg == nil {
		cfg = Default()
	}
	s.SetDefault(KeyEdulintEnabled, strconv.FormatBool(BoolValue(cfg.Analyzers.Edulint.Enabled, true)))
	s.SetDefault(KeyTextcheckEnabled, strconv.FormatBool(BoolValue(cfg.Analyzers.Textcheck.Enabled, true)))
	s.SetDefault(KeyGeminiEnabled, strconv.FormatBool(BoolValue(cfg.Analyzers.Gemini.Enabled, false)))
	s.SetDefault(KeyUsePylint, "true")
	s.SetDefault(KeyEditorScheme, cfg.Editor.Scheme)
	s.SetDefault(KeyReportingEnabled, strconv.FormatBool(cfg.Reporting.Enabled))
	for k, v := range cfg.Options {
		s.values[k] = v
	}
	if s.Bool(KeyEdulintEnabled) {
		s.values[KeyUsePylint] = "false"
	}
	return s
}

// SetDefault registers the value returned for key while it is unset.
func (s *Settings) SetDefault(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[key] = value
}

// String returns the value of key, or "" when it is unknown.
func (s *Settings) String(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return s.defaults[key]
}

// Bool returns the value of key parsed as a boolean. Unparsable values
// read as false.
func (s *Settings) Bool(key string) bool {
	b, _ := strconv.ParseBool(s.String(key))
	return b
}

// SetBool stores value under key. Turning edulint on turns the host's
// pylint assistance off.
func (s *Settings) SetBool(key string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = strconv.FormatBool(value)
	if key == KeyEdulintEnabled && value {
		s.values[KeyUsePylint] = "false"
	}
}
