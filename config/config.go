// Package config loads the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is the top-level YAML document.
type Config struct {
	Logger       Logger            `yaml:"logger"`
	Editor       Editor            `yaml:"editor"`
	Analyzers    Analyzers         `yaml:"analyzers"`
	Explanations Explanations      `yaml:"explanations"`
	Reporting    Reporting         `yaml:"reporting"`
	UpdateCheck  UpdateCheck       `yaml:"update_check"`
	HTTPClient   HTTPClient        `yaml:"http_client"`
	Options      map[string]string `yaml:"options"`
}

type Logger struct {
	Level       string `yaml:"level"`
	JSONFormat  bool   `yaml:"json_format"`
	DisableTime *bool  `yaml:"disable_time"`
}

type Editor struct {
	Scheme string `yaml:"scheme"`
}

type Analyzers struct {
	Edulint   Edulint   `yaml:"edulint"`
	Textcheck Textcheck `yaml:"textcheck"`
	Gemini    Gemini    `yaml:"gemini"`
}

type Edulint struct {
	Enabled *bool    `yaml:"enabled"`
	Command []string `yaml:"command"`
}

type Textcheck struct {
	Enabled       *bool `yaml:"enabled"`
	MaxLineLength int   `yaml:"max_line_length"`
}

type Gemini struct {
	Enabled *bool  `yaml:"enabled"`
	Model   string `yaml:"model"`
}

type Explanations struct {
	Command []string `yaml:"command"`
	Cache   *bool    `yaml:"cache"`
}

type Reporting struct {
	Enabled     bool   `yaml:"enabled"`
	URL         string `yaml:"url"`
	FeedbackURL string `yaml:"feedback_url"`
}

type UpdateCheck struct {
	Enabled  *bool         `yaml:"enabled"`
	TTL      time.Duration `yaml:"ttl"`
	IndexURL string        `yaml:"index_url"`
}

type HTTPClient struct {
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Defaults.
const (
	DefaultLogLevel         = "INFO"
	DefaultScheme           = "editor"
	DefaultMaxLineLength    = 100
	DefaultGeminiModel      = "gemini-2.5-flash"
	DefaultUpdateTTL        = 24 * time.Hour
	DefaultIndexURL         = "https://pypi.org/pypi"
	DefaultRetryCount       = 2
	DefaultRetryWaitTime    = 500 * time.Millisecond
	DefaultRetryMaxWaitTime = 5 * time.Second
	DefaultTimeout          = 10 * time.Second
)

// DefaultEdulintCommand runs the linter; the file path is appended.
var DefaultEdulintCommand = []string{"python3", "-m", "edulint", "--json"}

// DefaultExplanationsCommand prints the explanation table as JSON.
var DefaultExplanationsCommand = []string{"python3", "-c", "import json, edulint; print(json.dumps(edulint.get_explanations()))"}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// ValidateConfigPath checks that path exists and is a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at path into data.
func LoadYAML(path string, data any) error {
	if err := ValidateConfigPath(path); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(data); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration at path, fills in defaults, and validates
// it. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := LoadYAML(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg.applyDefaults()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Logger.Level = setThen(c.Logger.Level, DefaultLogLevel)
	c.Editor.Scheme = setThen(c.Editor.Scheme, DefaultScheme)
	if len(c.Analyzers.Edulint.Command) == 0 {
		c.Analyzers.Edulint.Command = DefaultEdulintCommand
	}
	c.Analyzers.Textcheck.MaxLineLength = setThen(c.Analyzers.Textcheck.MaxLineLength, DefaultMaxLineLength)
	c.Analyzers.Gemini.Model = setThen(c.Analyzers.Gemini.Model, DefaultGeminiModel)
	if len(c.Explanations.Command) == 0 {
		c.Explanations.Command = DefaultExplanationsCommand
	}
	c.UpdateCheck.TTL = setThen(c.UpdateCheck.TTL, DefaultUpdateTTL)
	c.UpdateCheck.IndexURL = setThen(c.UpdateCheck.IndexURL, DefaultIndexURL)
	c.HTTPClient.RetryCount = setThen(c.HTTPClient.RetryCount, DefaultRetryCount)
	c.HTTPClient.RetryWaitTime = setThen(c.HTTPClient.RetryWaitTime, DefaultRetryWaitTime)
	c.HTTPClient.RetryMaxWaitTime = setThen(c.HTTPClient.RetryMaxWaitTime, DefaultRetryMaxWaitTime)
	c.HTTPClient.Timeout = setThen(c.HTTPClient.Timeout, DefaultTimeout)
}

// BoolValue dereferences b, returning def when it is unset.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func setThen[T comparable](value, def T) T {
	var zero T
	if value == zero {
		return def
	}
	return value
}
