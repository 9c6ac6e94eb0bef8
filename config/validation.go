package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateConfig checks that the configuration holds usable values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML config: configuration object is nil")
	}
	if err := validateLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML config: logger directive is invalid: %w", err)
	}
	if err := validateAnalyzers(&cfg.Analyzers); err != nil {
		return fmt.Errorf("YAML config: analyzers directive is invalid: %w", err)
	}
	if err := validateReporting(&cfg.Reporting); err != nil {
		return fmt.Errorf("YAML config: reporting directive is invalid: %w", err)
	}
	if err := validateUpdateCheck(&cfg.UpdateCheck); err != nil {
		return fmt.Errorf("YAML config: update_check directive is invalid: %w", err)
	}
	if err := validateHTTPClient(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML config: http_client directive is invalid: %w", err)
	}
	return nil
}

func validateLogger(l *Logger) error {
	switch strings.ToUpper(l.Level) {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF":
		return nil
	}
	return fmt.Errorf("unknown level %q", l.Level)
}

func validateAnalyzers(a *Analyzers) error {
	if len(a.Edulint.Command) == 0 || a.Edulint.Command[0] == "" {
		return fmt.Errorf("edulint command is empty")
	}
	if a.Textcheck.MaxLineLength < 20 || a.Textcheck.MaxLineLength > 1000 {
		return fmt.Errorf("textcheck max_line_length must be between 20 and 1000: %d", a.Textcheck.MaxLineLength)
	}
	return nil
}

func validateReporting(r *Reporting) error {
	if !r.Enabled {
		return nil
	}
	if err := validateURL(r.URL, "url"); err != nil {
		return err
	}
	if r.FeedbackURL != "" {
		return validateURL(r.FeedbackURL, "feedback_url")
	}
	return nil
}

func validateUpdateCheck(u *UpdateCheck) error {
	if err := validateDuration(u.TTL, "ttl", 30*24*time.Hour); err != nil {
		return err
	}
	return validateURL(u.IndexURL, "index_url")
}

func validateHTTPClient(h *HTTPClient) error {
	if h.RetryCount < 0 || h.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", h.RetryCount)
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"retry_wait_time", h.RetryWaitTime},
		{"retry_max_wait_time", h.RetryMaxWaitTime},
		{"timeout", h.Timeout},
	}
	for _, d := range durations {
		if err := validateDuration(d.value, d.name, 10*time.Minute); err != nil {
			return err
		}
	}
	if h.RetryWaitTime > h.RetryMaxWaitTime {
		return fmt.Errorf("retry_wait_time %s exceeds retry_max_wait_time %s", h.RetryWaitTime, h.RetryMaxWaitTime)
	}
	if (h.Proxy.Host == "") != (h.Proxy.Port == "") {
		return fmt.Errorf("proxy needs both host and port")
	}
	return nil
}

func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d <= 0 || d > max {
		return fmt.Errorf("%s must be between 0 and %s: %s", name, max, d)
	}
	return nil
}

func validateURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL: %q", name, raw)
	}
	return nil
}
