// Package resty provides HTTP services built on go-resty: usage reporting,
// feedback submission, and update checks.
package resty

import (
	"crypto/tls"
	"fmt"

	"github.com/fwojciec/lintview/config"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
)

// HclogAdapter forwards resty log output to an hclog.Logger.
type HclogAdapter struct {
	logger hclog.Logger
}

// NewHclogAdapter creates an adapter for logger.
func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

func (a *HclogAdapter) Errorf(format string, v ...any) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

func (a *HclogAdapter) Warnf(format string, v ...any) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

func (a *HclogAdapter) Debugf(format string, v ...any) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// NewClient creates a resty client configured from cfg.
func NewClient(cfg config.HTTPClient, logger hclog.Logger) *resty.Client {
	client := resty.New()
	if logger != nil {
		client.SetLogger(NewHclogAdapter(logger.Named("http")))
	}
	client.
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWaitTime).
		SetTimeout(cfg.Timeout).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !config.BoolValue(cfg.TLSClientConfig.Verify, true)})
	if cfg.Proxy.Host != "" && cfg.Proxy.Port != "" {
		client.SetProxy(fmt.Sprintf("%s:%s", cfg.Proxy.Host, cfg.Proxy.Port))
	}
	return client
}
