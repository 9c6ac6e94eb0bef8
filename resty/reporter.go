package resty

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"sync"

	"github.com/fwojciec/lintview"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
)

// DefaultReportingURL receives usage reports.
const DefaultReportingURL = "https://edulint.com/api/reporting"

// UserIDFailure is reported when no stable user id can be built.
const UserIDFailure = "lintview:ID_FAILURE"

var _ lintview.Reporter = (*Reporter)(nil)

// Reporter posts usage reports in the background. Failures are logged and
// never reach the caller.
type Reporter struct {
	client   *resty.Client
	url      string
	dataDir  string
	identity func() (host, username string, err error)
	logger   hclog.Logger

	once   sync.Once
	userID string
	wg     sync.WaitGroup
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithIdentity overrides how the host and user names are looked up.
func WithIdentity(fn func() (host, username string, err error)) ReporterOption {
	return func(r *Reporter) { r.identity = fn }
}

// WithReporterLogger sets the logger.
func WithReporterLogger(l hclog.Logger) ReporterOption {
	return func(r *Reporter) { r.logger = l }
}

// NewReporter creates a reporter posting to url. The user id is kept in
// dataDir.
func NewReporter(client *resty.Client, url, dataDir string, opts ...ReporterOption) *Reporter {
	if url == "" {
		url = DefaultReportingURL
	}
	r := &Reporter{client: client, url: url, dataDir: dataDir, identity: systemIdentity}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = hclog.NewNullLogger()
	}
	r.logger = r.logger.Named("reporting")
	return r
}

func systemIdentity() (string, string, error) {
	host, err := os.Hostname()
	if err != nil {
		return "", "", err
	}
	u, err := user.Current()
	if err != nil {
		return "", "", err
	}
	return host, u.Username, nil
}

func digest(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}

// UserID returns the persistent user id, creating it on first use.
func (r *Reporter) UserID() string {
	r.once.Do(func() {
		id, err := r.loadUserID()
		if err != nil {
			r.logger.Warn("cannot determine user id", "error", err)
			id = UserIDFailure
		}
		r.userID = id
	})
	return r.userID
}

type userIDFile struct {
	UserID string `json:"user_id"`
}

func (r *Reporter) loadUserID() (string, error) {
	path := filepath.Join(r.dataDir, "user_id.json")
	if data, err := os.ReadFile(path); err == nil {
		var f userIDFile
		if err := json.Unmarshal(data, &f); err == nil && f.UserID != "" {
			return f.UserID, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	host, username, err := r.identity()
	if err != nil {
		return "", err
	}
	id := "lintview:" + digest(host, 20) + ":" + digest(username, 20)

	data, err := json.MarshalIndent(userIDFile{UserID: id}, "", "    ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return id, nil
}

// SessionID identifies the reports of one file.
func (r *Reporter) SessionID(path string) string {
	return r.UserID() + ":" + digest(path, 10)
}

func (r *Reporter) SendCode(path, source string) {
	r.send(path, "code", map[string]any{"code": source})
}

func (r *Reporter) SendResults(path, results string) {
	r.send(path, "result", map[string]any{"results": results})
}

func (r *Reporter) SendErrors(path, errs string) {
	r.send(path, "result", map[string]any{"errors": errs})
}

func (r *Reporter) send(path, kind string, data map[string]any) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		body := map[string]any{"type": kind, "session_id": r.SessionID(path)}
		for k, v := range data {
			body[k] = v
		}
		resp, err := r.client.R().SetBody(body).Post(r.url)
		switch {
		case err != nil:
			r.logger.Error("report failed", "type", kind, "error", err)
		case resp.IsError():
			r.logger.Error("report rejected", "type", kind, "status", resp.StatusCode())
		}
	}()
}

// Wait blocks until every pending report finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
