package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fwojciec/lintview"
	"github.com/fwojciec/lintview/lipgloss"
	"github.com/fwojciec/lintview/resty"
	"github.com/fwojciec/lintview/sarif"
)

// Output formats of the check command.
const (
	FormatMarkup = "markup"
	FormatText   = "text"
	FormatJSON   = "json"
	FormatSARIF  = "sarif"
)

var (
	// ErrUnknownFormat is returned for an unsupported check output format.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrNoExplanation is returned when no analyzer explains a code.
	ErrNoExplanation = errors.New("no explanation available")
	// ErrNoSnapshots is returned when there is nothing to give feedback on.
	ErrNoSnapshots = errors.New("no new reports to give feedback on")
)

// UpdateChecker compares installed package versions with the index.
type UpdateChecker interface {
	Check(ctx context.Context, installed map[string]string) ([]resty.Update, error)
}

// FeedbackLog remembers which reports feedback was already sent for.
type FeedbackLog interface {
	Record(mainFile string, submittedAt, lastSeen time.Time) error
	LastSeen(mainFile string) (time.Time, error)
}

// App encapsulates the application logic for testing.
type App struct {
	Stdout     io.Writer
	Source     lintview.RequestSource
	Aggregator *lintview.Aggregator
	Printer    *lipgloss.Printer
	Explainers []lintview.Explainer // Consulted in order
	Store      lintview.SnapshotStore
	Viewer     lintview.Viewer
	Feedback   lintview.FeedbackSender
	Log        FeedbackLog
	Updates    UpdateChecker
	Versions   func(ctx context.Context) map[string]string
	Now        func() time.Time
	Version    string

	closers []func()
}

// Close flushes pending reports and releases resources.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) versions(ctx context.Context) map[string]string {
	if a.Versions == nil {
		return nil
	}
	return a.Versions(ctx)
}

// Check analyzes path once and writes the report in format.
func (a *App) Check(ctx context.Context, path, format string) error {
	switch format {
	case FormatMarkup, FormatText, FormatJSON, FormatSARIF:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	req, err := a.Source.Request(path)
	if err != nil {
		return err
	}
	loop := lintview.NewLoop()
	defer loop.Close()
	snap, err := lintview.RunBatch(ctx, a.Aggregator, loop, req)
	if err != nil {
		return err
	}
	if snap == nil {
		return lintview.ErrNoAnalyzers
	}

	switch format {
	case FormatText:
		_, err = io.WriteString(a.Stdout, a.Printer.Print(snap.Document, snap.MainFile))
	case FormatJSON:
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	case FormatSARIF:
		err = sarif.Write(a.Stdout, snap)
	default:
		_, err = io.WriteString(a.Stdout, snap.Markup)
	}
	return err
}

// View opens the interactive panel for path.
func (a *App) View(ctx context.Context, path string) error {
	req, err := a.Source.Request(path)
	if err != nil {
		return err
	}
	return a.Viewer.View(ctx, req.MainFile)
}

// Explain prints the explanation of a rule code.
func (a *App) Explain(ctx context.Context, code string) error {
	for _, e := range a.Explainers {
		if text := e.Explain(ctx, code); text != "" {
			_, err := fmt.Fprintln(a.Stdout, text)
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrNoExplanation, code)
}

// History lists the stored reports of path, oldest first.
func (a *App) History(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	snaps, err := a.Store.Load(abs)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		_, err := fmt.Fprintf(a.Stdout, "no reports for %s\n", abs)
		return err
	}
	for _, s := range snaps {
		summary := ""
		if s.Document != nil {
			summary = s.Document.Summary
		}
		if _, err := fmt.Fprintf(a.Stdout, "%s  %s  %3d  %s\n", s.Timestamp.Format(time.RFC3339), s.ID, len(s.Findings), summary); err != nil {
			return err
		}
	}
	return nil
}

// FeedbackOptions selects what a feedback submission contains.
type FeedbackOptions struct {
	Helpful          []string // Codes marked helpful
	Confusing        []string // Codes marked confusing
	Comments         string
	IncludeSnapshots bool
	All              bool // Include reports already covered by earlier feedback
	Preview          bool // Print the submission instead of sending it
}

// SubmitFeedback collects the reports of path not yet covered by feedback
// and sends the user's verdicts on their messages.
func (a *App) SubmitFeedback(ctx context.Context, path string, opts FeedbackOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	snaps, err := a.Store.Load(abs)
	if err != nil {
		return err
	}
	if !opts.All {
		last, err := a.Log.LastSeen(abs)
		if err != nil {
			return err
		}
		var fresh []*lintview.Snapshot
		for _, s := range snaps {
			if s.Timestamp.After(last) {
				fresh = append(fresh, s)
			}
		}
		snaps = fresh
	}
	if len(snaps) == 0 {
		return ErrNoSnapshots
	}

	fb := lintview.NewFeedback(snaps)
	for _, code := range opts.Helpful {
		if !fb.Mark(code, true, slices.Contains(opts.Confusing, code)) {
			return fmt.Errorf("code %s does not occur in the reports", code)
		}
	}
	for _, code := range opts.Confusing {
		if !fb.Mark(code, slices.Contains(opts.Helpful, code), true) {
			return fmt.Errorf("code %s does not occur in the reports", code)
		}
	}
	fb.Comments = opts.Comments
	fb.Versions = a.versions(ctx)
	lastSeen := fb.LastTimestamp()
	if !opts.IncludeSnapshots {
		fb.Snapshots = nil
	}

	if opts.Preview {
		data, err := fb.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.Stdout, string(data))
		return err
	}

	if err := a.Feedback.Submit(ctx, fb); err != nil {
		return err
	}
	if err := a.Log.Record(abs, a.now(), lastSeen); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.Stdout, "Thank you! Feedback on %d messages sent.\n", len(fb.Messages))
	return err
}

// CheckUpdates reports installed packages that have newer releases.
func (a *App) CheckUpdates(ctx context.Context) error {
	installed := a.versions(ctx)
	if len(installed) == 0 {
		_, err := fmt.Fprintln(a.Stdout, "no analyzer packages installed")
		return err
	}
	updates, err := a.Updates.Check(ctx, installed)
	if err != nil {
		return err
	}
	outdated := 0
	for _, u := range updates {
		if !u.Outdated() {
			continue
		}
		outdated++
		if _, err := fmt.Fprintf(a.Stdout, "%s %s -> %s\n", u.Package, u.Installed, u.Latest); err != nil {
			return err
		}
	}
	if outdated == 0 {
		_, err = fmt.Fprintln(a.Stdout, "all packages are up to date")
	}
	return err
}

// PrintVersion writes the tool version and the analyzer package versions.
func (a *App) PrintVersion(ctx context.Context) error {
	version := a.Version
	if version == "" {
		version = "dev"
	}
	lines := []string{"lintview " + version}
	versions := a.versions(ctx)
	for _, pkg := range slices.Sorted(maps.Keys(versions)) {
		lines = append(lines, pkg+" "+versions[pkg])
	}
	_, err := fmt.Fprintln(a.Stdout, strings.Join(lines, "\n"))
	return err
}

// ReportHook forwards a resolved report to the usage reporter.
func ReportHook(r lintview.Reporter) func(*lintview.Snapshot) {
	return func(s *lintview.Snapshot) {
		r.SendCode(s.MainFile, s.Source)
		for path, source := range s.Imported {
			r.SendCode(path, source)
		}
		r.SendResults(s.MainFile, s.Markup)

		var errs []string
		for _, f := range s.Findings {
			if f.Code == lintview.UnavailableCode {
				errs = append(errs, f.Message)
			}
		}
		if len(errs) > 0 {
			r.SendErrors(s.MainFile, strings.Join(errs, "\n"))
		}
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		if errors.Is(err, lintview.ErrNoAnalyzers) {
			fmt.Fprintln(os.Stderr, "No analyzers are enabled. Enable one under analyzers in the config file.")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		cancel()
		os.Exit(1)
	}
}
