package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/lintview"
	"github.com/fwojciec/lintview/bubbletea"
	"github.com/fwojciec/lintview/chroma"
	"github.com/fwojciec/lintview/clipboard"
	"github.com/fwojciec/lintview/config"
	"github.com/fwojciec/lintview/edulint"
	"github.com/fwojciec/lintview/fs"
	"github.com/fwojciec/lintview/gemini"
	"github.com/fwojciec/lintview/jsonl"
	"github.com/fwojciec/lintview/lipgloss"
	"github.com/fwojciec/lintview/logger"
	"github.com/fwojciec/lintview/resty"
	"github.com/fwojciec/lintview/textcheck"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd(stdout io.Writer) *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "lintview [command]",
		Short:         "Explain linter findings for Python programs",
		Long:          "lintview runs the configured analyzers on a Python file and presents their merged findings as one report.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&cfgPath, "config", fs.DefaultConfigPath(), "path to the YAML config file")

	load := func(cmd *cobra.Command, interactive bool) (*App, error) {
		return loadApp(cmd.Context(), cfgPath, stdout, interactive)
	}
	root.AddCommand(
		newCheckCmd(load),
		newViewCmd(load),
		newExplainCmd(load),
		newHistoryCmd(load),
		newFeedbackCmd(load),
		newUpdateCheckCmd(load),
		newVersionCmd(load),
	)
	return root
}

type appLoader func(cmd *cobra.Command, interactive bool) (*App, error)

// withApp loads the application, runs fn, and releases it.
func withApp(load appLoader, cmd *cobra.Command, interactive bool, fn func(*App) error) error {
	app, err := load(cmd, interactive)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func newCheckCmd(load appLoader) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Analyze a file once and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, cmd, false, func(a *App) error {
				return a.Check(cmd.Context(), args[0], format)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: markup, text, json or sarif")
	return cmd
}

func newViewCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Open the interactive report panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, cmd, true, func(a *App) error {
				return a.View(cmd.Context(), args[0])
			})
		},
	}
}

func newExplainCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <code>",
		Short: "Print the explanation of a rule code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, cmd, false, func(a *App) error {
				return a.Explain(cmd.Context(), args[0])
			})
		},
	}
}

func newHistoryCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "history <file>",
		Short: "List stored reports of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, cmd, false, func(a *App) error {
				return a.History(args[0])
			})
		},
	}
}

func newFeedbackCmd(load appLoader) *cobra.Command {
	var opts FeedbackOptions
	cmd := &cobra.Command{
		Use:   "feedback <file>",
		Short: "Send feedback on the messages reported for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, cmd, false, func(a *App) error {
				return a.SubmitFeedback(cmd.Context(), args[0], opts)
			})
		},
	}
	cmd.Flags().StringSliceVar(&opts.Helpful, "helpful", nil, "codes whose messages were helpful")
	cmd.Flags().StringSliceVar(&opts.Confusing, "confusing", nil, "codes whose messages were confusing")
	cmd.Flags().StringVarP(&opts.Comments, "comments", "m", "", "free-form comments")
	cmd.Flags().BoolVar(&opts.IncludeSnapshots, "include-code", false, "attach the analyzed code and reports")
	cmd.Flags().BoolVar(&opts.All, "all", false, "include reports already covered by earlier feedback")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "print the submission instead of sending it")
	return cmd
}

func newUpdateCheckCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "update-check",
		Short: "Check whether newer analyzer packages are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(load, cmd, false, func(a *App) error {
				return a.CheckUpdates(cmd.Context())
			})
		},
	}
}

func newVersionCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of lintview and the analyzer packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(load, cmd, false, func(a *App) error {
				return a.PrintVersion(cmd.Context())
			})
		},
	}
}

// loadApp reads the configuration and wires the application. Interactive
// sessions log to a file in the data directory so the panel stays clean.
func loadApp(ctx context.Context, cfgPath string, stdout io.Writer, interactive bool) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	var closers []func()
	log := logger.New(cfg, "lintview")
	if interactive {
		f, err := openLogFile(fs.DefaultDataDir())
		if err != nil {
			return nil, err
		}
		log = logger.NewWithOutput(cfg, "lintview", f)
		closers = append(closers, func() { _ = f.Close() })
	}

	app, err := newApp(ctx, cfg, log, stdout)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	app.closers = append(closers, app.closers...)
	return app, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "lintview.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func newApp(ctx context.Context, cfg *config.Config, log hclog.Logger, stdout io.Writer) (*App, error) {
	settings := config.NewSettings(cfg)
	dataDir := fs.DefaultDataDir()

	runner := edulint.NewRunner(log)
	versions := edulint.NewVersions(cfg.Analyzers.Edulint.Command[0], runner)

	var source lintview.ExplanationSource = edulint.NewExplanationSource(cfg.Explanations.Command, log)
	if config.BoolValue(cfg.Explanations.Cache, true) {
		if v, err := versions.Version(ctx, "edulint"); err == nil {
			source = fs.NewExplanationSource(source, fs.DefaultCacheDir(), "edulint-"+v)
		} else {
			log.Debug("explanations cache disabled", "error", err)
		}
	}
	lintExplainer := lintview.NewExplanationCache(source, log)
	textExplainer := lintview.NewExplanationCache(textcheck.ExplanationSource{}, log)

	registry := lintview.NewRegistry(
		edulint.NewAnalyzer(
			edulint.WithCommand(cfg.Analyzers.Edulint.Command),
			edulint.WithSettings(settings),
			edulint.WithExplainer(lintExplainer),
			edulint.WithLogger(log),
		),
		&textcheck.Analyzer{
			MaxLineLength: cfg.Analyzers.Textcheck.MaxLineLength,
			Settings:      settings,
			Explainer:     textExplainer,
		},
	)
	if settings.Bool(config.KeyGeminiEnabled) {
		client, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
		if err != nil {
			return nil, err
		}
		registry.Register(gemini.NewAnalyzer(client, cfg.Analyzers.Gemini.Model,
			gemini.WithSettings(settings),
			gemini.WithExplainer(lintExplainer),
			gemini.WithLogger(log),
		))
	}

	httpClient := resty.NewClient(cfg.HTTPClient, log)
	store := jsonl.NewSnapshotStore(filepath.Join(dataDir, "history"))

	app := &App{
		Stdout:     stdout,
		Explainers: []lintview.Explainer{textExplainer, lintExplainer},
		Store:      store,
		Feedback:   resty.NewFeedbackSender(httpClient, cmp.Or(cfg.Reporting.FeedbackURL, resty.DefaultFeedbackURL)),
		Log:        jsonl.NewFeedbackLog(dataDir),
		Updates:    resty.NewUpdateChecker(httpClient, cfg.UpdateCheck.IndexURL, dataDir, cfg.UpdateCheck.TTL, log),
		Versions: func(ctx context.Context) map[string]string {
			return versions.All(ctx, edulint.Packages...)
		},
		Version: version,
	}

	aggOpts := []lintview.AggregatorOption{
		lintview.WithRenderer(lintview.Presenter{Scheme: settings.String(config.KeyEditorScheme)}),
		lintview.WithSnapshotStore(store),
		lintview.WithLogger(log),
	}
	if settings.Bool(config.KeyReportingEnabled) {
		reporter := resty.NewReporter(httpClient, cmp.Or(cfg.Reporting.URL, resty.DefaultReportingURL), dataDir,
			resty.WithReporterLogger(log))
		aggOpts = append(aggOpts, lintview.OnReport(ReportHook(reporter)))
		app.closers = append(app.closers, reporter.Wait)
	}
	app.Aggregator = lintview.NewAggregator(registry, aggOpts...)

	theme := lipgloss.DefaultTheme()
	printerOpts := []lipgloss.PrinterOption{lipgloss.WithTheme(theme)}
	if tok, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette())); err == nil {
		printerOpts = append(printerOpts, lipgloss.WithTokenizer(tok, chroma.Python))
	} else {
		log.Warn("syntax highlighting disabled", "error", err)
	}
	app.Printer = lipgloss.NewPrinter(printerOpts...)

	workspace := fs.NewWorkspace(chroma.NewImportScanner(), log)
	app.Source = workspace

	clip := clipboard.Detect(os.Stderr, os.Getenv("TMUX") != "")
	app.Viewer = bubbletea.NewViewer(app.Aggregator, workspace,
		bubbletea.WithPrinter(app.Printer),
		bubbletea.WithClipboard(clip),
	)

	return app, nil
}
