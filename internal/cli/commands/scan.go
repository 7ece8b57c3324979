package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/chattally/pkg/config"
	"github.com/ccollicutt/chattally/pkg/output"
	"github.com/ccollicutt/chattally/pkg/scanner"
	"github.com/ccollicutt/chattally/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Logger receives scan failure reports. The root command replaces it before
// any subcommand runs.
var Logger = zap.NewNop()

// tallyMode selects which tables a scan builds.
type tallyMode int

const (
	modeCount tallyMode = 1 << iota
	modeFirst

	modeBoth = modeCount | modeFirst
)

// ScanOptions holds command-line options shared by the scan commands.
type ScanOptions struct {
	Files   []string
	Terms   []string
	Output  string
	Verbose bool
	Quiet   bool
	Sorted  bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

func addScanFlags(cmd *cobra.Command, opts *ScanOptions) {
	cmd.Flags().StringSliceVarP(&opts.Files, "file", "f", nil, "Chat export file or glob (can be repeated)")
	cmd.Flags().StringArrayVarP(&opts.Terms, "term", "t", nil, "Search term (can be repeated, replaces configured terms)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show per-file scan statistics")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no tables")
	cmd.Flags().BoolVar(&opts.Sorted, "sort", false, "List senders alphabetically and terms in search order instead of first-match order")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_matches", "When to fire webhook (on_matches|always|never)")
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions, mode tallyMode) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := ""
	if len(args) > 0 {
		configPath = args[0]
	}

	cfg, err := loadConfig(ctx, configPath, opts, cmd.Flags().Changed("term"))
	if err != nil {
		return err
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	files, err := scanner.ResolveSources(cfg.ChatFiles)
	if err != nil {
		return fmt.Errorf("expanding chat files: %w", err)
	}

	s := scanner.New(
		scanner.WithLogger(Logger),
		scanner.WithMaxLineSize(cfg.MaxLineSize),
	)

	start := time.Now()
	results := make([]output.FileReport, 0, len(files))
	for _, path := range files {
		fr, err := scanFile(ctx, s, path, cfg.SearchTerms, mode)
		if err != nil {
			return err
		}
		results = append(results, fr)
	}

	report := output.NewReport(cfg.SearchTerms, results, configPath, start, time.Now())

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	hooks := collectWebhooks(cfg, opts)
	if len(hooks) > 0 {
		webhook.NewClient(webhook.WithLogger(Logger)).Dispatch(ctx, hooks, report)
	}

	if report.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// scanFile runs one pass over path. Scan failures are recorded in the
// returned FileReport; only cancellation is returned as an error.
func scanFile(ctx context.Context, s *scanner.Scanner, path string, terms []string, mode tallyMode) (output.FileReport, error) {
	fr := output.FileReport{Source: path}

	var tallies []scanner.Tally
	var counts *scanner.CountTally
	var firsts *scanner.FirstTally
	if mode&modeCount != 0 {
		counts = scanner.NewCountTally(terms)
		tallies = append(tallies, counts)
	}
	if mode&modeFirst != 0 {
		firsts = scanner.NewFirstTally(terms)
		tallies = append(tallies, firsts)
	}

	stats, err := s.Scan(ctx, path, tallies...)
	fr.Stats = stats
	if counts != nil {
		fr.Counts = counts.Table()
		fr.Order = counts.Order()
	}
	if firsts != nil {
		fr.FirstOccurrences = firsts.Table()
		if counts == nil {
			fr.Order = firsts.Order()
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			return fr, fmt.Errorf("scanning %s: %w", path, err)
		}
		fr.Error = err.Error()
	}
	return fr, nil
}

// loadConfig reads configPath, or the built-in defaults when it is empty,
// then applies --file and --term.
func loadConfig(ctx context.Context, configPath string, opts *ScanOptions, termsChanged bool) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(ctx, configPath)
	} else {
		cfg, err = config.LoadDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if len(opts.Files) > 0 {
		cfg.ChatFiles = opts.Files
	}
	if termsChanged {
		cfg.SearchTerms = opts.Terms
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func createFormatter(opts *ScanOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Sorted:  opts.Sorted,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ScanOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnMatches
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}
