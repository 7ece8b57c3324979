package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/chattally/pkg/scanner"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "chattally: %d files scanned, %d failed, %d senders, %d matches\n",
		report.Summary.FilesScanned,
		report.Summary.FilesFailed,
		report.Summary.Senders,
		report.Summary.TotalMatches)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	terms := uniqueTerms(report.Terms)
	multi := len(report.Files) > 1

	for i, file := range report.Files {
		if multi {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", file.Source)
		}
		f.formatFile(&file, terms, w)
	}

	if f.opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "---")
		for _, file := range report.Files {
			fmt.Fprintf(w, "%s: %d lines, %d messages, %d skipped\n",
				file.Source, file.Stats.LinesRead, file.Stats.Messages, file.Stats.Skipped)
			if file.Error != "" {
				fmt.Fprintf(w, "  Error: %s\n", file.Error)
			}
		}
		fmt.Fprintf(w, "Summary: %d files scanned, %d senders, %d matches\n",
			report.Summary.FilesScanned, report.Summary.Senders, report.Summary.TotalMatches)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatFile(file *FileReport, terms []string, w io.Writer) {
	if file.Counts != nil {
		senders, termsFor := f.layout(file.Order, file.Counts.Senders(), terms)
		for _, sender := range senders {
			fmt.Fprintf(w, "%s:\n", sender)
			for _, term := range termsFor(sender) {
				if n, ok := file.Counts[sender][term]; ok {
					fmt.Fprintf(w, "  %s: %d\n", term, n)
				}
			}
		}
	}

	if file.FirstOccurrences != nil {
		if file.Counts != nil {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "First occurrences:")
		senders, termsFor := f.layout(file.Order, file.FirstOccurrences.Senders(), terms)
		for _, sender := range senders {
			fmt.Fprintf(w, "%s:\n", sender)
			for _, term := range termsFor(sender) {
				if line, ok := file.FirstOccurrences.Get(sender, term); ok {
					fmt.Fprintf(w, "  %s: %s\n", term, line)
				}
			}
		}
	}
}

// layout picks the sender order and per-sender term order for one table.
// Reports without a recorded order fall back to the sorted layout.
func (f *TextFormatter) layout(order scanner.Order, sorted, terms []string) ([]string, func(string) []string) {
	if f.opts.Sorted || order.IsZero() {
		return sorted, func(string) []string { return terms }
	}
	return order.Senders, func(sender string) []string { return order.Terms[sender] }
}
