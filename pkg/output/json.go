package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter writes the report as indented JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter returns a JSONFormatter. Verbose has no effect since stats
// are always included.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns "json".
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format encodes report, or only its Summary when Quiet is set. Tables are
// JSON objects with sorted keys; each file's "order" field carries the
// first-match order the text output uses.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// Chat text routinely contains <, > and &.
	enc.SetEscapeHTML(false)

	var v any = report
	if f.opts.Quiet {
		v = report.Summary
	}
	return enc.Encode(v)
}
