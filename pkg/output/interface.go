package output

import (
	"context"
	"io"
)

// Formatter writes a Report. Text is for people reading a terminal; JSON is
// for scripts and is also the webhook payload shape.
type Formatter interface {
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name is the value accepted by --output.
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose appends lines read, messages and skipped lines per chat file.
	Verbose bool

	// Quiet prints only the one-line summary.
	Quiet bool

	// Sorted lists senders alphabetically and each sender's terms in search
	// order. By default both follow the order in which they first matched.
	Sorted bool
}
