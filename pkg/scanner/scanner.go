package scanner

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/ccollicutt/chattally/pkg/chat"
)

// Scanner drives a single streaming pass over a chat file, classifying each
// line and feeding message lines to a set of tallies.
type Scanner struct {
	logger      *zap.Logger
	maxLineSize int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used to report scan failures and trace
// skipped lines. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxLineSize bounds the length of a single line.
func WithMaxLineSize(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxLineSize = n
		}
	}
}

// New creates a Scanner. Without options it logs nothing.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		logger:      zap.NewNop(),
		maxLineSize: DefaultMaxLineSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads path line by line and passes every message line to each tally
// in order.
//
// Scanning is streaming: if the file cannot be opened the tallies see
// nothing, and if reading fails part way through they keep whatever was
// observed before the failure. The error is a *ScanError (or the context's
// error on cancellation) and has already been logged.
func (s *Scanner) Scan(ctx context.Context, path string, tallies ...Tally) (Stats, error) {
	stats := Stats{Source: path}

	src, err := OpenFile(path, s.maxLineSize)
	if err != nil {
		s.reportFailure(err, stats)
		return stats, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			s.logger.Warn("closing chat file", zap.String("path", path), zap.Error(cerr))
		}
	}()

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			s.reportFailure(err, stats)
			return stats, err
		}
		stats.LinesRead++

		msg, ok := chat.ClassifyAt(line.Text, line.LineNum)
		if !ok {
			stats.Skipped++
			if chat.IsCandidate(line.Text) {
				s.logger.Debug("skipping unparseable line",
					zap.String("path", path),
					zap.Int("line", line.LineNum))
			}
			continue
		}
		stats.Messages++

		for _, t := range tallies {
			t.Observe(msg)
		}
	}

	s.logger.Debug("scan complete",
		zap.String("path", path),
		zap.Int("lines", stats.LinesRead),
		zap.Int("messages", stats.Messages),
		zap.Int("skipped", stats.Skipped))

	return stats, nil
}

func (s *Scanner) reportFailure(err error, stats Stats) {
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		s.logger.Warn("scan interrupted",
			zap.String("path", stats.Source),
			zap.Int("lines_read", stats.LinesRead),
			zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("path", scanErr.Path),
		zap.String("kind", KindName(err)),
		zap.Int("lines_read", stats.LinesRead),
	}
	if scanErr.Line > 0 {
		fields = append(fields, zap.Int("line", scanErr.Line))
	}
	if scanErr.Err != nil {
		fields = append(fields, zap.Error(scanErr.Err))
	}

	if errors.Is(err, ErrNotFound) {
		s.logger.Error("chat file not found", fields...)
		return
	}
	s.logger.Error("chat file read failed", fields...)
}

// CountOccurrences counts, per sender, the message lines containing each
// search term. The returned table is never nil; on failure it is empty or
// holds the counts gathered before the failure.
func (s *Scanner) CountOccurrences(ctx context.Context, path string, terms []string) (CountTable, error) {
	tally := NewCountTally(terms)
	_, err := s.Scan(ctx, path, tally)
	return tally.Table(), err
}

// FindFirstOccurrences records, per sender and search term, the first
// message line containing the term. The returned table is never nil.
func (s *Scanner) FindFirstOccurrences(ctx context.Context, path string, terms []string) (FirstTable, error) {
	tally := NewFirstTally(terms)
	_, err := s.Scan(ctx, path, tally)
	return tally.Table(), err
}

// CountOccurrences is a convenience wrapper around New(opts...).CountOccurrences.
func CountOccurrences(ctx context.Context, path string, terms []string, opts ...Option) (CountTable, error) {
	return New(opts...).CountOccurrences(ctx, path, terms)
}

// FindFirstOccurrences is a convenience wrapper around
// New(opts...).FindFirstOccurrences.
func FindFirstOccurrences(ctx context.Context, path string, terms []string, opts ...Option) (FirstTable, error) {
	return New(opts...).FindFirstOccurrences(ctx, path, terms)
}
