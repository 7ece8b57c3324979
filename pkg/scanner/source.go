package scanner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxLineSize bounds a single line. Longer lines end the scan with an
// ErrIO failure.
const DefaultMaxLineSize = 1024 * 1024

// Line is one raw line read from a chat file.
type Line struct {
	Text    string
	LineNum int
}

// FileSource reads a chat file one line at a time.
// It is not safe for concurrent use.
type FileSource struct {
	path string

	file    *os.File
	scanner *bufio.Scanner
	lineNum int
}

// OpenFile opens path for streaming. A missing file yields an ErrNotFound
// ScanError, any other open failure an ErrIO one.
func OpenFile(path string, maxLineSize int) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		kind := ErrIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrNotFound
		}
		return nil, &ScanError{Kind: kind, Path: path, Err: err}
	}

	if maxLineSize <= 0 {
		maxLineSize = DefaultMaxLineSize
	}

	// Some exports start with a byte order mark. BOMOverride strips a UTF-8
	// BOM and decodes UTF-16 exports; without a BOM bytes pass through
	// untouched so invalid sequences reach the validity check in Next.
	r := transform.NewReader(f, unicode.BOMOverride(transform.Nop))

	initial := 64 * 1024
	if maxLineSize < initial {
		initial = maxLineSize
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, initial), maxLineSize)
	s.Split(scanLines)

	return &FileSource{
		path:    path,
		file:    f,
		scanner: s,
	}, nil
}

// scanLines is bufio.ScanLines extended to old Mac exports: "\n", "\r\n" and
// a lone "\r" each end a line, and the terminator is dropped.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		// A "\r" at the end of the buffer may be the first half of "\r\n".
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Path returns the file being read.
func (s *FileSource) Path() string {
	return s.path
}

// Next returns the next line. It returns io.EOF once the file is exhausted,
// ctx.Err() if ctx is done, and a *ScanError for read or decode failures.
func (s *FileSource) Next(ctx context.Context) (Line, error) {
	select {
	case <-ctx.Done():
		return Line{}, ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return Line{}, &ScanError{Kind: ErrIO, Path: s.path, Line: s.lineNum + 1, Err: err}
		}
		return Line{}, io.EOF
	}

	s.lineNum++
	text := s.scanner.Text()
	if !utf8.ValidString(text) {
		return Line{}, &ScanError{
			Kind: ErrDecode,
			Path: s.path,
			Line: s.lineNum,
			Err:  errors.New("invalid UTF-8 byte sequence"),
		}
	}

	return Line{Text: text, LineNum: s.lineNum}, nil
}

// Close releases the underlying file. It is safe to call more than once.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// ResolveSources expands file paths and glob patterns into a sorted list
// without duplicates. A pattern that matches nothing is kept as a literal
// path so that scanning it reports the file as not found.
func ResolveSources(patterns []string) ([]string, error) {
	seen := make(map[string]struct{}, len(patterns))
	add := func(p string) {
		seen[filepath.Clean(p)] = struct{}{}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid chat file pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
