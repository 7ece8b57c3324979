package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/chattally/pkg/scanner"
)

func createTestReport() *Report {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	files := []FileReport{{
		Source: "chat.txt",
		Counts: scanner.CountTable{
			"Joao": {"Amor": 2},
			"Ana":  {"Amor": 1, "Te amo": 3},
		},
		FirstOccurrences: scanner.FirstTable{
			"Joao": {"Amor": "1/1/24, 10:03 - Joao: Amor"},
			"Ana": {
				"Te amo": "1/1/24, 10:00 - Ana: Te amo",
				"Amor":   "1/1/24, 10:02 - Ana: Meu bem, Amor",
			},
		},
		Stats: scanner.Stats{Source: "chat.txt", LinesRead: 10, Messages: 8, Skipped: 2},
	}}
	return NewReport([]string{"Te amo", "Meu bem", "Amor"}, files, "", start, start.Add(1500*time.Millisecond))
}

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `Ana:
  Te amo: 3
  Amor: 1
Joao:
  Amor: 2

First occurrences:
Ana:
  Te amo: 1/1/24, 10:00 - Ana: Te amo
  Amor: 1/1/24, 10:02 - Ana: Meu bem, Amor
Joao:
  Amor: 1/1/24, 10:03 - Joao: Amor
`
	if got := buf.String(); got != want {
		t.Errorf("Format() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextFormatter_Format_CountsOnly(t *testing.T) {
	report := createTestReport()
	report.Files[0].FirstOccurrences = nil

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if strings.Contains(buf.String(), "First occurrences:") {
		t.Error("counts-only output contains first occurrences section")
	}
}

func TestTextFormatter_Format_FirstOnly(t *testing.T) {
	report := createTestReport()
	report.Files[0].Counts = nil

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.HasPrefix(buf.String(), "First occurrences:\n") {
		t.Errorf("first-only output should start with the section header, got:\n%s", buf.String())
	}
}

func TestTextFormatter_Format_Empty(t *testing.T) {
	report := NewReport(nil, []FileReport{{
		Source:           "missing.txt",
		Counts:           scanner.CountTable{},
		FirstOccurrences: scanner.FirstTable{},
		Error:            "file not found: missing.txt",
	}}, "", time.Now(), time.Now())

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if got := buf.String(); got != "\nFirst occurrences:\n" {
		t.Errorf("Format() = %q, want only the empty section header", got)
	}
}

func TestTextFormatter_Format_MultipleFiles(t *testing.T) {
	report := createTestReport()
	second := report.Files[0]
	second.Source = "other.txt"
	report = NewReport(report.Terms, append(report.Files, second), "", time.Now(), time.Now())

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "== chat.txt ==") || !strings.Contains(output, "== other.txt ==") {
		t.Errorf("multi-file output missing file headers:\n%s", output)
	}
}

func TestTextFormatter_Format_DuplicateTermsPrintedOnce(t *testing.T) {
	report := NewReport([]string{"oi", "oi"}, []FileReport{{
		Source: "chat.txt",
		Counts: scanner.CountTable{"Ana": {"oi": 2}},
	}}, "", time.Now(), time.Now())

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if n := strings.Count(buf.String(), "oi:"); n != 1 {
		t.Errorf("term printed %d times, want 1", n)
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Errorf("Quiet output has %d lines, want 1", len(lines))
	}
	if !strings.Contains(output, "1 files scanned, 0 failed, 2 senders, 6 matches") {
		t.Errorf("Quiet output = %q", output)
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	report := createTestReport()
	report.Files[0].Error = "i/o error: chat.txt at line 11"
	f := NewTextFormatter(FormatOptions{Verbose: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"chat.txt: 10 lines, 8 messages, 2 skipped",
		"Error: i/o error",
		"Duration: 1.5s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Verbose output missing %q:\n%s", want, output)
		}
	}
}

func TestNewReport_Summary(t *testing.T) {
	report := createTestReport()

	want := Summary{FilesScanned: 1, Senders: 2, TotalMatches: 6, LinesProcessed: 10}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if !report.HasMatches() {
		t.Error("HasMatches() = false, want true")
	}
	if report.HasFailures() {
		t.Error("HasFailures() = true, want false")
	}
	if report.Metadata.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", report.Metadata.Duration)
	}
}

func TestNewReport_FirstOnlyMatches(t *testing.T) {
	report := NewReport([]string{"a", "b"}, []FileReport{{
		Source:           "chat.txt",
		FirstOccurrences: scanner.FirstTable{"Ana": {"a": "x", "b": "y"}, "Bia": {"a": "z"}},
		Error:            "boom",
	}}, "", time.Now(), time.Now())

	if report.Summary.TotalMatches != 3 {
		t.Errorf("TotalMatches = %d, want 3", report.Summary.TotalMatches)
	}
	if !report.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
}

func TestTextFormatter_Format_FirstMatchOrder(t *testing.T) {
	report := NewReport([]string{"Te amo", "Amor"}, []FileReport{{
		Source: "chat.txt",
		Counts: scanner.CountTable{
			"Zoe": {"Amor": 1, "Te amo": 1},
			"Ana": {"Te amo": 1, "Amor": 1},
		},
		FirstOccurrences: scanner.FirstTable{
			"Zoe": {"Amor": "10:00 - Zoe: Amor", "Te amo": "10:02 - Zoe: Te amo"},
			"Ana": {"Te amo": "10:01 - Ana: Te amo, Amor", "Amor": "10:01 - Ana: Te amo, Amor"},
		},
		Order: scanner.Order{
			Senders: []string{"Zoe", "Ana"},
			Terms:   map[string][]string{"Zoe": {"Amor", "Te amo"}, "Ana": {"Te amo", "Amor"}},
		},
	}}, "", time.Now(), time.Now())

	tests := []struct {
		name string
		opts FormatOptions
		want string
	}{
		{"first match order", FormatOptions{}, `Zoe:
  Amor: 1
  Te amo: 1
Ana:
  Te amo: 1
  Amor: 1

First occurrences:
Zoe:
  Amor: 10:00 - Zoe: Amor
  Te amo: 10:02 - Zoe: Te amo
Ana:
  Te amo: 10:01 - Ana: Te amo, Amor
  Amor: 10:01 - Ana: Te amo, Amor
`},
		{"sorted", FormatOptions{Sorted: true}, `Ana:
  Te amo: 1
  Amor: 1
Zoe:
  Te amo: 1
  Amor: 1

First occurrences:
Ana:
  Te amo: 10:01 - Ana: Te amo, Amor
  Amor: 10:01 - Ana: Te amo, Amor
Zoe:
  Te amo: 10:02 - Zoe: Te amo
  Amor: 10:00 - Zoe: Amor
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTextFormatter(tt.opts).Format(context.Background(), report, &buf); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Format() mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}
