// Package scanner streams chat export files and tallies search terms per
// sender.
package scanner

import "sort"

// CountTable maps sender to search term to the number of message lines from
// that sender containing the term.
type CountTable map[string]map[string]int

// FirstTable maps sender to search term to the trimmed text of the first
// message line from that sender containing the term.
type FirstTable map[string]map[string]string

// Senders returns the senders in the table in lexical order. Use a tally's
// Order for the order in which they matched.
func (t CountTable) Senders() []string {
	return sortedKeys(t)
}

// Get returns the count for a sender and term, 0 if absent.
func (t CountTable) Get(sender, term string) int {
	return t[sender][term]
}

// Senders returns the senders in the table in lexical order.
func (t FirstTable) Senders() []string {
	return sortedKeys(t)
}

// Get returns the first matching line for a sender and term.
func (t FirstTable) Get(sender, term string) (string, bool) {
	line, ok := t[sender][term]
	return line, ok
}

// Order is the sequence in which senders first matched during a scan, and
// for each sender the sequence in which its terms first matched. Terms
// matched on the same line appear in search-term order.
type Order struct {
	Senders []string            `json:"senders"`
	Terms   map[string][]string `json:"terms"`
}

// record notes a newly created (sender, term) cell.
func (o *Order) record(sender, term string) {
	if o.Terms == nil {
		o.Terms = make(map[string][]string)
	}
	terms, ok := o.Terms[sender]
	if !ok {
		o.Senders = append(o.Senders, sender)
	}
	o.Terms[sender] = append(terms, term)
}

// IsZero reports whether nothing has been recorded.
func (o Order) IsZero() bool {
	return len(o.Senders) == 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats describes a single pass over a chat file.
type Stats struct {
	// Source is the file that was scanned.
	Source string `json:"source"`

	// LinesRead is the number of lines consumed before the scan ended.
	LinesRead int `json:"lines_read"`

	// Messages is the number of lines classified as messages.
	Messages int `json:"messages"`

	// Skipped is the number of lines that were not messages.
	Skipped int `json:"skipped"`
}
