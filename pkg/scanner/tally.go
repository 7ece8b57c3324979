package scanner

import "github.com/ccollicutt/chattally/pkg/chat"

// Tally consumes classified messages during a scan.
// Implementations are not required to be safe for concurrent use.
type Tally interface {
	// Observe handles one message line.
	Observe(msg chat.Message)
}

// CountTally builds a CountTable.
type CountTally struct {
	terms []string
	table CountTable
	order Order
}

// NewCountTally creates a tally counting the given search terms.
// The terms slice is copied.
func NewCountTally(terms []string) *CountTally {
	return &CountTally{
		terms: append([]string(nil), terms...),
		table: make(CountTable),
	}
}

// Observe increments the sender's count for every term the body contains.
// A term is counted at most once per line, however often it repeats there.
func (c *CountTally) Observe(msg chat.Message) {
	for _, term := range c.terms {
		if !msg.Contains(term) {
			continue
		}
		counts, ok := c.table[msg.Sender]
		if !ok {
			counts = make(map[string]int)
			c.table[msg.Sender] = counts
		}
		if _, seen := counts[term]; !seen {
			c.order.record(msg.Sender, term)
		}
		counts[term]++
	}
}

// Table returns the counts accumulated so far.
func (c *CountTally) Table() CountTable {
	return c.table
}

// Order returns the order in which cells of the table were created.
func (c *CountTally) Order() Order {
	return c.order
}

// FirstTally builds a FirstTable.
type FirstTally struct {
	terms []string
	table FirstTable
	order Order
}

// NewFirstTally creates a tally recording the first line per sender and term.
// The terms slice is copied.
func NewFirstTally(terms []string) *FirstTally {
	return &FirstTally{
		terms: append([]string(nil), terms...),
		table: make(FirstTable),
	}
}

// Observe records msg.Raw for every term the body contains, unless a line
// was already recorded for that sender and term.
func (f *FirstTally) Observe(msg chat.Message) {
	for _, term := range f.terms {
		if !msg.Contains(term) {
			continue
		}
		firsts, ok := f.table[msg.Sender]
		if !ok {
			firsts = make(map[string]string)
			f.table[msg.Sender] = firsts
		}
		if _, seen := firsts[term]; seen {
			continue
		}
		firsts[term] = msg.Raw
		f.order.record(msg.Sender, term)
	}
}

// Table returns the first occurrences recorded so far.
func (f *FirstTally) Table() FirstTable {
	return f.table
}

// Order returns the order in which cells of the table were created.
func (f *FirstTally) Order() Order {
	return f.order
}
