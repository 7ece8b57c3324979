// Package chat classifies raw chat export lines and splits message lines
// into their sender and body.
//
// A message line has the shape
//
//	<prefix> - <sender>: <message>
//
// where <prefix> is usually a date and time. The prefix is never validated;
// only the two delimiters decide whether a line is a message.
package chat

import "strings"

const (
	// PrefixDelimiter separates the date/time prefix from the sender.
	PrefixDelimiter = " - "

	// SenderDelimiter separates the sender from the message body.
	SenderDelimiter = ": "
)

// Message is a classified chat line.
type Message struct {
	// Sender is the text between the first PrefixDelimiter and the following
	// SenderDelimiter. No normalization is applied.
	Sender string

	// Body is everything after the SenderDelimiter.
	Body string

	// Raw is the original line trimmed of surrounding whitespace.
	Raw string

	// LineNum is the 1-based line number in the source, or 0 if unknown.
	LineNum int
}

// Classify reports whether line is a message line and, if so, splits it.
// Lines that fail the delimiter gate or the split are not messages.
func Classify(line string) (Message, bool) {
	return ClassifyAt(line, 0)
}

// ClassifyAt is Classify with the line's position in its source attached to
// the returned Message.
func ClassifyAt(line string, lineNum int) (Message, bool) {
	if !IsCandidate(line) {
		return Message{}, false
	}

	_, tail, found := strings.Cut(line, PrefixDelimiter)
	if !found {
		return Message{}, false
	}

	// The gate may have been satisfied by a ": " inside the prefix only.
	sender, body, found := strings.Cut(tail, SenderDelimiter)
	if !found {
		return Message{}, false
	}

	return Message{
		Sender:  sender,
		Body:    strings.TrimRight(body, "\r\n"),
		Raw:     strings.TrimSpace(line),
		LineNum: lineNum,
	}, true
}

// IsCandidate is the structural gate: both delimiters must appear somewhere
// in the line.
func IsCandidate(line string) bool {
	return strings.Contains(line, PrefixDelimiter) && strings.Contains(line, SenderDelimiter)
}

// Contains reports whether term occurs in the message body. Matching is a
// literal, case-sensitive substring test.
func (m Message) Contains(term string) bool {
	return strings.Contains(m.Body, term)
}
