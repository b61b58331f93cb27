// Package pattern compiles the user supplied application patterns and tests
// process identity strings against them.
//
// A pattern is either a literal, matched as a case-insensitive substring, or a
// regular expression, matched case-insensitively anywhere in the candidate.
// Regular expressions are compiled once when the pattern is built, so a bad
// expression is reported at startup and never while the monitor is running.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Mode selects how a pattern's text is interpreted
type Mode int

const (
	// Literal matches the text as a case-insensitive substring
	Literal Mode = iota
	// Regex matches the text as a case-insensitive regular expression
	Regex
)

// String returns the mode name used in logs and doctor output
func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// ErrNoPatterns is the cause carried by the configuration error raised when an
// apps list yields no usable pattern.
var ErrNoPatterns = errors.New("no valid app patterns provided")

// InvalidPatternError reports a pattern that could not be built.
// Err holds the regexp diagnostic when the text failed to compile.
type InvalidPatternError struct {
	Text   string
	Reason string
	Err    error
}

func (e *InvalidPatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid pattern %q: %s: %v", e.Text, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q: %s", e.Text, e.Reason)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Pattern is an immutable compiled application pattern
type Pattern struct {
	text     string
	lower    string
	mode     Mode
	compiled *regexp.Regexp
}

// Compile builds a Pattern from text. Surrounding whitespace is trimmed and an
// empty result is rejected. With isRegex the text must be a valid RE2 expression.
func Compile(text string, isRegex bool) (Pattern, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pattern{}, &InvalidPatternError{Text: text, Reason: "empty pattern"}
	}

	if !isRegex {
		return Pattern{text: text, lower: strings.ToLower(text), mode: Literal}, nil
	}

	re, err := regexp.Compile("(?i)" + text)
	if err != nil {
		return Pattern{}, &InvalidPatternError{Text: text, Reason: "regular expression does not compile", Err: err}
	}
	return Pattern{text: text, mode: Regex, compiled: re}, nil
}

// Text returns the trimmed pattern text
func (p Pattern) Text() string {
	return p.text
}

// Mode returns how the pattern is matched
func (p Pattern) Mode() Mode {
	return p.mode
}

// Matches reports whether candidate matches the pattern.
// An empty candidate never matches.
func (p Pattern) Matches(candidate string) bool {
	if candidate == "" {
		return false
	}
	if p.mode == Regex && p.compiled != nil {
		return p.compiled.MatchString(candidate)
	}
	return strings.Contains(strings.ToLower(candidate), p.lower)
}

// String renders the pattern for logs, regex patterns wrapped in slashes
func (p Pattern) String() string {
	if p.mode == Regex {
		return "/" + p.text + "/"
	}
	return p.text
}
