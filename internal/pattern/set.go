package pattern

import (
	"regexp"
	"strings"
)

var separator = regexp.MustCompile(`[,\n]`)

// Set is an ordered collection of patterns matched with logical OR
type Set []Pattern

// Parse splits every value on commas and newlines, trims the parts, drops the
// empty ones and compiles the rest. The first part that fails to compile aborts
// parsing. A nil or empty result means nothing usable was given; callers treat
// that as a fatal configuration error (see ErrNoPatterns).
func Parse(values []string, isRegex bool) (Set, error) {
	var set Set
	for _, raw := range values {
		if raw == "" {
			continue
		}
		for _, part := range separator.Split(raw, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			p, err := Compile(part, isRegex)
			if err != nil {
				return nil, err
			}
			set = append(set, p)
		}
	}
	return set, nil
}

// MatchAny reports whether any pattern matches any non-empty candidate
func (s Set) MatchAny(candidates ...string) bool {
	for _, p := range s {
		for _, c := range candidates {
			if c != "" && p.Matches(c) {
				return true
			}
		}
	}
	return false
}

// String joins the patterns with ", " for log output
func (s Set) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Equal reports whether two sets hold the same patterns in the same order
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].text != other[i].text || s[i].mode != other[i].mode {
			return false
		}
	}
	return true
}
