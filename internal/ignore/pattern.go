// Package ignore loads, compiles and evaluates gitignore-style access
// patterns from the per-tool ignore files of a project.
package ignore

import (
	"errors"
	"strings"
)

// Compile errors for malformed pattern lines. Callers treat these as
// warnings: a malformed line is skipped, never a fatal load failure.
var (
	ErrEmptyPattern      = errors.New("pattern is empty after stripping")
	ErrTrailingBackslash = errors.New("pattern has unterminated trailing escape")
)

// Pattern is one compiled access rule. A Pattern is immutable once
// compiled; reloading ignore files builds a new set instead of mutating
// patterns in place.
type Pattern struct {
	// Raw is the original pattern text, kept for diagnostics and deny
	// reasons.
	Raw string

	// Source names the ignore file (or built-in set) that contributed the
	// pattern. Used for debugging only; precedence comes from position in
	// the PatternSet.
	Source string

	// Negated re-allows a path denied by an earlier pattern (leading !).
	Negated bool

	// Anchored restricts matching to start at the project root (leading /,
	// or any / in the pattern body).
	Anchored bool

	// DirOnly restricts matching to directories and their descendants
	// (trailing /).
	DirOnly bool

	segments []segment
}

// segment is one /-separated part of a compiled pattern.
type segment struct {
	text       string // literal text or glob source (empty for **)
	glob       bool   // contains *, ? or \ and needs glob matching
	doubleStar bool   // matches zero or more whole path segments
}

// CompilePattern compiles a single pattern line. The line must already
// have comments and blank lines filtered out and trailing unescaped
// whitespace trimmed (see trimTrailingWhitespace).
func CompilePattern(raw, source string) (*Pattern, error) {
	line := raw

	// Leading ! negates; \! escapes a literal bang.
	negated := false
	if strings.HasPrefix(line, `\!`) {
		line = line[1:]
	} else if strings.HasPrefix(line, "!") {
		negated = true
		line = line[1:]
	}

	// \# escapes a literal hash after negation, so !\#foo works.
	if strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}

	dirOnly := false
	if strings.HasSuffix(line, "/") {
		dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	if line == "" {
		return nil, ErrEmptyPattern
	}

	// An odd run of trailing backslashes escapes nothing and can never
	// match.
	if bs := trailingBackslashes(line); bs%2 == 1 {
		return nil, ErrTrailingBackslash
	}

	anchored := false
	if strings.HasPrefix(line, "/") {
		anchored = true
		line = line[1:]
		if line == "" {
			return nil, ErrEmptyPattern
		}
	} else if strings.Contains(line, "/") && !strings.HasPrefix(line, "**/") {
		// A slash anywhere in the body anchors the pattern, same as
		// gitignore, except a leading **/ which floats by definition.
		anchored = true
	}

	return &Pattern{
		Raw:      raw,
		Source:   source,
		Negated:  negated,
		Anchored: anchored,
		DirOnly:  dirOnly,
		segments: splitSegments(line),
	}, nil
}

// splitSegments splits a pattern body on / and classifies each part.
func splitSegments(body string) []segment {
	parts := strings.Split(body, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}

		seg := segment{text: part}
		if part == "**" {
			seg.doubleStar = true
			seg.text = ""
		} else if strings.ContainsAny(part, `*?\`) {
			seg.glob = true
		}
		segments = append(segments, seg)
	}
	return segments
}

// trailingBackslashes counts consecutive backslashes at the end of s.
func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// trimTrailingWhitespace strips trailing spaces and tabs, honoring a
// backslash-escaped trailing space: "foo " becomes "foo" while "foo\ "
// becomes "foo " with the escape consumed.
func trimTrailingWhitespace(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	if end == len(line) {
		return line
	}

	if trailingBackslashes(line[:end])%2 == 1 && line[end] == ' ' {
		return line[:end-1] + " "
	}
	return line[:end]
}

// String renders the pattern with its source for diagnostics.
func (p *Pattern) String() string {
	return p.Raw + " (" + p.Source + ")"
}
