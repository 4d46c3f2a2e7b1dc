package ignore

// PatternSet is an ordered sequence of compiled patterns, merged from all
// sources in precedence order. Position in the sequence is the sole
// determinant of precedence; no source is inherently stronger than
// another. A PatternSet is immutable after construction and safe for
// concurrent readers; reloading builds a new set and swaps the reference.
type PatternSet struct {
	patterns []*Pattern
}

// NewPatternSet builds a set from patterns in evaluation order.
func NewPatternSet(patterns ...*Pattern) *PatternSet {
	return &PatternSet{patterns: patterns}
}

// Patterns returns the patterns in evaluation order. The returned slice
// must not be modified.
func (s *PatternSet) Patterns() []*Pattern {
	return s.patterns
}

// Len returns the number of patterns in the set.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

// Evaluation is the outcome of evaluating one path against a PatternSet.
type Evaluation struct {
	// Denied reports whether access to the path should be denied.
	Denied bool

	// Matched is the pattern that determined the outcome, nil when no
	// pattern matched (which always means allow).
	Matched *Pattern
}

// Evaluate runs the last-match-wins fold over the set: every pattern is
// tried in order, the latest match determines the verdict. A final
// non-negated match denies; a final negated match, or no match at all,
// allows. This is single-file gitignore cascade semantics extended across
// the merged sources.
func (s *PatternSet) Evaluate(relPath string) Evaluation {
	path := splitPath(relPath)
	budget := &matchBudget{}

	var matched *Pattern
	for _, p := range s.patterns {
		if p.match(path, budget) {
			matched = p
		}
	}

	return Evaluation{
		Denied:  matched != nil && !matched.Negated,
		Matched: matched,
	}
}
