package ignore

import "strings"

// maxMatchIterations bounds backtracking across one PatternSet evaluation
// so a pathological pattern (for example *a*a*a*a*b against a long name)
// cannot spin. The budget is shared by segment-level ** expansion and
// character-level glob matching.
const maxMatchIterations = 10000

// matchBudget tracks the remaining backtracking budget for one evaluation.
type matchBudget struct {
	iterations int
}

func (b *matchBudget) tick() bool {
	b.iterations++
	return b.iterations <= maxMatchIterations
}

// Match reports whether the pattern matches the given project-relative
// slash path. It allocates a fresh backtracking budget; PatternSet
// evaluation shares one budget across all patterns instead.
func (p *Pattern) Match(relPath string) bool {
	return p.match(splitPath(relPath), &matchBudget{})
}

// match evaluates the pattern against pre-split path segments.
//
// Directory semantics: a DirOnly pattern matches only strict descendants
// of the named directory, never a same-named file. A plain pattern
// matches the path exactly, or as a directory prefix of a deeper path
// (a matched directory covers everything under it, as in gitignore).
func (p *Pattern) match(path []string, budget *matchBudget) bool {
	if len(path) == 0 || len(p.segments) == 0 {
		return false
	}

	if p.Anchored {
		if !p.DirOnly && matchExact(p.segments, path, budget) {
			return true
		}
		return matchPrefix(p.segments, path, budget)
	}

	// Floating patterns may start at any depth.
	for i := 0; i < len(path); i++ {
		if !budget.tick() {
			return false
		}
		if !p.DirOnly && matchExact(p.segments, path[i:], budget) {
			return true
		}
		if matchPrefix(p.segments, path[i:], budget) {
			return true
		}
	}
	return false
}

// matchExact requires the pattern to consume the whole path.
func matchExact(pattern []segment, path []string, budget *matchBudget) bool {
	if !budget.tick() {
		return false
	}

	if len(pattern) == 0 {
		return len(path) == 0
	}

	seg := pattern[0]
	if seg.doubleStar {
		for i := 0; i <= len(path); i++ {
			if matchExact(pattern[1:], path[i:], budget) {
				return true
			}
			if !budget.tick() {
				return false
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}
	if !matchSegment(seg, path[0], budget) {
		return false
	}
	return matchExact(pattern[1:], path[1:], budget)
}

// matchPrefix requires the pattern to consume a strict prefix of the
// path, leaving at least one segment: the path must be inside the
// matched directory, not the directory itself.
func matchPrefix(pattern []segment, path []string, budget *matchBudget) bool {
	if !budget.tick() {
		return false
	}

	if len(pattern) == 0 {
		return len(path) > 0
	}

	seg := pattern[0]
	if seg.doubleStar {
		for i := 0; i <= len(path); i++ {
			if matchPrefix(pattern[1:], path[i:], budget) {
				return true
			}
			if !budget.tick() {
				return false
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}
	if !matchSegment(seg, path[0], budget) {
		return false
	}
	return matchPrefix(pattern[1:], path[1:], budget)
}

// matchSegment matches one pattern segment against one path segment.
func matchSegment(seg segment, name string, budget *matchBudget) bool {
	if !seg.glob {
		return seg.text == name
	}
	return matchGlob(seg.text, name, budget)
}

// matchGlob matches a single-segment glob: * is any run of characters,
// ? is exactly one character, \ escapes the next character. Neither
// wildcard crosses a / because segments are matched one at a time.
func matchGlob(pattern, name string, budget *matchBudget) bool {
	if pattern == "*" {
		return true
	}

	// Single-star prefix/suffix forms are common enough to special-case.
	if !strings.ContainsAny(pattern, `?\`) && strings.Count(pattern, "*") == 1 {
		if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
			return strings.HasSuffix(name, suffix)
		}
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			return strings.HasPrefix(name, prefix)
		}
	}

	return matchGlobRecursive(pattern, name, budget)
}

func matchGlobRecursive(pattern, name string, budget *matchBudget) bool {
	for len(pattern) > 0 {
		if !budget.tick() {
			return false
		}

		switch pattern[0] {
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchGlobRecursive(pattern, name[i:], budget) {
					return true
				}
				if !budget.tick() {
					return false
				}
			}
			return false

		case '?':
			if len(name) == 0 {
				return false
			}
			pattern = pattern[1:]
			name = name[1:]
			continue

		case '\\':
			if len(pattern) > 1 {
				pattern = pattern[1:]
			}
		}

		if len(name) == 0 || pattern[0] != name[0] {
			return false
		}
		pattern = pattern[1:]
		name = name[1:]
	}
	return len(name) == 0
}

// splitPath splits a slash path into non-empty segments.
func splitPath(relPath string) []string {
	parts := strings.Split(relPath, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
