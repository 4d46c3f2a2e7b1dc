package hooks

import (
	"errors"
	"fmt"

	"github.com/michael-freling/agent-gate/internal/ignore"
	"github.com/michael-freling/agent-gate/internal/paths"
)

// coveredTools are the file-touching tool kinds subject to gating. Any
// other tool kind passes through without pattern evaluation.
var coveredTools = map[string]struct{}{
	"Read":      {},
	"Edit":      {},
	"MultiEdit": {},
	"Write":     {},
}

// fileAccessRule denies file-touching tool calls whose target path is
// protected by the merged ignore patterns, or escapes the project root.
type fileAccessRule struct {
	root     string
	resolver paths.Resolver
	patterns *ignore.PatternSet
}

// NewFileAccessRule creates the file access gate for one project root.
// The pattern set is built once per invocation by the caller and is
// read-only here; rebuilding on changed ignore files means constructing
// a new rule around a new set, never mutating this one.
func NewFileAccessRule(root string, resolver paths.Resolver, patterns *ignore.PatternSet) Rule {
	return &fileAccessRule{
		root:     root,
		resolver: resolver,
		patterns: patterns,
	}
}

// Name returns the unique identifier for this rule.
func (r *fileAccessRule) Name() string {
	return "file-access"
}

// Evaluate resolves the target path and folds it over the pattern set.
// The containment check dominates pattern evaluation: a path outside the
// project root is denied no matter what the patterns say.
func (r *fileAccessRule) Evaluate(input *ToolInput) (*RuleResult, error) {
	if _, ok := coveredTools[input.ToolName]; !ok {
		return NewAllowedResult(), nil
	}

	candidate, ok := input.FilePath()
	if !ok {
		return NewAllowedResult(), nil
	}

	rel, err := r.resolver.Resolve(r.root, candidate)
	switch {
	case errors.Is(err, paths.ErrEscapesRoot):
		return NewDeniedResult(r.Name(), fmt.Sprintf("%s: path escapes the project root", candidate)), nil
	case err != nil:
		// Unresolvable paths (for example symlink cycles) deny: the gate
		// never allows access to a location it could not verify.
		return NewDeniedResult(r.Name(), fmt.Sprintf("%s: path could not be resolved", candidate)), nil
	}

	eval := r.patterns.Evaluate(rel)
	if eval.Denied {
		return NewDeniedResult(r.Name(), fmt.Sprintf("%s is protected by pattern %q (%s)", rel, eval.Matched.Raw, eval.Matched.Source)), nil
	}
	return NewAllowedResult(), nil
}
