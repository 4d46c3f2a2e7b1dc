package ignore

import (
	"os"
	"path/filepath"
	"strings"
)

// Source names for patterns that do not come from an ignore file.
const (
	SourceDefaults = "built-in defaults"
	SourceConfig   = "project config"
)

// ConventionFiles are the recognized per-tool ignore file names, in fixed
// precedence order from lowest to highest: a later file's patterns are
// appended after an earlier file's and therefore win ties. Each entry is
// just a name and a slot feeding the shared compiler; supporting another
// tool's convention is one more entry here.
var ConventionFiles = []string{
	".aiignore",
	".aiexclude",
	".codeiumignore",
	".cursorignore",
	".copilotignore",
	".agentignore",
}

// Warning describes a non-fatal problem found while loading patterns: an
// unreadable source or a malformed line. Loading always produces a usable
// (possibly smaller) PatternSet alongside its warnings.
type Warning struct {
	Source  string
	Line    int
	Pattern string
	Message string
}

// LoadOptions configures a pattern load.
type LoadOptions struct {
	// DefaultPatterns are the built-in protections, compiled at the lowest
	// precedence. Nil disables them; most callers pass
	// DefaultProtectedPatterns() unless the project config opts out.
	DefaultPatterns []string

	// ExtraPatterns come from the project config and are appended at the
	// highest precedence, after every ignore file.
	ExtraPatterns []string
}

// LoadPatternSet reads every recognized ignore file under root and merges
// it with the default and extra patterns into one flat, precedence-ordered
// PatternSet. Missing files contribute nothing; unreadable files and
// malformed lines degrade to warnings.
func LoadPatternSet(root string, opts LoadOptions) (*PatternSet, []Warning) {
	var patterns []*Pattern
	var warnings []Warning

	appendLines := func(source string, lines []string) {
		for i, line := range lines {
			line = trimTrailingWhitespace(line)
			if line == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}

			p, err := CompilePattern(line, source)
			if err != nil {
				warnings = append(warnings, Warning{
					Source:  source,
					Line:    i + 1,
					Pattern: line,
					Message: err.Error(),
				})
				continue
			}
			patterns = append(patterns, p)
		}
	}

	appendLines(SourceDefaults, opts.DefaultPatterns)

	for _, name := range ConventionFiles {
		content, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			if !os.IsNotExist(err) {
				warnings = append(warnings, Warning{
					Source:  name,
					Message: "cannot read ignore file: " + err.Error(),
				})
			}
			continue
		}
		appendLines(name, splitLines(content))
	}

	appendLines(SourceConfig, opts.ExtraPatterns)

	return NewPatternSet(patterns...), warnings
}

// splitLines splits file content into lines, tolerating a UTF-8 BOM and
// CRLF or bare-CR line endings.
func splitLines(content []byte) []string {
	s := string(content)
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
