package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeIgnoreFile is a test helper that writes one ignore file at root.
func writeIgnoreFile(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

// rawPatterns flattens a set into its raw pattern lines.
func rawPatterns(set *PatternSet) []string {
	out := make([]string, 0, set.Len())
	for _, p := range set.Patterns() {
		out = append(out, p.Raw)
	}
	return out
}

func TestLoadPatternSet(t *testing.T) {
	t.Run("no sources yields empty set", func(t *testing.T) {
		set, warnings := LoadPatternSet(t.TempDir(), LoadOptions{})

		assert.Equal(t, 0, set.Len())
		assert.Empty(t, warnings)
	})

	t.Run("defaults come first, config extras last", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".cursorignore", "cursor-secret\n")

		set, warnings := LoadPatternSet(root, LoadOptions{
			DefaultPatterns: []string{".env", "*.pem"},
			ExtraPatterns:   []string{"internal-secrets/"},
		})

		require.Empty(t, warnings)
		assert.Equal(t, []string{".env", "*.pem", "cursor-secret", "internal-secrets/"}, rawPatterns(set))
		assert.Equal(t, SourceDefaults, set.Patterns()[0].Source)
		assert.Equal(t, ".cursorignore", set.Patterns()[2].Source)
		assert.Equal(t, SourceConfig, set.Patterns()[3].Source)
	})

	t.Run("convention files merge in fixed precedence order", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".agentignore", "from-agent\n")
		writeIgnoreFile(t, root, ".aiignore", "from-ai\n")
		writeIgnoreFile(t, root, ".cursorignore", "from-cursor\n")

		set, warnings := LoadPatternSet(root, LoadOptions{})

		require.Empty(t, warnings)
		assert.Equal(t, []string{"from-ai", "from-cursor", "from-agent"}, rawPatterns(set))
	})

	t.Run("comments and blank lines are dropped", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".aiignore", "# header\n\n  \t\nsecret.txt\n  # indented comment\n")

		set, warnings := LoadPatternSet(root, LoadOptions{})

		require.Empty(t, warnings)
		assert.Equal(t, []string{"secret.txt"}, rawPatterns(set))
	})

	t.Run("trailing whitespace trimmed, escaped space kept", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".aiignore", "plain   \nspaced\\ \n")

		set, warnings := LoadPatternSet(root, LoadOptions{})

		require.Empty(t, warnings)
		assert.Equal(t, []string{"plain", "spaced "}, rawPatterns(set))
	})

	t.Run("crlf content parses", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".aiignore", "one\r\ntwo\r\n")

		set, warnings := LoadPatternSet(root, LoadOptions{})

		require.Empty(t, warnings)
		assert.Equal(t, []string{"one", "two"}, rawPatterns(set))
	})

	t.Run("malformed line warns and is skipped", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".aiignore", "good\n!\nbad\\\nalso-good\n")

		set, warnings := LoadPatternSet(root, LoadOptions{})

		assert.Equal(t, []string{"good", "also-good"}, rawPatterns(set))
		require.Len(t, warnings, 2)
		assert.Equal(t, ".aiignore", warnings[0].Source)
		assert.Equal(t, 2, warnings[0].Line)
		assert.Equal(t, 3, warnings[1].Line)
	})

	t.Run("unreadable source degrades to warning", func(t *testing.T) {
		root := t.TempDir()
		// A directory with an ignore-file name fails the read without
		// being missing.
		require.NoError(t, os.Mkdir(filepath.Join(root, ".aiignore"), 0o755))
		writeIgnoreFile(t, root, ".cursorignore", "still-loaded\n")

		set, warnings := LoadPatternSet(root, LoadOptions{})

		assert.Equal(t, []string{"still-loaded"}, rawPatterns(set))
		require.Len(t, warnings, 1)
		assert.Equal(t, ".aiignore", warnings[0].Source)
		assert.Contains(t, warnings[0].Message, "cannot read ignore file")
	})

	t.Run("defaults deny env but not source files", func(t *testing.T) {
		set, warnings := LoadPatternSet(t.TempDir(), LoadOptions{
			DefaultPatterns: DefaultProtectedPatterns(),
		})
		require.Empty(t, warnings)

		assert.True(t, set.Evaluate(".env").Denied)
		assert.True(t, set.Evaluate(".aws/credentials").Denied)
		assert.False(t, set.Evaluate("src/index.ts").Denied)
	})

	t.Run("project negation overrides defaults", func(t *testing.T) {
		root := t.TempDir()
		writeIgnoreFile(t, root, ".aiignore", "!.env\n")

		set, warnings := LoadPatternSet(root, LoadOptions{
			DefaultPatterns: DefaultProtectedPatterns(),
		})
		require.Empty(t, warnings)

		got := set.Evaluate(".env")
		assert.False(t, got.Denied)
		require.NotNil(t, got.Matched)
		assert.Equal(t, "!.env", got.Matched.Raw)
	})
}
