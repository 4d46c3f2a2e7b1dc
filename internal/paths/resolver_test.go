package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver()

	t.Run("relative path inside root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), nil, 0o644))

		got, err := resolver.Resolve(root, "src/main.go")

		require.NoError(t, err)
		assert.Equal(t, "src/main.go", got)
	})

	t.Run("absolute path inside root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), nil, 0o644))

		got, err := resolver.Resolve(root, filepath.Join(root, "file.txt"))

		require.NoError(t, err)
		assert.Equal(t, "file.txt", got)
	})

	t.Run("nonexistent path resolves through existing ancestor", func(t *testing.T) {
		root := t.TempDir()

		got, err := resolver.Resolve(root, "new/dir/file.txt")

		require.NoError(t, err)
		assert.Equal(t, "new/dir/file.txt", got)
	})

	t.Run("dot and dotdot segments resolve lexically", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

		got, err := resolver.Resolve(root, "a/./b/../b/file.txt")

		require.NoError(t, err)
		assert.Equal(t, "a/b/file.txt", got)
	})

	t.Run("dotdot escape is rejected", func(t *testing.T) {
		root := t.TempDir()

		_, err := resolver.Resolve(root, "../../etc/passwd")

		assert.ErrorIs(t, err, ErrEscapesRoot)
	})

	t.Run("absolute path outside root is rejected", func(t *testing.T) {
		root := t.TempDir()

		_, err := resolver.Resolve(root, "/etc/passwd")

		assert.ErrorIs(t, err, ErrEscapesRoot)
	})

	t.Run("root itself resolves to empty", func(t *testing.T) {
		root := t.TempDir()

		got, err := resolver.Resolve(root, ".")

		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("symlink pointing outside root is an escape", func(t *testing.T) {
		outside := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(outside, "target.txt"), nil, 0o644))

		root := t.TempDir()
		require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(root, "link.txt")))

		_, err := resolver.Resolve(root, "link.txt")

		assert.ErrorIs(t, err, ErrEscapesRoot)
	})

	t.Run("symlinked directory outside root is an escape", func(t *testing.T) {
		outside := t.TempDir()
		root := t.TempDir()
		require.NoError(t, os.Symlink(outside, filepath.Join(root, "vault")))

		// The file under the link does not even exist yet: the longest
		// existing ancestor (the link) still resolves outside.
		_, err := resolver.Resolve(root, "vault/new.txt")

		assert.ErrorIs(t, err, ErrEscapesRoot)
	})

	t.Run("symlink inside root resolves to its target", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "real", "file.txt"), nil, 0o644))
		require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "alias")))

		got, err := resolver.Resolve(root, "alias/file.txt")

		require.NoError(t, err)
		assert.Equal(t, "real/file.txt", got)
	})

	t.Run("symlink cycle is unresolvable", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Symlink(filepath.Join(root, "loop"), filepath.Join(root, "loop")))

		_, err := resolver.Resolve(root, "loop/file.txt")

		assert.ErrorIs(t, err, ErrUnresolvable)
	})

	t.Run("missing root is unresolvable", func(t *testing.T) {
		_, err := resolver.Resolve(filepath.Join(t.TempDir(), "gone"), "file.txt")

		assert.ErrorIs(t, err, ErrUnresolvable)
	})
}
