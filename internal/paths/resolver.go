// Package paths canonicalizes candidate file paths against a project
// root and detects paths that escape it.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:generate mockgen -source=resolver.go -destination=mock_resolver.go -package=paths

// Resolution failures. Callers must treat both as a denial: a path that
// cannot be verified to stay inside the project is never allowed.
var (
	// ErrEscapesRoot reports a path whose real location, after lexical
	// cleaning and symlink resolution, lies outside the project root.
	ErrEscapesRoot = errors.New("path escapes project root")

	// ErrUnresolvable reports a path the filesystem cannot resolve at
	// all, for example because of a symlink cycle.
	ErrUnresolvable = errors.New("path cannot be resolved")
)

// Resolver maps a candidate path onto a canonical project-relative path.
type Resolver interface {
	// Resolve canonicalizes candidate (absolute, or relative to root)
	// and returns its slash-separated path relative to root. It returns
	// ErrEscapesRoot when the real path is not a descendant of the real
	// root and ErrUnresolvable when resolution itself fails.
	Resolve(root, candidate string) (string, error)
}

// NewResolver returns a Resolver backed by the local filesystem.
func NewResolver() Resolver {
	return &fsResolver{}
}

type fsResolver struct{}

// Resolve cleans the candidate lexically, resolves symlinks on the path
// (or on its longest existing ancestor when the path does not exist yet,
// as with a Write creating a new file) and checks that the real path
// stays inside the real project root. Resolving symlinks before any
// pattern matching closes the bypass where a symlink inside the tree
// points at a protected file outside it.
func (r *fsResolver) Resolve(root, candidate string) (string, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("%w: resolving root %s: %v", ErrUnresolvable, root, err)
	}

	abs := candidate
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)

	real, err := resolveLongestExisting(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnresolvable, candidate, err)
	}

	rel, err := filepath.Rel(realRoot, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, candidate)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// resolveLongestExisting resolves symlinks on abs. When abs does not
// exist it walks up to the longest existing ancestor, resolves that, and
// re-joins the non-existent tail lexically.
func resolveLongestExisting(abs string) (string, error) {
	suffix := ""
	p := abs
	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(p)
		if parent == p {
			// Hit the filesystem root without finding anything.
			return filepath.Join(p, suffix), nil
		}
		suffix = filepath.Join(filepath.Base(p), suffix)
		p = parent
	}
}
