// Package pathsafe proves a candidate path resolves to a location inside
// its archive root before any other component is allowed to open it.
package pathsafe

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarahbx/must-oc/internal/coreerr"
)

// Validate resolves candidate (which need not exist) against root and
// returns the canonical path, provided it is a descendant of root's
// canonical form.
//
// If candidate does not exist, Validate still resolves as far as possible
// (to catch escape through a symlinked parent directory) and then returns
// *coreerr.NotFound for the missing leaf — callers distinguish this from a
// genuine *coreerr.PathEscape.
func Validate(root, candidate string) (string, error) {
	canonRoot, err := canonicalize(root)
	if err != nil {
		return "", err
	}

	canonCandidate, missingLeaf, err := resolveAsFarAsPossible(candidate)
	if err != nil {
		return "", err
	}

	if !isDescendant(canonRoot, canonCandidate) {
		return "", &coreerr.PathEscape{Path: candidate, Root: root}
	}

	if missingLeaf {
		return "", &coreerr.NotFound{What: candidate}
	}

	return canonCandidate, nil
}

// canonicalize resolves every symlink in p and cleans the result. p must
// exist.
func canonicalize(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// resolveAsFarAsPossible canonicalizes p component by component. If the
// full path exists, it behaves like canonicalize. If the leaf is missing
// but its parent chain exists, it canonicalizes the parent and rejoins the
// leaf name, so a symlink escape higher up the tree is still caught even
// though the file itself is absent.
func resolveAsFarAsPossible(p string) (canon string, missingLeaf bool, err error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false, err
	}
	abs = filepath.Clean(abs)

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return filepath.Clean(resolved), false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}

	// Leaf itself is missing: resolve the parent directory chain instead,
	// walking upward until we find an ancestor that exists.
	dir := filepath.Dir(abs)
	leaf := filepath.Base(abs)
	tail := []string{leaf}

	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			full := filepath.Join(append([]string{resolved}, tail...)...)
			return filepath.Clean(full), true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding an existing ancestor.
			return filepath.Clean(abs), true, nil
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		dir = parent
	}
}

// isDescendant reports whether candidate is root itself or a path strictly
// beneath it, comparing cleaned, canonical forms with a component-wise
// prefix test (not a bare string prefix, which would wrongly accept
// "/archive-evil" as a descendant of "/archive").
func isDescendant(root, candidate string) bool {
	if root == candidate {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(candidate, strings.TrimSuffix(root, sep)+sep)
}
