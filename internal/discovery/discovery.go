// Package discovery turns a list of user-supplied directories into a
// deterministic, deduplicated list of archive roots.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/sarahbx/must-oc/internal/coreerr"
)

// Root is an archive root: a directory that directly contains namespaces/
// or cluster-scoped-resources/.
type Root struct {
	// Path is the absolute, cleaned path to the root. Symlinks in it are not
	// resolved, so two inputs that reach the same directory through
	// different symlinks yield two roots.
	Path string
	// Key is the ordering key: the directory's own name, used to break ties
	// lexicographically within one user-supplied input directory.
	Key string
}

const (
	namespacesDir    = "namespaces"
	clusterScopedDir = "cluster-scoped-resources"
)

// Discover returns an ordered, deduplicated list of archive roots found
// under dirs:
//
//   - for each input directory, an immediate child is a root iff it
//     directly contains namespaces/ or cluster-scoped-resources/
//   - additionally, one level deeper, a directory is a nested root iff it
//     contains namespaces/; recursion goes no deeper than that, so a
//     producer nested three levels below an input directory goes
//     undiscovered
//   - ordering is by original argument order, then lexicographic child
//     name; first-seen wins on duplicates
//
// Discover fails with *coreerr.NoArchive if no roots are found anywhere.
func Discover(dirs []string) ([]Root, error) {
	seen := make(map[string]bool)
	var roots []Root

	for _, dir := range dirs {
		found, err := discoverUnder(dir)
		if err != nil {
			return nil, err
		}
		sort.Slice(found, func(i, j int) bool { return found[i].Key < found[j].Key })
		for _, r := range found {
			if seen[r.Path] {
				continue
			}
			seen[r.Path] = true
			roots = append(roots, r)
		}
	}

	if len(roots) == 0 {
		return nil, &coreerr.NoArchive{Dirs: dirs}
	}
	return roots, nil
}

func discoverUnder(dir string) ([]Root, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var roots []Root
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		child := filepath.Join(dir, e.Name())

		if isArchiveRoot(child) {
			canon, err := filepath.Abs(child)
			if err != nil {
				return nil, err
			}
			roots = append(roots, Root{Path: filepath.Clean(canon), Key: e.Name()})
			continue
		}

		nested, err := discoverNestedUnder(child)
		if err != nil {
			return nil, err
		}
		roots = append(roots, nested...)
	}
	return roots, nil
}

// discoverNestedUnder looks for nested roots one level below dir:
// directories that themselves contain namespaces/ (a producer embedding a
// sub-archive). Unlike discoverUnder's top level, a nested root does not
// need cluster-scoped-resources/ — the nested case is defined solely by
// the presence of namespaces/. This is the single nested pass; it does not
// recurse further, so dir's own children are the deepest level checked.
func discoverNestedUnder(dir string) ([]Root, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var roots []Root
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		child := filepath.Join(dir, e.Name())
		if hasDir(child, namespacesDir) {
			canon, err := filepath.Abs(child)
			if err != nil {
				return nil, err
			}
			roots = append(roots, Root{Path: filepath.Clean(canon), Key: filepath.Join(filepath.Base(dir), e.Name())})
		}
	}
	return roots, nil
}

func isArchiveRoot(dir string) bool {
	return hasDir(dir, namespacesDir) || hasDir(dir, clusterScopedDir)
}

func hasDir(parent, name string) bool {
	info, err := os.Stat(filepath.Join(parent, name))
	return err == nil && info.IsDir()
}
