// Package resolve maps a Query to a deterministic, deduplicated list of
// candidate YAML files, without ever walking the whole archive tree.
package resolve

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sarahbx/must-oc/internal/coreerr"
	"github.com/sarahbx/must-oc/internal/discovery"
	"github.com/sarahbx/must-oc/internal/pathsafe"
	"github.com/sarahbx/must-oc/internal/query"
	"github.com/sarahbx/must-oc/internal/registry"
)

// Pattern distinguishes the direct (A) and aggregated (B) namespace
// layouts an archive may use.
type Pattern string

const (
	PatternA Pattern = "A"
	PatternB Pattern = "B"
)

// Candidate is one validated file the Safe YAML Reader should parse.
type Candidate struct {
	Path      string // canonical, validated path
	Pattern   Pattern
	RootIndex int
	IsList    bool
}

// reservedAllNamespace is the directory name Pattern B aggregates under and
// that must be excluded from plain namespace enumeration.
const reservedAllNamespace = "all"

// Candidates resolves q against roots, returning an ordered, validated
// candidate list plus any *coreerr.PathEscape warnings encountered along
// the way (the caller surfaces these and continues rather than failing the
// whole operation).
//
// When q.Name is set (a qualified query, used by get/describe/logs), the
// search stops at the first root that yields any candidate at all and
// returns *coreerr.NotFound if none match in any root. When q.Name is
// empty (list), every root and every namespace in scope is consulted.
func Candidates(roots []discovery.Root, q query.Query) ([]Candidate, []error, error) {
	var out []Candidate
	var warnings []error

	for idx, root := range roots {
		var rootCandidates []Candidate

		if q.Scope.Kind == query.ScopeSingleNamespace || q.Scope.Kind == query.ScopeAllNamespaces {
			namespaces, err := namespacesInScope(root, q)
			if err != nil {
				return nil, nil, err
			}
			for _, ns := range namespaces {
				c, warns := namespacedCandidates(root, idx, ns, q)
				warnings = append(warnings, warns...)
				rootCandidates = append(rootCandidates, c...)
			}
		} else {
			c, warns := clusterScopedCandidates(root, idx, q)
			warnings = append(warnings, warns...)
			rootCandidates = append(rootCandidates, c...)
		}

		out = append(out, rootCandidates...)

		if q.Name != "" && len(rootCandidates) > 0 {
			// Qualified query: short-circuit after the first root with any
			// hit at all; do not consult later roots.
			return out, warnings, nil
		}
	}

	if q.Name != "" && len(out) == 0 {
		return nil, warnings, &coreerr.NotFound{What: describeQuery(q)}
	}

	return out, warnings, nil
}

func describeQuery(q query.Query) string {
	return q.Group + "/" + q.Plural + " " + q.Name
}

// namespacesInScope returns the sorted, deduplicated set of namespaces a
// scope resolves to under root: a single name for single_namespace, or the
// union of namespaces/ and namespaces/all/namespaces/ entries (excluding
// the reserved "all" directory) for all_namespaces.
func namespacesInScope(root discovery.Root, q query.Query) ([]string, error) {
	if q.Scope.Kind == query.ScopeSingleNamespace {
		return []string{q.Scope.Namespace}, nil
	}

	seen := make(map[string]bool)
	for _, dir := range []string{
		filepath.Join(root.Path, "namespaces"),
		filepath.Join(root.Path, "namespaces", reservedAllNamespace, "namespaces"),
	} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() || e.Name() == reservedAllNamespace {
				continue
			}
			seen[e.Name()] = true
		}
	}

	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out, nil
}

func namespacedCandidates(root discovery.Root, rootIdx int, ns string, q query.Query) ([]Candidate, []error) {
	var out []Candidate
	var warnings []error

	aDir := filepath.Join(root.Path, "namespaces", ns, groupDir(q.Group), q.Plural)
	aListFile := filepath.Join(root.Path, "namespaces", ns, groupDir(q.Group), q.Plural+".yaml")
	bDir := filepath.Join(root.Path, "namespaces", reservedAllNamespace, "namespaces", ns, groupDir(q.Group), q.Plural)

	add := func(path string, pattern Pattern, isList bool) {
		validated, err := pathsafe.Validate(root.Path, path)
		if err != nil {
			if isSkippable(err) {
				if _, ok := err.(*coreerr.PathEscape); ok {
					warnings = append(warnings, err)
				}
				return
			}
			warnings = append(warnings, err)
			return
		}
		out = append(out, Candidate{Path: validated, Pattern: pattern, RootIndex: rootIdx, IsList: isList})
	}

	// Pattern A: list file, then individual file(s).
	if fileExists(aListFile) {
		add(aListFile, PatternA, true)
	}
	for _, f := range individualFiles(aDir, q.Name) {
		add(f, PatternA, false)
	}

	// Pattern B: individual file(s) only.
	for _, f := range individualFiles(bDir, q.Name) {
		add(f, PatternB, false)
	}

	return out, warnings
}

func clusterScopedCandidates(root discovery.Root, rootIdx int, q query.Query) ([]Candidate, []error) {
	var out []Candidate
	var warnings []error

	dir := filepath.Join(root.Path, "cluster-scoped-resources", groupDir(q.Group), q.Plural)
	listFile := filepath.Join(root.Path, "cluster-scoped-resources", groupDir(q.Group), q.Plural+".yaml")

	add := func(path string, isList bool) {
		validated, err := pathsafe.Validate(root.Path, path)
		if err != nil {
			if _, ok := err.(*coreerr.PathEscape); ok {
				warnings = append(warnings, err)
			}
			return
		}
		out = append(out, Candidate{Path: validated, Pattern: PatternA, RootIndex: rootIdx, IsList: isList})
	}

	if fileExists(listFile) {
		add(listFile, true)
	}
	for _, f := range individualFiles(dir, q.Name) {
		add(f, false)
	}

	return out, warnings
}

// groupDir returns the filesystem directory segment for group, applying
// the "core" sentinel.
func groupDir(group string) string {
	if group == "" {
		return registry.CoreGroup
	}
	return group
}

func fileExists(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && !info.IsDir()
}

// individualFiles returns the sorted list of "<name>.yaml" files under dir.
// If name is non-empty, only that one file is considered (and only if it
// exists); otherwise every *.yaml file in dir is returned, sorted, which is
// how an unqualified list query discovers every name under a plural
// directory without walking the rest of the archive.
func individualFiles(dir, name string) []string {
	if name != "" {
		f := filepath.Join(dir, name+".yaml")
		if fileExists(f) {
			return []string{f}
		}
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files
}

func isSkippable(err error) bool {
	switch err.(type) {
	case *coreerr.PathEscape, *coreerr.NotFound:
		return true
	default:
		return false
	}
}
