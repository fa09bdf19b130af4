// Package walker discovers new resource kinds and cluster-scoped kinds by
// walking an archive's directory evidence, and performs the
// strictly-additive merge into the Type Registry.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sarahbx/must-oc/internal/discovery"
	"github.com/sarahbx/must-oc/internal/registry"
)

// evidenceKey identifies one (group, plural) pair discovered under a root.
type evidenceKey struct {
	group  string
	plural string
}

// Walk enumerates every (group, plural) pair evidenced under root:
// directories at namespaces/<ns>/<group>/<plural>/ (skipping
// ns=="all"), namespaces/all/namespaces/<ns>/<group>/<plural>/, and
// cluster-scoped-resources/<group>/<plural>/, each counting as evidence
// when the inner directory is non-empty or a matching list file exists.
// cluster-scoped-resources entries additionally contribute their plural to
// the discovered cluster-scoped set.
func Walk(root discovery.Root) (kinds []registry.Discovered, clusterScoped []string) {
	found := make(map[evidenceKey]bool)
	clusterFound := make(map[string]bool)

	walkNamespaceDir(filepath.Join(root.Path, "namespaces"), found, true)
	walkNamespaceDir(filepath.Join(root.Path, "namespaces", "all", "namespaces"), found, false)
	walkClusterScopedDir(filepath.Join(root.Path, "cluster-scoped-resources"), found, clusterFound)

	for k := range found {
		kinds = append(kinds, registry.Discovered{Group: k.group, Plural: k.plural})
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i].Group != kinds[j].Group {
			return kinds[i].Group < kinds[j].Group
		}
		return kinds[i].Plural < kinds[j].Plural
	})

	for p := range clusterFound {
		clusterScoped = append(clusterScoped, p)
	}
	sort.Strings(clusterScoped)

	return kinds, clusterScoped
}

// walkNamespaceDir walks <base>/<ns>/<group>/<plural>(/...|.yaml), adding
// evidence for every non-empty plural directory or existing list file.
// When skipAllNamespace is true, the reserved "all" namespace directory
// (which holds the Pattern B aggregation, walked separately) is skipped.
func walkNamespaceDir(base string, found map[evidenceKey]bool, skipAllNamespace bool) {
	namespaces, err := os.ReadDir(base)
	if err != nil {
		return
	}
	for _, nsEntry := range namespaces {
		if !nsEntry.IsDir() {
			continue
		}
		if skipAllNamespace && nsEntry.Name() == "all" {
			continue
		}
		nsDir := filepath.Join(base, nsEntry.Name())

		groups, err := os.ReadDir(nsDir)
		if err != nil {
			continue
		}
		for _, groupEntry := range groups {
			if !groupEntry.IsDir() {
				continue
			}
			group := groupEntry.Name()
			groupDir := filepath.Join(nsDir, group)
			collectPlurals(groupDir, group, found)
		}
	}
}

func walkClusterScopedDir(base string, found map[evidenceKey]bool, clusterFound map[string]bool) {
	groups, err := os.ReadDir(base)
	if err != nil {
		return
	}
	for _, groupEntry := range groups {
		if !groupEntry.IsDir() {
			continue
		}
		group := groupEntry.Name()
		groupDir := filepath.Join(base, group)

		plurals, err := os.ReadDir(groupDir)
		if err != nil {
			continue
		}
		for _, pluralEntry := range plurals {
			plural, isDir := pluralName(pluralEntry)
			if plural == "" {
				continue
			}
			if isDir && dirNonEmpty(filepath.Join(groupDir, pluralEntry.Name())) {
				found[evidenceKey{group: group, plural: plural}] = true
				clusterFound[plural] = true
			} else if !isDir {
				found[evidenceKey{group: group, plural: plural}] = true
				clusterFound[plural] = true
			}
		}
	}
}

// collectPlurals records evidence for every plural directory (non-empty)
// or list file directly under groupDir.
func collectPlurals(groupDir, group string, found map[evidenceKey]bool) {
	entries, err := os.ReadDir(groupDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		plural, isDir := pluralName(e)
		if plural == "" {
			continue
		}
		if isDir {
			if dirNonEmpty(filepath.Join(groupDir, e.Name())) {
				found[evidenceKey{group: group, plural: plural}] = true
			}
		} else {
			found[evidenceKey{group: group, plural: plural}] = true
		}
	}
}

// pluralName extracts the plural name from a directory entry, whether it is
// a plural/ directory or a plural.yaml list file.
func pluralName(e os.DirEntry) (plural string, isDir bool) {
	if e.IsDir() {
		return e.Name(), true
	}
	if strings.HasSuffix(e.Name(), ".yaml") {
		return strings.TrimSuffix(e.Name(), ".yaml"), false
	}
	return "", false
}

func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// Summary is the two-integers-and-two-name-lists report an update-types
// run produces.
type Summary struct {
	KindsAdded         int
	ClusterScopedAdded int
	AddedKindNames     []string
	AddedClusterScopedNames []string
	Conflicts          []string
}

// Update walks every root and additively merges the evidence into reg,
// returning a Summary of what changed.
func Update(reg *registry.Registry, roots []discovery.Root) Summary {
	var summary Summary

	for _, root := range roots {
		kinds, clusterScoped := Walk(root)
		result := reg.MergeAdditive(kinds, clusterScoped)
		summary.AddedKindNames = append(summary.AddedKindNames, result.AddedKinds...)
		summary.AddedClusterScopedNames = append(summary.AddedClusterScopedNames, result.AddedClusterScoped...)
		summary.Conflicts = append(summary.Conflicts, result.Conflicts...)
	}

	sort.Strings(summary.AddedKindNames)
	sort.Strings(summary.AddedClusterScopedNames)
	summary.KindsAdded = len(summary.AddedKindNames)
	summary.ClusterScopedAdded = len(summary.AddedClusterScopedNames)
	return summary
}
