// Package registry implements the Type Registry: the persisted,
// additively-maintained mapping from user-facing resource names and
// aliases to (api_group, plural) pairs, plus the cluster-scoped set.
package registry

import (
	"sort"
	"strings"

	"github.com/sarahbx/must-oc/internal/coreerr"
)

// CoreGroup is the sentinel that denotes both the Kubernetes core API
// group and the literal "core" filesystem directory segment.
const CoreGroup = "core"

// KindEntry is one record in the Type Registry.
type KindEntry struct {
	Plural   string   `yaml:"plural"`
	APIGroup string   `yaml:"api_group"`
	Aliases  []string `yaml:"aliases"`
}

// irregularPlurals covers the well-known irregular cases across the
// core/apps/batch/networking API groups. Anything not listed here falls
// back to the strip-trailing-s/es heuristic, a known display-only
// limitation.
var irregularPlurals = map[string]string{
	"policies":              "Policy",
	"ingresses":              "Ingress",
	"endpoints":              "Endpoints",
	"statuses":               "Status",
	"endpointslices":         "EndpointSlice",
	"classes":                "Class",
	"proxies":                "Proxy",
	"quotas":                 "Quota",
	"identities":             "Identity",
	"securitycontextconstraints": "SecurityContextConstraints",
}

// Registry is the process-wide, load-once, read-many Type Registry. The
// zero value is an empty registry: missing files are treated as empty.
type Registry struct {
	kinds         map[string]KindEntry // plural -> entry
	aliasToPlural map[string]string    // alias  -> plural
	clusterScoped map[string]bool      // plural -> member of cluster-scoped set
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		kinds:         make(map[string]KindEntry),
		aliasToPlural: make(map[string]string),
		clusterScoped: make(map[string]bool),
	}
}

// FromEntries builds a Registry from an explicit kind table and
// cluster-scoped set, validating the load-time invariants: every alias
// resolves to exactly one kind, no alias is claimed by two kinds, and
// every cluster-scoped member has a matching kind.
func FromEntries(kinds []KindEntry, clusterScoped []string) (*Registry, error) {
	r := New()

	for _, k := range kinds {
		if _, exists := r.kinds[k.Plural]; exists {
			return nil, &coreerr.ConfigConflict{Reason: "duplicate plural " + k.Plural}
		}
		r.kinds[k.Plural] = k
		for _, alias := range k.Aliases {
			if owner, exists := r.aliasToPlural[alias]; exists {
				return nil, &coreerr.ConfigConflict{
					Reason: "alias " + alias + " claimed by both " + owner + " and " + k.Plural,
				}
			}
			r.aliasToPlural[alias] = k.Plural
		}
	}

	for _, plural := range clusterScoped {
		if _, exists := r.kinds[plural]; !exists {
			return nil, &coreerr.ConfigConflict{
				Reason: "cluster-scoped entry " + plural + " has no matching kind",
			}
		}
		r.clusterScoped[plural] = true
	}

	return r, nil
}

// Resolve maps a user-typed token to (group, plural). token may be a plural
// itself or a registered alias. Fails with *coreerr.UnknownKind otherwise.
func (r *Registry) Resolve(token string) (group, plural string, err error) {
	token = strings.ToLower(token)
	if k, ok := r.kinds[token]; ok {
		return k.APIGroup, k.Plural, nil
	}
	if plural, ok := r.aliasToPlural[token]; ok {
		return r.kinds[plural].APIGroup, plural, nil
	}
	return "", "", &coreerr.UnknownKind{Token: token}
}

// IsClusterScoped reports whether plural is a member of the cluster-scoped
// set.
func (r *Registry) IsClusterScoped(plural string) bool {
	return r.clusterScoped[plural]
}

// KindOf returns the display PascalCase kind name for plural, using the
// irregular-plural table first and otherwise stripping a trailing "es" or
// "s" and capitalizing.
func KindOf(plural string) string {
	if k, ok := irregularPlurals[plural]; ok {
		return k
	}
	stem := plural
	switch {
	case strings.HasSuffix(plural, "ses"), strings.HasSuffix(plural, "xes"),
		strings.HasSuffix(plural, "ches"), strings.HasSuffix(plural, "shes"):
		stem = strings.TrimSuffix(plural, "es")
	case strings.HasSuffix(plural, "s"):
		stem = strings.TrimSuffix(plural, "s")
	}
	if stem == "" {
		return stem
	}
	return strings.ToUpper(stem[:1]) + stem[1:]
}

// Entries returns the kind table sorted by plural (aliases sorted too), so
// the persisted file has a stable key order and diffs stay clean.
func (r *Registry) Entries() []KindEntry {
	out := make([]KindEntry, 0, len(r.kinds))
	for _, k := range r.kinds {
		sortedAliases := append([]string(nil), k.Aliases...)
		sort.Strings(sortedAliases)
		out = append(out, KindEntry{Plural: k.Plural, APIGroup: k.APIGroup, Aliases: sortedAliases})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plural < out[j].Plural })
	return out
}

// ClusterScoped returns the cluster-scoped set as a sorted slice.
func (r *Registry) ClusterScoped() []string {
	out := make([]string, 0, len(r.clusterScoped))
	for p := range r.clusterScoped {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasKind reports whether plural is already known to the registry.
func (r *Registry) HasKind(plural string) bool {
	_, ok := r.kinds[plural]
	return ok
}

// KindEntry returns the entry for plural, if known.
func (r *Registry) KindEntry(plural string) (KindEntry, bool) {
	k, ok := r.kinds[plural]
	return k, ok
}

// insertNew adds a brand-new kind entry. Callers (the Updater) must only
// call this for a plural that HasKind reports false for — api_group and
// aliases of an existing entry are never mutated.
func (r *Registry) insertNew(plural, group string) {
	r.kinds[plural] = KindEntry{Plural: plural, APIGroup: group, Aliases: nil}
}

// addClusterScoped appends plural to the cluster-scoped set if absent. The
// caller must ensure plural already has a kind entry.
func (r *Registry) addClusterScoped(plural string) {
	r.clusterScoped[plural] = true
}
