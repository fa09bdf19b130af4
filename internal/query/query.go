// Package query models the Query and Log Handle data types must-oc's
// front-end operations take as arguments.
package query

import "k8s.io/apimachinery/pkg/runtime/schema"

// ScopeKind discriminates the three Query.Scope variants.
type ScopeKind int

const (
	// ScopeSingleNamespace restricts a query to one namespace.
	ScopeSingleNamespace ScopeKind = iota
	// ScopeAllNamespaces spans every namespace an archive root knows about.
	ScopeAllNamespaces
	// ScopeCluster restricts a query to cluster-scoped resources.
	ScopeCluster
)

// Scope is one of single_namespace(ns), all_namespaces, or cluster.
type Scope struct {
	Kind      ScopeKind
	Namespace string // meaningful only when Kind == ScopeSingleNamespace
}

func SingleNamespace(ns string) Scope { return Scope{Kind: ScopeSingleNamespace, Namespace: ns} }
func AllNamespaces() Scope            { return Scope{Kind: ScopeAllNamespaces} }
func Cluster() Scope                  { return Scope{Kind: ScopeCluster} }

// Query is (api_group, plural, scope, name?). Group and Plural reuse
// schema.GroupVersionResource's vocabulary for the (group, resource) pair
// rather than a bespoke struct, the same way discovery results get carried
// elsewhere in the Kubernetes ecosystem.
type Query struct {
	Group  string
	Plural string
	Scope  Scope
	Name   string // empty means "unqualified" (list all of this kind in scope)
}

// GVR returns the (group, "", plural) GroupVersionResource for Q. Version is
// always empty: must-gather archives are not laid out per API version, only
// per (group, plural).
func (q Query) GVR() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: q.Group, Resource: q.Plural}
}

// LogVariant selects between the current and previous container log.
type LogVariant int

const (
	LogCurrent LogVariant = iota
	LogPrevious
)

// LogHandle is (archive_root, namespace, pod_name, container_name, variant),
// resolved by the core to a single validated file path. Container may be
// empty, meaning "default it if the pod has exactly one, else fail with
// AmbiguousContainer".
type LogHandle struct {
	ArchiveRoot string
	Namespace   string
	Pod         string
	Container   string
	Variant     LogVariant
}
