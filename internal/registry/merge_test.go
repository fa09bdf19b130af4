package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeAdditiveInsertsNewKinds(t *testing.T) {
	r := New()
	result := r.MergeAdditive([]Discovered{
		{Group: CoreGroup, Plural: "pods"},
		{Group: "apps", Plural: "deployments"},
	}, nil)

	assert.Equal(t, []string{"deployments", "pods"}, result.AddedKinds)
	assert.True(t, r.HasKind("pods"))
	assert.True(t, r.HasKind("deployments"))
}

func TestMergeAdditiveLeavesExistingAliasesUntouched(t *testing.T) {
	r, err := FromEntries([]KindEntry{
		{Plural: "pods", APIGroup: CoreGroup, Aliases: []string{"po"}},
	}, nil)
	require.NoError(t, err)

	result := r.MergeAdditive([]Discovered{{Group: CoreGroup, Plural: "pods"}}, nil)
	assert.Empty(t, result.AddedKinds)

	entry, _ := r.KindEntry("pods")
	assert.Equal(t, []string{"po"}, entry.Aliases)
}

func TestMergeAdditiveGroupMismatchIsConflictNotOverwrite(t *testing.T) {
	r, err := FromEntries([]KindEntry{{Plural: "builds", APIGroup: "build.openshift.io"}}, nil)
	require.NoError(t, err)

	result := r.MergeAdditive([]Discovered{{Group: "build.k8s.io", Plural: "builds"}}, nil)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "builds")

	entry, _ := r.KindEntry("builds")
	assert.Equal(t, "build.openshift.io", entry.APIGroup, "existing api_group must survive a conflicting merge")
}

func TestMergeAdditiveClusterScoped(t *testing.T) {
	r, err := FromEntries([]KindEntry{{Plural: "nodes", APIGroup: CoreGroup}}, nil)
	require.NoError(t, err)

	result := r.MergeAdditive(nil, []string{"nodes"})
	assert.Equal(t, []string{"nodes"}, result.AddedClusterScoped)
	assert.True(t, r.IsClusterScoped("nodes"))

	// Re-merging the same evidence is a no-op (idempotent).
	result = r.MergeAdditive(nil, []string{"nodes"})
	assert.Empty(t, result.AddedClusterScoped)
}

func TestMergeAdditiveClusterScopedWithoutKindEntryIsSkipped(t *testing.T) {
	r := New()
	result := r.MergeAdditive(nil, []string{"nodes"})
	assert.Empty(t, result.AddedClusterScoped)
	assert.False(t, r.IsClusterScoped("nodes"))
}

func TestMergeAdditiveIsIdempotent(t *testing.T) {
	r := New()
	discovered := []Discovered{{Group: CoreGroup, Plural: "pods"}}

	first := r.MergeAdditive(discovered, []string{})
	second := r.MergeAdditive(discovered, []string{})

	assert.Equal(t, []string{"pods"}, first.AddedKinds)
	assert.Empty(t, second.AddedKinds)
}
