package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahbx/must-oc/internal/coreerr"
)

func mkArchiveRoot(t *testing.T, parent, name string, clusterScoped bool) string {
	t.Helper()
	root := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(filepath.Join(root, namespacesDir), 0o755))
	if clusterScoped {
		require.NoError(t, os.MkdirAll(filepath.Join(root, clusterScopedDir), 0o755))
	}
	return root
}

func TestDiscoverFindsImmediateChildren(t *testing.T) {
	parent := t.TempDir()
	mkArchiveRoot(t, parent, "must-gather.local.456", false)
	mkArchiveRoot(t, parent, "must-gather.local.123", true)

	roots, err := Discover([]string{parent})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "must-gather.local.123", roots[0].Key)
	assert.Equal(t, "must-gather.local.456", roots[1].Key)
}

func TestDiscoverNestedRoot(t *testing.T) {
	parent := t.TempDir()
	outer := filepath.Join(parent, "must-gather.local.123")
	require.NoError(t, os.MkdirAll(outer, 0o755))
	mkArchiveRoot(t, outer, "quay-io-openshift-must-gather-sha256", false)

	roots, err := Discover([]string{parent})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Contains(t, roots[0].Path, "quay-io-openshift-must-gather-sha256")
}

func TestDiscoverThreeLevelsDeepIsNotDiscovered(t *testing.T) {
	parent := t.TempDir()
	outer := filepath.Join(parent, "must-gather.local.123")
	middle := filepath.Join(outer, "quay-io-openshift-must-gather-sha256")
	require.NoError(t, os.MkdirAll(middle, 0o755))
	mkArchiveRoot(t, middle, "nested-twice", false)

	_, err := Discover([]string{parent})
	var noArchive *coreerr.NoArchive
	assert.ErrorAs(t, err, &noArchive, "recursion is bounded at two levels; a third level must go undiscovered")
}

func TestDiscoverDeduplicatesByPath(t *testing.T) {
	parent := t.TempDir()
	mkArchiveRoot(t, parent, "must-gather.local.123", false)

	roots, err := Discover([]string{parent, parent})
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

func TestDiscoverNoArchive(t *testing.T) {
	parent := t.TempDir()
	_, err := Discover([]string{parent})
	var noArchive *coreerr.NoArchive
	assert.ErrorAs(t, err, &noArchive)
}

func TestDiscoverMissingInputDir(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	var noArchive *coreerr.NoArchive
	assert.ErrorAs(t, err, &noArchive)
}
