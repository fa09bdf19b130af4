package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeConstructors(t *testing.T) {
	assert.Equal(t, Scope{Kind: ScopeSingleNamespace, Namespace: "ns1"}, SingleNamespace("ns1"))
	assert.Equal(t, Scope{Kind: ScopeAllNamespaces}, AllNamespaces())
	assert.Equal(t, Scope{Kind: ScopeCluster}, Cluster())
}

func TestQueryGVR(t *testing.T) {
	q := Query{Group: "apps", Plural: "deployments"}
	gvr := q.GVR()
	assert.Equal(t, "apps", gvr.Group)
	assert.Equal(t, "deployments", gvr.Resource)
	assert.Empty(t, gvr.Version)
}
