package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarahbx/must-oc/internal/record"
	"github.com/sarahbx/must-oc/internal/walker"
)

func TestListRendersClusterPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	recs := []*record.Record{
		{Kind: "Node", Name: "node-a", Namespace: "", CreationTimestamp: "2024-01-01T00:00:00Z"},
		{Kind: "Pod", Name: "web-0", Namespace: "default", CreationTimestamp: "2024-01-02T00:00:00Z"},
	}
	List(&buf, recs)

	out := buf.String()
	assert.Contains(t, out, "(cluster)")
	assert.Contains(t, out, "Node/node-a")
	assert.Contains(t, out, "Pod/web-0")
	assert.Contains(t, out, "default")
}

func TestDescribeWalksNestedFields(t *testing.T) {
	var buf bytes.Buffer
	rec := &record.Record{
		Raw: record.Value{Kind: record.KindMap, Map: []record.Entry{
			{Key: "metadata", Value: record.Value{Kind: record.KindMap, Map: []record.Entry{
				{Key: "name", Value: record.NewString("web-0")},
			}}},
			{Key: "spec", Value: record.Value{Kind: record.KindMap, Map: []record.Entry{
				{Key: "containers", Value: record.Value{Kind: record.KindSeq, Seq: []record.Value{
					record.NewString("app"),
				}}},
			}}},
		}},
	}
	Describe(&buf, rec)

	out := buf.String()
	assert.Contains(t, out, "metadata.name")
	assert.Contains(t, out, "web-0")
	assert.Contains(t, out, "spec.containers[0]")
	assert.Contains(t, out, "app")
}

func TestUpdateSummaryRendersCountsAndConflicts(t *testing.T) {
	var buf bytes.Buffer
	summary := walker.Summary{
		KindsAdded:         1,
		ClusterScopedAdded: 0,
		AddedKindNames:     []string{"widgets"},
		Conflicts:          []string{"plural builds: registry has api_group build.openshift.io, archive evidences build.k8s.io (kept existing)"},
	}
	UpdateSummary(&buf, summary)

	out := buf.String()
	assert.Contains(t, out, "widgets")
	assert.Contains(t, out, "builds")
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "-", joinOrNone(nil))
	assert.Equal(t, "a, b", joinOrNone([]string{"a", "b"}))
}
