package yamlreader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahbx/must-oc/internal/coreerr"
	"github.com/sarahbx/must-oc/internal/record"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSingleDocument(t *testing.T) {
	path := writeTemp(t, "apiVersion: v1\nkind: Pod\nmetadata:\n  name: web-0\n")

	recs, err := Read(path, DefaultMaxYAMLBytes)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Pod", recs[0].Kind)
	assert.Equal(t, "web-0", recs[0].Name)
}

func TestReadEmptyFile(t *testing.T) {
	path := writeTemp(t, "")
	recs, err := Read(path, DefaultMaxYAMLBytes)
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestReadFlattensList(t *testing.T) {
	path := writeTemp(t, `
apiVersion: v1
kind: PodList
items:
  - metadata:
      name: web-0
  - metadata:
      name: web-1
    kind: Pod
`)
	recs, err := Read(path, DefaultMaxYAMLBytes)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Pod", recs[0].Kind, "item kind must be backfilled from the list kind when absent")
	assert.Equal(t, "web-0", recs[0].Name)
	assert.Equal(t, "Pod", recs[1].Kind)
	assert.Equal(t, "web-1", recs[1].Name)
}

func TestReadTooLarge(t *testing.T) {
	path := writeTemp(t, "kind: Pod\n")
	_, err := Read(path, 2)
	var tooLarge *coreerr.TooLarge
	assert.ErrorAs(t, err, &tooLarge)
}

func TestReadMalformedYAML(t *testing.T) {
	path := writeTemp(t, "kind: [unterminated\n")
	_, err := Read(path, DefaultMaxYAMLBytes)
	var parseErr *coreerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotZero(t, parseErr.Line, "a genuine syntax error must carry the line it occurred on")
}

func TestReadUnsafeTag(t *testing.T) {
	path := writeTemp(t, "kind: !!python/object:os.system {}\n")
	_, err := Read(path, DefaultMaxYAMLBytes)
	var unsafe *coreerr.UnsafeYaml
	assert.ErrorAs(t, err, &unsafe)
}

func TestReadScalarTypes(t *testing.T) {
	path := writeTemp(t, `
kind: ConfigMap
metadata:
  name: cfg
data:
  count: 3
  ratio: 1.5
  enabled: true
  note: null
`)
	recs, err := Read(path, DefaultMaxYAMLBytes)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	data, ok := recs[0].Raw.Get("data")
	require.True(t, ok)

	count, _ := data.Get("count")
	assert.Equal(t, int64(3), count.Int)

	ratio, _ := data.Get("ratio")
	assert.Equal(t, 1.5, ratio.Float)

	enabled, _ := data.Get("enabled")
	assert.True(t, enabled.Bool)

	note, ok := data.Get("note")
	require.True(t, ok)
	assert.Equal(t, record.KindNull, note.Kind)
}
