// Package printer renders must-oc's query results as tables. Rendering is
// explicitly outside core scope: the core returns records and summaries,
// this package is how the CLI turns them into text.
package printer

import (
	"io"
	"strconv"

	"github.com/aquasecurity/table"

	"github.com/sarahbx/must-oc/internal/record"
	"github.com/sarahbx/must-oc/internal/walker"
)

// List renders recs as a table with one row per record: NAMESPACE,
// KIND/NAME, CREATED (creationTimestamp, shown verbatim). Cluster-scoped
// records render "(cluster)" in the namespace column.
func List(w io.Writer, recs []*record.Record) {
	t := table.New(w)
	t.SetHeaders("NAMESPACE", "KIND/NAME", "CREATED")
	for _, r := range recs {
		ns := r.Namespace
		if ns == "" {
			ns = "(cluster)"
		}
		t.AddRow(ns, r.Kind+"/"+r.Name, r.CreationTimestamp)
	}
	t.Render()
}

// Describe renders a single record field by field, depth-first over its raw
// value tree, unlike List's one-line-per-record summary.
func Describe(w io.Writer, r *record.Record) {
	t := table.New(w)
	t.SetHeaders("FIELD", "VALUE")
	walkFields(t, "", r.Raw)
	t.Render()
}

func walkFields(t *table.Table, prefix string, v record.Value) {
	switch v.Kind {
	case record.KindMap:
		for _, e := range v.Map {
			key := e.Key
			if prefix != "" {
				key = prefix + "." + e.Key
			}
			walkFields(t, key, e.Value)
		}
	case record.KindSeq:
		for i, e := range v.Seq {
			walkFields(t, prefixIndex(prefix, i), e)
		}
	default:
		t.AddRow(prefix, scalarString(v))
	}
}

func prefixIndex(prefix string, i int) string {
	idx := "[" + strconv.Itoa(i) + "]"
	if prefix == "" {
		return idx
	}
	return prefix + idx
}

func scalarString(v record.Value) string {
	switch v.Kind {
	case record.KindNull:
		return ""
	case record.KindBool:
		return strconv.FormatBool(v.Bool)
	case record.KindInt:
		return strconv.FormatInt(v.Int, 10)
	case record.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.String
	}
}

// UpdateSummary renders the counts and name lists an update-types run
// produced.
func UpdateSummary(w io.Writer, s walker.Summary) {
	t := table.New(w)
	t.SetHeaders("CHANGE", "COUNT", "NAMES")
	t.AddRow("kinds added", strconv.Itoa(s.KindsAdded), joinOrNone(s.AddedKindNames))
	t.AddRow("cluster-scoped added", strconv.Itoa(s.ClusterScopedAdded), joinOrNone(s.AddedClusterScopedNames))
	t.Render()

	if len(s.Conflicts) > 0 {
		ct := table.New(w)
		ct.SetHeaders("CONFLICT")
		for _, c := range s.Conflicts {
			ct.AddRow(c)
		}
		ct.Render()
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	out := items[0]
	for _, s := range items[1:] {
		out += ", " + s
	}
	return out
}
