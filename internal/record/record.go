package record

// Record is the in-memory form of a parsed YAML document.
//
// Identity fields are extracted eagerly at construction time so the
// deduplicator and redactor never have to re-walk Raw for the common case;
// Raw still carries the full document, including the semantic fields, so
// rendering can show everything.
type Record struct {
	APIVersion        string
	Kind              string
	Name              string
	Namespace         string // empty for cluster-scoped kinds
	Labels            map[string]string
	CreationTimestamp string

	Raw Value
}

// Identity returns the (namespace, kind, name) triple that defines a
// record's identity. Two records with the same Identity never survive
// deduplication.
func (r *Record) Identity() (namespace, kind, name string) {
	return r.Namespace, r.Kind, r.Name
}

// FromValue builds a Record's semantic fields from a parsed document tree.
func FromValue(v Value) *Record {
	r := &Record{Raw: v}
	r.APIVersion, _ = v.NestedString("apiVersion")
	r.Kind, _ = v.NestedString("kind")
	r.Name, _ = v.NestedString("metadata", "name")
	r.Namespace, _ = v.NestedString("metadata", "namespace")
	r.CreationTimestamp, _ = v.NestedString("metadata", "creationTimestamp")
	if labels, ok := v.Get("metadata"); ok {
		if lv, ok := labels.Get("labels"); ok {
			r.Labels = lv.StringMap()
		}
	}
	return r
}

// DeepCopy returns an independent copy of r (and its Raw tree).
func (r *Record) DeepCopy() *Record {
	cp := *r
	if r.Labels != nil {
		cp.Labels = make(map[string]string, len(r.Labels))
		for k, v := range r.Labels {
			cp.Labels[k] = v
		}
	}
	cp.Raw = r.Raw.DeepCopy()
	return &cp
}
