// Package record models a parsed YAML document as a tagged value tree —
// redaction and rendering both traverse this tree uniformly — and the
// Resource Record built on top of it.
package record

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindMap
)

// Entry is one key/value pair of a Map-kind Value. Map is a slice of Entry,
// not a Go map, so that key order from the source document (and therefore
// from a later re-marshal) is preserved deterministically.
type Entry struct {
	Key   string
	Value Value
}

// Value is the tagged union. Exactly one of the scalar fields or Seq/Map is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Bool   bool
	Int    int64
	Float  float64
	String string

	Seq []Value
	Map []Entry
}

// Null is the canonical null Value.
var Null = Value{Kind: KindNull}

func NewString(s string) Value { return Value{Kind: KindString, String: s} }
func NewBool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func NewInt(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Get returns the value at key in a Map-kind Value, or (Null, false) if
// absent or v is not a map.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMap {
		return Null, false
	}
	for _, e := range v.Map {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Null, false
}

// Set replaces (or appends) the value at key in a Map-kind Value, returning
// the updated Value. v must already be KindMap.
func (v Value) Set(key string, newVal Value) Value {
	for i, e := range v.Map {
		if e.Key == key {
			v.Map[i].Value = newVal
			return v
		}
	}
	v.Map = append(v.Map, Entry{Key: key, Value: newVal})
	return v
}

// AsString returns the scalar string form of v, or "" with ok=false when v
// is not a string.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.String, true
}

// StringOr returns v's string form, or fallback if v is not a string.
func (v Value) StringOr(fallback string) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return fallback
}

// NestedString walks a path of map keys, one argument per key, and returns the string value
// at the end, mirroring the shape of unstructured.NestedString.
func (v Value) NestedString(path ...string) (string, bool) {
	cur := v
	for _, p := range path {
		next, ok := cur.Get(p)
		if !ok {
			return "", false
		}
		cur = next
	}
	return cur.AsString()
}

// StringMap converts a Map-kind Value whose entries are all scalar strings
// into a plain map[string]string (used for metadata.labels). Non-string
// entries map to the empty string via StringOr("").
func (v Value) StringMap() map[string]string {
	if v.Kind != KindMap {
		return nil
	}
	out := make(map[string]string, len(v.Map))
	for _, e := range v.Map {
		out[e.Key] = e.Value.StringOr("")
	}
	return out
}

// DeepCopy returns an independent copy of v so redaction never mutates the
// caller's input.
func (v Value) DeepCopy() Value {
	switch v.Kind {
	case KindSeq:
		cp := make([]Value, len(v.Seq))
		for i, e := range v.Seq {
			cp[i] = e.DeepCopy()
		}
		return Value{Kind: KindSeq, Seq: cp}
	case KindMap:
		cp := make([]Entry, len(v.Map))
		for i, e := range v.Map {
			cp[i] = Entry{Key: e.Key, Value: e.Value.DeepCopy()}
		}
		return Value{Kind: KindMap, Map: cp}
	default:
		return v
	}
}
