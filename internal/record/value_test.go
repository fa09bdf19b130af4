package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueGetSet(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		key     string
		wantOK  bool
		wantStr string
	}{
		{
			name:    "present key",
			v:       Value{Kind: KindMap, Map: []Entry{{Key: "a", Value: NewString("x")}}},
			key:     "a",
			wantOK:  true,
			wantStr: "x",
		},
		{
			name:   "absent key",
			v:      Value{Kind: KindMap, Map: []Entry{{Key: "a", Value: NewString("x")}}},
			key:    "b",
			wantOK: false,
		},
		{
			name:   "not a map",
			v:      NewString("scalar"),
			key:    "a",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Get(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				s, _ := got.AsString()
				assert.Equal(t, tt.wantStr, s)
			}
		})
	}
}

func TestValueSetAppendsWhenAbsent(t *testing.T) {
	v := Value{Kind: KindMap}
	v = v.Set("k", NewInt(1))
	got, ok := v.Get("k")
	assert.True(t, ok)
	assert.Equal(t, int64(1), got.Int)

	v = v.Set("k", NewInt(2))
	got, ok = v.Get("k")
	assert.True(t, ok)
	assert.Equal(t, int64(2), got.Int)
	assert.Len(t, v.Map, 1)
}

func TestNestedString(t *testing.T) {
	v := Value{Kind: KindMap, Map: []Entry{
		{Key: "metadata", Value: Value{Kind: KindMap, Map: []Entry{
			{Key: "name", Value: NewString("pod-a")},
		}}},
	}}

	s, ok := v.NestedString("metadata", "name")
	assert.True(t, ok)
	assert.Equal(t, "pod-a", s)

	_, ok = v.NestedString("metadata", "namespace")
	assert.False(t, ok)

	_, ok = v.NestedString("spec", "name")
	assert.False(t, ok)
}

func TestStringMap(t *testing.T) {
	v := Value{Kind: KindMap, Map: []Entry{
		{Key: "app", Value: NewString("web")},
		{Key: "tier", Value: NewString("frontend")},
	}}
	got := v.StringMap()
	assert.Equal(t, map[string]string{"app": "web", "tier": "frontend"}, got)

	assert.Nil(t, NewString("x").StringMap())
}

func TestDeepCopyIsIndependent(t *testing.T) {
	orig := Value{Kind: KindMap, Map: []Entry{
		{Key: "list", Value: Value{Kind: KindSeq, Seq: []Value{NewString("a"), NewString("b")}}},
	}}
	cp := orig.DeepCopy()

	listVal, _ := cp.Get("list")
	listVal.Seq[0] = NewString("mutated")

	origList, _ := orig.Get("list")
	assert.Equal(t, "a", origList.Seq[0].String)
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, "fallback", NewInt(5).StringOr("fallback"))
	assert.Equal(t, "x", NewString("x").StringOr("fallback"))
}
