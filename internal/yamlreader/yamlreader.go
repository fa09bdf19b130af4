// Package yamlreader implements a size-bounded, safely-deserialized YAML
// load that flattens List documents into their items.
package yamlreader

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarahbx/must-oc/internal/coreerr"
	"github.com/sarahbx/must-oc/internal/record"
)

// DefaultMaxYAMLBytes is the default MAX_YAML_BYTES ceiling: 100 MiB.
const DefaultMaxYAMLBytes int64 = 100 * 1024 * 1024

// safeTags are the built-in YAML tags a safe loader accepts. Anything else
// (language-specific object tags such as "!!python/object:...") fails with
// *coreerr.UnsafeYaml before any node is ever turned into a value.
var safeTags = map[string]bool{
	"!!null":  true,
	"!!bool":  true,
	"!!int":   true,
	"!!float": true,
	"!!str":   true,
	"!!seq":   true,
	"!!map":   true,
	// plain unquoted timestamps (e.g. creationTimestamp) resolve to this tag
	"!!timestamp": true,
	"":            true, // untagged nodes resolve to one of the above by content
}

// Read loads path, enforcing maxBytes before opening, rejecting unsafe
// tags, and flattening *List documents. Empty files yield a nil slice and
// no error.
func Read(path string, maxBytes int64) ([]*record.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxBytes {
		return nil, &coreerr.TooLarge{Path: path, Size: info.Size(), SizeCeil: maxBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(path, data)
}

func parse(path string, data []byte) ([]*record.Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &coreerr.ParseError{Path: path, Line: lineFromError(err), Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if err := checkSafeTags(path, root); err != nil {
		return nil, err
	}

	v, err := toValue(root)
	if err != nil {
		return nil, &coreerr.ParseError{Path: path, Line: root.Line, Err: err}
	}

	kind, _ := v.NestedString("kind")
	if strings.HasSuffix(kind, "List") {
		return flattenList(kind, v), nil
	}

	return []*record.Record{record.FromValue(v)}, nil
}

// flattenList expands a *List document's items into individual records,
// backfilling each item's kind from the list kind by stripping the "List"
// suffix when the item itself has none.
func flattenList(listKind string, v record.Value) []*record.Record {
	itemKind := strings.TrimSuffix(listKind, "List")
	items, ok := v.Get("items")
	if !ok || items.Kind != record.KindSeq {
		return nil
	}

	out := make([]*record.Record, 0, len(items.Seq))
	for _, item := range items.Seq {
		if item.Kind != record.KindMap {
			continue
		}
		if k, ok := item.Get("kind"); !ok || k.StringOr("") == "" {
			item = item.Set("kind", record.NewString(itemKind))
		}
		out = append(out, record.FromValue(item))
	}
	return out
}

func checkSafeTags(path string, n *yaml.Node) error {
	if !safeTags[n.Tag] {
		return &coreerr.UnsafeYaml{Path: path, Tag: n.Tag}
	}
	for _, c := range n.Content {
		if err := checkSafeTags(path, c); err != nil {
			return err
		}
	}
	return nil
}

func toValue(n *yaml.Node) (record.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return record.Null, nil
		}
		return toValue(n.Content[0])
	case yaml.AliasNode:
		return toValue(n.Alias)
	case yaml.ScalarNode:
		return scalarValue(n)
	case yaml.SequenceNode:
		seq := make([]record.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := toValue(c)
			if err != nil {
				return record.Value{}, err
			}
			seq = append(seq, v)
		}
		return record.Value{Kind: record.KindSeq, Seq: seq}, nil
	case yaml.MappingNode:
		if len(n.Content)%2 != 0 {
			return record.Value{}, fmt.Errorf("mapping node with odd content length")
		}
		entries := make([]record.Entry, 0, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			key, err := toValue(n.Content[i])
			if err != nil {
				return record.Value{}, err
			}
			val, err := toValue(n.Content[i+1])
			if err != nil {
				return record.Value{}, err
			}
			entries = append(entries, record.Entry{Key: key.StringOr(""), Value: val})
		}
		return record.Value{Kind: record.KindMap, Map: entries}, nil
	default:
		return record.Value{}, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

func scalarValue(n *yaml.Node) (record.Value, error) {
	var decoded interface{}
	if err := n.Decode(&decoded); err != nil {
		return record.Value{}, err
	}
	switch v := decoded.(type) {
	case nil:
		return record.Null, nil
	case bool:
		return record.NewBool(v), nil
	case int:
		return record.NewInt(int64(v)), nil
	case int64:
		return record.NewInt(v), nil
	case float64:
		return record.NewFloat(v), nil
	case string:
		return record.NewString(v), nil
	default:
		return record.NewString(n.Value), nil
	}
}

// lineInMessage matches the "line N:" prefix gopkg.in/yaml.v3 embeds in
// both *yaml.TypeError sub-errors and plain top-level syntax error text.
var lineInMessage = regexp.MustCompile(`line (\d+):`)

// lineFromError best-efforts a line number out of a parse error by
// scanning yaml.v3's own error text rather than a structured field, since
// the library doesn't expose one uniformly for top-level syntax errors.
func lineFromError(err error) int {
	if te, ok := err.(*yaml.TypeError); ok && len(te.Errors) > 0 {
		if n := lineFromMessage(te.Errors[0]); n > 0 {
			return n
		}
	}
	return lineFromMessage(err.Error())
}

func lineFromMessage(msg string) int {
	m := lineInMessage.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
