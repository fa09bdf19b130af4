// Package redact strips sensitive data from a Resource Record before it
// leaves the core.
package redact

import (
	"strings"

	"github.com/sarahbx/must-oc/internal/record"
)

// Sentinel is the literal substituted for every redacted value.
const Sentinel = "<REDACTED>"

const lastAppliedAnnotation = "kubectl.kubernetes.io/last-applied-configuration"

// sensitiveKeySubstrings are matched case-insensitively against every
// mapping key, at any depth.
var sensitiveKeySubstrings = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"apikey",
	"private_key",
	"ssh_key",
	"certificate",
	"credentials",
}

// Mode selects whether Apply removes sensitive values or returns the
// record unchanged.
type Mode int

const (
	Redacted Mode = iota
	Raw
)

// Apply returns a redacted copy of rec (Raw mode returns rec unmodified,
// not even deep-copied, since the caller is known to have opted out of
// redaction and no mutation occurs either way).
func Apply(rec *record.Record, mode Mode) *record.Record {
	if mode == Raw {
		return rec
	}

	out := rec.DeepCopy()
	isSecret := out.Kind == "Secret"
	out.Raw = redactValue(out.Raw, isSecret, false)
	return out
}

// redactValue walks v, replacing sensitive leaves with Sentinel. inSecretData
// is true while descending into a Secret's data/stringData maps, where every
// value is sensitive regardless of key name.
func redactValue(v record.Value, isSecret, inSecretData bool) record.Value {
	switch v.Kind {
	case record.KindMap:
		entries := make([]record.Entry, len(v.Map))
		for i, e := range v.Map {
			lower := strings.ToLower(e.Key)

			switch {
			case isSecret && (e.Key == "data" || e.Key == "stringData"):
				entries[i] = record.Entry{Key: e.Key, Value: redactValue(e.Value, isSecret, true)}
			case e.Key == lastAppliedAnnotation:
				entries[i] = record.Entry{Key: e.Key, Value: record.NewString(Sentinel)}
			case matchesSensitiveKey(lower):
				entries[i] = record.Entry{Key: e.Key, Value: record.NewString(Sentinel)}
			default:
				entries[i] = record.Entry{Key: e.Key, Value: redactValue(e.Value, isSecret, inSecretData)}
			}
		}
		return record.Value{Kind: record.KindMap, Map: entries}

	case record.KindSeq:
		seq := make([]record.Value, len(v.Seq))
		for i, e := range v.Seq {
			seq[i] = redactValue(e, isSecret, inSecretData)
		}
		return record.Value{Kind: record.KindSeq, Seq: seq}

	default:
		if inSecretData {
			return record.NewString(Sentinel)
		}
		return v
	}
}

func matchesSensitiveKey(lowerKey string) bool {
	for _, s := range sensitiveKeySubstrings {
		if strings.Contains(lowerKey, s) {
			return true
		}
	}
	return false
}
