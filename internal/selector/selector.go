// Package selector implements a restricted label-selector grammar:
// equality/inequality terms only, joined by commas, over a narrow charset,
// reusing k8s.io/apimachinery's own selector matching once a selector
// string has passed this package's stricter validation.
package selector

import (
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"

	"github.com/sarahbx/must-oc/internal/coreerr"
)

// maxTerms is the upper bound on comma-separated terms.
const maxTerms = 20

// tokenPattern is the restricted charset allowed for both keys and values:
// letters, digits, '.', '_', '/', '-'.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)

// Selector matches a record's labels against a validated set of
// equality/inequality requirements.
type Selector struct {
	requirements labels.Selector
}

// Parse validates raw against the restricted grammar and builds a
// Selector. An
// empty or all-whitespace raw matches everything. Anything outside the
// equals/not-equals grammar, the allowed charset, or the term-count cap
// fails with *coreerr.BadSelector.
func Parse(raw string) (*Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &Selector{requirements: labels.Everything()}, nil
	}

	terms := strings.Split(raw, ",")
	if len(terms) > maxTerms {
		return nil, &coreerr.BadSelector{Selector: raw, Reason: "too many terms"}
	}

	sel := labels.NewSelector()
	for _, term := range terms {
		term = strings.TrimSpace(term)
		req, err := parseTerm(raw, term)
		if err != nil {
			return nil, err
		}
		sel = sel.Add(*req)
	}

	return &Selector{requirements: sel}, nil
}

// parseTerm validates and builds a single key(==|!=|=)value requirement.
// raw is the whole original selector string, kept only for error messages.
func parseTerm(raw, term string) (*labels.Requirement, error) {
	op, opLen := detectOperator(term)
	if op == "" {
		return nil, &coreerr.BadSelector{Selector: raw, Reason: "term " + term + " is not an equality/inequality expression"}
	}

	idx := strings.Index(term, op)
	key := strings.TrimSpace(term[:idx])
	value := strings.TrimSpace(term[idx+opLen:])

	if !tokenPattern.MatchString(key) {
		return nil, &coreerr.BadSelector{Selector: raw, Reason: "key " + key + " contains disallowed characters"}
	}
	if !tokenPattern.MatchString(value) {
		return nil, &coreerr.BadSelector{Selector: raw, Reason: "value " + value + " contains disallowed characters"}
	}

	var sop selection.Operator
	switch op {
	case "==", "=":
		sop = selection.Equals
	case "!=":
		sop = selection.NotEquals
	}

	req, err := labels.NewRequirement(key, sop, []string{value})
	if err != nil {
		return nil, &coreerr.BadSelector{Selector: raw, Reason: err.Error()}
	}
	return req, nil
}

// detectOperator finds which of the three supported operators term uses,
// preferring the two-character forms so "==" and "!=" are not misread as a
// bare "=" split at the wrong index.
func detectOperator(term string) (op string, length int) {
	switch {
	case strings.Contains(term, "!="):
		return "!=", 2
	case strings.Contains(term, "=="):
		return "==", 2
	case strings.Contains(term, "="):
		return "=", 1
	default:
		return "", 0
	}
}

// Matches reports whether labels satisfy the selector.
func (s *Selector) Matches(lbls map[string]string) bool {
	return s.requirements.Matches(labels.Set(lbls))
}

// Empty reports whether the selector matches every input (an empty
// selector string was parsed).
func (s *Selector) Empty() bool {
	return s.requirements.Empty()
}
