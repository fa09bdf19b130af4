package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptySelectorMatchesEverything(t *testing.T) {
	sel, err := Parse("")
	require.NoError(t, err)
	assert.True(t, sel.Empty())
	assert.True(t, sel.Matches(map[string]string{"app": "web"}))
	assert.True(t, sel.Matches(nil))
}

func TestParseEquality(t *testing.T) {
	sel, err := Parse("app=web")
	require.NoError(t, err)
	assert.False(t, sel.Empty())
	assert.True(t, sel.Matches(map[string]string{"app": "web"}))
	assert.False(t, sel.Matches(map[string]string{"app": "db"}))
}

func TestParseDoubleEquals(t *testing.T) {
	sel, err := Parse("app==web")
	require.NoError(t, err)
	assert.True(t, sel.Matches(map[string]string{"app": "web"}))
}

func TestParseInequality(t *testing.T) {
	sel, err := Parse("app!=web")
	require.NoError(t, err)
	assert.True(t, sel.Matches(map[string]string{"app": "db"}))
	assert.False(t, sel.Matches(map[string]string{"app": "web"}))
}

func TestParseMultipleTermsIsConjunction(t *testing.T) {
	sel, err := Parse("app=web,tier=frontend")
	require.NoError(t, err)
	assert.True(t, sel.Matches(map[string]string{"app": "web", "tier": "frontend"}))
	assert.False(t, sel.Matches(map[string]string{"app": "web", "tier": "backend"}))
	assert.False(t, sel.Matches(map[string]string{"app": "web"}))
}

func TestParseTooManyTerms(t *testing.T) {
	raw := ""
	for i := 0; i < maxTerms+1; i++ {
		if i > 0 {
			raw += ","
		}
		raw += "k" + string(rune('a'+i)) + "=v"
	}
	_, err := Parse(raw)
	assert.Error(t, err)
}

func TestParseRejectsUnsupportedOperators(t *testing.T) {
	tests := []string{"app", "app in (web, db)", "!app", "app~web"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsInvalidCharset(t *testing.T) {
	_, err := Parse("app=we b")
	assert.Error(t, err)
}

func TestParseWhitespaceOnlyIsEmpty(t *testing.T) {
	sel, err := Parse("   ")
	require.NoError(t, err)
	assert.True(t, sel.Empty())
}
