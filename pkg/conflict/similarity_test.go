package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"color-primary", "color-primary", 1.0},
		{"", "", 1.0},
		{"abcd", "", 0.0},
		{"ab", "ba", 0.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9, "%q vs %q", tt.a, tt.b)
	}
}

func TestSimilarity_OneEdit(t *testing.T) {
	// One substitution over 13 runes.
	got := Similarity("color-primary", "color-primery")
	assert.InDelta(t, 1.0-1.0/13.0, got, 1e-9)
	assert.Greater(t, got, NearDuplicateThreshold)
}

func TestSimilarity_Symmetric(t *testing.T) {
	assert.Equal(t, Similarity("spacing-lg", "spacing-xl"), Similarity("spacing-xl", "spacing-lg"))
}

func TestSimilarity_Unrelated(t *testing.T) {
	assert.Less(t, Similarity("color-primary", "spacing-lg"), 0.5)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein([]rune(tt.a), []rune(tt.b)), "%q vs %q", tt.a, tt.b)
	}
}
