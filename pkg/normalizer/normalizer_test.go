package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokenspec/pkg/token"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"colorPrimary500", []string{"color", "primary", "500"}},
		{"color/primary.500", []string{"color", "primary", "500"}},
		{"Color_Primary-500", []string{"color", "primary", "500"}},
		{"COLOR PRIMARY", []string{"color", "primary"}},
		{"color--primary", []string{"color", "primary"}},
		{"color@primary", []string{"color", "primary"}},
		{"ColorPrimary", []string{"color", "primary"}},
		{"spacing2xl", []string{"spacing", "2", "xl"}},
		{"500", []string{"500"}},
		{"", nil},
		{"---", nil},
		{"///", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitWords(tt.raw), "raw %q", tt.raw)
	}
}

func TestRender(t *testing.T) {
	words := []string{"color", "primary", "500"}

	tests := []struct {
		pattern token.Pattern
		want    string
	}{
		{token.Pattern{Separator: token.SeparatorHyphen, Case: token.CaseKebab}, "color-primary-500"},
		{token.Pattern{Separator: token.SeparatorSlash, Case: token.CaseKebab}, "color/primary/500"},
		{token.Pattern{Separator: token.SeparatorDot, Case: token.CaseKebab}, "color.primary.500"},
		{token.Pattern{Separator: token.SeparatorUnderscore, Case: token.CaseSnake}, "color_primary_500"},
		{token.Pattern{Separator: token.SeparatorUnderscore, Case: token.CaseScreamingSnake}, "COLOR_PRIMARY_500"},
		{token.Pattern{Separator: token.SeparatorNone, Case: token.CaseCamel}, "colorPrimary500"},
		{token.Pattern{Separator: token.SeparatorNone, Case: token.CasePascal}, "ColorPrimary500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Render(words, tt.pattern), "pattern %+v", tt.pattern)
	}
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil, token.DefaultPattern()))
}

func TestNormalize_ConvertsBetweenConventions(t *testing.T) {
	kebab := token.Pattern{Separator: token.SeparatorHyphen, Case: token.CaseKebab}
	slash := token.Pattern{Separator: token.SeparatorSlash, Case: token.CaseKebab}

	assert.Equal(t, "primary-blue-500", Normalize("Primary/Blue/500", kebab))
	assert.Equal(t, "primary/blue/500", Normalize("primary-blue-500", slash))
}

func TestNormalize_Idempotent(t *testing.T) {
	patterns := []token.Pattern{
		{Separator: token.SeparatorHyphen, Case: token.CaseKebab},
		{Separator: token.SeparatorSlash, Case: token.CaseKebab},
		{Separator: token.SeparatorUnderscore, Case: token.CaseScreamingSnake},
		{Separator: token.SeparatorNone, Case: token.CaseCamel},
	}
	names := []string{"colorPrimary500", "COLOR_PRIMARY", "spacing/lg", "Btn.hover"}

	for _, p := range patterns {
		for _, name := range names {
			once := Normalize(name, p)
			twice := Normalize(once, p)
			assert.Equal(t, once, twice, "pattern %+v name %q", p, name)
		}
	}
}

func TestNormalizer_Memoizes(t *testing.T) {
	n := New(16)
	p := token.DefaultPattern()

	name1, path1 := n.Normalize("colorPrimary", p)
	name2, path2 := n.Normalize("colorPrimary", p)
	assert.Equal(t, name1, name2)
	assert.Equal(t, path1, path2)
}

func TestNormalizer_ReturnsPathCopy(t *testing.T) {
	n := New(16)
	p := token.DefaultPattern()

	_, path := n.Normalize("colorPrimary", p)
	require.Equal(t, []string{"color", "primary"}, path)
	path[0] = "mutated"

	_, fresh := n.Normalize("colorPrimary", p)
	assert.Equal(t, []string{"color", "primary"}, fresh)
}

func TestNormalizer_DistinguishesPatterns(t *testing.T) {
	n := New(16)

	kebab, _ := n.Normalize("colorPrimary", token.Pattern{Separator: token.SeparatorHyphen, Case: token.CaseKebab})
	camel, _ := n.Normalize("colorPrimary", token.Pattern{Separator: token.SeparatorNone, Case: token.CaseCamel})
	assert.Equal(t, "color-primary", kebab)
	assert.Equal(t, "colorPrimary", camel)
}

func TestNew_DefaultSize(t *testing.T) {
	n := New(0)
	require.NotNil(t, n)
	name, _ := n.Normalize("a", token.DefaultPattern())
	assert.Equal(t, "a", name)
}
