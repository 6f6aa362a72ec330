package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokenspec/pkg/token"
)

func TestDetect_EmptySample(t *testing.T) {
	p := Detect(nil)
	assert.Equal(t, token.SeparatorHyphen, p.Separator)
	assert.Equal(t, token.CaseKebab, p.Case)
	assert.Equal(t, 0.0, p.Confidence)
	assert.Equal(t, 0, p.SampleCount)
	assert.Empty(t, p.Examples)
}

func TestDetect_SlashDominant(t *testing.T) {
	names := []string{
		"color/primary/500",
		"color/primary/600",
		"spacing/large",
		"fontSize",
	}
	p := Detect(names)
	assert.Equal(t, token.SeparatorSlash, p.Separator)
	assert.Equal(t, token.CaseKebab, p.Case)
	assert.Equal(t, 0.75, p.Confidence)
	assert.Equal(t, 4, p.SampleCount)
	assert.Equal(t, 3, p.Depth)
	assert.Contains(t, p.Examples, "color/primary/500")
}

func TestDetect_CamelDominant(t *testing.T) {
	names := []string{"colorPrimary", "fontSizeLarge", "spacingMd"}
	p := Detect(names)
	assert.Equal(t, token.SeparatorNone, p.Separator)
	assert.Equal(t, token.CaseCamel, p.Case)
	assert.Equal(t, 1.0, p.Confidence)
	assert.Equal(t, 1, p.Depth)
}

func TestDetect_ScreamingSnakeDominant(t *testing.T) {
	names := []string{"COLOR_PRIMARY", "FONT_SIZE_LG", "SPACING_MD"}
	p := Detect(names)
	assert.Equal(t, token.SeparatorUnderscore, p.Separator)
	assert.Equal(t, token.CaseScreamingSnake, p.Case)
}

func TestDetect_TiebreakIsDeterministic(t *testing.T) {
	// One slash name, one kebab name: the fixed priority order favors slash.
	p := Detect([]string{"color/primary", "color-primary"})
	assert.Equal(t, token.SeparatorSlash, p.Separator)
}

func TestDetect_DepthIgnoresMinorityShapes(t *testing.T) {
	names := []string{
		"color.primary.500",
		"color.primary.600",
		"oneword",
	}
	p := Detect(names)
	assert.Equal(t, token.SeparatorDot, p.Separator)
	// Depth is computed over the dominant-shape names only.
	assert.Equal(t, 3, p.Depth)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want shape
	}{
		{"color/primary/500", shapeSlash},
		{"color.primary.500", shapeDot},
		{"COLOR_PRIMARY", shapeScreamingSnake},
		{"color_primary", shapeSnake},
		{"color-primary-500", shapeKebab},
		{"ColorPrimary", shapePascal},
		{"colorPrimary", shapeCamel},
		{"Color Primary!", shapeMixed},
		{"Color-Primary", shapeMixed},
		{"500", shapeMixed},
		// Slash beats dot when both appear.
		{"color/primary.500", shapeSlash},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.name), "name %q", tt.name)
	}
}

func TestDetect_AllMixedFallsBackToKebab(t *testing.T) {
	p := Detect([]string{"Color Primary", "???"})
	require.Equal(t, token.SeparatorHyphen, p.Separator)
	assert.Equal(t, token.CaseKebab, p.Case)
	assert.Equal(t, 1.0, p.Confidence)
}

func TestDetect_ExamplesCapped(t *testing.T) {
	names := []string{"a-b", "c-d", "e-f", "g-h", "i-j"}
	p := Detect(names)
	assert.Len(t, p.Examples, maxExamples)
}
