// Package pattern infers the dominant naming convention from a sample of raw
// token names.
package pattern

import (
	"strings"
	"unicode"

	"github.com/gnana997/tokenspec/pkg/token"
)

// maxExamples is the number of dominant-matching names kept in the result.
const maxExamples = 3

// shape is one of the eight recognizable name shapes. Every name classifies
// into exactly one shape.
type shape string

const (
	shapeSlash          shape = "slash"
	shapeDot            shape = "dot"
	shapeScreamingSnake shape = "screaming-snake"
	shapeSnake          shape = "snake"
	shapeKebab          shape = "kebab"
	shapePascal         shape = "pascal"
	shapeCamel          shape = "camel"
	shapeMixed          shape = "mixed"
)

// shapePatterns maps each shape to the convention it implies.
var shapePatterns = map[shape]token.Pattern{
	shapeSlash:          {Separator: token.SeparatorSlash, Case: token.CaseKebab},
	shapeDot:            {Separator: token.SeparatorDot, Case: token.CaseKebab},
	shapeScreamingSnake: {Separator: token.SeparatorUnderscore, Case: token.CaseScreamingSnake},
	shapeSnake:          {Separator: token.SeparatorUnderscore, Case: token.CaseSnake},
	shapeKebab:          {Separator: token.SeparatorHyphen, Case: token.CaseKebab},
	shapePascal:         {Separator: token.SeparatorNone, Case: token.CasePascal},
	shapeCamel:          {Separator: token.SeparatorNone, Case: token.CaseCamel},
	// Unclassifiable samples fall back to the kebab default.
	shapeMixed: {Separator: token.SeparatorHyphen, Case: token.CaseKebab},
}

// Detect infers the dominant naming convention from names. An empty sample
// returns the kebab default with confidence 0; Detect never fails.
func Detect(names []string) token.Pattern {
	if len(names) == 0 {
		p := token.DefaultPattern()
		p.Examples = []string{}
		return p
	}

	tally := make(map[shape]int)
	byShape := make(map[shape][]string)
	for _, name := range names {
		s := classify(name)
		tally[s]++
		if len(byShape[s]) < maxExamples {
			byShape[s] = append(byShape[s], name)
		}
	}

	// Dominant shape: highest count, with a fixed priority order as the
	// tiebreaker so detection is deterministic.
	order := []shape{
		shapeSlash, shapeDot, shapeScreamingSnake, shapeSnake,
		shapeKebab, shapePascal, shapeCamel, shapeMixed,
	}
	dominant := shapeMixed
	best := -1
	for _, s := range order {
		if tally[s] > best {
			best = tally[s]
			dominant = s
		}
	}

	p, ok := shapePatterns[dominant]
	if !ok {
		panic("pattern: unmapped shape " + string(dominant))
	}
	p.Confidence = float64(best) / float64(len(names))
	p.SampleCount = len(names)
	p.Examples = byShape[dominant]
	p.Depth = modalDepth(byShapeAll(names, dominant), p.Separator)
	return p
}

// classify assigns a name to exactly one shape, tested in priority order.
func classify(name string) shape {
	switch {
	case strings.Contains(name, "/"):
		return shapeSlash
	case strings.Contains(name, ".") && !containsSpace(name):
		return shapeDot
	case isScreamingSnake(name):
		return shapeScreamingSnake
	case isSnake(name):
		return shapeSnake
	case isKebab(name):
		return shapeKebab
	case isPascal(name):
		return shapePascal
	case isCamel(name):
		return shapeCamel
	default:
		return shapeMixed
	}
}

func containsSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// isScreamingSnake reports all-caps alphanumeric+underscore names with at
// least one letter.
func isScreamingSnake(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return hasLetter
}

func isSnake(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return hasLetter
}

func isKebab(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return hasLetter
}

// isPascal reports names that start uppercase and contain mixed case.
func isPascal(s string) bool {
	r := firstRune(s)
	return unicode.IsUpper(r) && hasMixedCase(s) && isAlphanumeric(s)
}

// isCamel reports names that start lowercase and contain mixed case.
func isCamel(s string) bool {
	r := firstRune(s)
	return unicode.IsLower(r) && hasMixedCase(s) && isAlphanumeric(s)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func hasMixedCase(s string) bool {
	hasUpper, hasLower := false, false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasUpper && hasLower
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// byShapeAll returns the names in the sample that classify as s.
func byShapeAll(names []string, s shape) []string {
	var out []string
	for _, name := range names {
		if classify(name) == s {
			out = append(out, name)
		}
	}
	return out
}

// modalDepth returns the most common segment count among names when split on
// sep. Separator "none" names are single-segment by construction.
func modalDepth(names []string, sep token.Separator) int {
	if len(names) == 0 {
		return 0
	}
	if sep == token.SeparatorNone {
		return 1
	}
	counts := make(map[int]int)
	for _, name := range names {
		counts[len(strings.Split(name, string(sep)))]++
	}
	depth, best := 0, 0
	for d, n := range counts {
		if n > best || (n == best && d < depth) {
			depth, best = d, n
		}
	}
	return depth
}
