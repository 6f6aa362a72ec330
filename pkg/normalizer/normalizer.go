// Package normalizer rewrites raw token names into a target naming convention
// and decomposes them into ordered path segments.
package normalizer

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/tokenspec/pkg/token"
)

// SplitWords segments a raw name into lowercase words. Explicit boundaries are
// "/", ".", "_", "-" and whitespace; implicit boundaries are lower-to-upper
// transitions and letter/digit transitions. Any other non-alphanumeric rune is
// treated as a collapsed boundary, never preserved as a literal.
//
// The returned word list is the canonical path used for hierarchy placement.
// An empty or unparsable name yields an empty (nil) list.
func SplitWords(raw string) []string {
	var words []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	var prev rune
	for _, r := range raw {
		switch {
		case r == '/' || r == '.' || r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			// Unknown punctuation acts as a boundary and is dropped.
			flush()
		default:
			if cur.Len() > 0 && isImplicitBoundary(prev, r) {
				flush()
			}
			cur.WriteRune(r)
		}
		prev = r
	}
	flush()

	return words
}

// isImplicitBoundary reports whether a word break falls between prev and r:
// a lowercase-to-uppercase transition or a letter/digit transition.
func isImplicitBoundary(prev, r rune) bool {
	if unicode.IsLower(prev) && unicode.IsUpper(r) {
		return true
	}
	if unicode.IsLetter(prev) && unicode.IsDigit(r) {
		return true
	}
	if unicode.IsDigit(prev) && unicode.IsLetter(r) {
		return true
	}
	return false
}

// Render joins words using the pattern's separator. When the separator is
// "none" the case style shapes the result: pascal capitalizes every word,
// camel every word except the first. Purely numeric words are never re-cased.
func Render(words []string, p token.Pattern) string {
	if len(words) == 0 {
		return ""
	}

	if p.Separator == token.SeparatorNone {
		var b strings.Builder
		for i, w := range words {
			if p.Case == token.CasePascal || (p.Case == token.CaseCamel && i > 0) {
				w = capitalize(w)
			}
			b.WriteString(w)
		}
		return b.String()
	}

	out := make([]string, len(words))
	for i, w := range words {
		if p.Case == token.CaseScreamingSnake {
			w = strings.ToUpper(w)
		}
		out[i] = w
	}
	return strings.Join(out, string(p.Separator))
}

// Normalize rewrites one raw name into the target pattern.
func Normalize(raw string, p token.Pattern) string {
	return Render(SplitWords(raw), p)
}

// capitalize upper-cases the first rune of a word. Numeric words pass through
// unchanged.
func capitalize(w string) string {
	for i, r := range w {
		if !unicode.IsLetter(r) {
			return w // starts with a digit, leave as-is
		}
		return string(unicode.ToUpper(r)) + w[i+len(string(r)):]
	}
	return w
}

// cacheKey identifies one (name, target convention) normalization.
type cacheKey struct {
	name      string
	separator token.Separator
	caseStyle token.CaseStyle
}

type cacheEntry struct {
	name string
	path []string
}

// Normalizer memoizes name normalization. Design-tool exports repeat the same
// names across modes and themes, so repeated lookups dominate at scale.
type Normalizer struct {
	cache *lru.Cache[cacheKey, cacheEntry]
}

// DefaultCacheSize bounds the memo cache. Each entry is a short string and a
// small slice; 8k entries covers typical exports without measurable memory.
const DefaultCacheSize = 8192

// New creates a Normalizer with a memo cache of the given size. Sizes < 1
// fall back to DefaultCacheSize.
func New(cacheSize int) *Normalizer {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, cacheEntry](cacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic("normalizer: " + err.Error())
	}
	return &Normalizer{cache: cache}
}

// Normalize returns the rewritten name and its path segments for raw under
// the target pattern. Results are memoized; the returned path is a copy the
// caller may mutate.
func (n *Normalizer) Normalize(raw string, p token.Pattern) (string, []string) {
	key := cacheKey{name: raw, separator: p.Separator, caseStyle: p.Case}
	if e, ok := n.cache.Get(key); ok {
		return e.name, clonePath(e.path)
	}

	path := SplitWords(raw)
	name := Render(path, p)
	n.cache.Add(key, cacheEntry{name: name, path: path})
	return name, clonePath(path)
}

func clonePath(path []string) []string {
	if path == nil {
		return nil
	}
	out := make([]string, len(path))
	copy(out, path)
	return out
}
