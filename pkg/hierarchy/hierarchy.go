// Package hierarchy converts flat normalized token lists into a segment-keyed
// tree and back.
package hierarchy

import (
	"sort"
	"strings"

	"github.com/gnana997/tokenspec/pkg/token"
)

// LeafValue holds the token payload carried by a value-bearing node.
type LeafValue struct {
	Value    any            `json:"value"`
	Type     string         `json:"type"`
	Source   string         `json:"source,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Node is one tree node. A node may carry a value (leaf role), children
// (branch role), or both: a token whose path is a strict prefix of another
// token's path puts a value on a branch node. Which roles are present is
// explicit rather than inferred from a dynamic shape.
type Node struct {
	Value    *LeafValue       `json:"value,omitempty"`
	Children map[string]*Node `json:"children,omitempty"`
}

// HasValue reports whether the node carries a token value.
func (n *Node) HasValue() bool { return n.Value != nil }

// HasChildren reports whether the node has any child segments.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Build converts a flat token list into a tree keyed by path segments,
// creating intermediate branch nodes as needed. Tokens with empty paths are
// skipped (they carry no placement information). When two tokens share a
// path the later one wins; run conflict resolution first if that matters.
func Build(tokens []token.NormalizedToken) *Node {
	root := &Node{}
	for i := range tokens {
		t := &tokens[i]
		if len(t.Path) == 0 {
			continue
		}
		node := root
		for _, seg := range t.Path {
			if node.Children == nil {
				node.Children = make(map[string]*Node)
			}
			child, ok := node.Children[seg]
			if !ok {
				child = &Node{}
				node.Children[seg] = child
			}
			node = child
		}
		node.Value = &LeafValue{
			Value:    t.Value,
			Type:     t.Type,
			Source:   t.Source,
			Metadata: t.Metadata,
		}
	}
	return root
}

// DefaultSeparator joins path segments when flattening.
const DefaultSeparator = "/"

// Flatten walks the tree depth-first and collects every value-bearing node
// into a token whose name is its path joined by sep. An empty sep falls back
// to DefaultSeparator. Children are visited in sorted segment order so the
// output is deterministic; for trees built from tokens with pairwise-distinct
// paths the result has exactly one token per input, values preserved.
func Flatten(root *Node, sep string) []token.NormalizedToken {
	if sep == "" {
		sep = DefaultSeparator
	}
	var out []token.NormalizedToken
	if root != nil {
		flattenInto(root, nil, sep, &out)
	}
	return out
}

func flattenInto(n *Node, path []string, sep string, out *[]token.NormalizedToken) {
	if n.Value != nil && len(path) > 0 {
		p := make([]string, len(path))
		copy(p, path)
		*out = append(*out, token.NormalizedToken{
			NormalizedName: strings.Join(p, sep),
			Path:           p,
			Value:          n.Value.Value,
			Type:           n.Value.Type,
			Source:         n.Value.Source,
			Metadata:       n.Value.Metadata,
		})
	}

	segs := make([]string, 0, len(n.Children))
	for seg := range n.Children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	for _, seg := range segs {
		flattenInto(n.Children[seg], append(path, seg), sep, out)
	}
}
