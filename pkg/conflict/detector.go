// Package conflict finds collisions among normalized token names and resolves
// them with a chosen strategy, keeping an audit trail of every decision.
package conflict

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gnana997/tokenspec/pkg/token"
)

// NearDuplicateThreshold is the similarity above which two distinct names are
// reported as near-duplicates.
const NearDuplicateThreshold = 0.9

// DetectionResult is the output of Detect.
type DetectionResult struct {
	Conflicts   []token.ConflictReport `json:"conflicts"`
	TotalTokens int                    `json:"total_tokens"`
	UniqueNames int                    `json:"unique_names"`

	// TokensByType counts tokens per token type (color, spacing, ...).
	TokensByType map[string]int `json:"tokens_by_type"`
	// ConflictsByType counts reports per conflict type.
	ConflictsByType map[token.ConflictType]int `json:"conflicts_by_type"`
}

// Detect groups tokens by normalized name and reports collisions.
//
// A group whose members agree on type, value, and source is a pure duplicate
// and produces no report. Equal values from different sources stay visible as
// a low-severity duplicate_name. Differing values are a high-severity
// duplicate_name. Differing types produce a type_mismatch in addition to any
// duplicate_name finding for the same group. Distinct names that are nearly
// identical are reported as near_duplicate.
func Detect(tokens []token.NormalizedToken) *DetectionResult {
	result := &DetectionResult{
		Conflicts:       []token.ConflictReport{},
		TotalTokens:     len(tokens),
		TokensByType:    make(map[string]int),
		ConflictsByType: make(map[token.ConflictType]int),
	}

	// Group by normalized name, preserving first-occurrence order.
	groups := make(map[string][]*token.NormalizedToken)
	var names []string
	for i := range tokens {
		t := &tokens[i]
		result.TokensByType[t.Type]++
		if _, ok := groups[t.NormalizedName]; !ok {
			names = append(names, t.NormalizedName)
		}
		groups[t.NormalizedName] = append(groups[t.NormalizedName], t)
	}
	result.UniqueNames = len(groups)

	for _, name := range names {
		group := groups[name]
		if len(group) < 2 {
			continue
		}
		for _, report := range examineGroup(name, group) {
			result.Conflicts = append(result.Conflicts, report)
			result.ConflictsByType[report.Type]++
		}
	}

	for _, report := range nearDuplicates(names, groups) {
		result.Conflicts = append(result.Conflicts, report)
		result.ConflictsByType[report.Type]++
	}

	return result
}

// examineGroup reports collisions within one same-name group of size >= 2.
func examineGroup(name string, group []*token.NormalizedToken) []token.ConflictReport {
	var reports []token.ConflictReport

	sameType := true
	sameValue := true
	sameSource := true
	for _, t := range group[1:] {
		if t.Type != group[0].Type {
			sameType = false
		}
		if !valueEqual(t.Value, group[0].Value) {
			sameValue = false
		}
		if t.Source != group[0].Source {
			sameSource = false
		}
	}

	if sameType && sameValue && sameSource {
		return nil // pure duplicate
	}

	switch {
	case !sameValue:
		reports = append(reports, token.ConflictReport{
			Type:           token.ConflictDuplicateName,
			Name:           name,
			Severity:       token.SeverityHigh,
			Sources:        contributors(group),
			Recommendation: fmt.Sprintf("%d tokens share the name %q with different values; pick a resolution strategy or rename", len(group), name),
		})
	case !sameSource:
		reports = append(reports, token.ConflictReport{
			Type:           token.ConflictDuplicateName,
			Name:           name,
			Severity:       token.SeverityLow,
			Sources:        contributors(group),
			Recommendation: fmt.Sprintf("Same values for %q across sources; keeping either is safe", name),
		})
	}

	if !sameType {
		reports = append(reports, token.ConflictReport{
			Type:           token.ConflictTypeMismatch,
			Name:           name,
			Severity:       token.SeverityHigh,
			Sources:        contributors(group),
			Recommendation: fmt.Sprintf("Tokens named %q disagree on type; align the type or rename one side", name),
		})
	}

	return reports
}

// nearDuplicates scans all pairs of distinct names for high-similarity
// matches. Quadratic over unique names; fine at the tens-of-thousands scale
// this engine targets.
func nearDuplicates(names []string, groups map[string][]*token.NormalizedToken) []token.ConflictReport {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	var reports []token.ConflictReport
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			score := Similarity(a, b)
			if score <= NearDuplicateThreshold {
				continue
			}
			sources := contributors(groups[a])
			sources = append(sources, contributors(groups[b])...)
			reports = append(reports, token.ConflictReport{
				Type:           token.ConflictNearDuplicate,
				Name:           a,
				Severity:       token.SeverityLow,
				Sources:        sources,
				Recommendation: fmt.Sprintf("%q is %.0f%% similar to %q; check whether they should be one token", a, score*100, b),
			})
		}
	}
	return reports
}

// contributors records the per-member view carried on a conflict report.
func contributors(group []*token.NormalizedToken) []token.ConflictSource {
	out := make([]token.ConflictSource, 0, len(group))
	for _, t := range group {
		out = append(out, token.ConflictSource{
			Type:     t.Type,
			Value:    t.Value,
			Metadata: t.Metadata,
		})
	}
	return out
}

// valueEqual compares token values structurally. Values come from decoded
// JSON, so deep equality over maps/slices/scalars is the right comparison.
func valueEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
