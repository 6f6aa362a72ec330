package conflict

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gnana997/tokenspec/pkg/token"
)

// Strategy selects how a conflict group is resolved.
type Strategy string

const (
	// StrategyVariablesPriority keeps the member sourced from a variable,
	// falling back to the first member encountered.
	StrategyVariablesPriority Strategy = "variables_priority"
	// StrategyStylesPriority keeps the member sourced from a style,
	// falling back to the first member encountered.
	StrategyStylesPriority Strategy = "styles_priority"
	// StrategyNewest keeps the member with the greatest metadata timestamp.
	// When no member carries a timestamp the first member is kept; that
	// fallback is deliberate policy, not an error.
	StrategyNewest Strategy = "newest"
	// StrategyRenameBoth keeps every member under a source-suffixed name.
	StrategyRenameBoth Strategy = "rename_both"
	// StrategyManual keeps every member and defers the decision to a human
	// reviewer. Never reduces token count.
	StrategyManual Strategy = "manual"
)

// ParseStrategy validates a strategy string.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyVariablesPriority, StrategyStylesPriority, StrategyNewest,
		StrategyRenameBoth, StrategyManual:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown resolution strategy %q", s)
}

// Resolution is the output of Resolve.
type Resolution struct {
	Tokens   []token.NormalizedToken `json:"tokens"`
	Audit    []token.AuditEntry      `json:"audit"`
	Warnings []string                `json:"warnings,omitempty"`
}

// Result tags recorded in the audit trail.
const (
	resultKeptVariable = "kept_variable"
	resultKeptStyle    = "kept_style"
	resultKeptNewest   = "kept_newest"
	resultKeptFirst    = "kept_first"
	resultRenamedAll   = "renamed_all"
)

// now is a replaceable clock for testing.
var now = time.Now

// Resolve applies strategy to every conflict group and returns the final flat
// token list plus the audit trail. Non-conflicted tokens pass through
// unchanged. Near-duplicate reports involve distinct names with nothing to
// choose between, so they are advisory only and do not affect the output.
func Resolve(tokens []token.NormalizedToken, conflicts []token.ConflictReport, strategy Strategy) (*Resolution, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}

	// Names that need resolution, each mapped to its report. When a group
	// produced both a duplicate_name and a type_mismatch, the duplicate_name
	// report carries the value detail and wins the details slot.
	conflicted := make(map[string]*token.ConflictReport)
	for i := range conflicts {
		c := &conflicts[i]
		if c.Type == token.ConflictNearDuplicate {
			continue
		}
		if prev, ok := conflicted[c.Name]; ok && prev.Type == token.ConflictDuplicateName {
			continue
		}
		conflicted[c.Name] = c
	}

	res := &Resolution{
		Tokens: make([]token.NormalizedToken, 0, len(tokens)),
		Audit:  []token.AuditEntry{},
	}

	processed := make(map[string]bool)
	for i := range tokens {
		t := tokens[i]
		report, ok := conflicted[t.NormalizedName]
		if !ok {
			t.WasConflicted = false
			res.Tokens = append(res.Tokens, t)
			continue
		}
		if processed[t.NormalizedName] {
			continue // group handled at its first member
		}
		processed[t.NormalizedName] = true

		group := collectGroup(tokens[i:], t.NormalizedName)
		resolveGroup(res, group, report, strategy)
	}

	return res, nil
}

// collectGroup gathers every member of a name group, preserving input order.
func collectGroup(tokens []token.NormalizedToken, name string) []token.NormalizedToken {
	var group []token.NormalizedToken
	for i := range tokens {
		if tokens[i].NormalizedName == name {
			group = append(group, tokens[i])
		}
	}
	return group
}

// resolveGroup applies the strategy to one conflict group and appends the
// surviving tokens, an audit entry, and warnings to res.
func resolveGroup(res *Resolution, group []token.NormalizedToken, report *token.ConflictReport, strategy Strategy) {
	name := report.Name

	switch strategy {
	case StrategyVariablesPriority, StrategyStylesPriority, StrategyNewest:
		winner, result := pickWinner(group, strategy)
		winner.WasConflicted = true
		winner.ResolutionStrategy = string(strategy)
		winner.ConflictDetails = report
		res.Tokens = append(res.Tokens, winner)
		res.Audit = append(res.Audit, auditEntry(name, strategy, result))
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"conflict on %q: kept 1 of %d tokens (%s)", name, len(group), result))

	case StrategyRenameBoth:
		seen := make(map[string]int)
		for _, member := range group {
			tag := member.Source
			if tag == "" {
				tag = "unknown"
			}
			seen[tag]++
			if n := seen[tag]; n > 1 {
				// Two members from the same source kind still need
				// distinct names.
				tag = fmt.Sprintf("%s-%d", tag, n)
			}
			member.PreResolutionName = member.NormalizedName
			member.NormalizedName = member.NormalizedName + "-" + tag
			if len(member.Path) > 0 {
				path := make([]string, len(member.Path))
				copy(path, member.Path)
				path[len(path)-1] = path[len(path)-1] + "-" + tag
				member.Path = path
			} else {
				member.Path = []string{tag}
			}
			member.WasConflicted = true
			member.ResolutionStrategy = string(StrategyRenameBoth)
			member.ConflictDetails = report
			res.Tokens = append(res.Tokens, member)
		}
		res.Audit = append(res.Audit, auditEntry(name, strategy, resultRenamedAll))
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"conflict on %q: renamed all %d tokens with source suffixes", name, len(group)))

	case StrategyManual:
		for _, member := range group {
			member.WasConflicted = true
			member.ResolutionStrategy = string(StrategyManual)
			member.ConflictDetails = report
			res.Tokens = append(res.Tokens, member)
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"conflict on %q: deferred to manual review (%d tokens flagged)", name, len(group)))
	}
}

// pickWinner chooses the surviving member for single-winner strategies and
// returns the audit result tag.
func pickWinner(group []token.NormalizedToken, strategy Strategy) (token.NormalizedToken, string) {
	switch strategy {
	case StrategyVariablesPriority:
		for _, member := range group {
			if member.Source == token.SourceVariable {
				return member, resultKeptVariable
			}
		}
	case StrategyStylesPriority:
		for _, member := range group {
			if member.Source == token.SourceStyle {
				return member, resultKeptStyle
			}
		}
	case StrategyNewest:
		best := -1
		var bestTime time.Time
		for i, member := range group {
			ts, ok := token.MetadataTime(member.Metadata)
			if !ok {
				continue
			}
			if best == -1 || ts.After(bestTime) {
				best, bestTime = i, ts
			}
		}
		if best >= 0 {
			return group[best], resultKeptNewest
		}
	}
	// Documented fallback: first member encountered.
	return group[0], resultKeptFirst
}

func auditEntry(name string, strategy Strategy, result string) token.AuditEntry {
	return token.AuditEntry{
		ID:        uuid.NewString(),
		Name:      name,
		Strategy:  string(strategy),
		Result:    result,
		Timestamp: now(),
	}
}
