// Package token defines the shared data model for the normalization pipeline:
// raw tokens as reported by a source, normalized tokens with decomposed paths,
// detected naming patterns, and conflict/audit records.
package token

import "time"

// Separator is a naming-convention segment separator.
type Separator string

const (
	SeparatorSlash      Separator = "/"
	SeparatorDot        Separator = "."
	SeparatorHyphen     Separator = "-"
	SeparatorUnderscore Separator = "_"
	SeparatorNone       Separator = "none"
)

// CaseStyle is the per-word casing of a naming convention.
type CaseStyle string

const (
	CaseKebab          CaseStyle = "kebab"
	CaseCamel          CaseStyle = "camel"
	CasePascal         CaseStyle = "pascal"
	CaseSnake          CaseStyle = "snake"
	CaseScreamingSnake CaseStyle = "screaming-snake"
)

// Pattern describes a naming convention, either detected from a sample of
// names or supplied explicitly as a target.
type Pattern struct {
	Separator   Separator `json:"separator"`
	Case        CaseStyle `json:"case"`
	Depth       int       `json:"depth"`
	Confidence  float64   `json:"confidence"`
	SampleCount int       `json:"sample_count"`
	Examples    []string  `json:"examples,omitempty"`
}

// DefaultPattern is the pattern assumed when detection has nothing to go on.
func DefaultPattern() Pattern {
	return Pattern{Separator: SeparatorHyphen, Case: CaseKebab}
}

// RawToken is an unprocessed design value as reported by a source.
// Value may be a scalar or a nested structure (decoded JSON).
type RawToken struct {
	Name     string         `json:"name"`
	Value    any            `json:"value"`
	Type     string         `json:"type"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Source kinds reported by extractors.
const (
	SourceVariable = "variable"
	SourceStyle    = "style"
)

// NormalizedToken is a raw token rewritten into the target naming convention
// with its name decomposed into an ordered path of segments.
type NormalizedToken struct {
	OriginalName   string         `json:"original_name"`
	NormalizedName string         `json:"normalized_name"`
	Path           []string       `json:"path"`
	Value          any            `json:"value"`
	Type           string         `json:"type"`
	Source         string         `json:"source"`
	Metadata       map[string]any `json:"metadata,omitempty"`

	// Resolution bookkeeping, populated by the conflict resolver.
	WasConflicted      bool            `json:"was_conflicted"`
	ResolutionStrategy string          `json:"resolution_strategy,omitempty"`
	PreResolutionName  string          `json:"pre_resolution_name,omitempty"`
	ConflictDetails    *ConflictReport `json:"conflict_details,omitempty"`
}

// ConflictType classifies a detected collision.
type ConflictType string

const (
	ConflictDuplicateName ConflictType = "duplicate_name"
	ConflictTypeMismatch  ConflictType = "type_mismatch"
	ConflictNearDuplicate ConflictType = "near_duplicate"
)

// Severity is the severity of a conflict report.
type Severity string

const (
	SeverityHigh Severity = "high"
	SeverityLow  Severity = "low"
)

// ConflictSource describes one contributor to a conflict.
type ConflictSource struct {
	Type     string         `json:"type"`
	Value    any            `json:"value"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ConflictReport describes one detected collision among normalized names.
type ConflictReport struct {
	Type           ConflictType     `json:"type"`
	Name           string           `json:"name"`
	Severity       Severity         `json:"severity"`
	Sources        []ConflictSource `json:"sources"`
	Recommendation string           `json:"recommendation"`
}

// AuditEntry records one automatic resolution decision.
type AuditEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Strategy  string    `json:"strategy"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// metadataTimeKeys are checked in order when looking for a token timestamp.
var metadataTimeKeys = []string{"updatedAt", "modifiedAt", "timestamp"}

// MetadataTime extracts a timestamp from token metadata. It accepts RFC 3339
// strings and numeric epoch values (seconds or milliseconds). The bool reports
// whether any recognized timestamp was found.
func MetadataTime(md map[string]any) (time.Time, bool) {
	for _, key := range metadataTimeKeys {
		v, ok := md[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				return ts, true
			}
		case float64:
			// JSON numbers decode as float64. Values above ~1e12 are
			// epoch milliseconds, below that epoch seconds.
			if t > 1e12 {
				return time.UnixMilli(int64(t)), true
			}
			return time.Unix(int64(t), 0), true
		case int64:
			if t > 1e12 {
				return time.UnixMilli(t), true
			}
			return time.Unix(t, 0), true
		}
	}
	return time.Time{}, false
}
