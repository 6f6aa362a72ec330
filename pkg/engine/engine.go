// Package engine orchestrates the normalization pipeline: pattern detection,
// name normalization, conflict detection, and conflict resolution.
//
// The engine is a pure transformation over its inputs. It holds no state
// between invocations, does no I/O, and given identical tokens and
// configuration produces identical output.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gnana997/tokenspec/pkg/conflict"
	"github.com/gnana997/tokenspec/pkg/hierarchy"
	"github.com/gnana997/tokenspec/pkg/normalizer"
	"github.com/gnana997/tokenspec/pkg/pattern"
	"github.com/gnana997/tokenspec/pkg/token"
)

// Config is the per-invocation configuration surface.
type Config struct {
	// TargetPattern overrides pattern detection when non-nil.
	TargetPattern *token.Pattern `json:"target_pattern,omitempty"`

	// Strategy resolves detected conflicts. Defaults to variables_priority.
	Strategy conflict.Strategy `json:"strategy,omitempty"`

	// PreserveMetadata carries source metadata through to the output.
	PreserveMetadata bool `json:"preserve_metadata"`

	// CustomRules forces specific raw names to fixed normalized names,
	// applied before pattern-based normalization. Every application is
	// logged as a warning.
	CustomRules map[string]string `json:"custom_rules,omitempty"`

	// Validate drops tokens whose names cannot be normalized instead of
	// passing them through.
	Validate bool `json:"validate"`
}

// DefaultConfig returns the configuration used when the caller specifies
// nothing.
func DefaultConfig() Config {
	return Config{
		Strategy:         conflict.StrategyVariablesPriority,
		PreserveMetadata: true,
	}
}

// Options configures a new Engine.
type Options struct {
	// Logger receives pipeline progress. Nil discards all logging; the
	// engine never touches the process-wide default logger.
	Logger *slog.Logger

	// CacheSize bounds the normalization memo cache (0 = default).
	CacheSize int
}

// Engine runs the normalization pipeline.
type Engine struct {
	log  *slog.Logger
	norm *normalizer.Normalizer
}

// New creates an Engine.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		log:  log,
		norm: normalizer.New(opts.CacheSize),
	}
}

// NormalizeResult is the output of NormalizeTokens.
type NormalizeResult struct {
	Tokens   []token.NormalizedToken `json:"tokens"`
	Pattern  token.Pattern           `json:"pattern"`
	Warnings []string                `json:"warnings,omitempty"`
	Dropped  int                     `json:"dropped"`
}

// NormalizeTokens rewrites every raw token into the target convention and
// decomposes its name into path segments. Malformed names never abort the
// batch: they yield a warning and, when cfg.Validate is set, are excluded
// from the output.
func (e *Engine) NormalizeTokens(raw []token.RawToken, cfg Config) *NormalizeResult {
	result := &NormalizeResult{
		Tokens: make([]token.NormalizedToken, 0, len(raw)),
	}

	if cfg.TargetPattern != nil {
		result.Pattern = *cfg.TargetPattern
	} else {
		names := make([]string, len(raw))
		for i := range raw {
			names[i] = raw[i].Name
		}
		result.Pattern = pattern.Detect(names)
		e.log.Debug("detected naming pattern",
			"separator", result.Pattern.Separator,
			"case", result.Pattern.Case,
			"confidence", result.Pattern.Confidence)
	}

	for i := range raw {
		rt := &raw[i]

		var name string
		var path []string
		if forced, ok := cfg.CustomRules[rt.Name]; ok {
			name = forced
			path = normalizer.SplitWords(forced)
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"custom rule applied: %q -> %q", rt.Name, forced))
		} else {
			name, path = e.norm.Normalize(rt.Name, result.Pattern)
		}

		if len(path) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"token %d (%q, source %s): name normalizes to nothing", i, rt.Name, rt.Source))
			if cfg.Validate {
				result.Dropped++
				continue
			}
		}

		nt := token.NormalizedToken{
			OriginalName:   rt.Name,
			NormalizedName: name,
			Path:           path,
			Value:          rt.Value,
			Type:           rt.Type,
			Source:         rt.Source,
		}
		if cfg.PreserveMetadata {
			nt.Metadata = rt.Metadata
		}
		result.Tokens = append(result.Tokens, nt)
	}

	e.log.Info("normalized tokens",
		"input", len(raw),
		"output", len(result.Tokens),
		"dropped", result.Dropped,
		"warnings", len(result.Warnings))

	return result
}

// PipelineStats tracks per-phase timing and counts.
type PipelineStats struct {
	TotalTokens    int   `json:"total_tokens"`
	OutputTokens   int   `json:"output_tokens"`
	ConflictsFound int   `json:"conflicts_found"`
	ResolvedGroups int   `json:"resolved_groups"`
	NormalizeMs    int64 `json:"normalize_ms"`
	DetectMs       int64 `json:"detect_ms"`
	ResolveMs      int64 `json:"resolve_ms"`
	TotalMs        int64 `json:"total_ms"`
}

// PipelineResult is the output of a full Run: normalize, detect, resolve.
type PipelineResult struct {
	Tokens    []token.NormalizedToken   `json:"tokens"`
	Pattern   token.Pattern             `json:"pattern"`
	Detection *conflict.DetectionResult `json:"detection"`
	Audit     []token.AuditEntry        `json:"audit"`
	Warnings  []string                  `json:"warnings,omitempty"`
	Stats     PipelineStats             `json:"stats"`
}

// Run executes the full pipeline over raw tokens.
func (e *Engine) Run(raw []token.RawToken, cfg Config) (*PipelineResult, error) {
	start := time.Now()

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = conflict.StrategyVariablesPriority
	}
	if _, err := conflict.ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}

	normStart := time.Now()
	normalized := e.NormalizeTokens(raw, cfg)
	normalizeMs := time.Since(normStart).Milliseconds()

	detectStart := time.Now()
	detection := conflict.Detect(normalized.Tokens)
	detectMs := time.Since(detectStart).Milliseconds()

	resolveStart := time.Now()
	resolution, err := conflict.Resolve(normalized.Tokens, detection.Conflicts, strategy)
	if err != nil {
		return nil, err
	}
	resolveMs := time.Since(resolveStart).Milliseconds()

	warnings := append(normalized.Warnings, resolution.Warnings...)

	e.log.Info("pipeline complete",
		"tokens", len(resolution.Tokens),
		"conflicts", len(detection.Conflicts),
		"strategy", strategy,
		"ms", time.Since(start).Milliseconds())

	return &PipelineResult{
		Tokens:    resolution.Tokens,
		Pattern:   normalized.Pattern,
		Detection: detection,
		Audit:     resolution.Audit,
		Warnings:  warnings,
		Stats: PipelineStats{
			TotalTokens:    len(raw),
			OutputTokens:   len(resolution.Tokens),
			ConflictsFound: len(detection.Conflicts),
			ResolvedGroups: len(resolution.Audit),
			NormalizeMs:    normalizeMs,
			DetectMs:       detectMs,
			ResolveMs:      resolveMs,
			TotalMs:        time.Since(start).Milliseconds(),
		},
	}, nil
}

// BuildHierarchy converts a flat token list into the segment-keyed tree form.
func (e *Engine) BuildHierarchy(tokens []token.NormalizedToken) *hierarchy.Node {
	return hierarchy.Build(tokens)
}

// FlattenHierarchy converts a tree back to a flat token list, joining path
// segments with sep ("" = the default separator).
func (e *Engine) FlattenHierarchy(root *hierarchy.Node, sep string) []token.NormalizedToken {
	return hierarchy.Flatten(root, sep)
}
