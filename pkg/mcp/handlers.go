package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/tokenspec/pkg/conflict"
	"github.com/gnana997/tokenspec/pkg/engine"
	"github.com/gnana997/tokenspec/pkg/hierarchy"
	"github.com/gnana997/tokenspec/pkg/pattern"
	"github.com/gnana997/tokenspec/pkg/token"
)

// decodeArg re-marshals a raw argument value into a typed destination.
// MCP arguments arrive as map[string]any; going through JSON gives the same
// decoding rules as the CLI input format.
func decodeArg(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// decodeTokens extracts the required "tokens" argument.
func decodeTokens(req mcp.CallToolRequest) ([]token.RawToken, error) {
	raw, ok := req.GetArguments()["tokens"]
	if !ok {
		return nil, fmt.Errorf("missing required argument: tokens")
	}
	var tokens []token.RawToken
	if err := decodeArg(raw, &tokens); err != nil {
		return nil, fmt.Errorf("invalid tokens argument: %w", err)
	}
	return tokens, nil
}

// decodeConfig builds an engine config from the optional pattern, strategy,
// custom_rules and validate arguments.
func decodeConfig(req mcp.CallToolRequest) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	args := req.GetArguments()

	if raw, ok := args["pattern"]; ok && raw != nil {
		var p token.Pattern
		if err := decodeArg(raw, &p); err != nil {
			return cfg, fmt.Errorf("invalid pattern argument: %w", err)
		}
		cfg.TargetPattern = &p
	}

	if s := req.GetString("strategy", ""); s != "" {
		strategy, err := conflict.ParseStrategy(s)
		if err != nil {
			return cfg, err
		}
		cfg.Strategy = strategy
	}

	if raw, ok := args["custom_rules"]; ok && raw != nil {
		var rules map[string]string
		if err := decodeArg(raw, &rules); err != nil {
			return cfg, fmt.Errorf("invalid custom_rules argument: %w", err)
		}
		cfg.CustomRules = rules
	}

	cfg.Validate = req.GetBool("validate", false)
	return cfg, nil
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleDetectPattern(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["names"]
	if !ok {
		return mcp.NewToolResultError("missing required argument: names"), nil
	}
	var names []string
	if err := decodeArg(raw, &names); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid names argument: %v", err)), nil
	}

	return jsonResult(pattern.Detect(names))
}

func (s *Server) handleNormalizeTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tokens, err := decodeTokens(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := decodeConfig(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(s.engine.NormalizeTokens(tokens, cfg))
}

func (s *Server) handleDetectConflicts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tokens, err := decodeTokens(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := decodeConfig(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	normalized := s.engine.NormalizeTokens(tokens, cfg)
	detection := conflict.Detect(normalized.Tokens)

	return jsonResult(struct {
		Pattern   token.Pattern             `json:"pattern"`
		Detection *conflict.DetectionResult `json:"detection"`
		Warnings  []string                  `json:"warnings,omitempty"`
	}{
		Pattern:   normalized.Pattern,
		Detection: detection,
		Warnings:  normalized.Warnings,
	})
}

func (s *Server) handleResolveTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tokens, err := decodeTokens(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := decodeConfig(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.Run(tokens, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleGetHierarchy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tokens, err := decodeTokens(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := decodeConfig(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.Run(tokens, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(struct {
		Pattern   token.Pattern   `json:"pattern"`
		Hierarchy *hierarchy.Node `json:"hierarchy"`
		Warnings  []string        `json:"warnings,omitempty"`
	}{
		Pattern:   result.Pattern,
		Hierarchy: s.engine.BuildHierarchy(result.Tokens),
		Warnings:  result.Warnings,
	})
}
