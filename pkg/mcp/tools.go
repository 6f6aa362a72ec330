package mcp

import "github.com/mark3labs/mcp-go/mcp"

func detectPatternTool() mcp.Tool {
	return mcp.NewTool("detect_pattern",
		mcp.WithDescription("Detect the dominant naming pattern (separator, case style, depth) across a set of token names"),
		mcp.WithArray("names",
			mcp.Required(),
			mcp.Description("Token names to analyze"),
		),
	)
}

func normalizeTokensTool() mcp.Tool {
	return mcp.NewTool("normalize_tokens",
		mcp.WithDescription("Rewrite raw token names into a consistent naming pattern, returning normalized tokens with hierarchy paths"),
		mcp.WithArray("tokens",
			mcp.Required(),
			mcp.Description("Raw tokens, each with name, value, type, source and optional metadata"),
		),
		mcp.WithObject("pattern",
			mcp.Description("Target pattern override with separator and case; detected from input when omitted"),
		),
		mcp.WithBoolean("validate",
			mcp.Description("Drop tokens that normalize to an empty name instead of passing them through"),
		),
	)
}

func detectConflictsTool() mcp.Tool {
	return mcp.NewTool("detect_conflicts",
		mcp.WithDescription("Normalize raw tokens and report name collisions, type mismatches and near-duplicate names"),
		mcp.WithArray("tokens",
			mcp.Required(),
			mcp.Description("Raw tokens, each with name, value, type, source and optional metadata"),
		),
		mcp.WithObject("pattern",
			mcp.Description("Target pattern override with separator and case; detected from input when omitted"),
		),
	)
}

func resolveTokensTool() mcp.Tool {
	return mcp.NewTool("resolve_tokens",
		mcp.WithDescription("Run the full pipeline: normalize, detect conflicts and resolve them with the chosen strategy, returning tokens, conflicts and the audit trail"),
		mcp.WithArray("tokens",
			mcp.Required(),
			mcp.Description("Raw tokens, each with name, value, type, source and optional metadata"),
		),
		mcp.WithString("strategy",
			mcp.Description("Conflict resolution strategy: variables_priority (default), styles_priority, newest, rename_both or manual"),
		),
		mcp.WithObject("pattern",
			mcp.Description("Target pattern override with separator and case; detected from input when omitted"),
		),
		mcp.WithObject("custom_rules",
			mcp.Description("Map of original token name to forced normalized name, applied before pattern normalization"),
		),
		mcp.WithBoolean("validate",
			mcp.Description("Drop tokens that normalize to an empty name instead of passing them through"),
		),
	)
}

func getHierarchyTool() mcp.Tool {
	return mcp.NewTool("get_hierarchy",
		mcp.WithDescription("Run the pipeline and return the resolved tokens as a nested hierarchy tree"),
		mcp.WithArray("tokens",
			mcp.Required(),
			mcp.Description("Raw tokens, each with name, value, type, source and optional metadata"),
		),
		mcp.WithString("strategy",
			mcp.Description("Conflict resolution strategy applied before building the tree; defaults to variables_priority"),
		),
		mcp.WithObject("pattern",
			mcp.Description("Target pattern override with separator and case; detected from input when omitted"),
		),
	)
}
