// Package mcp exposes the token normalization engine over the Model Context
// Protocol on stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/tokenspec/pkg/engine"
	"github.com/gnana997/tokenspec/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for tokenspec, exposing pattern detection,
// normalization, conflict detection, resolution and hierarchy tools.
type Server struct {
	mcpServer *server.MCPServer
	engine    *engine.Engine
	logger    *mcplog.Logger // nil disables tool call logging
}

// NewServer creates a new MCP server backed by the given engine. A non-nil
// mcplog.Logger records every tool call as a JSONL entry.
func NewServer(eng *engine.Engine, logger *mcplog.Logger) *Server {
	s := &Server{engine: eng, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("tokenspec", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: detectPatternTool(), Handler: s.handleDetectPattern},
		server.ServerTool{Tool: normalizeTokensTool(), Handler: s.handleNormalizeTokens},
		server.ServerTool{Tool: detectConflictsTool(), Handler: s.handleDetectConflicts},
		server.ServerTool{Tool: resolveTokensTool(), Handler: s.handleResolveTokens},
		server.ServerTool{Tool: getHierarchyTool(), Handler: s.handleGetHierarchy},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
