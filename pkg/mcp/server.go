package mcp

import (
	"sync/atomic"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/mcplog"
	"github.com/gnana997/widgetspec/pkg/syntax"
)

const serverVersion = "0.1.0-dev"

// Server exposes the widget catalog and calculators as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	query     atomic.Pointer[catalog.QueryService]
	checker   *syntax.Checker // nil disables check_syntax
	logger    *mcplog.Logger  // nil disables call logging
}

// NewServer creates a server over qs. checker and logger are optional.
func NewServer(qs *catalog.QueryService, checker *syntax.Checker, logger *mcplog.Logger) *Server {
	s := &Server{checker: checker, logger: logger}
	s.query.Store(qs)

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("widgetspec", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listCategoriesTool(), Handler: s.handleListCategories},
		server.ServerTool{Tool: listWidgetsTool(), Handler: s.handleListWidgets},
		server.ServerTool{Tool: getWidgetTool(), Handler: s.handleGetWidget},
		server.ServerTool{Tool: getRecommendedWidgetsTool(), Handler: s.handleGetRecommendedWidgets},
		server.ServerTool{Tool: getWidgetFAQsTool(), Handler: s.handleGetWidgetFAQs},
		server.ServerTool{Tool: searchWidgetsTool(), Handler: s.handleSearchWidgets},
		server.ServerTool{Tool: calculateBMITool(), Handler: s.handleCalculateBMI},
		server.ServerTool{Tool: calculateLoanTool(), Handler: s.handleCalculateLoan},
		server.ServerTool{Tool: convertColorTool(), Handler: s.handleConvertColor},
		server.ServerTool{Tool: checkSyntaxTool(), Handler: s.handleCheckSyntax},
	)

	return s
}

// SetQuery swaps in a reloaded catalog. Calls already in flight finish on
// the snapshot they started with.
func (s *Server) SetQuery(qs *catalog.QueryService) {
	s.query.Store(qs)
}

// Query returns the catalog snapshot currently served.
func (s *Server) Query() *catalog.QueryService {
	return s.query.Load()
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
