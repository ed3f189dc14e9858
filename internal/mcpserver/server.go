// Package mcpserver exposes the badge catalog, evaluation and assistant as
// MCP tools.
package mcpserver

import (
	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/mark3labs/mcp-go/server"
)

// Deps are the components the tools are built on.
type Deps struct {
	Catalog   *catalog.Catalog
	Engine    *achievement.Engine
	Collector session.Collector
	Assistant llm.Assistant
	ImageTier model.ResolutionTier
	Version   string
}

// New creates the MCP server with every tool registered. The assistant tool
// is only registered when an assistant is configured.
func New(deps Deps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"octobadge",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	catalogTool := NewCatalogTool(deps.Catalog)
	s.AddTool(catalogTool.Definition(), catalogTool.Handle)

	evaluateTool := NewEvaluateTool(deps.Catalog, deps.Engine, deps.Collector)
	s.AddTool(evaluateTool.Definition(), evaluateTool.Handle)

	if deps.Assistant != nil {
		askTool := NewAskTool(deps.Assistant, deps.ImageTier)
		s.AddTool(askTool.Definition(), askTool.Handle)
	}

	return s
}

const instructions = `octobadge knows the GitHub achievement badges.
Use badge_catalog to list badges, badge_evaluate to see which badges a GitHub user has earned and how close they are to the next tier, and assistant_ask for advice, recent news, or a visual badge concept.`
