package main

import (
	"errors"
	"log/slog"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/mcpserver"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve badge tools over the Model Context Protocol (stdio)",
		Long: `Start an MCP server on stdin/stdout exposing:

  badge_catalog   list badges, optionally by category or rarity
  badge_evaluate  evaluate a GitHub user's badges
  assistant_ask   ask the badge assistant (requires an API key)`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(settings)
	if err != nil {
		return err
	}
	collector, err := newCollector(settings)
	if err != nil {
		return err
	}

	deps := mcpserver.Deps{
		Catalog:   cat,
		Engine:    newEngine(),
		Collector: collector,
		ImageTier: imageTier(settings),
		Version:   version,
	}

	a, err := newAssistant(cmd.Context(), settings)
	switch {
	case errors.Is(err, common.ErrMissingConfig):
		slog.Warn("assistant_ask disabled", "reason", common.UserMessage(err))
	case err != nil:
		return err
	default:
		defer func() { _ = a.Close() }()
		deps.Assistant = a
	}

	return server.ServeStdio(mcpserver.New(deps))
}
