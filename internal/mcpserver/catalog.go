package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/mark3labs/mcp-go/mcp"
)

// CatalogTool handles the badge_catalog MCP tool.
type CatalogTool struct {
	catalog *catalog.Catalog
}

// NewCatalogTool creates a CatalogTool over cat.
func NewCatalogTool(cat *catalog.Catalog) *CatalogTool {
	return &CatalogTool{catalog: cat}
}

// Definition returns the MCP tool definition for badge_catalog.
func (t *CatalogTool) Definition() mcp.Tool {
	return mcp.NewTool("badge_catalog",
		mcp.WithDescription("List GitHub achievement badges with rarity, tiers and how to earn them."),
		mcp.WithString("category",
			mcp.Description("Filter by category"),
			mcp.Enum(string(model.CategoryAchievement), string(model.CategoryHighlight), string(model.CategorySpecial)),
		),
		mcp.WithString("rarity",
			mcp.Description("Filter by rarity: common, rare, epic or legendary"),
		),
	)
}

// Handle processes the badge_catalog tool call.
func (t *CatalogTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	badges := t.catalog.All()

	if raw := req.GetString("category", ""); raw != "" {
		category, err := model.ParseCategory(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		badges = t.catalog.ByCategory(category)
	}

	if raw := req.GetString("rarity", ""); raw != "" {
		rarity, err := model.ParseRarity(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filtered := make([]model.BadgeDefinition, 0, len(badges))
		for _, b := range badges {
			if b.Rarity == rarity {
				filtered = append(filtered, b)
			}
		}
		badges = filtered
	}

	if len(badges) == 0 {
		return mcp.NewToolResultText("No badges match."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Badges (%d)\n\n", len(badges)))
	for _, b := range badges {
		sb.WriteString(fmt.Sprintf("### %s %s\n", b.Icon, b.Name))
		sb.WriteString(fmt.Sprintf("- **ID**: %s\n", b.ID))
		sb.WriteString(fmt.Sprintf("- **Category**: %s | **Rarity**: %s", b.Category, b.Rarity))
		if b.Retired {
			sb.WriteString(" | retired")
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("- %s\n", b.Description))
		sb.WriteString(fmt.Sprintf("- **How to earn**: %s\n", b.HowToEarn))
		for _, tier := range b.Tiers {
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", tier.Name, tier.Requirement))
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
