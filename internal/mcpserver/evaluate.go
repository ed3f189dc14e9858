package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// EvaluateTool handles the badge_evaluate MCP tool.
type EvaluateTool struct {
	catalog   *catalog.Catalog
	engine    *achievement.Engine
	collector session.Collector
}

// NewEvaluateTool creates an EvaluateTool.
func NewEvaluateTool(cat *catalog.Catalog, engine *achievement.Engine, collector session.Collector) *EvaluateTool {
	return &EvaluateTool{catalog: cat, engine: engine, collector: collector}
}

// Definition returns the MCP tool definition for badge_evaluate.
func (t *EvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("badge_evaluate",
		mcp.WithDescription("Fetch a GitHub user's public metrics and report which badges they own, tier progress and the next goal."),
		mcp.WithString("login",
			mcp.Required(),
			mcp.Description("GitHub username"),
		),
	)
}

// Handle processes the badge_evaluate tool call. Every call uses a fresh
// session, so manual ownership flags never leak between callers.
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := strings.TrimSpace(req.GetString("login", ""))
	if login == "" {
		return mcp.NewToolResultError("'login' is required"), nil
	}

	s := session.New(t.catalog, t.engine, t.collector)
	if err := s.Connect(ctx, login); err != nil {
		return mcp.NewToolResultError(common.UserMessage(err)), nil
	}

	return mcp.NewToolResultText(formatEvaluation(s)), nil
}

func formatEvaluation(s *session.Session) string {
	profile, _ := s.Profile()
	stats := s.Stats()
	summary := s.Summary()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", profile.Login))
	if profile.Name != "" {
		sb.WriteString(fmt.Sprintf("- **Name**: %s\n", profile.Name))
	}
	sb.WriteString(fmt.Sprintf("- **Joined**: %s\n", profile.CreatedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("- **Stars**: %d | **Merged PRs**: %d\n", stats.TotalStars, stats.MergedPRs))
	sb.WriteString(fmt.Sprintf("- **Collection**: %d/%d owned, %d/%d achievements\n",
		summary.Owned, summary.Total, summary.AchievementsOwned, summary.AchievementsTotal))
	if summary.NextGoal != nil {
		sb.WriteString(fmt.Sprintf("- **Next goal**: %s (%s)\n", summary.NextGoal.Name, summary.NextGoal.HowToEarn))
	}

	sb.WriteString("\n### Badges\n\n")
	for _, b := range s.Badges() {
		sb.WriteString(formatBadgeLine(b))
	}
	return sb.String()
}

func formatBadgeLine(b model.EvaluatedBadge) string {
	mark := " "
	if b.Owned {
		mark = "x"
	}
	line := fmt.Sprintf("- [%s] %s %s", mark, b.Icon, b.Name)
	if b.HasTiers() {
		parts := make([]string, 0, len(b.Tiers))
		for _, tier := range b.Tiers {
			parts = append(parts, fmt.Sprintf("%s %d/%d", tier.Name, tier.Progress, tier.Threshold))
		}
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return line + "\n"
}
