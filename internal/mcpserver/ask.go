package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/octobadge/internal/assistant"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/mark3labs/mcp-go/mcp"
)

// AskTool handles the assistant_ask MCP tool.
type AskTool struct {
	assistant llm.Assistant
	imageTier model.ResolutionTier
}

// NewAskTool creates an AskTool. An empty tier means 1K.
func NewAskTool(a llm.Assistant, tier model.ResolutionTier) *AskTool {
	if tier == "" {
		tier = model.Resolution1K
	}
	return &AskTool{assistant: a, imageTier: tier}
}

// Definition returns the MCP tool definition for assistant_ask.
func (t *AskTool) Definition() mcp.Tool {
	return mcp.NewTool("assistant_ask",
		mcp.WithDescription("Ask the badge assistant. Smart mode picks reasoning or web search from the question; "+
			"fast mode answers briefly; creative mode returns a badge concept image."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The question or badge idea"),
		),
		mcp.WithString("mode",
			mcp.Description("Assistant mode (default: smart)"),
			mcp.Enum(string(model.ModeFast), string(model.ModeSmart), string(model.ModeCreative)),
		),
	)
}

// Handle processes the assistant_ask tool call with a single-turn
// conversation.
func (t *AskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := strings.TrimSpace(req.GetString("prompt", ""))
	if prompt == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}

	mode, err := model.ParseMode(req.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conv := assistant.New(t.assistant,
		assistant.WithMode(mode),
		assistant.WithImageTier(t.imageTier),
	)
	if err := conv.Submit(ctx, prompt); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	transcript := conv.Transcript()
	reply := transcript[len(transcript)-1]

	if len(reply.Images) > 0 {
		if data, mime, ok := splitDataURI(reply.Images[0]); ok {
			return mcp.NewToolResultImage(reply.Text, data, mime), nil
		}
		return mcp.NewToolResultText(reply.Text + "\n\n" + reply.Images[0]), nil
	}

	return mcp.NewToolResultText(formatReply(reply)), nil
}

func formatReply(msg model.ChatMessage) string {
	if len(msg.Sources) == 0 {
		return msg.Text
	}
	var sb strings.Builder
	sb.WriteString(msg.Text)
	sb.WriteString("\n\nSources:\n")
	for _, src := range msg.Sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		sb.WriteString(fmt.Sprintf("- [%s](%s)\n", title, src.URI))
	}
	return sb.String()
}

// splitDataURI splits "data:<mime>;base64,<payload>".
func splitDataURI(ref string) (data, mime string, ok bool) {
	rest, found := strings.CutPrefix(ref, "data:")
	if !found {
		return "", "", false
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime, found = strings.CutSuffix(header, ";base64")
	if !found || mime == "" {
		return "", "", false
	}
	return payload, mime, true
}
