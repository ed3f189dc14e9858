package mcpserver

import (
	"context"
	"testing"

	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/assistant"
	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/github"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/Veraticus/octobadge/internal/testutil"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestNew(t *testing.T) {
	s := New(Deps{
		Catalog:   catalog.Default(),
		Engine:    achievement.NewEngine(),
		Collector: github.NewCollector(testutil.NewFetcher(0, 0, testutil.LegacyCreatedAt)),
		Assistant: llm.NewMockAssistant(),
	})
	require.NotNil(t, s)
}

func TestCatalogTool_Definition(t *testing.T) {
	def := NewCatalogTool(catalog.Default()).Definition()
	assert.Equal(t, "badge_catalog", def.Name)
	assert.Contains(t, def.InputSchema.Properties, "category")
	assert.Contains(t, def.InputSchema.Properties, "rarity")
	assert.Empty(t, def.InputSchema.Required)
}

func TestCatalogTool_Handle(t *testing.T) {
	tool := NewCatalogTool(catalog.Default())

	tests := []struct {
		name     string
		args     map[string]interface{}
		contains []string
		isError  bool
	}{
		{
			name:     "all badges",
			args:     map[string]interface{}{},
			contains: []string{"Badges (7)", "Starstruck", "16 stars", "retired"},
		},
		{
			name:     "by category",
			args:     map[string]interface{}{"category": "Highlight"},
			contains: []string{"Badges (3)", "Arctic Code Vault", "GitHub Sponsor", "Mars 2020"},
		},
		{
			name:     "by rarity",
			args:     map[string]interface{}{"rarity": "legendary"},
			contains: []string{"Badges (2)"},
		},
		{
			name:     "category and rarity",
			args:     map[string]interface{}{"category": "Achievement", "rarity": "Epic"},
			contains: []string{"Badges (1)", "YOLO"},
		},
		{
			name:     "no match",
			args:     map[string]interface{}{"category": "Special"},
			contains: []string{"No badges match."},
		},
		{
			name:     "unknown category",
			args:     map[string]interface{}{"category": "Bogus"},
			contains: []string{"unknown badge category"},
			isError:  true,
		},
		{
			name:     "unknown rarity",
			args:     map[string]interface{}{"rarity": "mythic"},
			contains: []string{"unknown badge rarity"},
			isError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.isError, res.IsError)
			text := resultText(res)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
		})
	}
}

func newEvaluateTool(fetcher github.Fetcher) *EvaluateTool {
	return NewEvaluateTool(catalog.Default(), achievement.NewEngine(), github.NewCollector(fetcher))
}

func TestEvaluateTool_Definition(t *testing.T) {
	def := newEvaluateTool(github.NewMockFetcher()).Definition()
	assert.Equal(t, "badge_evaluate", def.Name)
	assert.Equal(t, []string{"login"}, def.InputSchema.Required)
}

func TestEvaluateTool_Handle(t *testing.T) {
	tool := newEvaluateTool(testutil.NewFetcher(200, 3, testutil.LegacyCreatedAt))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"login": " octocat "}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(res)
	assert.Contains(t, text, "## octocat")
	assert.Contains(t, text, "**Joined**: 2019-01-01")
	assert.Contains(t, text, "**Stars**: 200 | **Merged PRs**: 3")
	assert.Contains(t, text, "[x] ")
	assert.Contains(t, text, "Starstruck (Bronze 200/16, Silver 200/128, Gold 200/4096)")
	assert.Contains(t, text, "Pull Shark (Bronze 3/2, Silver 3/16, Gold 3/1024)")
}

func TestEvaluateTool_Errors(t *testing.T) {
	t.Run("missing login", func(t *testing.T) {
		tool := newEvaluateTool(github.NewMockFetcher())
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "login")
	})

	t.Run("unknown user", func(t *testing.T) {
		fetcher := testutil.NewFetcher(0, 0, testutil.LegacyCreatedAt)
		fetcher.FetchProfileFn = func(context.Context, string) (model.UserProfile, error) {
			return model.UserProfile{}, common.ErrUserNotFound
		}
		tool := newEvaluateTool(fetcher)

		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"login": "ghost"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Equal(t, session.ConnectErrorMessage, resultText(res))
	})
}

func TestAskTool_Definition(t *testing.T) {
	def := NewAskTool(llm.NewMockAssistant(), "").Definition()
	assert.Equal(t, "assistant_ask", def.Name)
	assert.Equal(t, []string{"prompt"}, def.InputSchema.Required)
	assert.Contains(t, def.InputSchema.Properties, "mode")
}

func TestAskTool_Modes(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		mode   string
		want   string
	}{
		{name: "default smart reasons", prompt: "Which badge is rarest?", want: "reasoned: Which badge is rarest?"},
		{name: "smart plan", prompt: "Plan my week", mode: "smart", want: "reasoned: Plan my week"},
		{name: "fast", prompt: "hi", mode: "fast", want: "short: hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewAskTool(llm.NewMockAssistant(), model.Resolution1K)
			args := map[string]interface{}{"prompt": tt.prompt}
			if tt.mode != "" {
				args["mode"] = tt.mode
			}

			res, err := tool.Handle(context.Background(), makeReq(args))
			require.NoError(t, err)
			assert.False(t, res.IsError)
			assert.Equal(t, tt.want, resultText(res))
		})
	}
}

func TestAskTool_SearchSources(t *testing.T) {
	mock := llm.NewMockAssistant()
	mock.GroundedSearchFn = func(context.Context, string) llm.SearchResult {
		return llm.SearchResult{
			Text: "Badges were updated.",
			Sources: []model.Source{
				{Title: "Changelog", URI: "https://github.blog/changelog"},
				{URI: "https://docs.github.com"},
			},
		}
	}
	tool := NewAskTool(mock, "")

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"prompt": "What is new?"}))
	require.NoError(t, err)

	text := resultText(res)
	assert.Contains(t, text, "Badges were updated.")
	assert.Contains(t, text, "- [Changelog](https://github.blog/changelog)")
	assert.Contains(t, text, "- [https://docs.github.com](https://docs.github.com)")
}

func TestAskTool_Creative(t *testing.T) {
	mock := llm.NewMockAssistant()
	tool := NewAskTool(mock, model.Resolution4K)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"prompt": "rocket", "mode": "creative"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, `Here is a concept design for "rocket":`, resultText(res))
	var image mcp.ImageContent
	for _, c := range res.Content {
		if ic, ok := c.(mcp.ImageContent); ok {
			image = ic
		}
	}
	assert.Equal(t, "AAAA", image.Data)
	assert.Equal(t, "image/png", image.MIMEType)
	assert.Equal(t, []model.ResolutionTier{model.Resolution4K}, mock.ImageTiers)
}

func TestAskTool_CreativeFailure(t *testing.T) {
	mock := llm.NewMockAssistant()
	mock.ImageConceptFn = func(context.Context, string, model.ResolutionTier) (string, bool) {
		return "", false
	}
	tool := NewAskTool(mock, "")

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"prompt": "rocket", "mode": "creative"}))
	require.NoError(t, err)
	assert.Equal(t, assistant.ImageApology, resultText(res))
}

func TestAskTool_Errors(t *testing.T) {
	tool := NewAskTool(llm.NewMockAssistant(), "")

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"prompt": "  "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"prompt": "hi", "mode": "turbo"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "unknown assistant mode")
}

func TestSplitDataURI(t *testing.T) {
	tests := []struct {
		ref      string
		wantData string
		wantMime string
		wantOK   bool
	}{
		{ref: "data:image/png;base64,AAAA", wantData: "AAAA", wantMime: "image/png", wantOK: true},
		{ref: "data:image/jpeg;base64,", wantData: "", wantMime: "image/jpeg", wantOK: true},
		{ref: "https://example.com/a.png"},
		{ref: "data:image/png,AAAA"},
		{ref: "data:;base64,AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			data, mime, ok := splitDataURI(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantData, data)
			assert.Equal(t, tt.wantMime, mime)
		})
	}
}
