package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/octobadge/internal/assistant"
	"github.com/Veraticus/octobadge/internal/cli"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Ask the badge assistant a single question",
		Long: `Ask the badge assistant one question.

Modes:
  fast      brief answer from a lightweight model
  smart     web search for news and updates, deep reasoning for everything else
  creative  generate a concept image for a badge idea`,
		Example: `  octobadge ask "How do I get Pull Shark gold?"
  octobadge ask --mode smart "What is new with GitHub achievements?"
  octobadge ask --mode creative --image-dir ./concepts "a rocket made of octocats"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().String("mode", string(model.ModeSmart), "assistant mode (fast, smart, creative)")
	cmd.Flags().String("image-dir", "", "directory to save generated concept images")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	imageDir, _ := cmd.Flags().GetString("image-dir")

	mode, err := model.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newAssistant(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	conv := assistant.New(a,
		assistant.WithMode(mode),
		assistant.WithImageTier(imageTier(settings)),
	)

	prompt := strings.Join(args, " ")
	err = cli.WithSpinner(cmd.ErrOrStderr(), "Asking the assistant", func() error {
		return conv.Submit(ctx, prompt)
	})
	if err != nil {
		return err
	}

	transcript := conv.Transcript()
	return printReply(cmd.OutOrStdout(), transcript[len(transcript)-1], imageDir)
}

func printReply(w io.Writer, reply model.ChatMessage, imageDir string) error {
	fmt.Fprint(w, renderMarkdown(reply.Text))

	if len(reply.Sources) > 0 {
		fmt.Fprintln(w, cli.BoldStyle.Render("Sources"))
		for _, src := range reply.Sources {
			title := src.Title
			if title == "" {
				title = src.URI
			}
			fmt.Fprintf(w, "  • %s %s\n", title, cli.SubtleStyle.Render(src.URI))
		}
	}

	for _, ref := range reply.Images {
		if imageDir == "" {
			fmt.Fprintln(w, cli.FormatInfo("Concept image generated. Re-run with --image-dir to save it."))
			continue
		}
		path, err := saveImage(imageDir, ref)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, cli.FormatSuccess("Saved concept image to "+path))
	}
	return nil
}

// renderMarkdown renders text for the terminal, falling back to the raw
// text when glamour fails.
func renderMarkdown(text string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = text + "\n"
		}
	}()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text + "\n"
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return rendered
}

// saveImage decodes a base64 data URI into dir and returns the file path.
func saveImage(dir, ref string) (string, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return "", errors.New("unsupported image reference")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", errors.New("unsupported image encoding")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	name := "badge-concept-" + uuid.NewString()[:8] + imageExtension(strings.TrimSuffix(header, ";base64"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

func imageExtension(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
