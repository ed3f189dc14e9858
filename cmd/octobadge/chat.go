package main

import (
	"errors"
	"log/slog"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/Veraticus/octobadge/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [login]",
		Short: "Open the interactive badge board and assistant",
		Long: `Open the terminal UI: a badge board for the connected user and a chat
with the badge assistant. Tab switches between them.

Without an API key the board still works and the chat is disabled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().String("mode", string(model.ModeSmart), "initial assistant mode (fast, smart, creative)")
	cmd.Flags().Bool("assistant", false, "open the chat view first")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	startInChat, _ := cmd.Flags().GetBool("assistant")

	mode, err := model.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen
	if viper.GetString("logging.level") != "debug" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

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

	ctx := cmd.Context()
	store, err := openStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	opts := []tui.Option{
		tui.WithSession(session.New(cat, newEngine(), collector)),
		tui.WithPreferences(store),
		tui.WithTheme(settings.UI.Theme),
		tui.WithImageTier(imageTier(settings)),
		tui.WithMode(mode),
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithLogin(args[0]))
	}
	if startInChat {
		opts = append(opts, tui.WithChatView())
	}

	a, err := newAssistant(ctx, settings)
	switch {
	case errors.Is(err, common.ErrMissingConfig):
		slog.Warn("Assistant disabled", "reason", common.UserMessage(err))
	case err != nil:
		return err
	default:
		defer func() { _ = a.Close() }()
		opts = append(opts, tui.WithAssistant(a))
	}

	return tui.Run(ctx, opts...)
}
