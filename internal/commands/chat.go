package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rashisahu/folio/internal/chat"
	"github.com/rashisahu/folio/internal/render"
	"github.com/rashisahu/folio/internal/tui"
)

func newChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the portfolio with the chat panel",
		Long: `Open the portfolio with the chat panel already showing.

Inside the panel:
  Enter      send the message
  /copy      copy the last reply to the clipboard
  Esc        close the panel
  Ctrl+T     toggle the panel
  Ctrl+C     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, deps, opts, true)
		},
	}
}

// runApp starts the full screen portfolio with a fresh chat panel
func runApp(cmd *cobra.Command, deps *Dependencies, opts *rootOptions, openChat bool) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	sender, err := deps.NewSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	panel := chat.NewPanel(sender, chat.WithLogger(quietLogger()))

	if !tui.ApplyPaletteByName(cfg.Theme) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown theme %q, using folio\n", cfg.Theme)
	}

	return deps.TUI.RunApp(panel, deps.Profile, tui.Options{
		Render:         render.OptionsFromConfig(cfg.Markdown),
		TypingInterval: time.Duration(cfg.TypingIntervalMS) * time.Millisecond,
		OpenChat:       openChat,
	})
}
