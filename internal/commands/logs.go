package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rashisahu/folio/internal/config"
)

var (
	logTimeStyle = lipgloss.NewStyle().Foreground(colorTextMute)
	logUserStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

func newLogsCmd(deps *Dependencies) *cobra.Command {
	var envFile string
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent chat exchanges recorded by the service",
		Long: `Show the newest entries of the chat_logs table.

The database is read from MYSQL_DSN, after loading the .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return fmt.Errorf("failed to load server config: %w", err)
			}
			if cfg.MySQLDSN == "" {
				return fmt.Errorf("MYSQL_DSN is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), dbConnectTimeout)
			defer cancel()

			store, err := deps.OpenChatLog(ctx, cfg.MySQLDSN)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No chat exchanges recorded yet.")
				return nil
			}

			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s\n", logTimeStyle.Render(e.CreatedAt.Local().Format(time.DateTime)), logTimeStyle.Render(e.RequestID))
				fmt.Fprintf(out, "  %s %s\n", logUserStyle.Render("Q:"), oneLine(e.UserQuery))
				fmt.Fprintf(out, "  A: %s\n\n", oneLine(e.BotResponse))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")

	return cmd
}

// oneLine collapses whitespace and shortens s for a single output line
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const maxLen = 160
	if r := []rune(s); len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	return s
}
