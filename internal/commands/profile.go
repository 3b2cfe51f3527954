package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rashisahu/folio/internal/render"
)

func newProfileCmd(deps *Dependencies) *cobra.Command {
	var asJSON, raw bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the portfolio without the interactive app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			profile := deps.Profile

			if asJSON {
				data, err := json.MarshalIndent(profile, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode profile: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			md := fmt.Sprintf("# %s\n\n%s", profile.Headline(), profile.Markdown())
			if raw || deps.StdoutIsTTY == nil || !deps.StdoutIsTTY() {
				fmt.Fprint(out, md)
				return nil
			}

			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			opts := render.OptionsFromConfigWithWidth(cfg.Markdown, clampWidth(getTerminalWidth()-2, 40, 120))
			fmt.Fprintln(out, render.MarkdownOrPlain(md, opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")

	return cmd
}
