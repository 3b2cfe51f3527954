// Package commands provides CLI commands for folio.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rashisahu/folio/internal/config"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flags shared by the query path and the subcommands
type rootOptions struct {
	endpoint string
	output   string
	file     string
	raw      bool
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "folio [message]",
		Short: "Portfolio profile with an AI chat assistant",
		Long: `folio shows a developer portfolio in the terminal and lets visitors ask
an AI assistant about it. The assistant answers from a resume document
through the /chat service started by 'folio serve'.

Examples:
  folio                                 Open the portfolio
  folio chat                            Open the portfolio with the chat panel
  folio "What projects use React?"      Ask a single question
  folio -f question.md                  Read the question from a file
  cat question.md | folio               Read the question from stdin
  folio "Skills?" -o answer.md          Save the answer to a file
  folio serve                           Run the assistant service`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "folio %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if opts.file != "" {
				data, err := os.ReadFile(opts.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd, deps, opts, string(data))
			}

			if deps.StdinIsPipe != nil && deps.StdinIsPipe() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return runQuery(cmd, deps, opts, string(data))
			}

			if len(args) > 0 {
				return runQuery(cmd, deps, opts, args[0])
			}

			if deps.StdoutIsTTY != nil && deps.StdoutIsTTY() {
				return runApp(cmd, deps, opts, false)
			}

			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.endpoint, "endpoint", "e", "", "Assistant service base URL (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the reply text without decoration")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(deps, opts))
	cmd.AddCommand(newProfileCmd(deps))
	cmd.AddCommand(newServeCmd(deps))
	cmd.AddCommand(newLogsCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides. A broken
// config file is reported and the defaults are used.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
	}

	if opts != nil && opts.endpoint != "" {
		if err := config.ValidateEndpoint(opts.endpoint); err != nil {
			return cfg, err
		}
		cfg.Endpoint = opts.endpoint
	}

	return cfg, nil
}
