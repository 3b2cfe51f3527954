package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/rashisahu/folio/internal/assistant"
	"github.com/rashisahu/folio/internal/chatlog"
	"github.com/rashisahu/folio/internal/config"
	"github.com/rashisahu/folio/internal/server"
)

// dbConnectTimeout bounds the startup ping and schema creation
const dbConnectTimeout = 10 * time.Second

func newServeCmd(deps *Dependencies) *cobra.Command {
	var envFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the assistant service",
		Long: `Run the HTTP service that answers chat messages.

Configuration is read from the environment, after loading the .env file:
  PORT                  listen port (default 8000)
  OPENROUTER_API_KEY    required
  OPENROUTER_MODEL      model name
  OPENROUTER_BASE_URL   OpenAI compatible API base URL
  RESUME_PATH           resume JSON the assistant answers from
  MYSQL_DSN             optional chat log database
  ALLOWED_ORIGINS       comma separated CORS origins (default *)
  RATE_LIMIT_PER_MINUTE per client limit for /chat, 0 disables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			srv, store, err := buildServer(cmd.Context(), deps, logger, envFile)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return deps.Serve(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")

	return cmd
}

// buildServer wires the answerer, the chat log and the profile into a server
func buildServer(ctx context.Context, deps *Dependencies, logger *log.Logger, envFile string) (*server.Server, chatlog.Store, error) {
	cfg, err := config.LoadServerConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load server config: %w", err)
	}

	resume, err := assistant.LoadResume(cfg.ResumePath)
	if err != nil {
		return nil, nil, err
	}

	name := assistant.ResumeName(resume)
	if name == "" {
		name = deps.Profile.Name
	}

	answerer, err := assistant.NewOpenRouter(assistant.OpenRouterConfig{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.OpenRouterModel,
		Resume:  resume,
		Name:    name,
		Contact: deps.Profile.Contact,
	})
	if err != nil {
		return nil, nil, err
	}

	var store chatlog.Store = chatlog.Nop{}
	if cfg.MySQLDSN != "" {
		dbCtx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
		defer cancel()

		db, err := chatlog.OpenMySQL(dbCtx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(dbCtx); err != nil {
			db.Close()
			return nil, nil, err
		}
		store = db
	} else {
		logger.Info("MYSQL_DSN not set, chat log disabled")
	}

	logger.WithFields(log.Fields{
		"addr":  cfg.Addr(),
		"model": answerer.Model(),
	}).Info("assistant service configured")

	srv := server.New(cfg, answerer, store, deps.Profile,
		server.WithLogger(logger),
		server.WithVersion(Version),
	)
	return srv, store, nil
}
