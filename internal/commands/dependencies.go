package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rashisahu/folio/internal/api"
	"github.com/rashisahu/folio/internal/chat"
	"github.com/rashisahu/folio/internal/chatlog"
	"github.com/rashisahu/folio/internal/config"
	"github.com/rashisahu/folio/internal/models"
	"github.com/rashisahu/folio/internal/server"
	"github.com/rashisahu/folio/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunApp(panel *chat.Panel, profile models.Profile, opts tui.Options) error
	RunConfig(cfg config.Config, path string, save func(config.Config) error) (config.Config, error)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewSender builds the assistant client for the loaded configuration.
	NewSender func(cfg config.Config) (chat.Sender, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Profile is the portfolio content shown by the app and served by /api/profile.
	Profile models.Profile

	// Stdin is read when input is piped in.
	Stdin       io.Reader
	StdinIsPipe func() bool
	StdoutIsTTY func() bool

	// Serve runs the assistant service until ctx is cancelled.
	Serve func(ctx context.Context, srv *server.Server) error

	// OpenChatLog connects to the chat log database.
	OpenChatLog func(ctx context.Context, dsn string) (chatlog.Reader, error)
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunApp(panel *chat.Panel, profile models.Profile, opts tui.Options) error {
	return tui.RunApp(panel, profile, opts)
}

func (d *DefaultTUI) RunConfig(cfg config.Config, path string, save func(config.Config) error) (config.Config, error) {
	return tui.RunConfig(cfg, path, save)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewSender:   newAPISender,
		TUI:         &DefaultTUI{},
		Profile:     models.DefaultProfile(),
		Stdin:       os.Stdin,
		StdinIsPipe: stdinIsPipe,
		StdoutIsTTY: isStdoutTTY,
		Serve: func(ctx context.Context, srv *server.Server) error {
			return srv.Run(ctx)
		},
		OpenChatLog: func(ctx context.Context, dsn string) (chatlog.Reader, error) {
			store, err := chatlog.OpenMySQL(ctx, dsn)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	}
}

// newAPISender creates the HTTP client for the configured endpoint
func newAPISender(cfg config.Config) (chat.Sender, error) {
	client, err := api.NewClient(cfg.Endpoint,
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithUserAgent("folio/"+Version),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func stdinIsPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
