package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/tui"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewCaller builds the agent caller for a command run. The returned
	// function releases it.
	NewCaller func(cfg config.Config, logger zerolog.Logger) (api.AgentCaller, func(), error)

	// RunChat starts the interactive chat UI.
	RunChat func(caller api.AgentCaller, agentID string, opts ...tui.Option) error

	// LoadConfig returns the effective configuration (file plus environment).
	LoadConfig func() (config.Config, error)

	// ReadConfig and SaveConfig back "config set".
	ReadConfig func() (config.Config, error)
	SaveConfig func(config.Config) error

	// Clipboard copies text to the system clipboard.
	Clipboard func(string) error

	Stdin        io.Reader
	StdinPiped   func() bool
	StdoutIsTTY  func() bool
	TerminalSize func() int
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewCaller:    newAgentCaller,
		RunChat:      tui.Run,
		LoadConfig:   config.LoadConfig,
		ReadConfig:   config.ReadConfig,
		SaveConfig:   config.SaveConfig,
		Clipboard:    clipboard.WriteAll,
		Stdin:        os.Stdin,
		StdinPiped:   stdinPiped,
		StdoutIsTTY:  isStdoutTTY,
		TerminalSize: getTerminalWidth,
	}
}

// newAgentCaller builds the HTTP agent client from the configuration
func newAgentCaller(cfg config.Config, logger zerolog.Logger) (api.AgentCaller, func(), error) {
	client, err := api.NewClient(
		api.WithEndpoint(cfg.Endpoint),
		api.WithAPIKey(cfg.APIKey),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, client.Close, nil
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
