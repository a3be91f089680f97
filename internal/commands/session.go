package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/logging"
)

// globalFlags are the persistent flags shared by all commands
type globalFlags struct {
	verbose  bool
	logLevel string
	endpoint string
}

// session is the effective configuration and logger for one command run
type session struct {
	cfg    config.Config
	logger zerolog.Logger
	close  func() error
}

// startSession loads the configuration, applies flag overrides and sets up
// logging. Interactive sessions always log to the log file since the UI owns
// the terminal; one-shot sessions log to stderr when verbose.
func (d *Dependencies) startSession(flags *globalFlags, interactive bool, stderr io.Writer) (*session, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.endpoint != "" {
		cfg.Endpoint = flags.endpoint
	}
	if flags.verbose {
		cfg.Verbose = true
	}

	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	if flags.logLevel != "" {
		if _, err := zerolog.ParseLevel(flags.logLevel); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q", flags.logLevel)
		}
		level = flags.logLevel
	}

	opts := logging.Options{Level: level}
	if !interactive && cfg.Verbose {
		opts.Writer = stderr
		opts.Console = true
	} else {
		path, err := config.GetLogPath(cfg)
		if err != nil {
			return nil, err
		}
		opts.File = path
	}

	logger, closeFn, err := logging.Setup(opts)
	if err != nil {
		// A broken log destination never blocks the chat
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		logger, closeFn = logging.Discard(), func() error { return nil }
	}

	logger.Debug().
		Str("endpoint", cfg.Endpoint).
		Int("timeout_seconds", cfg.TimeoutSeconds).
		Bool("interactive", interactive).
		Msg("session started")

	return &session{cfg: cfg, logger: logger, close: closeFn}, nil
}
