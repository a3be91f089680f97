package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/render"
	"github.com/diogo/supportchat/internal/tui"
)

func newChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive support chat",
		Long: `Start an interactive chat with the support agent.

Pick a suggested question with the arrow keys or type your own and press
Enter. Ctrl+Y copies the last reply. Press Esc or Ctrl+C to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, flags)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, flags *globalFlags) error {
	s, err := deps.startSession(flags, true, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	caller, release, err := deps.NewCaller(s.cfg, s.logger)
	if err != nil {
		return err
	}
	defer release()

	s.logger.Info().Str("endpoint", s.cfg.Endpoint).Msg("chat started")
	defer func() { s.logger.Info().Msg("chat ended") }()

	return deps.RunChat(caller, config.AgentID,
		tui.WithLogger(s.logger),
		tui.WithStyles(tui.NewStyles(render.PaletteOrDefault(s.cfg.TUITheme))),
		tui.WithMarkdownOptions(render.OptionsFromConfig(s.cfg.Markdown)),
		tui.WithClipboard(deps.Clipboard),
	)
}
