package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/supportchat/internal/chat"
	"github.com/diogo/supportchat/internal/config"
	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/render"
)

// askOptions are the flags of a one-shot question
type askOptions struct {
	output string
	file   string
	raw    bool
}

func addAskFlags(cmd *cobra.Command, opts *askOptions) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the reply text without styling")
}

func newAskCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask a single question and print the reply",
		Long: `Send one message to the support agent and print its reply.

The message comes from the argument, --file, or piped stdin. On a terminal
the reply is rendered as markdown; otherwise (or with --raw) the plain text
is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ok, err := readInput(deps, opts.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return apierrors.ErrEmptyMessage
			}
			return runAsk(cmd, deps, flags, opts, text)
		},
	}
	addAskFlags(cmd, opts)
	return cmd
}

// runAsk sends a single message and prints the agent's reply. A faulted call
// still prints the apology and then returns the fault.
func runAsk(cmd *cobra.Command, deps *Dependencies, flags *globalFlags, opts *askOptions, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apierrors.ErrEmptyMessage
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	raw := opts.raw || !deps.StdoutIsTTY()

	s, err := deps.startSession(flags, false, stderr)
	if err != nil {
		return err
	}
	defer s.close()

	caller, release, err := deps.NewCaller(s.cfg, s.logger)
	if err != nil {
		return err
	}
	defer release()

	conv := chat.New(chat.WithLogger(s.logger))

	var spin *spinner
	if !raw {
		spin = newSpinner(stderr, "Waiting for support")
		spin.start()
	}

	start := time.Now()
	reply, callErr := conv.Send(cmd.Context(), caller, config.AgentID, text)
	if errors.Is(callErr, apierrors.ErrEmptyMessage) || errors.Is(callErr, chat.ErrAwaiting) {
		if spin != nil {
			spin.stopWithError()
		}
		return callErr
	}

	s.logger.Debug().Dur("elapsed", time.Since(start)).Bool("fault", callErr != nil).Msg("one-shot reply")

	if spin != nil {
		if callErr != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess("Reply received")
		}
	}

	if err := writeReply(deps, stdout, stderr, s, opts, raw, reply.Content); err != nil {
		return err
	}

	if callErr != nil {
		if !raw {
			fmt.Fprintln(stderr, formatErrorMessage(callErr, "Agent call failed"))
		}
		return fmt.Errorf("agent call failed: %w", callErr)
	}
	return nil
}

// writeReply delivers the reply to the output file, clipboard and terminal
func writeReply(deps *Dependencies, stdout, stderr io.Writer, s *session, opts *askOptions, raw bool, text string) error {
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !raw {
			fmt.Fprintln(stderr, successStyle.Render(fmt.Sprintf("✓ Reply saved to %s", opts.output)))
		}
	}

	if s.cfg.CopyToClipboard {
		if err := deps.Clipboard(text); err != nil {
			s.logger.Warn().Err(err).Msg("clipboard copy failed")
			if !raw {
				fmt.Fprintln(stderr, warnStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
			}
		} else if !raw {
			fmt.Fprintln(stderr, successStyle.Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		return nil
	}

	if raw {
		fmt.Fprintln(stdout, text)
		return nil
	}

	bubbleWidth := deps.TerminalSize() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	p := render.PaletteOrDefault(s.cfg.TUITheme)
	label := lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("◆ Support")
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1).
		Width(bubbleWidth).
		Render(render.Reply(text, render.OptionsFromConfig(s.cfg.Markdown).WithWidth(bubbleWidth-4)))

	fmt.Fprintln(stdout, label)
	fmt.Fprintln(stdout, bubble)
	return nil
}
