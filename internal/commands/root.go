// Package commands provides CLI commands for supportchat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the supportchat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}
	ask := &askOptions{}

	cmd := &cobra.Command{
		Use:   "supportchat [message]",
		Short: "Terminal client for the customer support agent",
		Long: `supportchat talks to a customer support agent from the terminal.

Run without arguments on a terminal to open the chat. Pass a message, a file
or piped input to ask a single question and print the reply.

Examples:
  supportchat                              Open the chat
  supportchat "What are your business hours?"
  supportchat -f question.txt              Read the message from a file
  echo "How do I reset my password?" | supportchat
  supportchat ask "Hi" -o reply.md         Save the reply to a file
  supportchat config set endpoint https://support.example.com/api/agent`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "supportchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			text, ok, err := readInput(deps, ask.file, args)
			if err != nil {
				return err
			}
			if ok {
				return runAsk(cmd, deps, flags, ask, text)
			}

			if deps.StdoutIsTTY() {
				return runChat(cmd, deps, flags)
			}

			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log debug details (to stderr for one-shot questions)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "Agent endpoint URL (overrides config)")

	addAskFlags(cmd, ask)
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(deps, flags))
	cmd.AddCommand(newAskCmd(deps, flags))
	cmd.AddCommand(newConfigCmd(deps))

	return cmd
}

// readInput picks the one-shot message from a file, an argument or piped
// stdin, in that order. ok is false when none was given.
func readInput(deps *Dependencies, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", false, nil
		}
		return string(data), true, nil
	}

	return "", false, nil
}

// rootCmd is the command tree used by Execute
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "supportchat"))
		os.Exit(1)
	}
}
