package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/render"
)

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change supportchat settings.

Settings live in config.json inside the config directory (~/.supportchat,
or $SUPPORTCHAT_CONFIG_DIR). SUPPORTCHAT_ENDPOINT and SUPPORTCHAT_API_KEY
override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, deps)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, deps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Change a setting and save it.\n\nKeys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, deps, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List color themes and markdown styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Themes (tui_theme):")
			for _, p := range render.Palettes() {
				fmt.Fprintf(out, "  %-12s %s\n", p.Name, p.Description)
			}
			fmt.Fprintln(out, "\nMarkdown styles (markdown.style):")
			for _, s := range render.MarkdownStyles() {
				fmt.Fprintf(out, "  %-12s %s\n", s.Name, s.Description)
			}
			return nil
		},
	})

	return cmd
}

// showConfig prints the effective configuration as JSON with the API key masked
func showConfig(cmd *cobra.Command, deps *Dependencies) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.APIKey = maskSecret(cfg.APIKey)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func setConfig(cmd *cobra.Command, deps *Dependencies, key, value string) error {
	switch key {
	case "tui_theme":
		if _, ok := render.PaletteByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.PaletteNames(), ", "))
		}
	case "markdown.style":
		if !render.IsKnownStyle(value) {
			if _, err := os.Stat(value); err != nil {
				return fmt.Errorf("markdown.style must be a known style or an existing JSON file: %w", err)
			}
		}
	}

	cfg, err := deps.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Set(&cfg, key, value); err != nil {
		return err
	}
	if err := deps.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	shown := value
	if key == "api_key" {
		shown = maskSecret(value)
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s = %s", key, shown)))
	return nil
}

// maskSecret keeps the last four characters of a secret
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
