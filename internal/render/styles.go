package render

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

//go:embed styles/support.json
var supportStyle []byte

// StyleSupport is the bundled markdown style tuned for chat bubbles
const StyleSupport = "support"

// MarkdownStyle describes a selectable markdown style
type MarkdownStyle struct {
	Name        string
	Description string
}

// MarkdownStyles lists the styles accepted by Options.Style besides file paths.
func MarkdownStyles() []MarkdownStyle {
	return []MarkdownStyle{
		{Name: StyleSupport, Description: "Compact style for chat replies (default)"},
		{Name: "dark", Description: "glamour dark"},
		{Name: "light", Description: "glamour light"},
		{Name: "dracula", Description: "Dracula color scheme"},
		{Name: "tokyo-night", Description: "Tokyo Night color scheme"},
		{Name: "pink", Description: "glamour pink"},
		{Name: "notty", Description: "Plain text (no styling)"},
		{Name: "ascii", Description: "ASCII-only output"},
	}
}

// IsKnownStyle reports whether name is a bundled or glamour standard style
func IsKnownStyle(name string) bool {
	for _, s := range MarkdownStyles() {
		if s.Name == name {
			return true
		}
	}
	return false
}

func styleOption(name string) (glamour.TermRendererOption, error) {
	switch {
	case name == StyleSupport:
		return glamour.WithStylesFromJSONBytes(supportStyle), nil
	case IsKnownStyle(name):
		return glamour.WithStandardStyle(name), nil
	default:
		if _, err := os.Stat(name); err != nil {
			return nil, fmt.Errorf("unknown markdown style %q: %w", name, err)
		}
		return glamour.WithStylePath(name), nil
	}
}
