package render

import "github.com/charmbracelet/lipgloss"

// Palette is the color scheme of the chat TUI
type Palette struct {
	Name        string
	Description string

	Border lipgloss.Color

	// Header bar and user bubble background
	Primary   lipgloss.Color
	OnPrimary lipgloss.Color

	// Agent bubble
	Surface   lipgloss.Color
	OnSurface lipgloss.Color

	// Avatar badge, quick question highlight
	Accent lipgloss.Color
	Error  lipgloss.Color

	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in palettes
var (
	// SupportPalette is the default blue-on-gray scheme
	SupportPalette = Palette{
		Name:        "support",
		Description: "Support - Blue header and user bubbles on gray",

		Border: lipgloss.Color("#d1d5db"),

		Primary:   lipgloss.Color("#2563eb"),
		OnPrimary: lipgloss.Color("#ffffff"),

		Surface:   lipgloss.Color("#f3f4f6"),
		OnSurface: lipgloss.Color("#111827"),

		Accent: lipgloss.Color("#3b82f6"),
		Error:  lipgloss.Color("#dc2626"),

		TextDim:  lipgloss.Color("#6b7280"),
		TextMute: lipgloss.Color("#9ca3af"),
	}

	// TokyoNightPalette is a dark scheme with blue accents
	TokyoNightPalette = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Border: lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		OnPrimary: lipgloss.Color("#1a1b26"),

		Surface:   lipgloss.Color("#24283b"),
		OnSurface: lipgloss.Color("#c0caf5"),

		Accent: lipgloss.Color("#bb9af7"),
		Error:  lipgloss.Color("#f7768e"),

		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// NordPalette uses the Nord frost and polar night colors
	NordPalette = Palette{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Border: lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#5e81ac"),
		OnPrimary: lipgloss.Color("#eceff4"),

		Surface:   lipgloss.Color("#3b4252"),
		OnSurface: lipgloss.Color("#eceff4"),

		Accent: lipgloss.Color("#88c0d0"),
		Error:  lipgloss.Color("#bf616a"),

		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
	}
)

// Palettes returns all built-in palettes, default first
func Palettes() []Palette {
	return []Palette{SupportPalette, TokyoNightPalette, NordPalette}
}

// PaletteByName looks up a built-in palette
func PaletteByName(name string) (Palette, bool) {
	for _, p := range Palettes() {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// PaletteOrDefault returns the named palette, falling back to SupportPalette
func PaletteOrDefault(name string) Palette {
	if p, ok := PaletteByName(name); ok {
		return p
	}
	return SupportPalette
}

// PaletteNames returns just the palette names
func PaletteNames() []string {
	palettes := Palettes()
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
