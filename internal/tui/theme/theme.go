// Package theme defines color themes for the runway TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI. Verdict roles color
// purchase tiers; the rest are shared with cards, charts, and chrome.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Active tab
	SurfaceBright lipgloss.Color // Selected settings row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // Help overlay border
	TextDim       lipgloss.Color // Hints, axis labels
	TextMuted     lipgloss.Color // Labels
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	Green         lipgloss.Color // Plenty of runway left
	GreenBright   lipgloss.Color
	Yellow        lipgloss.Color // Getting tight
	Orange        lipgloss.Color // Nearly out; warnings
	Red           lipgloss.Color // Debt
	Cyan          lipgloss.Color

	Approved lipgloss.Color
	Risky    lipgloss.Color
	Rejected lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme, a warm paper-inspired dark palette.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceHover:  "#282726",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	Green:         "#879A39",
	GreenBright:   "#A3B859",
	Yellow:        "#D0A215",
	Orange:        "#DA702C",
	Red:           "#D14D41",
	Cyan:          "#24837B",
	Approved:      "#A3B859",
	Risky:         "#D0A215",
	Rejected:      "#D14D41",
}

// FlexokiLight is the daylight counterpart of FlexokiDark.
var FlexokiLight = Theme{
	Name:          "flexoki-light",
	Background:    "#FFFCF0",
	Surface:       "#F2F0E5",
	SurfaceHover:  "#E6E4D9",
	SurfaceBright: "#DAD8CE",
	Border:        "#CECDC3",
	BorderAccent:  "#24837B",
	TextDim:       "#B7B5AC",
	TextMuted:     "#6F6E69",
	TextPrimary:   "#100F0F",
	Accent:        "#24837B",
	AccentBright:  "#3AA99F",
	Green:         "#66800B",
	GreenBright:   "#879A39",
	Yellow:        "#AD8301",
	Orange:        "#BC5215",
	Red:           "#AF3029",
	Cyan:          "#24837B",
	Approved:      "#66800B",
	Risky:         "#AD8301",
	Rejected:      "#AF3029",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceHover:  "#45475A",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	Green:         "#A6E3A1",
	GreenBright:   "#C6F6C1",
	Yellow:        "#F9E2AF",
	Orange:        "#FAB387",
	Red:           "#F38BA8",
	Cyan:          "#94E2D5",
	Approved:      "#A6E3A1",
	Risky:         "#F9E2AF",
	Rejected:      "#F38BA8",
}

// TokyoNight is a cool blue/purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceHover:  "#343A52",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	Green:         "#9ECE6A",
	GreenBright:   "#B9E87A",
	Yellow:        "#E0AF68",
	Orange:        "#FF9E64",
	Red:           "#F7768E",
	Cyan:          "#7DCFFF",
	Approved:      "#9ECE6A",
	Risky:         "#E0AF68",
	Rejected:      "#F7768E",
}

// Terminal uses ANSI 16 colors only, for maximum compatibility.
var Terminal = Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceHover:  "8",
	SurfaceBright: "8",
	Border:        "8",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	Green:         "2",
	GreenBright:   "10",
	Yellow:        "3",
	Orange:        "3",
	Red:           "1",
	Cyan:          "6",
	Approved:      "10",
	Risky:         "11",
	Rejected:      "9",
}

// All available themes, in display order.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names returns the names of all themes, in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}
