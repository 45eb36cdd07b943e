package theme

// Centralized theming for the local viewer window. Provides palette
// constants and SetDark to activate a base theme and configure the
// semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panel, preview frames
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626" // error percentage
	ColorAccent    = "#10b981" // job status
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// StyleCombobox is the ttk style of the panel's choice fields.
const StyleCombobox = "TCombobox"

var darkMode bool

// SetDark sets dark mode and reapplies styles.
func SetDark(dark bool) {
	darkMode = dark
	applyStyles()
}

func applyStyles() {
	p := CurrentPalette()
	base := "azure light"
	if darkMode {
		base = "azure dark"
	}
	_ = ActivateTheme(base)
	App.Configure(Background(p.AppBg))

	StyleConfigure(StyleCombobox,
		Foreground(p.Text),
		Padding("2p 1p"),
	)
}
