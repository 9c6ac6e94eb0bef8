// Package lipgloss provides themes and styled report output using the
// Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/lintview"

// Compile-time interface verification.
var _ lintview.Theme = (*Theme)(nil)

// Theme implements lintview.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  lintview.Styles
	palette lintview.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() lintview.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() lintview.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: lintview.Styles{
			Title:      lintview.ColorPair{Foreground: "#cba6f7"}, // Mauve
			Remark:     lintview.ColorPair{Foreground: "#6c7086"}, // Muted gray
			Summary:    lintview.ColorPair{Foreground: "#f9e2af"}, // Yellow
			FileHeader: lintview.ColorPair{Foreground: "#f9e2af", Background: "#313244"},
			Location:   lintview.ColorPair{Foreground: "#89b4fa"}, // Blue
			Origin:     lintview.ColorPair{Foreground: "#fab387"}, // Peach
			Message:    lintview.ColorPair{Foreground: "#cdd6f4"},
			Body:       lintview.ColorPair{Foreground: "#a6adc8"},
			Code:       lintview.ColorPair{Foreground: "#cdd6f4", Background: "#181825"},
			Selected:   lintview.ColorPair{Foreground: "#1e1e2e", Background: "#89b4fa"},
			Status:     lintview.ColorPair{Foreground: "#cdd6f4", Background: "#313244"},
			Good:       lintview.ColorPair{Foreground: "#a6e3a1"}, // Green
		},
		palette: lintview.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			// Syntax highlighting colors
			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#fab387",
			Punctuation: "#9399b2",

			// Report colors
			Warning: "#f9e2af",
			Good:    "#a6e3a1",
			Muted:   "#6c7086",

			// UI colors
			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#89b4fa",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: lintview.Styles{
			Title:      lintview.ColorPair{Foreground: "#8839ef"},
			Remark:     lintview.ColorPair{Foreground: "#9ca0b0"},
			Summary:    lintview.ColorPair{Foreground: "#df8e1d"},
			FileHeader: lintview.ColorPair{Foreground: "#df8e1d", Background: "#e6e9ef"},
			Location:   lintview.ColorPair{Foreground: "#1e66f5"},
			Origin:     lintview.ColorPair{Foreground: "#fe640b"},
			Message:    lintview.ColorPair{Foreground: "#4c4f69"},
			Body:       lintview.ColorPair{Foreground: "#6c6f85"},
			Code:       lintview.ColorPair{Foreground: "#4c4f69", Background: "#e6e9ef"},
			Selected:   lintview.ColorPair{Foreground: "#ffffff", Background: "#1e66f5"},
			Status:     lintview.ColorPair{Foreground: "#4c4f69", Background: "#e6e9ef"},
			Good:       lintview.ColorPair{Foreground: "#40a02b"},
		},
		palette: lintview.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			// Syntax highlighting colors
			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#fe640b",
			Punctuation: "#6c6f85",

			// Report colors
			Warning: "#df8e1d",
			Good:    "#40a02b",
			Muted:   "#9ca0b0",

			// UI colors
			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#1e66f5",
		},
	}
}
