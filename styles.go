package lintview

// Color is a hex color string in "#RRGGBB" format. Empty means the terminal
// default.
type Color string

// ColorPair represents a foreground and background color combination.
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for every visual element of a report.
type Styles struct {
	Title      ColorPair // Report title
	Remark     ColorPair // Remarks under the title and the configuration line
	Summary    ColorPair // Summary line
	FileHeader ColorPair // File header when a report spans several files
	Location   ColorPair // "Line N" location link
	Origin     ColorPair // "[enabled_by]" prefix of a block title
	Message    ColorPair // Block title text
	Body       ColorPair // Expanded explanation text
	Code       ColorPair // Literal code blocks in explanations
	Selected   ColorPair // Block under the cursor
	Status     ColorPair // Status bar
	Good       ColorPair // "looks good" conclusion
}

// Palette contains the semantic colors a theme is built from.
type Palette struct {
	Background Color
	Foreground Color

	// Syntax highlighting colors
	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	// Report colors
	Warning Color
	Good    Color
	Muted   Color

	// UI colors
	UIBackground Color
	UIForeground Color
	UIAccent     Color
}

// Theme provides styles for rendering reports.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
