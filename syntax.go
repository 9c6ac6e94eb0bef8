package lintview

// Token is a highlighted fragment of a code line.
type Token struct {
	Text  string
	Style Style
}

// Style is how a token is drawn.
type Style struct {
	Foreground string // Hex color, empty for the terminal default
	Bold       bool
}

// Tokenizer highlights the literal code blocks of explanations.
type Tokenizer interface {
	// TokenizeLines returns the tokens of source split at line breaks, or
	// nil when language is not recognized.
	TokenizeLines(language, source string) [][]Token
}
