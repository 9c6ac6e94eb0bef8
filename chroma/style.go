package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/lintview"
)

// StyleFromPalette colors Python tokens with the palette. Tokens outside the
// listed groups keep the terminal default.
func StyleFromPalette(p lintview.Palette) StyleFunc {
	color := func(c lintview.Color, bold bool) lintview.Style {
		return lintview.Style{Foreground: string(c), Bold: bold}
	}
	return func(tt chromalib.TokenType) lintview.Style {
		switch {
		case tt == chromalib.KeywordConstant: // True, False, None
			return color(p.Constant, true)
		case tt.InCategory(chromalib.Keyword):
			return color(p.Keyword, true)
		case tt.InCategory(chromalib.Comment):
			return color(p.Comment, false)
		case tt.InSubCategory(chromalib.LiteralString):
			return color(p.String, false)
		case tt.InSubCategory(chromalib.LiteralNumber):
			return color(p.Number, false)
		case tt.InCategory(chromalib.Operator):
			return color(p.Operator, false)
		case tt.InCategory(chromalib.Punctuation):
			return color(p.Punctuation, false)
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic, tt == chromalib.NameDecorator:
			return color(p.Function, false)
		case tt == chromalib.NameClass:
			return color(p.Type, true)
		case tt == chromalib.NameBuiltin, tt == chromalib.NameBuiltinPseudo, tt == chromalib.NameException:
			return color(p.Type, false)
		default:
			return lintview.Style{}
		}
	}
}
