// Package chroma provides syntax highlighting and Python source scanning
// using the chroma library.
package chroma

import (
	"errors"
	"strings"
	"sync"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/lintview"
)

var _ lintview.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to styles.
type StyleFunc func(chromalib.TokenType) lintview.Style

// Tokenizer highlights code with chroma lexers. It is safe for concurrent
// use.
type Tokenizer struct {
	style StyleFunc

	mu     sync.Mutex
	lexers map[string]chromalib.Lexer // nil entries cache misses
}

// NewTokenizer creates a tokenizer coloring tokens with style.
func NewTokenizer(style StyleFunc) (*Tokenizer, error) {
	if style == nil {
		return nil, errors.New("chroma: style function is required")
	}
	return &Tokenizer{style: style, lexers: make(map[string]chromalib.Lexer)}, nil
}

// lexer returns the lexer for language. Explanations rarely name the
// language of their snippets, so an empty name means Python.
func (t *Tokenizer) lexer(language string) chromalib.Lexer {
	if language == "" {
		language = Python
	}
	key := strings.ToLower(language)

	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.lexers[key]; ok {
		return l
	}
	l := lexers.Get(language)
	if l != nil {
		l = chromalib.Coalesce(l)
	}
	t.lexers[key] = l
	return l
}

// TokenizeLines implements lintview.Tokenizer. A token spanning several
// lines, such as a docstring, keeps its style on each of them. Trailing
// blank lines are dropped.
func (t *Tokenizer) TokenizeLines(language, source string) [][]lintview.Token {
	l := t.lexer(language)
	if l == nil {
		return nil
	}
	iterator, err := l.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	lines := [][]lintview.Token{nil}
	for tok := iterator(); tok != chromalib.EOF; tok = iterator() {
		style := t.style(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], lintview.Token{Text: part, Style: style})
			}
		}
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
