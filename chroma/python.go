package chroma

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Python is the chroma name of the Python language.
const Python = "Python"

// IsPythonFile reports whether chroma's lexer registry recognizes path as
// Python source, .py and .pyw files among others.
func IsPythonFile(path string) bool {
	l := lexers.Match(filepath.Base(path))
	return l != nil && l.Config().Name == Python
}
