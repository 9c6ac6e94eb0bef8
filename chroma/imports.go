package chroma

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/lintview"
)

// Compile-time interface verification.
var _ lintview.ImportResolver = (*ImportScanner)(nil)

// localExtensions are the file extensions a local module may use.
var localExtensions = []string{".py", ".pyw"}

// ImportScanner finds user modules imported by a Python file. Only modules
// that live next to the importing file count; imports are followed
// transitively.
type ImportScanner struct {
	readFile func(string) ([]byte, error)
}

// NewImportScanner creates a scanner reading files from disk.
func NewImportScanner() *ImportScanner {
	return &ImportScanner{
		readFile: os.ReadFile,
	}
}

// ModuleNames returns the top-level module names imported by Python source,
// in order of first appearance. Keywords inside strings and comments are
// ignored because only lexer keyword tokens open a statement.
func ModuleNames(source string) []string {
	lexer := lexers.Get("python")
	if lexer == nil {
		return nil
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var names []string
	add := func(name string) {
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	var stmt strings.Builder
	collecting := false
	lineStart := true
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		if collecting {
			stmt.WriteString(token.Value)
			if !strings.Contains(token.Value, "\n") || openParen(stmt.String()) {
				continue
			}
			for _, name := range parseImport(stmt.String()) {
				add(name)
			}
			collecting = false
			stmt.Reset()
			lineStart = true
			continue
		}

		switch {
		case strings.TrimSpace(token.Value) == "":
			if strings.Contains(token.Value, "\n") {
				lineStart = true
			}
		case lineStart && token.Type == chromalib.KeywordNamespace && (token.Value == "import" || token.Value == "from"):
			collecting = true
			stmt.WriteString(token.Value)
			lineStart = false
		default:
			lineStart = strings.HasSuffix(token.Value, "\n") || token.Value == ";"
		}
	}
	if collecting {
		for _, name := range parseImport(stmt.String()) {
			add(name)
		}
	}
	return names
}

func openParen(s string) bool {
	return strings.Count(s, "(") > strings.Count(s, ")")
}

// parseImport extracts top-level module names from one import statement.
func parseImport(stmt string) []string {
	stmt = strings.NewReplacer("(", " ", ")", " ", "\\\n", " ", "\n", " ").Replace(stmt)
	stmt, _, _ = strings.Cut(stmt, ";")
	fields := strings.Fields(stmt)
	if len(fields) < 2 {
		return nil
	}

	switch fields[0] {
	case "import":
		return importedNames(strings.Join(fields[1:], " "))
	case "from":
		module := strings.TrimLeft(fields[1], ".")
		if module != "" {
			return []string{topLevel(module)}
		}
		// "from . import a, b" names sibling modules directly.
		if len(fields) > 3 && fields[2] == "import" {
			return importedNames(strings.Join(fields[3:], " "))
		}
	}
	return nil
}

func importedNames(list string) []string {
	var names []string
	for _, item := range strings.Split(list, ",") {
		item, _, _ = strings.Cut(strings.TrimSpace(item), " as ")
		if name := topLevel(strings.TrimSpace(item)); name != "" && name != "*" {
			names = append(names, name)
		}
	}
	return names
}

func topLevel(module string) string {
	name, _, _ := strings.Cut(module, ".")
	return name
}

// ImportedFiles returns the absolute paths of local modules imported by
// source, directly or through other local modules, sorted. The main file is
// never included.
func (s *ImportScanner) ImportedFiles(mainFile, source string) []string {
	if !IsPythonFile(mainFile) {
		return nil
	}
	main, err := filepath.Abs(mainFile)
	if err != nil {
		main = mainFile
	}

	seen := map[string]bool{main: true}
	var found []string
	queue := []struct{ path, source string }{{main, source}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		dir := filepath.Dir(cur.path)
		for _, name := range ModuleNames(cur.source) {
			for _, path := range s.resolve(dir, name) {
				if seen[path] {
					continue
				}
				seen[path] = true
				found = append(found, path)
				data, err := s.readFile(path)
				if err != nil {
					continue
				}
				queue = append(queue, struct{ path, source string }{path, string(data)})
			}
		}
	}
	slices.Sort(found)
	return found
}

// resolve returns every local file a module name may refer to. Both
// name.py and name.pyw are captured when both exist.
func (s *ImportScanner) resolve(dir, name string) []string {
	var paths []string
	for _, ext := range localExtensions {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			paths = append(paths, path)
		}
	}
	return paths
}
