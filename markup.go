package lintview

import (
	"regexp"
	"strings"
)

var (
	linkPattern      = regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)`)
	headingPattern   = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*\s*$`)
	codeBlockPattern = regexp.MustCompile(`^\.\. code-block::.*$`)
)

const codeDirective = ".. code::"

// ToMarkup converts the light markdown dialect used by analyzer explanations
// into host markup. Applying it to its own output is a no-op.
func ToMarkup(md string) string {
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```"):
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+codeDirective, "")
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
				out = append(out, indentCode(indent, strings.TrimPrefix(lines[i], indent)))
			}
			out = closeLiteral(out, lines, i)
		case codeBlockPattern.MatchString(trimmed) || trimmed == codeDirective:
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+codeDirective)
			// The literal body that follows is copied untouched.
			for i+1 < len(lines) && isLiteralLine(lines[i+1], indent) {
				i++
				out = append(out, lines[i])
			}
			out = closeLiteral(out, lines, i)
		case strings.HasPrefix(line, "#"):
			if m := headingPattern.FindStringSubmatch(line); m != nil {
				out = append(out, "**"+m[1]+"**")
				continue
			}
			out = append(out, convertLinks(line))
		default:
			out = append(out, convertLinks(line))
		}
	}
	return strings.Join(out, "\n")
}

// closeLiteral separates a literal block ending at lines[i] from the text
// that follows it with a blank line.
func closeLiteral(out, lines []string, i int) []string {
	if i+1 >= len(lines) || strings.TrimSpace(lines[i+1]) == "" {
		return out
	}
	if strings.TrimSpace(out[len(out)-1]) == "" {
		return out
	}
	return append(out, "")
}

func indentCode(indent, line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return indent + "    " + line
}

// isLiteralLine reports whether line belongs to a literal block opened at
// the given directive indent.
func isLiteralLine(line, indent string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	return strings.HasPrefix(line, indent+" ") || strings.HasPrefix(line, indent+"\t")
}

func convertLinks(line string) string {
	return linkPattern.ReplaceAllString(line, "`$1 <$2>`__")
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"|", `\|`,
)

// Escape quotes text so host markup shows it literally.
func Escape(s string) string {
	return escaper.Replace(s)
}
