package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TabWidth matches the tab stops Python uses for indentation.
const TabWidth = 8

const esc = 0x1b

// ExpandTabs replaces tabs in rendered text with spaces up to the next tab
// stop. Columns restart on every line and escape sequences take no space,
// so styled source lines line up with their plain rendering.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	col := 0
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == esc:
			n := escapeLen(s[i:])
			sb.WriteString(s[i : i+n])
			i += n
		case c == '\t':
			next := (col/TabWidth + 1) * TabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
			i++
		case c == '\n':
			sb.WriteByte(c)
			col = 0
			i++
		default:
			j := i + 1
			for j < len(s) && s[j] != esc && s[j] != '\t' && s[j] != '\n' {
				j++
			}
			sb.WriteString(s[i:j])
			col += ansi.StringWidth(s[i:j])
			i = j
		}
	}
	return sb.String()
}

// escapeLen returns the length of the CSI sequence at the start of s, or 1
// for a lone escape byte.
func escapeLen(s string) int {
	if len(s) < 2 || s[1] != '[' {
		return 1
	}
	for i := 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1
		}
	}
	return len(s)
}
