package validation

import (
	"strings"
	"unicode"
)

// StripUnprintable removes every non-printable rune, including tabs and
// newlines, so the result is safe to place on a single line.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// CleanName normalises a person's name as entered: runs of whitespace become
// a single space, unprintable runes are dropped and the ends are trimmed.
func CleanName(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if w = StripUnprintable(w); w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// EscapeMarkdown escapes the characters that would change the structure of
// a markdown table cell or inline text.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)
