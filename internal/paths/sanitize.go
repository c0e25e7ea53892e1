package paths

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeName flattens a relative path into a single static-file name:
// path separators become '-', and any character that is not a letter, digit,
// '.', '_' or '-' is escaped as -uXXXX (lowercase hex of the code point).
func SanitizeName(p string) string {
	flat := strings.ReplaceAll(p, "/", "-")
	flat = strings.ReplaceAll(flat, "\\", "-")

	var b strings.Builder
	b.Grow(len(flat))
	for _, r := range flat {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "-u%04x", r)
		}
	}
	return b.String()
}
