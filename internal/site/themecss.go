package site

import (
	"sort"
	"strings"
)

// themeCSS renders the configured theme variables as CSS custom properties.
// The dark map applies via prefers-color-scheme and an explicit data-theme
// attribute, so a page script can override the OS preference.
func themeCSS(light, dark map[string]string) string {
	var b strings.Builder
	writeVarBlock(&b, ":root", light)
	b.WriteString("@media (prefers-color-scheme: dark) {\n")
	writeVarBlock(&b, "  :root", dark)
	b.WriteString("}\n")
	writeVarBlock(&b, `[data-theme="light"]`, light)
	writeVarBlock(&b, `[data-theme="dark"]`, dark)
	return b.String()
}

func writeVarBlock(b *strings.Builder, selector string, vars map[string]string) {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	indent := "  "
	if strings.HasPrefix(selector, "  ") {
		indent = "    "
	}
	b.WriteString(selector + " {\n")
	for _, n := range names {
		b.WriteString(indent + "--" + strings.ReplaceAll(n, "_", "-") + ": " + vars[n] + ";\n")
	}
	if indent == "    " {
		b.WriteString("  }\n")
	} else {
		b.WriteString("}\n")
	}
}
