package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThemeCSS_LightVarsInRootBlock(t *testing.T) {
	css := themeCSS(
		map[string]string{"background_color": "#fff", "text_color": "#111"},
		map[string]string{"background_color": "#000", "text_color": "#eee"},
	)

	require.Contains(t, css, ":root {\n  --background-color: #fff;\n  --text-color: #111;\n}")
}

func TestThemeCSS_DarkVarsUnderMediaQuery(t *testing.T) {
	css := themeCSS(
		map[string]string{"background_color": "#fff"},
		map[string]string{"background_color": "#000"},
	)

	require.Contains(t, css, "@media (prefers-color-scheme: dark) {\n  :root {\n    --background-color: #000;\n  }\n}")
}

func TestThemeCSS_DataThemeOverrideBlocks(t *testing.T) {
	css := themeCSS(
		map[string]string{"text_color": "#111"},
		map[string]string{"text_color": "#eee"},
	)

	require.Contains(t, css, `[data-theme="light"] {`)
	require.Contains(t, css, `[data-theme="dark"] {`)
}

func TestThemeCSS_VariableNames_SortedDeterministically(t *testing.T) {
	vars := map[string]string{"zzz": "1", "aaa": "2", "mmm": "3"}
	css := themeCSS(vars, vars)

	require.Less(t, strings.Index(css, "--aaa"), strings.Index(css, "--mmm"))
	require.Less(t, strings.Index(css, "--mmm"), strings.Index(css, "--zzz"))
}
