package config

import (
	"fmt"
)

// ThemeType selects between a bundled preset and fully custom variable maps.
type ThemeType string

const (
	ThemePreset ThemeType = "preset"
	ThemeCustom ThemeType = "custom"
)

// ThemeConfig selects the color theme used for generated CSS variables.
type ThemeConfig struct {
	Type   ThemeType    `yaml:"type"`
	Preset string       `yaml:"preset,omitempty"`
	Custom *CustomTheme `yaml:"custom,omitempty"`
}

// CustomTheme carries explicit light and dark variable maps.
type CustomTheme struct {
	Light map[string]string `yaml:"light"`
	Dark  map[string]string `yaml:"dark"`
}

// requiredThemeVars must all be present in both the light and dark maps.
// They cover page chrome, code annotation backgrounds, and syntax token colors.
var requiredThemeVars = []string{
	"background_color",
	"text_color",
	"link_color",
	"heading_color",
	"code_background",
	"code_text",
	"border_color",
	"accent_color",
	"blockquote_color",
	"secondary_background",
	"secondary_accent",
	"highlight_add",
	"highlight_del",
	"highlight",
	"type",
	"constant",
	"string",
	"comment",
	"keyword",
	"function",
	"variable",
	"punctuation",
	"markup_heading",
	"diff_plus",
	"diff_minus",
	"attribute",
	"constructor",
	"tag",
	"escape",
}

// Vars resolves the configured theme into validated light and dark variable
// maps. Missing required variables are fatal configuration errors.
func (t ThemeConfig) Vars() (light, dark map[string]string, err error) {
	switch t.Type {
	case ThemePreset, "":
		preset, ok := presetThemes[t.Preset]
		if !ok {
			return nil, nil, fmt.Errorf("unknown preset theme: %s", t.Preset)
		}
		light, dark = preset.Light, preset.Dark
	case ThemeCustom:
		if t.Custom == nil {
			return nil, nil, fmt.Errorf("theme type is custom but no custom theme is configured")
		}
		light, dark = t.Custom.Light, t.Custom.Dark
	default:
		return nil, nil, fmt.Errorf("unknown theme type: %s", t.Type)
	}

	for _, v := range requiredThemeVars {
		if _, ok := light[v]; !ok {
			return nil, nil, fmt.Errorf("missing light theme variable: %s", v)
		}
		if _, ok := dark[v]; !ok {
			return nil, nil, fmt.Errorf("missing dark theme variable: %s", v)
		}
	}
	return light, dark, nil
}

// presetTheme pairs the light and dark variable maps of a bundled theme.
type presetTheme struct {
	Light map[string]string
	Dark  map[string]string
}

var presetThemes = map[string]presetTheme{
	"catppuccin": {
		Light: map[string]string{
			"background_color":     "#ffffff",
			"text_color":           "#4c4f69",
			"link_color":           "#1e66f5",
			"heading_color":        "#8839ef",
			"code_background":      "#e6e9ef",
			"code_text":            "#4c4f69",
			"border_color":         "#ccd0da",
			"accent_color":         "#1e66f5",
			"blockquote_color":     "#6c7086",
			"secondary_background": "#eff1f5",
			"secondary_accent":     "#dd7878",
			"highlight_add":        "rgba(87, 160, 112, 0.3)",
			"highlight_del":        "rgba(210, 77, 87, 0.3)",
			"highlight":            "rgba(30, 102, 245, 0.3)",
			"type":                 "#1e66f5",
			"constant":             "#fe640b",
			"string":               "#40a02b",
			"comment":              "#8b949e",
			"keyword":              "#8839ef",
			"function":             "#d20f39",
			"variable":             "#7287fd",
			"punctuation":          "#6c7086",
			"markup_heading":       "#d20f39",
			"diff_plus":            "#d4f1d7",
			"diff_minus":           "#f8d3d5",
			"attribute":            "#179299",
			"constructor":          "#df8e1d",
			"tag":                  "#ea76cb",
			"escape":               "#d20f39",
		},
		Dark: map[string]string{
			"background_color":     "#1e1e2e",
			"text_color":           "#cdd6f4",
			"link_color":           "#89b4fa",
			"heading_color":        "#b4befe",
			"code_background":      "#313244",
			"code_text":            "#cdd6f4",
			"border_color":         "#585b70",
			"accent_color":         "#89b4fa",
			"blockquote_color":     "#9399b2",
			"secondary_background": "#24273a",
			"secondary_accent":     "#f38ba8",
			"highlight_add":        "rgba(166, 227, 161, 0.3)",
			"highlight_del":        "rgba(243, 139, 168, 0.3)",
			"highlight":            "rgba(137, 180, 250, 0.3)",
			"type":                 "#89b4fa",
			"constant":             "#fab387",
			"string":               "#a6e3a1",
			"comment":              "#585b70",
			"keyword":              "#cba6f7",
			"function":             "#f38ba8",
			"variable":             "#b4befe",
			"punctuation":          "#9399b2",
			"markup_heading":       "#f38ba8",
			"diff_plus":            "rgba(166, 227, 161, 0.3)",
			"diff_minus":           "rgba(243, 139, 168, 0.3)",
			"attribute":            "#94e2d5",
			"constructor":          "#f9e2af",
			"tag":                  "#f5c2e7",
			"escape":               "#f38ba8",
		},
	},
	"gruvbox": {
		Light: map[string]string{
			"background_color":     "#fbf1c7",
			"text_color":           "#3c3836",
			"link_color":           "#458588",
			"heading_color":        "#b57614",
			"code_background":      "#ebdbb2",
			"code_text":            "#3c3836",
			"border_color":         "#a89984",
			"accent_color":         "#458588",
			"blockquote_color":     "#7c6f64",
			"secondary_background": "#f2e5bc",
			"secondary_accent":     "#d65d0e",
			"highlight_add":        "rgba(104, 135, 56, 0.3)",
			"highlight_del":        "rgba(204, 36, 29, 0.3)",
			"highlight":            "rgba(69, 133, 136, 0.3)",
			"type":                 "#458588",
			"constant":             "#d65d0e",
			"string":               "#79740e",
			"comment":              "#928374",
			"keyword":              "#b57614",
			"function":             "#9d0006",
			"variable":             "#427b58",
			"punctuation":          "#7c6f64",
			"markup_heading":       "#9d0006",
			"diff_plus":            "#e7f0d2",
			"diff_minus":           "#f7d9d7",
			"attribute":            "#689d6a",
			"constructor":          "#b57614",
			"tag":                  "#af3a03",
			"escape":               "#9d0006",
		},
		Dark: map[string]string{
			"background_color":     "#282828",
			"text_color":           "#ebdbb2",
			"link_color":           "#83a598",
			"heading_color":        "#fabd2f",
			"code_background":      "#3c3836",
			"code_text":            "#ebdbb2",
			"border_color":         "#665c54",
			"accent_color":         "#83a598",
			"blockquote_color":     "#928374",
			"secondary_background": "#32302f",
			"secondary_accent":     "#fe8019",
			"highlight_add":        "rgba(166, 192, 102, 0.3)",
			"highlight_del":        "rgba(251, 73, 52, 0.3)",
			"highlight":            "rgba(131, 165, 152, 0.3)",
			"type":                 "#83a598",
			"constant":             "#fe8019",
			"string":               "#b8bb26",
			"comment":              "#928374",
			"keyword":              "#fabd2f",
			"function":             "#fb4934",
			"variable":             "#8ec07c",
			"punctuation":          "#a89984",
			"markup_heading":       "#fb4934",
			"diff_plus":            "rgba(166, 192, 102, 0.3)",
			"diff_minus":           "rgba(251, 73, 52, 0.3)",
			"attribute":            "#b8bb26",
			"constructor":          "#fabd2f",
			"tag":                  "#d3869b",
			"escape":               "#fb4934",
		},
	},
}

// PresetNames returns the available preset theme names.
func PresetNames() []string {
	names := make([]string, 0, len(presetThemes))
	for n := range presetThemes {
		names = append(names, n)
	}
	return names
}
