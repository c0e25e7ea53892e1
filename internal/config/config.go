// Package config loads and validates the site configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Theme   ThemeConfig   `yaml:"theme"`
	Serve   ServeConfig   `yaml:"serve"`
}

// SiteConfig carries site-wide metadata used by templates and the feed.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// ContentConfig locates the input trees.
type ContentConfig struct {
	Dir          string `yaml:"dir"`           // content tree root
	StaticDir    string `yaml:"static_dir"`    // site-level static files (optional)
	TemplatesDir string `yaml:"templates_dir"` // page template overrides (optional)
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

// Load loads configuration from the specified file, expanding environment
// variables in the raw YAML first. A .env file, when present, is loaded into
// the environment without overwriting existing variables.
func Load(configPath string) (*Config, error) {
	// .env.local first so it takes precedence; godotenv never overwrites
	// variables that are already set.
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil {
			slog.Debug("No env file loaded", logfields.Path(f), logfields.Error(err))
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if _, _, err := config.Theme.Vars(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "My Site"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "content"
	}
	if c.Content.StaticDir == "" {
		c.Content.StaticDir = "static"
	}
	if c.Content.TemplatesDir == "" {
		c.Content.TemplatesDir = "templates"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "dist"
	}
	if c.Theme.Type == "" {
		c.Theme.Type = ThemePreset
	}
	if c.Theme.Type == ThemePreset && c.Theme.Preset == "" {
		c.Theme.Preset = "catppuccin"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	starter := `site:
  title: "My Site"
  description: ""
  base_url: ""

content:
  dir: content

output:
  directory: dist

theme:
  type: preset
  preset: catppuccin

serve:
  addr: ":8080"
  metrics: false
`
	return os.WriteFile(configPath, []byte(starter), 0o644)
}
