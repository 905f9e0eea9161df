package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SiteConfig is the WordPress connection configured for the session.
type SiteConfig struct {
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	AppPassword string `yaml:"app_password"`
	Insecure    bool   `yaml:"insecure"`
}

// Config holds all configuration (CLI flags, environment, config file).
type Config struct {
	Listen      string     `yaml:"listen"`
	MappingFile string     `yaml:"mapping_file"`
	LogLevel    string     `yaml:"log_level"`
	Site        SiteConfig `yaml:"site"`

	// internal: path to config file (from CLI flag)
	configFile string
}

// Parse reads CLI flags, then overlays config file values, then the
// environment. Precedence: flags > environment > config file > defaults.
// A .env file in the working directory is loaded first if present.
func Parse() (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	c := &Config{}
	flag.StringVar(&c.configFile, "config", "", "Path to config file (YAML)")
	flag.StringVar(&c.Listen, "listen", "", "HTTP listen address")
	flag.StringVar(&c.MappingFile, "mapping", "", "Path to the saved field mapping file")
	flag.StringVar(&c.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	if c.configFile != "" {
		if err := c.loadFile(c.configFile); err != nil {
			return nil, err
		}
	}
	c.applyEnv(os.Getenv)
	c.applyDefaults()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadFile reads a YAML config file. Values from the file are only applied
// if the corresponding CLI flag was not explicitly set.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if c.Listen == "" {
		c.Listen = file.Listen
	}
	if c.MappingFile == "" {
		c.MappingFile = file.MappingFile
	}
	if c.LogLevel == "" {
		c.LogLevel = file.LogLevel
	}
	c.Site = file.Site

	return nil
}

// applyEnv overlays environment variables on anything the config file
// provided. The credential triple is conventionally supplied this way.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("WP_URL"); v != "" {
		c.Site.URL = v
	}
	if v := getenv("WP_USERNAME"); v != "" {
		c.Site.Username = v
	}
	if v := getenv("WP_APP_PASSWORD"); v != "" {
		c.Site.AppPassword = v
	}
	if v := getenv("WP_POSTER_LISTEN"); v != "" && c.Listen == "" {
		c.Listen = v
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.MappingFile == "" {
		c.MappingFile = "mapping.json"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// validate refuses to proceed without the full credential triple.
func (c *Config) validate() error {
	switch {
	case c.Site.URL == "":
		return fmt.Errorf("site URL is required (WP_URL or site.url in the config file)")
	case c.Site.Username == "":
		return fmt.Errorf("username is required (WP_USERNAME or site.username in the config file)")
	case c.Site.AppPassword == "":
		return fmt.Errorf("application password is required (WP_APP_PASSWORD or site.app_password in the config file)")
	}
	return nil
}
