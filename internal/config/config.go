package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://your-blog.com"

type Config struct {
	SiteTitle       string       `mapstructure:"siteTitle"`
	SiteDescription string       `mapstructure:"siteDescription"`
	BaseURL         string       `mapstructure:"baseURL"`
	Language        string       `mapstructure:"language"`
	ContentDir      string       `mapstructure:"contentDir"`
	StaticDir       string       `mapstructure:"staticDir"`
	OutputDir       string       `mapstructure:"outputDir"`
	DevMode         bool         `mapstructure:"devMode"`
	PerPage         int          `mapstructure:"perPage"`
	LogLevel        string       `mapstructure:"logLevel"`
	LogFormat       string       `mapstructure:"logFormat"`
	Search          SearchConfig `mapstructure:"search"`
	PostBuild       PostBuild    `mapstructure:"postbuild"`
}

type SearchConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	Distance  int     `mapstructure:"distance"`
}

// PostBuild lists extra commands run after the feeds are generated.
type PostBuild struct {
	Scripts []string `mapstructure:"scripts"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "QuillMD")
	v.SetDefault("siteDescription", "A markdown-powered blog")
	v.SetDefault("baseURL", DefaultBaseURL)
	v.SetDefault("language", "en-us")
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "dist")
	v.SetDefault("devMode", false)
	v.SetDefault("perPage", 10)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "text")
	v.SetDefault("search.threshold", 0.4)
	v.SetDefault("search.distance", 100)
	v.SetDefault("postbuild.scripts", []string{})
}

// Load reads configuration from cfgFile (or ./config.yaml when empty), .env
// and QUILL_* environment variables. The second return value is the config
// file actually used, empty when none was found.
func Load(cfgFile string) (Config, string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, "", fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("baseURL", "QUILL_BASEURL", "VITE_SITE_URL"); err != nil {
		return Config{}, "", fmt.Errorf("failed to bind base URL env: %w", err)
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return Config{}, "", fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

// Validate checks the configuration for values the build cannot work with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("baseURL is required")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("contentDir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir is required")
	}
	if c.PerPage < 1 {
		return fmt.Errorf("perPage must be at least 1")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be between 0 and 1")
	}
	if c.Search.Distance < 0 {
		return fmt.Errorf("search.distance must not be negative")
	}
	return nil
}
