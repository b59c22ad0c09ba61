// Package config loads levelquiz settings from flags, LEVELQUIZ_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/levelquiz/internal/llm"
	"github.com/abhisek/levelquiz/internal/source"
)

// EnvPrefix is prepended to every environment variable, e.g. LEVELQUIZ_SOURCE_URL.
const EnvPrefix = "LEVELQUIZ"

type Config struct {
	Level        int           `mapstructure:"level"`
	AdvanceDelay time.Duration `mapstructure:"advance_delay"`

	Source  SourceConfig  `mapstructure:"source"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type SourceConfig struct {
	Kind      string        `mapstructure:"kind"`
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Rate      float64       `mapstructure:"rate"`
	Burst     int           `mapstructure:"burst"`
	Questions int           `mapstructure:"questions"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type MetricsConfig struct {
	// Addr enables the /metrics endpoint when non-empty, e.g. ":9090".
	Addr string `mapstructure:"addr"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"level":          "level",
	"advance-delay":  "advance_delay",
	"source":         "source.kind",
	"source-url":     "source.url",
	"source-timeout": "source.timeout",
	"source-rate":    "source.rate",
	"source-burst":   "source.burst",
	"questions":      "source.questions",
	"llm-provider":   "llm.provider",
	"llm-model":      "llm.model",
	"llm-api-key":    "llm.api_key",
	"llm-base-url":   "llm.base_url",
	"log-file":       "log.file",
	"log-level":      "log.level",
	"metrics-addr":   "metrics.addr",
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("level", 1)
	v.SetDefault("advance_delay", 2*time.Second)
	v.SetDefault("source.kind", source.KindHTTP)
	v.SetDefault("source.url", source.DefaultURL)
	v.SetDefault("source.timeout", 10*time.Second)
	v.SetDefault("source.rate", 1.0)
	v.SetDefault("source.burst", 3)
	v.SetDefault("source.questions", 5)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("metrics.addr", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags declares the command-line flags Load understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("level", 1, "level to start at")
	fs.Duration("advance-delay", 2*time.Second, "pause after an answer is revealed")
	fs.String("source", source.KindHTTP, "question source: http or llm")
	fs.String("source-url", source.DefaultURL, "quiz service endpoint")
	fs.Duration("source-timeout", 10*time.Second, "timeout for one fetch")
	fs.Float64("source-rate", 1, "maximum fetches per second")
	fs.Int("source-burst", 3, "fetches allowed in a burst")
	fs.Int("questions", 5, "questions per level for the llm source")
	fs.String("llm-provider", "", "anthropic, openai, openrouter, gemini or mock")
	fs.String("llm-model", "", "model name, provider default when empty")
	fs.String("llm-api-key", "", "API key for the llm provider")
	fs.String("llm-base-url", "", "endpoint override for OpenAI-compatible providers")
	fs.String("log-file", "", "write JSON logs to this file")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("metrics-addr", "", "serve prometheus metrics on this address")
}

// BindFlags binds every registered flag present in fs to its config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads file, if given, and decodes the merged settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", c.Level)
	}
	if c.AdvanceDelay <= 0 {
		return fmt.Errorf("advance_delay must be positive, got %s", c.AdvanceDelay)
	}
	switch c.Source.Kind {
	case source.KindHTTP:
		if c.Source.Rate <= 0 {
			return fmt.Errorf("source.rate must be positive, got %g", c.Source.Rate)
		}
	case source.KindLLM:
		if c.Source.Questions < 1 {
			return fmt.Errorf("source.questions must be at least 1, got %d", c.Source.Questions)
		}
		if err := c.llm().Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown source kind %q (want %s or %s)", c.Source.Kind, source.KindHTTP, source.KindLLM)
	}
	return nil
}

// SourceConfig converts the settings for source.New.
func (c *Config) SourceConfig() source.Config {
	return source.Config{
		Kind:      c.Source.Kind,
		URL:       c.Source.URL,
		Timeout:   c.Source.Timeout,
		Rate:      c.Source.Rate,
		Burst:     c.Source.Burst,
		Questions: c.Source.Questions,
		LLM:       c.llm(),
	}
}

func (c *Config) llm() llm.Config {
	return llm.Config{
		Provider: c.LLM.Provider,
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		BaseURL:  c.LLM.BaseURL,
		Timeout:  c.Source.Timeout,
	}
}
