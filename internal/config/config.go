// Package config loads wordquest settings from flags, WORDQUEST_*
// environment variables, an optional YAML file, and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/PPRAMANIK62/word-quest/internal/llm"
	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WORDQUEST"

// Config holds the resolved application settings.
type Config struct {
	DBPath      string     `mapstructure:"db"`
	Policy      string     `mapstructure:"policy"`
	SessionSize int        `mapstructure:"session_size"`
	ReviewLimit int        `mapstructure:"review_limit"`
	UserID      string     `mapstructure:"user"`
	LLM         llm.Config `mapstructure:"llm"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, the default
	// path is used if it exists.
	ConfigFile string

	// EnvFile is the dotenv file loaded before reading the environment.
	// Defaults to ".env"; a missing file is ignored.
	EnvFile string

	// Flags are bound over every other source. Flag names match config
	// keys ("db", "policy", "session-size" maps to "session_size").
	Flags *pflag.FlagSet
}

// Defaults.
const (
	DefaultPolicy      = mastery.PolicyLinear
	DefaultSessionSize = 8
	DefaultReviewLimit = 20
	DefaultUserID      = "local"
)

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if opts.Flags != nil {
		for _, key := range []string{"db", "policy", "session_size", "user"} {
			name := strings.ReplaceAll(key, "_", "-")
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	cfg.LLM.Discover()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := mastery.PolicyByName(c.Policy); err != nil {
		return err
	}
	if c.SessionSize < 1 {
		return fmt.Errorf("session_size must be at least 1, got %d", c.SessionSize)
	}
	if c.UserID == "" {
		return fmt.Errorf("user must not be empty")
	}
	return nil
}

// MasteryPolicy returns the configured policy.
func (c *Config) MasteryPolicy() (mastery.Policy, error) {
	return mastery.PolicyByName(c.Policy)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/wordquest/config.yaml, or ""
// when no config directory can be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wordquest", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("policy", DefaultPolicy)
	v.SetDefault("session_size", DefaultSessionSize)
	v.SetDefault("review_limit", DefaultReviewLimit)
	v.SetDefault("user", DefaultUserID)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)

	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.rate_limit.requests_per_second", d.RateLimit.RequestsPerSecond)
	v.SetDefault("llm.rate_limit.burst", d.RateLimit.Burst)
}
