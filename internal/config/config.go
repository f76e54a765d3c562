// Package config loads educoach settings from defaults, an optional YAML
// file, a .env file and EDUCOACH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/llm"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/logging"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. EDUCOACH_LOG_LEVEL.
const EnvPrefix = "EDUCOACH"

// Config is the resolved application configuration.
type Config struct {
	DataDir     string
	TaxonomyDir string
	DBPath      string
	MetricsFile string // empty disables the textfile dump

	// RandomSeed seeds exercise template selection. Zero uses the clock.
	RandomSeed uint64

	Log logging.Config
	LLM llm.Config

	// File is the config file that was read, if any.
	File string
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the data directory and the working
// directory, and its absence is not an error.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dataHome, err := store.DataHome()
	if err != nil {
		return nil, err
	}
	setDefaults(v, dataHome)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("data_dir"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := fromViper(v)
	cfg.File = v.ConfigFileUsed()
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads a .env file when present. Variables already set in the
// environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, dataHome string) {
	logDefaults := logging.DefaultConfig()
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("data_dir", dataHome)
	v.SetDefault("taxonomy_dir", "")
	v.SetDefault("db_path", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("random_seed", 0)

	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", logDefaults.MaxSizeMB)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)
	v.SetDefault("log.max_age_days", logDefaults.MaxAgeDays)
	v.SetDefault("log.compress", logDefaults.Compress)

	v.SetDefault("llm.provider", llmDefaults.Provider)
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.retry.max_attempts", llmDefaults.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", llmDefaults.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", llmDefaults.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", llmDefaults.Retry.Multiplier)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DataDir:     v.GetString("data_dir"),
		TaxonomyDir: v.GetString("taxonomy_dir"),
		DBPath:      v.GetString("db_path"),
		MetricsFile: v.GetString("metrics_file"),
		RandomSeed:  v.GetUint64("random_seed"),
		Log: logging.Config{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
		LLM: llm.Config{
			Provider: v.GetString("llm.provider"),
			Timeout:  v.GetDuration("llm.timeout"),
			Anthropic: llm.AnthropicConfig{
				APIKey:  v.GetString("llm.anthropic.api_key"),
				Model:   v.GetString("llm.anthropic.model"),
				BaseURL: v.GetString("llm.anthropic.base_url"),
			},
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Gemini: llm.GeminiConfig{
				APIKey: v.GetString("llm.gemini.api_key"),
				Model:  v.GetString("llm.gemini.model"),
			},
			Retry: llm.RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
		},
	}

	if cfg.TaxonomyDir == "" {
		cfg.TaxonomyDir = filepath.Join(cfg.DataDir, "taxonomies")
	}
	return cfg
}

// ResolveDBPath returns the database path and makes sure its directory
// exists. Precedence: db_path, then EDUCOACH_DB, then data_dir.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	if os.Getenv("EDUCOACH_DB") != "" {
		return store.DefaultDBPath()
	}
	p := filepath.Join(c.DataDir, "educoach.db")
	return p, store.EnsureDir(p)
}
