package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// LEXIPLAY_SERVER_PORT for server.port.
const EnvPrefix = "LEXIPLAY"

// keys lists every configuration key so each can be bound to its
// environment variable even without a config file.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime",
	"session.items_per_session",
	"session.sample_interval",
	"session.emotion_buffer_size",
	"session.emotion_bonus",
	"session.idle_timeout",
	"session.result_retention",
	"leveling.affect_weight",
	"leveling.score_weight",
	"leveling.raise_threshold",
	"leveling.lower_threshold",
	"task.worker_count",
	"task.queue_size",
	"task.sink_timeout",
	"llm.provider",
	"llm.gemini_api_key",
	"llm.openai_api_key",
	"llm.model_name",
	"llm.prompt_template_path",
	"llm.max_retries",
	"llm.retry_delay_seconds",
	"llm.words_per_level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("session.items_per_session", 5)
	v.SetDefault("session.sample_interval", 2*time.Second)
	v.SetDefault("session.emotion_buffer_size", 16)
	v.SetDefault("session.emotion_bonus", false)
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.result_retention", 5*time.Minute)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.sink_timeout", 5*time.Second)

	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.words_per_level", 10)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first; it never overrides
// variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a configuration against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Leveling.RaiseThreshold > 0 && cfg.Leveling.LowerThreshold > 0 &&
		cfg.Leveling.RaiseThreshold <= cfg.Leveling.LowerThreshold {
		return fmt.Errorf("config validation failed: raise threshold must be above lower threshold")
	}
	return nil
}
