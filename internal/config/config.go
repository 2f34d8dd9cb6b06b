package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
	Leveling LevelingConfig `mapstructure:"leveling"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// SessionConfig controls live play sessions.
type SessionConfig struct {
	ItemsPerSession   int           `mapstructure:"items_per_session" validate:"required,gt=0,lte=50"`
	SampleInterval    time.Duration `mapstructure:"sample_interval" validate:"required,gt=0"`
	EmotionBufferSize int           `mapstructure:"emotion_buffer_size" validate:"required,gt=0"`
	// EmotionBonus turns on the emotion-congruence score adjustment.
	EmotionBonus    bool          `mapstructure:"emotion_bonus"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"required,gt=0"`
	ResultRetention time.Duration `mapstructure:"result_retention" validate:"required,gt=0"`
}

// LevelingConfig overrides the level adjustment constants. Zero keeps the
// built-in value.
type LevelingConfig struct {
	AffectWeight   float64 `mapstructure:"affect_weight" validate:"gte=0,lte=1"`
	ScoreWeight    float64 `mapstructure:"score_weight" validate:"gte=0,lte=1"`
	RaiseThreshold float64 `mapstructure:"raise_threshold" validate:"gte=0"`
	LowerThreshold float64 `mapstructure:"lower_threshold" validate:"gte=0"`
}

// TaskConfig sizes the background worker pool that hands finished sessions
// to the record sink.
type TaskConfig struct {
	WorkerCount int           `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int           `mapstructure:"queue_size" validate:"required,gt=0"`
	SinkTimeout time.Duration `mapstructure:"sink_timeout" validate:"required,gt=0"`
}

// LLMConfig contains the optional word generation settings. An empty
// provider disables generation.
type LLMConfig struct {
	Provider           string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	OpenAIAPIKey       string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	ModelName          string `mapstructure:"model_name" validate:"required_with=Provider"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds  int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
	WordsPerLevel      int    `mapstructure:"words_per_level" validate:"gte=0,lte=100"`
}

// Enabled reports whether a word generator should be configured.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ""
}
