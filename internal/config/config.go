// Package config loads and validates application configuration from
// environment variables (DECKFORGE_ prefix) and an optional config.yaml.
package config

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Worker   WorkerConfig   `mapstructure:"worker"   validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload"   validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
}

// ServerConfig contains the REST tier settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// RedisConfig contains coordination store connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// WorkerConfig contains dispatch loop settings. Durations are in
// seconds.
type WorkerConfig struct {
	Count            int    `mapstructure:"count"              validate:"required,gt=0"`
	PopTimeoutSecs   int    `mapstructure:"pop_timeout_secs"   validate:"required,gt=0"`
	RetryBackoffSecs int    `mapstructure:"retry_backoff_secs" validate:"required,gt=0"`
	LeaseTTLSecs     int    `mapstructure:"lease_ttl_secs"     validate:"required,gt=0"`
	ReapIntervalSecs int    `mapstructure:"reap_interval_secs" validate:"gte=0"`
	OutputDir        string `mapstructure:"output_dir"         validate:"required"`
}

// UploadConfig contains the submission surface settings.
type UploadConfig struct {
	Dir      string `mapstructure:"dir"       validate:"required"`
	MaxBytes int64  `mapstructure:"max_bytes" validate:"required,gt=0"`
}

// PipelineConfig contains the text-analysis stage parameters.
type PipelineConfig struct {
	Profile          string `mapstructure:"profile"           validate:"required,oneof=keyword_entity complex_words"`
	TopKeywords      int    `mapstructure:"top_keywords"      validate:"gt=0"`
	TopComplexWords  int    `mapstructure:"top_complex_words" validate:"gt=0"`
	SummarySentences int    `mapstructure:"summary_sentences" validate:"gt=0"`
}
