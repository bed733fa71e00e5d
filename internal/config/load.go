package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from the environment (DECKFORGE_ prefix,
// nested keys joined with underscores, e.g. DECKFORGE_REDIS_ADDR) and an
// optional config.yaml in the working directory. Environment variables
// take precedence over file values. The result is validated before
// being returned.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DECKFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env plus defaults must carry it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.pop_timeout_secs", 30)
	v.SetDefault("worker.retry_backoff_secs", 5)
	v.SetDefault("worker.lease_ttl_secs", 1800)
	v.SetDefault("worker.reap_interval_secs", 300)
	v.SetDefault("worker.output_dir", "/tmp/outputs")

	v.SetDefault("upload.dir", "/tmp/uploads")
	v.SetDefault("upload.max_bytes", 16*1024*1024)

	v.SetDefault("pipeline.profile", "complex_words")
	v.SetDefault("pipeline.top_keywords", 10)
	v.SetDefault("pipeline.top_complex_words", 20)
	v.SetDefault("pipeline.summary_sentences", 3)
}
