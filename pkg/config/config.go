package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Anonymizer AnonymizerConfig `mapstructure:"anonymizer"`
	// Moderation is decoded by the moderation package itself so keyword-table
	// overrides stay free-form.
	Moderation map[string]interface{} `mapstructure:"moderation"`
	Embedding  EmbeddingConfig        `mapstructure:"embedding"`
	Redis      RedisConfig            `mapstructure:"redis"`
	Metrics    MetricsConfig          `mapstructure:"metrics"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type AnonymizerConfig struct {
	// SaltSecret is the server-wide secret mixed into pseudonym derivation.
	SaltSecret string `mapstructure:"salt_secret"`
	// Sentiment selects the hint analyzer: "keyword" or "vader".
	Sentiment string `mapstructure:"sentiment"`
}

type EmbeddingConfig struct {
	// Provider is "hashing" (offline placeholder) or "openai".
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	URL        string `mapstructure:"url"`
	Dimensions int    `mapstructure:"dimensions"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads config.yaml from configPath (then ./config, then .) with
// environment-variable override, e.g. ANONYMIZER_SALT_SECRET.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine; environment variables and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Anonymizer.SaltSecret == "" {
		return nil, fmt.Errorf("anonymizer.salt_secret must be set")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("anonymizer.sentiment", "keyword")
	v.SetDefault("embedding.provider", "hashing")
	v.SetDefault("embedding.dimensions", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("metrics.enabled", true)
}
