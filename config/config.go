package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultConfigPath = "config/config.yaml"
)

type Config struct {
	Port           string       `mapstructure:"port"`
	Provider       string       `mapstructure:"provider"`
	AIEndpoint     string       `mapstructure:"ai_endpoint"`
	Model          string       `mapstructure:"model"`
	OpenAIAPIKey   string       `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey   string       `mapstructure:"GEMINI_API_KEY"`
	Seed           int          `mapstructure:"seed"`
	DefaultVariant string       `mapstructure:"default_variant"`
	LogLevel       string       `mapstructure:"log_level"`
	Fetch          FetchConfig  `mapstructure:"fetch"`
	Server         ServerConfig `mapstructure:"server"`
}

type FetchConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxDocumentBytes int64         `mapstructure:"max_document_bytes"`
	AllowLocalFiles  bool          `mapstructure:"allow_local_files"`
}

type ServerConfig struct {
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("ai_endpoint", "https://api.openai.com/v1")
	v.SetDefault("model", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("seed", 0)
	v.SetDefault("default_variant", "sales_proposal_en")
	v.SetDefault("log_level", "info")
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.max_document_bytes", int64(50<<20))
	v.SetDefault("fetch.allow_local_files", false)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
}

// LoadConfig reads configuration from defaults, the YAML file at configPath
// (if it exists) and the environment, in increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set up Viper to read from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("model", "OPENAI_MODEL", "MODEL")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Validate checks that the configuration can start the service.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %q", c.Port)
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model is required (set OPENAI_MODEL or model)")
	}
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
		if c.AIEndpoint == "" {
			return errors.New("ai_endpoint cannot be empty")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("provider must be either %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.Provider)
	}
	if strings.TrimSpace(c.DefaultVariant) == "" {
		return errors.New("default_variant cannot be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.Seed < 0 {
		return errors.New("seed cannot be negative")
	}
	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch.timeout must be positive")
	}
	if c.Fetch.MaxDocumentBytes <= 0 {
		return errors.New("fetch.max_document_bytes must be positive")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	return nil
}

// SeedValue returns the configured sampling seed, or nil when unset.
func (c *Config) SeedValue() *int {
	if c.Seed == 0 {
		return nil
	}
	seed := c.Seed
	return &seed
}
