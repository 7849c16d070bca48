package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Settings SettingsConfig `mapstructure:"settings"`
	Study    StudyConfig    `mapstructure:"study"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Outputs  OutputsConfig  `mapstructure:"outputs"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gt=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path          string `mapstructure:"path" validate:"required"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms"`
}

type SettingsConfig struct {
	// Path to the YAML file holding learner settings. Kept outside the
	// database so it can be edited and backed up on its own.
	Path string `mapstructure:"path" validate:"required"`
}

type StudyConfig struct {
	// Maximum number of due cards handed out per study request.
	SessionLimit int `mapstructure:"session_limit" validate:"gt=0"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OutputsConfig struct {
	SheetDirectory string `mapstructure:"sheet_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

// Load creates a loader and reads the configuration in one step.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/spellcoach")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.path", filepath.Join("data", "spellcoach.db"))
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("settings.path", filepath.Join("data", "settings.yml"))
	v.SetDefault("study.session_limit", 20)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("outputs.sheet_directory", filepath.Join("outputs", "sheets"))

	// OpenAI credentials come from environment variables only, never the
	// config file.
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (loader *ConfigLoader) validate(cfg *Config) error {
	err := loader.validator.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fieldError.Translate(loader.translator))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
