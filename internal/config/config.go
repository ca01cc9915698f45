package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultTranslatorEndpoint = "https://api.cognitive.microsofttranslator.com"
	DefaultLanguagesURL       = "https://api.cognitive.microsofttranslator.com/languages?api-version=3.0&scope=translation"
)

type Config struct {
	Translator TranslatorConfig `mapstructure:"translator"`
	Languages  LanguagesConfig  `mapstructure:"languages"`
	Phrases    PhrasesConfig    `mapstructure:"phrases"`
	Challenge  ChallengeConfig  `mapstructure:"challenge"`
	History    HistoryConfig    `mapstructure:"history"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Export     ExportConfig     `mapstructure:"export"`
}

type TranslatorConfig struct {
	Azure AzureConfig `mapstructure:"azure"`
}

type AzureConfig struct {
	Endpoint         string `mapstructure:"endpoint" validate:"omitempty,url"`
	Key              string `mapstructure:"key"`
	Region           string `mapstructure:"region"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts" validate:"lte=10"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type LanguagesConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

type PhrasesConfig struct {
	IdiomsFile string `mapstructure:"idioms_file"`
	SlangFile  string `mapstructure:"slang_file"`
	MatchMode  string `mapstructure:"match_mode" validate:"oneof=substring word"`
	Watch      bool   `mapstructure:"watch"`
}

type ChallengeConfig struct {
	PhrasesFile    string `mapstructure:"phrases_file"`
	Items          int    `mapstructure:"items" validate:"min=1,max=10"`
	DefaultTarget  string `mapstructure:"default_target" validate:"langcode"`
	SourceLanguage string `mapstructure:"source_language" validate:"langcode"`
}

type HistoryConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=none yaml database"`
	File    string `mapstructure:"file" validate:"required_if=Backend yaml"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ExportConfig struct {
	TemplateFile string `mapstructure:"template_file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
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
		v.AddConfigPath("$HOME/.config/verbapilot")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("translator.azure.endpoint", DefaultTranslatorEndpoint)
	v.SetDefault("translator.azure.max_retry_attempts", 3)
	v.SetDefault("translator.azure.timeout_seconds", 10)
	v.SetDefault("languages.url", DefaultLanguagesURL)
	v.SetDefault("languages.cache_directory", "")
	v.SetDefault("phrases.idioms_file", filepath.Join("data", "idioms.json"))
	v.SetDefault("phrases.slang_file", filepath.Join("data", "slang.json"))
	v.SetDefault("phrases.match_mode", "substring")
	v.SetDefault("phrases.watch", false)
	v.SetDefault("challenge.phrases_file", filepath.Join("data", "phrases_en.json"))
	v.SetDefault("challenge.items", 3)
	v.SetDefault("challenge.default_target", "es")
	v.SetDefault("challenge.source_language", "en")
	v.SetDefault("history.backend", "yaml")
	v.SetDefault("history.file", filepath.Join("history", "challenges.yml"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "verbapilot")
	v.SetDefault("database.username", "user")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("export.template_file", "")

	// Translator credentials come from the environment (or .env) only
	for key, env := range map[string]string{
		"translator.azure.key":      "AZURE_TRANSLATOR_KEY",
		"translator.azure.region":   "AZURE_TRANSLATOR_REGION",
		"translator.azure.endpoint": "AZURE_TRANSLATOR_ENDPOINT",
		"database.password":         "DB_PASSWORD",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
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

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
