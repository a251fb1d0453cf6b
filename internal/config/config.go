package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	SessionTTL string `yaml:"session_ttl"`
}

type VerificationConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LinksConfig struct {
	BaseURL     string `yaml:"base_url"`
	Realm       string `yaml:"realm"`
	ClientID    string `yaml:"client_id"`
	RedirectURI string `yaml:"redirect_uri"`
}

type AttemptConfig struct {
	TTL string `yaml:"ttl"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	Email        EmailConfig        `yaml:"email"`
	Links        LinksConfig        `yaml:"links"`
	Attempt      AttemptConfig      `yaml:"attempt"`
}

type Config struct {
	Port                string
	GinMode             string
	DSN                 string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	JWTSecret           string
	JWTIssuer           string
	SessionTTL          time.Duration
	VerificationURL     string
	VerificationTimeout time.Duration
	EmailHost           string
	EmailPort           int
	EmailUser           string
	EmailPassword       string
	EmailFrom           string
	LinkBaseURL         string
	LinkRealm           string
	LinkClientID        string
	LinkRedirectURI     string
	AttemptTTL          time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	verifyTimeout, err := time.ParseDuration(configFile.Verification.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid verification timeout: %w", err)
	}

	attemptTTL, err := time.ParseDuration(configFile.Attempt.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid attempt TTL: %w", err)
	}

	return &Config{
		Port:                fmt.Sprintf("%d", configFile.App.Port),
		GinMode:             configFile.App.GinMode,
		DSN:                 env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:           env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:       env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:             configFile.Redis.DB,
		JWTSecret:           env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:           configFile.JWT.Issuer,
		SessionTTL:          sessionTTL,
		VerificationURL:     env("VERIFICATION_URL", configFile.Verification.URL),
		VerificationTimeout: verifyTimeout,
		EmailHost:           env("SMTP_HOST", configFile.Email.Host),
		EmailPort:           configFile.Email.Port,
		EmailUser:           env("SMTP_USER", configFile.Email.User),
		EmailPassword:       env("SMTP_PASSWORD", configFile.Email.Password),
		EmailFrom:           configFile.Email.From,
		LinkBaseURL:         env("LINK_BASE_URL", configFile.Links.BaseURL),
		LinkRealm:           configFile.Links.Realm,
		LinkClientID:        configFile.Links.ClientID,
		LinkRedirectURI:     configFile.Links.RedirectURI,
		AttemptTTL:          attemptTTL,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
