// Package config loads runtime settings from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultServerAddr   = ":5000"
	DefaultECFRBaseURL  = "https://www.ecfr.gov"
	DefaultECFRTimeout  = 10 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultConcurrency  = 3
	DefaultAllowOrigins = "*"
	DefaultLogLevel     = "info"
)

type Config struct {
	ServerAddr       string
	ECFRBaseURL      string
	ECFRTimeout      time.Duration
	ECFRUserAgent    string
	FetchConcurrency int
	CORSAllowOrigins string
	LogLevel         string
}

// Load reads envFiles (default ".env") into the process environment and
// resolves the settings against their defaults. A missing env file is not an
// error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_ADDR", DefaultServerAddr)
	v.SetDefault("ECFR_BASE_URL", DefaultECFRBaseURL)
	v.SetDefault("ECFR_TIMEOUT", DefaultECFRTimeout)
	v.SetDefault("ECFR_USER_AGENT", DefaultUserAgent)
	v.SetDefault("FETCH_CONCURRENCY", DefaultConcurrency)
	v.SetDefault("CORS_ALLOW_ORIGINS", DefaultAllowOrigins)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)

	cfg := Config{
		ServerAddr:       v.GetString("SERVER_ADDR"),
		ECFRBaseURL:      strings.TrimRight(v.GetString("ECFR_BASE_URL"), "/"),
		ECFRTimeout:      v.GetDuration("ECFR_TIMEOUT"),
		ECFRUserAgent:    v.GetString("ECFR_USER_AGENT"),
		FetchConcurrency: v.GetInt("FETCH_CONCURRENCY"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ECFRTimeout <= 0 {
		return fmt.Errorf("ECFR_TIMEOUT must be positive, got %s", c.ECFRTimeout)
	}
	if c.FetchConcurrency < 0 {
		return fmt.Errorf("FETCH_CONCURRENCY must not be negative, got %d", c.FetchConcurrency)
	}
	if c.ECFRBaseURL == "" {
		return errors.New("ECFR_BASE_URL must not be empty")
	}
	return nil
}

// Logger builds the structured logger used across the service.
func (c Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
