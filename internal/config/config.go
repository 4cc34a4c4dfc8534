// Package config reads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	EnvLogLevel        = "PHOTOADJUST_LOG_LEVEL"
	EnvLogFormat       = "PHOTOADJUST_LOG_FORMAT"
	EnvHistoryLimit    = "PHOTOADJUST_HISTORY_LIMIT"
	EnvPreviewDelay    = "PHOTOADJUST_PREVIEW_DELAY"
	EnvFallbackOnError = "PHOTOADJUST_FALLBACK_ON_ERROR"
	EnvMetrics         = "PHOTOADJUST_METRICS"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Config struct {
	LogLevel        logrus.Level
	LogFormat       string
	HistoryLimit    int
	PreviewDelay    time.Duration
	FallbackOnError bool
	Metrics         bool
}

func Default() Config {
	return Config{
		LogLevel:        logrus.InfoLevel,
		LogFormat:       FormatJSON,
		PreviewDelay:    200 * time.Millisecond,
		FallbackOnError: true,
	}
}

// Load reads the given .env files (".env" when none are named; a missing file
// is not an error) and then the process environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: reading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup. Unset variables keep their defaults;
// malformed ones are errors.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(EnvLogFormat); ok {
		switch v {
		case FormatJSON, FormatText:
			cfg.LogFormat = v
		default:
			errs = append(errs, fmt.Errorf("%s: unknown format %q", EnvLogFormat, v))
		}
	}

	if v, ok := lookup(EnvHistoryLimit); ok {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvHistoryLimit, err))
		case n < 0:
			errs = append(errs, fmt.Errorf("%s: must be >= 0, got %d", EnvHistoryLimit, n))
		default:
			cfg.HistoryLimit = n
		}
	}

	if v, ok := lookup(EnvPreviewDelay); ok {
		d, err := time.ParseDuration(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvPreviewDelay, err))
		case d < 0:
			errs = append(errs, fmt.Errorf("%s: must not be negative", EnvPreviewDelay))
		default:
			cfg.PreviewDelay = d
		}
	}

	if v, ok := lookup(EnvFallbackOnError); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvFallbackOnError, err))
		}
		cfg.FallbackOnError = b
	}

	if v, ok := lookup(EnvMetrics); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMetrics, err))
		}
		cfg.Metrics = b
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the application logger. Debug forces debug level and the
// coloured text formatter.
func (c Config) NewLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, format := c.LogLevel, c.LogFormat
	if debug {
		level, format = logrus.DebugLevel, FormatText
	}
	logger.SetLevel(level)

	if format == FormatText {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   debug,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}
