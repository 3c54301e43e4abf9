package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	appLogger  zerolog.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide structured logger. Output goes to stdout
// (human readable outside production) and, when LOG_FILE is set, to a
// size-rotated file as JSON lines.
func Logger() *zerolog.Logger {
	loggerOnce.Do(func() {
		appLogger = NewLogger(LoadConfig())
	})
	return &appLogger
}

// NewLogger builds a logger from cfg without touching the singleton.
func NewLogger(cfg *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	var console io.Writer = os.Stdout
	if cfg.AppEnv != "production" {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{console}
	if cfg.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.AppName).
		Logger()
}
