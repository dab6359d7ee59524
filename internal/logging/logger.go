package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls the optional on-disk log.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	SessionID     string // names the run log; empty generates one
	MaxSizeMB     int
	MaxBackups    int // earlier runs kept
	MaxAgeDays    int
	Compress      bool
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a config string onto a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	var output = out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues builds a stderr logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// HARPOON_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// HARPOON_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("HARPOON_LOG_LEVEL"), os.Getenv("HARPOON_LOG_FORMAT"))
}

// NewWithFile creates a logger that also writes JSON lines to the run log
// of fileCfg.SessionID under fileCfg.LogDir, then prunes the logs of earlier
// runs. The returned cleanup closes the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	if !fileCfg.Enabled {
		return New(cfg), func() {}, nil
	}

	if err := os.MkdirAll(fileCfg.LogDir, 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}

	runID := fileCfg.SessionID
	if runID == "" {
		runID = GenerateSessionID()
	}
	runOpts := RunLogOptions{
		MaxSizeMB:  fileCfg.MaxSizeMB,
		KeepRuns:   fileCfg.MaxBackups,
		MaxAgeDays: fileCfg.MaxAgeDays,
		Compress:   fileCfg.Compress,
	}
	runLog, err := OpenRunLog(fileCfg.LogDir, runID, runOpts)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	var out io.Writer = runLog
	if fileCfg.WriteToStderr {
		var stderr io.Writer = os.Stderr
		if cfg.Format == "console" {
			stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
		}
		out = zerolog.MultiLevelWriter(stderr, runLog)
	}

	logger := zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()

	if removed, err := PruneRunLogs(fileCfg.LogDir, runID, runOpts, time.Now()); err != nil {
		logger.Warn().Err(err).Msg("failed to prune old run logs")
	} else if removed > 0 {
		logger.Debug().Int("runs", removed).Msg("pruned old run logs")
	}

	cleanup := func() {
		if err := runLog.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
		}
	}
	return logger, cleanup, nil
}
