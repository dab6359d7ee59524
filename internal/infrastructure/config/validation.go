package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
)

// validateConfig collects every problem so the user can fix them in one pass.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateBridge(config)...)
	validationErrors = append(validationErrors, validateScroll(config)...)
	validationErrors = append(validationErrors, validateTimings(config)...)
	validationErrors = append(validationErrors, validateTelemetry(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

// Validate checks a configuration without loading it.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	return validateConfig(config)
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if _, err := zerolog.ParseLevel(strings.ToLower(config.Logging.Level)); err != nil || config.Logging.Level == "" {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json", "text":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console, json or text (got %q)", config.Logging.Format))
	}
	if config.Logging.EnableFileLog {
		if config.Logging.LogDir == "" {
			validationErrors = append(validationErrors, "logging.log_dir is required when enable_file_log is true")
		}
		if config.Logging.MaxSizeMB < 1 {
			validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
		}
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validateBridge(config *Config) []string {
	var validationErrors []string
	if _, _, err := net.SplitHostPort(config.Bridge.ListenAddr); err != nil {
		validationErrors = append(validationErrors,
			fmt.Sprintf("bridge.listen_addr must be host:port (got %q)", config.Bridge.ListenAddr))
	}
	if config.Bridge.MessageTimeoutMs < 1 {
		validationErrors = append(validationErrors, "bridge.message_timeout_ms must be positive")
	}
	if config.Bridge.RequestDedupWindowMs < 1 {
		validationErrors = append(validationErrors, "bridge.request_dedup_window_ms must be positive")
	}
	return validationErrors
}

func validateScroll(config *Config) []string {
	var validationErrors []string
	delays := config.Scroll.RetryDelaysMs
	if len(delays) == 0 || len(delays) > 10 {
		validationErrors = append(validationErrors, "scroll.retry_delays_ms must hold between 1 and 10 entries")
	}
	for i, d := range delays {
		if d < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("scroll.retry_delays_ms[%d] must be non-negative", i))
		}
	}
	return validationErrors
}

func validateTimings(config *Config) []string {
	var validationErrors []string
	if config.Tabs.UpdateDebounceMs < 0 {
		validationErrors = append(validationErrors, "tabs.update_debounce_ms must be non-negative")
	}
	if config.Lifecycle.InitialDelayMs < 0 {
		validationErrors = append(validationErrors, "lifecycle.initial_delay_ms must be non-negative")
	}
	if config.Lifecycle.PromptAttempts < 1 {
		validationErrors = append(validationErrors, "lifecycle.prompt_attempts must be at least 1")
	}
	if config.Lifecycle.PromptIntervalMs < 0 {
		validationErrors = append(validationErrors, "lifecycle.prompt_interval_ms must be non-negative")
	}
	return validationErrors
}

func validateTelemetry(config *Config) []string {
	var validationErrors []string
	switch config.Telemetry.TraceExporter {
	case "file", "stdout", "none":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("telemetry.trace_exporter must be file, stdout or none (got %q)", config.Telemetry.TraceExporter))
	}
	if config.Telemetry.SampleRate < 0 || config.Telemetry.SampleRate > 1 {
		validationErrors = append(validationErrors, "telemetry.sample_rate must be between 0 and 1")
	}
	return validationErrors
}
