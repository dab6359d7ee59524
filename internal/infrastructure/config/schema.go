// Package config loads the daemon configuration from TOML with Viper.
package config

import "time"

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config is the complete daemon configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" toml:"database" json:"database"`
	Logging   LoggingConfig   `mapstructure:"logging" toml:"logging" json:"logging"`
	Bridge    BridgeConfig    `mapstructure:"bridge" toml:"bridge" json:"bridge"`
	Scroll    ScrollConfig    `mapstructure:"scroll" toml:"scroll" json:"scroll"`
	Tabs      TabsConfig      `mapstructure:"tabs" toml:"tabs" json:"tabs"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle" toml:"lifecycle" json:"lifecycle"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" toml:"telemetry" json:"telemetry"`
}

// DatabaseConfig locates the state database.
type DatabaseConfig struct {
	// Path to the SQLite file. Empty means $XDG_DATA_HOME/harpoon/harpoon.sqlite.
	Path string `mapstructure:"path" toml:"path" json:"path" jsonschema:"description=SQLite state file; empty uses the XDG data directory"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,enum=text"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0,description=log files of earlier daemon runs to keep; 0 keeps all"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// BridgeConfig controls the extension WebSocket endpoint.
type BridgeConfig struct {
	ListenAddr           string `mapstructure:"listen_addr" toml:"listen_addr" json:"listen_addr" jsonschema:"description=host:port the extension connects to"`
	MessageTimeoutMs     int    `mapstructure:"message_timeout_ms" toml:"message_timeout_ms" json:"message_timeout_ms" jsonschema:"minimum=1"`
	RequestDedupWindowMs int    `mapstructure:"request_dedup_window_ms" toml:"request_dedup_window_ms" json:"request_dedup_window_ms" jsonschema:"minimum=1"`
}

// MessageTimeout bounds a single round trip to the extension.
func (b BridgeConfig) MessageTimeout() time.Duration {
	return time.Duration(b.MessageTimeoutMs) * time.Millisecond
}

// DedupWindow is how long request ids are remembered.
func (b BridgeConfig) DedupWindow() time.Duration {
	return time.Duration(b.RequestDedupWindowMs) * time.Millisecond
}

// ScrollConfig controls scroll restore delivery.
type ScrollConfig struct {
	RetryDelaysMs []int `mapstructure:"retry_delays_ms" toml:"retry_delays_ms" json:"retry_delays_ms" jsonschema:"minItems=1,maxItems=10"`
}

// RetryDelays converts the configured delays.
func (s ScrollConfig) RetryDelays() []time.Duration {
	out := make([]time.Duration, len(s.RetryDelaysMs))
	for i, ms := range s.RetryDelaysMs {
		out[i] = time.Duration(ms) * time.Millisecond
	}
	return out
}

// TabsConfig controls tab event handling.
type TabsConfig struct {
	UpdateDebounceMs int `mapstructure:"update_debounce_ms" toml:"update_debounce_ms" json:"update_debounce_ms" jsonschema:"minimum=0"`
}

// UpdateDebounce is the quiet period before a tab update is written.
func (t TabsConfig) UpdateDebounce() time.Duration {
	return time.Duration(t.UpdateDebounceMs) * time.Millisecond
}

// LifecycleConfig controls the restore prompt shown after a browser restart.
type LifecycleConfig struct {
	InitialDelayMs   int `mapstructure:"initial_delay_ms" toml:"initial_delay_ms" json:"initial_delay_ms" jsonschema:"minimum=0"`
	PromptAttempts   int `mapstructure:"prompt_attempts" toml:"prompt_attempts" json:"prompt_attempts" jsonschema:"minimum=1"`
	PromptIntervalMs int `mapstructure:"prompt_interval_ms" toml:"prompt_interval_ms" json:"prompt_interval_ms" jsonschema:"minimum=0"`
}

// InitialDelay is the wait before the first prompt attempt.
func (l LifecycleConfig) InitialDelay() time.Duration {
	return time.Duration(l.InitialDelayMs) * time.Millisecond
}

// PromptInterval is the wait between prompt attempts.
func (l LifecycleConfig) PromptInterval() time.Duration {
	return time.Duration(l.PromptIntervalMs) * time.Millisecond
}

// TelemetryConfig toggles metrics and tracing.
type TelemetryConfig struct {
	MetricsEnabled bool    `mapstructure:"metrics_enabled" toml:"metrics_enabled" json:"metrics_enabled"`
	TracingEnabled bool    `mapstructure:"tracing_enabled" toml:"tracing_enabled" json:"tracing_enabled"`
	TraceExporter  string  `mapstructure:"trace_exporter" toml:"trace_exporter" json:"trace_exporter" jsonschema:"enum=file,enum=stdout,enum=none"`
	TraceFile      string  `mapstructure:"trace_file" toml:"trace_file" json:"trace_file"`
	SampleRate     float64 `mapstructure:"sample_rate" toml:"sample_rate" json:"sample_rate" jsonschema:"minimum=0,maximum=1"`
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Scroll.RetryDelaysMs = append([]int(nil), c.Scroll.RetryDelaysMs...)
	return &out
}
