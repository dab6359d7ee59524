package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "HARPOON"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	created   string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// HARPOON_BRIDGE_LISTEN_ADDR, HARPOON_TABS_UPDATE_DEBOUNCE_MS, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "HARPOON_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind HARPOON_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "HARPOON_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind HARPOON_LOG_FORMAT: %w", err)
	}
	if err := v.BindEnv("database.path", "HARPOON_DB"); err != nil {
		return nil, fmt.Errorf("failed to bind HARPOON_DB: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created from the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func ensureTraceFile(config *Config) {
	if config.Telemetry.TraceFile != "" {
		return
	}
	if path, err := GetTraceFile(); err == nil {
		config.Telemetry.TraceFile = path
	}
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "warning" {
		config.Logging.Level = "warn"
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = getDefaultLogDir()
	}

	config.Bridge.ListenAddr = strings.TrimSpace(config.Bridge.ListenAddr)

	config.Telemetry.TraceExporter = strings.ToLower(strings.TrimSpace(config.Telemetry.TraceExporter))
	if config.Telemetry.TraceExporter == "" {
		config.Telemetry.TraceExporter = "none"
	}
	ensureTraceFile(config)
}

// Override pins key to value above the file and environment, e.g. for a
// command line flag. It applies from the next Load or reload.
func (m *Manager) Override(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viper.Set(key, value)
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.config.Clone()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// CreatedConfigFile reports the path written by Load when no config existed.
func (m *Manager) CreatedConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created
}

// createDefaultConfig writes DefaultConfig and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	// The schema is an editor aid; a failure here must not block startup.
	_, _ = GenerateSchemaFile()

	m.created = configFile
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Database.Path is resolved in Load.
	m.setLoggingDefaults(defaults)
	m.setBridgeDefaults(defaults)
	m.setTimingDefaults(defaults)
	m.setTelemetryDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setBridgeDefaults(defaults *Config) {
	m.viper.SetDefault("bridge.listen_addr", defaults.Bridge.ListenAddr)
	m.viper.SetDefault("bridge.message_timeout_ms", defaults.Bridge.MessageTimeoutMs)
	m.viper.SetDefault("bridge.request_dedup_window_ms", defaults.Bridge.RequestDedupWindowMs)
}

func (m *Manager) setTimingDefaults(defaults *Config) {
	m.viper.SetDefault("scroll.retry_delays_ms", defaults.Scroll.RetryDelaysMs)
	m.viper.SetDefault("tabs.update_debounce_ms", defaults.Tabs.UpdateDebounceMs)
	m.viper.SetDefault("lifecycle.initial_delay_ms", defaults.Lifecycle.InitialDelayMs)
	m.viper.SetDefault("lifecycle.prompt_attempts", defaults.Lifecycle.PromptAttempts)
	m.viper.SetDefault("lifecycle.prompt_interval_ms", defaults.Lifecycle.PromptIntervalMs)
}

func (m *Manager) setTelemetryDefaults(defaults *Config) {
	m.viper.SetDefault("telemetry.metrics_enabled", defaults.Telemetry.MetricsEnabled)
	m.viper.SetDefault("telemetry.tracing_enabled", defaults.Telemetry.TracingEnabled)
	m.viper.SetDefault("telemetry.trace_exporter", defaults.Telemetry.TraceExporter)
	m.viper.SetDefault("telemetry.trace_file", defaults.Telemetry.TraceFile)
	m.viper.SetDefault("telemetry.sample_rate", defaults.Telemetry.SampleRate)
}
