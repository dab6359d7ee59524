package config

import "path/filepath"

const (
	defaultListenAddr     = "127.0.0.1:7428"
	defaultMessageTimeout = 3000
	defaultDedupWindow    = 2000
	defaultUpdateDebounce = 250
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 5
	defaultLogMaxAgeDays  = 14
)

func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return filepath.Join(".", "logs")
	}
	return logDir
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			EnableFileLog: false,
			LogDir:        getDefaultLogDir(),
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAgeDays:    defaultLogMaxAgeDays,
			Compress:      true,
		},
		Bridge: BridgeConfig{
			ListenAddr:           defaultListenAddr,
			MessageTimeoutMs:     defaultMessageTimeout,
			RequestDedupWindowMs: defaultDedupWindow,
		},
		Scroll: ScrollConfig{
			RetryDelaysMs: []int{0, 80, 220, 420},
		},
		Tabs: TabsConfig{
			UpdateDebounceMs: defaultUpdateDebounce,
		},
		Lifecycle: LifecycleConfig{
			InitialDelayMs:   1500,
			PromptAttempts:   5,
			PromptIntervalMs: 1000,
		},
		Telemetry: TelemetryConfig{
			MetricsEnabled: true,
			TracingEnabled: false,
			TraceExporter:  "file",
			SampleRate:     1.0,
		},
	}
}
