package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestXDGPathsFollowEnvironment(t *testing.T) {
	root := isolate(t)

	cfgFile, err := GetConfigFile()
	require.NoError(t, err)
	dbFile, err := GetDatabaseFile()
	require.NoError(t, err)
	logDir, err := GetLogDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "config", "harpoon", "config.toml"), cfgFile)
	assert.Equal(t, filepath.Join(root, "data", "harpoon", "harpoon.sqlite"), dbFile)
	assert.Equal(t, filepath.Join(root, "state", "harpoon", "logs"), logDir)
}

func TestDevModeUsesWorkingDirectory(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "dev")
	cwd, err := os.Getwd()
	require.NoError(t, err)

	dir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".dev", "harpoon"), dir)
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "127.0.0.1:7428", mgr.viper.GetString("bridge.listen_addr"))
	assert.Equal(t, 250, mgr.viper.GetInt("tabs.update_debounce_ms"))
	assert.Equal(t, 5, mgr.viper.GetInt("lifecycle.prompt_attempts"))
	assert.Equal(t, []int{0, 80, 220, 420}, mgr.viper.GetIntSlice("scroll.retry_delays_ms"))
}

func TestDefaultConfigIsValid(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	normalizeConfig(cfg)
	require.NoError(t, ensureDatabasePath(cfg))

	assert.NoError(t, Validate(cfg))
	assert.Equal(t, 3*time.Second, cfg.Bridge.MessageTimeout())
	assert.Equal(t, []time.Duration{0, 80 * time.Millisecond, 220 * time.Millisecond, 420 * time.Millisecond}, cfg.Scroll.RetryDelays())
	assert.Equal(t, 1500*time.Millisecond, cfg.Lifecycle.InitialDelay())
	assert.NotEmpty(t, cfg.Telemetry.TraceFile)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	cfg.Bridge.ListenAddr = "nope"
	cfg.Scroll.RetryDelaysMs = []int{0, -5}
	cfg.Lifecycle.PromptAttempts = 0
	cfg.Telemetry.SampleRate = 2

	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{
		"logging.level",
		"bridge.listen_addr",
		"scroll.retry_delays_ms[1]",
		"lifecycle.prompt_attempts",
		"telemetry.sample_rate",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestNormalizeConfig(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	cfg.Logging.Level = " WARNING "
	cfg.Logging.Format = ""
	cfg.Telemetry.TraceExporter = ""

	normalizeConfig(cfg)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
}

func TestLoadCreatesDefaultConfigAndSchema(t *testing.T) {
	root := isolate(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfgFile := filepath.Join(root, "config", "harpoon", "config.toml")
	assert.Equal(t, cfgFile, mgr.CreatedConfigFile())
	assert.FileExists(t, cfgFile)
	assert.FileExists(t, filepath.Join(root, "config", "harpoon", schemaFileName))

	cfg := mgr.Get()
	assert.Equal(t, filepath.Join(root, "data", "harpoon", "harpoon.sqlite"), cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:7428", cfg.Bridge.ListenAddr)
}

func TestLoadReadsFileAndEnvironment(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", "harpoon")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[bridge]
listen_addr = "127.0.0.1:9000"

[scroll]
retry_delays_ms = [0, 50]
`), 0o644))
	t.Setenv("HARPOON_LOG_LEVEL", "debug")
	t.Setenv("HARPOON_TABS_UPDATE_DEBOUNCE_MS", "40")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	cfg := mgr.Get()

	assert.Empty(t, mgr.CreatedConfigFile())
	assert.Equal(t, "127.0.0.1:9000", cfg.Bridge.ListenAddr)
	assert.Equal(t, []int{0, 50}, cfg.Scroll.RetryDelaysMs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 40, cfg.Tabs.UpdateDebounceMs)
	assert.Equal(t, 3000, cfg.Bridge.MessageTimeoutMs, "unset keys fall back to defaults")
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", "harpoon")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[lifecycle]\nprompt_attempts = 0\n"), 0o644))

	mgr, err := NewManager()
	require.NoError(t, err)
	err = mgr.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lifecycle.prompt_attempts")
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	isolate(t)
	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Scroll.RetryDelaysMs[0] = 999
	cfg.Bridge.ListenAddr = "changed"

	again := mgr.Get()
	assert.Equal(t, 0, again.Scroll.RetryDelaysMs[0])
	assert.Equal(t, "127.0.0.1:7428", again.Bridge.ListenAddr)
}

func TestReloadNotifiesAndKeepsOldValuesOnError(t *testing.T) {
	isolate(t)
	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	path := mgr.GetConfigFile()

	var seen []*Config
	mgr.OnConfigChange(func(c *Config) { seen = append(seen, c) })

	cfg := mgr.Get()
	cfg.Tabs.UpdateDebounceMs = 10
	require.NoError(t, WriteConfigOrdered(cfg, path))
	require.NoError(t, mgr.Reload())
	require.Len(t, seen, 1)
	assert.Equal(t, 10, seen[0].Tabs.UpdateDebounceMs)

	require.NoError(t, os.WriteFile(path, []byte("[bridge]\nmessage_timeout_ms = 0\n"), 0o644))
	require.Error(t, mgr.Reload())
	assert.Len(t, seen, 1)
	assert.Equal(t, 10, mgr.Get().Tabs.UpdateDebounceMs)
}

func TestWatchRequiresLoad(t *testing.T) {
	isolate(t)
	mgr, err := NewManager()
	require.NoError(t, err)
	assert.Error(t, mgr.Watch(zerolog.Nop()))
}

func TestWriteConfigOrderedSortsSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var headers []string
	for _, line := range strings.Split(string(data), "\n") {
		if m := sectionHeader.FindStringSubmatch(line); m != nil {
			headers = append(headers, m[2])
		}
	}
	assert.Equal(t, []string{"bridge", "database", "lifecycle", "logging", "scroll", "tabs", "telemetry"}, headers)

	var back Config
	require.NoError(t, toml.Unmarshal(data, &back))
	assert.Equal(t, DefaultConfig().Lifecycle, back.Lifecycle)
}

func TestWriteConfigOrderedRejectsNil(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "x.toml")))
}

func TestSortTOMLSections(t *testing.T) {
	in := "top = 1\n[b]\nx = 1\n[a]\ny = 2\n"
	assert.Equal(t, "top = 1\n\n[a]\ny = 2\n\n[b]\nx = 1\n", sortTOMLSections(in))
}

func TestSchemaUsesTomlFieldNames(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, `"listen_addr"`)
	assert.Contains(t, s, `"retry_delays_ms"`)
	assert.Contains(t, s, "Harpoon Configuration")
}
