package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestContextHelpersAddFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "tabs")
	ctx = WithTabID(ctx, 42)
	ctx = WithRequestID(ctx, "req-1")
	FromContext(ctx).Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"tabs"`)
	assert.Contains(t, out, `"tab_id":42`)
	assert.Contains(t, out, `"request_id":"req-1"`)
}

func TestFromContextWithoutLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info().Msg("dropped")
	})
}

func TestNewWithFileWritesToLogDir(t *testing.T) {
	dir := t.TempDir()

	logger, cleanup, err := NewWithFile(Config{Level: zerolog.InfoLevel, Format: "json"}, FileConfig{
		Enabled:   true,
		LogDir:    dir,
		SessionID: "20260101_000000_beef",
	})
	require.NoError(t, err)
	logger.Info().Str("k", "v").Msg("to file")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "session_20260101_000000_beef.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"k":"v"`))
}

func TestNewWithFileDisabledFallsBackToStderr(t *testing.T) {
	_, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: false})
	require.NoError(t, err)
	cleanup()
}

func TestRunLogRollsLiveFileOnce(t *testing.T) {
	dir := t.TempDir()
	l, err := OpenRunLog(dir, "20260101_000000_beef", RunLogOptions{MaxSizeMB: 1})
	require.NoError(t, err)
	defer l.Close()

	chunk := bytes.Repeat([]byte("x"), 600*1024)
	for range 3 {
		_, err = l.Write(chunk)
		require.NoError(t, err)
	}

	names := dirNames(t, dir)
	assert.ElementsMatch(t, []string{
		"session_20260101_000000_beef.log",
		"session_20260101_000000_beef.log.1",
	}, names)
}

func TestRunLogWriteAfterCloseFails(t *testing.T) {
	l, err := OpenRunLog(t.TempDir(), "20260101_000000_beef", RunLogOptions{})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, err = l.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestPruneRunLogsKeepsNewestRuns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"session_20260101_000000_aaaa.log",
		"session_20260101_000000_aaaa.log.1",
		"session_20260102_000000_bbbb.log",
		"session_20260103_000000_cccc.log",
		"session_20260104_000000_dddd.log",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("line\n"), 0o600))
	}
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	removed, err := PruneRunLogs(dir, "20260104_000000_dddd", RunLogOptions{KeepRuns: 2}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.ElementsMatch(t, []string{
		"session_20260102_000000_bbbb.log",
		"session_20260103_000000_cccc.log",
		"session_20260104_000000_dddd.log",
		"notes.txt",
	}, dirNames(t, dir))
}

func TestPruneRunLogsDropsExpiredAndCompressesTheRest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"session_20250101_000000_aaaa.log",
		"session_20260103_000000_cccc.log",
		"session_20260104_000000_dddd.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("line\n"), 0o600))
	}
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	removed, err := PruneRunLogs(dir, "20260104_000000_dddd", RunLogOptions{MaxAgeDays: 30, Compress: true}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.ElementsMatch(t, []string{
		"session_20260103_000000_cccc.log.gz",
		"session_20260104_000000_dddd.log",
	}, dirNames(t, dir))
}

func TestNewWithFilePrunesEarlierRuns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_20200101_000000_aaaa.log"), nil, 0o600))

	_, cleanup, err := NewWithFile(Config{Level: zerolog.InfoLevel, Format: "json"}, FileConfig{
		Enabled:    true,
		LogDir:     dir,
		SessionID:  "20260101_000000_beef",
		MaxAgeDays: 7,
	})
	require.NoError(t, err)
	cleanup()

	assert.Equal(t, []string{"session_20260101_000000_beef.log"}, dirNames(t, dir))
}

func TestSessionFilenameRoundTrip(t *testing.T) {
	id := GenerateSessionID()
	got, ok := ParseSessionFilename(SessionFilename(id))
	require.True(t, ok)
	assert.Equal(t, id, got)

	started, ok := RunStarted(id)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), started, time.Minute)

	for _, name := range []string{"session_x.log.1", "session_x.log.gz", "session_x.log.1.gz"} {
		got, ok := ParseSessionFilename(name)
		assert.True(t, ok, name)
		assert.Equal(t, "x", got, name)
	}
	for _, name := range []string{"harpoon.log", "session_.log", "session_x.log.2", "session_x.txt"} {
		_, ok := ParseSessionFilename(name)
		assert.False(t, ok, name)
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRecoverAndLogRecordsAndRepanics(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	assert.PanicsWithValue(t, "boom", func() {
		defer RecoverAndLog(logger)
		panic("boom")
	})
	out := buf.String()
	assert.Contains(t, out, `"panic":"boom"`)
	assert.Contains(t, out, `"stack":`)
	assert.Contains(t, out, "PANIC")
}
