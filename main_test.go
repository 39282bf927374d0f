package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-shift-bot/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath, verbose = "", false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScheduleCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"id": 2, "username": "bob", "start_time": "17:00", "end_time": "23:00"},
  {"id": 1, "username": "alice", "start_time": "09:00", "end_time": "17:00"}
]`), 0o644))
	t.Setenv("STORAGE_DRIVER", "json")
	t.Setenv("STORAGE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "schedule")
	require.NoError(t, err)
	assert.Equal(t, "ID   TIME         MANAGER\n"+
		"1    09:00-17:00  @alice\n"+
		"2    17:00-23:00  @bob\n", out)
}

func TestScheduleCommand_CorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	t.Setenv("STORAGE_DRIVER", "json")
	t.Setenv("STORAGE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	_, err := runCLI(t, "schedule")
	assert.ErrorContains(t, err, "malformed")
}

func TestRunCommand_RequiresConfig(t *testing.T) {
	for _, k := range []string{"TELEGRAM_BOT_TOKEN", "ADMIN_IDS", "GROUP_CHAT_ID"} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	old := config.SecretPath
	config.SecretPath = filepath.Join(t.TempDir(), "missing")
	t.Cleanup(func() { config.SecretPath = old })

	_, err := runCLI(t, "run")
	assert.ErrorContains(t, err, "invalid config")
}

func TestHTTPClient_OutlastsLongPoll(t *testing.T) {
	c := newHTTPClient()
	require.NotZero(t, c.Timeout, "a stalled request must not block the notifier forever")
	assert.Greater(t, c.Timeout, pollTimeout*time.Second)
}
