package main

import (
	"bytes"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-market/internal/engine"
)

func TestRun(t *testing.T) {
	t.Run("Summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, run([]string{"--days", "3", "--log-level", "error"}, &buf))
		assert.Contains(t, buf.String(), "Day 3")
		assert.Contains(t, buf.String(), "SHOP")
		assert.NotContains(t, buf.String(), "Grid:")
	})

	t.Run("Grid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, run([]string{"--days", "1", "--grid", "--log-level", "error"}, &buf))
		assert.Contains(t, buf.String(), "Grid:")
		assert.Contains(t, buf.String(), "Agents per cell:")
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "market.yaml")
		require.NoError(t, os.WriteFile(path, []byte("days: 2\nshops: 2\nclients: 4\nlog_level: error\n"), 0o644))

		var buf bytes.Buffer
		require.NoError(t, run([]string{"--config", path}, &buf))
		assert.Contains(t, buf.String(), "Day 2")
	})

	t.Run("Archive", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")
		var buf bytes.Buffer
		require.NoError(t, run([]string{"--days", "2", "--db", dbPath, "--log-level", "error"}, &buf))
		_, err := os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		var buf bytes.Buffer
		err := run([]string{"--width", "2", "--height", "2", "--clients", "10", "--log-level", "error"}, &buf)
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("Help", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, run([]string{"--help"}, &buf), pflag.ErrHelp)
	})
}

func TestWatchSignals(t *testing.T) {
	t.Run("Signal stops the engine", func(t *testing.T) {
		eng := engine.NewEngine(0)
		sigCh := make(chan os.Signal, 1)
		sigCh <- syscall.SIGINT

		watchSignals(sigCh, make(chan struct{}), eng)

		// A stopped engine does not run a single day.
		days := 0
		eng.OnDay = func(int) error {
			days++
			return nil
		}
		require.NoError(t, eng.Run())
		assert.Equal(t, 0, days)
	})

	t.Run("Returns when done is closed", func(t *testing.T) {
		done := make(chan struct{})
		returned := make(chan struct{})
		go func() {
			watchSignals(make(chan os.Signal), done, engine.NewEngine(1))
			close(returned)
		}()

		close(done)
		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatal("watcher still running after done was closed")
		}
	})
}
