package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCodeFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "auto.cpp")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("chassis.setPose(0, 0, 0);\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		codes []string
	)
	done := make(chan error, 1)
	go func() {
		done <- watchCodeFile(ctx, target, slog.New(slog.NewTextHandler(io.Discard, nil)), func(code string) {
			mu.Lock()
			codes = append(codes, code)
			mu.Unlock()
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("chassis.setPose(1, 2, 0);\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(codes) > 0 && codes[len(codes)-1] == "chassis.setPose(1, 2, 0);\n"
	}, 5*time.Second, 50*time.Millisecond, "write not reported")

	mu.Lock()
	for _, code := range codes {
		assert.NotEqual(t, "ignored", code)
	}
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchCodeFileMissingDirectory(t *testing.T) {
	err := watchCodeFile(context.Background(), filepath.Join(t.TempDir(), "gone", "auto.cpp"),
		slog.New(slog.NewTextHandler(io.Discard, nil)), func(string) {})
	assert.Error(t, err)
}
