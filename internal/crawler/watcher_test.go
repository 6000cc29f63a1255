//go:build unit
// +build unit

package crawler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pkgTesting "github.com/juliabase/juliabase/internal/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	log := pkgTesting.SetupTestLogger(t)
	watcher, err := NewWatcher(log)
	require.NoError(t, err)

	root := t.TempDir()

	var mu sync.Mutex
	var seen []string

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Watch(ctx, root, `\.dat$`, func(path string) {
			mu.Lock()
			seen = append(seen, path)
			mu.Unlock()
		})
	}()

	// The watch needs a moment to attach before events count.
	time.Sleep(100 * time.Millisecond)

	dataFile := filepath.Join(root, "run-001.dat")
	require.NoError(t, os.WriteFile(dataFile, []byte("thickness 100"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignore"), 0600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Contains(t, seen, dataFile)
	for _, path := range seen {
		assert.NotContains(t, path, "notes.txt")
	}
	mu.Unlock()

	cancel()
	<-done
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	log := pkgTesting.SetupTestLogger(t)
	watcher, err := NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = watcher.Watch(ctx, t.TempDir(), "", func(string) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatcher_InvalidPattern(t *testing.T) {
	log := pkgTesting.SetupTestLogger(t)
	watcher, err := NewWatcher(log)
	require.NoError(t, err)

	err = watcher.Watch(context.Background(), t.TempDir(), "([", func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file pattern")
}
