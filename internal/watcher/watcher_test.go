package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeImporter) ImportFile(ctx context.Context, path, format string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path+":"+format)
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func (f *fakeImporter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Watch(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Give fsnotify time to register the directory
	time.Sleep(100 * time.Millisecond)
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("networks: []\n"), 0644))

	imp := &fakeImporter{}
	w := New(path, "yaml", imp).WithDebounce(150 * time.Millisecond)
	startWatcher(t, w)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("networks: []\n"), 0644))
	}

	assert.Eventually(t, func() bool { return imp.count() == 1 }, 2*time.Second, 20*time.Millisecond)
	// No further reloads after the burst settles
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 1, imp.count())
	assert.Equal(t, 1, w.Reloads())
	assert.Equal(t, path+":yaml", imp.calls[0])
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networks.yaml")

	imp := &fakeImporter{}
	w := New(path, "yaml", imp).WithDebounce(20 * time.Millisecond)
	startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, imp.count())
}

func TestWatchFailedImportNotCounted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networks.yaml")

	imp := &fakeImporter{err: errors.New("bad file")}
	w := New(path, "yaml", imp).WithDebounce(20 * time.Millisecond)
	startWatcher(t, w)

	require.NoError(t, os.WriteFile(path, []byte("networks: [\n"), 0644))

	assert.Eventually(t, func() bool { return imp.count() == 1 }, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, 0, w.Reloads())
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "networks.yaml"), "yaml", &fakeImporter{})
	assert.Error(t, w.Watch(context.Background()))
}

func TestWithDebounceIgnoresNonPositive(t *testing.T) {
	w := New("networks.yaml", "yaml", &fakeImporter{}).WithDebounce(0)
	assert.Equal(t, DefaultDebounce, w.debounce)
}
