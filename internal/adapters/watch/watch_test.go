package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"resto_dashboard/internal/adapters/watch"
)

type countingReloader struct{ n int32 }

func (c *countingReloader) Reload(ctx context.Context) (bool, error) {
	atomic.AddInt32(&c.n, 1)
	return true, nil
}

func TestFileWatcher_ReloadsOnceAfterBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.csv")
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rl := &countingReloader{}
	fw, err := watch.New(path, rl, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { fw.Run(ctx); close(done) }()
	defer func() { cancel(); <-done }()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if n := atomic.LoadInt32(&rl.n); n != 0 {
		t.Fatalf("unrelated write triggered %d reloads", n)
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&rl.n) == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(300 * time.Millisecond)
	if n := atomic.LoadInt32(&rl.n); n != 1 {
		t.Fatalf("expected a single debounced reload, got %d", n)
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := watch.New(filepath.Join(t.TempDir(), "nope", "reviews.csv"), &countingReloader{}, 0); err == nil {
		t.Fatalf("expected error")
	}
}
