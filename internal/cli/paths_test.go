package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join("/tmp/xdg", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestNewCacheSelection(t *testing.T) {
	ctx := context.Background()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := &CLI{Logger: newLogger(io.Discard, log.InfoLevel)}

	ch, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T, want NullCache", ch)
	}

	ch, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	defer ch.Close()
	fc, ok := ch.(*cache.FileCache)
	if !ok {
		t.Fatalf("default cache is %T, want *FileCache", ch)
	}
	if filepath.Base(fc.Dir()) != appName {
		t.Errorf("file cache dir = %s", fc.Dir())
	}
	if c.shared() {
		t.Error("no redis or mongo url set, cache should not be shared")
	}
}
