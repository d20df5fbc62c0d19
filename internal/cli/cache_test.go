package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/multiplex/pkg/cache"
)

func TestNewCacheUsesCacheHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	c := newTestCLI()
	fc, ok := c.newCache(false).(*cache.FileCache)
	if !ok {
		t.Fatal("newCache(false) should return a file cache")
	}
	if want := filepath.Join(home, appName); fc.Dir() != want {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), want)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	if _, ok := newTestCLI().newCache(true).(*cache.NullCache); !ok {
		t.Error("newCache(true) should return a null cache")
	}
}
