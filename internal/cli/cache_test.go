package cli

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/integrations/packagist"
)

func TestCacheDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on Linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(base, "phpgen"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCachePathCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on Linux")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "phpgen") {
		t.Errorf("cache path = %q, should end with phpgen", out)
	}
}

func TestCacheClearCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on Linux")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "http:packagist:laravel/sanctum", []byte(`{}`), 0)

	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(ctx, "http:packagist:laravel/sanctum"); hit {
		t.Error("entry should be gone after cache clear")
	}
}

func TestNewCache_Disabled(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", c)
	}
}

func TestCacheForgetCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on Linux")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, packagist.CacheKey("laravel/sanctum"), []byte(`{}`), 0)
	_ = fc.Set(ctx, packagist.CacheKey("laravel/passport"), []byte(`{}`), 0)

	if _, err := run(t, "cache", "forget", "Laravel/Sanctum"); err == nil {
		t.Error("uppercase names are not valid composer package names")
	}
	if _, err := run(t, "cache", "forget", "laravel/sanctum"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(ctx, packagist.CacheKey("laravel/sanctum")); hit {
		t.Error("forgotten entry should be gone")
	}
	if _, hit, _ := fc.Get(ctx, packagist.CacheKey("laravel/passport")); !hit {
		t.Error("other entries should be kept")
	}
}
