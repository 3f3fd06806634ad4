package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopCatalogHooks{}.OnSearch(ctx, "laravel", "auth", 3)
	NoopGenerateHooks{}.OnGenerate(ctx, "symfony", 2, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "session")
	c.OnCacheMiss(ctx, "session")
	c.OnCacheSet(ctx, "session", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "repo.packagist.org", "/p2/laravel/sanctum.json")
	h.OnResponse(ctx, "GET", "repo.packagist.org", "/p2/laravel/sanctum.json", 200, time.Second)
	h.OnError(ctx, "GET", "repo.packagist.org", "/p2/laravel/sanctum.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Catalog().(NoopCatalogHooks); !ok {
		t.Error("Catalog() should return NoopCatalogHooks by default")
	}
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCatalog := &testCatalogHooks{}
	SetCatalogHooks(customCatalog)
	if Catalog() != customCatalog {
		t.Error("SetCatalogHooks should set custom hooks")
	}

	customGenerate := &testGenerateHooks{}
	SetGenerateHooks(customGenerate)
	if Generate() != customGenerate {
		t.Error("SetGenerateHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Catalog().(NoopCatalogHooks); !ok {
		t.Error("Reset() should restore NoopCatalogHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testCatalogHooks{}
	SetCatalogHooks(custom)
	SetCatalogHooks(nil)

	if Catalog() != custom {
		t.Error("SetCatalogHooks(nil) should be ignored")
	}
}

// Test implementations
type testCatalogHooks struct{ NoopCatalogHooks }
type testGenerateHooks struct{ NoopGenerateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
