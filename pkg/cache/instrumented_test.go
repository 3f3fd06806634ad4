package cache

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/phpgen/pkg/observability"
)

type countingHooks struct {
	hits, misses, sets, bytes int
	keyType                   string
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits++
	h.keyType = keyType
}

func (h *countingHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func (h *countingHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.sets++
	h.bytes += size
}

func TestInstrumented(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	c := NewInstrumented(NewMemoryCache(), "session")

	_, _, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("abcd"), time.Minute)
	_, _, _ = c.Get(ctx, "k")

	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("hits=%d misses=%d sets=%d", hooks.hits, hooks.misses, hooks.sets)
	}
	if hooks.bytes != 4 {
		t.Errorf("set size = %d, want 4", hooks.bytes)
	}
	if hooks.keyType != "session" {
		t.Errorf("keyType = %q", hooks.keyType)
	}
}
