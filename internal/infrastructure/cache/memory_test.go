package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/platepulse/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "report:joes pizza:pizza"
	if err := cache.Set(ctx, key, `{"overall_score":72.5}`, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != `{"overall_score":72.5}` {
		t.Errorf("Get() = %v, want stored string", got)
	}
}

func TestMemoryCache_Get_Miss(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "report:unknown:")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "short-lived", "value", time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := cache.Get(ctx, "short-lived"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want %v", err, domain.ErrCacheMiss)
	}

	exists, err := cache.Exists(ctx, "short-lived")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true after expiry, want false")
	}
}

func TestMemoryCache_JSONRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	// Structs come back as generic maps, the way a networked cache
	// backend would return them.
	value := struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}{Name: "Joe's Pizza", Score: 72.5}

	if err := cache.Set(ctx, "struct-key", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "struct-key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("Get() returned %T, want map[string]interface{}", got)
	}
	if m["name"] != "Joe's Pizza" {
		t.Errorf("name = %v, want Joe's Pizza", m["name"])
	}
	if m["score"] != 72.5 {
		t.Errorf("score = %v, want 72.5", m["score"])
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "doomed", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Delete(ctx, "doomed"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := cache.Get(ctx, "doomed"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "missing")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing key, want false")
	}

	if err := cache.Set(ctx, "present", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	exists, err = cache.Exists(ctx, "present")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false for stored key, want true")
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if size := cache.Size(); size != 0 {
		t.Fatalf("Size() = %d, want 0 for new cache", size)
	}

	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("report:query-%d:", i)
		if err := cache.Set(ctx, key, i, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if size := cache.Size(); size != 4 {
		t.Errorf("Size() = %d, want 4", size)
	}

	if err := cache.Delete(ctx, "report:query-0:"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if size := cache.Size(); size != 3 {
		t.Errorf("Size() = %d after delete, want 3", size)
	}

	cache.Clear()
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d after clear, want 0", size)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()
			key := fmt.Sprintf("report:concurrent-%d:", id)
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("Set() error = %v", err)
				return
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
