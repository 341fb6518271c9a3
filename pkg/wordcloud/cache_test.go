package wordcloud

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testRequest(ids ...uuid.UUID) *WordCloudRequest {
	req := &WordCloudRequest{DatasetIDs: ids, Mode: ModeAll}
	if err := req.Normalize(); err != nil {
		panic(err)
	}
	return req
}

func testResult(ids ...uuid.UUID) *WordCloudResult {
	return &WordCloudResult{
		DatasetIDs: ids,
		Mode:       ModeAll,
		Words: []WordRecord{
			{Word: "contract", Frequency: 3, NormalizedFrequency: 1.0, Sentiment: TagNeutral, Mode: ModeAll},
		},
		WordCount: 1,
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	id := uuid.New()
	r1 := testRequest(id)
	r2 := testRequest(id)

	if CacheKey(r1) != CacheKey(r2) {
		t.Error("identical requests should produce identical keys")
	}
}

func TestCacheKey_SetOrderIndependent(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()

	r1 := testRequest(id1, id2)
	r1.ExcludeWords = []string{"alpha", "beta"}
	r1.OrgNames = []string{"Acme", "Globex"}

	r2 := testRequest(id2, id1)
	r2.ExcludeWords = []string{"beta", "alpha"}
	r2.OrgNames = []string{"Globex", "Acme"}

	if CacheKey(r1) != CacheKey(r2) {
		t.Error("permuted set-valued fields should not change the key")
	}
}

func TestCacheKey_DistinguishesContent(t *testing.T) {
	id := uuid.New()
	r1 := testRequest(id)
	r2 := testRequest(id)
	r2.Mode = ModeEmotions

	if CacheKey(r1) == CacheKey(r2) {
		t.Error("different modes should produce different keys")
	}

	r3 := testRequest(id)
	r3.ExcludeWords = []string{"noise"}
	if CacheKey(r1) == CacheKey(r3) {
		t.Error("different exclude words should produce different keys")
	}
}

func TestCacheKey_EmptyDateRangeEqualsNil(t *testing.T) {
	id := uuid.New()
	r1 := testRequest(id)

	r2 := &WordCloudRequest{DatasetIDs: []uuid.UUID{id}, Mode: ModeAll, DateRange: &DateRange{}}
	if err := r2.Normalize(); err != nil {
		t.Fatal(err)
	}

	if r2.DateRange != nil {
		t.Error("an all-nil date range should normalize away")
	}
	if CacheKey(r1) != CacheKey(r2) {
		t.Error("an empty date range means no constraint and must share the key")
	}
}

func TestMemoryCache_PutGet(t *testing.T) {
	cache := NewMemoryResultCache(nil)
	ctx := context.Background()
	id := uuid.New()

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for absent key")
	}

	cache.Put(ctx, "k1", testResult(id))
	got, ok := cache.Get(ctx, "k1")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(got.Words) != 1 || got.Words[0].Word != "contract" {
		t.Errorf("unexpected payload: %+v", got.Words)
	}
}

func TestMemoryCache_CallersGetCopies(t *testing.T) {
	cache := NewMemoryResultCache(nil)
	ctx := context.Background()

	original := testResult(uuid.New())
	cache.Put(ctx, "k1", original)

	// mutating what we put in must not affect the cache
	original.Words[0].Word = "mutated"

	got, _ := cache.Get(ctx, "k1")
	if got.Words[0].Word != "contract" {
		t.Error("cache should store a copy, not an alias")
	}

	// mutating what we got out must not affect later reads
	got.Words[0].Word = "mutated"
	again, _ := cache.Get(ctx, "k1")
	if again.Words[0].Word != "contract" {
		t.Error("cache should return a copy, not an alias")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryResultCache(&CacheConfig{TTL: time.Hour, MaxItems: 10})
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Put(ctx, "k1", testResult(uuid.New()))

	now = now.Add(30 * time.Minute)
	if _, ok := cache.Get(ctx, "k1"); !ok {
		t.Fatal("entry should still be live before TTL")
	}

	now = now.Add(31 * time.Minute)
	if _, ok := cache.Get(ctx, "k1"); ok {
		t.Fatal("entry should expire after TTL")
	}

	stats := cache.Stats()
	if stats.Items != 0 {
		t.Errorf("expired entry should be evicted on read, items=%d", stats.Items)
	}
}

func TestMemoryCache_InsertionOrderEviction(t *testing.T) {
	cache := NewMemoryResultCache(&CacheConfig{TTL: time.Hour, MaxItems: 2})
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Put(ctx, "oldest", testResult(uuid.New()))
	now = now.Add(time.Minute)
	cache.Put(ctx, "middle", testResult(uuid.New()))
	now = now.Add(time.Minute)

	// reading the oldest entry does not protect it: eviction follows
	// insertion order, not access recency
	if _, ok := cache.Get(ctx, "oldest"); !ok {
		t.Fatal("expected hit")
	}

	cache.Put(ctx, "newest", testResult(uuid.New()))

	if _, ok := cache.Get(ctx, "oldest"); ok {
		t.Error("oldest-inserted entry should be evicted at capacity")
	}
	if _, ok := cache.Get(ctx, "middle"); !ok {
		t.Error("middle entry should survive")
	}
	if _, ok := cache.Get(ctx, "newest"); !ok {
		t.Error("newest entry should survive")
	}
}

func TestMemoryCache_InvalidateDataset(t *testing.T) {
	cache := NewMemoryResultCache(nil)
	ctx := context.Background()
	id1, id2 := uuid.New(), uuid.New()

	cache.Put(ctx, "k1", testResult(id1))
	cache.Put(ctx, "k2", testResult(id2))
	cache.Put(ctx, "k3", testResult(id1, id2))

	cache.Invalidate(ctx, &id1)

	if _, ok := cache.Get(ctx, "k1"); ok {
		t.Error("entry referencing invalidated dataset should be gone")
	}
	if _, ok := cache.Get(ctx, "k3"); ok {
		t.Error("multi-dataset entry referencing invalidated dataset should be gone")
	}
	if _, ok := cache.Get(ctx, "k2"); !ok {
		t.Error("unrelated entry should survive")
	}
}

func TestMemoryCache_InvalidateAll(t *testing.T) {
	cache := NewMemoryResultCache(nil)
	ctx := context.Background()

	cache.Put(ctx, "k1", testResult(uuid.New()))
	cache.Put(ctx, "k2", testResult(uuid.New()))
	cache.Invalidate(ctx, nil)

	if stats := cache.Stats(); stats.Items != 0 {
		t.Errorf("expected empty cache after global invalidation, items=%d", stats.Items)
	}
}

func TestMemoryCache_Sweep(t *testing.T) {
	cache := NewMemoryResultCache(&CacheConfig{TTL: time.Hour, MaxItems: 10})
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Put(ctx, "stale", testResult(uuid.New()))
	now = now.Add(2 * time.Hour)
	cache.Put(ctx, "fresh", testResult(uuid.New()))

	cache.Sweep(ctx)

	if stats := cache.Stats(); stats.Items != 1 {
		t.Errorf("sweep should drop only expired entries, items=%d", stats.Items)
	}
	if _, ok := cache.Get(ctx, "fresh"); !ok {
		t.Error("fresh entry should survive sweep")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryResultCache(&CacheConfig{TTL: time.Hour, MaxItems: 50})
	ctx := context.Background()
	id := uuid.New()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				key := CacheKey(testRequest(id))
				cache.Put(ctx, key, testResult(id))
				cache.Get(ctx, key)
				if j%50 == 0 {
					cache.Invalidate(ctx, &id)
				}
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
