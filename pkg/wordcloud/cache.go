package wordcloud

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CacheKey derives the deterministic digest of a request. Every semantically
// relevant field participates; set-valued fields are sorted first so
// permutations of the same request hash identically.
func CacheKey(req *WordCloudRequest) string {
	var sb strings.Builder

	ids := make([]string, len(req.DatasetIDs))
	for i, id := range req.DatasetIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	sb.WriteString("ids=")
	sb.WriteString(strings.Join(ids, ","))

	fmt.Fprintf(&sb, "|mode=%s|minlen=%d|max=%d", req.Mode, req.MinWordLength, req.MaxWords)

	writeSorted := func(label string, values []string) {
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		sb.WriteByte('|')
		sb.WriteString(label)
		sb.WriteByte('=')
		sb.WriteString(strings.Join(sorted, ","))
	}
	cols := make([]string, len(req.SelectedColumns))
	for i, c := range req.SelectedColumns {
		cols[i] = fmt.Sprintf("%d", c)
	}
	writeSorted("cols", cols)
	writeSorted("exclude", lowerAll(req.ExcludeWords))
	writeSorted("include", lowerAll(req.IncludeWords))
	writeSorted("orgs", req.OrgNames)
	writeSorted("users", req.UserIDs)
	writeSorted("tenants", req.TenantNames)

	tags := make([]string, len(req.Sentiments))
	for i, t := range req.Sentiments {
		tags[i] = string(t)
	}
	writeSorted("sentiments", tags)

	if dr := req.DateRange; dr != nil {
		writeTime := func(label string, ts *time.Time) {
			sb.WriteByte('|')
			sb.WriteString(label)
			sb.WriteByte('=')
			if ts != nil {
				sb.WriteString(ts.UTC().Format(time.RFC3339))
			}
		}
		writeTime("start", dr.Start)
		writeTime("end", dr.End)
		writeTime("exact", dr.Exact)
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// ResultCache memoizes assembled results. Implementations must be safe for
// concurrent use; cache failures are treated as misses by the engine, never
// surfaced to callers.
type ResultCache interface {
	Get(ctx context.Context, key string) (*WordCloudResult, bool)
	Put(ctx context.Context, key string, result *WordCloudResult)
	// Invalidate removes entries referencing datasetID, or everything when
	// datasetID is nil
	Invalidate(ctx context.Context, datasetID *uuid.UUID)
	// Sweep drops expired entries eagerly; expiry is otherwise lazy on Get
	Sweep(ctx context.Context)
}

// CacheConfig controls the in-memory result cache
type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	MaxItems int           `yaml:"max_items"`
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		TTL:      1 * time.Hour,
		MaxItems: 1000,
	}
}

// cacheEntry pairs a stored payload with its insertion time. Entries are
// immutable once stored.
type cacheEntry struct {
	payload    *WordCloudResult
	insertedAt time.Time
}

// CacheStats reports cache effectiveness counters
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Items     int   `json:"items"`
}

// MemoryResultCache is the default ResultCache: a single mutex around a map,
// lazy TTL expiry on read, and insertion-order (FIFO) eviction at capacity.
// Eviction deliberately ignores access recency: InsertedAt is set on Put and
// never refreshed, matching the documented source semantics.
type MemoryResultCache struct {
	config  *CacheConfig
	mu      sync.Mutex
	entries map[string]*cacheEntry
	stats   CacheStats
	now     func() time.Time
}

// NewMemoryResultCache creates an in-memory result cache
func NewMemoryResultCache(config *CacheConfig) *MemoryResultCache {
	if config == nil {
		config = DefaultCacheConfig()
	}
	return &MemoryResultCache{
		config:  config,
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the cached result for key, or a miss when absent or
// expired. Expired entries are evicted on read.
func (c *MemoryResultCache) Get(_ context.Context, key string) (*WordCloudResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) > c.config.TTL {
		delete(c.entries, key)
		c.stats.Misses++
		c.stats.Evictions++
		return nil, false
	}
	c.stats.Hits++
	return entry.payload.Clone(), true
}

// Put stores a copy of result under key, evicting the oldest-inserted entry
// first when at capacity.
func (c *MemoryResultCache) Put(_ context.Context, key string, result *WordCloudResult) {
	if result == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.config.MaxItems {
		c.evictOldestLocked()
	}
	c.entries[key] = &cacheEntry{
		payload:    result.Clone(),
		insertedAt: c.now(),
	}
}

// evictOldestLocked removes the entry with the smallest insertion time.
// Caller must hold the mutex.
func (c *MemoryResultCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.insertedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.insertedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.stats.Evictions++
	}
}

// Invalidate removes every entry whose payload references datasetID, or all
// entries when datasetID is nil. Atomic with respect to concurrent Get/Put.
func (c *MemoryResultCache) Invalidate(_ context.Context, datasetID *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if datasetID == nil {
		c.entries = make(map[string]*cacheEntry)
		return
	}
	for key, entry := range c.entries {
		for _, id := range entry.payload.DatasetIDs {
			if id == *datasetID {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Sweep eagerly drops expired entries
func (c *MemoryResultCache) Sweep(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.config.TTL)
	for key, entry := range c.entries {
		if entry.insertedAt.Before(cutoff) {
			delete(c.entries, key)
			c.stats.Evictions++
		}
	}
}

// Stats returns a snapshot of the cache counters
func (c *MemoryResultCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stats
	stats.Items = len(c.entries)
	return stats
}
