// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickstream/internal/metrics"
)

// DefaultCleanupInterval is how often Serve sweeps expired entries.
const DefaultCleanupInterval = time.Minute

// Entry is a cached value with its expiry.
type Entry struct {
	Data      any
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache. Hits, misses and evictions are
// exported to Prometheus under the cache's name.
type Cache struct {
	name    string
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	stats   Stats
	now     func() time.Time
}

// Stats tracks cache performance.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries live for ttl. A non-positive ttl
// disables caching: Set becomes a no-op.
//
// Expired entries are dropped lazily on Get and in bulk by Serve, which runs
// the periodic sweep until its context is cancelled.
//
// Example:
//
//	options := cache.New("filter_options", 5*time.Minute)
//	if data, ok := options.Get(key); ok {
//	    return data.(*FilterOptions), nil
//	}
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		name:    name,
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
		stats: Stats{
			LastCleanup: time.Now(),
		},
	}
}

// Name returns the cache name used as the metrics label.
func (c *Cache) Name() string {
	return c.name
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value for key if present and not expired. An expired entry
// is removed and counted as a miss and an eviction.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEvictions(1)
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.TotalKeys = total
	c.stats.mu.Unlock()
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()

	if existed {
		c.recordEvictions(1)
	}
}

// Clear removes every entry, for example after the dataset is reloaded.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEvictions(evictions)
	c.stats.mu.Lock()
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// GetStats returns a snapshot of the cache statistics.
func (c *Cache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Serve sweeps expired entries every DefaultCleanupInterval until ctx is
// cancelled. It satisfies suture.Service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(DefaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// String names the service in supervisor logs.
func (c *Cache) String() string {
	return "cache-" + c.name
}

// cleanup removes all expired entries.
func (c *Cache) cleanup() {
	now := c.now()
	c.mu.Lock()
	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.recordEvictions(evictions)
	c.stats.mu.Lock()
	c.stats.TotalKeys = total
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
}

func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func (c *Cache) recordEvictions(n int64) {
	if n == 0 {
		return
	}
	c.stats.mu.Lock()
	c.stats.Evictions += n
	c.stats.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}

// GenerateKey builds a compact key from a method name and its parameters.
// Parameters are JSON encoded, so maps produce the same key regardless of
// insertion order.
func GenerateKey(method string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
