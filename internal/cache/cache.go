// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cache provides a small in-memory cache whose items expire after a
// fixed TTL.
package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value      V
	expiration time.Time
}

type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]*item[V]
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts the cleanup goroutine. Expired items are
// removed every ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		items: make(map[string]*item[V]),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanupLoop(ttl)
	return c
}

// Set stores a value that expires after the cache TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = &item[V]{value: value, expiration: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Get retrieves a value. Second return value indicates presence.
func (c *Cache[V]) Get(key string) (V, bool) {
	var empty V
	c.mu.RLock()
	cacheItem, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return empty, false
	}

	if !cacheItem.expiration.IsZero() && time.Now().After(cacheItem.expiration) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return empty, false
	}

	return cacheItem.value, true
}

// Clear removes all items.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	clear(c.items)
	c.mu.Unlock()
}

// Stop shuts down the cleanup goroutine. It is safe to call Stop more than
// once.
func (c *Cache[V]) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, it := range c.items {
				if !it.expiration.IsZero() && now.After(it.expiration) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()

		case <-c.stop:
			return
		}
	}
}
