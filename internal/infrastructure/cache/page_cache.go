package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"love-unlock/internal/domain/page"
)

type pageEntry struct {
	page    page.Page
	expires time.Time
}

// PageCache is a size bounded LRU of pages whose entries expire after ttl.
type PageCache struct {
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func NewPageCache(size int, ttl time.Duration) (*PageCache, error) {
	if size <= 0 {
		size = 512
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &PageCache{lru: c, ttl: ttl, now: time.Now}, nil
}

// Get returns a copy so callers cannot mutate the cached value.
func (c *PageCache) Get(code string) (*page.Page, bool) {
	raw, ok := c.lru.Get(code)
	if !ok {
		return nil, false
	}
	entry := raw.(pageEntry)
	if c.now().After(entry.expires) {
		c.lru.Remove(code)
		return nil, false
	}
	p := entry.page
	return &p, true
}

func (c *PageCache) Add(code string, p *page.Page) {
	if p == nil || c.ttl <= 0 {
		return
	}
	c.lru.Add(code, pageEntry{page: *p, expires: c.now().Add(c.ttl)})
}

func (c *PageCache) Remove(code string) {
	c.lru.Remove(code)
}

func (c *PageCache) Purge() {
	c.lru.Purge()
}

func (c *PageCache) Len() int {
	return c.lru.Len()
}
