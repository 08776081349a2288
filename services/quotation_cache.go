package services

import (
	"sync"
	"time"
)

// CacheTTL is how long a stored quotation list counts as fresh.
const CacheTTL = 30 * time.Second

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// QuotationCache holds the last fetched quotation list and when it was
// stored. The zero value is not usable; create one with NewQuotationCache.
type QuotationCache struct {
	mu        sync.RWMutex
	clock     Clock
	data      []Quotation
	fetchedAt time.Time
}

// NewQuotationCache returns an empty cache. A nil clock means SystemClock.
func NewQuotationCache(clock Clock) *QuotationCache {
	if clock == nil {
		clock = SystemClock
	}
	return &QuotationCache{clock: clock}
}

// Get returns a copy of the cached list and whether anything is cached.
// Stale data is still returned; use IsFresh to decide whether to refetch.
func (c *QuotationCache) Get() ([]Quotation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil, false
	}
	return append([]Quotation(nil), c.data...), true
}

// Set replaces the cached list and stamps it with the current time.
// A nil list is stored as empty so that it still counts as cached.
func (c *QuotationCache) Set(data []Quotation) {
	stored := make([]Quotation, len(data))
	copy(stored, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = stored
	c.fetchedAt = c.clock.Now()
}

// Invalidate clears the cache so the next read goes to the network.
func (c *QuotationCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.fetchedAt = time.Time{}
}

// IsFresh reports whether data is cached and younger than CacheTTL.
func (c *QuotationCache) IsFresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data != nil && c.clock.Now().Sub(c.fetchedAt) < CacheTTL
}

// FetchedAt returns when the cached list was stored, zero if empty.
func (c *QuotationCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
