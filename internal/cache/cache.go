// Package cache holds the process-wide product cache.
//
// The cache owns all mutable shared state: Ready entries and the
// bidirectional id{<->}display-name mapping. All mutation goes through its
// methods; the maps are never exposed. Entries live for the lifetime of the
// process; there is no eviction.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/metrics"
)

// Snapshot is one product's Ready state: the forecast entry and the weekly
// sentiment series, plus when it was computed.
type Snapshot struct {
	Forecast  *domain.ForecastEntry
	Sentiment domain.WeeklySeries
	Rating    domain.WeeklySeries
	ReadyAt   time.Time
}

// ProductCache maps normalized product IDs to Ready snapshots and resolves
// identifiers bidirectionally. Known products (seen in the dataset or
// seeded) may exist without a Ready entry; they resolve but reads return
// domain.ErrNotReady until initialized.
type ProductCache struct {
	mu       sync.RWMutex
	entries  map[string]*Snapshot
	idToName map[string]string
	nameToID map[string]string // lower-cased name -> id; last writer wins on collision
	known    map[string]struct{}
	clock    clockwork.Clock
}

// NewProductCache creates an empty cache.
func NewProductCache(clock clockwork.Clock) *ProductCache {
	return &ProductCache{
		entries:  make(map[string]*Snapshot),
		idToName: make(map[string]string),
		nameToID: make(map[string]string),
		known:    make(map[string]struct{}),
		clock:    clock,
	}
}

// Normalize maps a raw identifier to canonical form (trimmed, upper case).
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Resolve maps a raw identifier or display name to a canonical product ID.
// Precedence: exact id match, case-insensitive id match, exact name match,
// case-insensitive name match. Returns ok=false when nothing matches.
func (c *ProductCache) Resolve(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.known[raw]; ok {
		return raw, true
	}
	if id := Normalize(raw); c.has(id) {
		return id, true
	}
	// Name matching is case-insensitive by construction: the reverse map
	// keys on the lower-cased display name.
	if id, ok := c.nameToID[strings.ToLower(raw)]; ok {
		return id, true
	}
	return "", false
}

// has must be called with the lock held.
func (c *ProductCache) has(id string) bool {
	_, ok := c.known[id]
	return ok
}

// RegisterKnown records a product as existing in the backing dataset, with
// an optional display name. Known products resolve before they are Ready.
func (c *ProductCache) RegisterKnown(id, name string) {
	id = Normalize(id)
	if id == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.known[id] = struct{}{}
	if name != "" {
		c.setNameLocked(id, name)
	}
}

// setNameLocked maintains both directions of the name mapping. The reverse
// map keys on the lower-cased name; two products claiming the same name is
// last-writer-wins, a documented weakness rather than a guarantee.
func (c *ProductCache) setNameLocked(id, name string) {
	if prev, ok := c.idToName[id]; ok && !strings.EqualFold(prev, name) {
		delete(c.nameToID, strings.ToLower(prev))
	}
	c.idToName[id] = name
	c.nameToID[strings.ToLower(name)] = id
}

// Put stores a Ready snapshot for one product, replacing any prior entry
// whole. Last full recompute wins; there is no partial merge.
func (c *ProductCache) Put(forecast *domain.ForecastEntry, sentiment, rating domain.WeeklySeries) {
	id := Normalize(forecast.ProductID)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = &Snapshot{
		Forecast:  forecast,
		Sentiment: sentiment,
		Rating:    rating,
		ReadyAt:   c.clock.Now(),
	}
	c.known[id] = struct{}{}
	if forecast.DisplayName != "" {
		c.setNameLocked(id, forecast.DisplayName)
	}
	metrics.CachedProducts.Set(float64(len(c.entries)))
}

// ReplaceAll atomically swaps the cache contents for a staged set of
// snapshots. Readers never observe the cache mid-swap, and a refresh that
// failed for some products only replaces with what did compute.
func (c *ProductCache) ReplaceAll(snapshots map[string]*Snapshot) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make(map[string]*Snapshot, len(snapshots))
	for rawID, snap := range snapshots {
		id := Normalize(rawID)
		snap.ReadyAt = now
		entries[id] = snap
		c.known[id] = struct{}{}
		if snap.Forecast != nil && snap.Forecast.DisplayName != "" {
			c.setNameLocked(id, snap.Forecast.DisplayName)
		}
	}
	c.entries = entries
	metrics.CachedProducts.Set(float64(len(c.entries)))
}

// Ready reports whether the product has a Ready entry.
func (c *ProductCache) Ready(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[Normalize(id)]
	return ok
}

// Forecast returns the Ready forecast entry. Reads never initialize;
// initialization is always an explicit caller-triggered step.
func (c *ProductCache) Forecast(id string) (*domain.ForecastEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.entries[Normalize(id)]
	if !ok {
		return nil, domain.ErrNotReady
	}
	return snap.Forecast, nil
}

// Sentiment returns the Ready weekly sentiment series.
func (c *ProductCache) Sentiment(id string) (domain.WeeklySeries, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.entries[Normalize(id)]
	if !ok {
		return nil, domain.ErrNotReady
	}
	return snap.Sentiment, nil
}

// Rating returns the Ready weekly average rating series.
func (c *ProductCache) Rating(id string) (domain.WeeklySeries, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.entries[Normalize(id)]
	if !ok {
		return nil, domain.ErrNotReady
	}
	return snap.Rating, nil
}

// DisplayName returns the display name for a product ID, falling back to
// the ID itself.
func (c *ProductCache) DisplayName(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if name, ok := c.idToName[Normalize(id)]; ok {
		return name
	}
	return Normalize(id)
}

// Products lists every known product sorted by ID.
func (c *ProductCache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.known))
	for id := range c.known {
		out = append(out, domain.Product{ID: id, Name: c.idToName[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Size returns the number of Ready entries.
func (c *ProductCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
