// Package cache implements the resource-cache coordinator. Each cached
// collection or record is tracked under a Key with a status, and concurrent
// reads of the same key share a single in-flight fetch. Entries never expire
// on a timer: a success entry stays fresh until it is explicitly invalidated.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Key identifies either a whole collection (ID empty) or a single record.
type Key struct {
	Resource string
	ID       string
}

// CollectionKey returns the key covering a whole collection.
func CollectionKey(resource string) Key {
	return Key{Resource: resource}
}

// RecordKey returns the key covering a single record.
func RecordKey(resource, id string) Key {
	return Key{Resource: resource, ID: id}
}

func (k Key) String() string {
	if k.ID == "" {
		return k.Resource
	}
	return k.Resource + "/" + k.ID
}

// Status describes the lifecycle of a cache entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry records the status and result of the latest fetch for one key.
type Entry struct {
	Status    Status
	Data      any
	Err       error
	FetchedAt time.Time
}

// FetchFunc produces the data for a key. Fetches run to completion once
// issued; there is no cancellation path from the coordinator.
type FetchFunc func(ctx context.Context) (any, error)

// Coordinator owns the cache entry table.
type Coordinator struct {
	mu      sync.Mutex
	entries map[Key]Entry
	gen     map[Key]uint64 // bumped on invalidation so new reads never join a stale flight
	flight  map[Key]uint64 // generation of the currently loading fetch, if any
	group   singleflight.Group
	clock   func() time.Time
	logger  *zap.Logger
}

// New creates an empty coordinator.
func New(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		entries: make(map[Key]Entry),
		gen:     make(map[Key]uint64),
		flight:  make(map[Key]uint64),
		clock:   time.Now,
		logger:  logger,
	}
}

// Read returns the entry for key, issuing a fetch when the entry is idle or
// in error state. Concurrent reads while a fetch is loading join that fetch
// instead of firing a new one. The settled entry is returned alongside its
// error, so callers never lose a failure.
func (c *Coordinator) Read(ctx context.Context, key Key, fetch FetchFunc) (Entry, error) {
	c.mu.Lock()
	entry := c.entries[key]

	switch entry.Status {
	case StatusSuccess:
		c.mu.Unlock()
		return entry, nil
	case StatusLoading:
		gen := c.flight[key]
		c.mu.Unlock()
		return c.await(ctx, key, gen, fetch)
	default: // idle or error: issue a new fetch
		c.gen[key]++
		gen := c.gen[key]
		c.flight[key] = gen
		c.entries[key] = Entry{Status: StatusLoading}
		c.mu.Unlock()
		c.logger.Debug("Cache fetch issued", zap.Stringer("key", key))
		return c.await(ctx, key, gen, fetch)
	}
}

// await shares the fetch for (key, gen) across all concurrent readers and
// stores the settled outcome, unless the key was invalidated while the fetch
// was in flight. A late result for an invalidated key is handed back to its
// readers but silently dropped from the table.
func (c *Coordinator) await(ctx context.Context, key Key, gen uint64, fetch FetchFunc) (Entry, error) {
	// The fetch runs to completion once issued: a reader that goes away must
	// not abort the flight other readers are sharing.
	data, err, _ := c.group.Do(flightKey(key, gen), func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})

	entry := Entry{FetchedAt: c.clock()}
	if err != nil {
		entry.Status = StatusError
		entry.Err = err
	} else {
		entry.Status = StatusSuccess
		entry.Data = data
	}

	c.mu.Lock()
	if c.flight[key] == gen {
		c.entries[key] = entry
		delete(c.flight, key)
	}
	c.mu.Unlock()

	return entry, err
}

// Invalidate resets the entry for key to idle, discarding any cached data or
// error. It triggers nothing itself; the next Read decides whether to fetch.
func (c *Coordinator) Invalidate(key Key) {
	c.mu.Lock()
	c.entries[key] = Entry{Status: StatusIdle}
	c.gen[key]++
	delete(c.flight, key)
	c.mu.Unlock()
	c.logger.Debug("Cache key invalidated", zap.Stringer("key", key))
}

// InvalidateRecord invalidates both the record-level key and its
// collection-level key. List views derive from the collection key and detail
// views from the record key, so a mutation must reset both.
func (c *Coordinator) InvalidateRecord(resource, id string) {
	c.Invalidate(RecordKey(resource, id))
	c.Invalidate(CollectionKey(resource))
}

// Peek returns the current entry for key without triggering a fetch.
func (c *Coordinator) Peek(key Key) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Entry{Status: StatusIdle}
	}
	return entry
}

func flightKey(key Key, gen uint64) string {
	return fmt.Sprintf("%s#%d", key, gen)
}
