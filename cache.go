// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/tunabay/go-infounit"
	"golang.org/x/sync/semaphore"
)

// Cache represents one throttled stat cache. All methods are safe for
// concurrent use: the entire cache state is protected by a single critical
// section, held for the full duration of every operation including the real
// stat itself. This serializes all stats process-wide and guarantees at most
// one concurrent stat per cache, at the cost of throughput under slow
// storage. The cache imposes no timeout of its own on the stat primitive; a
// stuck stat stalls all cache operations until it returns.
type Cache struct {
	maxEntries int
	maxAge     time.Duration
	gcInterval time.Duration
	stat       StatFunc
	now        func() time.Time

	list      *recencyList
	nameBytes int64 // total filename bytes held, for Status

	numRequested uint64
	numHit       uint64
	numStats     uint64
	numFailed    uint64
	numEvicted   uint64
	numSwept     uint64

	// sem is the cache-wide critical section. A weighted-1 semaphore
	// instead of a plain mutex so that a caller blocked on entry can be
	// cancelled through its context.
	sem *semaphore.Weighted

	log      Logger
	debugLog bool
}

// perEntryFootprint approximates the resident size of one cached entry
// excluding its filename bytes: the arena slot plus the lookup map overhead.
const perEntryFootprint = 160

// New creates a cache with the default configuration holding at most
// maxEntries entries. A maxEntries of 0 means unlimited.
func New(maxEntries int) (*Cache, error) {
	return NewWithConfig(&Config{MaxEntries: maxEntries})
}

// NewWithConfig creates a cache using the given configuration parameters.
func NewWithConfig(conf *Config) (*Cache, error) {
	switch {
	case conf.MaxEntries < 0:
		return nil, fmt.Errorf("%w: negative MaxEntries", ErrInvalidConfig)
	case conf.MaxAge < 0:
		return nil, fmt.Errorf("%w: negative MaxAge", ErrInvalidConfig)
	case conf.GCInterval < 0:
		return nil, fmt.Errorf("%w: negative GCInterval", ErrInvalidConfig)
	}

	c := &Cache{
		maxEntries: conf.MaxEntries,
		maxAge:     conf.MaxAge,
		gcInterval: conf.GCInterval,
		stat:       conf.Stat,
		now:        time.Now,

		list: newRecencyList(),
		sem:  semaphore.NewWeighted(1),

		log:      conf.Logger,
		debugLog: conf.DebugLog,
	}
	if c.stat == nil {
		c.stat = osStat
	}
	if c.gcInterval == 0 {
		c.gcInterval = defaultGCInterval
	}

	return c, nil
}

// acquire enters the cache-wide critical section. It blocks while another
// caller holds it, and returns the ctx error if ctx is cancelled first. On a
// cancelled acquisition no cache state has been touched.
func (c *Cache) acquire(ctx context.Context) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("statcache: %w", err)
	}
	return nil
}

// release leaves the critical section.
func (c *Cache) release() { c.sem.Release(1) }

// Stat stats the named file through the cache. If at least throttle has
// passed since the last time the file was really statted, the file is
// re-statted, otherwise the cached result is returned without touching the
// filesystem. A throttle of zero forces a real stat on every call.
//
// A failed stat of the file is not an error: it is recorded as the entry's
// current state and returned as a Result with OK false and the OS error code
// in Errno. The returned error is non-nil only for infrastructure failure,
// currently just cancellation of ctx while blocked on the critical section,
// in which case the cache is unchanged and the call can simply be retried.
func (c *Cache) Stat(ctx context.Context, name string, throttle time.Duration) (Result, error) {
	if err := c.acquire(ctx); err != nil {
		return Result{}, err
	}
	defer c.release()

	c.numRequested++
	h := c.list.find(name)
	if h == noHandle {
		// Unknown file. If the cache is full, evict the least
		// recently used entry to make room.
		if c.maxEntries != 0 && c.list.len() == c.maxEntries {
			if old, ok := c.list.evictBack(); ok {
				c.numEvicted++
				c.nameBytes -= int64(len(old))
				c.logDebugf("Stat: %q evicted.", old)
			}
		}
		h = c.list.insertFront(name)
		c.nameBytes += int64(len(name))
		c.logDebugf("Stat: %q added.", name)
	} else {
		c.list.promote(h)
	}

	ent := c.list.entry(h)
	now := c.now()
	if ent.expired(now, throttle) {
		ent.refresh(c.stat, now)
		c.numStats++
		if !ent.ok {
			c.numFailed++
			c.logDebugf("Stat: %q failed: %v", name, ent.errno)
		}
	} else {
		c.numHit++
	}

	return ent.result(), nil
}

// SetMaxEntries changes the maximum number of entries. If the new limit is
// smaller than the current number of live entries, the least recently used
// entries are evicted until the count fits. A limit of 0 means unlimited and
// evicts nothing.
func (c *Cache) SetMaxEntries(ctx context.Context, maxEntries int) error {
	if maxEntries < 0 {
		return fmt.Errorf("%w: negative max entries", ErrInvalidConfig)
	}
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	if maxEntries != 0 {
		for c.list.len() > maxEntries {
			name, ok := c.list.evictBack()
			if !ok {
				return fmt.Errorf("%w: recency list underflow", ErrInternal)
			}
			c.numEvicted++
			c.nameBytes -= int64(len(name))
			c.logDebugf("SetMaxEntries: %q evicted.", name)
		}
	}
	c.maxEntries = maxEntries

	return nil
}

// Contains reports whether the named file is in the cache. It is a pure
// membership test: it does not promote the entry, does not stat, and does not
// mutate the cache in any way.
func (c *Cache) Contains(ctx context.Context, name string) (bool, error) {
	if err := c.acquire(ctx); err != nil {
		return false, err
	}
	defer c.release()

	return c.list.find(name) != noHandle, nil
}

// Status represents the cache status and statistics.
type Status struct {
	Entries      int                // number of entries currently cached.
	MaxEntries   int                // current entry limit, 0 means unlimited.
	MemoryUsed   infounit.ByteCount // approximate resident size of the cache.
	NumRequested uint64             // total number of Stat calls.
	NumHit       uint64             // total number of results served within the throttle window.
	NumStats     uint64             // total number of real stat calls.
	NumFailed    uint64             // total number of real stat calls that failed.
	NumEvicted   uint64             // total number of entries evicted by the LRU policy.
	NumSwept     uint64             // total number of entries removed by the age sweep.
}

// String returns the string representation of Status.
func (s Status) String() string {
	return fmt.Sprintf(
		"entries=%d/%d, mem=%.1S, req=%d, hit=%d, stat=%d, fail=%d, evict=%d, sweep=%d",
		s.Entries,
		s.MaxEntries,
		s.MemoryUsed,
		s.NumRequested,
		s.NumHit,
		s.NumStats,
		s.NumFailed,
		s.NumEvicted,
		s.NumSwept,
	)
}

// Status returns the current cache status and statistics.
func (c *Cache) Status(ctx context.Context) (*Status, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	return &Status{
		Entries:      c.list.len(),
		MaxEntries:   c.maxEntries,
		MemoryUsed:   infounit.ByteCount(int64(c.list.len())*perEntryFootprint + c.nameBytes),
		NumRequested: c.numRequested,
		NumHit:       c.numHit,
		NumStats:     c.numStats,
		NumFailed:    c.numFailed,
		NumEvicted:   c.numEvicted,
		NumSwept:     c.numSwept,
	}, nil
}

// logPrefix returns the prefix string for log messages, according to the
// current configuration.
func (c *Cache) logPrefix() string {
	if !c.debugLog {
		return ""
	}
	if _, file, line, ok := runtime.Caller(2); ok {
		return fmt.Sprintf("%s:%d:", filepath.Base(file), line)
	}
	return "(unknown):"
}

// logPrintf outputs a log message according to the current configuration.
func (c *Cache) logPrintf(format string, v ...any) {
	if c.log == nil {
		return
	}
	s := make([]string, 0, 2)
	if prefix := c.logPrefix(); prefix != "" {
		s = append(s, prefix)
	}
	s = append(s, fmt.Sprintf(format, v...))

	c.log.StatCacheLog(strings.Join(s, " "))
}

// logDebugf outputs a debug log message according to the current
// configuration.
func (c *Cache) logDebugf(format string, v ...any) {
	if c.log == nil || !c.debugLog {
		return
	}

	s := make([]string, 0, 2)
	if prefix := c.logPrefix(); prefix != "" {
		s = append(s, prefix)
	}
	s = append(s, fmt.Sprintf(format, v...))

	c.log.StatCacheLog(strings.Join(s, " "))
}
