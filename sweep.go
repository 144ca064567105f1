// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

import (
	"context"
	"time"

	"github.com/petar/GoLLRB/llrb"
)

// Serve serves the Cache instance. It periodically finds and removes entries
// whose last real stat is older than the configured MaxAge, and blocks until
// ctx is cancelled. If MaxAge is zero there is nothing to sweep and Serve
// just waits for cancellation.
//
// Running Serve is optional. Without it the cache is still fully functional;
// stale entries are then only reclaimed by LRU eviction.
func (c *Cache) Serve(ctx context.Context) error {
	if c.maxAge == 0 {
		<-ctx.Done()
		return nil
	}

	for {
		timer := time.NewTimer(c.gcInterval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return nil
		case <-timer.C:
		}

		c.sweep(ctx)
	}
}

// sweepCandidate represents one cached entry considered for removal by the
// sweep. Among the candidates, those with the oldest lastChecked are removed
// first.
type sweepCandidate struct {
	h           handle
	name        string
	lastChecked time.Time
}

// Less compares the lastChecked values of the two candidates and reports the
// result.
func (s *sweepCandidate) Less(xif llrb.Item) bool {
	x := xif.(*sweepCandidate) //nolint:forcetypeassert
	return s.lastChecked.Before(x.lastChecked)
}

// sweep removes all entries whose last real stat predates the MaxAge cutoff.
// Entries that were never statted carry no age and are left alone. The
// candidates are visited oldest first, so the walk stops at the first entry
// young enough to keep.
func (c *Cache) sweep(ctx context.Context) {
	if err := c.acquire(ctx); err != nil {
		return // shutting down
	}
	defer c.release()

	c.logDebugf("Started sweep...")

	cutoff := c.now().Add(-c.maxAge)
	tree := llrb.New()
	for h := c.list.head; h != noHandle; h = c.list.slots[h].next {
		ent := &c.list.slots[h].ent
		if ent.lastChecked.IsZero() {
			continue
		}
		tree.InsertNoReplace(&sweepCandidate{
			h:           h,
			name:        ent.name,
			lastChecked: ent.lastChecked,
		})
	}

	var swept int
	iterator := func(iif llrb.Item) bool {
		cand := iif.(*sweepCandidate) //nolint:forcetypeassert
		if !cand.lastChecked.Before(cutoff) {
			return false
		}
		c.list.remove(cand.h)
		c.nameBytes -= int64(len(cand.name))
		c.numSwept++
		swept++
		c.logDebugf("sweep: %q removed.", cand.name)
		return true
	}
	tree.AscendGreaterOrEqual(&sweepCandidate{}, iterator)

	if swept != 0 {
		c.logPrintf("Swept %d aged entries.", swept)
	}
	c.logDebugf("Sweep finished.")
}
