// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

import (
	"time"
)

// Config represents the parameters to configure Cache creation.
type Config struct {
	// The upper limit on the number of files that can be cached. Zero
	// value means unlimited. When the cache is full and an unknown file
	// is statted, the least recently used entry is evicted first. The
	// limit can be changed later with Cache.SetMaxEntries.
	MaxEntries int

	// The metadata query primitive used to stat files. If nil, a default
	// implementation backed by os.Stat is used. A cache queries the
	// filesystem through this function only; it is primarily intended
	// for tests and for hosts that stat through a virtual filesystem.
	Stat StatFunc

	// The maximum age of cache entries, measured since the last real
	// stat of the file, not since insertion. Entries older than this are
	// removed by the sweep process run by Serve. Zero value means
	// entries are never swept by age.
	MaxAge time.Duration

	// The interval between sweep runs performed by Serve to find and
	// remove entries older than MaxAge.
	GCInterval time.Duration

	// If not nil, Cache outputs log messages to this Logger object.
	Logger Logger

	// If true, Cache outputs debug log messages. Only effective if
	// Logger is not nil.
	DebugLog bool
}

// defaultGCInterval defines the default value for Config.GCInterval.
const defaultGCInterval = time.Minute

// Logger is the interface implemented to receive log messages from the running
// Cache instance.
type Logger interface {
	StatCacheLog(string)
}
