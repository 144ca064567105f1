// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

/*
Package statcache provides a bounded, thread-safe cache of file metadata that
throttles how often the underlying filesystem is statted per file. It shields
a server process from repeated, expensive metadata syscalls by reusing a
recent result for a configurable cooldown window, while bounding memory with
least-recently-used eviction.
*/
package statcache
