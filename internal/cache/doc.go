// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package cache provides a thread-safe, generic LRU cache with TTL expiry.

The recommendation engine uses it to memoize top-k lists per model version,
user and list length. Entries are invalidated wholesale when a new model is
published.

# Usage Example

	c := cache.NewLRUCache[[]int](10000, 5*time.Minute)
	c.Add("1:42:5", []int{7, 3, 9})
	if ids, ok := c.Get("1:42:5"); ok {
	    // use ids
	}

# Thread Safety

All methods are safe for concurrent use. Expired entries are removed lazily
on Get and in bulk by CleanupExpired, which the recommendation engine runs
on the model service's cache cleanup schedule.
*/
package cache
