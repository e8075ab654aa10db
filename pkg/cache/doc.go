// Package cache provides small in-memory caches with bounded memory.
//
// LRUCache is a generic least-recently-used cache. It backs the template
// store so that rendered emails do not hit the filesystem on every job:
//
//	c := cache.NewLRUCache[string, string](128)
//	c.Put("admin-message.hbs", source)
//	src, ok := c.Get("admin-message.hbs")
//
// ExpiringSet remembers keys for a fixed duration. It is a ring buffer of
// fixed capacity, so memory stays bounded and no timer runs per entry:
//
//	seen := cache.NewExpiringSet[string](10_000, 2*time.Minute)
//	if !seen.Add(key) {
//	    // already seen within the last two minutes
//	}
//
// Both types are safe for concurrent use.
package cache
