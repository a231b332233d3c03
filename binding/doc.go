// Package binding provides lazy, cached, auto-invalidating read handles
// onto extension points.
//
// A Binding sits between a consumer and the extension registry: it fetches
// the aggregated extension list on first Get, caches it behind a read-only
// View, and subscribes to the registry so the cache is invalidated (full
// replace) or patched in place (positional splice) as contributions change.
// The registry never keeps a dropped Binding alive.
//
// Bindings inherit the registry's concurrency model: single logical
// writer, re-entrant on the same goroutine, no internal locking.
package binding
