// Package store implements the tiered persistence layer: a write-through
// in-memory cache over a swappable durable key/value adapter, gated by the
// user's permission tier.
//
// Key Implementations:
//   - [Gate] : Pure tier-to-permission decision, re-evaluated on every durable write
//   - [Adapter] : Synchronous key/value interface over durable storage
//   - [SQLiteAdapter] : Production adapter backed by the kv_entries table
//   - [MemoryAdapter] : Map-backed adapter for tests and ephemeral sessions
//   - [Cache] : Write-through cache; the session's source of truth
//   - [RetryQueue] : Opt-in background retry of failed durable writes
//
// The cache is authoritative for the session. Durability is best-effort: a
// refused or failed durable write degrades to memory-only behavior and is
// never surfaced as a user-facing failure.
package store
