// Package store provides a SQLite-backed catalog of fitted selection sets.
//
// Each column name maps to one set of fitted selections, stored as the
// canonical JSON document produced by compiler.EncodeSet together with its
// content hash (ir.SetHash) and a revision counter. Writing identical
// content again is a no-op; changed content replaces the set and bumps the
// revision.
//
// The catalog holds configuration only. Coalesced result buffers are never
// persisted.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single open connection: one writer at a time
//
// Listings are ordered by column name with binary collation so output is
// identical across runs.
package store
