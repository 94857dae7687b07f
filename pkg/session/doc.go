// Package session persists the authenticated session (bearer token and user
// record) across process restarts.
//
// The package is split in two layers:
//
//   - Storage is a minimal key-value medium: Get, Set, Delete over raw bytes.
//     MemoryStorage and FileStorage ship here; pkg/redis provides a Redis
//     backed implementation.
//
//   - Store sits on top of a Storage and speaks in session terms: Token, User,
//     Load, Save, SaveUser and Clear.
//
//     ┌──────────────┐  Save/Load  ┌────────┐  Get/Set/Delete  ┌─────────┐
//     │ state engine │ ──────────► │ Store  │ ───────────────► │ Storage │
//     └──────────────┘             └────────┘                  └─────────┘
//
// # Corrupt records
//
// Reads never fail past the Store. A user record that cannot be decoded is
// logged with ErrCorruptRecord and reported as absent; a Storage read error is
// logged and reported as absent too. Callers therefore see either a complete
// session or nothing, and the state engine repairs half-written stores by
// clearing them.
//
// # Writes
//
// Save writes the user record before the token, so a token is never present
// without the user it belongs to. If a write fails, Save restores the
// previous raw values before returning the error.
//
// # Concurrency
//
// Storage implementations are safe for concurrent use. Store does no locking
// of its own; the state engine is its single writer.
package session
