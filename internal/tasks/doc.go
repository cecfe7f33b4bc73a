// Package tasks orchestrates playlist cleanup operations with real-time progress reporting.
//
// # Core Operations
//
// The [CullEngine] interface defines two operations:
//
//  1. [CullEngine.Fetch] : Enumerate a playlist's items
//     - Looks up the playlist metadata
//     - Follows the API continuation cursor until every item is listed
//     - Returns a [models.PlaylistExport] for display or export
//
//  2. [CullEngine.Purge] : Audited bulk removal
//     - Rate limits delete calls via a token bucket
//     - Writes one audit row per item before its delete call
//     - Records per-item failures and continues with the rest of the batch
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [PlaylistEngine] implements [CullEngine] with dependencies on:
//   - [services.Service] : YouTube Data API client
//   - [models.Repository] : Audit log persistence (repositories.AuditRepository)
package tasks
