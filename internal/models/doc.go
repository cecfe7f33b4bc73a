// Package models defines domain entities and persistence interfaces for the ytcull playlist cleanup tool.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing YouTube Data API responses
//   - [Playlist] : Playlist metadata for the authenticated user
//   - [PlaylistItem] : A single entry in a playlist; carries both the playlist-item
//     id (the deletion handle) and the underlying video id
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [AuditRecord] : Append-only log entry written before each item removal
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps, validation, and soft delete support. The [Repository] interface
// defines standard CRUD operations for database access.
package models
