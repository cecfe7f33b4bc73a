// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist cleanup:
//  1. [PlaylistListView] : Browse and select YouTube playlists
//  2. [ItemListView] : Filter and multi-select items for removal
//  3. [ConfirmView] : Confirm the removal batch
//  4. [PurgeView] : Monitor real-time progress updates
//  5. [ResultView] : Display removal counts and per-item failures
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the PlaylistEngine, providing non-blocking status reporting during removal.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
