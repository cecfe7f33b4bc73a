package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytcull/internal/models"
)

var (
	_ list.Item = playlistEntry{}
	_ list.Item = videoEntry{}
)

// playlistEntry wraps [models.Playlist] to implement [list.Item].
type playlistEntry struct {
	playlist models.Playlist
}

func (i playlistEntry) FilterValue() string { return i.playlist.Title }
func (i playlistEntry) Title() string       { return i.playlist.Title }
func (i playlistEntry) Description() string {
	desc := fmt.Sprintf("%d items", i.playlist.ItemCount)
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

// videoEntry wraps [models.PlaylistItem] to implement [list.Item].
//
// The selection set is shared with the model so the rendered marker
// tracks toggles without rebuilding the list.
type videoEntry struct {
	item     models.PlaylistItem
	selected map[string]bool
}

func (i videoEntry) FilterValue() string { return i.item.Title }
func (i videoEntry) Title() string {
	marker := "[ ]"
	if i.selected[i.item.ID] {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s", marker, i.item.Title)
}
func (i videoEntry) Description() string { return i.item.Channel }
