package ui

import (
	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/tasks"
)

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type itemsFetchedMsg struct {
	playlist *models.PlaylistExport
	err      error
}

type progressUpdateMsg tasks.ProgressUpdate

type purgeCompleteMsg struct {
	result *tasks.PurgeResult
	err    error
}
