package models

import (
	"fmt"
	"time"
)

// AuditRecord is an append-only log entry describing a playlist item removal.
//
// One record is written per removed item, before the delete call is issued,
// so that every destructive action is inspectable after the fact. Records
// enable review and export but not undo.
type AuditRecord struct {
	id           string
	sequence     int
	videoID      string
	title        string
	link         string
	channel      string
	playlistID   string
	playlistName string
	removedAt    time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewAuditRecord creates an AuditRecord for a removal of the given item from the given playlist.
func NewAuditRecord(sequence int, item PlaylistItem, playlist Playlist, removedAt time.Time) *AuditRecord {
	now := time.Now()
	link := item.Link
	if link == "" {
		link = WatchLink(item.VideoID)
	}

	return &AuditRecord{
		sequence:     sequence,
		videoID:      item.VideoID,
		title:        item.Title,
		link:         link,
		channel:      item.Channel,
		playlistID:   playlist.ID,
		playlistName: playlist.Title,
		removedAt:    removedAt,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (a *AuditRecord) ID() string           { return a.id }
func (a *AuditRecord) Sequence() int        { return a.sequence }
func (a *AuditRecord) VideoID() string      { return a.videoID }
func (a *AuditRecord) Title() string        { return a.title }
func (a *AuditRecord) Link() string         { return a.link }
func (a *AuditRecord) Channel() string      { return a.channel }
func (a *AuditRecord) PlaylistID() string   { return a.playlistID }
func (a *AuditRecord) PlaylistName() string { return a.playlistName }
func (a *AuditRecord) RemovedAt() time.Time { return a.removedAt }
func (a *AuditRecord) CreatedAt() time.Time { return a.createdAt }
func (a *AuditRecord) UpdatedAt() time.Time { return a.updatedAt }
func (a *AuditRecord) DeletedAt() *time.Time {
	return a.deletedAt
}

func (a *AuditRecord) SetID(id string)             { a.id = id }
func (a *AuditRecord) SetSequence(seq int)         { a.sequence = seq }
func (a *AuditRecord) SetUpdatedAt(t time.Time)    { a.updatedAt = t }
func (a *AuditRecord) SetDeletedAt(t *time.Time)   { a.deletedAt = t }
func (a *AuditRecord) SetCreatedAt(t time.Time)    { a.createdAt = t }
func (a *AuditRecord) SetRemovedAt(t time.Time)    { a.removedAt = t }
func (a *AuditRecord) SetPlaylistName(name string) { a.playlistName = name }

// Validate checks that the record identifies a video, a playlist, and a removal time.
func (a *AuditRecord) Validate() error {
	if a.videoID == "" {
		return fmt.Errorf("audit record requires a video id")
	}
	if a.playlistID == "" {
		return fmt.Errorf("audit record requires a playlist id")
	}
	if a.removedAt.IsZero() {
		return fmt.Errorf("audit record requires a removal timestamp")
	}
	return nil
}
