package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/shared"
)

// AuditRepository implements models.Repository[*models.AuditRecord] for the removal log.
//
// The log is append-only in practice: Update exists for interface completeness
// but removal history is never rewritten by the application, and Delete only
// soft-deletes.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new AuditRepository with the given database connection
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new audit record into the database with generated ID and sequence
func (r *AuditRepository) Create(record *models.AuditRecord) error {
	sequence, err := NextSequence(r.db, "audit_records")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	record.SetID(id)
	record.SetSequence(sequence)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO audit_records (id, sequence, video_id, title, link, channel, playlist_id, playlist_name, removed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		record.VideoID(),
		record.Title(),
		record.Link(),
		record.Channel(),
		record.PlaylistID(),
		record.PlaylistName(),
		record.RemovedAt(),
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	return nil
}

// Get retrieves an audit record by ID, excluding soft-deleted records
func (r *AuditRepository) Get(id string) (*models.AuditRecord, error) {
	query := `
		SELECT id, sequence, video_id, title, link, channel, playlist_id, playlist_name, removed_at, created_at, updated_at, deleted_at
		FROM audit_records
		WHERE id = ? AND deleted_at IS NULL
	`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		return nil, fmt.Errorf("audit record not found: %s", id)
	}

	return r.scanRow(rows)
}

// Update modifies an existing audit record in the database.
//
// Present to satisfy [models.Repository]; only the playlist name is mutable
// (backfilled when a playlist is renamed before export).
func (r *AuditRepository) Update(record *models.AuditRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	record.SetUpdatedAt(now)

	query := `
		UPDATE audit_records
		SET playlist_name = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, record.PlaylistName(), now, record.ID())
	if err != nil {
		return fmt.Errorf("failed to update audit record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("audit record not found or already deleted: %s", record.ID())
	}

	return nil
}

// Delete soft-deletes an audit record by ID
func (r *AuditRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE audit_records
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete audit record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("audit record not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all audit records matching the given criteria, excluding soft-deleted records.
//
// Supported criteria: "playlist_id" (string), "video_id" (string), and the
// date filters "since"/"until" ([time.Time], applied to removed_at).
func (r *AuditRepository) List(criteria map[string]any) ([]*models.AuditRecord, error) {
	query := `
		SELECT id, sequence, video_id, title, link, channel, playlist_id, playlist_name, removed_at, created_at, updated_at, deleted_at
		FROM audit_records
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if playlistID, ok := criteria["playlist_id"].(string); ok && playlistID != "" {
		query += " AND playlist_id = ?"
		args = append(args, playlistID)
	}

	if videoID, ok := criteria["video_id"].(string); ok && videoID != "" {
		query += " AND video_id = ?"
		args = append(args, videoID)
	}

	if since, ok := criteria["since"].(time.Time); ok && !since.IsZero() {
		query += " AND removed_at >= ?"
		args = append(args, since)
	}

	if until, ok := criteria["until"].(time.Time); ok && !until.IsZero() {
		query += " AND removed_at <= ?"
		args = append(args, until)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []*models.AuditRecord
	for rows.Next() {
		record, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// scanRow scans a row from [sql.Rows] into a [models.AuditRecord]
func (r *AuditRepository) scanRow(rows *sql.Rows) (*models.AuditRecord, error) {
	var (
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
		deletedAt    sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &videoID, &title, &link, &channel, &playlistID, &playlistName, &removedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit record: %w", err)
	}

	item := models.PlaylistItem{
		VideoID: videoID,
		Title:   title,
		Channel: channel,
		Link:    link,
	}
	playlist := models.Playlist{
		ID:    playlistID,
		Title: playlistName,
	}

	record := models.NewAuditRecord(sequence, item, playlist, removedAt)
	record.SetID(id)
	record.SetCreatedAt(createdAt)
	record.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		record.SetDeletedAt(&deletedAt.Time)
	}

	return record, nil
}
