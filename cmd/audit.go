package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/ytcull/internal/formatter"
	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/shared"
	"github.com/urfave/cli/v3"
)

// auditEntry is the JSON projection of an audit record for CLI output.
type auditEntry struct {
	ID           string    `json:"id"`
	Sequence     int       `json:"sequence"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Link         string    `json:"link"`
	Channel      string    `json:"channel"`
	PlaylistID   string    `json:"playlist_id"`
	PlaylistName string    `json:"playlist_name"`
	RemovedAt    time.Time `json:"removed_at"`
}

// AuditList lists removal log entries with optional playlist and date filters.
func (r *Runner) AuditList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.loadConfig(cmd)

	records, err := r.filteredRecords(cmd)
	if err != nil {
		return err
	}

	if useJSON {
		entries := make([]auditEntry, len(records))
		for i, rec := range records {
			entries[i] = auditEntry{
				ID:           rec.ID(),
				Sequence:     rec.Sequence(),
				VideoID:      rec.VideoID(),
				Title:        rec.Title(),
				Link:         rec.Link(),
				Channel:      rec.Channel(),
				PlaylistID:   rec.PlaylistID(),
				PlaylistName: rec.PlaylistName(),
				RemovedAt:    rec.RemovedAt(),
			}
		}
		return r.writeJSON(entries, pretty)
	}

	r.writePlain("Found %d removal log entries:\n\n", len(records))
	for _, rec := range records {
		r.writePlain("#%d %s\n", rec.Sequence(), rec.Title())
		r.writePlain("   Channel: %s\n", rec.Channel())
		r.writePlain("   Playlist: %s (%s)\n", rec.PlaylistName(), rec.PlaylistID())
		r.writePlain("   Removed: %s\n", rec.RemovedAt().Format(time.RFC3339))
		r.writePlain("   Link: %s\n\n", rec.Link())
	}

	return nil
}

// AuditExport writes removal log entries to a CSV file.
func (r *Runner) AuditExport(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.String("output")

	r.loadConfig(cmd)

	records, err := r.filteredRecords(cmd)
	if err != nil {
		return err
	}

	written, err := formatter.WriteAuditExport(records, outputPath)
	if err != nil {
		return err
	}

	r.logger.Infof("exported %v audit records to %v", len(records), written)

	r.writePlain("✓ Removal log exported to %s\n", written)
	r.writePlain("  Entries: %d\n", len(records))
	return nil
}

// filteredRecords queries the audit store with the command's filter flags.
func (r *Runner) filteredRecords(cmd *cli.Command) ([]*models.AuditRecord, error) {
	audit, err := r.auditStore()
	if err != nil {
		return nil, err
	}

	criteria := map[string]any{}

	if playlistID := cmd.String("playlist"); playlistID != "" {
		criteria["playlist_id"] = playlistID
	}

	if since := cmd.String("since"); since != "" {
		t, err := parseDate(since, false)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid --since value: %v", shared.ErrInvalidArgument, err)
		}
		criteria["since"] = t
	}

	if until := cmd.String("until"); until != "" {
		t, err := parseDate(until, true)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid --until value: %v", shared.ErrInvalidArgument, err)
		}
		criteria["until"] = t
	}

	return audit.List(criteria)
}

// parseDate accepts RFC3339 timestamps or bare dates.
//
// A bare date used as an upper bound covers the whole day.
func parseDate(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
