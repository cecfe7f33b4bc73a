// package tasks implements bulk playlist cleanup operations.
//
// The core abstraction is CullEngine, which orchestrates item enumeration and
// audited bulk removal. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/services"
	"github.com/desertthunder/ytcull/internal/shared"
	"golang.org/x/time/rate"
)

// ItemResult represents the outcome of removing a single playlist item.
type ItemResult struct {
	Item    models.PlaylistItem // Item the removal was attempted for
	AuditID string              // ID of the audit row written before removal
	Deleted bool                // Whether the API delete succeeded
	Error   error               // Error if the audit write or delete failed
}

// PurgeResult contains all data from a bulk removal operation.
type PurgeResult struct {
	Playlist     models.Playlist // Playlist the items were removed from
	Items        []ItemResult    // Individual item results, in selection order
	DeletedCount int             // Number of items removed from the playlist
	FailedCount  int             // Number of items that failed audit or delete
	Total        int             // Total items processed
}

// CullEngine defines operations for enumerating and bulk-removing playlist items.
type CullEngine interface {
	// Fetch retrieves a playlist and all of its items, following pagination.
	Fetch(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) (*models.PlaylistExport, error)

	// Purge removes the given items from the playlist, writing an audit row
	// before each API delete. Item failures are recorded and skipped, never
	// aborting the remaining batch.
	Purge(ctx context.Context, progress chan<- ProgressUpdate, playlist models.Playlist, items []models.PlaylistItem) (*PurgeResult, error)
}

// PlaylistEngine implements CullEngine against a playlist service and an audit store.
type PlaylistEngine struct {
	service services.Service
	audit   models.Repository[*models.AuditRecord]
	limiter *rate.Limiter
}

// defaultRate bounds delete calls when no rate is configured.
const defaultRate = 5.0

// NewPlaylistEngine creates a PlaylistEngine limiting deletes to ratePerSecond
// API calls. Non-positive rates fall back to the default.
func NewPlaylistEngine(service services.Service, audit models.Repository[*models.AuditRecord], ratePerSecond float64) *PlaylistEngine {
	if ratePerSecond <= 0 {
		ratePerSecond = defaultRate
	}
	return &PlaylistEngine{
		service: service,
		audit:   audit,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Fetch retrieves a playlist and its full item listing.
func (e *PlaylistEngine) Fetch(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) (*models.PlaylistExport, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchItemsUpdate(1, 2, playlistID))

	playlist, err := e.service.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	items, err := e.service.GetPlaylistItems(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	export := &models.PlaylistExport{Playlist: *playlist, Items: items}
	e.sendProgress(progress, foundItemsUpdate(2, 2, export))
	return export, nil
}

// Purge removes the selected items from the playlist.
//
// Each item is rate limited, audited, then deleted. An audit write failure
// skips that item's delete so the log never misses a removal. The log is
// append-only, so a row written for an item whose delete then fails stays.
func (e *PlaylistEngine) Purge(ctx context.Context, progress chan<- ProgressUpdate, playlist models.Playlist, items []models.PlaylistItem) (*PurgeResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}
	if e.audit == nil {
		return nil, fmt.Errorf("%w: audit store not initialized", shared.ErrServiceUnavailable)
	}

	total := len(items)
	result := &PurgeResult{
		Playlist: playlist,
		Items:    make([]ItemResult, 0, total),
		Total:    total,
	}

	for i, item := range items {
		if err := e.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("%w: purge interrupted: %v", shared.ErrTimeout, err)
		}

		e.sendProgress(progress, recordAuditUpdate(i+1, total, item))

		record := models.NewAuditRecord(0, item, playlist, time.Now())
		if err := e.audit.Create(record); err != nil {
			result.Items = append(result.Items, ItemResult{
				Item:  item,
				Error: fmt.Errorf("audit write failed: %w", err),
			})
			result.FailedCount++
			e.sendProgress(progress, itemFailedUpdate(i+1, total, item, err))
			continue
		}

		e.sendProgress(progress, removeItemUpdate(i+1, total, item))

		if err := e.service.DeletePlaylistItem(ctx, item.ID); err != nil {
			result.Items = append(result.Items, ItemResult{
				Item:    item,
				AuditID: record.ID(),
				Error:   err,
			})
			result.FailedCount++
			e.sendProgress(progress, itemFailedUpdate(i+1, total, item, err))
			continue
		}

		result.Items = append(result.Items, ItemResult{
			Item:    item,
			AuditID: record.ID(),
			Deleted: true,
		})
		result.DeletedCount++
		e.sendProgress(progress, itemRemovedUpdate(i+1, total, item))
	}

	e.sendProgress(progress, purgeDoneUpdate(total, result))
	return result, nil
}
