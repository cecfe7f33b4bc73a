package tasks

import (
	"fmt"

	"github.com/desertthunder/ytcull/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchItems Phase = iota
	RecordAudit
	RemoveItem
	PurgeDone
)

func (p Phase) String() string {
	switch p {
	case FetchItems:
		return "fetch_items"
	case RecordAudit:
		return "record_audit"
	case RemoveItem:
		return "remove_item"
	case PurgeDone:
		return "purge_done"
	default:
		return ""
	}
}

func fetchItemsUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching items from playlist (%s)...", name),
	}
}

func foundItemsUpdate(step, total int, export *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found playlist: %s (%d items)", export.Playlist.Title, len(export.Items)),
		Data:    export,
	}
}

func recordAuditUpdate(step, total int, item models.PlaylistItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecordAudit,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Recording: %s", step, total, item.Title),
	}
}

func removeItemUpdate(step, total int, item models.PlaylistItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RemoveItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Removing: %s - %s", step, total, item.Channel, item.Title),
	}
}

func itemRemovedUpdate(step, total int, item models.PlaylistItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RemoveItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, item.Title),
	}
}

func itemFailedUpdate(step, total int, item models.PlaylistItem, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RemoveItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, item.Title, err),
	}
}

func purgeDoneUpdate(total int, result *PurgeResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PurgeDone,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Removed %d of %d items", result.DeletedCount, result.Total),
		Data:    result,
	}
}
