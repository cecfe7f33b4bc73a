package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/shared"
	"github.com/desertthunder/ytcull/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Purge removes selected items from a playlist, writing an audit row before each delete.
func (r *Runner) Purge(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist")
	itemIDs := cmd.StringSlice("item")
	all := cmd.Bool("all")
	skipConfirm := cmd.Bool("yes")

	r.loadConfig(cmd)

	if len(itemIDs) == 0 && !all {
		return fmt.Errorf("%w: provide --item flags or --all", shared.ErrMissingArgument)
	}
	if len(itemIDs) > 0 && all {
		return fmt.Errorf("%w: cannot combine --item with --all", shared.ErrInvalidArgument)
	}

	export, err := r.fetchExport(ctx, cmd, playlistID)
	if err != nil {
		return err
	}

	selected, err := selectItems(export, itemIDs, all)
	if err != nil {
		return err
	}

	if len(selected) == 0 {
		r.writePlain("Nothing to remove: playlist '%s' has no matching items\n", export.Playlist.Title)
		return nil
	}

	r.writePlain("About to remove %d of %d items from '%s':\n\n", len(selected), len(export.Items), export.Playlist.Title)
	for i, item := range selected {
		if i == 10 {
			r.writePlain("  ... and %d more\n", len(selected)-10)
			break
		}
		r.writePlain("  • %s - %s\n", item.Channel, item.Title)
	}

	if !skipConfirm {
		ok, err := r.confirm("\nRemoval cannot be undone. Continue? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	engine, err := r.newEngine()
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Phase == tasks.RemoveItem {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := engine.Purge(ctx, progress, export.Playlist, selected)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader("Removal Complete")
	r.writePlain("Playlist: %s\n", result.Playlist.Title)
	r.writePlain("Removed: %d/%d\n", result.DeletedCount, result.Total)

	if result.FailedCount > 0 {
		r.writePlainln("Failed to remove %d items:", result.FailedCount)
		for _, item := range result.Items {
			if item.Error != nil {
				r.writePlain("  ✗ %s - %s: %v\n", item.Item.Channel, item.Item.Title, item.Error)
			}
		}
	}

	r.writePlain("\nRun 'ytcull audit list' to inspect the removal log\n")
	return nil
}

// selectItems resolves the removal selection against the playlist's items.
func selectItems(export *models.PlaylistExport, itemIDs []string, all bool) ([]models.PlaylistItem, error) {
	if all {
		return export.Items, nil
	}

	byID := make(map[string]models.PlaylistItem, len(export.Items))
	for _, item := range export.Items {
		byID[item.ID] = item
	}

	selected := make([]models.PlaylistItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: item %s not in playlist %s", shared.ErrItemNotFound, id, export.Playlist.ID)
		}
		selected = append(selected, item)
	}

	return selected, nil
}

// confirm prompts for a yes/no answer on the runner's input stream.
func (r *Runner) confirm(prompt string) (bool, error) {
	r.writePlain("%s", prompt)

	reader := bufio.NewReader(r.input)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
