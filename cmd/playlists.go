package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytcull/internal/formatter"
	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistsList lists the authenticated user's YouTube playlists.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("listing youtube playlists")

	playlists, err := r.youtube.GetPlaylists(ctx)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if playlists, err = r.youtube.GetPlaylists(ctx); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Title)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Items: %d\n", p.ItemCount)
		if p.Privacy != "" {
			r.writePlain("   Visibility: %s\n", p.Privacy)
		}
		r.writePlain("\n")
	}

	return nil
}

// PlaylistsItems lists every item in a playlist, following pagination.
func (r *Runner) PlaylistsItems(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	export, err := r.fetchExport(ctx, cmd, playlistID)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(export, pretty)
	}

	r.writePlain("Playlist: %s\n", export.Playlist.Title)
	if export.Playlist.Description != "" {
		r.writePlain("Description: %s\n", export.Playlist.Description)
	}
	r.writePlain("Items: %d\n\n", len(export.Items))

	for i, item := range export.Items {
		r.writePlain("%d. %s - %s\n", i+1, item.Channel, item.Title)
		r.writePlain("   Item ID: %s\n", item.ID)
		r.writePlain("   Link: %s\n", item.Link)
	}

	return nil
}

// PlaylistsExport exports a playlist's items to CSV, Markdown, plain text, or JSON.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	format := cmd.String("format")
	outputPath := cmd.String("output")

	export, err := r.fetchExport(ctx, cmd, playlistID)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported\n")
		r.writePlain("  Items: %s\n", result.ItemsFile)
		r.writePlain("  Metadata: %s\n", result.MetadataFile)
	case "markdown", "md":
		mdFile, err := formatter.WriteMarkdownExport(export, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported to %s\n", mdFile)
	case "text", "txt":
		txtFile, err := formatter.WriteTextExport(export, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported to %s\n", txtFile)
	case "json":
		if outputPath == "" {
			return r.writeJSON(export, true)
		}
		data, err := shared.MarshalJSON(export, true)
		if err != nil {
			return fmt.Errorf("failed to marshal export: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ Playlist exported to %s\n", outputPath)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	r.writePlain("  Playlist: %s\n", export.Playlist.Title)
	r.writePlain("  Items: %d\n", len(export.Items))
	return nil
}

// fetchExport retrieves a playlist and its items with expired-token retry.
func (r *Runner) fetchExport(ctx context.Context, cmd *cli.Command, playlistID string) (*models.PlaylistExport, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}
	if r.youtube == nil {
		return nil, fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}

	r.loadConfig(cmd)
	r.logger.Infof("fetching playlist %v", playlistID)

	engine, err := r.newEngine()
	if err != nil {
		return nil, err
	}

	export, err := engine.Fetch(ctx, nil, playlistID)
	if err != nil {
		reauthed, authErr := r.handleAuthError(ctx, err, cmd)
		if !reauthed {
			return nil, err
		}
		if authErr != nil {
			return nil, authErr
		}
		if export, err = engine.Fetch(ctx, nil, playlistID); err != nil {
			return nil, err
		}
	}

	return export, nil
}
