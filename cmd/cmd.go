// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles Google OAuth2 authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Google using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show stored token state",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand handles playlist listing and export operations
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "YouTube playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your YouTube playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "items",
				Usage: "List every item in a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistsItems,
			},
			{
				Name:  "export",
				Usage: "Export a playlist's items to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, markdown, text, json)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.PlaylistsExport,
			},
		},
	}
}

// purgeCommand handles bulk playlist item removal
func purgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Remove items from a playlist, logging each removal",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "playlist",
				Aliases:  []string{"p"},
				Usage:    "Playlist ID to remove items from",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "item",
				Usage: "Playlist item ID to remove (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Remove every item in the playlist",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.Purge,
	}
}

// auditCommand handles removal log inspection and export
func auditCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Inspect and export the removal log",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List removal log entries",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "Filter by playlist ID",
					},
					&cli.StringFlag{
						Name:  "since",
						Usage: "Only entries on or after this date (YYYY-MM-DD or RFC3339)",
					},
					&cli.StringFlag{
						Name:  "until",
						Usage: "Only entries on or before this date (YYYY-MM-DD or RFC3339)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.AuditList,
			},
			{
				Name:  "export",
				Usage: "Export removal log entries to CSV",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "Filter by playlist ID",
					},
					&cli.StringFlag{
						Name:  "since",
						Usage: "Only entries on or after this date (YYYY-MM-DD or RFC3339)",
					},
					&cli.StringFlag{
						Name:  "until",
						Usage: "Only entries on or before this date (YYYY-MM-DD or RFC3339)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "audit_log.csv",
					},
				},
				Action: r.AuditExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist cleanup.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist cleanup",
		Action:  r.TUI,
	}
}
