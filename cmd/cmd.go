// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the config file if missing, initialize the database and seed categories",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// itemCommand handles board item operations
func itemCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "item",
		Aliases: []string{"items"},
		Usage:   "Add, list and remove board items",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Classify a URL and add it to the board",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Item title",
					},
					&cli.StringFlag{
						Name:    "notes",
						Aliases: []string{"n"},
						Usage:   "Free-form notes",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category (defaults to the first board category)",
					},
					&cli.BoolFlag{
						Name:  "lookup",
						Usage: "Fetch the title from the provider when --title is empty",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ItemAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List items, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only items in this category (All for every category)",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Case-insensitive search over titles and notes",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Only items from this provider (youtube, vimeo, tiktok, instagram, facebook, image, filevideo, link)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ItemList,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Delete an item by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ItemRemove,
			},
		},
	}
}

// categoryCommand handles category operations
func categoryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "category",
		Aliases: []string{"categories", "cat"},
		Usage:   "Manage board categories",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a category",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.CategoryAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List categories",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CategoryList,
			},
		},
	}
}

// classifyCommand reports how a URL would be embedded
func classifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "Show the provider and media id extracted from a URL",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Classify,
	}
}

// exportCommand writes the board to a file or stdout
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (directory with --bulk); stdout when empty",
			},
			&cli.BoolFlag{
				Name:  "bulk",
				Usage: "Write one file per category plus a manifest",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent category exports with --bulk",
				Value: 4,
			},
		},
		Action: r.Export,
	}
}

// importCommand replaces the board from an export file
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Replace the board with a JSON export",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Action: r.Import,
	}
}

// resetCommand clears the board
func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete every item and restore the default categories",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Confirm the reset",
			},
		},
		Action: r.Reset,
	}
}

// serveCommand runs the web board
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the board page and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to server.host:server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the board in the system browser",
			},
		},
		Action: r.Serve,
	}
}

// browseCommand returns the top-level TUI command for browsing the board.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse the board in the terminal with autoplaying previews",
		Action:  r.Browse,
	}
}
