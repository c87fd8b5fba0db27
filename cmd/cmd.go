// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// resultFlags are shared by commands that print a filtered result list.
func resultFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "Only keep shows tagged with this genre (exact match)",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "Sort order: relevance, rating_desc, rating_asc, year_desc, year_asc, name_asc",
			Value:   "relevance",
		},
		&cli.FloatFlag{
			Name:  "min-rating",
			Usage: "Minimum rating (missing ratings count as 0)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of shows to reveal (defaults to the configured page size)",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Reveal every matching show",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

// searchCommand searches the catalog by title.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"find"},
		Usage:   "Search shows by title",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags:  resultFlags(),
		Action: r.Search,
	}
}

// trendingCommand lists the top-rated shows of a catalog index page.
func trendingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "trending",
		Usage:  "List trending picks (highest rated shows with posters)",
		Flags:  resultFlags(),
		Action: r.Trending,
	}
}

// showCommand prints details for one show.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "show",
		Aliases: []string{"details"},
		Usage:   "Show details for a show ID",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the official site in a browser",
			},
		},
		Action: r.ShowDetails,
	}
}

// favoritesCommand manages the persisted favorites list.
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite shows",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved favorites",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "toggle",
				Usage: "Add a show to favorites, or remove it if already saved",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FavoritesToggle,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a show from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt, json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (use - for stdout)",
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:  "refresh",
				Usage: "Re-fetch every favorite so ratings and posters stay current",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent fetches (max 8)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Fetches started per second",
						Value: 2,
					},
				},
				Action: r.FavoritesRefresh,
			},
		},
	}
}

// configCommand handles the config file and persisted preferences.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration and preferences",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a default config file to the --config path",
				Action: r.ConfigInit,
			},
			{
				Name:  "theme",
				Usage: "Print the saved theme, or save a new one (light or dark)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "theme"},
				},
				Action: r.ConfigTheme,
			},
		},
	}
}

// setupCommand handles database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.RollbackDatabase,
			},
		},
	}
}

// apiCommand handles raw catalog calls.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the catalog API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "GET a catalog path (e.g. /shows/1) and print the body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive show finder",
		Action:  r.TUI,
	}
}
