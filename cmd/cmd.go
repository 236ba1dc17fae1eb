// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Validate the stored token and show the account",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.AuthWhoami,
			},
			{
				Name:   "status",
				Usage:  "Check backend availability (calls /status)",
				Action: r.AuthStatus,
			},
		},
	}
}

// chartsCommand handles chart browsing and export
func chartsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "charts",
		Usage: "Browse community charts",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show a chart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "period", Usage: "Chart period (weekly, monthly, all)", Value: "weekly"},
					&cli.StringFlag{Name: "genre", Usage: "Genre filter", Value: "all"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum entries", Value: 20},
					jsonFlag(), prettyFlag(),
				},
				Action: r.ChartsShow,
			},
			{
				Name:   "panels",
				Usage:  "Fetch the weekly, monthly and all-time charts at once",
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.ChartsPanels,
			},
			{
				Name:  "export",
				Usage: "Export a chart to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "period", Usage: "Chart period (weekly, monthly, all)", Value: "weekly"},
					&cli.StringFlag{Name: "genre", Usage: "Genre filter", Value: "all"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum entries", Value: 20},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format (csv, markdown, text)", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.ChartsExport,
			},
		},
	}
}

// tracksCommand handles track search, submission, voting and comments
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Search, submit and vote on tracks",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search tracks by title or artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum results", Value: 20},
					jsonFlag(), prettyFlag(),
				},
				Action: r.TracksSearch,
			},
			{
				Name:  "submit",
				Usage: "Submit a new track (requires login)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "Track URL", Required: true},
					&cli.StringFlag{Name: "title", Usage: "Track title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Track artist", Required: true},
					&cli.StringFlag{Name: "genre", Usage: "Track genre", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Track description"},
					&cli.BoolFlag{Name: "verify", Usage: "Verify the URL against its platform first"},
				},
				Action: r.TracksSubmit,
			},
			{
				Name:  "vote",
				Usage: "Vote on a track (requires login)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "score", Aliases: []string{"s"}, Usage: "Score from 1 to 10", Required: true},
				},
				Action: r.TracksVote,
			},
			{
				Name:  "comments",
				Usage: "List comments on a track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.TracksComments,
			},
			{
				Name:  "comment",
				Usage: "Comment on a track (requires login)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "Comment text", Required: true},
				},
				Action: r.TracksComment,
			},
			{
				Name:  "stats",
				Usage: "Show your activity stats (requires login)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.TracksStats,
			},
		},
	}
}

// verifyCommand handles external platform lookups
func verifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify track URLs against streaming platforms",
		Commands: []*cli.Command{
			{
				Name:  "url",
				Usage: "Resolve a track URL on its platform",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags:  []cli.Flag{jsonFlag(), prettyFlag()},
				Action: r.VerifyURL,
			},
			{
				Name:  "search",
				Usage: "Search every configured platform at once",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Results per platform", Value: 5},
					jsonFlag(), prettyFlag(),
				},
				Action: r.VerifySearch,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the charts API",
		Commands: []*cli.Command{
			{
				Name:  "call",
				Usage: "Invoke a named operation, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "operation"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "arg", Usage: "Path argument as name=value", Aliases: []string{"a"}},
					&cli.StringFlag{Name: "query", Usage: "Query parameter as name=value", Aliases: []string{"q"}},
					&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON body to send"},
					prettyFlag(),
				},
				Action: r.APICall,
			},
			{
				Name:   "operations",
				Usage:  "List the operations the client knows about",
				Action: r.APIOperations,
			},
		},
	}
}

// cacheCommand handles the persisted response cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the response cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry counts",
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Drop every cached response",
				Action: r.CacheClear,
			},
		},
	}
}

// metricsCommand exposes the client's Prometheus counters
func metricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Print request, retry and cache counters",
		Action: r.Metrics,
	}
}

// tuiCommand returns the top-level TUI command for interactive chart browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive chart browser",
		Action:  r.TUI,
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true}
}
