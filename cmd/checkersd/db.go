package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"checkers/internal/storage"

	"github.com/urfave/cli/v2"
)

func dbCommand() *cli.Command {
	pathFlag := &cli.StringFlag{
		Name:     "path",
		Usage:    "database file path",
		Required: true,
		EnvVars:  []string{"CHECKERS_STORAGE_PATH"},
	}

	return &cli.Command{
		Name:  "db",
		Usage: "Manage the probe database",
		Subcommands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the schema",
				Flags:  []cli.Flag{pathFlag},
				Action: runDBInit,
			},
			{
				Name:   "delete",
				Usage:  "Delete the database file",
				Flags:  []cli.Flag{pathFlag},
				Action: runDBDelete,
			},
			{
				Name:  "query",
				Usage: "List recorded probes",
				Flags: []cli.Flag{
					pathFlag,
					&cli.StringFlag{Name: "type", Usage: "probe type: move, capture or * for all"},
					&cli.StringFlag{Name: "color", Usage: "piece color: b, w or * for all"},
					&cli.IntFlag{Name: "limit", Usage: "maximum rows (0 for all)", Value: 50},
				},
				Action: runDBQuery,
			},
		},
	}
}

func runDBInit(c *cli.Context) error {
	path := c.String("path")
	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Database initialized at: %s\n", path)
	return nil
}

func runDBDelete(c *cli.Context) error {
	path := c.String("path")
	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Database deleted: %s\n", path)
	return nil
}

func runDBQuery(c *cli.Context) error {
	store, err := storage.NewStore(c.String("path"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	probes, err := store.QueryProbes(c.String("type"), c.String("color"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	out := c.App.Writer
	if len(probes) == 0 {
		fmt.Fprintln(out, "No probes found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Probe ID\tType\tPiece\tFrom\tTarget\tLegal\tTime")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, p := range probes {
		target := fmt.Sprintf("(%d,%d)", p.TargetRow, p.TargetColumn)
		if p.ProbeType == storage.ProbeCapture {
			target = fmt.Sprintf("%s %s %s", p.TargetColor, p.TargetKind, target)
		}
		fmt.Fprintf(w, "%s\t%s\t%s %s\t(%d,%d)\t%s\t%t\t%s\n",
			shortID(p.ProbeID),
			p.ProbeType,
			p.PieceColor, p.PieceKind,
			p.PieceRow, p.PieceColumn,
			target,
			p.Legal,
			p.ProbeTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d probe(s)\n", len(probes))
	return nil
}

// shortID abbreviates uuid probe ids for the table; shorter ids print as-is
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
