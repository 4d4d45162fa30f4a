package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/rondas-org/rondas/engine"
	"github.com/rondas-org/rondas/helpers"
)

// ============================================================================
// RONDAS CLI — patrol-scan dashboards from raw district exports
// ============================================================================

var CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	Report  ReportCmd  `cmd:"" help:"Render a one-file dashboard or data export."`
	Serve   ServeCmd   `cmd:"" help:"Serve the live dashboard over HTTP."`
	Inspect InspectCmd `cmd:"" help:"Summarize a source file without rendering."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rondas"),
		kong.Description("Patrol-scan normalization, aggregation and hotspot detection"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRecords reads a source file and normalizes it end to end.
func loadRecords(path string) ([]engine.ScanRecord, engine.EntityKind, error) {
	rows, profile, err := helpers.Load(path)
	if err != nil {
		return nil, engine.EntityNone, err
	}
	b := engine.NewBuilder(profile)
	return b.BuildAll(rows), b.Kind(), nil
}
