package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/rondas-org/rondas/engine"
	"github.com/rondas-org/rondas/report"
)

// ReportCmd renders one aggregate snapshot as html, json, csv or text.
type ReportCmd struct {
	File   string `arg:"" help:"Source file (.xlsx, .xls or .csv)." type:"existingfile"`
	Out    string `short:"o" help:"Write output to file instead of stdout." type:"path"`
	Format string `short:"f" default:"html" enum:"html,json,csv,text" help:"Output format: html, json, csv, text."`

	Month     string  `help:"Filter to one month (YYYY-MM)."`
	Entity    string  `help:"Filter to one supervisor id or location key."`
	Top       int     `help:"Cap the ranking at the first N entities."`
	Threshold float64 `help:"Cluster radius in degrees (default ${default})." default:"0.00035"`
	Title     string  `default:"Rondas" help:"Report title."`
}

func (c *ReportCmd) Run() error {
	records, kind, err := loadRecords(c.File)
	if err != nil {
		return err
	}
	log.Printf("🔧 Normalized %d records", len(records))

	filters := engine.Filters{Month: c.Month, EntityID: c.Entity}
	set := engine.Aggregate(records, filters,
		engine.WithEntityKind(kind), engine.WithTopN(c.Top))

	points := engine.GeoPoints(records, kind, engine.GeoFilter{
		EntityID: c.Entity,
		Month:    c.Month,
	})
	clusters := engine.DetectClusters(points, c.Threshold)

	out := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("create %s: %w", c.Out, err)
		}
		defer f.Close()
		out = f
	}

	switch c.Format {
	case "html":
		html, err := report.Generate(set, clusters, c.Title)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, html)
		return err
	case "json":
		return writeJSON(out, set, clusters)
	case "csv":
		return writeCSV(out, set)
	case "text":
		_, err := io.WriteString(out, renderText(set, clusters))
		return err
	}
	return fmt.Errorf("unknown format %q", c.Format)
}

func writeJSON(w io.Writer, set *engine.AggregateSet, clusters []engine.Cluster) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*engine.AggregateSet
		Clusters []engine.Cluster `json:"clusters"`
	}{AggregateSet: set, Clusters: clusters})
}

// writeCSV emits the month, sector and ranking tables as one sheet-ready
// stream, blank-line separated.
func writeCSV(w io.Writer, set *engine.AggregateSet) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{"Mes", "Registros"})
	for _, row := range set.CountByMonth.Rows {
		_ = cw.Write([]string{row.Month, strconv.Itoa(row.Count)})
	}

	_ = cw.Write([]string{})
	_ = cw.Write([]string{"Sector", "Registros"})
	for i, s := range set.CountBySector.Sectors {
		_ = cw.Write([]string{string(s), strconv.Itoa(set.CountBySector.Counts[i])})
	}

	_ = cw.Write([]string{})
	_ = cw.Write([]string{"Puesto", "Clave", "Nombre", "Registros"})
	for i, e := range set.Ranking {
		_ = cw.Write([]string{strconv.Itoa(i + 1), e.Key, e.Label, strconv.Itoa(e.Count)})
	}

	cw.Flush()
	return cw.Error()
}
