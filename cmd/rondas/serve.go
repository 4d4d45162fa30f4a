package main

import (
	"log"

	"github.com/rondas-org/rondas/report"
)

// ServeCmd runs the live dashboard over one loaded source file.
type ServeCmd struct {
	File  string `arg:"" help:"Source file (.xlsx, .xls or .csv)." type:"existingfile"`
	Addr  string `default:"127.0.0.1:8080" help:"Listen address."`
	Title string `default:"Rondas" help:"Dashboard title."`
}

func (c *ServeCmd) Run() error {
	records, kind, err := loadRecords(c.File)
	if err != nil {
		return err
	}
	log.Printf("🔧 Normalized %d records", len(records))

	return report.NewServer(records, kind, c.Title).Run(c.Addr)
}
