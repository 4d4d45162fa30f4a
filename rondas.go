// Package rondas turns raw patrol-scan spreadsheets into clean,
// chart-ready report data.
//
// Usage:
//
//	rows, profile, err := helpers.Load("Datos.xlsx")
//	b := engine.NewBuilder(profile)
//	records := b.BuildAll(rows)
//
//	set := engine.Aggregate(records, engine.Filters{Month: "2024-03"},
//	    engine.WithEntityKind(b.Kind()),
//	)
//
// The engine takes normalized ScanRecords plus the active month and
// entity filters, and returns zero-filled aggregate tables (counts by
// month, sector, supervisor, weekday, hour, shift, daily series) and
// spatial scan clusters. Rendering is handled separately by the report
// package. The engine never performs I/O — all computation is local
// and deterministic.
package rondas
